package blaze

import (
	"github.com/avenwood/lexicon/bitstream"
)

const vocabularyExtension = ".alphas"

// Vocabulary is the sorted term table built alongside the postings store: a
// term-to-index map, a per-term document frequency, and a trigram index
// used for spell correction.
type Vocabulary struct {
	termToIndex  map[string]int
	indexToTerm  []string
	frequencies  []uint32
	trigramIndex map[string][]int
}

// WriteVocabulary writes terms (in ascending order) and their document
// frequencies (parallel, same order) to path+vocabularyExtension.
func WriteVocabulary(terms []string, documentFrequencies []uint32, path string) error {
	w, err := bitstream.NewWriter(path + vocabularyExtension)
	if err != nil {
		return err
	}

	if _, err := w.WriteVbyte(uint32(len(terms))); err != nil {
		w.Close()
		return err
	}

	prev := ""
	for _, term := range terms {
		prefixLen := matchingPrefixLen(prev, term)
		if _, err := w.WriteGamma(uint32(prefixLen)); err != nil {
			w.Close()
			return err
		}
		remaining := string([]rune(term)[prefixLen:])
		prev = term

		if _, err := w.WriteStr(remaining); err != nil {
			w.Close()
			return err
		}
	}

	for _, df := range documentFrequencies {
		if _, err := w.WriteVbyte(df); err != nil {
			w.Close()
			return err
		}
	}

	return w.Close()
}

// LoadVocabulary loads the vocabulary previously written by
// WriteVocabulary and builds its trigram index.
func LoadVocabulary(path string) (*Vocabulary, error) {
	r, err := bitstream.NewReader(path + vocabularyExtension)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	numTerms, err := r.ReadVbyte()
	if err != nil {
		return nil, err
	}

	indexToTerm := make([]string, 0, numTerms)
	termToIndex := make(map[string]int, numTerms)
	prev := ""

	for i := uint32(0); i < numTerms; i++ {
		prefixLen, err := r.ReadGamma()
		if err != nil {
			return nil, err
		}
		suffix, err := r.ReadStr()
		if err != nil {
			return nil, err
		}
		term := string([]rune(prev)[:prefixLen]) + suffix
		prev = term

		indexToTerm = append(indexToTerm, term)
		termToIndex[term] = int(i)
	}

	frequencies := make([]uint32, numTerms)
	for i := range frequencies {
		f, err := r.ReadVbyte()
		if err != nil {
			return nil, err
		}
		frequencies[i] = f
	}

	trigramIndex := make(map[string][]int)
	for index, term := range indexToTerm {
		chars := []rune(term)
		if len(chars) < 3 {
			continue
		}
		for i := 0; i <= len(chars)-3; i++ {
			key := string(chars[i : i+3])
			trigramIndex[key] = append(trigramIndex[key], index)
		}
	}

	return &Vocabulary{
		termToIndex:  termToIndex,
		indexToTerm:  indexToTerm,
		frequencies:  frequencies,
		trigramIndex: trigramIndex,
	}, nil
}

// TermIndex returns term's position in the vocabulary, if present.
func (v *Vocabulary) TermIndex(term string) (int, bool) {
	i, ok := v.termToIndex[term]
	return i, ok
}

// TermFrequency returns term's document frequency, if present.
func (v *Vocabulary) TermFrequency(term string) (uint32, bool) {
	i, ok := v.termToIndex[term]
	if !ok {
		return 0, false
	}
	return v.frequencies[i], true
}

// SpellcheckTerm returns term unchanged if it is present in the vocabulary,
// otherwise the closest known term by ascending Levenshtein distance then
// descending document frequency. It returns false if no trigram candidate
// exists at all.
func (v *Vocabulary) SpellcheckTerm(term string) (string, bool) {
	if _, ok := v.termToIndex[term]; ok {
		return term, true
	}
	i, ok := v.closestIndex(term)
	if !ok {
		return "", false
	}
	return v.indexToTerm[i], true
}

func (v *Vocabulary) closestIndex(term string) (int, bool) {
	chars := []rune(term)

	seen := make(map[int]struct{})
	best := -1
	var bestDistance int
	var bestFreq uint32

	if len(chars) >= 3 {
		for i := 0; i <= len(chars)-3; i++ {
			key := string(chars[i : i+3])
			for _, candidate := range v.trigramIndex[key] {
				if _, dup := seen[candidate]; dup {
					continue
				}
				seen[candidate] = struct{}{}

				distance := levenshteinDistance(term, v.indexToTerm[candidate])
				freq := v.frequencies[candidate]

				if best == -1 || distance < bestDistance ||
					(distance == bestDistance && freq > bestFreq) {
					best = candidate
					bestDistance = distance
					bestFreq = freq
				}
			}
		}
	}

	if best == -1 {
		return 0, false
	}
	return best, true
}

// levenshteinDistance computes the character-wise edit distance between s1
// and s2 using a space-reduced dynamic-programming table.
func levenshteinDistance(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) > len(r2) {
		r1, r2 = r2, r1
	}

	n, m := len(r1), len(r2)
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for i := 0; i <= n; i++ {
		prev[i] = i
	}

	for j := 1; j <= m; j++ {
		curr[0] = j
		for i := 1; i <= n; i++ {
			if r1[i-1] == r2[j-1] {
				curr[i] = prev[i-1]
			} else {
				curr[i] = 1 + min3(prev[i-1], prev[i], curr[i-1])
			}
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
