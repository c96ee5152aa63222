package blaze

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// RankingParameters tunes ranked querying: the BM25 constants and the
// proximity-window score multiplier.
type RankingParameters struct {
	K1 float64
	B  float64
	// WindowMultiplier weights the proximity-window term against the
	// accumulated, length-normalized BM25 term when combining a
	// document's final score.
	WindowMultiplier float64
}

// DefaultRankingParameters returns k1=1.2, b=0.75, a proximity-window
// multiplier of 3.0.
func DefaultRankingParameters() RankingParameters {
	return RankingParameters{K1: 1.2, B: 0.75, WindowMultiplier: 3.0}
}

// Engine is an opened index: its vocabulary, random-access postings, and
// documents table, ready for ranked or boolean querying.
type Engine struct {
	vocabulary   *Vocabulary
	postings     *Postings
	documents    *Documents
	preprocessor Preprocessor
	ranking      RankingParameters
	logger       *slog.Logger
}

// Open loads the index previously written by Build/BuildWithConfig at
// indexBasePath.
func Open(indexBasePath string) (*Engine, error) {
	vocab, err := LoadVocabulary(indexBasePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexIO, err)
	}
	postings, err := LoadPostingsReader(indexBasePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexIO, err)
	}
	docs, err := LoadDocuments(indexBasePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexIO, err)
	}

	return &Engine{
		vocabulary:   vocab,
		postings:     postings,
		documents:    docs,
		preprocessor: NewPreprocessor(),
		ranking:      DefaultRankingParameters(),
		logger:       slog.Default(),
	}, nil
}

// Close releases the engine's open file handles.
func (e *Engine) Close() error {
	return e.postings.Close()
}

// SetRankingParameters overrides the engine's BM25/window-scoring
// configuration.
func (e *Engine) SetRankingParameters(p RankingParameters) {
	e.ranking = p
}

// QueryResult is the outcome of a ranked query: the spell-corrected tokens
// actually searched for, and the matching documents in descending score
// order.
type QueryResult struct {
	Tokens    []string
	Documents []DocumentResult
}

// DocumentResult is one ranked match.
type DocumentResult struct {
	ID    uint32
	Path  string
	Score float64
}

type documentScore struct {
	tfIDF         float64
	termPositions map[uint32][]uint32
}

// Query runs a free-text ranked search: tokenize and stem the query,
// spell-correct each token against the vocabulary (dropping tokens with no
// match), score candidate documents with BM25 combined with a proximity
// window bonus, and return the top numResults.
func (e *Engine) Query(query string, numResults int) (QueryResult, error) {
	rawTokens := e.preprocessor.TokenizeAndStem(query)

	tokens := make([]string, 0, len(rawTokens))
	for _, t := range rawTokens {
		corrected, ok := e.vocabulary.SpellcheckTerm(t)
		if !ok {
			continue
		}
		tokens = append(tokens, corrected)
	}
	if len(tokens) == 0 {
		return QueryResult{}, ErrEmptyQuery
	}

	n := float64(e.documents.NumDocuments())
	avgdl := e.documents.AvgDocLen()

	scores := make(map[uint32]*documentScore)

	for tokenIdx, token := range tokens {
		termIndex, ok := e.vocabulary.TermIndex(token)
		if !ok {
			continue
		}
		postings, err := e.postings.LoadPostingsList(termIndex)
		if err != nil {
			return QueryResult{}, fmt.Errorf("%w: %v", ErrIndexIO, err)
		}

		nq := float64(postings.CollectionFrequency)
		idf := math.Log((n-nq+0.5)/(nq+0.5) + 1.0)

		for _, entry := range postings.Documents {
			fq := float64(entry.DocumentFrequency)
			dl := float64(e.documents.DocLen(entry.DocumentID))

			bmScore := idf * (fq * (e.ranking.K1 + 1.0)) /
				(fq + e.ranking.K1*(1.0-e.ranking.B+e.ranking.B*(dl/avgdl)))

			ds, ok := scores[entry.DocumentID]
			if !ok {
				ds = &documentScore{termPositions: make(map[uint32][]uint32)}
				scores[entry.DocumentID] = ds
			}
			ds.tfIDF += bmScore
			ds.termPositions[uint32(tokenIdx)] = append(ds.termPositions[uint32(tokenIdx)], entry.Positions...)
		}
	}

	selector := NewTopKSelector(numResults)
	numTokens := len(tokens)
	for docID, score := range scores {
		score.tfIDF /= float64(e.documents.DocLen(docID))
		selector.Push(docID, combineScore(score, numTokens, e.ranking.WindowMultiplier))
	}

	ranked := selector.SortedIDPriorityPairs()
	docs := make([]DocumentResult, len(ranked))
	for i, r := range ranked {
		docs[i] = DocumentResult{ID: r.ID, Path: e.documents.DocPath(r.ID), Score: r.Score}
	}

	return QueryResult{Tokens: tokens, Documents: docs}, nil
}

// combineScore folds a document's accumulated, length-normalized BM25 score
// with a proximity-window bonus: the minimum window (in token positions)
// containing at least one occurrence of every distinct query token,
// computed by sorting (position, query-token-index) pairs and sliding a
// two-pointer window across them.
func combineScore(score *documentScore, numTokens int, windowMultiplier float64) float64 {
	type positionToken struct {
		position uint32
		token    uint32
	}

	var arr []positionToken
	for token, positions := range score.termPositions {
		for _, p := range positions {
			arr = append(arr, positionToken{position: p, token: token})
		}
	}
	sort.Slice(arr, func(i, j int) bool {
		if arr[i].position != arr[j].position {
			return arr[i].position < arr[j].position
		}
		return arr[i].token < arr[j].token
	})

	window := uint32(math.MaxUint32)
	seen := make(map[uint32]int)
	j := 0
	for _, pt := range arr {
		seen[pt.token]++

		for len(seen) == numTokens && j < len(arr) {
			jPos, jToken := arr[j].position, arr[j].token
			if w := pt.position - jPos + 1; w < window {
				window = w
			}

			seen[jToken]--
			if seen[jToken] == 0 {
				delete(seen, jToken)
			}
			j++
		}
	}

	return windowMultiplier*(float64(numTokens)/float64(window)) + score.tfIDF
}

// docIDSet is the ascending document-id set boolean queries operate over,
// backed by a compressed bitmap so AND/OR/NOT stay cheap even over large
// corpora.
type docIDSet struct {
	bitmap *roaring.Bitmap
}

func newDocIDSet() docIDSet {
	return docIDSet{bitmap: roaring.NewBitmap()}
}

func (s docIDSet) add(id uint32) {
	s.bitmap.Add(id)
}

// ToSlice returns the set's document ids in strictly ascending order.
func (s docIDSet) ToSlice() []uint32 {
	return s.bitmap.ToArray()
}

func (e *Engine) termDocSet(term string) (docIDSet, error) {
	set := newDocIDSet()
	corrected, ok := e.vocabulary.SpellcheckTerm(term)
	if !ok {
		return set, nil
	}
	termIndex, ok := e.vocabulary.TermIndex(corrected)
	if !ok {
		return set, nil
	}
	postings, err := e.postings.LoadPostingsList(termIndex)
	if err != nil {
		return set, fmt.Errorf("%w: %v", ErrIndexIO, err)
	}
	for _, entry := range postings.Documents {
		set.add(entry.DocumentID)
	}
	return set, nil
}

func (e *Engine) universe() docIDSet {
	set := newDocIDSet()
	set.bitmap.AddRange(0, uint64(e.documents.NumDocuments()))
	return set
}

func setAnd(a, b docIDSet) docIDSet {
	return docIDSet{bitmap: roaring.And(a.bitmap, b.bitmap)}
}

func setOr(a, b docIDSet) docIDSet {
	return docIDSet{bitmap: roaring.Or(a.bitmap, b.bitmap)}
}

// setNot returns the complement of a within [0, numDocs): every document id
// not in a.
func (e *Engine) setNot(a docIDSet) docIDSet {
	return docIDSet{bitmap: roaring.AndNot(e.universe().bitmap, a.bitmap)}
}
