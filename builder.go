package blaze

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// BuildConfig tunes the build pipeline's preprocessing and term filtering.
type BuildConfig struct {
	// MinDocFrequency drops terms appearing in this many documents or
	// fewer; a term survives only once its document frequency exceeds
	// MinDocFrequency.
	MinDocFrequency uint32
	// MaxDocFrequencyRatio drops terms appearing in more than this
	// fraction of the corpus's documents (a stop-word-like cutoff).
	MaxDocFrequencyRatio float64
	Preprocessor         Preprocessor
	Logger               *slog.Logger
}

// DefaultBuildConfig returns the standard build configuration: no minimum
// document frequency, an 0.8 maximum document frequency ratio, and the
// default tokenize/lowercase/stem preprocessor.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		MinDocFrequency:      0,
		MaxDocFrequencyRatio: 0.8,
		Preprocessor:         NewPreprocessor(),
		Logger:               slog.Default(),
	}
}

// Build walks corpusDir and writes a complete index at
// indexBasePath{.docs,.alphas,.postings,.offsets} using the default build
// configuration.
func Build(corpusDir, indexBasePath string) error {
	return BuildWithConfig(corpusDir, indexBasePath, DefaultBuildConfig())
}

// BuildWithConfig is Build with an explicit BuildConfig.
func BuildWithConfig(corpusDir, indexBasePath string, cfg BuildConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	paths, err := listCorpusFiles(corpusDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorpusIO, err)
	}
	logger.Info("discovered corpus documents", "count", len(paths))

	tokenSets, readErrs := preprocessCorpus(paths, cfg.Preprocessor)

	documents, postings, termIndex := accumulate(paths, tokenSets, readErrs, logger)

	terms, sortedPostings, docFrequencies := filterAndSortTerms(postings, termIndex, len(documents), cfg)

	if err := WritePostings(terms, sortedPostings, indexBasePath); err != nil {
		return fmt.Errorf("%w: %v", ErrIndexIO, err)
	}
	if err := WriteVocabulary(terms, docFrequencies, indexBasePath); err != nil {
		return fmt.Errorf("%w: %v", ErrIndexIO, err)
	}
	if err := WriteDocuments(documents, indexBasePath); err != nil {
		return fmt.Errorf("%w: %v", ErrIndexIO, err)
	}

	logger.Info("build complete", "documents", len(documents), "terms", len(terms))
	return nil
}

// preprocessCorpus reads and tokenizes every file concurrently, preserving
// the input order of paths in its two result slices.
func preprocessCorpus(paths []string, p Preprocessor) ([][]string, []error) {
	tokenSets := make([][]string, len(paths))
	readErrs := make([]error, len(paths))

	const maxInFlight = 8
	sem := make(chan struct{}, maxInFlight)
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			content, err := os.ReadFile(path)
			if err != nil {
				readErrs[i] = err
				return
			}
			tokenSets[i] = p.TokenizeAndStem(string(content))
		}(i, path)
	}
	wg.Wait()

	return tokenSets, readErrs
}

// accumulate sequentially assigns document ids in path order, building the
// documents table and term postings. This is the single serialized phase
// that makes the build deterministic regardless of how preprocessing was
// scheduled.
func accumulate(paths []string, tokenSets [][]string, readErrs []error, logger *slog.Logger) ([]Document, []PostingList, map[string]int) {
	documents := make([]Document, 0, len(paths))
	termIndex := make(map[string]int)
	var postings []PostingList
	perTermDocEntry := make([]map[uint32]int, 0)

	var docID uint32
	for i, path := range paths {
		if readErrs[i] != nil {
			logger.Error("skipping unreadable document", "path", path, "err", readErrs[i])
			continue
		}

		tokens := tokenSets[i]
		documents = append(documents, Document{Path: path, Length: uint32(len(tokens))})

		for pos, token := range tokens {
			idx, ok := termIndex[token]
			if !ok {
				idx = len(postings)
				termIndex[token] = idx
				postings = append(postings, PostingList{})
				perTermDocEntry = append(perTermDocEntry, make(map[uint32]int))
			}

			entryIdx, ok := perTermDocEntry[idx][docID]
			if !ok {
				entryIdx = len(postings[idx].Documents)
				perTermDocEntry[idx][docID] = entryIdx
				postings[idx].Documents = append(postings[idx].Documents, PostingEntry{DocumentID: docID})
			}

			entry := &postings[idx].Documents[entryIdx]
			entry.DocumentFrequency++
			entry.Positions = append(entry.Positions, uint32(pos))
		}

		docID++
	}

	for i := range postings {
		postings[i].CollectionFrequency = uint32(len(postings[i].Documents))
	}

	return documents, postings, termIndex
}

// filterAndSortTerms drops terms outside the configured document-frequency
// band and returns the surviving terms in ascending (vocabulary) order,
// along with their posting lists and document frequencies in that same
// order.
func filterAndSortTerms(postings []PostingList, termIndex map[string]int, numDocs int, cfg BuildConfig) ([]string, []PostingList, []uint32) {
	maxDF := uint32(cfg.MaxDocFrequencyRatio * float64(numDocs))

	terms := make([]string, 0, len(termIndex))
	for term, idx := range termIndex {
		df := postings[idx].CollectionFrequency
		if df <= cfg.MinDocFrequency || df > maxDF {
			continue
		}
		terms = append(terms, term)
	}
	sort.Strings(terms)

	sortedPostings := make([]PostingList, len(terms))
	docFrequencies := make([]uint32, len(terms))
	for i, term := range terms {
		pl := postings[termIndex[term]]
		sort.Slice(pl.Documents, func(a, b int) bool {
			return pl.Documents[a].DocumentID < pl.Documents[b].DocumentID
		})
		sortedPostings[i] = pl
		docFrequencies[i] = pl.CollectionFrequency
	}

	return terms, sortedPostings, docFrequencies
}

// listCorpusFiles walks root recursively in sorted order, skipping dotfiles
// and dot-directories, so builds are reproducible run to run.
func listCorpusFiles(root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}
