package blaze

import "errors"

// Sentinel errors classifying the failure modes a caller needs to tell
// apart: corpus reads, index file I/O, and malformed boolean queries are all
// recoverable; an out-of-range document id is a programmer error and panics
// instead (see Documents.DocLen and friends).
var (
	// ErrCorpusIO is returned by a build when the corpus directory cannot
	// be walked. A single document that cannot be read does not produce
	// it: that file is logged and skipped and the build continues.
	ErrCorpusIO = errors.New("blaze: could not read corpus document")

	// ErrIndexIO is returned when an on-disk index file could not be
	// opened, written, or decoded.
	ErrIndexIO = errors.New("blaze: index file I/O failed")

	// ErrMalformedQuery is returned by the boolean evaluator for
	// unbalanced parentheses, stray operators, or missing operands. It is
	// never a panic.
	ErrMalformedQuery = errors.New("blaze: malformed boolean query")

	// ErrUnknownTerm is returned by Postings.LoadPostingsList for a term
	// index outside the vocabulary. Unknown query terms are not reported
	// with it: ranked queries drop them and boolean queries treat them as
	// matching no document.
	ErrUnknownTerm = errors.New("blaze: unknown term")

	// ErrEmptyQuery is returned when a ranked query contains no usable
	// tokens after preprocessing and spell correction, or when a boolean
	// query string contains no tokens at all.
	ErrEmptyQuery = errors.New("blaze: query has no usable tokens")
)
