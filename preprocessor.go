package blaze

// Preprocessor turns raw document or query text into the stemmed token
// stream the postings store and vocabulary are built from: tokenize,
// lowercase, stem. Unlike Analyze/AnalyzeWithConfig (general-purpose text
// analysis, stopwords and length filtering included), a Preprocessor never
// drops a token on stopword or length grounds — document length, position
// indices and query/document token alignment all depend on a stable,
// lossless token count.
type Preprocessor struct {
	config AnalyzerConfig
}

// NewPreprocessor returns a Preprocessor using the build/query pipeline:
// tokenize, lowercase, stem, with stopwords and minimum length disabled.
func NewPreprocessor() Preprocessor {
	return Preprocessor{
		config: AnalyzerConfig{
			MinTokenLength:  0,
			EnableStemming:  true,
			EnableStopwords: false,
		},
	}
}

// TokenizeAndStem runs text through the pipeline, returning one token per
// word in source order.
func (p Preprocessor) TokenizeAndStem(text string) []string {
	return AnalyzeWithConfig(text, p.config)
}
