package domain

// TermVector maps a term to its frequency within one document, as
// computed by the search engine's analyzer.
type TermVector map[string]int

// TermCount is one row of a ranked word-frequency report.
type TermCount struct {
	Term  string
	Count int
}

// IndexSchema carries the configurable parts of the fixed book mapping.
type IndexSchema struct {
	// LanguageStopwords names a built-in stop list, e.g. "_russian_".
	LanguageStopwords string

	// ExtraStopwords are domain-specific words removed from body text.
	ExtraStopwords []string
}
