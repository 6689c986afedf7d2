package utils

// SuggestionFilter drops repeated candidates, keeping the first of each.
// Not safe for concurrent use; build one per token.
type SuggestionFilter struct {
	seenWords map[string]bool
}

// NewSuggestionFilter creates an empty filter.
// Comparison is exact: a candidate differing only in case is a real correction.
func NewSuggestionFilter() *SuggestionFilter {
	return &SuggestionFilter{seenWords: make(map[string]bool)}
}

// ShouldInclude reports whether word has not been seen yet and records it.
func (f *SuggestionFilter) ShouldInclude(word string) bool {
	if word == "" || f.seenWords[word] {
		return false
	}
	f.seenWords[word] = true
	return true
}

// Filter keeps the first occurrence of every candidate, in order.
func (f *SuggestionFilter) Filter(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if f.ShouldInclude(w) {
			out = append(out, w)
		}
	}
	return out
}
