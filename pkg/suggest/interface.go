// Package suggest builds the suggestion store: for every flagged surface form,
// one ordered candidate list per occurrence in document order.
package suggest

// Lookup resolves the candidates of one word occurrence.
// Implementations return nil when the occurrence is not flagged.
type Lookup interface {
	// Lookup returns the candidates for the occurrence-th instance of word
	Lookup(word string, occurrence int) []string

	// Has reports whether word has any entry
	Has(word string) bool
}

// Ignorer reports words the user never wants flagged.
type Ignorer interface {
	Contains(word string) bool
}
