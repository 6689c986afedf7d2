package suggest

import (
	"slices"
	"sort"
)

// Store maps a word to one candidate list per occurrence, in document order.
// A Store is immutable once built; accessors hand out copies.
// The zero value is an empty store.
type Store struct {
	entries map[string][][]string
	flagged int
}

// Lookup returns the candidates of the occurrence-th instance of word, or nil.
func (s Store) Lookup(word string, occurrence int) []string {
	lists, ok := s.entries[word]
	if !ok || occurrence < 0 || occurrence >= len(lists) {
		return nil
	}
	if len(lists[occurrence]) == 0 {
		return nil
	}
	return slices.Clone(lists[occurrence])
}

// Has reports whether word has an entry.
func (s Store) Has(word string) bool {
	_, ok := s.entries[word]
	return ok
}

// Occurrences returns how many occurrences of word the analysis reported.
func (s Store) Occurrences(word string) int {
	return len(s.entries[word])
}

// Words returns the stored words in lexical order.
func (s Store) Words() []string {
	words := make([]string, 0, len(s.entries))
	for w := range s.entries {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Len returns the number of distinct words.
func (s Store) Len() int { return len(s.entries) }

// Flagged returns the number of occurrences that carry at least one candidate.
func (s Store) Flagged() int { return s.flagged }

// Empty reports whether the store has no entries.
func (s Store) Empty() bool { return len(s.entries) == 0 }

// Entries returns a deep copy of the underlying mapping.
func (s Store) Entries() map[string][][]string {
	out := make(map[string][][]string, len(s.entries))
	for w, lists := range s.entries {
		cp := make([][]string, len(lists))
		for i, l := range lists {
			cp[i] = slices.Clone(l)
		}
		out[w] = cp
	}
	return out
}

// Without returns a copy of s with word removed.
func (s Store) Without(word string) Store {
	if !s.Has(word) {
		return s
	}
	out := Store{entries: make(map[string][][]string, len(s.entries)-1)}
	for w, lists := range s.entries {
		if w == word {
			continue
		}
		out.entries[w] = lists
		for _, l := range lists {
			if len(l) > 0 {
				out.flagged++
			}
		}
	}
	return out
}
