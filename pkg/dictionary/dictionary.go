/*
Package dictionary holds the user dictionary: words that are never flagged,
whatever the analysis service says about them.

Words are kept in a patricia trie keyed by their lower-cased form, so "Kafka"
protects "kafka" and "KAFKA" as well, and prefix listings stay cheap for
front-ends that complete against the dictionary.

A dictionary file is either plain text, one word per line with '#' comments:

	# project words
	kafka
	wordfix

or JSON in the form {"words": ["kafka", "wordfix"]}.
*/
package dictionary

import (
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// UserDict is a case-insensitive word set, safe for concurrent use.
type UserDict struct {
	trie  *patricia.Trie
	count int
	mu    sync.RWMutex
}

// New creates a UserDict holding words.
func New(words ...string) *UserDict {
	d := &UserDict{trie: patricia.NewTrie()}
	for _, w := range words {
		d.Add(w)
	}
	return d
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Add inserts word and reports whether it was new.
func (d *UserDict) Add(word string) bool {
	key := normalize(word)
	if key == "" {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.trie.Insert(patricia.Prefix(key), strings.TrimSpace(word)) {
		d.count++
		return true
	}
	return false
}

// Remove deletes word and reports whether it was present.
func (d *UserDict) Remove(word string) bool {
	key := normalize(word)
	if key == "" {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.trie.Delete(patricia.Prefix(key)) {
		d.count--
		return true
	}
	return false
}

// Contains reports whether word is in the dictionary, ignoring case.
// A nil UserDict contains nothing.
func (d *UserDict) Contains(word string) bool {
	if d == nil {
		return false
	}
	key := normalize(word)
	if key == "" {
		return false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.trie.Get(patricia.Prefix(key)) != nil
}

// WithPrefix returns the stored spellings of every word starting with prefix,
// sorted.
func (d *UserDict) WithPrefix(prefix string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var words []string
	collect := func(p patricia.Prefix, item patricia.Item) error {
		if w, ok := item.(string); ok {
			words = append(words, w)
		}
		return nil
	}

	var err error
	if key := normalize(prefix); key == "" {
		err = d.trie.Visit(collect)
	} else {
		err = d.trie.VisitSubtree(patricia.Prefix(key), collect)
	}
	if err != nil {
		log.Errorf("Error visiting dictionary subtree: %v", err)
		return nil
	}
	sort.Strings(words)
	return words
}

// Words returns every stored spelling, sorted.
func (d *UserDict) Words() []string {
	return d.WithPrefix("")
}

// Len returns the number of words.
func (d *UserDict) Len() int {
	if d == nil {
		return 0
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.count
}
