package suggest

import (
	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/analysis"
	"github.com/charmbracelet/log"
)

// Builder turns merged tokens into a Store.
type Builder struct {
	ignore Ignorer
}

// NewBuilder creates a Builder. ignore may be nil.
func NewBuilder(ignore Ignorer) *Builder {
	return &Builder{ignore: ignore}
}

// Build builds a Store without an ignore list.
func Build(tokens []analysis.Token) Store {
	return NewBuilder(nil).Build(tokens)
}

// Build walks tokens in document order.
//
// A word gets an entry once any of its occurrences has candidates or is
// tagged WordFlagged. Every occurrence of such a word then owns one slot,
// empty when that occurrence has nothing to offer, so slot i always belongs
// to occurrence i.
func (b *Builder) Build(tokens []analysis.Token) Store {
	lists := make(map[string][][]string)
	surfaced := make(map[string]bool)
	flagged := 0

	for _, tok := range tokens {
		word := utils.WordKey(tok.Source)
		if word == "" {
			continue
		}
		if b.ignore != nil && b.ignore.Contains(word) {
			continue
		}

		cands := utils.NewSuggestionFilter().Filter(Capitalize(word, tok.Candidates()))
		lists[word] = append(lists[word], cands)
		if len(cands) > 0 {
			surfaced[word] = true
			flagged++
		} else if tok.WordType == analysis.WordFlagged {
			surfaced[word] = true
		}
	}

	entries := make(map[string][][]string, len(surfaced))
	for word := range surfaced {
		entries[word] = lists[word]
	}
	log.Debugf("suggest: %d tokens, %d words flagged, %d occurrences with candidates", len(tokens), len(entries), flagged)
	return Store{entries: entries, flagged: flagged}
}

// Capitalize upper-cases the first rune of every candidate when source starts
// upper case. Candidates are returned unchanged otherwise.
func Capitalize(source string, candidates []string) []string {
	if len(candidates) == 0 || !utils.StartsUpper(source) {
		return candidates
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = utils.UpperFirst(c)
	}
	return out
}
