// Package reconcile is the boundary between the editor and the analysis
// service: it turns an analysis document into a suggestion store for the
// buffer it was computed from, and routes segmentation and replacement
// requests to the packages that own them.
//
// Every function here is deterministic and free of side effects.
package reconcile

import (
	"errors"
	"fmt"

	"github.com/bastiangx/wordfix/pkg/analysis"
	"github.com/bastiangx/wordfix/pkg/dictionary"
	"github.com/bastiangx/wordfix/pkg/merge"
	"github.com/bastiangx/wordfix/pkg/replace"
	"github.com/bastiangx/wordfix/pkg/segment"
	"github.com/bastiangx/wordfix/pkg/selection"
	"github.com/bastiangx/wordfix/pkg/suggest"
	"github.com/charmbracelet/log"
)

// ErrMalformed is returned when a document cannot describe the buffer it was
// requested for. The accompanying store is always empty.
var ErrMalformed = errors.New("reconcile: malformed analysis document")

// Reconciler builds stores, skipping words found in Dict.
type Reconciler struct {
	Dict *dictionary.UserDict
}

// Reconcile builds the suggestion store of buffer from doc.
func Reconcile(buffer string, doc *analysis.Document) (suggest.Store, error) {
	return Reconciler{}.Reconcile(buffer, doc)
}

// Reconcile builds the suggestion store of buffer from doc.
//
// A nil document, or one without tokens while buffer holds words, yields an
// empty store and ErrMalformed.
func (r Reconciler) Reconcile(buffer string, doc *analysis.Document) (suggest.Store, error) {
	if doc == nil {
		return suggest.Store{}, fmt.Errorf("%w: no document", ErrMalformed)
	}
	if doc.TokenCount() == 0 {
		if words := segment.Words(buffer); words > 0 {
			return suggest.Store{}, fmt.Errorf("%w: no tokens for %d words", ErrMalformed, words)
		}
		return suggest.Store{}, nil
	}

	tokens := merge.Document(doc)

	var ignore suggest.Ignorer
	if r.Dict != nil {
		ignore = r.Dict
	}
	store := suggest.NewBuilder(ignore).Build(tokens)
	log.Debugf("reconcile: %d tokens merged to %d, %d words flagged", doc.TokenCount(), len(tokens), store.Len())
	return store, nil
}

// Segment splits buffer into whitespace and word segments.
func Segment(buffer string) []segment.Segment {
	return segment.Split(buffer)
}

// ApplyReplacement replaces the selected occurrence of buffer with suggestion.
// On a stale selection buffer is returned unchanged with
// replace.ErrOccurrenceNotFound.
func ApplyReplacement(buffer string, sel selection.Selection, suggestion string) (string, error) {
	return replace.Apply(buffer, sel.Target(), suggestion)
}
