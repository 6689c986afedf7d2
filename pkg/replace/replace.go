// Package replace rewrites one occurrence of a word in a buffer.
package replace

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/segment"
)

var (
	// ErrOccurrenceNotFound means the buffer no longer holds the requested
	// occurrence. The buffer is returned unchanged.
	ErrOccurrenceNotFound = errors.New("replace: occurrence not found")
	// ErrEmptySelection means no word was given.
	ErrEmptySelection = errors.New("replace: empty selection")
)

// Target names one occurrence of a word.
type Target struct {
	Word       string
	Occurrence int
}

// Apply replaces the word core of the target occurrence with suggestion,
// keeping any punctuation attached to it. Every other segment, whitespace
// included, is copied through untouched.
//
// On error the original buffer is returned.
func Apply(buffer string, target Target, suggestion string) (string, error) {
	word := utils.WordKey(target.Word)
	if word == "" {
		return buffer, ErrEmptySelection
	}
	if target.Occurrence < 0 {
		return buffer, fmt.Errorf("%w: %q #%d", ErrOccurrenceNotFound, word, target.Occurrence)
	}

	segs := segment.Split(buffer)
	seen := 0
	for _, s := range segs {
		if s.IsWhitespace || s.Key() != word {
			continue
		}
		if seen < target.Occurrence {
			seen++
			continue
		}
		lead, _, trail := s.Parts()
		var b strings.Builder
		b.Grow(len(buffer) - len(s.Text) + len(lead) + len(suggestion) + len(trail))
		b.WriteString(buffer[:s.Offset])
		b.WriteString(lead)
		b.WriteString(suggestion)
		b.WriteString(trail)
		b.WriteString(buffer[s.Offset+len(s.Text):])
		return b.String(), nil
	}
	return buffer, fmt.Errorf("%w: %q #%d (buffer has %d)", ErrOccurrenceNotFound, word, target.Occurrence, seen)
}
