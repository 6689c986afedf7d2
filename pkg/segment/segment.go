// Package segment splits a text buffer into word and whitespace runs and
// ranks every word among identical words before it.
//
// Splitting is lossless: joining the Text of all segments in order gives the
// buffer back byte for byte. Occurrence indices are derived from the buffer
// on every call and never cached, since any edit can shift them.
package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/suggest"
)

// Segment is a maximal run of whitespace or non-whitespace.
type Segment struct {
	Text         string `json:"text" msgpack:"t"`
	IsWhitespace bool   `json:"isWhitespace" msgpack:"ws"`
	Position     int    `json:"position" msgpack:"p"` // ordinal in the segment list
	Offset       int    `json:"offset" msgpack:"o"`   // byte offset in the buffer
}

// Key returns the text used for lookup and occurrence counting.
// Whitespace segments have an empty key.
func (s Segment) Key() string {
	if s.IsWhitespace {
		return ""
	}
	return utils.WordKey(s.Text)
}

// Parts splits the text into leading punctuation, word core and trailing punctuation.
func (s Segment) Parts() (lead, core, trail string) {
	if s.IsWhitespace {
		return "", "", ""
	}
	return utils.SplitWord(s.Text)
}

// Split cuts buffer into alternating runs.
func Split(buffer string) []Segment {
	if buffer == "" {
		return nil
	}
	segs := make([]Segment, 0, strings.Count(buffer, " ")*2+1)
	start := 0
	inSpace := false

	for i, r := range buffer {
		space := unicode.IsSpace(r)
		if i == 0 {
			inSpace = space
			continue
		}
		if space != inSpace {
			segs = append(segs, Segment{
				Text:         buffer[start:i],
				IsWhitespace: inSpace,
				Position:     len(segs),
				Offset:       start,
			})
			start, inSpace = i, space
		}
	}
	segs = append(segs, Segment{
		Text:         buffer[start:],
		IsWhitespace: inSpace,
		Position:     len(segs),
		Offset:       start,
	})
	return segs
}

// Join rebuilds the buffer from segments.
func Join(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Index returns, for every segment, the number of earlier word segments with
// the same key. Whitespace segments get -1.
func Index(segs []Segment) []int {
	out := make([]int, len(segs))
	seen := make(map[string]int)
	for i, s := range segs {
		if s.IsWhitespace {
			out[i] = -1
			continue
		}
		k := s.Key()
		out[i] = seen[k]
		seen[k]++
	}
	return out
}

// Annotated is a segment ready for rendering.
type Annotated struct {
	Segment
	Word       string   `json:"word,omitempty" msgpack:"w,omitempty"`
	Occurrence int      `json:"occurrence" msgpack:"i"`
	Flagged    bool     `json:"flagged" msgpack:"f"`
	Candidates []string `json:"candidates,omitempty" msgpack:"s,omitempty"`
}

// Annotate splits buffer and looks every word occurrence up in store.
// A segment is flagged when its occurrence has at least one candidate.
func Annotate(buffer string, store suggest.Lookup) []Annotated {
	segs := Split(buffer)
	idx := Index(segs)
	out := make([]Annotated, len(segs))
	for i, s := range segs {
		a := Annotated{Segment: s, Occurrence: idx[i]}
		if !s.IsWhitespace {
			a.Word = s.Key()
			if store != nil {
				a.Candidates = store.Lookup(a.Word, idx[i])
				a.Flagged = len(a.Candidates) > 0
			}
		}
		out[i] = a
	}
	return out
}

// Locate returns the word key and occurrence index of the segment that covers
// byte offset off, for front-ends that only know a cursor position.
func Locate(buffer string, off int) (word string, occurrence int, ok bool) {
	if off < 0 || off > len(buffer) {
		return "", 0, false
	}
	segs := Split(buffer)
	idx := Index(segs)
	for i, s := range segs {
		end := s.Offset + len(s.Text)
		if off >= s.Offset && off < end || (off == end && i == len(segs)-1) {
			if s.IsWhitespace {
				return "", 0, false
			}
			return s.Key(), idx[i], true
		}
	}
	return "", 0, false
}

// Words counts the word segments of buffer.
func Words(buffer string) int {
	n := 0
	for _, s := range Split(buffer) {
		if !s.IsWhitespace {
			n++
		}
	}
	return n
}

// Runes returns the character count of buffer.
func Runes(buffer string) int { return utf8.RuneCountInString(buffer) }
