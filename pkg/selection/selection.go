// Package selection tracks which word occurrence is active and whether its
// suggestion list is open.
//
// Machine is a value: every event returns the next Machine and leaves the
// receiver alone. At most one list is open because a Machine holds at most one
// Selection.
package selection

import (
	"errors"
	"fmt"

	"github.com/bastiangx/wordfix/pkg/replace"
)

// ErrNotOpen is returned by Choose when no suggestion list is open.
var ErrNotOpen = errors.New("selection: no suggestion list open")

// State of the machine.
type State int

const (
	Idle State = iota
	Selected
	SuggestionsOpen
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selected:
		return "selected"
	case SuggestionsOpen:
		return "open"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Selection names one occurrence of a word.
type Selection struct {
	Word  string `json:"word" msgpack:"w"`
	Index int    `json:"index" msgpack:"i"`
}

// Target converts the selection for the replacement resolver.
func (s Selection) Target() replace.Target {
	return replace.Target{Word: s.Word, Occurrence: s.Index}
}

// Machine is the selection state. The zero value is Idle.
type Machine struct {
	state      State
	sel        Selection
	candidates []string
}

// State returns the current state.
func (m Machine) State() State { return m.state }

// Selection returns the active selection; ok is false when Idle.
func (m Machine) Selection() (Selection, bool) {
	return m.sel, m.state != Idle
}

// Candidates returns the open list, nil unless SuggestionsOpen.
func (m Machine) Candidates() []string {
	if m.state != SuggestionsOpen {
		return nil
	}
	out := make([]string, len(m.candidates))
	copy(out, m.candidates)
	return out
}

// Click handles a click on a word occurrence carrying candidates.
// Clicking the active occurrence again closes it. A new occurrence replaces
// whatever was open before.
func (m Machine) Click(sel Selection, candidates []string) Machine {
	if m.state != Idle && m.sel == sel {
		return Machine{}
	}
	if len(candidates) == 0 {
		return Machine{state: Selected, sel: sel}
	}
	cp := make([]string, len(candidates))
	copy(cp, candidates)
	return Machine{state: SuggestionsOpen, sel: sel, candidates: cp}
}

// Dismiss closes any selection, as a click outside the list does.
func (m Machine) Dismiss() Machine { return Machine{} }

// Choose applies suggestion to the selected occurrence of buffer and returns
// to Idle. The machine returns to Idle even when the occurrence has gone
// stale; the buffer then comes back unchanged with the resolver's error.
func (m Machine) Choose(buffer, suggestion string) (Machine, string, error) {
	if m.state != SuggestionsOpen {
		return m, buffer, ErrNotOpen
	}
	out, err := replace.Apply(buffer, m.sel.Target(), suggestion)
	return Machine{}, out, err
}
