/*
Package session holds one editing session: the buffer, the suggestion store
last reconciled for it, and the selection state.

Every edit is stamped with a generation number. An analysis response is only
applied when it answers the latest generation, so a slow response for an old
buffer can never overwrite the store of a newer one:

	gen := s.Edit(text)
	doc, err := client.Analyze(ctx, text)
	if err != nil {
		s.Fail(gen, err)
	} else if err := s.Apply(gen, doc); errors.Is(err, session.ErrStale) {
		// a newer edit is in flight
	}

A Session is safe for concurrent use. State is replaced wholesale under one
mutex; the store itself is immutable.
*/
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bastiangx/wordfix/internal/logger"
	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/analysis"
	"github.com/bastiangx/wordfix/pkg/dictionary"
	"github.com/bastiangx/wordfix/pkg/reconcile"
	"github.com/bastiangx/wordfix/pkg/segment"
	"github.com/bastiangx/wordfix/pkg/selection"
	"github.com/bastiangx/wordfix/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var (
	// ErrStale is returned by Apply for a response to an outdated generation.
	ErrStale = errors.New("session: stale analysis response")
	// ErrPending is returned by Choose while the buffer awaits analysis.
	ErrPending = errors.New("session: analysis pending")
)

// Snapshot is the last applied analysis.
type Snapshot struct {
	Gen    uint64
	Buffer string
	Store  suggest.Store
	Err    error
}

// Session is one buffer and its reconciled suggestions.
type Session struct {
	ID string

	mu      sync.Mutex
	rec     reconcile.Reconciler
	buffer  string
	gen     uint64
	settled uint64
	snap    Snapshot
	machine selection.Machine
	log     *log.Logger
}

// New creates an empty session. dict may be nil, in which case the session
// keeps a private dictionary for words ignored through Ignore.
func New(dict *dictionary.UserDict) *Session {
	if dict == nil {
		dict = dictionary.New()
	}
	id := uuid.New().String()
	return &Session{
		ID:  id,
		rec: reconcile.Reconciler{Dict: dict},
		log: logger.Session(id),
	}
}

// Edit replaces the buffer and returns its generation. Any open selection is
// closed since its occurrence may no longer exist.
func (s *Session) Edit(text string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edit(text)
}

func (s *Session) edit(text string) uint64 {
	s.buffer = text
	s.gen++
	s.machine = s.machine.Dismiss()
	s.log.Debugf("edit gen=%d runes=%d", s.gen, segment.Runes(text))
	return s.gen
}

// Buffer returns the current buffer and its generation.
func (s *Session) Buffer() (string, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer, s.gen
}

// Apply reconciles doc against the buffer of generation gen.
// A malformed document still replaces the snapshot, with an empty store and
// the error recorded in Snapshot.Err.
func (s *Session) Apply(gen uint64, doc *analysis.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.log.Debugf("dropping response gen=%d, latest=%d", gen, s.gen)
		return fmt.Errorf("%w: gen %d, latest %d", ErrStale, gen, s.gen)
	}

	store, err := s.rec.Reconcile(s.buffer, doc)
	if err != nil {
		s.log.Warnf("reconcile gen=%d: %v", gen, err)
	}
	s.snap = Snapshot{Gen: gen, Buffer: s.buffer, Store: store, Err: err}
	s.settled = gen
	return err
}

// Fail records a transport failure for gen. The previous store stays in
// place; only the error is updated, and only when gen is current.
func (s *Session) Fail(gen uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return
	}
	s.log.Warnf("analysis gen=%d failed: %v", gen, err)
	s.snap.Err = err
	s.settled = gen
}

// Pending reports whether the latest generation is still awaiting analysis.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settled != s.gen
}

// Snapshot returns the last applied analysis.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Render annotates the current buffer against the current store.
func (s *Session) Render() []segment.Annotated {
	s.mu.Lock()
	defer s.mu.Unlock()
	return segment.Annotate(s.buffer, s.snap.Store)
}

// State returns the selection machine.
func (s *Session) State() selection.Machine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine
}

// Click selects occurrence index of word, or closes it when already active.
// Edge punctuation on word is ignored, as in the store keys.
func (s *Session) Click(word string, index int) selection.Machine {
	s.mu.Lock()
	defer s.mu.Unlock()

	word = utils.WordKey(word)
	sel := selection.Selection{Word: word, Index: index}
	s.machine = s.machine.Click(sel, s.snap.Store.Lookup(word, index))
	return s.machine
}

// Dismiss closes any open selection.
func (s *Session) Dismiss() selection.Machine {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machine = s.machine.Dismiss()
	return s.machine
}

// Choose applies suggestion to the open selection. The new buffer becomes a
// new generation which the caller is expected to submit for analysis.
func (s *Session) Choose(suggestion string) (string, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settled != s.gen {
		return s.buffer, s.gen, ErrPending
	}
	next, out, err := s.machine.Choose(s.buffer, suggestion)
	s.machine = next
	if err != nil {
		return s.buffer, s.gen, err
	}
	if out == s.buffer {
		return s.buffer, s.gen, nil
	}
	gen := s.edit(out)
	return out, gen, nil
}

// Ignore adds word to the dictionary and drops every casing of it from the
// current store.
func (s *Session) Ignore(word string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	word = utils.WordKey(word)
	if word == "" {
		return
	}
	s.rec.Dict.Add(word)
	for _, w := range s.snap.Store.Words() {
		if strings.EqualFold(w, word) {
			s.snap.Store = s.snap.Store.Without(w)
		}
	}
	if sel, ok := s.machine.Selection(); ok && strings.EqualFold(sel.Word, word) {
		s.machine = s.machine.Dismiss()
	}
}

// Dict returns the dictionary consulted on every reconcile.
func (s *Session) Dict() *dictionary.UserDict {
	return s.rec.Dict
}
