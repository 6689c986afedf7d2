package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bastiangx/wordfix/pkg/analysis"
	"github.com/bastiangx/wordfix/pkg/session"
)

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(_ context.Context, text string) (*analysis.Document, error) {
	var toks []analysis.Token
	for _, w := range strings.Fields(text) {
		tok := analysis.Token{Source: w, WordType: analysis.WordKnown}
		if w == "teh" {
			tok.WordType = analysis.WordOrdinary
			tok.Suggestions = map[string]string{"value0": "the", "value1": "tea"}
		}
		toks = append(toks, tok)
	}
	return &analysis.Document{Paragraphs: []analysis.Paragraph{{
		Sentences: []analysis.Sentence{{Tokens: toks}},
	}}}, nil
}

func run(t *testing.T, input string, maxText int) string {
	t.Helper()
	var out bytes.Buffer
	h := newInputHandler(session.New(nil), stubAnalyzer{}, maxText, false, strings.NewReader(input), &out)
	if err := h.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return out.String()
}

func TestSubmitListsFlaggedWords(t *testing.T) {
	out := run(t, "teh cat teh\n", 0)
	for _, want := range []string{"teh cat teh", "11/5,000", "Found 2 flagged words", "the, tea"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPickChoose(t *testing.T) {
	out := run(t, "teh cat teh\n:pick 2\n:choose 1\n", 0)
	if !strings.Contains(out, "Suggestions for 'teh':") {
		t.Errorf("pick output missing:\n%s", out)
	}
	if !strings.Contains(out, "teh cat the\n") {
		t.Errorf("buffer after choose missing:\n%s", out)
	}
	if !strings.Contains(out, "Found 1 flagged words") {
		t.Errorf("reanalysis missing:\n%s", out)
	}
}

func TestIgnoreCommand(t *testing.T) {
	out := run(t, "teh\n:ignore teh\n", 0)
	if !strings.Contains(out, "No issues found") {
		t.Errorf("ignored word still listed:\n%s", out)
	}
}

func TestTooLongNotSubmitted(t *testing.T) {
	out := run(t, "teh cat\n", 3)
	if strings.Contains(out, "flagged") {
		t.Errorf("long text was analyzed:\n%s", out)
	}
}

func TestRenderCounter(t *testing.T) {
	s := newStyles(&bytes.Buffer{}, false)
	if got := s.renderCounter(1234, 5000); got != "1,234/5,000" {
		t.Errorf("renderCounter() = %q", got)
	}
}

func TestCancelStopsIdleInput(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()
	h := newInputHandler(session.New(nil), stubAnalyzer{}, 0, false, in, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("input loop still blocked after cancel")
	}
}
