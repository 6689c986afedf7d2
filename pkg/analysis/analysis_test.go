package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestCandidatesNaturalOrder(t *testing.T) {
	tok := Token{
		Source: "teh",
		Suggestions: map[string]string{
			"value10": "ten",
			"value2":  "tee",
			"value0":  "the",
			"value1":  "",
			"value9":  "nine",
		},
	}

	got := tok.Candidates()
	want := []string{"the", "tee", "nine", "ten"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Candidates() = %v, want %v", got, want)
	}
}

func TestCandidatesEmpty(t *testing.T) {
	if got := (Token{Source: "cat"}).Candidates(); got != nil {
		t.Fatalf("Candidates() = %v, want nil", got)
	}
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		name   string
		body   string
		tokens int
	}{
		{"envelope", `{"doc":{"paragraphs":[{"sentences":[{"tokens":[{"source":"teh","wordType":0,"suggestions":{"value0":"the"}}]}]}]}}`, 1},
		{"bare document", `{"paragraphs":[{"sentences":[{"tokens":[{"source":"a"},{"source":"b"}]}]}]}`, 2},
		{"missing paragraphs", `{"doc":{}}`, 0},
		{"empty body", ``, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Decode([]byte(tc.body))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got := doc.TokenCount(); got != tc.tokens {
				t.Errorf("TokenCount() = %d, want %d", got, tc.tokens)
			}
		})
	}

	if _, err := Decode([]byte(`{"doc":`)); err == nil {
		t.Fatal("Decode() on truncated JSON returned nil error")
	}
}

func TestClientAnalyze(t *testing.T) {
	var gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/review" {
			http.Error(w, "bad route", http.StatusNotFound)
			return
		}
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotText = req.InputText
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"doc":{"paragraphs":[{"sentences":[{"tokens":[{"source":"teh","suggestions":{"value0":"the"}}]}]}]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "review", 0, time.Second)
	doc, err := c.Analyze(context.Background(), "teh cat")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if gotText != "teh cat" {
		t.Errorf("server saw input_text %q, want %q", gotText, "teh cat")
	}
	if doc.TokenCount() != 1 {
		t.Errorf("TokenCount() = %d, want 1", doc.TokenCount())
	}
}

func TestClientAnalyzeFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5, time.Second)
	if _, err := c.Analyze(context.Background(), "abc"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Analyze() on 502 error = %v, want ErrUnavailable", err)
	}
	if _, err := c.Analyze(context.Background(), "abcdef"); !errors.Is(err, ErrTextTooLong) {
		t.Errorf("Analyze() on long text error = %v, want ErrTextTooLong", err)
	}

	srv.Close()
	if _, err := c.Analyze(context.Background(), "abc"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Analyze() on closed server error = %v, want ErrUnavailable", err)
	}
}

func TestDebouncerRunsLastOnly(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls, last atomic.Int32
	done := make(chan struct{}, 4)

	for i := 1; i <= 3; i++ {
		n := int32(i)
		d.Trigger(func() {
			calls.Add(1)
			last.Store(n)
			done <- struct{}{}
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced call never ran")
	}
	time.Sleep(50 * time.Millisecond)

	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
	if last.Load() != 3 {
		t.Errorf("last = %d, want 3", last.Load())
	}
}
