package reconcile

import (
	"errors"
	"reflect"
	"testing"

	"github.com/bastiangx/wordfix/pkg/analysis"
	"github.com/bastiangx/wordfix/pkg/dictionary"
	"github.com/bastiangx/wordfix/pkg/replace"
	"github.com/bastiangx/wordfix/pkg/segment"
	"github.com/bastiangx/wordfix/pkg/selection"
)

func doc(sentences ...[]analysis.Token) *analysis.Document {
	p := analysis.Paragraph{}
	for _, s := range sentences {
		p.Sentences = append(p.Sentences, analysis.Sentence{Tokens: s})
	}
	return &analysis.Document{Paragraphs: []analysis.Paragraph{p}}
}

func sugg(vals ...string) map[string]string {
	m := make(map[string]string, len(vals))
	for i, v := range vals {
		m["value"+string(rune('0'+i))] = v
	}
	return m
}

func TestReconcileEndToEnd(t *testing.T) {
	buffer := "I dosen't know teh answer. Teh end"
	d := doc(
		[]analysis.Token{
			{Source: "I", WordType: analysis.WordKnown},
			{Source: "dosen", WordType: analysis.WordApostropheBase, Suggestions: sugg("doesn", "dozen")},
			{Source: "t", WordType: analysis.WordApostropheContinuation},
			{Source: "know", WordType: analysis.WordKnown},
			{Source: "teh", WordType: analysis.WordOrdinary, Suggestions: sugg("the", "ten")},
			{Source: "answer", WordType: analysis.WordKnown},
		},
		[]analysis.Token{
			{Source: "Teh", WordType: analysis.WordOrdinary, Suggestions: sugg("the")},
			{Source: "end", WordType: analysis.WordKnown},
		},
	)

	store, err := Reconcile(buffer, d)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if got, want := store.Lookup("teh", 0), []string{"the", "ten"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup(teh, 0) = %v, want %v", got, want)
	}
	if got, want := store.Lookup("Teh", 0), []string{"The"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup(Teh, 0) = %v, want %v", got, want)
	}
	if got, want := store.Lookup("dosen't", 0), []string{"doesn't", "dozen't"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup(dosen't, 0) = %v, want %v", got, want)
	}
	if store.Has("answer") || store.Has("know") {
		t.Error("known words got entries")
	}

	// the rendered buffer flags the period-suffixed segment by its trimmed key
	var flagged []string
	for _, a := range segment.Annotate(buffer, store) {
		if a.Flagged {
			flagged = append(flagged, a.Text)
		}
	}
	if want := []string{"dosen't", "teh", "Teh"}; !reflect.DeepEqual(flagged, want) {
		t.Errorf("flagged segments = %v, want %v", flagged, want)
	}
}

func TestReconcileMalformed(t *testing.T) {
	testCases := []struct {
		buffer      string
		doc         *analysis.Document
		wantErr     bool
		description string
	}{
		{"teh cat", nil, true, "Nil document"},
		{"teh cat", &analysis.Document{}, true, "No paragraphs for non-empty buffer"},
		{"teh cat", doc([]analysis.Token{}), true, "Empty sentence for non-empty buffer"},
		{"", &analysis.Document{}, false, "Empty document for empty buffer"},
		{"   \n", &analysis.Document{}, false, "Empty document for whitespace buffer"},
		{"", nil, true, "Nil document for empty buffer"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			store, err := Reconcile(tc.buffer, tc.doc)
			if tc.wantErr != errors.Is(err, ErrMalformed) {
				t.Errorf("Reconcile() error = %v, wantErr %v", err, tc.wantErr)
			}
			if !store.Empty() {
				t.Errorf("Reconcile() store not empty: %v", store.Words())
			}
		})
	}
}

func TestReconcilerSkipsDictionaryWords(t *testing.T) {
	d := doc([]analysis.Token{
		{Source: "Kubernetes", WordType: analysis.WordOrdinary, Suggestions: sugg("Kubernetes's")},
		{Source: "teh", WordType: analysis.WordOrdinary, Suggestions: sugg("the")},
	})
	r := Reconciler{Dict: dictionary.New("kubernetes")}

	store, err := r.Reconcile("Kubernetes teh", d)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if store.Has("Kubernetes") {
		t.Error("dictionary word got an entry")
	}
	if !store.Has("teh") {
		t.Error("teh missing from store")
	}
}

func TestApplyReplacement(t *testing.T) {
	buf := "teh cat teh dog"
	got, err := ApplyReplacement(buf, selection.Selection{Word: "teh", Index: 1}, "the")
	if err != nil || got != "teh cat the dog" {
		t.Errorf("ApplyReplacement() = %q, %v", got, err)
	}

	got, err = ApplyReplacement(buf, selection.Selection{Word: "teh", Index: 5}, "the")
	if !errors.Is(err, replace.ErrOccurrenceNotFound) || got != buf {
		t.Errorf("ApplyReplacement(stale) = %q, %v", got, err)
	}
}

func TestSegmentRoundTrip(t *testing.T) {
	buf := " a  b\n"
	if got := segment.Join(Segment(buf)); got != buf {
		t.Errorf("Join(Segment()) = %q, want %q", got, buf)
	}
}
