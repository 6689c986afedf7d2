/*
Package analysis holds the wire model of the external linguistic-analysis service
and the transport used to reach it.

The service is treated as a pure function from text to a token stream. A request
carries the whole buffer:

	{"input_text": "teh cat"}

and the response nests tokens by paragraph and sentence:

	{"doc": {"paragraphs": [{"sentences": [{"tokens": [
		{"source": "teh", "wordType": 0, "suggestions": {"value0": "the", "value1": "tea"}},
		{"source": "cat", "wordType": 1, "suggestions": {}}
	]}]}]}}

# Word types

Every token carries a numeric word type. Continuation fragments (the "t" of "don't",
the "-ish" of "bluish") are folded into the preceding token by package merge.
Codes the service adds later are passed through untouched.

# Candidates

Suggestions arrive as a key to string mapping. Candidates returns them as an ordered
slice, keys compared in natural order so "value10" follows "value9". There is no
upper bound on the number of candidates.
*/
package analysis

import (
	"sort"

	"github.com/maruel/natural"
)

// WordType tags a token with the category the analysis service assigned to it.
type WordType int

const (
	WordOrdinary               WordType = iota // plain word
	WordKnown                                  // known-correct word, informational only
	WordApostropheBase                         // head of an apostrophe contraction ("don")
	WordApostropheContinuation                 // tail after an apostrophe ("t")
	WordSuffixContinuation                     // hyphen or suffix fragment glued without separator
	WordFlagged                                // surfaced even without candidates
)

// String returns a short name for logs.
func (w WordType) String() string {
	switch w {
	case WordOrdinary:
		return "ordinary"
	case WordKnown:
		return "known"
	case WordApostropheBase:
		return "apostrophe-base"
	case WordApostropheContinuation:
		return "apostrophe-continuation"
	case WordSuffixContinuation:
		return "suffix-continuation"
	case WordFlagged:
		return "flagged"
	default:
		return "other"
	}
}

// IsContinuation reports whether tokens of this type fold into their predecessor.
func (w WordType) IsContinuation() bool {
	return w == WordApostropheContinuation || w == WordSuffixContinuation
}

// Token is one lexical unit reported by the service.
type Token struct {
	Source      string            `json:"source" msgpack:"source"`
	WordType    WordType          `json:"wordType" msgpack:"wordType"`
	Suggestions map[string]string `json:"suggestions,omitempty" msgpack:"suggestions,omitempty"`
}

// Sentence is an ordered run of tokens.
type Sentence struct {
	Tokens []Token `json:"tokens" msgpack:"tokens"`
}

// Paragraph is an ordered run of sentences.
type Paragraph struct {
	Sentences []Sentence `json:"sentences" msgpack:"sentences"`
}

// Document is the analysis of one buffer snapshot.
type Document struct {
	Paragraphs []Paragraph `json:"paragraphs" msgpack:"paragraphs"`
}

// Envelope is the HTTP response body of the review endpoint.
type Envelope struct {
	Doc *Document `json:"doc"`
}

// Request is the HTTP request body of the review endpoint.
type Request struct {
	InputText string `json:"input_text"`
}

// CandidateKeys returns the suggestion keys in natural order.
func (t Token) CandidateKeys() []string {
	keys := make([]string, 0, len(t.Suggestions))
	for k := range t.Suggestions {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return natural.Less(keys[i], keys[j]) })
	return keys
}

// Candidates returns the non-empty suggestion values ordered by key.
func (t Token) Candidates() []string {
	if len(t.Suggestions) == 0 {
		return nil
	}
	out := make([]string, 0, len(t.Suggestions))
	for _, k := range t.CandidateKeys() {
		if v := t.Suggestions[k]; v != "" {
			out = append(out, v)
		}
	}
	return out
}

// TokenCount returns the number of tokens across all sentences.
func (d *Document) TokenCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, p := range d.Paragraphs {
		for _, s := range p.Sentences {
			n += len(s.Tokens)
		}
	}
	return n
}
