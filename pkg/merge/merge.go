// Package merge folds continuation fragments emitted by the analysis service
// back into the logical word they belong to.
//
// "don" + "t" (apostrophe continuation) becomes "don't", "blu" + "ish"
// (suffix continuation) becomes "bluish". Candidates of the head token are
// extended the same way, so a candidate "do" for "don" becomes "do't".
package merge

import (
	"github.com/bastiangx/wordfix/pkg/analysis"
)

// Apostrophe is inserted between a head and its apostrophe continuation.
const Apostrophe = "'"

// Tokens merges one sentence. The input slice is not modified and the output
// is never longer than the input.
//
// After a fold the merged token stays the fold target, so chains of three or
// more fragments collapse into one token. A continuation with nothing before
// it is kept as is.
func Tokens(in []analysis.Token) []analysis.Token {
	out := make([]analysis.Token, 0, len(in))
	havePrev := false

	for _, tok := range in {
		var sep string
		switch tok.WordType {
		case analysis.WordApostropheContinuation:
			sep = Apostrophe
		case analysis.WordSuffixContinuation:
			sep = ""
		default:
			out = append(out, tok)
			havePrev = true
			continue
		}

		if !havePrev {
			out = append(out, tok)
			continue
		}
		out[len(out)-1] = fold(out[len(out)-1], tok, sep)
	}
	return out
}

// Document merges every sentence of doc and returns the merged tokens in
// document order. Merging never crosses a sentence boundary.
func Document(doc *analysis.Document) []analysis.Token {
	if doc == nil {
		return nil
	}
	var out []analysis.Token
	for _, p := range doc.Paragraphs {
		for _, s := range p.Sentences {
			out = append(out, Tokens(s.Tokens)...)
		}
	}
	return out
}

// fold returns a new token; prev.Suggestions is copied, never written.
func fold(prev, cur analysis.Token, sep string) analysis.Token {
	merged := analysis.Token{
		Source:   prev.Source + sep + cur.Source,
		WordType: prev.WordType,
	}
	if len(prev.Suggestions) > 0 {
		merged.Suggestions = make(map[string]string, len(prev.Suggestions))
		for k, v := range prev.Suggestions {
			merged.Suggestions[k] = v + sep + cur.Source
		}
	}
	return merged
}
