package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/segment"
	"github.com/bastiangx/wordfix/pkg/selection"
	"github.com/charmbracelet/lipgloss"
)

// styles used to print a buffer
type styles struct {
	flagged  lipgloss.Style
	selected lipgloss.Style
	index    lipgloss.Style
	counter  lipgloss.Style
	over     lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		return styles{
			flagged:  r.NewStyle(),
			selected: r.NewStyle(),
			index:    r.NewStyle(),
			counter:  r.NewStyle(),
			over:     r.NewStyle(),
		}
	}
	return styles{
		flagged: r.NewStyle().Underline(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"}),
		selected: r.NewStyle().Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"}),
		index:   r.NewStyle().Faint(true),
		counter: r.NewStyle().Italic(true),
		over: r.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"}),
	}
}

// flaggedWord is one flagged occurrence, numbered for the pick command.
type flaggedWord struct {
	Word       string
	Occurrence int
	Candidates []string
}

// renderBuffer returns buffer with every flagged occurrence styled, and the
// flagged occurrences in buffer order.
func (s styles) renderBuffer(segs []segment.Annotated, m selection.Machine) (string, []flaggedWord) {
	sel, hasSel := m.Selection()

	var b strings.Builder
	var flagged []flaggedWord
	for _, a := range segs {
		if a.IsWhitespace {
			b.WriteString(a.Text)
			continue
		}
		lead, core, trail := a.Parts()
		switch {
		case hasSel && sel.Word == a.Word && sel.Index == a.Occurrence:
			core = s.selected.Render(core)
		case a.Flagged:
			core = s.flagged.Render(core)
		}
		if a.Flagged {
			flagged = append(flagged, flaggedWord{Word: a.Word, Occurrence: a.Occurrence, Candidates: a.Candidates})
		}
		b.WriteString(lead + core + trail)
	}
	return b.String(), flagged
}

// renderCounter formats the character counter, "1,234/5,000".
func (s styles) renderCounter(runes, max int) string {
	text := fmt.Sprintf("%s/%s", utils.FormatWithCommas(runes), utils.FormatWithCommas(max))
	if runes > max {
		return s.over.Render(text)
	}
	return s.counter.Render(text)
}

// renderList formats numbered entries.
func (s styles) renderList(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = fmt.Sprintf("%s %s", s.index.Render(fmt.Sprintf("%2d.", i+1)), item)
	}
	return out
}
