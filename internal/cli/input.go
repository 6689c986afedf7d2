// Package cli is an interactive terminal front-end over a session, for
// trying the analysis service by hand.
//
// A line of text replaces the buffer and is analyzed at once. Lines starting
// with ':' are commands:
//
//	:pick N     open the suggestions of the Nth flagged word
//	:choose N   apply the Nth suggestion of the open list
//	:dismiss    close the open list
//	:ignore W   never flag W again
//	:show       print the buffer again
//	:help       list commands
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/wordfix/pkg/analysis"
	"github.com/bastiangx/wordfix/pkg/segment"
	"github.com/bastiangx/wordfix/pkg/session"
	"github.com/charmbracelet/log"
)

// InputHandler reads lines from stdin and drives a session.
type InputHandler struct {
	session  *session.Session
	analyzer analysis.Analyzer
	maxText  int
	styles   styles
	in       io.Reader
	out      *log.Logger
	flagged  []flaggedWord
}

// NewInputHandler creates a handler on stdin and stdout.
func NewInputHandler(sess *session.Session, analyzer analysis.Analyzer, maxText int, color bool) *InputHandler {
	return newInputHandler(sess, analyzer, maxText, color, os.Stdin, os.Stdout)
}

func newInputHandler(sess *session.Session, analyzer analysis.Analyzer, maxText int, color bool, in io.Reader, out io.Writer) *InputHandler {
	if maxText <= 0 {
		maxText = analysis.DefaultMaxText
	}
	return &InputHandler{
		session:  sess,
		analyzer: analyzer,
		maxText:  maxText,
		styles:   newStyles(out, color),
		in:       in,
		out:      log.NewWithOptions(out, log.Options{ReportTimestamp: false}),
	}
}

// Start runs the input loop until ctx is done or input ends. A cancelled ctx
// stops the loop even while it waits for a line.
func (h *InputHandler) Start(ctx context.Context) error {
	h.out.Print("wordfix CLI [BETA]")
	h.out.Print("type a sentence and press Enter, :help for commands (Ctrl+C to exit)")

	lines := readLines(ctx, h.in)
	for {
		h.out.Print("> ")
		var l line
		select {
		case <-ctx.Done():
			return nil
		case l = <-lines:
		}
		if text := strings.TrimRight(l.text, "\r\n"); text != "" {
			h.handleInput(ctx, text)
		}
		if l.err != nil {
			if errors.Is(l.err, io.EOF) {
				return nil
			}
			return l.err
		}
	}
}

type line struct {
	text string
	err  error
}

func readLines(ctx context.Context, in io.Reader) <-chan line {
	lines := make(chan line)
	go func() {
		reader := bufio.NewReader(in)
		for {
			text, err := reader.ReadString('\n')
			select {
			case lines <- line{text: text, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return lines
}

func (h *InputHandler) handleInput(ctx context.Context, line string) {
	if !strings.HasPrefix(line, ":") {
		h.submit(ctx, line)
		return
	}

	cmd, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "pick", "p":
		h.pick(arg)
	case "choose", "c":
		h.choose(ctx, arg)
	case "dismiss", "d":
		h.session.Dismiss()
		h.show()
	case "ignore", "i":
		if arg == "" {
			log.Error("Usage: :ignore WORD")
			return
		}
		h.session.Ignore(arg)
		h.show()
	case "show", "s":
		h.show()
	case "help", "h":
		for _, l := range h.styles.renderList([]string{
			":pick N     open the suggestions of the Nth flagged word",
			":choose N   apply the Nth suggestion",
			":dismiss    close the suggestion list",
			":ignore W   never flag W again",
			":show       print the buffer",
		}) {
			h.out.Print(l)
		}
	default:
		log.Errorf("Unknown command: %s", cmd)
	}
}

// submit replaces the buffer and analyzes it synchronously.
func (h *InputHandler) submit(ctx context.Context, text string) {
	if n := segment.Runes(text); n > h.maxText {
		log.Errorf("Text too long: %s", h.styles.renderCounter(n, h.maxText))
		return
	}
	h.analyze(ctx, h.session.Edit(text), text)
}

func (h *InputHandler) analyze(ctx context.Context, gen uint64, text string) {
	start := time.Now()
	doc, err := h.analyzer.Analyze(ctx, text)
	if err != nil {
		h.session.Fail(gen, err)
		log.Errorf("Analysis failed: %v", err)
		return
	}
	if err := h.session.Apply(gen, doc); err != nil {
		log.Warnf("Could not use analysis: %v", err)
	}
	log.Debugf("Took [ %v ] for %d runes", time.Since(start), segment.Runes(text))
	h.show()
}

// show prints the buffer, the counter and the flagged words.
func (h *InputHandler) show() {
	buf, _ := h.session.Buffer()
	text, flagged := h.styles.renderBuffer(h.session.Render(), h.session.State())
	h.flagged = flagged

	h.out.Print(text)
	h.out.Print(h.styles.renderCounter(segment.Runes(buf), h.maxText))
	if len(flagged) == 0 {
		h.out.Print("No issues found")
		return
	}

	items := make([]string, len(flagged))
	for i, f := range flagged {
		items[i] = fmt.Sprintf("%-20s %s", f.Word, strings.Join(f.Candidates, ", "))
	}
	h.out.Printf("Found %d flagged words:", len(flagged))
	for _, l := range h.styles.renderList(items) {
		h.out.Print(l)
	}
}

func (h *InputHandler) pick(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(h.flagged) {
		log.Errorf("No flagged word %q", arg)
		return
	}
	f := h.flagged[n-1]
	m := h.session.Click(f.Word, f.Occurrence)
	cands := m.Candidates()
	if len(cands) == 0 {
		h.show()
		return
	}
	h.out.Printf("Suggestions for '%s':", f.Word)
	for _, l := range h.styles.renderList(cands) {
		h.out.Print(l)
	}
}

func (h *InputHandler) choose(ctx context.Context, arg string) {
	cands := h.session.State().Candidates()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(cands) {
		log.Errorf("No suggestion %q", arg)
		return
	}
	buf, gen, err := h.session.Choose(cands[n-1])
	if err != nil {
		log.Errorf("Could not apply suggestion: %v", err)
		return
	}
	h.analyze(ctx, gen, buf)
}
