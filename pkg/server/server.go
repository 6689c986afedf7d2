package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordfix/internal/logger"
	"github.com/bastiangx/wordfix/pkg/analysis"
	"github.com/bastiangx/wordfix/pkg/reconcile"
	"github.com/bastiangx/wordfix/pkg/replace"
	"github.com/bastiangx/wordfix/pkg/segment"
	"github.com/bastiangx/wordfix/pkg/selection"
	"github.com/bastiangx/wordfix/pkg/session"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Options configures a Server. Zero values select stdin, stdout, no
// debouncing and the default length cap.
type Options struct {
	MaxText  int
	Debounce time.Duration
	DictPath string // ignored words are saved here when set
	In       io.Reader
	Out      io.Writer
}

// Server handles the IPC of one editing session
type Server struct {
	session   *session.Session
	analyzer  analysis.Analyzer
	debouncer *analysis.Debouncer
	maxText   int
	dictPath  string

	dec   *msgpack.Decoder
	out   *bufio.Writer
	enc   *msgpack.Encoder
	encMu sync.Mutex

	runMu    sync.Mutex
	closed   bool
	inflight sync.WaitGroup

	// held for the whole analysis call; one request reaches the service at a time
	analyzeMu sync.Mutex

	log *log.Logger
}

// NewServer creates a server driving sess with analyzer.
func NewServer(sess *session.Session, analyzer analysis.Analyzer, opts Options) *Server {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.MaxText <= 0 {
		opts.MaxText = analysis.DefaultMaxText
	}
	out := bufio.NewWriter(opts.Out)
	return &Server{
		session:   sess,
		analyzer:  analyzer,
		debouncer: analysis.NewDebouncer(opts.Debounce),
		maxText:   opts.MaxText,
		dictPath:  opts.DictPath,
		dec:       msgpack.NewDecoder(bufio.NewReader(opts.In)),
		out:       out,
		enc:       msgpack.NewEncoder(out),
		log:       logger.Session(sess.ID),
	}
}

// Start serves requests until the input ends or ctx is cancelled, then waits
// for analyses already running. Cancelling ctx returns at once even while a
// read is blocked; the reader goroutine is left to the closing input.
func (s *Server) Start(ctx context.Context) error {
	s.log.Debug("Starting Server.")
	defer s.shutdown()

	s.send(Response{Status: StatusReady, Session: s.session.ID})

	msgs := s.readLoop(ctx)
	for {
		var m message
		select {
		case <-ctx.Done():
			s.log.Debug("Context done, stopping server.")
			return nil
		case m = <-msgs:
		}

		if m.err != nil {
			if errors.Is(m.err, io.EOF) || errors.Is(m.err, io.ErrUnexpectedEOF) {
				return nil
			}
			s.log.Errorf("Reading request: %v", m.err)
			return m.err
		}

		var req Request
		if err := msgpack.Unmarshal(m.raw, &req); err != nil {
			s.log.Errorf("Unmarshaling request: %v", err)
			s.sendError("", "Invalid msgpack request", CodeBadRequest)
			continue
		}
		s.handleRequest(ctx, req)
	}
}

type message struct {
	raw msgpack.RawMessage
	err error
}

// readLoop decodes raw messages until the first read error, which is
// delivered last.
func (s *Server) readLoop(ctx context.Context) <-chan message {
	msgs := make(chan message)
	go func() {
		for {
			raw, err := s.dec.DecodeRaw()
			select {
			case msgs <- message{raw: raw, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return msgs
}

func (s *Server) shutdown() {
	s.runMu.Lock()
	s.closed = true
	s.runMu.Unlock()
	s.debouncer.Stop()
	s.inflight.Wait()
}

func (s *Server) handleRequest(ctx context.Context, req Request) {
	start := time.Now()
	var resp Response

	switch req.Action {
	case ActionEdit:
		resp = s.handleEdit(ctx, req)
	case ActionRender:
		resp = s.handleRender()
	case ActionClick:
		resp = machineResponse(s.session.Click(req.Word, req.Index))
	case ActionDismiss:
		resp = machineResponse(s.session.Dismiss())
	case ActionChoose:
		resp = s.handleChoose(ctx, req)
	case ActionState:
		resp = s.handleState()
	case ActionIgnore:
		resp = s.handleIgnore(req)
	case ActionHealth:
		resp = Response{Status: StatusOK, Session: s.session.ID}
	default:
		resp = errorResponse(fmt.Sprintf("Unknown action: %s", req.Action), CodeBadRequest)
	}

	resp.ID = req.ID
	resp.TimeTaken = time.Since(start).Microseconds()
	s.send(resp)
}

func (s *Server) handleEdit(ctx context.Context, req Request) Response {
	if n := utf8.RuneCountInString(req.Text); n > s.maxText {
		s.log.Debugf("Text too long: %d runes", n)
		return errorResponse(fmt.Sprintf("Text exceeds maximum length of %d characters", s.maxText), CodeTooLong)
	}
	gen := s.session.Edit(req.Text)
	s.schedule(ctx, gen, req.Text)
	return Response{Status: StatusOK, Gen: gen, Pending: true}
}

func (s *Server) handleRender() Response {
	segs := s.session.Render()
	buf, gen := s.session.Buffer()
	flagged, words := 0, 0
	for _, a := range segs {
		if a.Flagged {
			flagged++
		}
		if !a.IsWhitespace {
			words++
		}
	}
	return Response{
		Status:   StatusOK,
		Gen:      gen,
		Pending:  s.session.Pending(),
		Segments: segs,
		Flagged:  flagged,
		Runes:    segment.Runes(buf),
		Words:    words,
	}
}

func (s *Server) handleChoose(ctx context.Context, req Request) Response {
	buf, gen, err := s.session.Choose(req.Suggestion)
	switch {
	case errors.Is(err, session.ErrPending):
		return errorResponse("Analysis pending, try again", CodeConflict)
	case errors.Is(err, selection.ErrNotOpen):
		return errorResponse("No suggestion list open", CodeBadRequest)
	case errors.Is(err, replace.ErrOccurrenceNotFound):
		resp := errorResponse("Selected word no longer in buffer", CodeConflict)
		resp.Text, resp.Gen = buf, gen
		return resp
	case err != nil:
		return errorResponse(err.Error(), CodeInternal)
	}
	s.schedule(ctx, gen, buf)
	return Response{Status: StatusOK, Gen: gen, Text: buf, Pending: s.session.Pending()}
}

func (s *Server) handleState() Response {
	buf, gen := s.session.Buffer()
	resp := machineResponse(s.session.State())
	resp.Gen = gen
	resp.Text = buf
	resp.Pending = s.session.Pending()
	if err := s.session.Snapshot().Err; err != nil {
		resp.Error = err.Error()
	}
	return resp
}

func (s *Server) handleIgnore(req Request) Response {
	if req.Word == "" {
		return errorResponse("Missing 'w' parameter", CodeBadRequest)
	}
	s.session.Ignore(req.Word)
	if s.dictPath != "" {
		if err := s.session.Dict().Save(s.dictPath); err != nil {
			s.log.Errorf("Saving dictionary: %v", err)
			return errorResponse("Failed to save dictionary", CodeInternal)
		}
	}
	return Response{Status: StatusOK}
}

// schedule sends text for analysis once the debounce window closes.
func (s *Server) schedule(ctx context.Context, gen uint64, text string) {
	s.debouncer.Trigger(func() {
		s.runMu.Lock()
		if s.closed {
			s.runMu.Unlock()
			return
		}
		s.inflight.Add(1)
		s.runMu.Unlock()
		defer s.inflight.Done()

		s.analyze(ctx, gen, text)
	})
}

// analyze runs one analysis at a time. A call queued behind a running one is
// dropped if its generation was superseded while it waited.
func (s *Server) analyze(ctx context.Context, gen uint64, text string) {
	s.analyzeMu.Lock()
	defer s.analyzeMu.Unlock()

	if _, latest := s.session.Buffer(); latest != gen {
		s.log.Debugf("Skipping analysis of gen=%d, latest=%d", gen, latest)
		return
	}

	start := time.Now()
	note := Response{Action: ActionAnalysis, Gen: gen, Status: StatusOK}

	doc, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		s.session.Fail(gen, err)
		note.Status, note.Error, note.Code = StatusError, err.Error(), CodeInternal
		if errors.Is(err, analysis.ErrTextTooLong) {
			note.Code = CodeTooLong
		}
	} else if err := s.session.Apply(gen, doc); err != nil {
		note.Error = err.Error()
		switch {
		case errors.Is(err, session.ErrStale):
			note.Status, note.Code = StatusStale, CodeConflict
		case errors.Is(err, reconcile.ErrMalformed):
			s.log.Warnf("Malformed analysis for gen=%d", gen)
			note.Status, note.Code = StatusError, CodeInternal
		default:
			note.Status, note.Code = StatusError, CodeInternal
		}
	} else {
		note.Flagged = s.session.Snapshot().Store.Flagged()
	}

	note.TimeTaken = time.Since(start).Microseconds()
	s.send(note)
}

func machineResponse(m selection.Machine) Response {
	resp := Response{Status: StatusOK, State: m.State().String(), Candidates: m.Candidates()}
	if sel, ok := m.Selection(); ok {
		resp.Selection = &sel
	}
	return resp
}

func errorResponse(message string, code int) Response {
	return Response{Status: StatusError, Error: message, Code: code}
}

// send encodes one message and flushes it. Requests and notifications are
// written from different goroutines.
func (s *Server) send(resp Response) {
	s.encMu.Lock()
	defer s.encMu.Unlock()
	if err := s.enc.Encode(resp); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.out.Flush(); err != nil {
		s.log.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	resp := errorResponse(message, code)
	resp.ID = id
	s.send(resp)
}
