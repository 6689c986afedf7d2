/*
Package server implements msgpack IPC for a spell-suggestion session.

The server reads msgpack requests from stdin and writes msgpack responses to
stdout. Logs go to stderr. Every request names an action:

	{"id": "r1", "action": "edit", "text": "teh cat teh dog"}
	{"id": "r2", "action": "render"}
	{"id": "r3", "action": "click", "w": "teh", "i": 1}
	{"id": "r4", "action": "choose", "s": "the"}
	{"id": "r5", "action": "dismiss"}
	{"id": "r6", "action": "ignore", "w": "kubectl"}
	{"id": "r7", "action": "state"}
	{"id": "r8", "action": "health"}

and is answered by one Response with the same id. An edit returns at once with
the new generation; the buffer is sent for analysis after the debounce window
and the outcome is pushed as a notification without an id:

	{"action": "analysis", "gen": 3, "status": "ok", "f": 2}

A notification for a generation that has since been superseded carries status
"stale" and changes nothing. Errors are reported as status "error" with a code:
400 bad request, 409 stale or pending, 413 text too long, 500 internal.
*/
package server

import (
	"github.com/bastiangx/wordfix/pkg/segment"
	"github.com/bastiangx/wordfix/pkg/selection"
)

// Actions understood by the server.
const (
	ActionEdit     = "edit"
	ActionRender   = "render"
	ActionClick    = "click"
	ActionDismiss  = "dismiss"
	ActionChoose   = "choose"
	ActionState    = "state"
	ActionIgnore   = "ignore"
	ActionHealth   = "health"
	ActionAnalysis = "analysis" // notifications only
)

// Status values.
const (
	StatusOK    = "ok"
	StatusReady = "ready"
	StatusStale = "stale"
	StatusError = "error"
)

// Error codes.
const (
	CodeBadRequest = 400
	CodeConflict   = 409
	CodeTooLong    = 413
	CodeInternal   = 500
)

// Request is one client message.
type Request struct {
	ID         string `msgpack:"id"`
	Action     string `msgpack:"action"`
	Text       string `msgpack:"text,omitempty"`
	Word       string `msgpack:"w,omitempty"`
	Index      int    `msgpack:"i,omitempty"`
	Suggestion string `msgpack:"s,omitempty"`
}

// Response answers a Request, or carries a notification when ID is empty.
type Response struct {
	ID     string `msgpack:"id,omitempty"`
	Action string `msgpack:"action,omitempty"`
	Status string `msgpack:"status"`
	Error  string `msgpack:"error,omitempty"`
	Code   int    `msgpack:"code,omitempty"`

	Session string `msgpack:"session,omitempty"`
	Gen     uint64 `msgpack:"gen,omitempty"`
	Pending bool   `msgpack:"pending,omitempty"`
	Text    string `msgpack:"text,omitempty"`

	State      string               `msgpack:"state,omitempty"`
	Selection  *selection.Selection `msgpack:"sel,omitempty"`
	Candidates []string             `msgpack:"s,omitempty"`

	Segments []segment.Annotated `msgpack:"segments,omitempty"`
	Flagged  int                 `msgpack:"f,omitempty"`
	Runes    int                 `msgpack:"c,omitempty"`
	Words    int                 `msgpack:"n,omitempty"`

	TimeTaken int64 `msgpack:"t,omitempty"` // microseconds
}
