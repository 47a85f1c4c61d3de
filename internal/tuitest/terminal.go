package tuitest

import (
	"bytes"
	"io"
)

// terminalQueries are the status requests Bubble Tea and lipgloss write at
// startup, paired with the answers of a dark 256-color xterm.
var terminalQueries = []struct {
	query []byte
	reply []byte
}{
	{[]byte("\x1b[6n"), []byte("\x1b[1;1R")},
	{[]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{[]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{[]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{[]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

const (
	maxPending  = 256
	pendingTail = 64
)

// responder answers terminal queries found in program output, in the order
// they were written. A query split across reads is still recognized.
type responder struct {
	w        io.Writer
	pending  []byte
	answered int
}

func newResponder(w io.Writer) *responder {
	return &responder{w: w, pending: make([]byte, 0, maxPending)}
}

func (r *responder) Observe(chunk []byte) {
	r.pending = append(r.pending, chunk...)
	for {
		at, q := r.nextQuery()
		if q < 0 {
			break
		}
		_, _ = r.w.Write(terminalQueries[q].reply)
		r.answered++
		r.pending = r.pending[at+len(terminalQueries[q].query):]
	}
	if len(r.pending) > maxPending {
		r.pending = append(r.pending[:0], r.pending[len(r.pending)-pendingTail:]...)
	}
}

// nextQuery returns the offset and table index of the earliest pending
// query, or -1 when none is complete.
func (r *responder) nextQuery() (int, int) {
	at, found := -1, -1
	for i, q := range terminalQueries {
		idx := bytes.Index(r.pending, q.query)
		if idx >= 0 && (at < 0 || idx < at) {
			at, found = idx, i
		}
	}
	return at, found
}
