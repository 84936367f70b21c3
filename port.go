// port.go — opaque I/O port handles (spec.md §5 Ports).
//
// Grounded on the teacher's builtin_ffi.go gc finalizer idiom
// (runtime.SetFinalizer paired with an explicit close to guarantee a
// native resource is released even if Scheme code drops the handle
// without closing it) — the same guarantee spec.md §5 demands of Port:
// "GC/ownership of Port values must guarantee closure on collection
// (finaliser, explicit scope, or equivalent)".
package goscheme

import (
	"bufio"
	"io"
	"os"
	"runtime"
)

// portHandle is the concrete backing of a Port value. Exactly one of
// reader/writer is non-nil depending on direction; closer is whatever the
// opening primitive produced (a *os.File for files, nil for the standard
// streams, which must never be closed).
type portHandle struct {
	name   string
	reader *bufio.Reader
	writer *bufio.Writer
	closer io.Closer
	closed bool
}

func newPortHandle(name string, r *bufio.Reader, w *bufio.Writer, c io.Closer) *portHandle {
	h := &portHandle{name: name, reader: r, writer: w, closer: c}
	if c != nil {
		runtime.SetFinalizer(h, func(h *portHandle) { h.close() })
	}
	return h
}

func (h *portHandle) close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	if h.writer != nil {
		_ = h.writer.Flush()
	}
	if h.closer != nil {
		runtime.SetFinalizer(h, nil)
		return h.closer.Close()
	}
	return nil
}

// StdinPort, StdoutPort, StderrPort are the pre-opened standard ports
// (prims_io.go exposes StdoutPort as current-output-port; no primitive
// exposes the other two); none carries a closer, since ownership of the process streams is not
// the Scheme program's to release.
var (
	StdinPort  = Value{Tag: TagPort, Data: &Port{handle: newPortHandle("stdin", bufio.NewReader(os.Stdin), nil, nil)}}
	StdoutPort = Value{Tag: TagPort, Data: &Port{handle: newPortHandle("stdout", nil, bufio.NewWriter(os.Stdout), nil)}}
	StderrPort = Value{Tag: TagPort, Data: &Port{handle: newPortHandle("stderr", nil, bufio.NewWriter(os.Stderr), nil)}}
)

// OpenInputFile and OpenOutputFile open file-backed ports. No primitive in
// prims_io.go is registered on top of them.
func OpenInputFile(path string) (Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return Value{}, newEvalErrorNoForm(KindDefault, err.Error())
	}
	h := newPortHandle(path, bufio.NewReader(f), nil, f)
	return Value{Tag: TagPort, Data: &Port{handle: h}}, nil
}

func OpenOutputFile(path string) (Value, error) {
	f, err := os.Create(path)
	if err != nil {
		return Value{}, newEvalErrorNoForm(KindDefault, err.Error())
	}
	h := newPortHandle(path, nil, bufio.NewWriter(f), f)
	return Value{Tag: TagPort, Data: &Port{handle: h}}, nil
}

func portData(v Value) *portHandle { return v.Data.(*Port).handle }
