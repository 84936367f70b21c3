// prims_io.go — port and I/O primitive procedures (SPEC_FULL.md §3.6,
// spec.md §5 Ports).
//
// These are IOFn, not PrimFn (value.go's distinction: "PrimFn ... may not
// touch ports or other I/O"), grounded on port.go's portHandle and its
// bufio.Reader/Writer backing.
package goscheme

import (
	"bufio"
	"io"
	"strings"
)

func registerIOPrimitives(env *Env) {
	def := func(name string, fn func([]Value) (Value, error)) {
		env.Define(NsVar, name, IOFnVal(name, fn))
	}
	requirePort := func(v Value) (*portHandle, error) {
		if v.Tag != TagPort {
			return nil, errTypeMismatch("port", v)
		}
		return portData(v), nil
	}
	outputPort := func(args []Value, i int) (*portHandle, error) {
		if len(args) > i {
			return requirePort(args[i])
		}
		return portData(StdoutPort), nil
	}
	inputPort := func(args []Value, i int) (*portHandle, error) {
		if len(args) > i {
			return requirePort(args[i])
		}
		return portData(StdinPort), nil
	}

	def("display", func(args []Value) (Value, error) {
		if len(args) < 1 {
			return Value{}, errNumArgsAtLeast(1, len(args))
		}
		p, err := outputPort(args, 1)
		if err != nil {
			return Value{}, err
		}
		text := Show(args[0])
		if args[0].Tag == TagString {
			text = string(*args[0].stringData())
		}
		_, werr := p.writer.WriteString(text)
		if werr != nil {
			return Value{}, newEvalErrorNoForm(KindDefault, werr.Error())
		}
		p.writer.Flush()
		return NilVal(), nil
	})
	def("write", func(args []Value) (Value, error) {
		if len(args) < 1 {
			return Value{}, errNumArgsAtLeast(1, len(args))
		}
		p, err := outputPort(args, 1)
		if err != nil {
			return Value{}, err
		}
		if _, werr := p.writer.WriteString(Show(args[0])); werr != nil {
			return Value{}, newEvalErrorNoForm(KindDefault, werr.Error())
		}
		p.writer.Flush()
		return NilVal(), nil
	})
	def("newline", func(args []Value) (Value, error) {
		p, err := outputPort(args, 0)
		if err != nil {
			return Value{}, err
		}
		p.writer.WriteByte('\n')
		p.writer.Flush()
		return NilVal(), nil
	})
	def("read-char", func(args []Value) (Value, error) {
		p, err := inputPort(args, 0)
		if err != nil {
			return Value{}, err
		}
		r, _, rerr := p.reader.ReadRune()
		if rerr == io.EOF {
			return eofObject, nil
		}
		if rerr != nil {
			return Value{}, newEvalErrorNoForm(KindDefault, rerr.Error())
		}
		return CharVal(r), nil
	})
	def("peek-char", func(args []Value) (Value, error) {
		p, err := inputPort(args, 0)
		if err != nil {
			return Value{}, err
		}
		r, _, rerr := p.reader.ReadRune()
		if rerr == io.EOF {
			return eofObject, nil
		}
		if rerr != nil {
			return Value{}, newEvalErrorNoForm(KindDefault, rerr.Error())
		}
		p.reader.UnreadRune()
		return CharVal(r), nil
	})
	def("eof-object?", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, errNumArgs(1, len(args))
		}
		return BoolVal(Eqv(args[0], eofObject)), nil
	})
	def("open-input-string", func(args []Value) (Value, error) {
		if len(args) != 1 || args[0].Tag != TagString {
			return Value{}, errTypeMismatch("string", oneOrZero(args))
		}
		s := string(*args[0].stringData())
		h := newPortHandle("string", bufio.NewReader(strings.NewReader(s)), nil, nil)
		return Value{Tag: TagPort, Data: &Port{handle: h}}, nil
	})
	def("open-output-string", func(args []Value) (Value, error) {
		var buf strings.Builder
		h := &portHandle{name: "string", writer: bufio.NewWriter(&buf)}
		v := Value{Tag: TagPort, Data: &Port{handle: h}}
		stringOutputBuffers[h] = &buf
		return v, nil
	})
	def("get-output-string", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, errNumArgs(1, len(args))
		}
		p, err := requirePort(args[0])
		if err != nil {
			return Value{}, err
		}
		p.writer.Flush()
		buf, ok := stringOutputBuffers[p]
		if !ok {
			return Value{}, newEvalErrorNoForm(KindDefault, "get-output-string: not a string output port")
		}
		return StringVal(buf.String()), nil
	})
	def("close-port", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, errNumArgs(1, len(args))
		}
		p, err := requirePort(args[0])
		if err != nil {
			return Value{}, err
		}
		delete(stringOutputBuffers, p)
		return NilVal(), p.close()
	})
	def("current-output-port", func(args []Value) (Value, error) { return StdoutPort, nil })
}

// eofObject is a distinguished sentinel value; eof-object? tests identity
// against it, per spec.md's port model.
var eofObject = Value{Tag: TagSymbol, Data: "#[eof]"}

// stringOutputBuffers tracks the backing strings.Builder for each
// open-output-string port, since portHandle only exposes an io.Writer
// interface and get-output-string needs the accumulated text back.
var stringOutputBuffers = map[*portHandle]*strings.Builder{}
