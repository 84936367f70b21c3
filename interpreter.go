// interpreter.go — SINGLE PUBLIC API SURFACE for the embedding API
// (spec.md §6.1).
//
// Grounded on the teacher's interpreter.go: a narrow, exported-only file
// that is the sole contract a host needs to read, with a Core/Global
// environment split (Core holds built-ins, Global is a persistent child
// of Core that user code mutates) and a RegisterNative-style primitive
// installer. Here Core/Global becomes the single split spec.md's
// `empty-env`/`load-primitives` pair implies: Core carries the primitive
// table, Global is what a driver (cmd/goscheme) or loader extends.
package goscheme

// PrimTable maps (namespace, name) to a PrimFn or IOFn value — the shape
// spec.md §6.1's load-primitives takes. Namespaces are almost always
// NsVar; NsMacro is accepted for forward compatibility with a future
// macro expander, though nothing in this core installs into it.
type PrimTable map[[2]string]Value

// Interpreter bundles the two frames a conforming embedding needs: Core
// (built-ins, populated by LoadPrimitives, read-only by convention) and
// Global (a persistent child of Core that program evaluation mutates).
type Interpreter struct {
	Core   *Env
	Global *Env
}

// NewInterpreter returns an Interpreter with an empty Core and a Global
// that is an empty child of it (spec.md §6.1 empty-env, generalized to
// the two-frame split every non-trivial embedding wants).
func NewInterpreter() *Interpreter {
	core := Empty()
	global := Extend(core, nil)
	return &Interpreter{Core: core, Global: global}
}

// NewStandardInterpreter returns an Interpreter whose Core already carries
// the full primitive library (prims_*.go) — the counterpart of the
// teacher's runtime.go sequence of registerXBuiltins(ip) calls, here one
// call per concern file.
func NewStandardInterpreter() *Interpreter {
	ip := NewInterpreter()
	registerNumericPrimitives(ip.Core)
	registerPairPrimitives(ip.Core)
	registerPredicatePrimitives(ip.Core)
	registerStringPrimitives(ip.Core)
	registerVectorPrimitives(ip.Core)
	registerHashTablePrimitives(ip.Core)
	registerIOPrimitives(ip.Core)
	registerControlPrimitives(ip.Core)
	registerLoadPrimitive(ip)
	return ip
}

// registerLoadPrimitive installs (load "name"), grounded on the teacher's
// MindScriptPath-driven import native (std_core.go) but reduced to this
// core's plain sequential-file-loading model (loader.go). Unlike the other
// prims_*.go primitives, load needs the *Interpreter itself rather than
// just an *Env: a loaded file's top-level defines must land in ip.Global,
// the frame every later top-level form reads from.
func registerLoadPrimitive(ip *Interpreter) {
	ip.Core.Define(NsVar, "load", IOFnVal("load", func(args []Value) (Value, error) {
		if len(args) != 1 || args[0].Tag != TagString {
			return Value{}, errTypeMismatch("string", oneOrZero(args))
		}
		spec := string(*args[0].stringData())
		path, err := ResolveLoadPath(spec)
		if err != nil {
			return Value{}, newEvalErrorNoForm(KindDefault, err.Error())
		}
		if err := LoadFile(ip, path); err != nil {
			return Value{}, err
		}
		return NilVal(), nil
	}))
}

// LoadPrimitives installs table into Core (spec.md §6.1
// load-primitives(E, table)).
func (ip *Interpreter) LoadPrimitives(table PrimTable) {
	LoadPrimitives(ip.Core, table)
}

// LoadPrimitives is the free-function form of the same operation, for
// callers building an Env directly without an Interpreter wrapper.
func LoadPrimitives(env *Env, table PrimTable) {
	for key, fn := range table {
		env.Define(key[0], key[1], fn)
	}
}

// EvalSource evaluates code in Global: user-level programs run with
// persistent top-level define/set! visibility, matching how a Scheme
// REPL or script behaves (unlike the teacher's ephemeral-by-default
// EvalSource, Scheme's top level has no sandboxed-child convention to
// preserve — every scenario in spec.md §8 defines into the same frame
// it later reads from).
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	forms, err := ParseAll(src)
	if err != nil {
		return Value{}, err
	}
	var result Value
	for _, form := range forms {
		result, err = Eval(ip.Global, form)
		if err != nil {
			return Value{}, err
		}
	}
	return result, nil
}

// Eval evaluates form in Global (spec.md §6.1 eval(E, form)).
func (ip *Interpreter) Eval(form Value) (Value, error) {
	return Eval(ip.Global, form)
}

// Apply applies operator to args in Global (spec.md §6.1 apply(E, operator, args)).
func (ip *Interpreter) Apply(operator Value, args []Value) (Value, error) {
	return Apply(ip.Global, operator, args)
}
