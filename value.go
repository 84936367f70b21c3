// value.go — the runtime value model.
//
// Value is a tagged sum covering every variant a conforming evaluator must
// represent: symbols, proper and improper lists, vectors, hash tables, the
// four-level numeric tower, strings, characters, booleans, host-callable
// procedures (pure and I/O-capable), opaque port handles, closures,
// first-class continuations, environment aliases (Pointer), and the
// internal Nil sentinel.
//
// Following the teacher's Value{Tag, Data} shape (interpreter.go), each
// variant's payload lives behind a single `Data any` field instead of one
// exported struct field per variant; per-variant constructors and accessors
// keep call sites readable and keep the zero Value invalid-but-harmless.
package goscheme

import "fmt"

// ValueTag identifies which of the sum's variants a Value holds.
type ValueTag uint8

const (
	TagSymbol ValueTag = iota
	TagList
	TagPair
	TagVector
	TagHashTable
	TagInteger
	TagRational
	TagReal
	TagComplex
	TagString
	TagChar
	TagBool
	TagPrimFn
	TagIOFn
	TagPort
	TagClosure
	TagContinuation
	TagPointer
	TagValues
	TagNil
)

// Value is the universal runtime representation. The zero Value carries
// the zero tag, TagSymbol, with a nil payload; it is not the internal Nil
// sentinel. Use NilVal() rather than relying on the zero value.
type Value struct {
	Tag  ValueTag
	Data any
}

// --- payload types -----------------------------------------------------

// Pair is the improper-list representation `(a b . c)`: a sequence of head
// elements followed by a tail that is not itself a List.
type Pair struct {
	Head []Value
	Tail Value
}

// Vector is a fixed-length, mutable-in-place indexable array of Value.
type Vector struct {
	Elems []Value
}

// HashTable maps Value to Value, compared by eqv?. See hashtable.go for the
// storage strategy (canonical-string keying with an insertion-order index).
type HashTable struct {
	store *htStore
}

// PrimFn is a pure host callable: it may not touch ports or other I/O and
// must not re-enter the evaluator's I/O machinery.
type PrimFn struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

// IOFn is a host callable permitted to perform I/O (through Port values).
type IOFn struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

// Port is an opaque host I/O handle; see port.go for its concrete backing.
type Port struct {
	handle *portHandle
}

// Closure is a user-defined procedure: parameter names, an optional rest
// parameter capturing overflow arguments as a list, a body (sequence of
// forms), and the environment captured at the point of lambda evaluation.
// TailEval records whether the closure was constructed as a normal lambda
// (always true here; the field exists because spec.md's value table calls
// it out explicitly as part of the Closure payload).
type Closure struct {
	Params  []string
	Rest    string // "" if no rest parameter
	HasRest bool
	Body    []Value
	Env     *Env
	TailEval bool
}

// Pointer is an *alias*: a binding that is a view onto variable Name in
// environment Target. It is not a user-level box; see env.go's aliasing
// protocol (spec.md §4.2).
type Pointer struct {
	Name   string
	Target *Env
}

// --- constructors --------------------------------------------------------

func SymbolVal(name string) Value { return Value{Tag: TagSymbol, Data: name} }
func ListVal(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{Tag: TagList, Data: elems}
}
func PairVal(head []Value, tail Value) Value {
	return Value{Tag: TagPair, Data: &Pair{Head: head, Tail: tail}}
}
func VectorVal(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{Tag: TagVector, Data: &Vector{Elems: elems}}
}
func HashTableVal() Value {
	return Value{Tag: TagHashTable, Data: &HashTable{store: newHTStore()}}
}
func StringVal(s string) Value {
	b := []rune(s)
	return Value{Tag: TagString, Data: &b}
}
func CharVal(r rune) Value { return Value{Tag: TagChar, Data: r} }
func BoolVal(b bool) Value { return Value{Tag: TagBool, Data: b} }
func PrimFnVal(name string, fn func([]Value) (Value, error)) Value {
	return Value{Tag: TagPrimFn, Data: &PrimFn{Name: name, Fn: fn}}
}
func IOFnVal(name string, fn func([]Value) (Value, error)) Value {
	return Value{Tag: TagIOFn, Data: &IOFn{Name: name, Fn: fn}}
}
func ClosureVal(params []string, rest string, hasRest bool, body []Value, env *Env) Value {
	return Value{Tag: TagClosure, Data: &Closure{
		Params: params, Rest: rest, HasRest: hasRest, Body: body, Env: env, TailEval: true,
	}}
}
func PointerVal(name string, target *Env) Value {
	return Value{Tag: TagPointer, Data: &Pointer{Name: name, Target: target}}
}

// ValuesVal packages the result of (values ...) for call-with-values to
// unpack. The values primitive returns a lone argument itself rather than
// a single-element ValuesVal (prims_control.go); applyProc does not unwrap
// a ValuesVal.
func ValuesVal(vs []Value) Value { return Value{Tag: TagValues, Data: vs} }

func (v Value) valuesData() []Value { return v.Data.([]Value) }

// NilVal is the internal sentinel. It is never user-visible: no surface
// syntax produces it, and show() renders it as the empty string.
func NilVal() Value { return Value{Tag: TagNil, Data: "nil"} }

// True and False are the two Bool singletons; only False (#f) is falsy.
var (
	True  = BoolVal(true)
	False = BoolVal(false)
)

// EmptyList is the distinguished empty proper list.
var EmptyList = ListVal(nil)

// IsTruthy implements "only #f is false" (spec.md §3.1, §4.3 If).
func (v Value) IsTruthy() bool {
	return !(v.Tag == TagBool && v.Data.(bool) == false)
}

// IsObject returns true exactly for the variants that can participate in
// aliasing (spec.md §4.1 Predicates): List, Pair, String, Vector, HashTable,
// Pointer.
func (v Value) IsObject() bool {
	switch v.Tag {
	case TagList, TagPair, TagString, TagVector, TagHashTable, TagPointer:
		return true
	default:
		return false
	}
}

func (v Value) String() string { return Show(v) }

// typeName returns a short, stable name for error messages (TypeMismatch).
func (v Value) typeName() string {
	switch v.Tag {
	case TagSymbol:
		return "symbol"
	case TagList:
		return "list"
	case TagPair:
		return "pair"
	case TagVector:
		return "vector"
	case TagHashTable:
		return "hash-table"
	case TagInteger:
		return "integer"
	case TagRational:
		return "rational"
	case TagReal:
		return "real"
	case TagComplex:
		return "complex"
	case TagString:
		return "string"
	case TagChar:
		return "char"
	case TagBool:
		return "boolean"
	case TagPrimFn:
		return "primitive-procedure"
	case TagIOFn:
		return "io-procedure"
	case TagPort:
		return "port"
	case TagClosure:
		return "procedure"
	case TagContinuation:
		return "continuation"
	case TagPointer:
		return "pointer"
	case TagValues:
		return "values"
	case TagNil:
		return "nil"
	default:
		return fmt.Sprintf("tag(%d)", v.Tag)
	}
}

func (v Value) symbolName() string { return v.Data.(string) }
func (v Value) listElems() []Value { return v.Data.([]Value) }
func (v Value) pairData() *Pair    { return v.Data.(*Pair) }
func (v Value) vectorData() *Vector { return v.Data.(*Vector) }
func (v Value) hashData() *HashTable { return v.Data.(*HashTable) }
func (v Value) stringData() *[]rune { return v.Data.(*[]rune) }
func (v Value) charData() rune     { return v.Data.(rune) }
func (v Value) boolData() bool     { return v.Data.(bool) }
func (v Value) closureData() *Closure { return v.Data.(*Closure) }
func (v Value) pointerData() *Pointer { return v.Data.(*Pointer) }
func (v Value) contData() *Continuation { return v.Data.(*Continuation) }
