// printer.go — the canonical show() form (spec.md §4.1 Display, §6.3).
//
// Grounded on the teacher's printer.go: an isIdent helper, a
// quoteString escaper for backslash/quote/newline/tab, and a
// strings.Builder-based recursive renderer, all reused here for Scheme
// syntax instead of MindScript's.
package goscheme

import (
	"fmt"
	"strconv"
	"strings"
)

// Show renders v as Scheme syntax: strings quoted, characters as #\ literals,
// booleans #t/#f, vectors #(...), lists (...), improper lists (a b . c),
// procedures as <primitive>/(lambda (...) ...), continuations as
// <continuation>, ports as <IO port>, and the Nil sentinel as "".
func Show(v Value) string {
	var b strings.Builder
	show(&b, v)
	return b.String()
}

func show(b *strings.Builder, v Value) {
	switch v.Tag {
	case TagNil:
		// never user-visible; renders as the empty string (spec.md §4.1).
	case TagSymbol:
		b.WriteString(v.symbolName())
	case TagBool:
		if v.boolData() {
			b.WriteString("#t")
		} else {
			b.WriteString("#f")
		}
	case TagInteger, TagRational, TagReal, TagComplex:
		showNumber(b, v)
	case TagString:
		b.WriteString(quoteString(string(*v.stringData())))
	case TagChar:
		b.WriteString(showChar(v.charData()))
	case TagList:
		showSeq(b, v.listElems(), Value{}, false)
	case TagPair:
		p := v.pairData()
		showSeq(b, p.Head, p.Tail, true)
	case TagVector:
		b.WriteString("#(")
		for i, e := range v.vectorData().Elems {
			if i > 0 {
				b.WriteByte(' ')
			}
			show(b, e)
		}
		b.WriteByte(')')
	case TagHashTable:
		b.WriteString("#[hash-table")
		for _, e := range v.hashData().store.entriesInOrder() {
			b.WriteString(" (")
			show(b, e.key)
			b.WriteString(" . ")
			show(b, e.value)
			b.WriteByte(')')
		}
		b.WriteByte(']')
	case TagPrimFn:
		b.WriteString("<primitive>")
	case TagIOFn:
		b.WriteString("<primitive>")
	case TagPort:
		b.WriteString("<IO port>")
	case TagClosure:
		showClosure(b, v.closureData())
	case TagContinuation:
		b.WriteString("<continuation>")
	case TagPointer:
		p := v.pointerData()
		fmt.Fprintf(b, "<pointer %s>", p.Name)
	case TagValues:
		for i, e := range v.valuesData() {
			if i > 0 {
				b.WriteByte(' ')
			}
			show(b, e)
		}
	default:
		b.WriteString("<unknown>")
	}
}

func showSeq(b *strings.Builder, head []Value, tail Value, improper bool) {
	b.WriteByte('(')
	for i, e := range head {
		if i > 0 {
			b.WriteByte(' ')
		}
		show(b, e)
	}
	if improper {
		b.WriteString(" . ")
		show(b, tail)
	}
	b.WriteByte(')')
}

func showClosure(b *strings.Builder, c *Closure) {
	b.WriteString("(lambda (")
	for i, p := range c.Params {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	if c.HasRest {
		if len(c.Params) > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(". ")
		b.WriteString(c.Rest)
	}
	b.WriteString(") ...)")
}

func showNumber(b *strings.Builder, v Value) {
	switch v.Tag {
	case TagInteger:
		b.WriteString(v.numberData().String())
	case TagRational:
		b.WriteString(v.numberData().String())
	case TagReal:
		b.WriteString(strconv.FormatFloat(v.realData(), 'g', -1, 64))
	case TagComplex:
		c := v.complexData()
		b.WriteString(strconv.FormatFloat(real(c), 'g', -1, 64))
		if imag(c) >= 0 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.FormatFloat(imag(c), 'g', -1, 64))
		b.WriteByte('i')
	}
}

var namedChars = map[rune]string{
	' ':    "space",
	'\n':   "newline",
	'\t':   "tab",
	'\r':   "return",
	0:      "null",
	0x7f:   "delete",
	0x1b:   "escape",
	0x08:   "backspace",
}

func showChar(r rune) string {
	if name, ok := namedChars[r]; ok {
		return "#\\" + name
	}
	return "#\\" + string(r)
}

func isIdentStart(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '<', '>', '=', '!', '?', ':', '$', '%', '_', '&', '~', '^', '.':
		return true
	default:
		return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
	}
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
