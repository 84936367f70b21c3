// reader.go — the Scheme surface-syntax reader (spec.md §6.3 round-trip:
// parse(show(v)) must be equal? to v for every printable value).
//
// Grounded on the teacher's Lexer/Parser split (lexer.go scans runes into
// tokens tracking 1-based line / 0-based column; parser.go is a
// recursive-descent consumer of that token stream) — reworked here for
// classic S-expression syntax instead of MindScript's curly/bracket
// grammar, and collapsed into a single scanning reader since S-expression
// structure needs no separate token stream: one rune of lookahead is
// enough to decide what to read next.
package goscheme

import (
	"strconv"
	"strings"
)

type reader struct {
	src  []rune
	pos  int
	line int
	col  int
}

func newReader(src string) *reader {
	return &reader{src: []rune(src), line: 1, col: 1}
}

func (r *reader) atEnd() bool { return r.pos >= len(r.src) }

func (r *reader) peek() rune {
	if r.atEnd() {
		return 0
	}
	return r.src[r.pos]
}

func (r *reader) peekAt(n int) rune {
	if r.pos+n >= len(r.src) {
		return 0
	}
	return r.src[r.pos+n]
}

func (r *reader) advance() rune {
	c := r.src[r.pos]
	r.pos++
	if c == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	return c
}

func (r *reader) err(msg string) error {
	return newEvalErrorNoForm(KindParser, msg).WithLocation(r.line, r.col)
}

func (r *reader) skipAtmosphere() {
	for !r.atEnd() {
		c := r.peek()
		switch {
		case c == ';':
			for !r.atEnd() && r.peek() != '\n' {
				r.advance()
			}
		case c == '#' && r.peekAt(1) == '|':
			r.advance()
			r.advance()
			depth := 1
			for !r.atEnd() && depth > 0 {
				if r.peek() == '#' && r.peekAt(1) == '|' {
					r.advance()
					r.advance()
					depth++
				} else if r.peek() == '|' && r.peekAt(1) == '#' {
					r.advance()
					r.advance()
					depth--
				} else {
					r.advance()
				}
			}
		case c == '#' && r.peekAt(1) == ';':
			r.advance()
			r.advance()
			r.skipAtmosphere()
			if _, err := r.readForm(); err != nil {
				return
			}
		case isWhitespace(c):
			r.advance()
		default:
			return
		}
	}
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDelimiter(c rune) bool {
	return c == 0 || isWhitespace(c) || c == '(' || c == ')' || c == '[' || c == ']' || c == '"' || c == ';' || c == '\''
}

// ParseAll reads every top-level form in src (spec.md §6.1's embedding
// consumes this via EvalSource/loader.go).
func ParseAll(src string) ([]Value, error) {
	r := newReader(src)
	var forms []Value
	for {
		r.skipAtmosphere()
		if r.atEnd() {
			return forms, nil
		}
		v, err := r.readForm()
		if err != nil {
			return nil, err
		}
		forms = append(forms, v)
	}
}

// Parse reads exactly the first form in src.
func Parse(src string) (Value, error) {
	r := newReader(src)
	r.skipAtmosphere()
	if r.atEnd() {
		return Value{}, r.err("unexpected end of input")
	}
	return r.readForm()
}

func (r *reader) readForm() (Value, error) {
	r.skipAtmosphere()
	if r.atEnd() {
		return Value{}, r.err("unexpected end of input")
	}
	c := r.peek()
	switch {
	case c == '(' || c == '[':
		return r.readList(c)
	case c == ')' || c == ']':
		return Value{}, r.err("unexpected '" + string(c) + "'")
	case c == '\'':
		r.advance()
		return r.readWrapped("quote")
	case c == '`':
		r.advance()
		return r.readWrapped("quasiquote")
	case c == ',':
		r.advance()
		if r.peek() == '@' {
			r.advance()
			return r.readWrapped("unquote-splicing")
		}
		return r.readWrapped("unquote")
	case c == '"':
		return r.readString()
	case c == '#':
		return r.readHash()
	default:
		return r.readAtom()
	}
}

func (r *reader) readWrapped(sym string) (Value, error) {
	r.skipAtmosphere()
	inner, err := r.readForm()
	if err != nil {
		return Value{}, err
	}
	return ListVal([]Value{SymbolVal(sym), inner}), nil
}

func (r *reader) readList(open rune) (Value, error) {
	r.advance() // consume open
	var head []Value
	for {
		r.skipAtmosphere()
		if r.atEnd() {
			return Value{}, r.err("unterminated list")
		}
		if r.peek() == ')' || r.peek() == ']' {
			r.advance()
			return ListVal(head), nil
		}
		if r.peek() == '.' && isDelimiter(r.peekAt(1)) {
			r.advance()
			r.skipAtmosphere()
			tail, err := r.readForm()
			if err != nil {
				return Value{}, err
			}
			r.skipAtmosphere()
			if r.atEnd() || (r.peek() != ')' && r.peek() != ']') {
				return Value{}, r.err("malformed dotted list")
			}
			r.advance()
			return PairVal(head, tail), nil
		}
		elem, err := r.readForm()
		if err != nil {
			return Value{}, err
		}
		head = append(head, elem)
	}
}

func (r *reader) readHash() (Value, error) {
	r.advance() // consume '#'
	switch r.peek() {
	case '(':
		elems, err := r.readVectorElems()
		if err != nil {
			return Value{}, err
		}
		return VectorVal(elems), nil
	case 't':
		r.advance()
		r.consumeWord("rue")
		return True, nil
	case 'f':
		r.advance()
		r.consumeWord("alse")
		return False, nil
	case '\\':
		r.advance()
		return r.readChar()
	case 'x', 'X', 'o', 'O', 'b', 'B', 'd', 'D', 'e', 'E', 'i', 'I':
		return r.readAtomWithPrefix("#")
	case '[':
		return r.readHashTable()
	default:
		return Value{}, r.err("unsupported # syntax")
	}
}

// readHashTable parses the #[hash-table (key . value) ...] literal show()
// emits for TagHashTable, so parse(show(v)) round-trips hash tables the
// same way it already does for lists and vectors.
func (r *reader) readHashTable() (Value, error) {
	r.advance() // consume '['
	r.skipAtmosphere()
	tag, err := r.readForm()
	if err != nil {
		return Value{}, err
	}
	if tag.Tag != TagSymbol || tag.symbolName() != "hash-table" {
		return Value{}, r.err("unsupported #[ syntax")
	}
	ht := HashTableVal()
	store := ht.hashData().store
	for {
		r.skipAtmosphere()
		if r.atEnd() {
			return Value{}, r.err("unterminated hash-table literal")
		}
		if r.peek() == ']' {
			r.advance()
			return ht, nil
		}
		entry, err := r.readForm()
		if err != nil {
			return Value{}, err
		}
		if entry.Tag != TagPair || len(entry.pairData().Head) != 1 {
			return Value{}, r.err("hash-table entries must be (key . value) pairs")
		}
		pd := entry.pairData()
		store.set(pd.Head[0], pd.Tail)
	}
}

// consumeWord eats rest if it matches exactly (so #t and #true both parse).
func (r *reader) consumeWord(rest string) {
	for _, want := range rest {
		if r.peek() != want {
			return
		}
		r.advance()
	}
}

func (r *reader) readVectorElems() ([]Value, error) {
	r.advance() // consume '('
	var elems []Value
	for {
		r.skipAtmosphere()
		if r.atEnd() {
			return nil, r.err("unterminated vector")
		}
		if r.peek() == ')' {
			r.advance()
			return elems, nil
		}
		v, err := r.readForm()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
}

var namedCharLiterals = map[string]rune{
	"space":     ' ',
	"newline":   '\n',
	"tab":       '\t',
	"return":    '\r',
	"null":      0,
	"nul":       0,
	"delete":    0x7f,
	"escape":    0x1b,
	"backspace": 0x08,
	"altmode":   0x1b,
	"linefeed":  '\n',
}

func (r *reader) readChar() (Value, error) {
	if r.atEnd() {
		return Value{}, r.err("unterminated character literal")
	}
	start := r.pos
	first := r.advance()
	var b strings.Builder
	b.WriteRune(first)
	for !r.atEnd() && !isDelimiter(r.peek()) {
		b.WriteRune(r.advance())
	}
	word := b.String()
	if len(word) == 1 {
		return CharVal(first), nil
	}
	if rn, ok := namedCharLiterals[strings.ToLower(word)]; ok {
		return CharVal(rn), nil
	}
	if word[0] == 'x' || word[0] == 'X' {
		n, err := strconv.ParseInt(word[1:], 16, 32)
		if err == nil {
			return CharVal(rune(n)), nil
		}
	}
	_ = start
	return Value{}, r.err("unknown character literal #\\" + word)
}

func (r *reader) readString() (Value, error) {
	r.advance() // consume opening quote
	var b strings.Builder
	for {
		if r.atEnd() {
			return Value{}, r.err("unterminated string literal")
		}
		c := r.advance()
		if c == '"' {
			return StringVal(b.String()), nil
		}
		if c != '\\' {
			b.WriteRune(c)
			continue
		}
		if r.atEnd() {
			return Value{}, r.err("unterminated escape in string literal")
		}
		esc := r.advance()
		switch esc {
		case 'n':
			b.WriteRune('\n')
		case 't':
			b.WriteRune('\t')
		case 'r':
			b.WriteRune('\r')
		case '"':
			b.WriteRune('"')
		case '\\':
			b.WriteRune('\\')
		case '\n':
			for !r.atEnd() && (r.peek() == ' ' || r.peek() == '\t') {
				r.advance()
			}
		default:
			b.WriteRune(esc)
		}
	}
}

func (r *reader) readAtom() (Value, error) {
	return r.readAtomWithPrefix("")
}

// readAtomWithPrefix collects the rest of an atom (possibly continuing a
// "#x"-style numeric prefix already consumed by readHash) and classifies
// it as a number or a bare symbol.
func (r *reader) readAtomWithPrefix(prefix string) (Value, error) {
	var b strings.Builder
	b.WriteString(prefix)
	for !r.atEnd() && !isDelimiter(r.peek()) {
		b.WriteRune(r.advance())
	}
	text := b.String()
	if text == "" {
		return Value{}, r.err("empty atom")
	}
	if v, ok := parseNumericLiteral(text); ok {
		return v, nil
	}
	return SymbolVal(text), nil
}

// parseNumericLiteral implements spec.md's numeric literal surface:
// exactness/radix prefixes (#e #i #x #o #b #d), an optional sign, integers,
// n/d rationals, and decimal reals. Anything else is treated as a symbol
// (so e.g. "+" and "..." parse as identifiers, per Scheme convention).
func parseNumericLiteral(text string) (Value, bool) {
	exactness := byte(0) // 'e', 'i', or 0
	radix := 10
	s := text
	for len(s) >= 2 && s[0] == '#' {
		switch s[1] {
		case 'e', 'E':
			exactness = 'e'
		case 'i', 'I':
			exactness = 'i'
		case 'x', 'X':
			radix = 16
		case 'o', 'O':
			radix = 8
		case 'b', 'B':
			radix = 2
		case 'd', 'D':
			radix = 10
		default:
			return Value{}, false
		}
		s = s[2:]
	}
	if s == "" {
		return Value{}, false
	}
	if idx := strings.IndexByte(s, '/'); idx > 0 {
		num, err1 := strconv.ParseInt(s[:idx], radix, 64)
		den, err2 := strconv.ParseInt(s[idx+1:], radix, 64)
		if err1 != nil || err2 != nil || den == 0 {
			return Value{}, false
		}
		v := NumDiv(IntegerVal(num), IntegerVal(den))
		if exactness == 'i' {
			return RealVal(ToFloat64(v)), true
		}
		return v, true
	}
	if radix == 10 && (strings.HasSuffix(s, "i") || strings.HasSuffix(s, "I")) && s != "i" && s != "I" {
		if v, ok := parseComplexLiteral(s); ok {
			return v, true
		}
	}
	if radix == 10 && strings.ContainsAny(s, ".eE") && s != "." {
		if looksLikeReal(s) {
			f, err := strconv.ParseFloat(s, 64)
			if err == nil {
				// #e on a decimal literal would need float-to-rational
				// conversion; goarith.AsNumber only accepts int64, so (like
				// the exactness prefix on non-integer radix-10 literals
				// generally) this core keeps such values inexact rather
				// than inventing an unsupported conversion.
				return RealVal(f), true
			}
		}
	}
	n, err := strconv.ParseInt(s, radix, 64)
	if err != nil {
		return Value{}, false
	}
	if exactness == 'i' {
		return RealVal(float64(n)), true
	}
	return IntegerVal(n), true
}

// parseComplexLiteral parses the "<real><sign><imag>i" grammar showNumber
// produces for TagComplex (printer.go): a real part, then an imaginary part
// introduced by the first +/- that isn't part of the real part's own
// leading sign or an exponent marker.
func parseComplexLiteral(s string) (Value, bool) {
	body := s[:len(s)-1] // drop the trailing i/I
	sepIdx := -1
	for i := 1; i < len(body); i++ {
		c := body[i]
		if (c == '+' || c == '-') && body[i-1] != 'e' && body[i-1] != 'E' {
			sepIdx = i
		}
	}
	realText, imagText := "0", body
	if sepIdx >= 0 {
		realText, imagText = body[:sepIdx], body[sepIdx:]
	}
	switch imagText {
	case "+", "":
		imagText = "1"
	case "-":
		imagText = "-1"
	}
	re, err1 := strconv.ParseFloat(realText, 64)
	im, err2 := strconv.ParseFloat(imagText, 64)
	if err1 != nil || err2 != nil {
		return Value{}, false
	}
	return ComplexVal(re, im), true
}

func looksLikeReal(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	if i >= len(s) {
		return false
	}
	sawDigit := false
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		sawDigit = true
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			sawDigit = true
		}
	}
	if !sawDigit {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}
