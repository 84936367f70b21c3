package goscheme

import "testing"

func parseOne(t *testing.T, src string) Value {
	t.Helper()
	v, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return v
}

func Test_ParseInteger(t *testing.T) {
	v := parseOne(t, "42")
	if v.Tag != TagInteger || Show(v) != "42" {
		t.Fatalf("got %s", Show(v))
	}
}

func Test_ParseNegativeInteger(t *testing.T) {
	v := parseOne(t, "-17")
	if Show(v) != "-17" {
		t.Fatalf("got %s, want -17", Show(v))
	}
}

func Test_ParseRationalLiteral(t *testing.T) {
	v := parseOne(t, "1/2")
	if v.Tag != TagRational {
		t.Fatalf("expected TagRational, got tag %d", v.Tag)
	}
}

func Test_ParseRealLiteral(t *testing.T) {
	v := parseOne(t, "3.14")
	if v.Tag != TagReal {
		t.Fatalf("expected TagReal, got tag %d", v.Tag)
	}
}

func Test_ParseRadixPrefixes(t *testing.T) {
	cases := map[string]int64{
		"#x1F": 31,
		"#o17": 15,
		"#b101": 5,
		"#d10":  10,
	}
	for src, want := range cases {
		v := parseOne(t, src)
		if v.Tag != TagInteger {
			t.Fatalf("%s: expected TagInteger, got tag %d", src, v.Tag)
		}
		if int64(v.numberData().Float64()) != want {
			t.Fatalf("%s: got %s, want %d", src, Show(v), want)
		}
	}
}

func Test_ParseSymbol(t *testing.T) {
	v := parseOne(t, "set!")
	if v.Tag != TagSymbol || v.symbolName() != "set!" {
		t.Fatalf("got %s", Show(v))
	}
}

func Test_ParseBooleans(t *testing.T) {
	if !parseOne(t, "#t").IsTruthy() {
		t.Fatalf("#t should be truthy")
	}
	if parseOne(t, "#f").IsTruthy() {
		t.Fatalf("#f should be falsy")
	}
}

func Test_ParseString(t *testing.T) {
	v := parseOne(t, `"hi\nthere"`)
	if v.Tag != TagString {
		t.Fatalf("expected TagString")
	}
	if string(*v.stringData()) != "hi\nthere" {
		t.Fatalf("got %q", string(*v.stringData()))
	}
}

func Test_ParseCharLiteral(t *testing.T) {
	if Show(parseOne(t, `#\a`)) != "#\\a" {
		t.Fatalf("got %s", Show(parseOne(t, `#\a`)))
	}
	if !Eqv(parseOne(t, `#\space`), CharVal(' ')) {
		t.Fatalf("#\\space should parse to a space character")
	}
}

func Test_ParseList(t *testing.T) {
	v := parseOne(t, "(1 2 3)")
	if v.Tag != TagList || len(v.listElems()) != 3 {
		t.Fatalf("got %s", Show(v))
	}
}

func Test_ParseDottedPair(t *testing.T) {
	v := parseOne(t, "(1 2 . 3)")
	if v.Tag != TagPair {
		t.Fatalf("expected TagPair, got tag %d", v.Tag)
	}
}

func Test_ParseVector(t *testing.T) {
	v := parseOne(t, "#(1 2 3)")
	if v.Tag != TagVector || len(v.vectorData().Elems) != 3 {
		t.Fatalf("got %s", Show(v))
	}
}

func Test_ParseQuoteReaderMacro(t *testing.T) {
	v := parseOne(t, "'foo")
	if v.Tag != TagList || len(v.listElems()) != 2 {
		t.Fatalf("got %s", Show(v))
	}
	if v.listElems()[0].symbolName() != "quote" {
		t.Fatalf("expected (quote foo), got %s", Show(v))
	}
}

func Test_ParseQuasiquoteAndUnquote(t *testing.T) {
	v := parseOne(t, "`(a ,b ,@c)")
	if v.Tag != TagList {
		t.Fatalf("expected a list")
	}
	elems := v.listElems()
	if elems[0].symbolName() != "quasiquote" {
		t.Fatalf("expected quasiquote wrapper, got %s", Show(v))
	}
}

func Test_ParseCommentsAreSkipped(t *testing.T) {
	v := parseOne(t, "; a leading comment\n42 ; trailing")
	if Show(v) != "42" {
		t.Fatalf("got %s, want 42", Show(v))
	}
}

func Test_ParseBlockComment(t *testing.T) {
	v := parseOne(t, "#| a block\ncomment |# 7")
	if Show(v) != "7" {
		t.Fatalf("got %s, want 7", Show(v))
	}
}

func Test_ParseDatumComment(t *testing.T) {
	forms, err := ParseAll("(1 #;2 3)")
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if len(forms) != 1 {
		t.Fatalf("expected 1 top-level form, got %d", len(forms))
	}
	elems := forms[0].listElems()
	if len(elems) != 2 || Show(elems[0]) != "1" || Show(elems[1]) != "3" {
		t.Fatalf("datum comment should drop the middle element: got %s", Show(forms[0]))
	}
}

func Test_ParseAllMultipleTopLevelForms(t *testing.T) {
	forms, err := ParseAll("1 2 3")
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if len(forms) != 3 {
		t.Fatalf("expected 3 forms, got %d", len(forms))
	}
}

func Test_ParseComplexLiteral(t *testing.T) {
	cases := map[string]complex128{
		"3+4i":     complex(3, 4),
		"3-4i":     complex(3, -4),
		"-2-5i":    complex(-2, -5),
		"0+1i":     complex(0, 1),
		"1.5-2.25i": complex(1.5, -2.25),
	}
	for src, want := range cases {
		v := parseOne(t, src)
		if v.Tag != TagComplex {
			t.Fatalf("%s: expected TagComplex, got tag %d", src, v.Tag)
		}
		if v.complexData() != want {
			t.Fatalf("%s: got %v, want %v", src, v.complexData(), want)
		}
	}
}

func Test_ParseHashTableLiteral(t *testing.T) {
	v := parseOne(t, "#[hash-table (a . 1) (b . 2)]")
	if v.Tag != TagHashTable {
		t.Fatalf("expected TagHashTable, got tag %d", v.Tag)
	}
	got, ok := v.hashData().store.get(SymbolVal("a"))
	if !ok || Show(got) != "1" {
		t.Fatalf("expected a -> 1 in the parsed hash table")
	}
}

func Test_ParseEmptyHashTableLiteral(t *testing.T) {
	v := parseOne(t, "#[hash-table]")
	if v.Tag != TagHashTable || v.hashData().store.size() != 0 {
		t.Fatalf("expected an empty hash table, got %s", Show(v))
	}
}

func Test_ParseUnterminatedListIsAParserError(t *testing.T) {
	_, err := Parse("(1 2")
	if err == nil {
		t.Fatalf("expected a parser error on unterminated list")
	}
	ee, ok := err.(*EvalError)
	if !ok || ee.Kind != KindParser {
		t.Fatalf("expected KindParser, got %v", err)
	}
}
