package goscheme

import "testing"

func Test_ConsCarCdr(t *testing.T) {
	v := evalSrc(t, `(car (cons 1 2))`)
	if Show(v) != "1" {
		t.Fatalf("got %s, want 1", Show(v))
	}
	v = evalSrc(t, `(cdr (cons 1 2))`)
	if Show(v) != "2" {
		t.Fatalf("got %s, want 2", Show(v))
	}
}

func Test_ConsOntoProperListStaysAList(t *testing.T) {
	v := evalSrc(t, `(cons 1 (list 2 3))`)
	if v.Tag != TagList {
		t.Fatalf("expected TagList, got tag %d", v.Tag)
	}
	if Show(v) != "(1 2 3)" {
		t.Fatalf("got %s, want (1 2 3)", Show(v))
	}
}

func Test_CarOfEmptyListErrors(t *testing.T) {
	ip := NewStandardInterpreter()
	_, err := ip.EvalSource(`(car '())`)
	if err == nil {
		t.Fatalf("expected an error taking car of the empty list")
	}
}

func Test_SetCarMutatesInPlace(t *testing.T) {
	v := evalSrc(t, `
		(define p (cons 1 2))
		(set-car! p 99)
		p`)
	if Show(v) != "(99 . 2)" {
		t.Fatalf("got %s, want (99 . 2)", Show(v))
	}
}

func Test_SetCdrMutatesInPlace(t *testing.T) {
	v := evalSrc(t, `
		(define p (cons 1 2))
		(set-cdr! p 99)
		p`)
	if Show(v) != "(1 . 99)" {
		t.Fatalf("got %s, want (1 . 99)", Show(v))
	}
}

func Test_PairAndNullPredicates(t *testing.T) {
	if !evalSrc(t, `(pair? (cons 1 2))`).IsTruthy() {
		t.Fatalf("(cons 1 2) should be a pair")
	}
	if evalSrc(t, `(pair? '())`).IsTruthy() {
		t.Fatalf("the empty list should not be a pair")
	}
	if !evalSrc(t, `(null? '())`).IsTruthy() {
		t.Fatalf("the empty list should be null?")
	}
}

func Test_LengthAppendReverse(t *testing.T) {
	if Show(evalSrc(t, `(length '(1 2 3))`)) != "3" {
		t.Fatalf("length mismatch")
	}
	if Show(evalSrc(t, `(append '(1 2) '(3 4))`)) != "(1 2 3 4)" {
		t.Fatalf("append mismatch")
	}
	if Show(evalSrc(t, `(reverse '(1 2 3))`)) != "(3 2 1)" {
		t.Fatalf("reverse mismatch")
	}
}

func Test_ListRefAndListTail(t *testing.T) {
	if Show(evalSrc(t, `(list-ref '(a b c) 1)`)) != "b" {
		t.Fatalf("list-ref mismatch")
	}
	if Show(evalSrc(t, `(list-tail '(a b c) 1)`)) != "(b c)" {
		t.Fatalf("list-tail mismatch")
	}
}

func Test_ForEachSideEffectsInOrder(t *testing.T) {
	v := evalSrc(t, `
		(define acc '())
		(for-each (lambda (x) (set! acc (cons x acc))) '(1 2 3))
		acc`)
	if Show(v) != "(3 2 1)" {
		t.Fatalf("got %s, want (3 2 1)", Show(v))
	}
}

func Test_MapOverMultipleLists(t *testing.T) {
	v := evalSrc(t, `(map + '(1 2 3) '(10 20 30))`)
	if Show(v) != "(11 22 33)" {
		t.Fatalf("got %s, want (11 22 33)", Show(v))
	}
}

func Test_MapStopsAtShortestList(t *testing.T) {
	v := evalSrc(t, `(map + '(1 2 3) '(10 20))`)
	if Show(v) != "(11 22)" {
		t.Fatalf("got %s, want (11 22)", Show(v))
	}
}
