package goscheme

import "testing"

func evalSrc(t *testing.T, src string) Value {
	t.Helper()
	ip := NewStandardInterpreter()
	v, err := ip.EvalSource(src)
	if err != nil {
		t.Fatalf("EvalSource(%q): %v", src, err)
	}
	return v
}

// Scenario 1: (+ 1 2 3) -> 6.
func Test_Scenario1_Addition(t *testing.T) {
	v := evalSrc(t, "(+ 1 2 3)")
	if Show(v) != "6" {
		t.Fatalf("got %s, want 6", Show(v))
	}
}

// Scenario 2: recursive (non-tail) summation.
func Test_Scenario2_RecursiveSum(t *testing.T) {
	v := evalSrc(t, `
		(define f (lambda (n) (if (= n 0) 0 (+ n (f (- n 1))))))
		(f 5)`)
	if Show(v) != "15" {
		t.Fatalf("got %s, want 15", Show(v))
	}
}

// Scenario 3: a continuation captured in one top-level form is invoked
// from a later, independent top-level form and resumes correctly.
func Test_Scenario3_CrossCallContinuationResumption(t *testing.T) {
	ip := NewStandardInterpreter()
	if _, err := ip.EvalSource(`(define k #f)`); err != nil {
		t.Fatalf("define k: %v", err)
	}
	first, err := ip.EvalSource(`(+ 1 (call/cc (lambda (c) (set! k c) 10)))`)
	if err != nil {
		t.Fatalf("first eval: %v", err)
	}
	if Show(first) != "11" {
		t.Fatalf("first result: got %s, want 11", Show(first))
	}
	second, err := ip.EvalSource(`(k 100)`)
	if err != nil {
		t.Fatalf("second eval (invoking k): %v", err)
	}
	if Show(second) != "101" {
		t.Fatalf("second result: got %s, want 101", Show(second))
	}
}

// Scenario 4: vector aliasing through define.
func Test_Scenario4_VectorAliasing(t *testing.T) {
	v := evalSrc(t, `
		(define v (make-vector 3 0))
		(define w v)
		(vector-set! w 1 42)
		v`)
	if Show(v) != "#(0 42 0)" {
		t.Fatalf("got %s, want #(0 42 0)", Show(v))
	}
}

// Scenario 5: named-let tail loop of 100000 iterations must not exhaust
// the Go stack (P6, proper tail calls).
func Test_Scenario5_NamedLetTailLoop(t *testing.T) {
	v := evalSrc(t, `(let loop ((n 100000) (a 0)) (if (= n 0) a (loop (- n 1) (+ a 1))))`)
	if Show(v) != "100000" {
		t.Fatalf("got %s, want 100000", Show(v))
	}
}

// Scenario 6: rational canonicalisation — 2/4 reduces to 1/2.
func Test_Scenario6_RationalCanonicalisation(t *testing.T) {
	v := evalSrc(t, `(eqv? 1/2 (/ 2 4))`)
	if !v.IsTruthy() {
		t.Fatalf("expected #t, got %s", Show(v))
	}
}

// P7: call/cc idempotence when the continuation is invoked within the
// same dynamic extent that captured it.
func Test_P7_CallCCIdempotence(t *testing.T) {
	v := evalSrc(t, `(call/cc (lambda (k) (k 42)))`)
	if Show(v) != "42" {
		t.Fatalf("got %s, want 42", Show(v))
	}
}

// P8: arguments are evaluated strictly left to right.
func Test_P8_ArgumentOrder(t *testing.T) {
	v := evalSrc(t, `
		(define log '())
		((lambda (a b) (list a b))
		 (begin (set! log (cons 1 log)) 'x)
		 (begin (set! log (cons 2 log)) 'y))
		log`)
	if Show(v) != "(2 1)" {
		t.Fatalf("got %s, want (2 1)", Show(v))
	}
}

func Test_IfWithoutElse(t *testing.T) {
	v := evalSrc(t, `(if #f 1)`)
	if v.Tag != TagNil {
		t.Fatalf("expected nil, got %s", Show(v))
	}
}

func Test_LetStarSequentialScoping(t *testing.T) {
	v := evalSrc(t, `(let* ((x 1) (y (+ x 1))) (+ x y))`)
	if Show(v) != "3" {
		t.Fatalf("got %s, want 3", Show(v))
	}
}

func Test_LetrecMutualRecursion(t *testing.T) {
	v := evalSrc(t, `
		(letrec ((even? (lambda (n) (if (= n 0) #t (odd? (- n 1)))))
		         (odd?  (lambda (n) (if (= n 0) #f (even? (- n 1))))))
		  (even? 10))`)
	if !v.IsTruthy() {
		t.Fatalf("expected #t, got %s", Show(v))
	}
}

func Test_CondElseFallthrough(t *testing.T) {
	v := evalSrc(t, `(cond (#f 1) (#f 2) (else 3))`)
	if Show(v) != "3" {
		t.Fatalf("got %s, want 3", Show(v))
	}
}

func Test_QuasiquoteUnquoteSplicing(t *testing.T) {
	v := evalSrc(t, "`(1 ,(+ 1 1) ,@(list 3 4))")
	if Show(v) != "(1 2 3 4)" {
		t.Fatalf("got %s, want (1 2 3 4)", Show(v))
	}
}

func Test_ApplyReentersEvaluator(t *testing.T) {
	v := evalSrc(t, `(apply + '(1 2 3))`)
	if Show(v) != "6" {
		t.Fatalf("got %s, want 6", Show(v))
	}
}

func Test_MapReentersEvaluator(t *testing.T) {
	v := evalSrc(t, `(map (lambda (x) (* x x)) '(1 2 3))`)
	if Show(v) != "(1 4 9)" {
		t.Fatalf("got %s, want (1 4 9)", Show(v))
	}
}

func Test_CallCCEscapesMapLoop(t *testing.T) {
	// A continuation captured outside map, invoked from inside the
	// closure map re-enters Eval with, must unwind past map's own Go
	// frame (exercises activeTokens attribution across re-entrant Apply).
	v := evalSrc(t, `
		(call/cc (lambda (return)
		  (map (lambda (x) (if (= x 3) (return 'found) x)) '(1 2 3 4 5))))`)
	if Show(v) != "found" {
		t.Fatalf("got %s, want found", Show(v))
	}
}

func Test_ValuesCallWithValues(t *testing.T) {
	v := evalSrc(t, `(call-with-values (lambda () (values 1 2)) (lambda (a b) (+ a b)))`)
	if Show(v) != "3" {
		t.Fatalf("got %s, want 3", Show(v))
	}
}

func Test_UnboundVariableError(t *testing.T) {
	ip := NewStandardInterpreter()
	_, err := ip.EvalSource(`undefined-name`)
	if err == nil {
		t.Fatalf("expected an unbound-variable error")
	}
	ee, ok := err.(*EvalError)
	if !ok || ee.Kind != KindUnboundVar {
		t.Fatalf("expected KindUnboundVar, got %v", err)
	}
}

func Test_NotFunctionError(t *testing.T) {
	ip := NewStandardInterpreter()
	_, err := ip.EvalSource(`(1 2 3)`)
	if err == nil {
		t.Fatalf("expected a not-a-procedure error")
	}
	ee, ok := err.(*EvalError)
	if !ok || ee.Kind != KindNotFunction {
		t.Fatalf("expected KindNotFunction, got %v", err)
	}
}
