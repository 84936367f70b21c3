package goscheme

import "testing"

func Test_ArithmeticNAry(t *testing.T) {
	if Show(evalSrc(t, `(+ 1 2 3 4)`)) != "10" {
		t.Fatalf("+ mismatch")
	}
	if Show(evalSrc(t, `(* 1 2 3 4)`)) != "24" {
		t.Fatalf("* mismatch")
	}
	if Show(evalSrc(t, `(- 10 1 2)`)) != "7" {
		t.Fatalf("- mismatch")
	}
	if Show(evalSrc(t, `(- 5)`)) != "-5" {
		t.Fatalf("unary - mismatch")
	}
	if Show(evalSrc(t, `(/ 1 2)`)) != "1/2" {
		t.Fatalf("/ mismatch: got %s", Show(evalSrc(t, `(/ 1 2)`)))
	}
}

func Test_ComparisonChains(t *testing.T) {
	if !evalSrc(t, `(< 1 2 3)`).IsTruthy() {
		t.Fatalf("1 < 2 < 3 should be #t")
	}
	if evalSrc(t, `(< 1 3 2)`).IsTruthy() {
		t.Fatalf("1 < 3 < 2 should be #f")
	}
	if !evalSrc(t, `(= 2 2 2)`).IsTruthy() {
		t.Fatalf("2 = 2 = 2 should be #t")
	}
}

func Test_QuotientRemainderModulo(t *testing.T) {
	if Show(evalSrc(t, `(quotient 7 2)`)) != "3" {
		t.Fatalf("quotient mismatch")
	}
	if Show(evalSrc(t, `(remainder 7 2)`)) != "1" {
		t.Fatalf("remainder mismatch")
	}
	if Show(evalSrc(t, `(modulo -7 2)`)) != "1" {
		t.Fatalf("modulo mismatch: got %s", Show(evalSrc(t, `(modulo -7 2)`)))
	}
	if Show(evalSrc(t, `(remainder -7 2)`)) != "-1" {
		t.Fatalf("remainder sign should follow the dividend: got %s", Show(evalSrc(t, `(remainder -7 2)`)))
	}
}

func Test_AbsGcdLcm(t *testing.T) {
	if Show(evalSrc(t, `(abs -5)`)) != "5" {
		t.Fatalf("abs mismatch")
	}
	if Show(evalSrc(t, `(gcd 12 18)`)) != "6" {
		t.Fatalf("gcd mismatch")
	}
	if Show(evalSrc(t, `(lcm 4 6)`)) != "12" {
		t.Fatalf("lcm mismatch")
	}
}

func Test_ExactInexactConversions(t *testing.T) {
	if Show(evalSrc(t, `(exact->inexact 1/2)`)) != "0.5" {
		t.Fatalf("exact->inexact mismatch: got %s", Show(evalSrc(t, `(exact->inexact 1/2)`)))
	}
	if Show(evalSrc(t, `(inexact->exact 3.0)`)) != "3" {
		t.Fatalf("inexact->exact mismatch")
	}
}

func Test_ZeroPositiveNegativePredicates(t *testing.T) {
	if !evalSrc(t, `(zero? 0)`).IsTruthy() {
		t.Fatalf("zero? 0 should be #t")
	}
	if !evalSrc(t, `(positive? 1)`).IsTruthy() {
		t.Fatalf("positive? 1 should be #t")
	}
	if !evalSrc(t, `(negative? -1)`).IsTruthy() {
		t.Fatalf("negative? -1 should be #t")
	}
}

func Test_OddEvenPredicates(t *testing.T) {
	if !evalSrc(t, `(odd? 3)`).IsTruthy() {
		t.Fatalf("odd? 3 should be #t")
	}
	if !evalSrc(t, `(even? 4)`).IsTruthy() {
		t.Fatalf("even? 4 should be #t")
	}
}

func Test_MinMax(t *testing.T) {
	if Show(evalSrc(t, `(min 3 1 2)`)) != "1" {
		t.Fatalf("min mismatch")
	}
	if Show(evalSrc(t, `(max 3 1 2)`)) != "3" {
		t.Fatalf("max mismatch")
	}
}

func Test_MinContagiousInexactness(t *testing.T) {
	// min/max's winner is promoted to inexact if any argument was inexact,
	// even though 1.0 and 1 print identically via showNumber's 'g' format.
	v := evalSrc(t, `(min 1 2.0)`)
	if v.Tag != TagReal {
		t.Fatalf("expected the winner promoted to TagReal, got tag %d", v.Tag)
	}
}

func Test_ExptAndSqrt(t *testing.T) {
	if Show(evalSrc(t, `(expt 2 10)`)) != "1024" {
		t.Fatalf("expt mismatch")
	}
	if Show(evalSrc(t, `(sqrt 16)`)) != "4" {
		t.Fatalf("sqrt of a perfect square should stay exact: got %s", Show(evalSrc(t, `(sqrt 16)`)))
	}
}

func Test_QuotientByZeroErrors(t *testing.T) {
	ip := NewStandardInterpreter()
	_, err := ip.EvalSource(`(quotient 1 0)`)
	if err == nil {
		t.Fatalf("expected a divide-by-zero error")
	}
	ee, ok := err.(*EvalError)
	if !ok || ee.Kind != KindDivideByZero {
		t.Fatalf("expected KindDivideByZero, got %v", err)
	}
}
