package goscheme

import "testing"

func Test_HashTableSetAndRef(t *testing.T) {
	v := evalSrc(t, `
		(define h (make-hash-table))
		(hash-table-set! h 'a 1)
		(hash-table-ref h 'a)`)
	if Show(v) != "1" {
		t.Fatalf("got %s, want 1", Show(v))
	}
}

func Test_HashTableRefMissingKeyErrors(t *testing.T) {
	ip := NewStandardInterpreter()
	_, err := ip.EvalSource(`(hash-table-ref (make-hash-table) 'missing)`)
	if err == nil {
		t.Fatalf("expected an error for a missing key")
	}
}

func Test_HashTableRefDefault(t *testing.T) {
	v := evalSrc(t, `(hash-table-ref/default (make-hash-table) 'missing 'fallback)`)
	if Show(v) != "fallback" {
		t.Fatalf("got %s, want fallback", Show(v))
	}
}

func Test_HashTableDeleteAndContains(t *testing.T) {
	v := evalSrc(t, `
		(define h (make-hash-table))
		(hash-table-set! h 'a 1)
		(hash-table-delete! h 'a)
		(hash-table-contains? h 'a)`)
	if v.IsTruthy() {
		t.Fatalf("key should no longer be present after delete!")
	}
}

func Test_HashTableKeysValuesSize(t *testing.T) {
	v := evalSrc(t, `
		(define h (make-hash-table))
		(hash-table-set! h 'a 1)
		(hash-table-set! h 'b 2)
		(hash-table-size h)`)
	if Show(v) != "2" {
		t.Fatalf("got %s, want 2", Show(v))
	}
}

func Test_HashTableToAlist(t *testing.T) {
	v := evalSrc(t, `
		(define h (make-hash-table))
		(hash-table-set! h 'a 1)
		(hash-table->alist h)`)
	if Show(v) != "((a . 1))" {
		t.Fatalf("got %s, want ((a . 1))", Show(v))
	}
}
