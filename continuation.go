// continuation.go — the reified control state (spec.md §4.3, §4.4, §9).
//
// Grounded on two sources: the teacher's panic/recover error-propagation
// idiom (errors.go's WrapErrorWithSource catches at a single boundary),
// generalized here into a control-transfer signal for call/cc, and
// other_examples/nukata-little-scheme-in-go__scm.go's Evaluate loop (an
// explicit (exp, env, continuation) trampoline, itself panic/recover
// wrapped) for the overall shape — reworked from nukata's flat op-stack
// into a linked frame chain so Continuation carries the Env/Body/Parent/
// Step fields spec.md's value table names explicitly.
package goscheme

// invocationToken identifies one dynamic extent of Eval/Apply. Every
// Continuation frame created during that extent carries it, so a captured
// continuation invoked later (possibly from a different top-level call, or
// from inside a re-entrant Eval call a primitive made) can be resumed at
// the right point on the Go call stack — see run's recover clause.
type invocationToken struct{}

// activeTokens is the stack of dynamic extents currently on the Go call
// stack (single-threaded per spec.md §5: "one mutator at a time", so a
// package-level slice is safe).
var activeTokens []*invocationToken

func pushActiveToken(t *invocationToken) { activeTokens = append(activeTokens, t) }

func popActiveToken() { activeTokens = activeTokens[:len(activeTokens)-1] }

func tokenActive(t *invocationToken) bool {
	for _, a := range activeTokens {
		if a == t {
			return true
		}
	}
	return false
}

// CPSStep is the host callable a Continuation frame runs once a value
// arrives (spec.md §4.3: "(E, current-cont, value) -> Result<V>"). It
// returns the next loopState for the trampoline: either a value ready to
// deliver further, or a new (expression, environment, continuation) to
// reduce — never a direct recursive call into the evaluator, so proper
// tail calls never grow the Go stack.
type CPSStep func(self *Continuation, v Value) (loopState, error)

// Continuation is the reified control state of spec.md's value table: the
// environment it resumes in, the residual body of forms still to evaluate
// in sequence, a parent continuation, and optionally a CPS step. A frame
// with Step set runs that step on arrival (if, set!, define, application
// bookkeeping); a frame with neither Step nor Body set is a plain
// delegation to Parent; a frame with only Body set is a sequence
// continuation (begin, closure bodies, let bodies).
//
// Two constructors are named directly after spec.md's "null-cont" and
// "make-cps"; seqState (eval.go) is this repository's factoring-out of
// the sequence-continuation case both forms and closure application need.
type Continuation struct {
	Env    *Env
	Body   []Value
	Parent *Continuation
	Step   CPSStep
	owner  *invocationToken
}

// nullCont builds the terminal continuation for a fresh Eval/Apply call:
// empty body, no step — delivering a value to it ends that call.
func nullCont(env *Env, token *invocationToken) *Continuation {
	return &Continuation{Env: env, owner: token}
}

// makeCPS builds an intermediate continuation frame running step on arrival.
func makeCPS(env *Env, parent *Continuation, token *invocationToken, step CPSStep) *Continuation {
	return &Continuation{Env: env, Parent: parent, Step: step, owner: token}
}

// contJump is the unwinding signal a captured continuation's invocation
// raises (spec.md §5: "Implementations may realise this by throwing an
// unwinding signal caught at the evaluator's trampoline"). k.owner decides
// which active run() frame catches it; see run's recover clause.
type contJump struct {
	k *Continuation
	v Value
}
