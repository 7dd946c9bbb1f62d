package scheme_test

import (
	"io"
	"testing"

	"github.com/bmatsuo/goscheme/reader"
	"github.com/bmatsuo/goscheme/scheme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnv() *scheme.Env {
	rt := scheme.NewRuntime(scheme.WithStdout(io.Discard), scheme.WithStderr(io.Discard))
	env := scheme.NewGlobalEnv(rt)
	scheme.AddBuiltins(env)
	return env
}

func parseOne(t *testing.T, src string) *scheme.Value {
	t.Helper()
	r := reader.New()
	r.Feed(src)
	v, err := r.ReadExpr()
	require.NoError(t, err)
	return v
}

func evalString(t *testing.T, env *scheme.Env, src string) *scheme.Value {
	t.Helper()
	v := parseOne(t, src)
	result, err := scheme.Eval(v, env, scheme.NewContinuation())
	require.NoError(t, err)
	return result
}

func evalStringErr(t *testing.T, env *scheme.Env, src string) error {
	t.Helper()
	v := parseOne(t, src)
	_, err := scheme.Eval(v, env, scheme.NewContinuation())
	require.Error(t, err)
	return err
}

func TestQuoteAndSelfEvaluating(t *testing.T) {
	env := newTestEnv()
	assert.Equal(t, "5", scheme.WriteString(evalString(t, env, "5")))
	assert.Equal(t, "foo", scheme.WriteString(evalString(t, env, "(quote foo)")))
}

func TestIf(t *testing.T) {
	env := newTestEnv()
	assert.Equal(t, "1", scheme.WriteString(evalString(t, env, "(if #t 1 2)")))
	assert.Equal(t, "2", scheme.WriteString(evalString(t, env, "(if #f 1 2)")))
	assert.Equal(t, "#<void>", scheme.WriteString(evalString(t, env, "(if #f 1)")))
	// Only #f is falsy; 0 is true.
	assert.Equal(t, "yes", scheme.WriteString(evalString(t, env, `(if 0 (quote yes) (quote no))`)))
}

func TestDefineAndLambda(t *testing.T) {
	env := newTestEnv()
	evalString(t, env, "(define (square x) (* x x))")
	assert.Equal(t, "9", scheme.WriteString(evalString(t, env, "(square 3)")))
}

func TestFactorial(t *testing.T) {
	env := newTestEnv()
	evalString(t, env, "(define (f n) (if (= n 0) 1 (* n (f (- n 1)))))")
	assert.Equal(t, "3628800", scheme.WriteString(evalString(t, env, "(f 10)")))
}

func TestSetBang(t *testing.T) {
	env := newTestEnv()
	evalString(t, env, "(define x 1)")
	evalString(t, env, "(set! x 2)")
	assert.Equal(t, "2", scheme.WriteString(evalString(t, env, "x")))

	err := evalStringErr(t, env, "(set! y 0)")
	ee, ok := err.(*scheme.EvalError)
	require.True(t, ok)
	assert.Equal(t, scheme.ErrUnboundSymbol, ee.Kind)
}

func TestVariadicParams(t *testing.T) {
	env := newTestEnv()
	assert.Equal(t, "(1 2 3)", scheme.WriteString(evalString(t, env, "((lambda args args) 1 2 3)")))
	assert.Equal(t, "(1 2 3)", scheme.WriteString(evalString(t, env, "((lambda (x . xs) (cons x xs)) 1 2 3)")))
}

func TestArityErrors(t *testing.T) {
	env := newTestEnv()
	err := evalStringErr(t, env, "(car 1 2)")
	assert.Equal(t, scheme.ErrArityMismatch, err.(*scheme.EvalError).Kind)

	evalString(t, env, "(define f (lambda (a b) a))")
	err = evalStringErr(t, env, "(f 1)")
	assert.Equal(t, scheme.ErrArityMismatch, err.(*scheme.EvalError).Kind)
}

func TestCallCCIdentity(t *testing.T) {
	env := newTestEnv()
	assert.Equal(t, "5", scheme.WriteString(evalString(t, env, "(call/cc (lambda (k) 5))")))
}

func TestCallCCEscape(t *testing.T) {
	env := newTestEnv()
	assert.Equal(t, "11", scheme.WriteString(evalString(t, env, "(+ 1 (call/cc (lambda (k) (+ 2 (k 10)))))")))
}

func TestCallCCReinvoke(t *testing.T) {
	env := newTestEnv()
	evalString(t, env, "(define c #f)")
	assert.Equal(t, "3", scheme.WriteString(evalString(t, env, "(+ 1 (call/cc (lambda (k) (set! c k) 2)))")))
	assert.Equal(t, "11", scheme.WriteString(evalString(t, env, "(c 10)")))
}

func TestApplyBuiltin(t *testing.T) {
	env := newTestEnv()
	assert.Equal(t, "7", scheme.WriteString(evalString(t, env, "(apply + (list 3 4))")))
}

func TestEqvNumericCrossType(t *testing.T) {
	env := newTestEnv()
	assert.Equal(t, "#t", scheme.WriteString(evalString(t, env, "(eqv? 1 1.0)")))
	assert.Equal(t, "#f", scheme.WriteString(evalString(t, env, "(eq? 1 1.0)")))
}

func TestImproperListPrint(t *testing.T) {
	env := newTestEnv()
	assert.Equal(t, "(1 . 2)", scheme.WriteString(evalString(t, env, "(cons 1 2)")))
}

func TestBeginEqualsLastForm(t *testing.T) {
	env := newTestEnv()
	assert.Equal(t, scheme.WriteString(evalString(t, env, "5")), scheme.WriteString(evalString(t, env, "(begin 5)")))
	assert.Equal(t, "3", scheme.WriteString(evalString(t, env, "(begin 1 2 3)")))
}

func TestTailCallBoundedContinuation(t *testing.T) {
	// A depth limit far below n makes Eval fail if tail calls grow the
	// continuation, so success shows its length stays bounded.
	rt := scheme.NewRuntime(scheme.WithStdout(io.Discard), scheme.WithMaxContinuationDepth(16))
	env := scheme.NewGlobalEnv(rt)
	scheme.AddBuiltins(env)
	evalString(t, env, "(define (loop n) (if (= n 0) (quote done) (loop (- n 1))))")
	v := parseOne(t, "(loop 100000)")
	k := scheme.NewContinuation()
	result, err := scheme.Eval(v, env, k)
	require.NoError(t, err)
	assert.Equal(t, "done", scheme.WriteString(result))
	assert.True(t, k.IsEmpty())
}

func TestCallCCWrongArity(t *testing.T) {
	env := newTestEnv()
	err := evalStringErr(t, env, "(call/cc)")
	assert.Equal(t, scheme.ErrArityMismatch, err.(*scheme.EvalError).Kind)

	err = evalStringErr(t, env, "(call/cc (lambda (k) k) (lambda (k) k))")
	assert.Equal(t, scheme.ErrArityMismatch, err.(*scheme.EvalError).Kind)
}

func TestApplyWrongArity(t *testing.T) {
	env := newTestEnv()
	err := evalStringErr(t, env, "(apply)")
	assert.Equal(t, scheme.ErrArityMismatch, err.(*scheme.EvalError).Kind)

	err = evalStringErr(t, env, "(apply +)")
	assert.Equal(t, scheme.ErrArityMismatch, err.(*scheme.EvalError).Kind)

	err = evalStringErr(t, env, "(apply + (list 1) (list 2))")
	assert.Equal(t, scheme.ErrArityMismatch, err.(*scheme.EvalError).Kind)
}

func TestInvokeReifiedContinuationWrongArity(t *testing.T) {
	env := newTestEnv()
	evalString(t, env, "(define c #f)")
	evalString(t, env, "(+ 1 (call/cc (lambda (k) (set! c k) 2)))")

	err := evalStringErr(t, env, "(c)")
	assert.Equal(t, scheme.ErrArityMismatch, err.(*scheme.EvalError).Kind)

	err = evalStringErr(t, env, "(c 1 2)")
	assert.Equal(t, scheme.ErrArityMismatch, err.(*scheme.EvalError).Kind)
}

func TestMalformedSpecialForms(t *testing.T) {
	env := newTestEnv()
	cases := []string{
		"(quote)",
		"(if)",
		"(if #t)",
		"(begin)",
		"(lambda)",
		"(lambda (x))",
		"(define)",
		"(define x)",
		"(define (f))",
		"(define (f) . 1)",
		"(set!)",
		"(set! x)",
	}
	for _, src := range cases {
		err := evalStringErr(t, env, src)
		ee, ok := err.(*scheme.EvalError)
		require.True(t, ok, "expected *scheme.EvalError for %q, got %v (%T)", src, err, err)
		assert.Equal(t, scheme.ErrRead, ee.Kind, "for %q", src)
	}
}

func TestMaxContinuationDepthCatchesNonTailRecursion(t *testing.T) {
	rt := scheme.NewRuntime(scheme.WithStdout(io.Discard), scheme.WithMaxContinuationDepth(50))
	env := scheme.NewGlobalEnv(rt)
	scheme.AddBuiltins(env)
	evalString(t, env, "(define (sum n) (if (= n 0) 0 (+ n (sum (- n 1)))))")
	v := parseOne(t, "(sum 10000)")
	_, err := scheme.Eval(v, env, scheme.NewContinuation())
	require.Error(t, err)
	assert.Equal(t, scheme.ErrInternal, err.(*scheme.EvalError).Kind)
}
