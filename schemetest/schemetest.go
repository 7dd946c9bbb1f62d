// Package schemetest provides a small table-driven harness for evaluating
// sequences of expressions against a fresh global environment and asserting
// on their printed results, grounded on the teacher's elpstest.TestSuite /
// elpstest.RunTestSuite pattern.
package schemetest

import (
	"io"
	"testing"

	"github.com/bmatsuo/goscheme/reader"
	"github.com/bmatsuo/goscheme/scheme"
)

// TestSequence is a sequence of expressions evaluated one after another
// against the same environment, so earlier defines are visible to later
// expressions in the sequence.
type TestSequence []struct {
	Expr   string // a Scheme expression
	Result string // its expected WriteString'd result
}

// TestSuite is a set of named TestSequences, each run against its own
// isolated environment.
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests against a fresh global
// environment.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		env := NewEnv()
		for j, expr := range test.TestSequence {
			r := reader.New()
			r.Feed(expr.Expr)
			v, err := r.ReadExpr()
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			result, err := scheme.Eval(v, env, scheme.NewContinuation())
			if err != nil {
				t.Errorf("test %d %q: expr %d: eval error: %v", i, test.Name, j, err)
				continue
			}
			got := scheme.WriteString(result)
			if got != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, got)
			}
		}
	}
}

// NewEnv returns a fresh global environment with the standard built-ins
// installed, discarding stdout so tests that (display ...) don't spam the
// test log.
func NewEnv() *scheme.Env {
	rt := scheme.NewRuntime(scheme.WithStdout(io.Discard))
	env := scheme.NewGlobalEnv(rt)
	scheme.AddBuiltins(env)
	return env
}
