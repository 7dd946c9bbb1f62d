package scheme

import (
	"io"
	"os"
)

// Config configures a Runtime via functional options, in the style of the
// teacher's lisp.Config (SPEC_FULL.md §3).
type Config struct {
	stdout     io.Writer
	stderr     io.Writer
	input      Reader
	maxCoDepth int
}

// Option configures a Config.
type Option func(*Config)

// WithStdout overrides the stream the display and newline builtins write
// to. Defaults to os.Stdout. The REPL echoes results to the writer passed
// to repl.EvalPrint, not to this stream.
func WithStdout(w io.Writer) Option {
	return func(c *Config) { c.stdout = w }
}

// WithStderr sets Runtime.Stderr. Defaults to os.Stderr. Nothing in this
// package writes to it; evaluation errors are returned to the caller, and
// the REPL reports them on the writer passed to repl.EvalPrint.
func WithStderr(w io.Writer) Option {
	return func(c *Config) { c.stderr = w }
}

// WithInput sets the reader the (read) builtin pulls from. Defaults to nil,
// in which case (read) returns the eof object.
func WithInput(r Reader) Option {
	return func(c *Config) { c.input = r }
}

// WithMaxContinuationDepth bounds the number of frames a Continuation may
// hold before the evaluator raises an internal error, guarding against a
// runaway non-tail recursion. Zero (the default) means unbounded.
func WithMaxContinuationDepth(n int) Option {
	return func(c *Config) { c.maxCoDepth = n }
}

// NewRuntime builds a Runtime from opts, applied over the defaults.
func NewRuntime(opts ...Option) *Runtime {
	c := &Config{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(c)
	}
	return &Runtime{
		Stdout:     c.stdout,
		Stderr:     c.stderr,
		Input:      c.input,
		MaxCoDepth: c.maxCoDepth,
	}
}
