// Package repl implements the interactive loop described in spec.md §6:
// "> " prompts a fresh expression, "| " prompts a continuation line of a
// multi-line expression, and end-of-input prints "Goodbye" and returns.
package repl

import (
	"fmt"
	"io"
	"os"

	"github.com/bmatsuo/goscheme/reader"
	"github.com/bmatsuo/goscheme/scheme"
	"github.com/chzyer/readline"
)

const (
	freshPrompt = "> "
	contPrompt  = "| "
)

// Run drives env against interactive input until end-of-input, evaluating
// each top-level expression and echoing its printed result (spec.md §6, §7:
// evaluation errors are printed and the loop continues).
func Run(env *scheme.Env, rd *reader.Reader) error {
	rl, err := readline.New(freshPrompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.ReadSlice()
		if err == readline.ErrInterrupt {
			rl.SetPrompt(freshPrompt)
			continue
		}
		if err == io.EOF {
			fmt.Fprintln(os.Stdout, "Goodbye")
			return nil
		}
		if err != nil {
			return err
		}
		rd.Feed(string(line))
		drainExpressions(env, rd, rl)
	}
}

// drainExpressions evaluates every complete expression currently sitting in
// rd's buffer, then sets rl's prompt according to whether an expression was
// left incomplete.
func drainExpressions(env *scheme.Env, rd *reader.Reader, rl *readline.Instance) {
	for {
		v, err := rd.ReadExpr()
		switch err {
		case reader.ErrEOF:
			rl.SetPrompt(freshPrompt)
			return
		case reader.ErrIncomplete:
			rl.SetPrompt(contPrompt)
			return
		case nil:
			// fall through to evaluation below
		default:
			fmt.Fprintln(os.Stderr, err)
			rl.SetPrompt(freshPrompt)
			continue
		}

		EvalPrint(env, v, os.Stdout, os.Stderr)
	}
}

// EvalPrint evaluates v against env and echoes its printed result to stdout,
// unless the result is Void (spec.md §8 scenario 5: a (display ...)/
// (newline) expression's Void value is never echoed). Evaluation errors go
// to stderr instead of aborting the loop (spec.md §7).
func EvalPrint(env *scheme.Env, v *scheme.Value, stdout, stderr io.Writer) {
	result, err := scheme.Eval(v, env, scheme.NewContinuation())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return
	}
	if result != scheme.Void {
		fmt.Fprintln(stdout, scheme.WriteString(result))
	}
}
