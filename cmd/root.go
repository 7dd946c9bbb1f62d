// Package cmd implements the driver's command line described in spec.md
// §6: "interp [source-file [-]]".
package cmd

import (
	"fmt"
	"os"

	"github.com/bmatsuo/goscheme/reader"
	"github.com/bmatsuo/goscheme/repl"
	"github.com/bmatsuo/goscheme/scheme"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "interp [source-file [-]]",
	Short: "A minimal Scheme interpreter",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runInterp,
}

// Execute runs the root command and exits the process with status 1 on
// error, matching the "file load errors exit 1" rule of spec.md §6 (a
// no-arguments REPL session already handles its own errors internally and
// only returns here at end-of-input).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runInterp(cmd *cobra.Command, args []string) error {
	rt := scheme.NewRuntime()
	env := scheme.NewGlobalEnv(rt)
	scheme.AddBuiltins(env)

	if len(args) == 0 {
		rd := reader.New()
		rt.Input = rd
		return repl.Run(env, rd)
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	rd := reader.New()
	rd.Feed(string(data))
	rt.Input = rd
	if err := loadAll(env, rd); err != nil {
		return err
	}

	if len(args) == 2 && args[1] == "-" {
		return repl.Run(env, rd)
	}
	return nil
}

// loadAll reads and evaluates every top-level expression in rd's buffer, in
// order, against env (spec.md §6: "read all top-level expressions; evaluate
// each in the global environment").
func loadAll(env *scheme.Env, rd *reader.Reader) error {
	for {
		v, err := rd.ReadExpr()
		if err == reader.ErrEOF {
			return nil
		}
		if err == reader.ErrIncomplete {
			return fmt.Errorf("unexpected end of file in expression")
		}
		if err != nil {
			return err
		}
		if _, err := scheme.Eval(v, env, scheme.NewContinuation()); err != nil {
			return err
		}
	}
}
