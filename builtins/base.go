// Package builtins holds the embedded commands shipped with the shell.
// Hosts can install all of them with Install or pick individual ones.
package builtins

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	getopt "github.com/pborman/getopt/v2"

	"github.com/mbragg-spear/hostsh/core/proc"
)

var (
	ColorBoldBlue  = color.New(color.FgBlue, color.Bold)
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
	ColorBoldCyan  = color.New(color.FgCyan, color.Bold)
	ColorBoldRed   = color.New(color.FgRed, color.Bold)
)

// allBuiltins holds the session-independent commands, keyed by name.
var allBuiltins = make(map[string]proc.CommandFunc)

func addBuiltin(name string, cmd proc.CommandFunc) {
	allBuiltins[name] = cmd
}

// Install registers every session-independent builtin on the registry.
func Install(r *proc.Registry) {
	for name, cmd := range allBuiltins {
		r.Register(name, cmd)
	}
}

// SimpleCommand handles the option-parsing boilerplate shared by the
// builtins.
type SimpleCommand struct {
	// Use holds a one line usage string.
	Use string
	// Short holds a one line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help
	// flag isn't added.
	ShowHelp *bool
	// NeverBail skips the usage message on bad flags and always runs
	// the callback.
	NeverBail bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run the command, if flag parsing was successful call the callback.
func (s *SimpleCommand) Run(p *proc.Proc, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	err := opts.Getopt(p.Args, nil)
	if err != nil && !s.NeverBail {
		fmt.Fprintf(p.Stderr, "error: %s\n\n", err)

		s.PrintHelp(p.Stdout)
		return 1
	}

	if *s.ShowHelp {
		s.PrintHelp(p.Stdout)
		return 0
	}

	return callback()
}
