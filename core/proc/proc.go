// Package proc holds the command registry shared by a shell session and the
// invocation context handed to embedded commands.
package proc

import (
	"io"
)

// Proc is the context an embedded command runs with. For the duration of the
// call Stdin and Stdout are whatever the pipeline stage bound them to; the
// command must not retain them after returning.
type Proc struct {
	// Args holds the argument list, Args[0] is the command name.
	Args []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Env is the session environment, shared with the rest of the shell.
	Env *Env
}

// Getenv fetches a session environment variable.
func (p *Proc) Getenv(key string) string {
	if p.Env == nil {
		return ""
	}
	return p.Env.Getenv(key)
}

// Setenv sets a session environment variable.
func (p *Proc) Setenv(key, value string) {
	if p.Env != nil {
		p.Env.Setenv(key, value)
	}
}

// CommandFunc is an embedded command. It runs synchronously in the calling
// context and returns an exit status; it reports its own failures on Stderr.
type CommandFunc func(p *Proc) int
