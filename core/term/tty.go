package term

import (
	"bufio"
	"os"

	"golang.org/x/term"
)

// TTY drives a local terminal attached to a pair of files, normally
// os.Stdin/os.Stdout. If the input is not a terminal (input piped from a
// file or another process) raw mode is a no-op and reads simply drain the
// input until EOF.
type TTY struct {
	in    *os.File
	out   *os.File
	br    *bufio.Reader
	state *term.State
}

var _ Terminal = (*TTY)(nil)

// NewTTY creates a terminal over the given files.
func NewTTY(in, out *os.File) *TTY {
	return &TTY{
		in:  in,
		out: out,
		br:  bufio.NewReader(in),
	}
}

// Stdio returns a terminal over the process's stdin and stdout.
func Stdio() *TTY {
	return NewTTY(os.Stdin, os.Stdout)
}

func (t *TTY) Write(b []byte) (int, error) {
	return t.out.Write(b)
}

// MakeRaw puts the terminal into raw mode, remembering the prior state.
func (t *TTY) MakeRaw() error {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	t.state = state
	return nil
}

// Restore returns the terminal to the state captured by the matching
// MakeRaw call. It is a no-op if raw mode was never entered.
func (t *TTY) Restore() error {
	if t.state == nil {
		return nil
	}
	state := t.state
	t.state = nil
	return term.Restore(int(t.in.Fd()), state)
}

// ReadByte reads a single keystroke.
func (t *TTY) ReadByte() (byte, error) {
	return t.br.ReadByte()
}
