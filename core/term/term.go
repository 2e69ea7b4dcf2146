// Package term abstracts the terminal capabilities the line editor needs:
// toggling raw mode and reading single keystrokes. Implementations exist for
// a local TTY, a remote SSH session and a scripted terminal for tests; the
// editor is agnostic to which one it drives.
package term

import (
	"io"
)

// Terminal is the capability interface consumed by the line editor.
//
// MakeRaw and Restore must be paired: any caller that enables raw mode is
// responsible for restoring the previous mode on every exit path. ReadByte
// returns io.EOF when no further input will arrive.
type Terminal interface {
	io.Writer

	MakeRaw() error
	Restore() error
	ReadByte() (byte, error)
}
