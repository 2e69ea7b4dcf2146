package term

import (
	"bufio"
	"io"
)

// Remote adapts a byte stream, typically an SSH session with a client-side
// PTY, to the Terminal interface. The client's own terminal is already
// in raw mode for the duration of the session, so MakeRaw and Restore do
// nothing.
type Remote struct {
	br  *bufio.Reader
	out io.Writer
}

var _ Terminal = (*Remote)(nil)

// NewRemote creates a terminal over the given stream.
func NewRemote(rw io.ReadWriter) *Remote {
	return &Remote{
		br:  bufio.NewReader(rw),
		out: rw,
	}
}

func (r *Remote) Write(b []byte) (int, error) {
	return r.out.Write(b)
}

func (r *Remote) MakeRaw() error { return nil }

func (r *Remote) Restore() error { return nil }

func (r *Remote) ReadByte() (byte, error) {
	return r.br.ReadByte()
}
