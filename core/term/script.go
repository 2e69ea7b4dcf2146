package term

import (
	"bytes"
	"io"
)

// Script is an in-memory terminal fed from a fixed byte sequence, used to
// drive the line editor in tests. It records raw-mode transitions so tests
// can assert MakeRaw/Restore pairing.
type Script struct {
	in  *bytes.Reader
	Out bytes.Buffer

	RawDepth     int
	RawCalls     int
	RestoreCalls int
}

var _ Terminal = (*Script)(nil)

// NewScript creates a terminal that will replay the given keystrokes and
// then report EOF.
func NewScript(keys string) *Script {
	return &Script{in: bytes.NewReader([]byte(keys))}
}

func (s *Script) Write(b []byte) (int, error) {
	return s.Out.Write(b)
}

func (s *Script) MakeRaw() error {
	s.RawDepth++
	s.RawCalls++
	return nil
}

func (s *Script) Restore() error {
	s.RawDepth--
	s.RestoreCalls++
	return nil
}

func (s *Script) ReadByte() (byte, error) {
	b, err := s.in.ReadByte()
	if err != nil {
		return 0, io.EOF
	}
	return b, nil
}
