// Package editor implements the raw-mode line editor: keystroke handling,
// in-line cursor editing and history recall.
package editor

import (
	"fmt"
	"io"
	"strings"

	"github.com/mbragg-spear/hostsh/core/history"
	"github.com/mbragg-spear/hostsh/core/term"
)

const (
	keyEscape    = 0x1b
	keyBackspace = 0x7f
	keyCtrlH     = 0x08
)

// Editor reads command lines one keystroke at a time from a Terminal,
// maintaining an editable buffer with a logical cursor and integrating
// with the history buffer for recall.
type Editor struct {
	term    term.Terminal
	history *history.Buffer
}

// New creates an editor over the given terminal and history buffer.
func New(t term.Terminal, h *history.Buffer) *Editor {
	if h == nil {
		h = history.NewBuffer(0)
	}
	return &Editor{term: t, history: h}
}

// ReadLine reads one finished line of input, echoing and redrawing as the
// user edits. The terminal is in raw mode for the duration of the call and
// restored on every exit path. Finished lines are appended to history;
// empty lines are not recorded.
//
// When the input ends before Enter, the accumulated text is returned
// together with io.EOF; callers should treat the text as a finished line
// and then stop reading.
func (ed *Editor) ReadLine(prompt string) (line string, err error) {
	if err := ed.term.MakeRaw(); err != nil {
		return "", err
	}
	defer func() {
		if rerr := ed.term.Restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	var buf []byte
	cursor := 0
	ed.print(prompt)

	finish := func() string {
		line := string(buf)
		ed.history.Add(line)
		return line
	}

	for {
		c, rerr := ed.term.ReadByte()
		if rerr != nil {
			return finish(), io.EOF
		}

		switch {
		case c == keyEscape:
			seq0, err0 := ed.term.ReadByte()
			seq1, err1 := ed.term.ReadByte()
			if err0 != nil || err1 != nil {
				return finish(), io.EOF
			}
			if seq0 != '[' {
				continue
			}

			switch seq1 {
			case 'A': // up
				if recalled, ok := ed.history.Up(); ok {
					buf = append(buf[:0], recalled...)
					cursor = len(buf)
					ed.replaceLine(prompt, recalled)
				}
			case 'B': // down
				if recalled, ok := ed.history.Down(); ok {
					buf = append(buf[:0], recalled...)
					cursor = len(buf)
					ed.replaceLine(prompt, recalled)
				}
			case 'C': // right
				if cursor < len(buf) {
					cursor++
					ed.print("\x1b[C")
				}
			case 'D': // left
				if cursor > 0 {
					cursor--
					ed.print("\x1b[D")
				}
			}

		case c == '\r' || c == '\n':
			if n := trailingBackslashes(buf); n%2 == 1 {
				// Escaped newline: line continuation, keep editing.
				buf = buf[:len(buf)-1]
				cursor = len(buf)
				prompt = "> "
				ed.print("\r\n")
				ed.replaceLine(prompt, string(buf))
				continue
			}
			ed.print("\r\n")
			return finish(), nil

		case c == keyBackspace || c == keyCtrlH:
			if cursor == 0 {
				continue
			}
			copy(buf[cursor-1:], buf[cursor:])
			buf = buf[:len(buf)-1]
			cursor--
			// Reprint the shifted tail, erase the ghost character and
			// walk the terminal cursor back into place.
			ed.print("\b")
			ed.print(string(buf[cursor:]))
			ed.print(" ")
			ed.cursorLeft(len(buf) - cursor + 1)

		case c >= 0x20 && c <= 0x7e:
			if cursor < len(buf) {
				buf = append(buf, 0)
				copy(buf[cursor+1:], buf[cursor:])
				buf[cursor] = c
				ed.print(string(buf[cursor:]))
				ed.cursorLeft(len(buf) - cursor - 1)
				cursor++
			} else {
				buf = append(buf, c)
				cursor++
				ed.print(string([]byte{c}))
			}

			// Other control bytes are dropped.
		}
	}
}

// trailingBackslashes counts the run of backslashes ending buf. An odd run
// means the would-be newline is escaped.
func trailingBackslashes(buf []byte) int {
	n := 0
	for i := len(buf) - 1; i >= 0 && buf[i] == '\\'; i-- {
		n++
	}
	return n
}

// replaceLine redraws the whole visible line: carriage return, clear to end
// of line, prompt and the replacement text, leaving the cursor at the end.
func (ed *Editor) replaceLine(prompt, text string) {
	ed.print("\r\x1b[K")
	ed.print(prompt)
	ed.print(text)
}

func (ed *Editor) cursorLeft(n int) {
	if n > 0 {
		ed.print(strings.Repeat("\x1b[D", n))
	}
}

func (ed *Editor) print(s string) {
	fmt.Fprint(ed.term, s)
}
