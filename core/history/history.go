// Package history implements the shell's fixed-capacity command history.
package history

import (
	"strings"

	"github.com/spf13/afero"
)

// DefaultCapacity is the number of lines kept when no capacity is given.
const DefaultCapacity = 50

// Buffer is an ordered log of past command lines plus a view index used for
// recall. The view index ranges over [0, len]; len means "not recalling".
// It is mutated only by Add and by Up/Down navigation.
type Buffer struct {
	capacity int
	entries  []string
	view     int
}

// NewBuffer creates a history buffer holding at most capacity lines.
// Non-positive capacities fall back to DefaultCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{capacity: capacity}
}

// Len returns the number of stored lines.
func (b *Buffer) Len() int { return len(b.entries) }

// Entries returns the stored lines, oldest first. The returned slice is the
// buffer's backing store and must not be mutated by the caller.
func (b *Buffer) Entries() []string { return b.entries }

// Add appends a line, evicting the oldest entry when full. Empty lines are
// not recorded. The view index resets to the new length so the next Up
// recalls the line just added.
func (b *Buffer) Add(line string) {
	if line == "" {
		return
	}

	if len(b.entries) == b.capacity {
		copy(b.entries, b.entries[1:])
		b.entries = b.entries[:len(b.entries)-1]
	}
	b.entries = append(b.entries, line)
	b.view = len(b.entries)
}

// Up moves the view one entry back and returns it. It reports false at the
// oldest entry.
func (b *Buffer) Up() (string, bool) {
	if b.view == 0 {
		return "", false
	}
	b.view--
	return b.entries[b.view], true
}

// Down moves the view one entry forward. Moving past the newest entry
// returns the empty string, standing for a fresh line. It reports false
// when already on the fresh line.
func (b *Buffer) Down() (string, bool) {
	if b.view == len(b.entries) {
		return "", false
	}
	b.view++
	if b.view == len(b.entries) {
		return "", true
	}
	return b.entries[b.view], true
}

// Load replaces the buffer contents with lines read from path, keeping only
// the newest lines that fit the capacity. A missing file is not an error.
func (b *Buffer) Load(fs afero.Fs, path string) error {
	exists, err := afero.Exists(fs, path)
	if err != nil || !exists {
		return err
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return err
	}

	b.entries = b.entries[:0]
	for _, line := range strings.Split(string(data), "\n") {
		b.Add(line)
	}
	b.view = len(b.entries)
	return nil
}

// Save writes the buffer contents to path, one line per entry.
func (b *Buffer) Save(fs afero.Fs, path string) error {
	var sb strings.Builder
	for _, line := range b.entries {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return afero.WriteFile(fs, path, []byte(sb.String()), 0600)
}
