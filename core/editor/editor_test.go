package editor

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbragg-spear/hostsh/core/history"
	"github.com/mbragg-spear/hostsh/core/term"
)

const (
	up    = "\x1b[A"
	down  = "\x1b[B"
	right = "\x1b[C"
	left  = "\x1b[D"
)

func readLine(t *testing.T, keys string, hist *history.Buffer) (string, error, *term.Script) {
	t.Helper()
	script := term.NewScript(keys)
	ed := New(script, hist)
	line, err := ed.ReadLine("$ ")
	return line, err, script
}

func TestReadLineSimple(t *testing.T) {
	line, err, script := readLine(t, "echo hi\r", nil)
	require.NoError(t, err)
	assert.Equal(t, "echo hi", line)
	assert.Contains(t, script.Out.String(), "$ echo hi")
}

func TestReadLineEOFReturnsAccumulated(t *testing.T) {
	line, err, _ := readLine(t, "partial", nil)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "partial", line)
}

func TestRawModeIsAlwaysRestored(t *testing.T) {
	for _, keys := range []string{"done\r", "no newline", "", "\x1b["} {
		_, _, script := readLine(t, keys, nil)
		assert.Equal(t, 1, script.RawCalls, "keys=%q", keys)
		assert.Equal(t, 1, script.RestoreCalls, "keys=%q", keys)
		assert.Equal(t, 0, script.RawDepth, "keys=%q", keys)
	}
}

func TestBackspace(t *testing.T) {
	line, err, _ := readLine(t, "abc\x7f\r", nil)
	require.NoError(t, err)
	assert.Equal(t, "ab", line)
}

func TestBackspaceAtStartIsNoop(t *testing.T) {
	line, err, _ := readLine(t, "\x7fa\r", nil)
	require.NoError(t, err)
	assert.Equal(t, "a", line)
}

func TestMidLineInsert(t *testing.T) {
	// Type "ac", step left over the c, insert b.
	line, err, _ := readLine(t, "ac"+left+"b\r", nil)
	require.NoError(t, err)
	assert.Equal(t, "abc", line)
}

func TestMidLineBackspace(t *testing.T) {
	// Delete the b out of "abc".
	line, err, _ := readLine(t, "abc"+left+"\x7f\r", nil)
	require.NoError(t, err)
	assert.Equal(t, "ac", line)
}

func TestArrowBoundsAreNoops(t *testing.T) {
	line, err, _ := readLine(t, right+"a"+right+left+left+left+"b\r", nil)
	require.NoError(t, err)
	assert.Equal(t, "ba", line)
}

func TestHistoryRecall(t *testing.T) {
	hist := history.NewBuffer(10)
	hist.Add("first")
	hist.Add("second")

	line, err, _ := readLine(t, up+up+"\r", hist)
	require.NoError(t, err)
	assert.Equal(t, "first", line)
}

func TestHistoryRecallDownToFreshLine(t *testing.T) {
	hist := history.NewBuffer(10)
	hist.Add("first")

	// Up to the entry, down past it again: back to an empty line.
	line, err, _ := readLine(t, up+down+"typed\r", hist)
	require.NoError(t, err)
	assert.Equal(t, "typed", line)
}

func TestHistoryUpPastOldestStays(t *testing.T) {
	hist := history.NewBuffer(10)
	hist.Add("only")

	line, err, _ := readLine(t, up+up+up+"\r", hist)
	require.NoError(t, err)
	assert.Equal(t, "only", line)
}

func TestHistoryRecallRedraw(t *testing.T) {
	hist := history.NewBuffer(10)
	hist.Add("recalled")

	_, err, script := readLine(t, up+"\r", hist)
	require.NoError(t, err)
	// Full redraw: carriage return, clear line, prompt, text.
	assert.Contains(t, script.Out.String(), "\r\x1b[K$ recalled")
}

func TestFinishedLineIsRecorded(t *testing.T) {
	hist := history.NewBuffer(10)

	_, err, _ := readLine(t, "remember me\r", hist)
	require.NoError(t, err)
	assert.Equal(t, []string{"remember me"}, hist.Entries())
}

func TestEmptyLineIsNotRecorded(t *testing.T) {
	hist := history.NewBuffer(10)

	_, err, _ := readLine(t, "\r", hist)
	require.NoError(t, err)
	assert.Equal(t, 0, hist.Len())
}

func TestLineContinuation(t *testing.T) {
	line, err, _ := readLine(t, "ab\\\rcd\r", nil)
	require.NoError(t, err)
	assert.Equal(t, "abcd", line)
}

func TestEscapedBackslashDoesNotContinue(t *testing.T) {
	line, err, _ := readLine(t, "ab\\\\\r", nil)
	require.NoError(t, err)
	assert.Equal(t, "ab\\\\", line)
}
