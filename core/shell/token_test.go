package shell

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(texts ...string) []Token {
	var out []Token
	for _, t := range texts {
		out = append(out, Token{Kind: Word, Text: t})
	}
	return out
}

func op(text string) Token {
	return Token{Kind: Operator, Text: text}
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		line string
		want []Token
	}{
		{
			name: "plain words",
			line: "echo hello world",
			want: words("echo", "hello", "world"),
		},
		{
			name: "double quotes group",
			line: `echo "a b" c`,
			want: words("echo", "a b", "c"),
		},
		{
			name: "single quotes group",
			line: "echo 'a b'",
			want: words("echo", "a b"),
		},
		{
			name: "pipe operator",
			line: "a | b",
			want: []Token{{Word, "a"}, op("|"), {Word, "b"}},
		},
		{
			name: "pipe without spaces",
			line: "a|b",
			want: []Token{{Word, "a"}, op("|"), {Word, "b"}},
		},
		{
			name: "append is one operator",
			line: "echo hi >> out",
			want: []Token{{Word, "echo"}, {Word, "hi"}, op(">>"), {Word, "out"}},
		},
		{
			name: "redirects",
			line: "sort < in > out",
			want: []Token{{Word, "sort"}, op("<"), {Word, "in"}, op(">"), {Word, "out"}},
		},
		{
			name: "escaped pipe is literal",
			line: `echo \| x`,
			want: words("echo", "|", "x"),
		},
		{
			name: "escaped quote is literal",
			line: `echo \"hi\"`,
			want: words("echo", `"hi"`),
		},
		{
			name: "escaped space joins words",
			line: `echo a\ b`,
			want: words("echo", "a b"),
		},
		{
			name: "subshell span is opaque",
			line: "echo $(echo hi)",
			want: words("echo", "$(echo hi)"),
		},
		{
			name: "subshell swallows operators",
			line: "echo $(a | b > c)",
			want: words("echo", "$(a | b > c)"),
		},
		{
			name: "nested subshell",
			line: "echo $(echo $(echo hi))",
			want: words("echo", "$(echo $(echo hi))"),
		},
		{
			name: "quoted operator is literal",
			line: `echo "a|b"`,
			want: words("echo", "a|b"),
		},
		{
			name: "empty line",
			line: "",
			want: nil,
		},
		{
			name: "only spaces",
			line: "   ",
			want: nil,
		},
		{
			name: "bare parens split",
			line: "a(b)c",
			want: []Token{{Word, "a"}, op("("), {Word, "b"}, op(")"), {Word, "c"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Tokenize(tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTokenizeUnterminatedQuoteIsPermissive(t *testing.T) {
	got, err := Tokenize(`echo "unterminated`)
	require.NoError(t, err)
	assert.Equal(t, words("echo", "unterminated"), got)
}

func TestTokenizeWordTooLong(t *testing.T) {
	tok := &Tokenizer{MaxWordLen: 8}
	_, err := tok.Tokenize("echo " + strings.Repeat("x", 9))
	assert.True(t, errors.Is(err, ErrWordTooLong))

	// At most the limit is fine.
	_, err = tok.Tokenize("ok " + strings.Repeat("x", 8))
	assert.NoError(t, err)
}

func TestWords(t *testing.T) {
	toks, err := Tokenize("a | b > c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, Words(toks))
}
