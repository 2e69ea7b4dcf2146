// Package shell implements the parsing half of the interpreter: tokenizing
// command lines into words and operators, expanding variables and command
// substitutions, and recognizing assignment statements.
package shell

import (
	"errors"
	"fmt"
)

// ErrWordTooLong is reported when a single word exceeds the tokenizer's
// word length limit. The whole tokenization is aborted, the word is never
// silently truncated.
var ErrWordTooLong = errors.New("word exceeds maximum length")

// DefaultMaxWordLen bounds a single word unless the caller overrides it.
const DefaultMaxWordLen = 1024

// TokenKind distinguishes words from operators.
type TokenKind int

const (
	// Word is a command name or argument, quotes stripped, escapes applied.
	Word TokenKind = iota
	// Operator is one of | < > >> ( ).
	Operator
)

// Token is one element of a tokenized command line. Order is significant,
// it is the left-to-right command and argument order.
type Token struct {
	Kind TokenKind
	Text string
}

// Tokenizer splits command lines into tokens. The zero value uses
// DefaultMaxWordLen.
type Tokenizer struct {
	// MaxWordLen bounds each individual word.
	MaxWordLen int
}

// Tokenize splits line using the default word length limit.
func Tokenize(line string) ([]Token, error) {
	return (&Tokenizer{}).Tokenize(line)
}

func isOperatorByte(c byte) bool {
	switch c {
	case '|', '<', '>', '(', ')':
		return true
	}
	return false
}

// Tokenize scans line left to right, honoring single and double quotes,
// backslash escaping and $(...) nesting. Quote characters are stripped from
// word text; characters inside an open substitution are taken literally so
// nested $(...) regions stay opaque to the caller. Unterminated quotes or
// substitutions are not reported, the scan simply ends.
func (t *Tokenizer) Tokenize(line string) ([]Token, error) {
	maxWord := t.MaxWordLen
	if maxWord <= 0 {
		maxWord = DefaultMaxWordLen
	}

	var tokens []Token
	word := make([]byte, 0, 64)
	var singleQuote, doubleQuote, escaped bool
	subshellDepth := 0

	flushWord := func() {
		if len(word) > 0 {
			tokens = append(tokens, Token{Kind: Word, Text: string(word)})
			word = word[:0]
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]

		switch {
		case escaped:
			// The escaped character is literal: quotes, operators and
			// whitespace all lose their special meaning.
			word = append(word, c)
			escaped = false

		case !singleQuote && !doubleQuote && isOperatorByte(c):
			// "$(" opens a substitution region that the tokenizer treats
			// as opaque text, including any operators inside it.
			if c == '(' && len(word) > 0 && word[len(word)-1] == '$' {
				subshellDepth++
				word = append(word, c)
				continue
			}
			if c == ')' && subshellDepth > 0 {
				subshellDepth--
				word = append(word, c)
				continue
			}
			if subshellDepth > 0 {
				word = append(word, c)
				continue
			}

			flushWord()
			if c == '>' && i+1 < len(line) && line[i+1] == '>' {
				tokens = append(tokens, Token{Kind: Operator, Text: ">>"})
				i++
			} else {
				tokens = append(tokens, Token{Kind: Operator, Text: string(c)})
			}

		case c == ' ' || c == '\n':
			if singleQuote || doubleQuote || subshellDepth > 0 {
				word = append(word, c)
			} else {
				flushWord()
			}

		case c == '\'' && !doubleQuote:
			singleQuote = !singleQuote

		case c == '"' && !singleQuote:
			doubleQuote = !doubleQuote

		case c == '\\' && !singleQuote && !doubleQuote:
			escaped = true

		default:
			word = append(word, c)
		}

		if len(word) > maxWord {
			return nil, fmt.Errorf("%w (%d bytes)", ErrWordTooLong, maxWord)
		}
	}

	flushWord()
	return tokens, nil
}

// Words returns only the word texts of tokens, in order.
func Words(tokens []Token) []string {
	var out []string
	for _, tok := range tokens {
		if tok.Kind == Word {
			out = append(out, tok.Text)
		}
	}
	return out
}
