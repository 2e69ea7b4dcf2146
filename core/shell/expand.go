package shell

import (
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/mbragg-spear/hostsh/core/proc"
)

// Runner executes one expanded command line as a pipeline with the given
// endpoints. It is how the expansion engine reaches back into the executor
// for $(...) capture without a package cycle.
type Runner interface {
	Execute(line string, stdin io.Reader, stdout io.Writer) error
}

// Expander rewrites a raw command line by substituting $VAR references from
// the environment and $(...) regions with captured pipeline output. The two
// passes are independent and applied in fixed order, variables first.
type Expander struct {
	// Env supplies variable values; unset variables expand to "".
	Env *proc.Env
	// Run executes subshell pipelines. When nil, substitutions expand
	// to the empty string.
	Run Runner
	// Stdin is inherited by subshell pipelines.
	Stdin io.Reader
	// Scratch holds the temporary capture sinks. Defaults to the OS
	// filesystem.
	Scratch afero.Fs
}

// Expand applies variable then subshell expansion, returning a new string.
func (e *Expander) Expand(line string) string {
	return e.ExpandSubshells(e.ExpandVars(line))
}

func isNameByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

// ExpandVars replaces each $NAME with the environment value of NAME, where
// NAME is a maximal run of alphanumerics and underscores. A bare $ followed
// by a non-name character is kept as-is; $( is left for ExpandSubshells.
func (e *Expander) ExpandVars(line string) string {
	if !strings.Contains(line, "$") {
		return line
	}

	var out strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c != '$' || (i+1 < len(line) && line[i+1] == '(') {
			out.WriteByte(c)
			continue
		}

		j := i + 1
		for j < len(line) && isNameByte(line[j]) {
			j++
		}
		if j == i+1 {
			out.WriteByte(c)
			continue
		}

		out.WriteString(e.Env.Getenv(line[i+1 : j]))
		i = j - 1
	}
	return out.String()
}

// ExpandSubshells replaces each $(cmd) with the captured standard output of
// running cmd. Nested parentheses are consumed as part of the inner command
// so inner $(...) regions expand during the recursive pass, not here.
// Recursion terminates because the inner text is strictly shorter than the
// line containing it.
func (e *Expander) ExpandSubshells(line string) string {
	if !strings.Contains(line, "$(") {
		return line
	}

	var out strings.Builder
	for i := 0; i < len(line); i++ {
		if line[i] != '$' || i+1 >= len(line) || line[i+1] != '(' {
			out.WriteByte(line[i])
			continue
		}

		depth := 1
		j := i + 2
		for j < len(line) && depth > 0 {
			switch line[j] {
			case '(':
				depth++
			case ')':
				depth--
			}
			if depth > 0 {
				j++
			}
		}

		out.WriteString(e.capture(line[i+2 : j]))
		i = j // step past the closing paren, or to end when unterminated
	}
	return out.String()
}

// capture runs cmd as a pipeline with stdout redirected to a temporary
// sink and returns everything written, with exactly one trailing newline
// stripped. Sink creation failure yields the empty string rather than
// aborting the whole expansion.
func (e *Expander) capture(cmd string) string {
	if e.Run == nil {
		return ""
	}

	fs := e.Scratch
	if fs == nil {
		fs = afero.NewOsFs()
	}

	sink, err := afero.TempFile(fs, "", "hostsh-subst")
	if err != nil {
		return ""
	}
	defer func() {
		name := sink.Name()
		sink.Close()
		fs.Remove(name)
	}()

	// The inner command gets the full expansion treatment before running.
	if err := e.Run.Execute(e.Expand(cmd), e.Stdin, sink); err != nil {
		return ""
	}

	if _, err := sink.Seek(0, io.SeekStart); err != nil {
		return ""
	}
	data, err := afero.ReadAll(sink)
	if err != nil {
		return ""
	}

	return strings.TrimSuffix(string(data), "\n")
}
