// Package core wires the editor, expansion engine and interpreter into
// interactive shell sessions.
package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"strings"

	"github.com/spf13/afero"

	"github.com/mbragg-spear/hostsh/builtins"
	"github.com/mbragg-spear/hostsh/core/config"
	"github.com/mbragg-spear/hostsh/core/editor"
	"github.com/mbragg-spear/hostsh/core/history"
	"github.com/mbragg-spear/hostsh/core/interp"
	"github.com/mbragg-spear/hostsh/core/proc"
	"github.com/mbragg-spear/hostsh/core/shell"
	"github.com/mbragg-spear/hostsh/core/term"
)

// Session is one interactive shell attached to a terminal. Multiple
// sessions may share a Registry; everything else is per-session.
type Session struct {
	cfg      *config.Config
	terminal term.Terminal
	env      *proc.Env
	history  *history.Buffer
	exec     *interp.Executor
	expand   *shell.Expander
	fs       afero.Fs

	// User and Host override the prompt identity; both default to the
	// values of the hosting process.
	User string
	Host string
}

// NewSession builds a session over the given terminal. The environment
// is seeded from the hosting process so expansion sees real variables.
// The registry is cloned and extended with the session-bound builtins,
// so host registrations are shared but never mutated.
func NewSession(cfg *config.Config, t term.Terminal, registry *proc.Registry, fs afero.Fs) *Session {
	env := proc.NewEnvFrom(os.Environ())
	hist := history.NewBuffer(cfg.HistorySize)

	registry = registry.Clone()
	registry.Register("history", builtins.History(hist))
	registry.Register("type", builtins.Type(registry))
	registry.Register("help", builtins.Help(registry))

	exec := &interp.Executor{
		Registry:   registry,
		Env:        env,
		Stderr:     &crlfWriter{w: t},
		MaxStages:  cfg.MaxPipelineStages,
		MaxWordLen: cfg.MaxWordLength,
	}

	s := &Session{
		cfg:      cfg,
		terminal: t,
		env:      env,
		history:  hist,
		exec:     exec,
		fs:       fs,
	}
	s.expand = &shell.Expander{
		Env: env,
		Run: exec,
		// Substitution pipelines read the same exhausted stdin as
		// top-level pipelines; the editor owns the terminal input.
		Stdin:   nopReader{},
		Scratch: fs,
	}

	if u, err := user.Current(); err == nil {
		s.User = u.Username
	}
	if h, err := os.Hostname(); err == nil {
		s.Host = h
	}

	return s
}

// Env exposes the session's variable table, mainly for builtins and
// tests.
func (s *Session) Env() *proc.Env {
	return s.env
}

// History exposes the session's recall buffer.
func (s *Session) History() *history.Buffer {
	return s.history
}

// Run drives the read, expand, execute loop until the user exits or
// the terminal reaches end of input. A line delivered together with
// end of input is still processed before Run returns.
func (s *Session) Run() error {
	if path := s.cfg.HistoryPath(); path != "" {
		if err := s.history.Load(s.fs, path); err != nil {
			fmt.Fprintf(s.terminal, "hostsh: couldn't load history: %v\r\n", err)
		}
		defer func() {
			if err := s.history.Save(s.fs, path); err != nil {
				fmt.Fprintf(s.terminal, "hostsh: couldn't save history: %v\r\n", err)
			}
		}()
	}

	ed := editor.New(s.terminal, s.history)

	for {
		line, readErr := ed.ReadLine(s.Prompt())
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}

		quit := s.dispatch(line)

		if quit || readErr != nil {
			return nil
		}
	}
}

// dispatch runs a single finished line and reports whether the session
// should end.
func (s *Session) dispatch(line string) bool {
	// The exit check looks at what the user actually typed; a line that
	// merely expands to "exit" runs like any other command.
	if strings.TrimSpace(line) == "exit" {
		return true
	}
	if strings.TrimSpace(line) == "" {
		return false
	}

	expanded := s.expand.Expand(line)
	if strings.TrimSpace(expanded) == "" {
		return false
	}

	if name, value, ok := shell.Assignment(expanded); ok {
		s.env.Setenv(name, value)
		return false
	}

	crlf := &crlfWriter{w: s.terminal}
	if err := s.exec.Execute(expanded, nopReader{}, crlf); err != nil {
		fmt.Fprintf(s.terminal, "hostsh: %v\r\n", err)
	}
	return false
}

// Prompt renders the configured prompt template. The \u, \h, \w and
// \$ escapes expand to the user, host, working directory and prompt
// terminator; everything else passes through.
func (s *Session) Prompt() string {
	tpl := s.cfg.Prompt
	if tpl == "" {
		tpl = "shell> "
	}

	var sb strings.Builder
	for i := 0; i < len(tpl); i++ {
		c := tpl[i]
		if c != '\\' || i+1 >= len(tpl) {
			sb.WriteByte(c)
			continue
		}

		i++
		switch tpl[i] {
		case 'u':
			sb.WriteString(s.User)
		case 'h':
			sb.WriteString(s.Host)
		case 'w':
			if wd, err := os.Getwd(); err == nil {
				sb.WriteString(wd)
			}
		case '$':
			if s.User == "root" {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('$')
			}
		default:
			sb.WriteByte('\\')
			sb.WriteByte(tpl[i])
		}
	}
	return sb.String()
}

// crlfWriter rewrites bare newlines to CRLF so command output renders
// correctly on a terminal left in raw mode by the remote peer.
type crlfWriter struct {
	w io.Writer
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		idx := bytes.IndexByte(p, '\n')
		if idx < 0 {
			n, err := c.w.Write(p)
			return written + n, err
		}

		if idx > 0 {
			n, err := c.w.Write(p[:idx])
			written += n
			if err != nil {
				return written, err
			}
		}
		if _, err := c.w.Write([]byte("\r\n")); err != nil {
			return written, err
		}
		written++
		p = p[idx+1:]
	}
	return written, nil
}

// nopReader is the stdin handed to pipelines with no redirection; it
// reports end of input immediately so children never block on the
// session terminal.
type nopReader struct{}

func (nopReader) Read([]byte) (int, error) {
	return 0, io.EOF
}
