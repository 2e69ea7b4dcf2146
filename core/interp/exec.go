// Package interp implements the pipeline executor: splitting a command line
// into stages, wiring their standard streams together and dispatching each
// stage to an embedded command or a child process.
package interp

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mbragg-spear/hostsh/core/proc"
	"github.com/mbragg-spear/hostsh/core/shell"
)

// DefaultMaxStages bounds the number of stages in one pipeline.
const DefaultMaxStages = 16

// ErrTooManyStages is reported when a line contains more pipeline stages
// than the executor allows. The pipeline is not partially run.
var ErrTooManyStages = errors.New("too many pipeline stages")

// Executor runs expanded command lines as pipelines.
//
// Embedded commands run synchronously in the calling goroutine while
// external commands run as child processes. Two embedded commands piped
// together therefore never run concurrently: the first drains fully into
// the pipe before the second starts, and a handoff larger than the kernel
// pipe buffer will block. This is a known limitation of the inline
// dispatch model, not a bug to be masked.
type Executor struct {
	// Registry resolves command names. Names not present fall back to a
	// PATH search for an external executable.
	Registry *proc.Registry
	// Env is handed to embedded commands and inherited by children.
	Env *proc.Env
	// Stderr receives diagnostics and the stderr of every stage.
	// Defaults to os.Stderr.
	Stderr io.Writer

	// MaxStages bounds stages per pipeline, DefaultMaxStages when zero.
	MaxStages int
	// MaxWordLen is forwarded to the tokenizer, its default when zero.
	MaxWordLen int
}

func (e *Executor) stderr() io.Writer {
	if e.Stderr != nil {
		return e.Stderr
	}
	return os.Stderr
}

func (e *Executor) maxStages() int {
	if e.MaxStages > 0 {
		return e.MaxStages
	}
	return DefaultMaxStages
}

// redirs holds a stage's file redirections parsed from its operator tokens.
type redirs struct {
	in        string
	out       string
	appendOut bool
}

// splitStage separates a stage's tokens into its argv and redirections.
// The < > and >> operators consume the following word as their target;
// parentheses outside a substitution pass through as literal arguments.
func splitStage(tokens []shell.Token) ([]string, redirs, error) {
	var argv []string
	var rd redirs

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind == shell.Word || tok.Text == "(" || tok.Text == ")" {
			argv = append(argv, tok.Text)
			continue
		}

		switch tok.Text {
		case "<", ">", ">>":
			if i+1 >= len(tokens) || tokens[i+1].Kind != shell.Word {
				return nil, rd, fmt.Errorf("missing target after %q", tok.Text)
			}
			target := tokens[i+1].Text
			switch tok.Text {
			case "<":
				rd.in = target
			case ">":
				rd.out = target
				rd.appendOut = false
			case ">>":
				rd.out = target
				rd.appendOut = true
			}
			i++
		default:
			// "|" never reaches here, stages are split on it upstream.
			argv = append(argv, tok.Text)
		}
	}

	return argv, rd, nil
}

// Execute runs line as a pipeline between the given endpoints. The line is
// split on the literal | byte before tokenization. Pipe creation and spawn
// failures abort the whole pipeline; an unresolvable command name is a
// per-stage failure that is reported without stopping sibling stages.
// All spawned children are waited on before Execute returns.
func (e *Executor) Execute(line string, stdin io.Reader, stdout io.Writer) error {
	stages := strings.Split(line, "|")
	if len(stages) > e.maxStages() {
		return fmt.Errorf("%w (max %d)", ErrTooManyStages, e.maxStages())
	}

	tokenizer := &shell.Tokenizer{MaxWordLen: e.MaxWordLen}

	var children []*exec.Cmd
	// Read end of the previous stage's pipe, owned by this loop until it
	// is handed to a stage or closed.
	var prevRead *os.File

	// Wait on every child; exit statuses are deliberately discarded to
	// match the shell's permissive pipeline semantics.
	waitAll := func() {
		for _, child := range children {
			_ = child.Wait()
		}
	}
	fail := func(err error) error {
		if prevRead != nil {
			prevRead.Close()
		}
		waitAll()
		return err
	}

	for i, stageText := range stages {
		tokens, err := tokenizer.Tokenize(stageText)
		if err != nil {
			return fail(err)
		}
		argv, rd, err := splitStage(tokens)
		if err != nil {
			fmt.Fprintf(e.stderr(), "hostsh: %v\n", err)
			argv = nil // treat as an empty stage
		}
		if len(argv) == 0 {
			continue
		}

		stageIn := stdin
		inFile := prevRead
		if prevRead != nil {
			stageIn = prevRead
			prevRead = nil
		}

		var pipeRead, pipeWrite *os.File
		stageOut := stdout
		if i < len(stages)-1 {
			pipeRead, pipeWrite, err = os.Pipe()
			if err != nil {
				if inFile != nil {
					inFile.Close()
				}
				return fail(fmt.Errorf("pipe: %w", err))
			}
			stageOut = pipeWrite
		}

		// Stage-scoped endpoints that must be released before moving on.
		var owned []io.Closer
		if inFile != nil {
			owned = append(owned, inFile)
		}
		if pipeWrite != nil {
			owned = append(owned, pipeWrite)
		}
		release := func() {
			for _, c := range owned {
				c.Close()
			}
		}

		if rd.in != "" {
			fd, err := os.Open(rd.in)
			if err != nil {
				fmt.Fprintf(e.stderr(), "hostsh: %v\n", err)
				release()
				prevRead = pipeRead
				continue
			}
			owned = append(owned, fd)
			stageIn = fd
		}
		if rd.out != "" {
			flags := os.O_CREATE | os.O_WRONLY
			if rd.appendOut {
				flags |= os.O_APPEND
			} else {
				flags |= os.O_TRUNC
			}
			fd, err := os.OpenFile(rd.out, flags, 0644)
			if err != nil {
				fmt.Fprintf(e.stderr(), "hostsh: %v\n", err)
				release()
				prevRead = pipeRead
				continue
			}
			owned = append(owned, fd)
			stageOut = fd
		}

		name := argv[0]
		entry, registered := e.lookup(name)

		if registered && entry.Kind == proc.KindEmbedded {
			e.runEmbedded(entry, argv, stageIn, stageOut)
			release()
			prevRead = pipeRead
			continue
		}

		path := entry.Path
		if !registered || path == "" {
			path, err = exec.LookPath(name)
			if err != nil {
				fmt.Fprintf(e.stderr(), "hostsh: %s: command not found\n", name)
				release()
				prevRead = pipeRead
				continue
			}
		}

		child := exec.Command(path, argv[1:]...)
		child.Stdin = stageIn
		child.Stdout = stageOut
		child.Stderr = e.stderr()
		if e.Env != nil {
			child.Env = e.Env.Environ()
		}

		if err := child.Start(); err != nil {
			release()
			if pipeRead != nil {
				pipeRead.Close()
			}
			return fail(fmt.Errorf("spawn %s: %w", name, err))
		}
		children = append(children, child)

		// Hand-off complete: the parent must drop its pipe ends or the
		// pipeline never sees EOF.
		release()
		prevRead = pipeRead
	}

	if prevRead != nil {
		prevRead.Close()
	}
	waitAll()
	return nil
}

func (e *Executor) lookup(name string) (proc.Entry, bool) {
	if e.Registry == nil {
		return proc.Entry{}, false
	}
	return e.Registry.Lookup(name)
}

// runEmbedded invokes an embedded command inline with the stage's endpoints
// bound for the duration of the call. A panicking command is reported as a
// failed stage rather than tearing down the shell.
func (e *Executor) runEmbedded(entry proc.Entry, argv []string, stdin io.Reader, stdout io.Writer) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(e.stderr(), "hostsh: %s: %v\n", argv[0], r)
		}
	}()

	p := &proc.Proc{
		Args:   argv,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: e.stderr(),
		Env:    e.Env,
	}

	// Embedded commands report their own failures on stderr; the exit
	// status is recorded nowhere, like a child's wait status.
	_ = entry.Main(p)
}
