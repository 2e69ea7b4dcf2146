package builtins

import (
	"fmt"
	"strings"

	"github.com/mbragg-spear/hostsh/core/proc"
)

// Export sets session variables, mirroring the NAME=VALUE assignment
// syntax. With no arguments it behaves like env.
func Export(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "export [NAME=VALUE] ...",
		Short: "Set variables in the session environment.",
	}

	return cmd.Run(p, func() int {
		args := cmd.Flags().Args()
		if len(args) == 0 {
			return Env(&proc.Proc{
				Args:   []string{"env"},
				Stdin:  p.Stdin,
				Stdout: p.Stdout,
				Stderr: p.Stderr,
				Env:    p.Env,
			})
		}

		status := 0
		for _, arg := range args {
			name, value, ok := splitAssign(arg)
			if !ok {
				fmt.Fprintf(p.Stderr, "export: %q: not a valid identifier\n", arg)
				status = 1
				continue
			}
			p.Env.Setenv(name, value)
		}
		return status
	})
}

func splitAssign(arg string) (name, value string, ok bool) {
	eq := strings.IndexByte(arg, '=')
	if eq <= 0 {
		return "", "", false
	}
	return arg[:eq], arg[eq+1:], true
}

func init() {
	addBuiltin("export", Export)
}
