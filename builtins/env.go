package builtins

import (
	"fmt"

	"github.com/mbragg-spear/hostsh/core/proc"
)

// Env implements a POSIX style env command over the session variables.
//
// https://pubs.opengroup.org/onlinepubs/9699919799.2018edition/utilities/env.html
func Env(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "env",
		Short: "Print the session environment.",
	}

	return cmd.Run(p, func() int {
		if p.Env == nil {
			return 0
		}
		for _, envDef := range p.Env.Environ() {
			fmt.Fprintln(p.Stdout, envDef)
		}

		return 0
	})
}

func init() {
	addBuiltin("env", Env)
}
