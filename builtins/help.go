package builtins

import (
	"fmt"

	"github.com/mbragg-spear/hostsh/core/proc"
)

// Help returns a command listing every registered command name.
func Help(registry *proc.Registry) proc.CommandFunc {
	return func(p *proc.Proc) int {
		cmd := &SimpleCommand{
			Use:   "help",
			Short: "List the available commands.",
		}

		return cmd.Run(p, func() int {
			fmt.Fprintln(p.Stdout, "These commands are defined by the shell host."+
				" Anything else resolves through PATH.")
			fmt.Fprintln(p.Stdout)
			for _, name := range registry.Names() {
				ColorBoldGreen.Fprintf(p.Stdout, "  %s\n", name)
			}
			return 0
		})
	}
}
