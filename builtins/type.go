package builtins

import (
	"fmt"
	"os/exec"

	"github.com/mbragg-spear/hostsh/core/proc"
)

// Type returns a command reporting how each argument would resolve:
// an embedded command, a registered executable, or a PATH lookup.
func Type(registry *proc.Registry) proc.CommandFunc {
	return func(p *proc.Proc) int {
		cmd := &SimpleCommand{
			Use:   "type NAME ...",
			Short: "Describe how a command name resolves.",
		}

		return cmd.Run(p, func() int {
			status := 0
			for _, name := range cmd.Flags().Args() {
				entry, ok := registry.Lookup(name)
				switch {
				case ok && entry.Kind == proc.KindEmbedded:
					fmt.Fprintf(p.Stdout, "%s is a shell builtin\n", name)
				case ok:
					fmt.Fprintf(p.Stdout, "%s is %s\n", name, entry.Path)
				default:
					if path, err := exec.LookPath(name); err == nil {
						fmt.Fprintf(p.Stdout, "%s is %s\n", name, path)
					} else {
						fmt.Fprintf(p.Stderr, "type: %s: not found\n", name)
						status = 1
					}
				}
			}
			return status
		})
	}
}
