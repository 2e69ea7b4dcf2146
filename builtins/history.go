package builtins

import (
	"fmt"

	"github.com/mbragg-spear/hostsh/core/history"
	"github.com/mbragg-spear/hostsh/core/proc"
)

// History returns a command printing the given recall buffer, oldest
// first with 1-based indexes. It is session-bound so sessions install
// it themselves rather than through Install.
func History(buf *history.Buffer) proc.CommandFunc {
	return func(p *proc.Proc) int {
		cmd := &SimpleCommand{
			Use:   "history",
			Short: "Print the command history.",
		}

		return cmd.Run(p, func() int {
			for i, line := range buf.Entries() {
				fmt.Fprintf(p.Stdout, "%5d  %s\n", i+1, line)
			}
			return 0
		})
	}
}
