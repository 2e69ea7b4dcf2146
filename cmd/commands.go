package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbragg-spear/hostsh/builtins"
	"github.com/mbragg-spear/hostsh/core/proc"
)

// commandsCmd lists the built-in commands shipped with the shell.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the built-in shell commands.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := proc.NewRegistry()
		builtins.Install(registry)

		for _, name := range registry.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
