package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mbragg-spear/hostsh/builtins"
	"github.com/mbragg-spear/hostsh/core"
	"github.com/mbragg-spear/hostsh/core/config"
	"github.com/mbragg-spear/hostsh/core/proc"
	"github.com/mbragg-spear/hostsh/core/term"
)

// runCmd drives an interactive session on the local terminal, useful
// for trying out the shell without embedding it or starting a server.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive session on the local terminal.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			// The shell is usable without a config directory.
			cfg = config.Default()
		}

		registry := proc.NewRegistry()
		builtins.Install(registry)

		session := core.NewSession(cfg, term.Stdio(), registry, osFs)
		return session.Run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
