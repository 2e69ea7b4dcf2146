package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/mbragg-spear/hostsh/core/config"
)

// initCmd writes a default configuration and host key.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the shell configuration in the config directory.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := log.New(cmd.ErrOrStderr(), "", 0)

		return config.Initialize(osFs, cfgPath, logger)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
