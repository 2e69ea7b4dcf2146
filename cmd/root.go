package cmd

import (
	"errors"
	"io/fs"
	"log"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mbragg-spear/hostsh/core/config"
)

var cfgPath string

// osFs backs every command; tests swap in memory file systems at the
// core package level instead.
var osFs = afero.NewOsFs()

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(osFs, cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return cfg, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hostsh",
	Short: "Embeddable interactive shell",
	Long:  `An interactive command shell designed for embedding in host programs.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
