package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "untangle",
	Short: "Untangle-the-knot puzzle engine and web host",
	Long: `untangle generates solvable rope puzzles and evaluates tangles as
pins move. The serve command hosts the playable web frontend; generate
emits levels for inspection or external hosts.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".untangle.yml", "path to config file")
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
