package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"svw.info/untangle/internal/generator"
)

var (
	genLevel int
	genSeed  int64
	genJSON  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a level and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed := genSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		g := generator.NewRingGenerator()
		l, stats, err := g.Generate(cmd.Context(), seed, genLevel)
		if err != nil {
			return err
		}

		if genJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(l)
		}

		bold := color.New(color.Bold)
		bold.Printf("level %d (seed %d)\n", l.Index, l.Seed)
		color.Cyan("  pins:    %d", len(l.Points))
		color.Cyan("  ropes:   %d (%d ring, %d chords)", len(l.Edges), len(l.Points), len(l.Edges)-len(l.Points))
		color.Cyan("  shuffle: %d swaps", generator.ScrambleCount(l.Index))
		if stats.Rejected > 0 {
			color.Yellow("  rejected %d chord candidates", stats.Rejected)
		}
		color.Green("  generated in %v", stats.Duration.Round(time.Microsecond))
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVar(&genLevel, "level", 1, "difficulty index (>= 1)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (0 = time-based)")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "emit the full level as JSON")
	rootCmd.AddCommand(generateCmd)
}
