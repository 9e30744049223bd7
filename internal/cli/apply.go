package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply <definition> <alg>",
	Short: "Apply an alg to the default pattern",
	Long: `Apply an alg to the puzzle's default pattern and print the resulting
pattern data.

The alg is a JSON/YAML file holding an alg tree, @name for an alg stored in the
library, or an inline move sequence.

Usage:
  twisty apply 3x3x3 "R U R' U'"
  twisty apply 3x3x3 sune.json --format yaml
  twisty apply 3x3x3 @sune --table
  twisty apply 3x3x3 "R U" --transformation`,
	Args: cobra.ExactArgs(2),
	RunE: runApply,
}

var (
	applyFormat         string
	applyTable          bool
	applyTransformation bool
)

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringVarP(&applyFormat, "format", "f", "json", "Output format (json or yaml)")
	applyCmd.Flags().BoolVar(&applyTable, "table", false, "Render the pattern as a table instead of data")
	applyCmd.Flags().BoolVar(&applyTransformation, "transformation", false, "Print the net transformation instead of the pattern")
}

func runApply(cmd *cobra.Command, args []string) error {
	p, err := loadPuzzle(args[0])
	if err != nil {
		return err
	}
	a, err := loadAlg(p.Name(), args[1])
	if err != nil {
		return err
	}

	t, err := p.TransformationFromAlg(a)
	if err != nil {
		return err
	}
	logger.Debug("evaluated alg",
		slog.String("alg", a.String()),
		slog.Int("order", t.Order()),
	)

	if applyTransformation {
		return writeData(applyFormat, t.ToData())
	}

	pattern := p.DefaultPattern().ApplyTransformation(t)
	if applyTable {
		fmt.Print(renderPattern(pattern))
		if pattern.Equal(p.DefaultPattern()) {
			fmt.Println(labelStyle.Render("Default pattern reached"))
		}
		return nil
	}
	return writeData(applyFormat, pattern.ToData())
}
