package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/storage"
	"github.com/SeamusWaldron/twisty/pkg/alg"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export algs and library entries",
	Long:  `Export algs and library entries in various formats.`,
}

var exportMovesCmd = &cobra.Command{
	Use:   "moves <definition> <alg>",
	Short: "Export the flat move list of an alg",
	Long: `Expand an alg into the moves it stands for and export them in text,
JSON or YAML format. Every move is checked against the puzzle.

Examples:
  twisty export moves 3x3x3 "[R, U]"
  twisty export moves 3x3x3 @sune --format json
  twisty export moves 3x3x3 tperm.yaml --format txt -o tperm.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runExportMoves,
}

var exportLibraryCmd = &cobra.Command{
	Use:   "library <name>",
	Short: "Export a stored definition with its algs",
	Long: `Export a definition from the library together with every alg stored for it.

Examples:
  twisty export library my-cube --format yaml -o my-cube.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runExportLibrary,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.AddCommand(exportMovesCmd, exportLibraryCmd)
	exportCmd.PersistentFlags().StringVar(&exportFormat, "format", "", "Export format (txt, json, yaml)")
	exportCmd.PersistentFlags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

// exportedMove is one entry of an exported move list.
type exportedMove struct {
	MoveIndex int    `json:"move_index" yaml:"move_index"`
	Family    string `json:"family" yaml:"family"`
	Amount    int    `json:"amount" yaml:"amount"`
	Notation  string `json:"notation" yaml:"notation"`
}

// exportedLibrary is a definition bundled with its named algs.
type exportedLibrary struct {
	Definition *twisty.Definition `json:"definition" yaml:"definition"`
	Algs       map[string]alg.Alg `json:"algs,omitempty" yaml:"algs,omitempty"`
}

func runExportMoves(cmd *cobra.Command, args []string) error {
	p, err := loadPuzzle(args[0])
	if err != nil {
		return err
	}
	a, err := loadAlg(p.Name(), args[1])
	if err != nil {
		return err
	}

	moves := expandAlg(a)
	if len(moves) == 0 {
		return fmt.Errorf("alg %q has no moves", a.String())
	}
	for _, m := range moves {
		if !p.HasMove(m) {
			return &twisty.MoveError{Move: m, Puzzle: p.Name()}
		}
	}

	format := resolveExportFormat("txt")
	var output []byte
	switch format {
	case "txt":
		output = []byte(alg.FormatMoves(moves) + "\n")
	default:
		list := make([]exportedMove, len(moves))
		for i, m := range moves {
			list[i] = exportedMove{
				MoveIndex: i,
				Family:    m.Quantum.String(),
				Amount:    m.Amount,
				Notation:  m.Notation(),
			}
		}
		output, err = encodeData(format, list)
		if err != nil {
			return err
		}
	}
	return writeExport(output)
}

func runExportLibrary(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := storage.NewDefinitionRepository(db).Get(args[0])
	if err != nil {
		return err
	}
	algs, err := storage.NewAlgRepository(db).List(rec.DefinitionID)
	if err != nil {
		return err
	}

	bundle := exportedLibrary{Definition: rec.Definition}
	if len(algs) > 0 {
		bundle.Algs = make(map[string]alg.Alg, len(algs))
		for _, a := range algs {
			bundle.Algs[a.Name] = a.Alg
		}
	}

	format := resolveExportFormat("json")
	if format == "txt" {
		return fmt.Errorf("library export supports json or yaml")
	}
	output, err := encodeData(format, bundle)
	if err != nil {
		return err
	}
	return writeExport(output)
}

// resolveExportFormat picks the --format flag, then the output file
// extension, then fallback.
func resolveExportFormat(fallback string) string {
	if exportFormat != "" {
		return strings.ToLower(exportFormat)
	}
	switch ext := strings.ToLower(filepath.Ext(exportOutput)); ext {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".txt":
		return "txt"
	}
	return fallback
}

func writeExport(output []byte) error {
	if exportOutput == "" {
		_, err := os.Stdout.Write(output)
		return err
	}
	if err := os.WriteFile(exportOutput, output, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	fmt.Printf("Exported to %s\n", exportOutput)
	return nil
}
