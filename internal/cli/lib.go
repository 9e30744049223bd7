package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

var libCmd = &cobra.Command{
	Use:   "lib",
	Short: "Manage the puzzle library",
	Long: `Store puzzle definitions, named algs and pattern snapshots in the local
SQLite library (see --db).`,
}

var libAddCmd = &cobra.Command{
	Use:   "add <definition>",
	Short: "Validate a definition and store it in the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibAdd,
}

var libListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored definitions",
	Args:  cobra.NoArgs,
	RunE:  runLibList,
}

var libShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a stored definition",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibShow,
}

var libSaveAlgCmd = &cobra.Command{
	Use:   "save-alg <definition> <name> <alg>",
	Short: "Store a named alg for a definition",
	Args:  cobra.ExactArgs(3),
	RunE:  runLibSaveAlg,
}

var libAlgsCmd = &cobra.Command{
	Use:   "algs <definition>",
	Short: "List the algs stored for a definition",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibAlgs,
}

var libSavePatternCmd = &cobra.Command{
	Use:   "save-pattern <definition> <name> <alg>",
	Short: "Apply an alg to the default pattern and store the result",
	Args:  cobra.ExactArgs(3),
	RunE:  runLibSavePattern,
}

var libPatternsCmd = &cobra.Command{
	Use:   "patterns <definition>",
	Short: "List the pattern snapshots stored for a definition",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibPatterns,
}

var (
	libAddName  string
	libFormat   string
	libMatchAlg string
)

func init() {
	rootCmd.AddCommand(libCmd)
	libCmd.AddCommand(libAddCmd, libListCmd, libShowCmd, libSaveAlgCmd, libAlgsCmd, libSavePatternCmd, libPatternsCmd)

	libAddCmd.Flags().StringVarP(&libAddName, "name", "n", "", "Store under this name instead of the definition's name")
	libShowCmd.Flags().StringVarP(&libFormat, "format", "f", "json", "Output format (json or yaml)")
	libPatternsCmd.Flags().StringVar(&libMatchAlg, "match", "", "Only list snapshots equal to the result of this alg")
}

func runLibAdd(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(args[0])
	if err != nil {
		return err
	}
	if libAddName != "" {
		def.Name = libAddName
	}
	if _, err := twisty.New(def, twisty.WithLogger(logger)); err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := storage.NewDefinitionRepository(db).Put(def)
	if err != nil {
		return err
	}
	logger.Info("definition stored", slog.String("name", def.Name), slog.String("id", id))

	fmt.Printf("Stored %s %s\n", labelStyle.Render(def.Name), statusStyle.Render(id))
	return nil
}

func runLibList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	defs, err := storage.NewDefinitionRepository(db).List()
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		fmt.Println("No definitions stored. Add one with: twisty lib add <definition>")
		return nil
	}

	fmt.Println(titleStyle.Render("Library"))
	fmt.Println()
	for _, d := range defs {
		fmt.Printf("  %-20s %s\n", labelStyle.Render(d.Name),
			statusStyle.Render(fmt.Sprintf("%d algs, %d patterns, added %s",
				d.AlgCount, d.PatternCount, d.CreatedAt.Format(time.DateOnly))))
	}
	return nil
}

func runLibShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := storage.NewDefinitionRepository(db).Get(args[0])
	if err != nil {
		return err
	}
	return writeData(libFormat, rec.Definition)
}

// libraryPuzzle returns the ID and built puzzle of a stored definition.
func libraryPuzzle(db *storage.DB, name string) (string, *twisty.Puzzle, error) {
	rec, err := storage.NewDefinitionRepository(db).Get(name)
	if err != nil {
		return "", nil, err
	}
	p, err := twisty.New(rec.Definition, twisty.WithLogger(logger))
	if err != nil {
		return "", nil, err
	}
	return rec.DefinitionID, p, nil
}

func runLibSaveAlg(cmd *cobra.Command, args []string) error {
	defName, name, algArg := args[0], args[1], args[2]

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	defID, p, err := libraryPuzzle(db, defName)
	if err != nil {
		return err
	}
	a, err := loadAlg(defName, algArg)
	if err != nil {
		return err
	}
	// Only algs that evaluate on the puzzle are stored.
	if _, err := p.TransformationFromAlg(a); err != nil {
		return err
	}

	id, err := storage.NewAlgRepository(db).Put(defID, name, a)
	if err != nil {
		return err
	}
	fmt.Printf("Stored alg %s = %s %s\n", labelStyle.Render(name), moveStyle.Render(a.String()), statusStyle.Render(id))
	return nil
}

func runLibAlgs(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	defID, err := storage.NewDefinitionRepository(db).ID(args[0])
	if err != nil {
		return err
	}
	algs, err := storage.NewAlgRepository(db).List(defID)
	if err != nil {
		return err
	}
	if len(algs) == 0 {
		fmt.Println("No algs stored for", args[0])
		return nil
	}
	for _, a := range algs {
		fmt.Printf("  %-20s %s\n", labelStyle.Render(a.Name), moveStyle.Render(a.Alg.String()))
	}
	return nil
}

func runLibSavePattern(cmd *cobra.Command, args []string) error {
	defName, name, algArg := args[0], args[1], args[2]

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	defID, p, err := libraryPuzzle(db, defName)
	if err != nil {
		return err
	}
	a, err := loadAlg(defName, algArg)
	if err != nil {
		return err
	}
	pattern, err := p.PatternFromAlg(a)
	if err != nil {
		return err
	}

	id, err := storage.NewPatternRepository(db).Create(defID, name, pattern)
	if err != nil {
		return err
	}
	fmt.Printf("Stored pattern %s %s\n", labelStyle.Render(name), statusStyle.Render(id))
	return nil
}

func runLibPatterns(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	defID, p, err := libraryPuzzle(db, args[0])
	if err != nil {
		return err
	}

	repo := storage.NewPatternRepository(db)
	var patterns []storage.PatternRecord
	if libMatchAlg != "" {
		a, err := loadAlg(args[0], libMatchAlg)
		if err != nil {
			return err
		}
		target, err := p.PatternFromAlg(a)
		if err != nil {
			return err
		}
		patterns, err = repo.FindByFingerprint(defID, target)
		if err != nil {
			return err
		}
	} else {
		patterns, err = repo.List(defID)
		if err != nil {
			return err
		}
	}

	if len(patterns) == 0 {
		fmt.Println("No patterns stored for", args[0])
		return nil
	}
	for _, rec := range patterns {
		status := "ok"
		if _, err := rec.Pattern(p); err != nil {
			status = errorStyle.Render(err.Error())
		}
		fmt.Printf("  %-20s %s %s %s\n", labelStyle.Render(rec.Name),
			statusStyle.Render(rec.Fingerprint[:16]),
			statusStyle.Render(rec.CreatedAt.Format(time.RFC3339)), status)
	}
	return nil
}
