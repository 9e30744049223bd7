package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/storage"
	"github.com/SeamusWaldron/twisty/pkg/alg"
	"github.com/SeamusWaldron/twisty/pkg/puzzles"
)

// isYAML reports whether path names a YAML file.
func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// decodeFile decodes a JSON or YAML file into v. YAML is converted to JSON
// first so the JSON decoders of move keys and algs apply to both.
func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if isYAML(path) {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse YAML %s: %w", path, err)
		}
		data, err = json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to convert YAML %s: %w", path, err)
		}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// loadDefinition resolves a definition argument: a file path, a built-in
// puzzle name, or the name of a definition stored in the library.
func loadDefinition(arg string) (*twisty.Definition, error) {
	if fileExists(arg) {
		logger.Debug("loading definition file", slog.String("path", arg))
		var def twisty.Definition
		if err := decodeFile(arg, &def); err != nil {
			return nil, err
		}
		return &def, nil
	}

	if def, err := puzzles.Definition(arg); err == nil {
		logger.Debug("using built-in definition", slog.String("name", arg))
		return def, nil
	}

	db, err := openDB()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rec, err := storage.NewDefinitionRepository(db).Get(arg)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("no definition file, built-in puzzle or library entry named %q", arg)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("using library definition", slog.String("name", arg), slog.String("id", rec.DefinitionID))
	return rec.Definition, nil
}

// loadPuzzle resolves a definition argument and builds its puzzle.
func loadPuzzle(arg string) (*twisty.Puzzle, error) {
	def, err := loadDefinition(arg)
	if err != nil {
		return nil, err
	}
	return twisty.New(def, twisty.WithLogger(logger))
}

// loadAlg resolves an alg argument: a JSON or YAML file holding the alg
// tree, "@name" for an alg stored in the library for the definition, or an
// inline move sequence such as "R U R' U'".
func loadAlg(defName, arg string) (alg.Alg, error) {
	switch {
	case fileExists(arg):
		var a alg.Alg
		if err := decodeFile(arg, &a); err != nil {
			return alg.Alg{}, err
		}
		return a, nil

	case strings.HasPrefix(arg, "@"):
		db, err := openDB()
		if err != nil {
			return alg.Alg{}, err
		}
		defer db.Close()

		defID, err := storage.NewDefinitionRepository(db).ID(defName)
		if err != nil {
			return alg.Alg{}, err
		}
		rec, err := storage.NewAlgRepository(db).Get(defID, strings.TrimPrefix(arg, "@"))
		if err != nil {
			return alg.Alg{}, err
		}
		return rec.Alg, nil

	default:
		a, err := alg.ParseMoveSequence(arg)
		if err != nil {
			return alg.Alg{}, fmt.Errorf("%q is not a file, a library alg or a move sequence: %w", arg, err)
		}
		return a, nil
	}
}

// writeData prints v as indented JSON or as YAML.
func writeData(format string, v any) error {
	data, err := encodeData(format, v)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

// encodeData encodes v as indented JSON or as YAML, ending in a newline.
func encodeData(format string, v any) ([]byte, error) {
	switch format {
	case "json", "":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown format %q (expected json or yaml)", format)
	}
}
