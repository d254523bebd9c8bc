// Package levels provides level loading for the liquid sorting game.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/liquidsort/internal/games/liquid/core"
	"github.com/vovakirdan/liquidsort/internal/games/liquid/levels/formats"
)

//go:embed data/*.yaml
var embeddedFS embed.FS

// Level represents a complete level definition.
type Level struct {
	ID        string
	Name      string
	Capacity  int
	Cylinders [][]core.Unit
	Metadata  map[string]string
	FilePath  string
}

// Specs returns the initial configuration of every cylinder.
func (l *Level) Specs() []core.CylinderSpec {
	specs := make([]core.CylinderSpec, len(l.Cylinders))
	for i, col := range l.Cylinders {
		colors := make([]core.Unit, len(col))
		copy(colors, col)
		specs[i] = core.CylinderSpec{Capacity: l.Capacity, Colors: colors}
	}
	return specs
}

// NewSession creates a fresh game session from this level.
func (l *Level) NewSession() (*core.Session, error) {
	return core.NewSession(l.Specs())
}

// Loader handles loading levels from a directory tree.
type Loader struct {
	Root string
	fsys fs.FS
}

// NewLoader creates a new level loader rooted at a directory.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// Embedded returns a loader over the bundled campaign.
func Embedded() *Loader {
	sub, err := fs.Sub(embeddedFS, "data")
	if err != nil {
		panic(fmt.Sprintf("levels: embedded data: %v", err))
	}
	return &Loader{Root: "embedded", fsys: sub}
}

// ErrLevelNotFound is returned by LoadByID for an unknown ID.
var ErrLevelNotFound = errors.New("level not found")

// walk parses every supported file under the root in lexical order.
// Read and parse failures go to fn instead of stopping the walk.
func (l *Loader) walk(fn func(filePath string, level Level, err error)) error {
	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		ext := strings.ToLower(path.Ext(p))
		if d.IsDir() || !isSupportedExtension(ext) {
			return nil
		}

		filePath := filepath.Join(l.Root, filepath.FromSlash(p))
		data, err := fs.ReadFile(l.fsys, p)
		if err != nil {
			fn(filePath, Level{}, err)
			return nil
		}
		level, err := parseLevel(data, ext, filePath)
		fn(filePath, level, err)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking directory %s: %w", l.Root, err)
	}
	return nil
}

// LoadAll loads every valid level file under the root, sorted by ID.
// Broken files are skipped; Check reports them.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	err := l.walk(func(_ string, level Level, err error) {
		if err == nil {
			levels = append(levels, level)
		}
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file from disk.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	return parseLevel(data, strings.ToLower(filepath.Ext(path)), path)
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func parseLevel(data []byte, ext, path string) (Level, error) {
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	return Level{
		ID:        parsed.ID,
		Name:      parsed.Name,
		Capacity:  parsed.Capacity,
		Cylinders: parsed.Cylinders,
		Metadata:  parsed.Metadata,
		FilePath:  path,
	}, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
