// Package levels provides level loading functionality for Sokoban.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Author   string
	Rows     []string
	Metadata map[string]string
	FilePath string
}

// NewScene creates a scene loaded with this level.
func (l *Level) NewScene() (*core.Scene, error) {
	s := core.NewScene()
	if err := s.Load(l.Rows); err != nil {
		return nil, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return s, nil
}

// Title returns the display name, falling back to the ID.
func (l *Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// Loader handles loading levels from a file system tree.
type Loader struct {
	FS   fs.FS
	Root string
}

// NewLoader creates a loader reading level files under dir.
func NewLoader(dir string) *Loader {
	return &Loader{FS: os.DirFS(dir), Root: "."}
}

// Builtin returns a loader over the level set compiled into the binary.
func Builtin() *Loader {
	return &Loader{FS: builtinFS, Root: "builtin"}
}

// Files lists every level file with a supported extension, sorted by path.
func (l *Loader) Files() ([]string, error) {
	var files []string

	err := fs.WalkDir(l.FS, l.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if isSupportedExtension(strings.ToLower(path.Ext(p))) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.Root, err)
	}

	sort.Strings(files)
	return files, nil
}

// LoadAll loads every valid level file.
// Invalid files are skipped. Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	files, err := l.Files()
	if err != nil {
		return nil, err
	}

	levels := make([]Level, 0, len(files))
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		level, err := l.LoadFile(f)
		if err != nil {
			continue
		}
		if seen[level.ID] {
			continue
		}
		seen[level.ID] = true
		levels = append(levels, level)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", p, err)
	}

	if err := core.ValidateLayout(parsed.Rows); err != nil {
		return Level{}, fmt.Errorf("levels: invalid level in %s: %w", p, err)
	}

	id := parsed.ID
	if id == "" {
		base := path.Base(p)
		id = strings.TrimSuffix(base, path.Ext(base))
	}

	return Level{
		ID:       id,
		Name:     parsed.Name,
		Author:   parsed.Author,
		Rows:     parsed.Rows,
		Metadata: parsed.Metadata,
		FilePath: p,
	}, nil
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

	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

// IndexOf returns the position of the level with the given ID, or -1.
func IndexOf(levels []Level, id string) int {
	for i, lvl := range levels {
		if lvl.ID == id {
			return i
		}
	}
	return -1
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
	case ".txt", ".sok":
		return formats.ParseText(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
