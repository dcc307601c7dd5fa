// Package config provides YAML-based configuration loading and difficulty
// presets for the Sokoban game.
package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-sokoban/internal/core"
)

// SokobanConfig contains all configuration for the Sokoban game.
type SokobanConfig struct {
	Levels   LevelsConfig   `yaml:"levels"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Glyphs   GlyphsConfig   `yaml:"glyphs"`
}

// LevelsConfig selects where levels come from.
type LevelsConfig struct {
	Dir   string `yaml:"dir"`   // Directory of level files; empty = built-in set
	Start string `yaml:"start"` // Level ID to start the campaign at
}

// GameplayConfig defines gameplay parameters.
type GameplayConfig struct {
	AutoAdvance       bool `yaml:"auto_advance"`        // Move to the next level without Enter
	AdvanceDelayTicks int  `yaml:"advance_delay_ticks"` // Ticks to show the cleared banner
	Hints             int  `yaml:"hints"`               // Hints per level, -1 = unlimited
	UndoEnabled       bool `yaml:"undo_enabled"`
	SolveBudget       int  `yaml:"solve_budget"` // Max states the hint solver explores
}

// Glyph is how one cell variant is drawn.
type Glyph struct {
	Char  string `yaml:"char"`
	Color string `yaml:"color"`
}

// Rune returns the glyph character, or a space when none is set.
func (g Glyph) Rune() rune {
	if g.Char == "" {
		return ' '
	}
	r, _ := utf8.DecodeRuneInString(g.Char)
	return r
}

// ColorValue returns the glyph color, falling back to the default color.
func (g Glyph) ColorValue() core.Color {
	if c, ok := core.ParseColor(g.Color); ok {
		return c
	}
	return core.ColorDefault
}

// GlyphsConfig maps each cell variant to its glyph.
type GlyphsConfig struct {
	Ground         Glyph `yaml:"ground"`
	Wall           Glyph `yaml:"wall"`
	Target         Glyph `yaml:"target"`
	Case           Glyph `yaml:"case"`
	CaseOnTarget   Glyph `yaml:"case_on_target"`
	Player         Glyph `yaml:"player"`
	PlayerOnTarget Glyph `yaml:"player_on_target"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. The empty string means "no preset".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(name)); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", name)
	}
}
