package config

import (
	_ "embed"
)

//go:embed defaults/sokoban.yaml
var defaultSokobanYAML []byte

// DefaultSokobanConfig returns the built-in configuration.
// It mirrors defaults/sokoban.yaml and is used if the embedded file fails to parse.
func DefaultSokobanConfig() SokobanConfig {
	return SokobanConfig{
		Gameplay: GameplayConfig{
			AutoAdvance:       false,
			AdvanceDelayTicks: 45,
			Hints:             3,
			UndoEnabled:       true,
			SolveBudget:       200000,
		},
		Glyphs: GlyphsConfig{
			Ground:         Glyph{Char: " ", Color: "default"},
			Wall:           Glyph{Char: "█", Color: "gray"},
			Target:         Glyph{Char: "·", Color: "bright_red"},
			Case:           Glyph{Char: "■", Color: "orange"},
			CaseOnTarget:   Glyph{Char: "■", Color: "bright_green"},
			Player:         Glyph{Char: "@", Color: "bright_cyan"},
			PlayerOnTarget: Glyph{Char: "@", Color: "bright_yellow"},
		},
	}
}
