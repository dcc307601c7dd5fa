package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/core"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	if got, want := embeddedDefault(), DefaultSokobanConfig(); !reflect.DeepEqual(got, want) {
		t.Errorf("embedded defaults = %+v\nhardcoded = %+v", got, want)
	}
}

func TestLoadSokobanCustomPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("gameplay:\n  hints: 7\nglyphs:\n  player:\n    char: \"P\"\n    color: red\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSokoban(path)
	if err != nil {
		t.Fatalf("LoadSokoban() failed: %v", err)
	}

	if cfg.Gameplay.Hints != 7 {
		t.Errorf("Hints = %d, want 7", cfg.Gameplay.Hints)
	}
	if !cfg.Gameplay.UndoEnabled {
		t.Error("unset keys should keep their defaults")
	}
	if cfg.Glyphs.Player.Rune() != 'P' || cfg.Glyphs.Player.ColorValue() != core.ColorRed {
		t.Errorf("Player glyph = %+v, want red P", cfg.Glyphs.Player)
	}
	if cfg.Glyphs.Wall.Rune() != '█' {
		t.Errorf("Wall glyph = %q, want default", cfg.Glyphs.Wall.Rune())
	}
}

func TestLoadSokobanMissingCustom(t *testing.T) {
	cfg, err := LoadSokoban(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
	if cfg.Gameplay.SolveBudget == 0 {
		t.Error("defaults should still be returned alongside the error")
	}
}

func TestLoadSokobanInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("gameplay: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSokoban(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplySokobanPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		hints  int
		undo   bool
	}{
		{DifficultyEasy, -1, true},
		{DifficultyNormal, 3, true},
		{DifficultyHard, 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultSokobanConfig()
			ApplySokobanPreset(&cfg, tt.preset)
			if cfg.Gameplay.Hints != tt.hints || cfg.Gameplay.UndoEnabled != tt.undo {
				t.Errorf("preset %s: hints=%d undo=%v, want %d/%v",
					tt.preset, cfg.Gameplay.Hints, cfg.Gameplay.UndoEnabled, tt.hints, tt.undo)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset("HARD"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(HARD) = (%q, %v)", p, err)
	}
	if p, err := ParsePreset(""); err != nil || p != "" {
		t.Errorf("ParsePreset(\"\") = (%q, %v)", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset(nightmare) should fail")
	}
}

func TestGlyphFallbacks(t *testing.T) {
	var g Glyph
	if g.Rune() != ' ' || g.ColorValue() != core.ColorDefault {
		t.Errorf("empty glyph = (%q, %v), want space/default", g.Rune(), g.ColorValue())
	}
}

func TestResolveLevelDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("levels:\n  dir: ./mine\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		override   string
		configPath string
		want       string
	}{
		{"from config", "", path, "./mine"},
		{"override wins", "./flag", path, "./flag"},
		{"unreadable config", "", filepath.Join(t.TempDir(), "missing.yaml"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveLevelDir(tt.override, tt.configPath); got != tt.want {
				t.Errorf("ResolveLevelDir(%q, %q) = %q, want %q", tt.override, tt.configPath, got, tt.want)
			}
		})
	}
}
