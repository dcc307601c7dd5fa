package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

var (
	flagDifficulty string
	flagSingle     bool
)

var playCmd = &cobra.Command{
	Use:   "play [level-id]",
	Short: "Play the campaign or a single level",
	Long: `Start playing Sokoban.

Without a level ID a level picker is shown first. With one, play starts
straight at that level.

Controls:
  Arrows/WASD/HJKL - Move
  U/Z/Backspace    - Undo
  ?                - Hint
  R                - Restart level
  Enter            - Next level (after solving)
  P                - Pause
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Unlimited hints and undo
  normal - Three hints per level, undo allowed
  hard   - No hints, no undo

Examples:
  sokoban play
  sokoban play 03-nook
  sokoban play 03-nook --single
  sokoban play --difficulty hard
  sokoban play --levels ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagSingle, "single", false, "Play one level only instead of the campaign")
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     time.Now().UnixNano(),
	}
}

// openStore opens the solves database, or returns nil with a warning.
// The game still works without storage.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open solves database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// levelLoader returns the loader for the resolved level directory.
func levelLoader() *levels.Loader {
	if levelDir != "" {
		return levels.NewLoader(levelDir)
	}
	return levels.Builtin()
}

// loadLevels loads the resolved level set.
func loadLevels() ([]levels.Level, error) {
	lvls, err := levelLoader().LoadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot load levels: %w", err)
	}
	if len(lvls) == 0 {
		return nil, fmt.Errorf("no valid levels found in %q", levelDir)
	}
	logger.Debug("levels loaded", "count", len(lvls))
	return lvls, nil
}

// solvedLevels returns stored progress, or nil without a store.
func solvedLevels(store *storage.Store) map[string]time.Time {
	if store == nil {
		return nil
	}
	solved, err := store.SolvedLevels()
	if err != nil {
		logger.Warn("could not read progress", "error", err)
		return nil
	}
	return solved
}

func runPlay(_ *cobra.Command, args []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	sokoban.SetDifficulty(preset)

	gameID := "sokoban"
	if flagSingle {
		gameID = "sokoban_single"
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	if len(args) == 1 {
		level, err := levelLoader().LoadByID(args[0])
		if err != nil {
			return fmt.Errorf("unknown level %q, run 'sokoban list' to see available levels: %w", args[0], err)
		}
		sokoban.SetStartLevel(level.ID)
	} else {
		lvls, err := loadLevels()
		if err != nil {
			return err
		}
		selection, updatedCfg, selErr := tui.RunLevelSelector(lvls, solvedLevels(store), !flagSingle, cfg)
		if selErr != nil {
			return selErr
		}
		cfg = updatedCfg

		// User pressed back or quit
		if selection == nil {
			return nil
		}
		sokoban.SetStartLevel(selection.LevelID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	if err := tui.Run(game, store, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
