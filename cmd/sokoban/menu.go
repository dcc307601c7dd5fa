package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode and level picker menu",
	Long: `Start Sokoban in interactive menu mode.

Pick the campaign or a single level, then choose where to start.
After a run ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Best solves
  Esc          - Back
  Q            - Quit

Examples:
  sokoban menu
  sokoban menu --fps 60
  sokoban menu --difficulty hard --db ./solves.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runMenu(_ *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	sokoban.SetDifficulty(preset)

	lvls, err := loadLevels()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, lvls, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				logger.Error("scoreboard failed", "error", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		gameID := menuResult.GameID
		if gameID == "" {
			return nil
		}

		selection, updatedCfg, selErr := tui.RunLevelSelector(lvls, solvedLevels(store), gameID == "sokoban", cfg)
		if selErr != nil {
			logger.Error("level selector failed", "error", selErr)
			continue
		}
		cfg = updatedCfg
		if selection == nil {
			continue
		}

		game, err := registry.Create(gameID)
		if err != nil {
			logger.Error("creating game", "game", gameID, "error", err)
			continue
		}
		if s, ok := game.(interface{ StartAt(string) }); ok {
			s.StartAt(selection.LevelID)
		}

		if err := tui.Run(game, store, cfg); err != nil {
			logger.Error("running game", "error", err)
		}
	}
}
