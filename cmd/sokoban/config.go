package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration Sokoban would play with, as YAML.

The output is a complete config file: save it to ~/.sokoban/configs/sokoban.yaml
and edit it to change glyphs, hints or auto-advance.

Examples:
  sokoban config
  sokoban config --difficulty hard
  sokoban config --config ./my-sokoban.yaml > ~/.sokoban/configs/sokoban.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset to apply: easy, normal, hard")
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadSokoban(flagConfig)
	if err != nil {
		return err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplySokobanPreset(&cfg, preset)
	if flagLevelDir != "" {
		cfg.Levels.Dir = flagLevelDir
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
