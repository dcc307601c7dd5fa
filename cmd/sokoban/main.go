// sokoban is a terminal Sokoban game with level tooling and SSH play.
//
// Usage:
//
//	sokoban play [level]       - Play the campaign, or start at a level
//	sokoban menu               - Start menu to pick modes and levels
//	sokoban list               - List levels and solved progress
//	sokoban check <path>...    - Validate and solve level files
//	sokoban scores [level]     - Show best solves
//	sokoban serve              - Start SSH server for remote play
//	sokoban config             - Print the effective config
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--db <path>          - Set database path (default: ~/.sokoban/solves.db)
//	--config <path>      - Custom config YAML
//	--levels <dir>       - Directory of level files (default: levels.dir, else built-in set)
//	--log-level <level>  - debug, info, warn or error
//	--theme <name>       - default or mono
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagLevelDir string
	flagLogLevel string
	flagTheme    string
)

// logger reports warnings and server events on stderr.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "sokoban",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sokoban",
	Short: "Sokoban - push cases onto targets in your terminal",
	Long: `Sokoban is a terminal warehouse puzzle. Walk the keeper around the
room and push every case onto a target. Cases can be pushed, never pulled.

Available commands:
  play     - Play the campaign or a single level
  menu     - Interactive mode and level picker
  list     - Show levels and your progress
  check    - Validate and solve level files
  scores   - View best solves
  serve    - Start SSH server for remote play
  config   - Print the effective config

Examples:
  sokoban play
  sokoban play 03-nook --single
  sokoban menu --levels ./my-levels
  sokoban check ./my-levels
  sokoban serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)

		applySettings()
		logger.Debug("settings", "config", flagConfig, "levels", levelDir, "db", flagDBPath)
		return nil
	},
}

// levelDir is the resolved level directory: --levels, else levels.dir from
// the config. Empty means the built-in set.
var levelDir string

// applySettings resolves the level directory and hands the settings to the
// game package, so pickers and games read the same level set.
func applySettings() {
	levelDir = config.ResolveLevelDir(flagLevelDir, flagConfig)
	sokoban.SetConfigPath(flagConfig)
	sokoban.SetLevelDir(levelDir)
	tui.SetTheme(tui.ThemeByName(flagTheme))
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sokoban/solves.db", "Path to solves database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelDir, "levels", "", "Directory of level files (default: levels.dir from config, else built-in set)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Menu theme: default or mono")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
