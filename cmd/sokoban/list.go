package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

var flagListModes bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List levels and solved progress",
	Long: `Shows every level in the current set with its size, case count,
difficulty and whether you have solved it.

Examples:
  sokoban list
  sokoban list --levels ./my-levels
  sokoban list --modes`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListModes, "modes", false, "List game modes instead of levels")
}

func runList(_ *cobra.Command, _ []string) error {
	if flagListModes {
		listModes()
		return nil
	}

	lvls, err := loadLevels()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	solved := solvedLevels(store)

	// Calculate column widths
	maxIDLen, maxNameLen := 2, 4 // "ID", "Name" headers
	for _, l := range lvls {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxNameLen = max(maxNameLen, len(l.Name))
	}

	fmt.Printf("  %-*s  %-*s  %-7s  %-5s  %-10s  %-11s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Size", "Cases", "Difficulty", "Best (m/p)", "Solved")
	fmt.Printf("  %-*s  %-*s  %-7s  %-5s  %-10s  %-11s  %s\n", maxIDLen, "--", maxNameLen, "----", "----", "-----", "----------", "----------", "------")

	solvedCount := 0
	for _, l := range lvls {
		scene, err := l.NewScene()
		if err != nil {
			logger.Warn("skipping level", "id", l.ID, "error", err)
			continue
		}
		rows, cols := scene.Size()
		cases := scene.Count(core.Case) + scene.Count(core.CaseOnTarget)

		mark := ""
		if _, ok := solved[l.ID]; ok {
			mark = "✓"
			solvedCount++
		}

		difficulty := l.Metadata["difficulty"]
		if difficulty == "" {
			difficulty = "-"
		}

		fmt.Printf("  %-*s  %-*s  %-7s  %-5d  %-10s  %-11s  %s\n",
			maxIDLen, l.ID, maxNameLen, l.Name, fmt.Sprintf("%dx%d", cols, rows), cases, difficulty, bestSolve(store, l.ID), mark)
	}

	fmt.Println()
	fmt.Printf("%d levels, %d solved.\n", len(lvls), solvedCount)
	fmt.Println("Run 'sokoban play <id>' to play a level.")
	return nil
}

// bestSolve formats the best recorded solve as "moves/pushes", or "-".
func bestSolve(store *storage.Store, levelID string) string {
	if store == nil {
		return "-"
	}
	best, err := store.BestSolve(levelID)
	if err != nil || best == nil {
		return "-"
	}
	return fmt.Sprintf("%d/%d", best.Moves, best.Pushes)
}

func listModes() {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No game modes available.")
		return
	}

	maxIDLen := 2
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}
}
