package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

var flagClearSolves bool

var scoresCmd = &cobra.Command{
	Use:   "scores [level-id]",
	Short: "Show best solves",
	Long: `Display the ten best solves for a level, ranked by moves then pushes.
Without a level ID, a summary for every solved level is shown.

Examples:
  sokoban scores
  sokoban scores 03-nook
  sokoban scores 03-nook --clear
  sokoban scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearSolves, "clear", false, "Delete recorded solves (for one level or all)")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening solves database: %w", err)
	}
	defer store.Close()

	levelID := ""
	if len(args) == 1 {
		levelID = args[0]
	}

	if flagClearSolves {
		if err := store.ClearSolves(levelID); err != nil {
			return fmt.Errorf("clearing solves: %w", err)
		}
		if levelID == "" {
			fmt.Println("Cleared all solves.")
		} else {
			fmt.Printf("Cleared solves for %s.\n", levelID)
		}
		return nil
	}

	if levelID == "" {
		return printSummary(store)
	}
	return printBestSolves(store, levelID)
}

func printBestSolves(store *storage.Store, levelID string) error {
	solves, err := store.BestSolves(levelID, 10)
	if err != nil {
		return fmt.Errorf("retrieving solves: %w", err)
	}

	fmt.Printf("Best Solves - %s\n", levelID)
	fmt.Println()

	if len(solves) == 0 {
		fmt.Println("No solves recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'sokoban play %s' to set the first record!\n", levelID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-12s  %s\n", "Rank", "Moves", "Pushes", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-12s  %s\n", "----", "-----", "------", "------", "----")

	for i, s := range solves {
		player := s.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-6d  %-6d  %-12s  %s\n", i+1, s.Moves, s.Pushes, player, s.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.LevelStats(levelID)
	if err == nil && stats != nil {
		fmt.Println()
		fmt.Printf("Solves: %d  Avg moves: %.1f\n", stats.Solves, stats.AvgMoves)
	}
	return nil
}

func printSummary(store *storage.Store) error {
	all, err := store.AllLevelStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	if len(all) == 0 {
		fmt.Println("No solves recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	maxIDLen := len("Level")
	for id := range all {
		ids = append(ids, id)
		maxIDLen = max(maxIDLen, len(id))
	}
	sort.Strings(ids)

	fmt.Printf("  %-*s  %-6s  %-10s  %-10s  %s\n", maxIDLen, "Level", "Solves", "Best moves", "Best push", "Last solved")
	fmt.Printf("  %-*s  %-6s  %-10s  %-10s  %s\n", maxIDLen, "-----", "------", "----------", "---------", "-----------")

	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-*s  %-6d  %-10d  %-10d  %s\n",
			maxIDLen, id, st.Solves, st.BestMoves, st.BestPushes, st.LastSolved.Format("2006-01-02 15:04"))
	}
	return nil
}
