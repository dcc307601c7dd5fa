package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

var (
	flagSolveBudget int
	flagShowPath    bool
)

var errCheckFailed = errors.New("some levels failed the check")

var checkCmd = &cobra.Command{
	Use:   "check <file-or-dir>...",
	Short: "Validate and solve level files",
	Long: `Validate level files and search for a solution to each one.

A level passes when it loads, is sealed by walls, has no more cases than
targets, does not start solved and a solution is found within the budget.
Directories are searched recursively for .yaml, .yml, .txt and .sok files.

Examples:
  sokoban check ./my-levels
  sokoban check hard.yaml --budget 1000000
  sokoban check ./my-levels --path`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().IntVar(&flagSolveBudget, "budget", core.DefaultSolveBudget, "Maximum states the solver explores per level")
	checkCmd.Flags().BoolVar(&flagShowPath, "path", false, "Print the solution as letters (u, r, d, l)")
}

// checkTarget is one level file, addressed relative to its loader.
type checkTarget struct {
	loader *levels.Loader
	file   string
	label  string
}

func runCheck(_ *cobra.Command, args []string) error {
	var targets []checkTarget
	for _, arg := range args {
		found, err := collectTargets(arg)
		if err != nil {
			return err
		}
		targets = append(targets, found...)
	}

	if len(targets) == 0 {
		return errors.New("no level files found")
	}

	failed := 0
	for _, t := range targets {
		if !checkLevel(t) {
			failed++
		}
	}

	fmt.Println()
	fmt.Printf("%d checked, %d passed, %d failed.\n", len(targets), len(targets)-failed, failed)
	if failed > 0 {
		return errCheckFailed
	}
	return nil
}

// collectTargets expands a path into level files.
func collectTargets(arg string) ([]checkTarget, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return []checkTarget{{
			loader: levels.NewLoader(filepath.Dir(arg)),
			file:   filepath.Base(arg),
			label:  arg,
		}}, nil
	}

	loader := levels.NewLoader(arg)
	files, err := loader.Files()
	if err != nil {
		return nil, err
	}

	targets := make([]checkTarget, 0, len(files))
	for _, f := range files {
		targets = append(targets, checkTarget{
			loader: loader,
			file:   f,
			label:  filepath.Join(arg, filepath.FromSlash(f)),
		})
	}
	return targets, nil
}

// checkLevel validates and solves one file, printing the outcome.
func checkLevel(t checkTarget) bool {
	level, err := t.loader.LoadFile(t.file)
	if err != nil {
		fmt.Printf("FAIL  %s: %v\n", t.label, err)
		return false
	}

	scene, err := level.NewScene()
	if err != nil {
		fmt.Printf("FAIL  %s: %v\n", t.label, err)
		return false
	}

	path, ok := core.Solve(scene, flagSolveBudget)
	if !ok {
		fmt.Printf("FAIL  %s (%s): no solution within %d states\n", t.label, level.ID, flagSolveBudget)
		return false
	}

	fmt.Printf("ok    %s (%s): solved in %d moves\n", t.label, level.ID, len(path))
	if flagShowPath {
		fmt.Printf("      %s\n", core.FormatPath(path))
	}
	logger.Debug("level checked", "id", level.ID, "moves", len(path))
	return true
}
