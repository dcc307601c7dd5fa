package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels/formats"
)

func writeLevel(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "good.txt", "#####\n#iox#\n#####\n")

	if err := runCheck(nil, []string{dir}); err != nil {
		t.Fatalf("runCheck() = %v, want nil", err)
	}
	if err := runCheck(nil, []string{filepath.Join(dir, "good.txt")}); err != nil {
		t.Fatalf("runCheck(file) = %v, want nil", err)
	}
}

func TestRunCheckFailures(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "good.txt", "#####\n#iox#\n#####\n")
	// Case stuck in a corner, no solution.
	writeLevel(t, dir, "stuck.txt", "#####\n#o x#\n# i #\n#####\n")
	writeLevel(t, dir, "open.txt", "iox\n")

	err := runCheck(nil, []string{dir})
	if !errors.Is(err, errCheckFailed) {
		t.Errorf("runCheck() = %v, want errCheckFailed", err)
	}
}

func TestRunCheckNoFiles(t *testing.T) {
	if err := runCheck(nil, []string{t.TempDir()}); err == nil {
		t.Error("runCheck() on an empty dir should fail")
	}
	if err := runCheck(nil, []string{filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Error("runCheck() on a missing path should fail")
	}
}

func TestCheckHelpListsFormats(t *testing.T) {
	for _, ext := range formats.FormatExtensions() {
		if !strings.Contains(checkCmd.Long, ext) {
			t.Errorf("check help should mention %s", ext)
		}
	}
}
