package sokoban

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

func testConfig() platformcore.RuntimeConfig {
	return platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}
}

// clearSettings restores package-level settings after a test.
func clearSettings(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		SetStartLevel("")
		SetConfigPath("")
		SetLevelDir("")
		SetDifficulty("")
	})
}

func startGame(t *testing.T, g *Game) *Game {
	t.Helper()
	g.Reset(testConfig())
	if err := g.Err(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	return g
}

func frame(actions ...platformcore.Action) platformcore.InputFrame {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// solveFirstLevel pushes the single case of level 01 onto its target.
func solveFirstLevel(t *testing.T, g *Game) platformcore.StepResult {
	t.Helper()
	var res platformcore.StepResult
	for i := 0; i < 3; i++ {
		res = g.Step(frame(platformcore.ActionRight))
		if i < 2 && res.Cleared != nil {
			t.Fatalf("step %d reported Cleared early", i)
		}
	}
	return res
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"sokoban", "sokoban_single"} {
		if !registry.Exists(id) {
			t.Errorf("game %q should be registered", id)
		}
	}
}

func TestGameStartsAtFirstLevel(t *testing.T) {
	clearSettings(t)
	g := startGame(t, New())

	snap := g.Snapshot()
	if snap.LevelID != "01-first-push" {
		t.Errorf("LevelID = %q, want 01-first-push", snap.LevelID)
	}
	if snap.Player != core.C(2, 1) {
		t.Errorf("Player = %v, want (2,1)", snap.Player)
	}
	if snap.State != StatePlaying {
		t.Errorf("State = %s, want %s", snap.State, StatePlaying)
	}
}

func TestGameSolveReportsCleared(t *testing.T) {
	clearSettings(t)
	g := startGame(t, New())

	res := solveFirstLevel(t, g)
	if res.Cleared == nil {
		t.Fatal("solving move should report Cleared")
	}
	want := platformcore.LevelResult{LevelID: "01-first-push", Moves: 3, Pushes: 2}
	if *res.Cleared != want {
		t.Errorf("Cleared = %+v, want %+v", *res.Cleared, want)
	}
	if res.State.Score != 1 || !res.State.Paused {
		t.Errorf("State = %+v, want Score 1 and Paused", res.State)
	}

	// Input is ignored until the player confirms.
	res = g.Step(frame(platformcore.ActionLeft))
	if res.Cleared != nil || g.Snapshot().Moves != 3 {
		t.Error("moves after clearing should be ignored")
	}
	if g.Snapshot().State != StateLevelCleared {
		t.Errorf("State = %s, want %s", g.Snapshot().State, StateLevelCleared)
	}
}

func TestGameConfirmAdvances(t *testing.T) {
	clearSettings(t)
	g := startGame(t, New())
	solveFirstLevel(t, g)

	g.Step(frame(platformcore.ActionConfirm))

	snap := g.Snapshot()
	if snap.LevelID != "02-side-step" || snap.Level != 2 {
		t.Errorf("after confirm: level %d %q, want 2 02-side-step", snap.Level, snap.LevelID)
	}
	if snap.Moves != 0 || snap.State != StatePlaying {
		t.Errorf("next level should start fresh, got %+v", snap)
	}
	if snap.Score != 1 {
		t.Errorf("Score = %d, want 1", snap.Score)
	}
}

func TestGameAutoAdvance(t *testing.T) {
	clearSettings(t)
	path := filepath.Join(t.TempDir(), "sokoban.yaml")
	data := []byte("gameplay:\n  auto_advance: true\n  advance_delay_ticks: 2\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)

	g := startGame(t, New())
	solveFirstLevel(t, g)

	g.Step(frame())
	if g.Snapshot().LevelID != "01-first-push" {
		t.Fatal("advanced before the delay elapsed")
	}
	g.Step(frame())
	if g.Snapshot().LevelID != "02-side-step" {
		t.Errorf("LevelID = %q, want 02-side-step", g.Snapshot().LevelID)
	}
}

func TestGameSingleModeWins(t *testing.T) {
	clearSettings(t)
	g := startGame(t, NewSingle())

	solveFirstLevel(t, g)
	res := g.Step(frame(platformcore.ActionConfirm))

	if !res.State.GameOver {
		t.Error("single level game should end after confirm")
	}
	if g.Snapshot().State != StateWin {
		t.Errorf("State = %s, want %s", g.Snapshot().State, StateWin)
	}
}

func TestGameUndoAndRestart(t *testing.T) {
	clearSettings(t)
	g := startGame(t, New())

	g.Step(frame(platformcore.ActionRight))
	g.Step(frame(platformcore.ActionUndo))
	if snap := g.Snapshot(); snap.Moves != 0 || snap.Player != core.C(2, 1) {
		t.Errorf("undo did not restore start: %+v", snap)
	}

	g.Step(frame(platformcore.ActionUndo))
	if g.status != "Nothing to undo" {
		t.Errorf("status = %q, want Nothing to undo", g.status)
	}

	g.Step(frame(platformcore.ActionRight))
	g.Step(frame(platformcore.ActionRight))
	g.Step(frame(platformcore.ActionRestart))
	if snap := g.Snapshot(); snap.Moves != 0 || snap.Player != core.C(2, 1) {
		t.Errorf("restart did not reload the level: %+v", snap)
	}
}

func TestGameHint(t *testing.T) {
	clearSettings(t)
	g := startGame(t, New())
	before := g.HintsLeft()

	g.Step(frame(platformcore.ActionHint))

	if snap := g.Snapshot(); snap.Player != core.C(2, 2) {
		t.Errorf("hint should step right, player at %v", snap.Player)
	}
	if before >= 0 && g.HintsLeft() != before-1 {
		t.Errorf("HintsLeft() = %d, want %d", g.HintsLeft(), before-1)
	}
}

func TestGameHintFollowsCachedPath(t *testing.T) {
	clearSettings(t)
	SetDifficulty(config.DifficultyEasy)
	g := startGame(t, New())

	var res platformcore.StepResult
	for i := 0; i < 3; i++ {
		res = g.Step(frame(platformcore.ActionHint))
	}

	if res.Cleared == nil {
		t.Fatal("three hints should solve level 01")
	}
	if g.hintSearches != 1 {
		t.Errorf("hintSearches = %d, want 1 while following the solution", g.hintSearches)
	}
}

func TestGameHintManualMoveKeepsPath(t *testing.T) {
	clearSettings(t)
	SetDifficulty(config.DifficultyEasy)
	g := startGame(t, New())

	g.Step(frame(platformcore.ActionHint))
	g.Step(frame(platformcore.ActionRight))

	if len(g.hintPath) != 1 {
		t.Errorf("len(hintPath) = %d, want 1 after following the hint by hand", len(g.hintPath))
	}

	// Leaving the path forces a fresh search.
	g.Step(frame(platformcore.ActionUp))
	if g.hintPath != nil {
		t.Error("moving off the solution should drop the cached path")
	}
	g.Step(frame(platformcore.ActionHint))
	if g.hintSearches != 2 {
		t.Errorf("hintSearches = %d, want 2 after leaving the path", g.hintSearches)
	}
}

func TestGameHintDeadStateSearchesOnce(t *testing.T) {
	clearSettings(t)
	dir := t.TempDir()
	// The case starts in a corner, so no solution exists.
	data := []byte("#####\n#o  #\n# i #\n#  x#\n#####\n")
	if err := os.WriteFile(filepath.Join(dir, "stuck.txt"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	SetLevelDir(dir)
	g := startGame(t, New())
	before := g.HintsLeft()

	g.Step(frame(platformcore.ActionHint))
	g.Step(frame(platformcore.ActionHint))

	if g.hintSearches != 1 {
		t.Errorf("hintSearches = %d, want 1 for a repeated dead state", g.hintSearches)
	}
	if g.Snapshot().Moves != 0 {
		t.Error("a failed hint should not move")
	}
	if g.HintsLeft() != before {
		t.Errorf("HintsLeft() = %d, want %d: failed hints are free", g.HintsLeft(), before)
	}

	// A new state searches again.
	g.Step(frame(platformcore.ActionLeft))
	g.Step(frame(platformcore.ActionHint))
	if g.hintSearches != 2 {
		t.Errorf("hintSearches = %d, want 2 after moving", g.hintSearches)
	}
}

func TestGameHardPreset(t *testing.T) {
	clearSettings(t)
	SetDifficulty(config.DifficultyHard)
	g := startGame(t, New())

	g.Step(frame(platformcore.ActionHint))
	if g.Snapshot().Moves != 0 {
		t.Error("hard preset has no hints")
	}

	g.Step(frame(platformcore.ActionRight))
	g.Step(frame(platformcore.ActionUndo))
	if g.Snapshot().Moves != 1 {
		t.Error("hard preset disables undo")
	}
}

func TestGamePause(t *testing.T) {
	clearSettings(t)
	g := startGame(t, New())

	res := g.Step(frame(platformcore.ActionPause))
	if !res.State.Paused {
		t.Fatal("game should be paused")
	}
	g.Step(frame(platformcore.ActionRight))
	if g.Snapshot().Moves != 0 {
		t.Error("moves while paused should be ignored")
	}

	g.Step(frame(platformcore.ActionPause))
	g.Step(frame(platformcore.ActionRight))
	if g.Snapshot().Moves != 1 {
		t.Error("game should accept moves after unpausing")
	}
}

func TestGameStartLevel(t *testing.T) {
	clearSettings(t)
	SetStartLevel("03-nook")
	g := startGame(t, New())

	if g.Snapshot().LevelID != "03-nook" {
		t.Fatalf("LevelID = %q, want 03-nook", g.Snapshot().LevelID)
	}

	// A restart of the same game replays from its start level.
	g.Reset(testConfig())
	if g.Snapshot().LevelID != "03-nook" {
		t.Errorf("after reset LevelID = %q, want 03-nook", g.Snapshot().LevelID)
	}

	// The setting is consumed by the first game.
	other := startGame(t, New())
	if other.Snapshot().LevelID != "01-first-push" {
		t.Errorf("new game LevelID = %q, want 01-first-push", other.Snapshot().LevelID)
	}
}

func TestGameLevelDir(t *testing.T) {
	clearSettings(t)
	dir := t.TempDir()
	data := []byte(";name: Tiny\n#####\n#iox#\n#####\n")
	if err := os.WriteFile(filepath.Join(dir, "tiny.txt"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	SetLevelDir(dir)

	g := startGame(t, NewSingle())
	res := g.Step(frame(platformcore.ActionRight))
	if res.Cleared == nil || res.Cleared.LevelID != "tiny" {
		t.Fatalf("Cleared = %+v, want tiny", res.Cleared)
	}
}

func TestGameNoLevels(t *testing.T) {
	clearSettings(t)
	SetLevelDir(t.TempDir())

	g := New()
	g.Reset(testConfig())
	if g.Err() == nil {
		t.Fatal("empty level dir should fail to load")
	}
	if !g.State().GameOver {
		t.Error("load failure should end the game")
	}

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Could not load levels") {
		t.Error("render should explain the load failure")
	}
}

func TestGameTooSmallAndResize(t *testing.T) {
	clearSettings(t)
	g := New()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 30})

	if g.Snapshot().State != StatePausedSmall {
		t.Fatalf("State = %s, want %s", g.Snapshot().State, StatePausedSmall)
	}
	g.Step(frame(platformcore.ActionRight))
	if g.Snapshot().Moves != 0 {
		t.Error("moves on a small screen should be ignored")
	}

	g.Resize(80, 24)
	g.Step(frame(platformcore.ActionRight))
	if g.Snapshot().Moves != 1 {
		t.Error("game should resume after resize")
	}

	g.Resize(20, 5)
	g.Resize(80, 24)
	if g.Snapshot().Moves != 1 {
		t.Error("resize should keep progress")
	}
}

func TestGameRender(t *testing.T) {
	clearSettings(t)
	g := startGame(t, New())

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"First Push", "Moves: 0", "@"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}

	solveFirstLevel(t, g)
	g.Render(screen)
	if !strings.Contains(screen.String(), "LEVEL SOLVED!") {
		t.Error("render should show the cleared overlay")
	}
}

func TestGameDeterminism(t *testing.T) {
	clearSettings(t)
	inputs := []platformcore.Action{
		platformcore.ActionRight, platformcore.ActionUp, platformcore.ActionUndo,
		platformcore.ActionRight, platformcore.ActionDown, platformcore.ActionHint,
		platformcore.ActionLeft, platformcore.ActionRight,
	}

	run := func() []Snapshot {
		g := startGame(t, New())
		var snaps []Snapshot
		for _, a := range inputs {
			g.Step(frame(a))
			snaps = append(snaps, g.Snapshot())
		}
		return snaps
	}

	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Error("identical inputs should produce identical snapshots")
	}
}
