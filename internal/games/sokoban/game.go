// Package sokoban provides the Sokoban warehouse puzzle for the platform.
package sokoban

import (
	"errors"
	"sync"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeSingle   Mode = "single"
)

var errNoLevels = errors.New("no valid levels found")

// Game implements the Sokoban puzzle game.
type Game struct {
	mode   Mode
	cfg    config.SokobanConfig
	loader *levels.Loader

	allLevels  []levels.Level
	levelIndex int
	level      levels.Level
	scene      *core.Scene
	startID    string

	// Screen dimensions
	screenW int
	screenH int

	// Status
	tick         uint64
	cleared      int // Levels solved this run
	levelCleared bool
	clearTicks   int
	won          bool
	paused       bool
	tooSmall     bool
	hintsUsed    int
	status       string // One-line feedback shown under the HUD

	// Hint cache, keyed by scene state. hintPath is the rest of a shortest
	// solution from hintFrom; hintDead is the last state the solver gave up on.
	hintPath     []core.Dir
	hintFrom     string
	hintDead     string
	hintSearches int
	loadErr      error
}

// Package-level settings, applied on the next Reset.
var (
	settingsMu   sync.Mutex
	startLevel   string
	configPath   string
	levelDir     string
	presetChoice config.DifficultyPreset
)

// SetStartLevel selects the level ID the next game starts at.
// It is consumed by the next Reset.
func SetStartLevel(id string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	startLevel = id
}

// SetConfigPath sets a custom config file. Empty uses the default search order.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetLevelDir overrides the configured level directory.
func SetLevelDir(dir string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	levelDir = dir
}

// SetDifficulty applies a difficulty preset on top of the loaded config.
func SetDifficulty(p config.DifficultyPreset) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	presetChoice = p
}

// takeSettings returns the current settings and consumes the start level.
func takeSettings() (start, path, dir string, preset config.DifficultyPreset) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	start = startLevel
	startLevel = ""
	return start, configPath, levelDir, presetChoice
}

func init() {
	registry.Register("sokoban", func() registry.Game {
		return New()
	})
	registry.Register("sokoban_single", func() registry.Game {
		return NewSingle()
	})
}

// New creates a campaign game that plays through the whole level set.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewSingle creates a game that plays one level only.
func NewSingle() *Game {
	return &Game{mode: ModeSingle}
}

// StartAt selects the level this game instance starts at on Reset.
// Unlike SetStartLevel it is not shared between games.
func (g *Game) StartAt(levelID string) {
	g.startID = levelID
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeSingle {
		return "sokoban_single"
	}
	return "sokoban"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeSingle {
		return "Sokoban (Single Level)"
	}
	return "Sokoban"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.cleared = 0
	g.won = false
	g.paused = false
	g.loadErr = nil
	g.scene = nil
	g.allLevels = nil

	start, path, dir, preset := takeSettings()
	g.cfg = loadConfig(path, preset)
	if dir != "" {
		g.cfg.Levels.Dir = dir
	}

	g.loader = levels.Builtin()
	if g.cfg.Levels.Dir != "" {
		g.loader = levels.NewLoader(g.cfg.Levels.Dir)
	}

	all, err := g.loader.LoadAll()
	if err == nil && len(all) == 0 {
		err = errNoLevels
	}
	if err != nil {
		g.loadErr = err
		return
	}
	g.allLevels = all

	// A restart replays from the level the run started at.
	if start == "" {
		start = g.startID
	}
	if start == "" {
		start = g.cfg.Levels.Start
	}
	g.startID = start

	g.levelIndex = 0
	if i := levels.IndexOf(all, start); i >= 0 {
		g.levelIndex = i
	}

	g.loadCurrentLevel()
}

// loadConfig loads the config file, falling back to built-in defaults.
func loadConfig(path string, preset config.DifficultyPreset) config.SokobanConfig {
	cfg, err := config.LoadSokoban(path)
	if err != nil {
		cfg = config.DefaultSokobanConfig()
	}
	if preset != "" {
		config.ApplySokobanPreset(&cfg, preset)
	}
	return cfg
}

// loadCurrentLevel builds a fresh scene for the level at levelIndex.
func (g *Game) loadCurrentLevel() {
	g.level = g.allLevels[g.levelIndex]

	scene, err := g.level.NewScene()
	if err != nil {
		g.loadErr = err
		return
	}
	g.scene = scene
	g.levelCleared = false
	g.clearTicks = 0
	g.hintsUsed = 0
	g.status = ""
	g.hintPath, g.hintFrom, g.hintDead = nil, "", ""

	g.checkScreenSize()
}

// Resize adapts to a new terminal size without touching progress.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough for the current level.
func (g *Game) checkScreenSize() {
	if g.scene == nil {
		g.tooSmall = false
		return
	}
	rows, cols := g.scene.Size()
	minW := platformcore.Max(cols*cellWidth+2, minScreenWidth)
	minH := rows + hudHeight + footerHeight
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.loadErr != nil || g.scene == nil || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.won {
		return platformcore.StepResult{State: g.State()}
	}

	if g.levelCleared {
		g.clearTicks++
		autoAdvance := g.cfg.Gameplay.AutoAdvance && g.clearTicks >= g.cfg.Gameplay.AdvanceDelayTicks
		if in.Has(platformcore.ActionConfirm) || autoAdvance {
			g.advanceLevel()
		}
		return platformcore.StepResult{State: g.State()}
	}

	moved := false
	switch {
	case in.Has(platformcore.ActionRestart):
		g.restartLevel()
	case in.Has(platformcore.ActionUndo):
		g.undo()
	case in.Has(platformcore.ActionHint):
		moved = g.hint()
	default:
		if d, ok := direction(in); ok {
			from := ""
			if len(g.hintPath) > 0 {
				from = g.scene.Key()
			}
			moved = g.scene.Move(d)
			if moved {
				g.status = ""
				g.followHint(from, d)
			}
		}
	}

	if !moved || !g.scene.IsSolved() {
		return platformcore.StepResult{State: g.State()}
	}

	g.levelCleared = true
	g.clearTicks = 0
	g.cleared++
	return platformcore.StepResult{
		State: g.State(),
		Cleared: &platformcore.LevelResult{
			LevelID: g.level.ID,
			Moves:   g.scene.Moves(),
			Pushes:  g.scene.Pushes(),
		},
	}
}

// direction picks the first movement action in the frame.
func direction(in platformcore.InputFrame) (core.Dir, bool) {
	switch {
	case in.Has(platformcore.ActionUp):
		return core.DirUp, true
	case in.Has(platformcore.ActionDown):
		return core.DirDown, true
	case in.Has(platformcore.ActionLeft):
		return core.DirLeft, true
	case in.Has(platformcore.ActionRight):
		return core.DirRight, true
	}
	return core.DirUp, false
}

// restartLevel reloads the current level from its layout.
func (g *Game) restartLevel() {
	if err := g.scene.Load(g.level.Rows); err != nil {
		g.loadErr = err
		return
	}
	g.hintsUsed = 0
	g.status = "Level restarted"
}

func (g *Game) undo() {
	if !g.cfg.Gameplay.UndoEnabled {
		g.status = "Undo is disabled"
		return
	}
	if !g.scene.Undo() {
		g.status = "Nothing to undo"
		return
	}
	g.status = ""
}

// hint plays one step of a shortest solution. Reports whether a move was made.
func (g *Game) hint() bool {
	if g.HintsLeft() == 0 {
		g.status = "No hints left"
		return false
	}

	from := g.scene.Key()
	d, ok := g.nextHint(from)
	if !ok {
		g.status = "No solution from here, try undo"
		return false
	}

	g.hintsUsed++
	g.status = "Hint: " + d.String()
	if !g.scene.Move(d) {
		g.hintPath, g.hintFrom = nil, ""
		return false
	}
	g.followHint(from, d)
	return true
}

// nextHint returns the next step of a shortest solution from state key.
// The solver only runs when neither the cached path nor the cached failure
// applies to key.
func (g *Game) nextHint(key string) (core.Dir, bool) {
	if key == g.hintDead {
		return core.DirUp, false
	}
	if key != g.hintFrom || len(g.hintPath) == 0 {
		g.hintSearches++
		path, ok := core.Solve(g.scene, g.cfg.Gameplay.SolveBudget)
		if !ok || len(path) == 0 {
			g.hintPath, g.hintFrom, g.hintDead = nil, "", key
			return core.DirUp, false
		}
		g.hintPath, g.hintFrom = path, key
	}
	return g.hintPath[0], true
}

// followHint advances the cached path after a move d from state from.
// Any other move drops it.
func (g *Game) followHint(from string, d core.Dir) {
	if len(g.hintPath) > 0 && from == g.hintFrom && g.hintPath[0] == d {
		g.hintPath = g.hintPath[1:]
		g.hintFrom = g.scene.Key()
		return
	}
	g.hintPath, g.hintFrom = nil, ""
}

// HintsLeft returns the remaining hints for this level, or -1 when unlimited.
func (g *Game) HintsLeft() int {
	budget := g.cfg.Gameplay.Hints
	if budget < 0 {
		return -1
	}
	return platformcore.Max(0, budget-g.hintsUsed)
}

// advanceLevel moves to the next level or ends the run.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.clearTicks = 0

	if g.mode == ModeSingle || g.levelIndex >= len(g.allLevels)-1 {
		g.won = true
		return
	}

	g.levelIndex++
	g.loadCurrentLevel()
}

// Level returns the level being played.
func (g *Game) Level() levels.Level {
	return g.level
}

// Err returns the error that stopped the game from loading, if any.
func (g *Game) Err() error {
	return g.loadErr
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.cleared,
		GameOver: g.won || g.loadErr != nil,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}
