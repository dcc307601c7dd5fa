package core

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

var sampleLayout = []string{
	"#####",
	"#i  #",
	"# o #",
	"#  x#",
	"#####",
}

func mustLoad(t *testing.T, layout []string) *Scene {
	t.Helper()
	s := NewScene()
	if err := s.Load(layout); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return s
}

func TestSceneLoad(t *testing.T) {
	s := mustLoad(t, sampleLayout)

	if s.Player() != C(1, 1) {
		t.Errorf("Player() = %v, want (1,1)", s.Player())
	}
	if cell, _ := s.Cell(C(2, 2)); cell != Case {
		t.Errorf("Cell(2,2) = %v, want Case", cell)
	}
	if cell, _ := s.Cell(C(3, 3)); cell != Target {
		t.Errorf("Cell(3,3) = %v, want Target", cell)
	}
	if s.IsSolved() {
		t.Error("fresh level should not be solved")
	}
	if rows, cols := s.Size(); rows != 5 || cols != 5 {
		t.Errorf("Size() = (%d, %d), want (5, 5)", rows, cols)
	}
	if !reflect.DeepEqual(s.Rows(), sampleLayout) {
		t.Errorf("Rows() = %q, want %q", s.Rows(), sampleLayout)
	}
}

func TestSceneLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout []string
		want   error
	}{
		{"illegal char", []string{"#i@#"}, ErrIllegalChar},
		{"empty", nil, ErrEmptyLayout},
		{"no player", []string{"# o x #"}, ErrNoPlayer},
		{"two players", []string{"#i I#"}, ErrMultiplePlayers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustLoad(t, sampleLayout)
			before := s.Rows()

			err := s.Load(tt.layout)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Load error = %v, want %v", err, tt.want)
			}
			if !reflect.DeepEqual(s.Rows(), before) {
				t.Error("failed Load should leave the previous grid untouched")
			}
		})
	}
}

func TestSceneLoadErrorPosition(t *testing.T) {
	err := NewScene().Load([]string{"#i #", "# $#"})

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if le.Row != 1 || le.Col != 2 || le.Rune != '$' {
		t.Errorf("LoadError = %+v, want row 1 col 2 rune '$'", le)
	}
}

func TestSceneReloadClearsHistory(t *testing.T) {
	s := mustLoad(t, sampleLayout)
	s.MoveRight()
	if s.Moves() != 1 {
		t.Fatalf("Moves() = %d, want 1", s.Moves())
	}

	if err := s.Load(sampleLayout); err != nil {
		t.Fatal(err)
	}
	if s.Moves() != 0 || s.Undo() {
		t.Error("reload should start with empty history")
	}
}

func TestSceneSolveSample(t *testing.T) {
	s := mustLoad(t, sampleLayout)

	steps := []func() bool{s.MoveRight, s.MoveDown, s.MoveLeft, s.MoveDown, s.MoveRight}
	for i, step := range steps {
		if !step() {
			t.Fatalf("step %d rejected, grid:\n%q", i, s.Rows())
		}
	}

	if cell, _ := s.Cell(C(3, 3)); cell != CaseOnTarget {
		t.Errorf("Cell(3,3) = %v, want CaseOnTarget", cell)
	}
	if !s.IsSolved() {
		t.Error("level should be solved")
	}
	if s.Moves() != 5 {
		t.Errorf("Moves() = %d, want 5", s.Moves())
	}
	if s.Pushes() != 2 {
		t.Errorf("Pushes() = %d, want 2", s.Pushes())
	}
}

func TestSceneSingleRow(t *testing.T) {
	s := mustLoad(t, []string{"iox"})

	if s.IsSolved() {
		t.Fatal("should not start solved")
	}
	if !s.MoveRight() {
		t.Fatal("MoveRight should push the case onto the target")
	}
	if got := s.Rows()[0]; got != " iO" {
		t.Errorf("row = %q, want %q", got, " iO")
	}
	if !s.IsSolved() {
		t.Error("should be solved after one push")
	}

	// The next push would leave the grid.
	if s.MoveRight() {
		t.Error("MoveRight past the edge should be rejected")
	}
}

func TestSceneOutOfBoundsRejected(t *testing.T) {
	s := mustLoad(t, []string{" i "})

	for _, d := range Dirs {
		if s.Move(d) {
			t.Errorf("Move(%v) should be rejected without two cells of room", d)
		}
	}
	if s.Player() != C(0, 1) || s.Moves() != 0 {
		t.Error("rejected moves must not change the scene")
	}
}

func TestSceneRejectedMoveNoHistory(t *testing.T) {
	s := mustLoad(t, sampleLayout)
	before := s.Grid()

	if s.MoveUp() {
		t.Fatal("MoveUp into wall should fail")
	}
	if s.Moves() != 0 {
		t.Errorf("Moves() = %d, want 0", s.Moves())
	}
	if !reflect.DeepEqual(s.Grid(), before) {
		t.Error("rejected move changed the grid")
	}
}

func TestSceneUndoEmpty(t *testing.T) {
	s := mustLoad(t, sampleLayout)
	before := s.Grid()

	if s.Undo() {
		t.Error("Undo on empty history should report false")
	}
	if !reflect.DeepEqual(s.Grid(), before) || s.Player() != C(1, 1) {
		t.Error("Undo on empty history changed the scene")
	}
}

func TestSceneMoveUndoRoundTrip(t *testing.T) {
	layout := []string{
		"########",
		"#  x   #",
		"# o##o #",
		"#  i x #",
		"# o  o #",
		"#x   x #",
		"########",
	}
	s := mustLoad(t, layout)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		grid := s.Grid()
		player := s.Player()
		moves := s.Moves()

		d := Dirs[rng.Intn(len(Dirs))]
		if !s.Move(d) {
			continue
		}

		if s.Count(Player)+s.Count(PlayerOnTarget) != 1 {
			t.Fatalf("move %d: expected exactly one player", i)
		}
		if cell, _ := s.Cell(s.Player()); !cell.HasPlayer() {
			t.Fatalf("move %d: player coordinate %v holds %v", i, s.Player(), cell)
		}

		// Undo and redo every third move to exercise the inverse.
		if i%3 == 0 {
			if !s.Undo() {
				t.Fatal("Undo failed after a successful move")
			}
			if !reflect.DeepEqual(s.Grid(), grid) || s.Player() != player || s.Moves() != moves {
				t.Fatalf("move %d: undo did not restore the prior state", i)
			}
			s.Move(d)
		}
	}

	for s.Undo() {
	}
	if !reflect.DeepEqual(s.Rows(), layout) {
		t.Errorf("undoing everything = %q, want %q", s.Rows(), layout)
	}
}

func TestSceneCountsConserved(t *testing.T) {
	s := mustLoad(t, sampleLayout)
	cases := s.Count(Case) + s.Count(CaseOnTarget)

	for _, d := range []Dir{DirRight, DirDown, DirDown, DirLeft, DirDown, DirRight, DirUp} {
		s.Move(d)
		if got := s.Count(Case) + s.Count(CaseOnTarget); got != cases {
			t.Fatalf("after %v case count = %d, want %d", d, got, cases)
		}
	}
}

func TestSceneSolvedIgnoresCaseOnTarget(t *testing.T) {
	s := mustLoad(t, []string{"#iO x#"})
	if !s.IsSolved() {
		t.Error("no loose case: should be solved")
	}

	s = mustLoad(t, []string{"#iOo x#"})
	if s.IsSolved() {
		t.Error("one loose case: should not be solved")
	}
}

func TestSceneClone(t *testing.T) {
	s := mustLoad(t, sampleLayout)
	s.MoveRight()

	c := s.Clone()
	c.MoveDown()

	if s.Player() != C(1, 2) {
		t.Errorf("original player moved to %v", s.Player())
	}
	if c.Moves() != 2 || s.Moves() != 1 {
		t.Errorf("Moves() = %d/%d, want 2/1", c.Moves(), s.Moves())
	}
}

func TestSceneEmpty(t *testing.T) {
	s := NewScene()
	if rows, cols := s.Size(); rows != 0 || cols != 0 {
		t.Errorf("Size() = (%d, %d), want (0, 0)", rows, cols)
	}
	if s.MoveRight() {
		t.Error("move on empty scene should fail")
	}
	if _, ok := s.Cell(C(0, 0)); ok {
		t.Error("Cell on empty scene should report false")
	}
}
