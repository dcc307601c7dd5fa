package core

import "testing"

func TestSolveSample(t *testing.T) {
	s := mustLoad(t, sampleLayout)

	path, ok := Solve(s, 0)
	if !ok {
		t.Fatal("Solve should find a solution")
	}
	if len(path) != 5 {
		t.Errorf("len(path) = %d, want 5 (%s)", len(path), FormatPath(path))
	}

	// The input scene is untouched.
	if s.Moves() != 0 || s.Player() != C(1, 1) {
		t.Error("Solve modified the input scene")
	}

	for _, d := range path {
		if !s.Move(d) {
			t.Fatalf("solution step %v rejected", d)
		}
	}
	if !s.IsSolved() {
		t.Error("replaying the solution should solve the level")
	}
}

func TestSolveUnsolvable(t *testing.T) {
	// Case stuck in a corner.
	s := mustLoad(t, []string{
		"#####",
		"#o  #",
		"# i #",
		"#  x#",
		"#####",
	})

	if _, ok := Solve(s, 1000); ok {
		t.Error("cornered case should be unsolvable")
	}
}

func TestSolveAlreadySolved(t *testing.T) {
	s := mustLoad(t, []string{"#iO #"})

	path, ok := Solve(s, 10)
	if !ok || len(path) != 0 {
		t.Errorf("Solve() = (%v, %v), want empty path and true", path, ok)
	}
}

func TestSolveKeepsHistory(t *testing.T) {
	s := mustLoad(t, sampleLayout)
	s.MoveRight()

	path, ok := Solve(s, 0)
	if !ok {
		t.Fatal("Solve should find a solution")
	}
	if s.Moves() != 1 {
		t.Errorf("Moves() = %d after Solve, want 1", s.Moves())
	}
	for _, d := range path {
		s.Move(d)
	}
	if !s.IsSolved() {
		t.Errorf("path %s from a moved scene should solve it", FormatPath(path))
	}
}

func TestSceneKey(t *testing.T) {
	s := mustLoad(t, []string{"#i ox#"})
	before := s.Key()

	s.MoveRight()
	if s.Key() == before {
		t.Error("Key() should change when the player moves")
	}
	s.Undo()
	if s.Key() != before {
		t.Errorf("Key() = %q after undo, want %q", s.Key(), before)
	}
}

func TestFormatPath(t *testing.T) {
	path := []Dir{DirUp, DirRight, DirDown, DirLeft}
	if got := FormatPath(path); got != "urdl" {
		t.Errorf("FormatPath() = %q, want %q", got, "urdl")
	}
	if got := FormatPath(nil); got != "" {
		t.Errorf("FormatPath(nil) = %q, want empty", got)
	}
}
