package core

import "strings"

// Record is one undo entry: the three coordinates a move touched and
// their cells before the move.
type Record struct {
	From   Coord
	Mid    Coord
	Far    Coord
	Before Triple
}

// Scene is the mutable puzzle state: the grid, the player position and the
// move history. A Scene is owned by a single session and is not safe for
// concurrent use.
type Scene struct {
	grid    [][]Cell
	player  Coord
	history []Record
}

// NewScene creates an empty scene. Call Load before moving.
func NewScene() *Scene {
	return &Scene{}
}

// Load parses a layout and starts a fresh session.
// On error the scene is left exactly as it was.
func (s *Scene) Load(layout []string) error {
	if len(layout) == 0 {
		return ErrEmptyLayout
	}

	grid := make([][]Cell, len(layout))
	var player Coord
	players := 0

	for r, row := range layout {
		runes := []rune(row)
		cells := make([]Cell, len(runes))
		for c, ch := range runes {
			cell, ok := ParseCell(ch)
			if !ok {
				return &LoadError{Row: r, Col: c, Rune: ch, Err: ErrIllegalChar}
			}
			if cell.HasPlayer() {
				players++
				if players > 1 {
					return &LoadError{Row: r, Col: c, Err: ErrMultiplePlayers}
				}
				player = C(r, c)
			}
			cells[c] = cell
		}
		grid[r] = cells
	}

	if players == 0 {
		return ErrNoPlayer
	}

	s.grid = grid
	s.player = player
	s.history = nil
	return nil
}

// inBounds reports whether c addresses an existing cell. Rows may differ
// in length, so the column is checked against its own row.
func (s *Scene) inBounds(c Coord) bool {
	if c.Row < 0 || c.Row >= len(s.grid) {
		return false
	}
	return c.Col >= 0 && c.Col < len(s.grid[c.Row])
}

func (s *Scene) at(c Coord) Cell {
	return s.grid[c.Row][c.Col]
}

func (s *Scene) set(c Coord, cell Cell) {
	s.grid[c.Row][c.Col] = cell
}

// Move tries to walk the player one cell in direction d, pushing a case if
// one is in the way. A move that would reach past the grid edge is rejected
// like any other illegal move. Returns whether the move happened.
func (s *Scene) Move(d Dir) bool {
	from := s.player
	mid := from.Step(d)
	far := mid.Step(d)

	if len(s.grid) == 0 || !s.inBounds(mid) || !s.inBounds(far) {
		return false
	}

	before := Triple{s.at(from), s.at(mid), s.at(far)}
	after, ok := Shift(before)
	if !ok {
		return false
	}

	s.set(from, after[0])
	s.set(mid, after[1])
	s.set(far, after[2])
	s.player = mid
	s.history = append(s.history, Record{From: from, Mid: mid, Far: far, Before: before})
	return true
}

// MoveUp moves the player one row up.
func (s *Scene) MoveUp() bool { return s.Move(DirUp) }

// MoveDown moves the player one row down.
func (s *Scene) MoveDown() bool { return s.Move(DirDown) }

// MoveLeft moves the player one column left.
func (s *Scene) MoveLeft() bool { return s.Move(DirLeft) }

// MoveRight moves the player one column right.
func (s *Scene) MoveRight() bool { return s.Move(DirRight) }

// Undo reverts the most recent successful move.
// Returns false, changing nothing, when there is no history.
func (s *Scene) Undo() bool {
	n := len(s.history)
	if n == 0 {
		return false
	}

	rec := s.history[n-1]
	s.history = s.history[:n-1]

	s.set(rec.From, rec.Before[0])
	s.set(rec.Mid, rec.Before[1])
	s.set(rec.Far, rec.Before[2])
	s.player = rec.From
	return true
}

// IsSolved reports whether no case is left off a target.
func (s *Scene) IsSolved() bool {
	for _, row := range s.grid {
		for _, cell := range row {
			if cell == Case {
				return false
			}
		}
	}
	return true
}

// Size returns the number of rows and the length of the first row.
// The grid is assumed rectangular.
func (s *Scene) Size() (rows, cols int) {
	if len(s.grid) == 0 {
		return 0, 0
	}
	return len(s.grid), len(s.grid[0])
}

// Player returns the player's position.
func (s *Scene) Player() Coord {
	return s.player
}

// Cell returns the cell at c, or false when c is outside the grid.
func (s *Scene) Cell(c Coord) (Cell, bool) {
	if !s.inBounds(c) {
		return Ground, false
	}
	return s.at(c), true
}

// Grid returns a copy of the grid.
func (s *Scene) Grid() [][]Cell {
	grid := make([][]Cell, len(s.grid))
	for r, row := range s.grid {
		grid[r] = append([]Cell(nil), row...)
	}
	return grid
}

// Rows encodes the grid back into layout text.
func (s *Scene) Rows() []string {
	rows := make([]string, len(s.grid))
	var sb strings.Builder
	for r, row := range s.grid {
		sb.Reset()
		for _, cell := range row {
			sb.WriteRune(cell.Rune())
		}
		rows[r] = sb.String()
	}
	return rows
}

// Moves returns the number of moves that can still be undone.
func (s *Scene) Moves() int {
	return len(s.history)
}

// Pushes returns how many of the recorded moves pushed a case.
func (s *Scene) Pushes() int {
	n := 0
	for _, rec := range s.history {
		if rec.Before[1].HasCase() {
			n++
		}
	}
	return n
}

// History returns a copy of the undo records, oldest first.
func (s *Scene) History() []Record {
	return append([]Record(nil), s.history...)
}

// Count returns how many cells hold the given variant.
func (s *Scene) Count(cell Cell) int {
	n := 0
	for _, row := range s.grid {
		for _, c := range row {
			if c == cell {
				n++
			}
		}
	}
	return n
}

// Clone returns an independent deep copy of the scene, history included.
func (s *Scene) Clone() *Scene {
	return &Scene{
		grid:    s.Grid(),
		player:  s.player,
		history: s.History(),
	}
}
