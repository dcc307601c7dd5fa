// Package core provides the rule engine for the Sokoban puzzle game.
// This package is UI-agnostic, deterministic and performs no I/O.
package core

// Cell is what occupies a single grid position.
// Every variant except Wall is a floor (Ground or Target) plus an optional
// occupant (Case or Player).
type Cell uint8

const (
	Ground Cell = iota
	Wall
	Target
	Case
	CaseOnTarget
	Player
	PlayerOnTarget
)

// Triple is three consecutive cells along the direction of travel:
// the player's cell, the cell one ahead and the cell two ahead.
type Triple [3]Cell

// String returns the name of the cell variant.
func (c Cell) String() string {
	switch c {
	case Ground:
		return "Ground"
	case Wall:
		return "Wall"
	case Target:
		return "Target"
	case Case:
		return "Case"
	case CaseOnTarget:
		return "CaseOnTarget"
	case Player:
		return "Player"
	case PlayerOnTarget:
		return "PlayerOnTarget"
	default:
		return "Unknown"
	}
}

// Rune returns the layout character for the cell.
func (c Cell) Rune() rune {
	switch c {
	case Ground:
		return ' '
	case Wall:
		return '#'
	case Target:
		return 'x'
	case Case:
		return 'o'
	case CaseOnTarget:
		return 'O'
	case Player:
		return 'i'
	case PlayerOnTarget:
		return 'I'
	default:
		return '?'
	}
}

// ParseCell maps a layout character to its cell.
func ParseCell(r rune) (Cell, bool) {
	switch r {
	case ' ':
		return Ground, true
	case '#':
		return Wall, true
	case 'x':
		return Target, true
	case 'o':
		return Case, true
	case 'O':
		return CaseOnTarget, true
	case 'i':
		return Player, true
	case 'I':
		return PlayerOnTarget, true
	default:
		return Ground, false
	}
}

// IsFloor reports whether the cell is bare ground or a bare target.
func (c Cell) IsFloor() bool {
	return c == Ground || c == Target
}

// HasPlayer reports whether the player stands on this cell.
func (c Cell) HasPlayer() bool {
	return c == Player || c == PlayerOnTarget
}

// HasCase reports whether a case sits on this cell.
func (c Cell) HasCase() bool {
	return c == Case || c == CaseOnTarget
}

// Decompose splits a cell into its floor and its occupant.
// Cells without an occupant (including Wall) return themselves paired with
// Ground, which stands for "nothing".
func Decompose(c Cell) (floor, occupant Cell) {
	switch c {
	case Case:
		return Ground, Case
	case CaseOnTarget:
		return Target, Case
	case Player:
		return Ground, Player
	case PlayerOnTarget:
		return Target, Player
	default:
		return c, Ground
	}
}

// Overlay places an occupant onto a floor.
// A non-floor first argument is returned unchanged, so a Wall never absorbs
// anything; the volume check in Shift then rejects the move.
func Overlay(floor, occupant Cell) Cell {
	switch floor {
	case Ground:
		switch occupant {
		case Case:
			return Case
		case Player:
			return Player
		default:
			return Ground
		}
	case Target:
		switch occupant {
		case Case:
			return CaseOnTarget
		case Player:
			return PlayerOnTarget
		default:
			return Target
		}
	default:
		return floor
	}
}

// Volume is 0 for bare floors and 1 for everything else, walls included.
func Volume(c Cell) int {
	if c.IsFloor() {
		return 0
	}
	return 1
}

func (t Triple) volume() int {
	return Volume(t[0]) + Volume(t[1]) + Volume(t[2])
}

// Shift moves the occupant of the first cell one step forward, pushing
// whatever stood in the middle cell onto the last one.
// The move is legal only when the total volume of the triple is unchanged.
// On failure the original triple is returned with ok == false.
func Shift(t Triple) (Triple, bool) {
	lFloor, lOccupant := Decompose(t[0])
	mFloor, mOccupant := Decompose(t[1])

	shifted := Triple{
		lFloor,
		Overlay(mFloor, lOccupant),
		Overlay(t[2], mOccupant),
	}

	if shifted.volume() != t.volume() {
		return t, false
	}
	return shifted, true
}
