package core

import (
	"fmt"
	"unicode/utf8"
)

// ValidateLayout checks that a layout is a playable puzzle.
// Checks:
//   - Layout loads (vocabulary, exactly one player)
//   - Rows are of equal length
//   - At least one case, and no more cases than targets
//   - The player cannot walk off the grid
//   - The puzzle does not start solved
func ValidateLayout(layout []string) error {
	s := NewScene()
	if err := s.Load(layout); err != nil {
		return err
	}

	if err := validateRectangular(layout); err != nil {
		return err
	}

	if err := validateCounts(s); err != nil {
		return err
	}

	if err := validateSealed(s); err != nil {
		return err
	}

	if s.IsSolved() {
		return ValidationError{
			Code:    "ALREADY_SOLVED",
			Message: "every case already sits on a target",
		}
	}

	return nil
}

func validateRectangular(layout []string) error {
	width := utf8.RuneCountInString(layout[0])
	for i, row := range layout {
		if n := utf8.RuneCountInString(row); n != width {
			return ValidationError{
				Code:    "RAGGED",
				Message: fmt.Sprintf("row %d has %d columns, expected %d", i, n, width),
			}
		}
	}
	return nil
}

func validateCounts(s *Scene) error {
	cases := s.Count(Case) + s.Count(CaseOnTarget)
	targets := s.Count(Target) + s.Count(CaseOnTarget) + s.Count(PlayerOnTarget)

	if cases == 0 {
		return ValidationError{
			Code:    "NO_CASES",
			Message: "layout has no cases",
		}
	}

	if targets < cases {
		return ValidationError{
			Code:    "TOO_FEW_TARGETS",
			Message: fmt.Sprintf("%d cases but only %d targets", cases, targets),
		}
	}

	return nil
}

// validateSealed flood-fills from the player through every non-wall cell
// and fails if the fill reaches the outer edge of the grid.
func validateSealed(s *Scene) error {
	rows := len(s.grid)
	seen := make(map[Coord]bool)
	stack := []Coord{s.player}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seen[c] {
			continue
		}
		seen[c] = true

		if c.Row == 0 || c.Row == rows-1 || c.Col == 0 || c.Col == len(s.grid[c.Row])-1 {
			return ValidationError{
				Code:    "OPEN_BORDER",
				Message: fmt.Sprintf("cell %s on the grid edge is reachable", c),
			}
		}

		for _, d := range Dirs {
			next := c.Step(d)
			if cell, ok := s.Cell(next); ok && cell != Wall && !seen[next] {
				stack = append(stack, next)
			}
		}
	}

	return nil
}
