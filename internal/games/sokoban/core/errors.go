package core

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalChar is returned when a layout holds a character outside
	// the level vocabulary.
	ErrIllegalChar = errors.New("illegal character in layout")

	// ErrEmptyLayout is returned when a layout has no rows.
	ErrEmptyLayout = errors.New("empty layout")

	// ErrNoPlayer is returned when a layout has no player cell.
	ErrNoPlayer = errors.New("layout has no player")

	// ErrMultiplePlayers is returned when a layout has more than one player cell.
	ErrMultiplePlayers = errors.New("layout has more than one player")
)

// LoadError locates a layout failure.
type LoadError struct {
	Row  int
	Col  int
	Rune rune
	Err  error
}

func (e *LoadError) Error() string {
	if e.Rune != 0 {
		return fmt.Sprintf("row %d col %d: %v %q", e.Row, e.Col, e.Err, e.Rune)
	}
	return fmt.Sprintf("row %d col %d: %v", e.Row, e.Col, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ValidationError contains details about a level validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}
