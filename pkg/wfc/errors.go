package wfc

import (
	"errors"
	"fmt"
)

var (
	// ErrContradiction indicates a cell ran out of options.
	ErrContradiction = errors.New("wfc: contradiction - no options left for cell")
	// ErrInvalidSize indicates a non-positive grid dimension.
	ErrInvalidSize = errors.New("wfc: grid width and height must be positive")
	// ErrEmptyCatalog indicates a catalog with no tiles.
	ErrEmptyCatalog = errors.New("wfc: catalog has no tiles")
	// ErrDuplicateTile indicates two catalog tiles share an id.
	ErrDuplicateTile = errors.New("wfc: duplicate tile id")
	// ErrInvalidWeight indicates a tile weight that is not a positive finite number.
	ErrInvalidWeight = errors.New("wfc: tile weight must be positive")
	// ErrNotAnOption indicates a pin request for a tile the cell no longer allows.
	ErrNotAnOption = errors.New("wfc: tile is not an option for cell")
	// ErrOutOfBounds indicates coordinates outside the grid.
	ErrOutOfBounds = errors.New("wfc: coordinates out of bounds")
)

// ContradictionError reports the cell whose option set was empty when a
// collapse was attempted. It matches ErrContradiction under errors.Is.
type ContradictionError struct {
	X, Y int
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("wfc: contradiction at (%d,%d) - no options left for cell", e.X, e.Y)
}

func (e *ContradictionError) Unwrap() error { return ErrContradiction }
