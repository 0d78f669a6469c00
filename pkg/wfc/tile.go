package wfc

import (
	"fmt"
	"math"
)

// DefaultWeight is the selection weight of a tile that does not set one.
const DefaultWeight = 1.0

// Tile is an immutable catalog entry. Cells share tiles by pointer and
// never modify them.
type Tile struct {
	ID      string
	Sockets Sockets
	Weight  float64
}

// NewTile returns a tile with DefaultWeight.
func NewTile(id string, sockets Sockets) *Tile {
	return &Tile{ID: id, Sockets: sockets, Weight: DefaultWeight}
}

// Socket returns the tile's socket on side d.
func (t *Tile) Socket(d Direction) Socket { return t.Sockets[d] }

// Fits reports whether other may sit on side d of t.
func (t *Tile) Fits(d Direction, other *Tile) bool {
	return Compatible(t.Sockets[d], other.Sockets[d.Opposite()])
}

func (t *Tile) String() string { return t.ID }

// Catalog is the ordered set of tiles a grid draws from.
type Catalog []*Tile

// Validate checks the catalog is usable: at least one tile, unique ids and
// positive finite weights.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[string]struct{}, len(c))
	for i, t := range c {
		if t == nil {
			return fmt.Errorf("wfc: catalog entry %d is nil", i)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateTile, t.ID)
		}
		seen[t.ID] = struct{}{}
		if t.Weight <= 0 || math.IsInf(t.Weight, 0) || math.IsNaN(t.Weight) {
			return fmt.Errorf("%w: %q has weight %v", ErrInvalidWeight, t.ID, t.Weight)
		}
	}
	return nil
}

// IndexOf returns the catalog position of t, or -1.
func (c Catalog) IndexOf(t *Tile) int {
	for i, candidate := range c {
		if candidate == t {
			return i
		}
	}
	return -1
}

// Lookup finds a tile by id.
func (c Catalog) Lookup(id string) (*Tile, bool) {
	for _, t := range c {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}
