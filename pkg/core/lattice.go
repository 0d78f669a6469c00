package core

// Lattice maps 2D coordinates onto a row-major slice index. It has no
// wraparound: coordinates outside [0,W)x[0,H) have no index.
type Lattice struct {
	W, H int
}

// NewLattice returns a lattice with the given dimensions. Non-positive
// dimensions produce an empty lattice.
func NewLattice(w, h int) Lattice {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Lattice{W: w, H: h}
}

// Len returns the number of positions.
func (l Lattice) Len() int { return l.W * l.H }

// Index returns the linear slice index for coordinates (x, y).
func (l Lattice) Index(x, y int) int { return y*l.W + x }

// Coord converts a linear index back to (x, y).
func (l Lattice) Coord(idx int) (int, int) {
	if l.W == 0 {
		return 0, 0
	}
	return idx % l.W, idx / l.W
}

// InBounds reports whether (x, y) lies inside the lattice.
func (l Lattice) InBounds(x, y int) bool {
	return x >= 0 && x < l.W && y >= 0 && y < l.H
}

// Step returns the index reached by moving (dx, dy) from (x, y).
func (l Lattice) Step(x, y, dx, dy int) (int, bool) {
	nx, ny := x+dx, y+dy
	if !l.InBounds(nx, ny) {
		return 0, false
	}
	return l.Index(nx, ny), true
}
