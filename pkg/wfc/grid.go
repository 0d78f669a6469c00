// Package wfc implements a simplified Wave Function Collapse engine.
//
// A Grid holds one Cell per position, each starting as a superposition of
// every catalog tile. Collapsing the lowest-entropy cell commits it to a
// single tile by weighted draw, and a propagation wave then removes every
// neighbouring option whose facing socket no longer fits. A cell whose
// options run out is reported as a ContradictionError the next time a
// collapse lands on it; the only recovery is Reset.
//
// The propagation wave is a FIFO of cell indices. A cell re-queues its
// neighbours only when its own option count strictly shrank, so the sum of
// entropies drops on every productive hop and the wave terminates on any
// lattice, cycles included.
package wfc

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"tilewave/pkg/core"
)

// Grid is a fixed-size rectangle of cells. It owns the cells exclusively;
// neighbour links are indices into its own cell slice.
type Grid struct {
	lattice core.Lattice
	catalog Catalog
	cells   []Cell

	candidates []int
}

// New allocates a width x height grid with every cell seeded with the full
// catalog. It fails on a non-positive dimension or a catalog that does not
// pass Validate.
func New(catalog Catalog, width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return build(append(Catalog(nil), catalog...), width, height), nil
}

func build(catalog Catalog, width, height int) *Grid {
	g := &Grid{
		lattice: core.NewLattice(width, height),
		catalog: catalog,
	}
	g.cells = make([]Cell, g.lattice.Len())
	for i := range g.cells {
		g.cells[i] = newCell(catalog)
	}
	g.link()
	return g
}

// link wires every adjacent pair in both directions. Boundary cells keep
// noNeighbor on their outward sides.
func (g *Grid) link() {
	for y := 0; y < g.lattice.H; y++ {
		for x := 0; x < g.lattice.W; x++ {
			idx := g.lattice.Index(x, y)
			if right, ok := g.lattice.Step(x, y, 1, 0); ok {
				g.cells[idx].setNeighbor(Right, right)
				g.cells[right].setNeighbor(Left, idx)
			}
			if down, ok := g.lattice.Step(x, y, 0, 1); ok {
				g.cells[idx].setNeighbor(Down, down)
				g.cells[down].setNeighbor(Up, idx)
			}
		}
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.lattice.W }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.lattice.H }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Catalog returns the tiles the grid was built from.
func (g *Grid) Catalog() Catalog { return g.catalog }

// Index maps (x, y) to a cell index.
func (g *Grid) Index(x, y int) int { return g.lattice.Index(x, y) }

// Coord maps a cell index to (x, y).
func (g *Grid) Coord(idx int) (int, int) { return g.lattice.Coord(idx) }

// Cell returns the cell at (x, y) for inspection, or nil when out of bounds.
func (g *Grid) Cell(x, y int) *Cell {
	if !g.lattice.InBounds(x, y) {
		return nil
	}
	return &g.cells[g.lattice.Index(x, y)]
}

// At returns the cell with the given index.
func (g *Grid) At(idx int) *Cell { return &g.cells[idx] }

// Options returns a copy of the candidates at (x, y).
func (g *Grid) Options(x, y int) []*Tile {
	c := g.Cell(x, y)
	if c == nil {
		return nil
	}
	return c.Options()
}

// Each visits every cell in row-major order.
func (g *Grid) Each(fn func(x, y int, c *Cell)) {
	for i := range g.cells {
		x, y := g.lattice.Coord(i)
		fn(x, y, &g.cells[i])
	}
}

// CollapseLowestEntropy collapses one of the unresolved cells with the
// fewest options, chosen uniformly among ties. It is a no-op when every
// cell is collapsed. A *ContradictionError is returned when the chosen cell
// has no options; nothing is rolled back.
func (g *Grid) CollapseLowestEntropy(r Rand) error {
	lowest := -1
	for i := range g.cells {
		c := &g.cells[i]
		if c.Collapsed() {
			continue
		}
		if e := c.Entropy(); lowest < 0 || e < lowest {
			lowest = e
		}
	}
	if lowest < 0 {
		return nil
	}

	g.candidates = g.candidates[:0]
	for i := range g.cells {
		c := &g.cells[i]
		if !c.Collapsed() && c.Entropy() == lowest {
			g.candidates = append(g.candidates, i)
		}
	}
	return g.collapse(g.candidates[r.IntN(len(g.candidates))], r)
}

// CollapseAt collapses the cell at (x, y) by weighted draw and propagates.
func (g *Grid) CollapseAt(x, y int, r Rand) error {
	if !g.lattice.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	return g.collapse(g.lattice.Index(x, y), r)
}

func (g *Grid) collapse(idx int, r Rand) error {
	if _, err := g.cells[idx].collapseRandom(r); err != nil {
		x, y := g.lattice.Coord(idx)
		return &ContradictionError{X: x, Y: y}
	}
	g.propagate(idx)
	return nil
}

// Pin commits the cell at (x, y) to t, which must still be one of its
// options, and propagates the consequences.
func (g *Grid) Pin(x, y int, t *Tile) error {
	c := g.Cell(x, y)
	if c == nil {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	if c.Contradicted() {
		return &ContradictionError{X: x, Y: y}
	}
	found := false
	for _, opt := range c.options {
		if opt == t {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s at (%d,%d)", ErrNotAnOption, t, x, y)
	}
	c.collapseTo(t)
	g.propagate(g.lattice.Index(x, y))
	return nil
}

// Recalculate re-filters the cell at (x, y) against its neighbours and, if
// it lost options, runs the resulting wave. It reports whether the cell
// changed.
func (g *Grid) Recalculate(x, y int) bool {
	if !g.lattice.InBounds(x, y) {
		return false
	}
	idx := g.lattice.Index(x, y)
	if !g.cells[idx].recalculateOptions(g.cells) {
		return false
	}
	g.propagate(idx)
	return true
}

// propagate drains a work queue seeded with origin's neighbours. A cell
// sits in the queue at most once at a time.
func (g *Grid) propagate(origin int) {
	pending := queue.New[int]()
	queued := mapset.New[int]()
	enqueueNeighbors := func(idx int) {
		c := &g.cells[idx]
		for d := Up; d <= Left; d++ {
			n, ok := c.Neighbor(d)
			if !ok || queued.Has(n) {
				continue
			}
			queued.Put(n)
			pending.Enqueue(n)
		}
	}

	enqueueNeighbors(origin)
	for !pending.Empty() {
		idx := pending.Dequeue()
		queued.Remove(idx)
		if g.cells[idx].recalculateOptions(g.cells) {
			enqueueNeighbors(idx)
		}
	}
}

// Reset restores every cell to the full catalog.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i].reset(g.catalog)
	}
}

// Clone returns an independent grid with the same dimensions and catalog
// whose option sets are copied from g. The copy has its own neighbour
// wiring.
func (g *Grid) Clone() *Grid {
	dup := build(g.catalog, g.lattice.W, g.lattice.H)
	for i := range g.cells {
		dup.cells[i].copyOptionsFrom(&g.cells[i])
	}
	return dup
}

// Changed lists the indices whose options differ from prev. A grid with
// different dimensions counts as fully changed.
func (g *Grid) Changed(prev *Grid) []int {
	var out []int
	if prev == nil || prev.lattice != g.lattice {
		out = make([]int, len(g.cells))
		for i := range out {
			out[i] = i
		}
		return out
	}
	for i := range g.cells {
		if !sameOptions(&g.cells[i], &prev.cells[i]) {
			out = append(out, i)
		}
	}
	return out
}

// Done reports whether every cell is collapsed.
func (g *Grid) Done() bool {
	for i := range g.cells {
		if !g.cells[i].Collapsed() {
			return false
		}
	}
	return true
}

// Contradictions counts cells with no options left.
func (g *Grid) Contradictions() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Contradicted() {
			n++
		}
	}
	return n
}

// CollapsedCount counts cells with exactly one option.
func (g *Grid) CollapsedCount() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Collapsed() {
			n++
		}
	}
	return n
}

// TotalEntropy sums the option counts of every cell.
func (g *Grid) TotalEntropy() int {
	total := 0
	for i := range g.cells {
		total += g.cells[i].Entropy()
	}
	return total
}
