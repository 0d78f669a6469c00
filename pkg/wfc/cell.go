package wfc

const noNeighbor = -1

// Rand is the random source consumed by collapse operations. Both
// *math/rand/v2.Rand and *core.RNG satisfy it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Cell is a superposition of candidate tiles. Neighbours are recorded as
// indices into the owning grid's cell slice, wired once at construction.
//
// A cell is unresolved with more than one option, collapsed with exactly
// one, and contradicted with none. The contradicted state is only
// surfaced when a collapse is attempted on the cell.
type Cell struct {
	options   []*Tile
	neighbors [numDirections]int
}

func newCell(initial []*Tile) Cell {
	c := Cell{options: append(make([]*Tile, 0, len(initial)), initial...)}
	for d := range c.neighbors {
		c.neighbors[d] = noNeighbor
	}
	return c
}

func (c *Cell) setNeighbor(d Direction, idx int) {
	c.neighbors[d] = idx
}

// Neighbor returns the grid index of the adjacent cell on side d.
func (c *Cell) Neighbor(d Direction) (int, bool) {
	idx := c.neighbors[d]
	return idx, idx != noNeighbor
}

// Entropy is the number of remaining options. Lower is more constrained.
func (c *Cell) Entropy() int { return len(c.options) }

// Collapsed reports whether exactly one option remains.
func (c *Cell) Collapsed() bool { return len(c.options) == 1 }

// Contradicted reports whether every option has been eliminated.
func (c *Cell) Contradicted() bool { return len(c.options) == 0 }

// CollapsedResult returns the single remaining option.
func (c *Cell) CollapsedResult() (*Tile, bool) {
	if !c.Collapsed() {
		return nil, false
	}
	return c.options[0], true
}

// Options returns a copy of the current candidates in catalog order.
func (c *Cell) Options() []*Tile {
	return append([]*Tile(nil), c.options...)
}

// collapseRandom replaces the options with one weighted draw from them.
// An empty option set yields ErrContradiction and is left empty.
func (c *Cell) collapseRandom(r Rand) (*Tile, error) {
	if len(c.options) == 0 {
		return nil, ErrContradiction
	}
	chosen := c.options[pickWeighted(c.options, r)]
	c.collapseTo(chosen)
	return chosen, nil
}

func (c *Cell) collapseTo(t *Tile) {
	clear(c.options[1:])
	c.options = append(c.options[:0], t)
}

func pickWeighted(options []*Tile, r Rand) int {
	total := 0.0
	for _, t := range options {
		total += t.Weight
	}
	if !(total > 0) {
		return r.IntN(len(options))
	}
	target := r.Float64() * total
	for i, t := range options {
		target -= t.Weight
		if target < 0 {
			return i
		}
	}
	// Rounding can leave a sliver of mass past the last option.
	return len(options) - 1
}

// filterAgainst drops every option whose socket on side d fits none of
// other's options. It reports whether anything was removed.
func (c *Cell) filterAgainst(d Direction, other *Cell) bool {
	opposite := d.Opposite()
	kept := c.options[:0]
	for _, opt := range c.options {
		socket := opt.Sockets[d]
		for _, theirs := range other.options {
			if Compatible(socket, theirs.Sockets[opposite]) {
				kept = append(kept, opt)
				break
			}
		}
	}
	removed := len(kept) != len(c.options)
	clear(c.options[len(kept):])
	c.options = kept
	return removed
}

// recalculateOptions intersects the options with what every wired
// neighbour in cells still allows. It reports whether the option count
// strictly decreased, which is the only case where neighbours need to be
// revisited.
func (c *Cell) recalculateOptions(cells []Cell) bool {
	before := len(c.options)
	for d := Up; d <= Left; d++ {
		idx, ok := c.Neighbor(d)
		if !ok {
			continue
		}
		c.filterAgainst(d, &cells[idx])
	}
	return len(c.options) < before
}

func (c *Cell) reset(catalog Catalog) {
	if cap(c.options) < len(catalog) {
		c.options = make([]*Tile, 0, len(catalog))
	}
	c.options = append(c.options[:0], catalog...)
}

func (c *Cell) copyOptionsFrom(src *Cell) {
	c.options = append(c.options[:0], src.options...)
}

func sameOptions(a, b *Cell) bool {
	if len(a.options) != len(b.options) {
		return false
	}
	for i := range a.options {
		if a.options[i] != b.options[i] {
			return false
		}
	}
	return true
}
