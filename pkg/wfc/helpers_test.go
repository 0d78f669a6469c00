package wfc

import "fmt"

// pipeCatalog returns all 16 pipe pieces: every combination of open ("1")
// and closed ("0") sides. Any mix of side requirements has a matching
// piece, so grids built from it never contradict.
func pipeCatalog() Catalog {
	cat := make(Catalog, 0, 16)
	for mask := 0; mask < 16; mask++ {
		var s Sockets
		for d := Up; d <= Left; d++ {
			s[d] = "0"
			if mask&(1<<d) != 0 {
				s[d] = "1"
			}
		}
		cat = append(cat, NewTile(fmt.Sprintf("pipe-%x", mask), s))
	}
	return cat
}

// uniformCatalog returns n tiles that fit against each other on every side.
func uniformCatalog(n int) Catalog {
	cat := make(Catalog, n)
	for i := range cat {
		cat[i] = NewTile(fmt.Sprintf("t%d", i), Sockets{"a", "a", "a", "a"})
	}
	return cat
}

// stubRand replays fixed draws, repeating the last value once exhausted.
type stubRand struct {
	ints   []int
	floats []float64
}

func (s *stubRand) IntN(n int) int {
	v := 0
	if len(s.ints) > 0 {
		v = s.ints[0]
		if len(s.ints) > 1 {
			s.ints = s.ints[1:]
		}
	}
	if v >= n {
		v = n - 1
	}
	return v
}

func (s *stubRand) Float64() float64 {
	v := 0.0
	if len(s.floats) > 0 {
		v = s.floats[0]
		if len(s.floats) > 1 {
			s.floats = s.floats[1:]
		}
	}
	return v
}

func entropies(g *Grid) []int {
	out := make([]int, g.Len())
	for i := range out {
		out[i] = g.At(i).Entropy()
	}
	return out
}
