package catalog

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sort"

	"tilewave/pkg/wfc"
)

// Factory builds a built-in Set at the given integer scale.
type Factory func(scale int) (*Set, error)

var builtins = map[string]Factory{}

// Register adds a built-in set under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	builtins[name] = f
}

// Builtins returns the registered built-in names in sorted order.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin constructs the named built-in set.
func Builtin(name string, scale int) (*Set, error) {
	f, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuiltin, name)
	}
	return f(scale)
}

// maskPixels is the edge length of one mask cell in the unscaled image.
const maskPixels = 4

// maskTile describes a tile as a 3x3 grid of '#' (on) and '.' (off).
type maskTile struct {
	name      string
	rows      [3]string
	rotations []int
	weight    float64
}

// palette maps mask states to colours and socket characters.
type palette struct {
	on, off             color.RGBA
	onSocket, offSocket byte
}

// sockets reads the mask border clockwise from the top-left corner. Each
// side shares its corner samples with its neighbours.
func (p palette) sockets(rows [3]string) wfc.Sockets {
	ring := make([]byte, 0, 9)
	for _, rc := range [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}, {2, 1}, {2, 0}, {1, 0}, {0, 0}} {
		if rows[rc[0]][rc[1]] == '#' {
			ring = append(ring, p.onSocket)
		} else {
			ring = append(ring, p.offSocket)
		}
	}
	return wfc.Sockets{
		wfc.Up:    wfc.Socket(ring[0:3]),
		wfc.Right: wfc.Socket(ring[2:5]),
		wfc.Down:  wfc.Socket(ring[4:7]),
		wfc.Left:  wfc.Socket(ring[6:9]),
	}
}

func (p palette) image(rows [3]string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 3*maskPixels, 3*maskPixels))
	for r, row := range rows {
		for c := 0; c < 3; c++ {
			col := p.off
			if row[c] == '#' {
				col = p.on
			}
			block := image.Rect(c*maskPixels, r*maskPixels, (c+1)*maskPixels, (r+1)*maskPixels)
			draw.Draw(img, block, &image.Uniform{C: col}, image.Point{}, draw.Src)
		}
	}
	return img
}

func maskSet(name string, tiles []maskTile, p palette, scale int) (*Set, error) {
	sources := make([]source, 0, len(tiles))
	for _, t := range tiles {
		rotations := t.rotations
		if rotations == nil {
			rotations = []int{0}
		}
		sources = append(sources, source{
			name:      t.name,
			img:       p.image(t.rows),
			sockets:   p.sockets(t.rows),
			rotations: rotations,
			weight:    t.weight,
		})
	}
	return assemble(name, sources, nil, scale)
}

var allTurns = []int{0, 1, 2, 3}

// pipeTiles enumerates every combination of open sides, so any neighbourhood
// has a fitting tile and the set never contradicts.
func pipeTiles() []maskTile {
	tiles := make([]maskTile, 0, 16)
	for mask := 0; mask < 16; mask++ {
		rows := [3]string{"...", "...", "..."}
		set := func(r, c int) {
			b := []byte(rows[r])
			b[c] = '#'
			rows[r] = string(b)
		}
		if mask != 0 {
			set(1, 1)
		}
		if mask&(1<<wfc.Up) != 0 {
			set(0, 1)
		}
		if mask&(1<<wfc.Right) != 0 {
			set(1, 2)
		}
		if mask&(1<<wfc.Down) != 0 {
			set(2, 1)
		}
		if mask&(1<<wfc.Left) != 0 {
			set(1, 0)
		}
		weight := 1.0
		switch mask {
		case 0:
			weight = 2
		case 1, 2, 4, 8:
			weight = 0.25
		}
		tiles = append(tiles, maskTile{name: fmt.Sprintf("pipe-%x", mask), rows: rows, weight: weight})
	}
	return tiles
}

func coastTiles() []maskTile {
	return []maskTile{
		{name: "land", rows: [3]string{"###", "###", "###"}, weight: 3},
		{name: "water", rows: [3]string{"...", "...", "..."}, weight: 3},
		{name: "shore", rows: [3]string{"###", "...", "..."}, rotations: allTurns, weight: 1},
		{name: "cape", rows: [3]string{"#..", "...", "..."}, rotations: allTurns, weight: 0.5},
		{name: "bay", rows: [3]string{"###", "###", "##."}, rotations: allTurns, weight: 0.5},
	}
}

func init() {
	Register("pipes", func(scale int) (*Set, error) {
		return maskSet("pipes", pipeTiles(), palette{
			on:       color.RGBA{R: 0x3c, G: 0xc8, B: 0xe6, A: 0xff},
			off:      color.RGBA{R: 0x14, G: 0x14, B: 0x1e, A: 0xff},
			onSocket: '1', offSocket: '0',
		}, scale)
	})
	Register("coast", func(scale int) (*Set, error) {
		return maskSet("coast", coastTiles(), palette{
			on:       color.RGBA{R: 0x4c, G: 0xa0, B: 0x3c, A: 0xff},
			off:      color.RGBA{R: 0x28, G: 0x5a, B: 0xb4, A: 0xff},
			onSocket: 'g', offSocket: 'w',
		}, scale)
	})
}
