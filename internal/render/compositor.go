// Package render turns grid state into pixels: a CPU compositor that blends
// each cell's remaining candidates, PNG and text output, and (with the
// ebiten tag) an on-screen painter.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"tilewave/internal/catalog"
	"tilewave/pkg/wfc"
)

var (
	// DefaultBackground fills cells when the set has no background image.
	DefaultBackground = color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xff}
	// ContradictionColor marks cells with no options left.
	ContradictionColor = color.RGBA{R: 0xe0, G: 0x20, B: 0x40, A: 0xff}
)

// Compositor paints a grid into an RGBA image, one CellSize square per cell.
// Unresolved cells show the weight-proportional blend of their candidates
// over the background.
type Compositor struct {
	set   *catalog.Set
	cols  int
	rows  int
	cell  int
	img   *image.RGBA
	tiles []*image.RGBA
	bg    *image.RGBA
	acc   []float64
}

// NewCompositor prepares a canvas for a cols x rows grid drawn with set.
func NewCompositor(set *catalog.Set, cols, rows int) *Compositor {
	size := set.CellSize
	c := &Compositor{
		set:   set,
		cols:  cols,
		rows:  rows,
		cell:  size,
		img:   image.NewRGBA(image.Rect(0, 0, cols*size, rows*size)),
		tiles: make([]*image.RGBA, len(set.Images)),
		acc:   make([]float64, 4*size*size),
	}
	for i, img := range set.Images {
		c.tiles[i] = toRGBA(img, size)
	}
	if set.Background != nil {
		c.bg = toRGBA(set.Background, size)
	} else {
		c.bg = image.NewRGBA(image.Rect(0, 0, size, size))
		draw.Draw(c.bg, c.bg.Bounds(), &image.Uniform{C: DefaultBackground}, image.Point{}, draw.Src)
	}
	return c
}

func toRGBA(img image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}

// Image returns the canvas. It is updated in place by Redraw and Update.
func (c *Compositor) Image() *image.RGBA { return c.img }

// Redraw repaints every cell of g.
func (c *Compositor) Redraw(g *wfc.Grid) {
	for idx := 0; idx < g.Len(); idx++ {
		c.paint(g, idx)
	}
}

// Update repaints only the cells of g whose options differ from prev and
// returns how many were painted.
func (c *Compositor) Update(g, prev *wfc.Grid) int {
	changed := g.Changed(prev)
	for _, idx := range changed {
		c.paint(g, idx)
	}
	return len(changed)
}

func (c *Compositor) paint(g *wfc.Grid, idx int) {
	x, y := g.Coord(idx)
	if x >= c.cols || y >= c.rows {
		return
	}
	rect := image.Rect(x*c.cell, y*c.cell, (x+1)*c.cell, (y+1)*c.cell)
	options := g.At(idx).Options()
	if len(options) == 0 {
		draw.Draw(c.img, rect, &image.Uniform{C: ContradictionColor}, image.Point{}, draw.Src)
		return
	}

	total := 0.0
	for _, t := range options {
		total += t.Weight
	}

	for i := range c.acc {
		c.acc[i] = 0
	}
	for _, t := range options {
		i := c.set.IndexOf(t)
		if i < 0 {
			continue
		}
		w := 1 / float64(len(options))
		if total > 0 {
			w = t.Weight / total
		}
		pix := c.tiles[i].Pix
		for p := range c.acc {
			c.acc[p] += w * float64(pix[p])
		}
	}

	// Source over background, in premultiplied space.
	row := 4 * c.cell
	for py := 0; py < c.cell; py++ {
		dst := c.img.Pix[c.img.PixOffset(rect.Min.X, rect.Min.Y+py):]
		bg := c.bg.Pix[py*row:]
		acc := c.acc[py*row:]
		for px := 0; px < row; px += 4 {
			inv := 1 - acc[px+3]/255
			dst[px+0] = clamp8(acc[px+0] + float64(bg[px+0])*inv)
			dst[px+1] = clamp8(acc[px+1] + float64(bg[px+1])*inv)
			dst[px+2] = clamp8(acc[px+2] + float64(bg[px+2])*inv)
			dst[px+3] = clamp8(acc[px+3] + float64(bg[px+3])*inv)
		}
	}
}

func clamp8(v float64) uint8 {
	v += 0.5
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
