package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tilewave/internal/catalog"
	"tilewave/pkg/wfc"
)

const cell = 4

func solid(c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, cell, cell))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

var (
	red   = color.RGBA{R: 0xff, A: 0xff}
	blue  = color.RGBA{B: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, A: 0xff}
)

// testSet has red (weight 1) and blue (weight 3) that fit anywhere, and a
// green tile that fits nothing.
func testSet(t *testing.T) *catalog.Set {
	t.Helper()
	open := wfc.Sockets{"a", "a", "a", "a"}
	tiles := wfc.Catalog{
		{ID: "red", Sockets: open, Weight: 1},
		{ID: "blue", Sockets: open, Weight: 3},
		{ID: "green", Sockets: wfc.Sockets{"xy", "xy", "xy", "xy"}, Weight: 1},
	}
	set, err := catalog.NewSet("test", tiles, []image.Image{solid(red), solid(blue), solid(green)}, nil)
	require.NoError(t, err)
	return set
}

func mustTile(t *testing.T, c wfc.Catalog, id string) *wfc.Tile {
	t.Helper()
	tile, ok := c.Lookup(id)
	require.True(t, ok, "tile %q", id)
	return tile
}

func TestCompositorBlendsByWeight(t *testing.T) {
	set := testSet(t)
	g, err := wfc.New(set.Tiles, 3, 1)
	require.NoError(t, err)

	comp := NewCompositor(set, 3, 1)
	comp.Redraw(g)
	img := comp.Image()
	assert.Equal(t, image.Rect(0, 0, 3*cell, cell), img.Bounds())
	// red, blue and green at 1:3:1
	assert.Equal(t, color.RGBA{R: 51, G: 51, B: 153, A: 255}, img.RGBAAt(1, 1))

	// Pinning red rules green out of the other cells, leaving red and blue at 1:3.
	require.NoError(t, g.Pin(0, 0, mustTile(t, set.Tiles, "red")))
	comp.Redraw(g)
	assert.Equal(t, red, img.RGBAAt(1, 1), "collapsed cell shows its tile")
	assert.Equal(t, color.RGBA{R: 64, B: 191, A: 255}, img.RGBAAt(cell+1, 1))
	assert.Equal(t, color.RGBA{R: 64, B: 191, A: 255}, img.RGBAAt(2*cell+3, 3))
}

func TestCompositorMarksContradictions(t *testing.T) {
	set := testSet(t)
	g, err := wfc.New(set.Tiles, 2, 1)
	require.NoError(t, err)
	// green fits nothing: its neighbour empties, and the emptiness spreads back.
	require.NoError(t, g.Pin(0, 0, mustTile(t, set.Tiles, "green")))
	require.Equal(t, 2, g.Contradictions())

	comp := NewCompositor(set, 2, 1)
	comp.Redraw(g)
	assert.Equal(t, ContradictionColor, comp.Image().RGBAAt(0, 0))
	assert.Equal(t, ContradictionColor, comp.Image().RGBAAt(cell, 0))
}

func TestCompositorShowsBackgroundThroughTransparentTiles(t *testing.T) {
	tiles := wfc.Catalog{{ID: "clear", Sockets: wfc.Sockets{"a", "a", "a", "a"}, Weight: 1}}
	set, err := catalog.NewSet("clear", tiles, []image.Image{image.NewRGBA(image.Rect(0, 0, cell, cell))}, nil)
	require.NoError(t, err)
	g, err := wfc.New(set.Tiles, 1, 1)
	require.NoError(t, err)

	comp := NewCompositor(set, 1, 1)
	comp.Redraw(g)
	assert.Equal(t, DefaultBackground, comp.Image().RGBAAt(2, 2))

	bgSet, err := catalog.NewSet("bg", tiles, set.Images, solid(blue))
	require.NoError(t, err)
	comp = NewCompositor(bgSet, 1, 1)
	comp.Redraw(g)
	assert.Equal(t, blue, comp.Image().RGBAAt(2, 2))
}

func TestCompositorUpdateRepaintsChangedCells(t *testing.T) {
	set := testSet(t)
	g, err := wfc.New(set.Tiles[:2], 3, 1)
	require.NoError(t, err)

	comp := NewCompositor(set, 3, 1)
	assert.Equal(t, 3, comp.Update(g, nil), "no snapshot repaints everything")

	prev := g.Clone()
	require.NoError(t, g.Pin(2, 0, mustTile(t, set.Tiles, "blue")))
	assert.Equal(t, 1, comp.Update(g, prev))
	assert.Equal(t, blue, comp.Image().RGBAAt(2*cell, 0))
	assert.Equal(t, 0, comp.Update(g, g.Clone()))
}

func TestASCII(t *testing.T) {
	set := testSet(t)
	g, err := wfc.New(set.Tiles, 3, 2)
	require.NoError(t, err)
	require.NoError(t, g.Pin(0, 0, mustTile(t, set.Tiles, "blue")))
	require.NoError(t, g.Pin(2, 1, mustTile(t, set.Tiles, "red")))
	assert.Equal(t, "1??\n??0\n", ASCII(g))

	broken, err := wfc.New(set.Tiles, 2, 1)
	require.NoError(t, err)
	require.NoError(t, broken.Pin(1, 0, mustTile(t, set.Tiles, "green")))
	assert.Equal(t, "!!\n", ASCII(broken))
}

func TestSymbolAndLegend(t *testing.T) {
	assert.Equal(t, byte('0'), Symbol(0))
	assert.Equal(t, byte('a'), Symbol(10))
	assert.Equal(t, byte('Z'), Symbol(61))
	assert.Equal(t, byte('#'), Symbol(62))
	assert.Equal(t, byte('#'), Symbol(-1))

	set := testSet(t)
	assert.Equal(t, "0 red\n1 blue\n2 green\n", Legend(set.Tiles))
}

func TestEntropyRGBA(t *testing.T) {
	set := testSet(t)
	g, err := wfc.New(set.Tiles, 3, 1)
	require.NoError(t, err)
	buf := make([]byte, 4*g.Len())

	EntropyRGBA(buf, g)
	hot := heatRamp[len(heatRamp)-1]
	assert.Equal(t, []byte{hot.R, hot.G, hot.B, hot.A}, buf[0:4], "a full cell is hottest")

	require.NoError(t, g.Pin(0, 0, mustTile(t, set.Tiles, "red")))
	EntropyRGBA(buf, g)
	assert.Equal(t, []byte{0, 0, 0, 0}, buf[0:4], "collapsed cells are transparent")
	cool := heatRamp[0]
	assert.Equal(t, []byte{cool.R, cool.G, cool.B, cool.A}, buf[4:8])

	broken, err := wfc.New(set.Tiles, 1, 2)
	require.NoError(t, err)
	require.NoError(t, broken.Pin(0, 0, mustTile(t, set.Tiles, "green")))
	EntropyRGBA(buf[:8], broken)
	cc := ContradictionColor
	assert.Equal(t, []byte{cc.R, cc.G, cc.B, cc.A}, buf[4:8])
}

func TestWritePNG(t *testing.T) {
	set := testSet(t)
	g, err := wfc.New(set.Tiles, 2, 2)
	require.NoError(t, err)
	comp := NewCompositor(set, 2, 2)
	comp.Redraw(g)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, WritePNG(path, comp.Image()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2*cell, 2*cell), decoded.Bounds())

	assert.Error(t, WritePNG(filepath.Join(t.TempDir(), "missing", "out.png"), comp.Image()))
}
