package catalog

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tilewave/pkg/wfc"
)

var (
	red  = color.RGBA{R: 0xff, A: 0xff}
	blue = color.RGBA{B: 0xff, A: 0xff}
)

// writeHalfTile writes a size x size PNG whose top half is red and bottom half blue.
func writeHalfTile(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if y < h/2 {
				img.SetRGBA(x, y, red)
			} else {
				img.SetRGBA(x, y, blue)
			}
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadExpandsRotations(t *testing.T) {
	dir := t.TempDir()
	writeHalfTile(t, filepath.Join(dir, "half.png"), 8, 8)
	writeHalfTile(t, filepath.Join(dir, "bg.png"), 4, 4)
	writeFile(t, filepath.Join(dir, "tiles.yaml"), `
background: bg.png
tiles:
  - file: half.png
    sockets: {Up: rr, Right: rb, Down: bb, Left: br}
    rotations: All
    weight: 2
`)

	set, err := Load(dir, 2)
	require.NoError(t, err)
	require.Len(t, set.Tiles, 4)
	require.Len(t, set.Images, 4)
	assert.Equal(t, 16, set.CellSize)
	assert.Equal(t, filepath.Base(dir), set.Name)

	base := wfc.Sockets{wfc.Up: "rr", wfc.Right: "rb", wfc.Down: "bb", wfc.Left: "br"}
	for i, tile := range set.Tiles {
		assert.Equal(t, "half@"+string(rune('0'+i)), tile.ID)
		assert.Equal(t, base.Rotate(i), tile.Sockets)
		assert.Equal(t, 2.0, tile.Weight)
		assert.Equal(t, 16, set.Images[i].Bounds().Dx())
		assert.Equal(t, i, set.IndexOf(tile))
		assert.Same(t, set.Images[i], set.Image(tile))
	}

	require.NotNil(t, set.Background)
	assert.Equal(t, 16, set.Background.Bounds().Dx())
	assert.Nil(t, set.Image(&wfc.Tile{ID: "stranger"}))
	assert.Equal(t, -1, set.IndexOf(nil))
}

func TestLoadRotatesImagesClockwise(t *testing.T) {
	dir := t.TempDir()
	writeHalfTile(t, filepath.Join(dir, "half.png"), 8, 8)
	writeFile(t, filepath.Join(dir, "tiles.json"),
		`[{"file": "half.png", "sockets": {"Up": "r", "Right": "x", "Down": "b", "Left": "x"}, "rotations": [0, 1]}]`)

	set, err := Load(dir, 1)
	require.NoError(t, err)
	require.Len(t, set.Tiles, 2)

	turned := set.Images[1]
	// Red starts on top; a clockwise quarter turn moves it to the right.
	assert.Equal(t, red, color.RGBAModel.Convert(turned.At(6, 4)))
	assert.Equal(t, blue, color.RGBAModel.Convert(turned.At(1, 4)))
}

func TestLoadDuplicateEntriesGetDistinctIDs(t *testing.T) {
	dir := t.TempDir()
	writeHalfTile(t, filepath.Join(dir, "a.png"), 4, 4)
	writeFile(t, filepath.Join(dir, "tiles.yml"), `
- file: a.png
  sockets: {Up: x, Right: x, Down: x, Left: x}
- file: a.png
  sockets: {Up: y, Right: y, Down: y, Left: y}
`)
	set, err := Load(dir, 1)
	require.NoError(t, err)
	require.Len(t, set.Tiles, 2)
	assert.Equal(t, "a@0", set.Tiles[0].ID)
	assert.Equal(t, "a@0~1", set.Tiles[1].ID)
}

func TestLoadErrors(t *testing.T) {
	t.Run("no catalog file", func(t *testing.T) {
		_, err := Load(t.TempDir(), 1)
		assert.ErrorIs(t, err, ErrNoCatalogFile)
	})

	t.Run("missing image", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "tiles.yaml"), `[{file: gone.png, sockets: {Up: x, Right: x, Down: x, Left: x}}]`)
		_, err := Load(dir, 1)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("non-square image", func(t *testing.T) {
		dir := t.TempDir()
		writeHalfTile(t, filepath.Join(dir, "wide.png"), 8, 4)
		writeFile(t, filepath.Join(dir, "tiles.yaml"), `[{file: wide.png, sockets: {Up: x, Right: x, Down: x, Left: x}}]`)
		_, err := Load(dir, 1)
		assert.ErrorIs(t, err, ErrTileSize)
	})

	t.Run("mixed sizes", func(t *testing.T) {
		dir := t.TempDir()
		writeHalfTile(t, filepath.Join(dir, "a.png"), 4, 4)
		writeHalfTile(t, filepath.Join(dir, "b.png"), 6, 6)
		writeFile(t, filepath.Join(dir, "tiles.yaml"), `
- {file: a.png, sockets: {Up: x, Right: x, Down: x, Left: x}}
- {file: b.png, sockets: {Up: x, Right: x, Down: x, Left: x}}
`)
		_, err := Load(dir, 1)
		assert.ErrorIs(t, err, ErrTileSize)
	})

	t.Run("no rotations", func(t *testing.T) {
		dir := t.TempDir()
		writeHalfTile(t, filepath.Join(dir, "a.png"), 4, 4)
		writeFile(t, filepath.Join(dir, "tiles.yaml"), `[{file: a.png, sockets: {Up: x, Right: x, Down: x, Left: x}, rotations: []}]`)
		_, err := Load(dir, 1)
		assert.ErrorIs(t, err, ErrNoTiles)
	})
}

func TestFindPrefersYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tiles.json"), "[]")
	writeFile(t, filepath.Join(dir, "tiles.yaml"), "[]")
	path, err := Find(dir)
	require.NoError(t, err)
	assert.Equal(t, "tiles.yaml", filepath.Base(path))
}

func TestNewSetChecksShapes(t *testing.T) {
	tiles := wfc.Catalog{wfc.NewTile("a", wfc.Sockets{"x", "x", "x", "x"}), wfc.NewTile("b", wfc.Sockets{"x", "x", "x", "x"})}
	square := image.NewRGBA(image.Rect(0, 0, 4, 4))

	_, err := NewSet("short", tiles, []image.Image{square}, nil)
	assert.Error(t, err)

	_, err = NewSet("mixed", tiles, []image.Image{square, image.NewRGBA(image.Rect(0, 0, 5, 5))}, nil)
	assert.ErrorIs(t, err, ErrTileSize)

	_, err = NewSet("bg", tiles, []image.Image{square, square}, image.NewRGBA(image.Rect(0, 0, 3, 3)))
	assert.ErrorIs(t, err, ErrTileSize)

	_, err = NewSet("empty", nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoTiles)

	set, err := NewSet("ok", tiles, []image.Image{square, square}, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, set.CellSize)
	assert.Equal(t, 1, set.IndexOf(tiles[1]))
}
