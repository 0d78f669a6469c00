package catalog

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/transform"

	"tilewave/pkg/wfc"
)

// Set bundles a tile catalog with the images used to draw it.
type Set struct {
	Name       string
	Tiles      wfc.Catalog
	Images     []image.Image // Images[i] draws Tiles[i]
	Background image.Image   // optional, CellSize square
	CellSize   int

	index map[*wfc.Tile]int
}

// Image returns the picture for t, or nil when t is not part of the set.
func (s *Set) Image(t *wfc.Tile) image.Image {
	if i := s.IndexOf(t); i >= 0 {
		return s.Images[i]
	}
	return nil
}

// IndexOf returns the catalog position of t, or -1.
func (s *Set) IndexOf(t *wfc.Tile) int {
	if i, ok := s.index[t]; ok {
		return i
	}
	return -1
}

// source is an unexpanded tile: one picture plus the rotations it should
// appear in.
type source struct {
	name      string
	img       image.Image
	sockets   wfc.Sockets
	rotations []int
	weight    float64
}

// assemble expands sources into rotated, scaled tiles.
func assemble(name string, sources []source, background image.Image, scale int) (*Set, error) {
	if scale < 1 {
		scale = 1
	}
	var (
		tiles  wfc.Catalog
		images []image.Image
	)
	seen := make(map[string]int)

	for _, src := range sources {
		if b := src.img.Bounds(); b.Dx() != b.Dy() || b.Empty() {
			return nil, fmt.Errorf("%w: %s is %dx%d", ErrTileSize, src.name, b.Dx(), b.Dy())
		}
		for _, turns := range src.rotations {
			base := fmt.Sprintf("%s@%d", src.name, turns)
			id := base
			if n := seen[base]; n > 0 {
				id = fmt.Sprintf("%s~%d", base, n)
			}
			seen[base]++

			tiles = append(tiles, &wfc.Tile{ID: id, Sockets: src.sockets.Rotate(turns), Weight: src.weight})
			images = append(images, scaleImage(rotateImage(src.img, turns), scale))
		}
	}

	if background != nil && len(images) > 0 {
		size := images[0].Bounds().Dx()
		background = transform.Resize(background, size, size, transform.NearestNeighbor)
	}
	return NewSet(name, tiles, images, background)
}

// NewSet pairs tiles with their images. Every image, and the optional
// background, must be square and of the same size.
func NewSet(name string, tiles wfc.Catalog, images []image.Image, background image.Image) (*Set, error) {
	if len(tiles) == 0 {
		return nil, ErrNoTiles
	}
	if len(images) != len(tiles) {
		return nil, fmt.Errorf("catalog: %s: %d tiles but %d images", name, len(tiles), len(images))
	}
	if err := tiles.Validate(); err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", name, err)
	}

	set := &Set{
		Name:       name,
		Tiles:      tiles,
		Images:     images,
		Background: background,
		index:      make(map[*wfc.Tile]int, len(tiles)),
	}
	for i, img := range images {
		b := img.Bounds()
		if b.Dx() != b.Dy() || b.Empty() {
			return nil, fmt.Errorf("%w: %s is %dx%d", ErrTileSize, tiles[i].ID, b.Dx(), b.Dy())
		}
		if i == 0 {
			set.CellSize = b.Dx()
		} else if b.Dx() != set.CellSize {
			return nil, fmt.Errorf("%w: %s is %d px, expected %d", ErrTileSize, tiles[i].ID, b.Dx(), set.CellSize)
		}
		set.index[tiles[i]] = i
	}
	if background != nil {
		if b := background.Bounds(); b.Dx() != set.CellSize || b.Dy() != set.CellSize {
			return nil, fmt.Errorf("%w: background is %dx%d", ErrTileSize, b.Dx(), b.Dy())
		}
	}
	return set, nil
}

// rotateImage turns a square img clockwise by quarter turns.
func rotateImage(img image.Image, turns int) image.Image {
	turns = ((turns % 4) + 4) % 4
	if turns == 0 {
		return img
	}
	return transform.Rotate(img, float64(90*turns), &transform.RotationOptions{})
}

func scaleImage(img image.Image, scale int) image.Image {
	if scale == 1 {
		return img
	}
	b := img.Bounds()
	return transform.Resize(img, b.Dx()*scale, b.Dy()*scale, transform.NearestNeighbor)
}

func stem(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
