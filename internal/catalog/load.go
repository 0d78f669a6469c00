package catalog

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"

	"tilewave/internal/logger"
)

// FileNames lists the catalog file names searched for, in order.
var FileNames = []string{"tiles.yaml", "tiles.yml", "tiles.json"}

// Find returns the path of the catalog file inside dir.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("catalog: %w", err)
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNoCatalogFile, dir)
}

// Load reads the catalog in dir, decodes every referenced image relative to
// dir and expands rotations. Images are enlarged by the integer scale factor.
func Load(dir string, scale int) (*Set, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	images := make(map[string]image.Image)
	sources := make([]source, 0, len(doc.Tiles))
	for _, e := range doc.Tiles {
		img, ok := images[e.File]
		if !ok {
			img, err = readImage(filepath.Join(dir, e.File))
			if err != nil {
				return nil, err
			}
			images[e.File] = img
		}
		sockets, err := e.SocketSet()
		if err != nil {
			return nil, err
		}
		sources = append(sources, source{
			name:      stem(e.File),
			img:       img,
			sockets:   sockets,
			rotations: e.Turns(),
			weight:    e.TileWeight(),
		})
	}

	var background image.Image
	if doc.Background != "" {
		background, err = readImage(filepath.Join(dir, doc.Background))
		if err != nil {
			return nil, err
		}
	}

	set, err := assemble(filepath.Base(filepath.Clean(dir)), sources, background, scale)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog loaded", "path", path, "entries", len(doc.Tiles), "tiles", len(set.Tiles), "cell_size", set.CellSize)
	return set, nil
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", path, err)
	}
	return img, nil
}
