package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"tilewave/pkg/wfc"
)

const (
	// symbols keys collapsed cells by catalog position.
	symbols = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// overflowSymbol is used for catalog positions past the symbol table.
	overflowSymbol = '#'
	// UnresolvedSymbol marks cells with more than one option.
	UnresolvedSymbol = '?'
	// ContradictionSymbol marks cells with no options.
	ContradictionSymbol = '!'
)

// Symbol returns the character ASCII prints for catalog position i.
func Symbol(i int) byte {
	if i >= 0 && i < len(symbols) {
		return symbols[i]
	}
	return overflowSymbol
}

// ASCII renders g as one line per row.
func ASCII(g *wfc.Grid) string {
	var sb strings.Builder
	sb.Grow((g.Width() + 1) * g.Height())
	catalog := g.Catalog()
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := g.Cell(x, y)
			switch {
			case c.Contradicted():
				sb.WriteByte(ContradictionSymbol)
			case c.Collapsed():
				t, _ := c.CollapsedResult()
				sb.WriteByte(Symbol(catalog.IndexOf(t)))
			default:
				sb.WriteByte(UnresolvedSymbol)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Legend lists the symbol used for each tile, one per line.
func Legend(catalog wfc.Catalog) string {
	var sb strings.Builder
	for i, t := range catalog {
		fmt.Fprintf(&sb, "%c %s\n", Symbol(i), t.ID)
	}
	return sb.String()
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

// WritePNG writes img to the file at path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
