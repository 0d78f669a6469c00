package render

import (
	"image/color"

	"tilewave/pkg/wfc"
)

// heatRamp colours entropy from low (cool) to high (warm).
var heatRamp = []color.RGBA{
	{R: 0x20, G: 0x30, B: 0x90, A: 0xff},
	{R: 0x20, G: 0x90, B: 0xa0, A: 0xff},
	{R: 0x60, G: 0xc0, B: 0x40, A: 0xff},
	{R: 0xe0, G: 0xc0, B: 0x30, A: 0xff},
	{R: 0xf0, G: 0x60, B: 0x20, A: 0xff},
}

// EntropyRGBA writes one pixel per cell of g into buf (4 bytes each):
// transparent for collapsed cells, ContradictionColor for empty cells and a
// heat ramp scaled by the catalog size otherwise. buf must hold 4*g.Len() bytes.
func EntropyRGBA(buf []byte, g *wfc.Grid) {
	full := len(g.Catalog())
	last := len(heatRamp) - 1
	for i := 0; i < g.Len(); i++ {
		base := i * 4
		var col color.RGBA
		switch e := g.At(i).Entropy(); {
		case e == 0:
			col = ContradictionColor
		case e == 1:
			col = color.RGBA{}
		default:
			idx := last
			if full > 2 {
				idx = (e - 2) * last / (full - 2)
			}
			col = heatRamp[idx]
		}
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
