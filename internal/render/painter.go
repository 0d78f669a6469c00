//go:build ebiten

package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Painter uploads CPU-side RGBA pixels into an ebiten image and draws it.
type Painter struct {
	w, h int
	img  *ebiten.Image
}

// NewPainter allocates a painter for a w x h pixel source.
func NewPainter(w, h int) *Painter {
	return &Painter{w: w, h: h, img: ebiten.NewImage(w, h)}
}

// Upload copies src into the painter image. src must match the painter size.
func (p *Painter) Upload(src *image.RGBA) {
	if src.Bounds().Dx() != p.w || src.Bounds().Dy() != p.h {
		return
	}
	p.img.WritePixels(src.Pix)
}

// UploadBytes copies raw premultiplied RGBA bytes into the painter image.
func (p *Painter) UploadBytes(pix []byte) {
	if len(pix) != 4*p.w*p.h {
		return
	}
	p.img.WritePixels(pix)
}

// Draw renders the painter image onto dst scaled by scale and faded by alpha.
func (p *Painter) Draw(dst *ebiten.Image, scale float64, alpha float32) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.ColorScale.ScaleAlpha(alpha)
	dst.DrawImage(p.img, op)
}

// Size returns the dimensions of the underlying image.
func (p *Painter) Size() (int, int) { return p.w, p.h }
