//go:build ebiten

package ui

import (
	"tilewave/internal/render"
	"tilewave/pkg/wfc"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// overlayAlpha fades the heat map so tiles stay visible underneath.
const overlayAlpha = 0.65

// Overlay draws an entropy heat map over the grid, toggled with key 1.
type Overlay struct {
	show    bool
	painter *render.Painter
	buf     []byte
}

// NewOverlay constructs a hidden overlay.
func NewOverlay() *Overlay { return &Overlay{} }

// Visible reports whether the heat map is shown.
func (o *Overlay) Visible() bool { return o != nil && o.show }

// Update handles the toggle key.
func (o *Overlay) Update() {
	if o == nil {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.show = !o.show
	}
}

// Draw renders one overlay pixel per cell, stretched by cellPixels.
func (o *Overlay) Draw(screen *ebiten.Image, g *wfc.Grid, cellPixels float64) {
	if !o.Visible() || g.Len() == 0 {
		return
	}
	if o.painter == nil {
		o.painter = render.NewPainter(g.Width(), g.Height())
	} else if w, h := o.painter.Size(); w != g.Width() || h != g.Height() {
		o.painter = render.NewPainter(g.Width(), g.Height())
	}
	if len(o.buf) != 4*g.Len() {
		o.buf = make([]byte, 4*g.Len())
	}
	render.EntropyRGBA(o.buf, g)
	o.painter.UploadBytes(o.buf)
	o.painter.Draw(screen, cellPixels, overlayAlpha)
}
