//go:build !ebiten

package ui

// Overlay is a no-op placeholder for headless builds.
type Overlay struct{}

// NewOverlay returns nil in the headless build.
func NewOverlay() *Overlay { return nil }

// Visible is always false in the headless build.
func (o *Overlay) Visible() bool { return false }

// Update is a no-op in the headless build.
func (o *Overlay) Update() {}

// Draw is a no-op in the headless build.
func (o *Overlay) Draw(any, any, float64) {}
