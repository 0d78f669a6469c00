//go:build ebiten

package app

import (
	"time"

	"tilewave/internal/catalog"
	"tilewave/internal/core"
	"tilewave/internal/driver"
	"tilewave/internal/logger"
	"tilewave/internal/render"
	"tilewave/internal/ui"
	"tilewave/pkg/wfc"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hudWidth is the width of the parameter panel in screen pixels.
const hudWidth = 220

// Game adapts a driver.Runner to the ebiten.Game interface.
type Game struct {
	runner  *driver.Runner
	set     *catalog.Set
	comp    *render.Compositor
	painter *render.Painter
	prev    *wfc.Grid
	hud     *ui.HUD
	overlay *ui.Overlay
	pacer   *core.Pacer

	opts     Options
	paused   bool
	tickOnce bool
}

// New constructs a Game that draws runner's grid with set.
func New(set *catalog.Set, runner *driver.Runner, opts Options) *Game {
	opts = opts.withDefaults()
	g := &Game{
		runner:  runner,
		overlay: ui.NewOverlay(),
		pacer:   core.NewPacer(opts.Rate),
		opts:    opts,
	}
	g.attach(set)
	g.hud = ui.NewHUD(g, hudWidth)
	return g
}

// attach swaps in a tile set and rebuilds everything drawn from it.
func (g *Game) attach(set *catalog.Set) {
	size := g.runner.Size()
	g.set = set
	g.comp = render.NewCompositor(set, size.W, size.H)
	g.painter = render.NewPainter(size.W*set.CellSize, size.H*set.CellSize)
	g.prev = nil
}

// Reset reinitializes the run with the provided seed.
func (g *Game) Reset(seed int64) {
	g.runner.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the runner.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.runner.Seed())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	g.pollReload()

	g.overlay.Update()
	g.hud.Update(g.gridWidth())

	steps := 0
	switch {
	case g.tickOnce:
		steps = 1
	case g.paused:
	case g.opts.Rate > 0:
		steps = g.pacer.Due()
	default:
		steps = g.opts.SkipDraw
	}
	g.tickOnce = false
	for i := 0; i < steps && !g.runner.Done(); i++ {
		g.runner.Step()
	}
	return nil
}

func (g *Game) pollReload() {
	if g.opts.Changes == nil || g.opts.Reload == nil {
		return
	}
	select {
	case _, ok := <-g.opts.Changes:
		if !ok {
			g.opts.Changes = nil
			return
		}
	default:
		return
	}
	set, err := g.opts.Reload()
	if err != nil {
		logger.Warning("catalog reload failed, keeping previous tiles", "error", err)
		return
	}
	size := g.runner.Size()
	runner, err := driver.New(set.Tiles, size.W, size.H, g.runner.Seed(),
		driver.WithName(set.Name), driver.WithObserver(g.opts.Observer))
	if err != nil {
		logger.Warning("catalog reload failed, keeping previous tiles", "error", err)
		return
	}
	logger.Info("catalog reloaded", "set", set.Name, "tiles", len(set.Tiles))
	g.runner = runner
	g.attach(set)
}

// Draw repaints the cells that changed since the previous frame.
func (g *Game) Draw(screen *ebiten.Image) {
	grid := g.runner.Grid()
	if g.comp.Update(grid, g.prev) > 0 {
		g.painter.Upload(g.comp.Image())
	}
	g.prev = grid.Clone()

	zoom := float64(g.opts.Zoom)
	g.painter.Draw(screen, zoom, 1)
	g.overlay.Draw(screen, grid, zoom*float64(g.set.CellSize))
	g.hud.Draw(screen, g.gridWidth(), g.gridHeight())
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.gridWidth() + g.hud.Width(), g.gridHeight()
}

func (g *Game) gridWidth() int {
	return g.runner.Size().W * g.set.CellSize * g.opts.Zoom
}

func (g *Game) gridHeight() int {
	return g.runner.Size().H * g.set.CellSize * g.opts.Zoom
}

// Name labels the HUD.
func (g *Game) Name() string { return g.runner.Name() }

// Parameters merges the run snapshot with the viewer settings.
func (g *Game) Parameters() core.ParameterSnapshot {
	snap := g.runner.Parameters()
	snap.Groups = append(snap.Groups, g.opts.parameters(g.paused, g.overlay.Visible()))
	return snap
}

// ParameterControls exposes the collapse pacing to the HUD buttons.
func (g *Game) ParameterControls() []core.ParameterControl {
	return controls
}

// SetIntParameter applies a HUD adjustment.
func (g *Game) SetIntParameter(key string, value int) bool {
	if !g.opts.set(key, value) {
		return false
	}
	if key == keyRate {
		g.pacer.SetRate(value)
	}
	return true
}
