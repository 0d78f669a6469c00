package app

import (
	"strconv"

	"tilewave/internal/catalog"
	"tilewave/internal/core"
	"tilewave/internal/driver"
)

// Options configure the viewer.
type Options struct {
	// SkipDraw is the number of collapses per tick when Rate is zero.
	SkipDraw int
	// Rate is collapses per second; zero paces by SkipDraw instead.
	Rate int
	// Zoom multiplies the tile pixel size on screen.
	Zoom int
	// Changes signals that the catalog should be reloaded via Reload.
	Changes <-chan struct{}
	Reload  func() (*catalog.Set, error)
	// Observer is attached to runners created on reload.
	Observer driver.Observer
}

const (
	keySkipDraw = "skip_draw"
	keyRate     = "rate"
	maxSkipDraw = 4096
	maxRate     = 100000
)

var controls = []core.ParameterControl{
	{Key: keySkipDraw, Label: "Collapses/tick", Step: 1, Min: 1, Max: maxSkipDraw, HasMin: true, HasMax: true},
	{Key: keyRate, Label: "Collapses/sec", Step: 10, Min: 0, Max: maxRate, HasMin: true, HasMax: true},
}

func (o Options) withDefaults() Options {
	if o.SkipDraw < 1 {
		o.SkipDraw = 1
	}
	if o.Rate < 0 {
		o.Rate = 0
	}
	if o.Zoom < 1 {
		o.Zoom = 1
	}
	return o
}

func (o *Options) set(key string, value int) bool {
	switch key {
	case keySkipDraw:
		o.SkipDraw = controls[0].Clamp(value)
	case keyRate:
		o.Rate = controls[1].Clamp(value)
	default:
		return false
	}
	return true
}

func (o Options) parameters(paused, overlay bool) core.ParameterGroup {
	return core.ParameterGroup{
		Name: "Viewer",
		Params: []core.Parameter{
			{Key: keySkipDraw, Label: "Collapses/tick", Type: core.ParamTypeInt, Value: strconv.Itoa(o.SkipDraw)},
			{Key: keyRate, Label: "Collapses/sec", Type: core.ParamTypeInt, Value: strconv.Itoa(o.Rate)},
			{Key: "zoom", Label: "Zoom", Type: core.ParamTypeInt, Value: strconv.Itoa(o.Zoom)},
			{Key: "paused", Label: "Paused", Type: core.ParamTypeBool, Value: strconv.FormatBool(paused)},
			{Key: "overlay", Label: "Entropy map", Type: core.ParamTypeBool, Value: strconv.FormatBool(overlay)},
		},
	}
}
