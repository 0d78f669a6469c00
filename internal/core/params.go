package core

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeBool denotes boolean parameters.
	ParamTypeBool ParamType = "bool"
	// ParamTypeString denotes free-form text.
	ParamTypeString ParamType = "string"
)

// Parameter describes a single value exposed by a simulation.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the current set of values exposed by a sim.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Lookup returns the parameter with the given key.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// ParameterProvider is implemented by sims that can describe their state.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}

// ParameterControl describes an integer parameter the HUD can step with
// +/- buttons.
type ParameterControl struct {
	Key    string
	Label  string
	Step   int
	Min    int
	Max    int
	HasMin bool
	HasMax bool
}

// Clamp limits v to the control's bounds.
func (c ParameterControl) Clamp(v int) int {
	if c.HasMin && v < c.Min {
		return c.Min
	}
	if c.HasMax && v > c.Max {
		return c.Max
	}
	return v
}

// Next returns the value one step from v in direction dir (+1 or -1),
// clamped to the bounds.
func (c ParameterControl) Next(v, dir int) int {
	step := c.Step
	if step <= 0 {
		step = 1
	}
	return c.Clamp(v + dir*step)
}

// ParameterControlsProvider exposes adjustable parameters.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

// IntParameterSetter applies an integer parameter change, reporting success.
type IntParameterSetter interface {
	SetIntParameter(key string, value int) bool
}
