package catalog

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"tilewave/pkg/wfc"
)

// Entry is one tile description as written in a catalog file.
type Entry struct {
	File      string            `yaml:"file"`
	Sockets   map[string]string `yaml:"sockets"`
	Rotations Rotations         `yaml:"rotations"`
	Weight    *float64          `yaml:"weight"`
}

// File is a parsed catalog file.
type File struct {
	Background string  `yaml:"background"`
	Tiles      []Entry `yaml:"tiles"`
}

// Rotations lists the quarter turns an entry expands into. A nil value means
// the key was absent and defaults to no rotation.
type Rotations []int

// UnmarshalYAML accepts either the keyword All or a list of quarter turns.
func (r *Rotations) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if strings.EqualFold(value.Value, "all") {
			*r = Rotations{0, 1, 2, 3}
			return nil
		}
		return fmt.Errorf("%w: %q", ErrBadRotation, value.Value)
	case yaml.SequenceNode:
		turns := make([]int, 0, len(value.Content))
		if err := value.Decode(&turns); err != nil {
			return fmt.Errorf("catalog: rotations: %w", err)
		}
		for _, n := range turns {
			if n < 0 || n > 3 {
				return fmt.Errorf("%w: %d", ErrBadRotation, n)
			}
		}
		*r = turns
		return nil
	default:
		return fmt.Errorf("%w: line %d", ErrBadRotation, value.Line)
	}
}

// Turns returns the rotations to expand, defaulting to [0].
func (e Entry) Turns() []int {
	if e.Rotations == nil {
		return []int{0}
	}
	return e.Rotations
}

// TileWeight returns the entry weight, defaulting to wfc.DefaultWeight.
func (e Entry) TileWeight() float64 {
	if e.Weight == nil {
		return wfc.DefaultWeight
	}
	return *e.Weight
}

// SocketSet converts the socket map into wfc.Sockets.
func (e Entry) SocketSet() (wfc.Sockets, error) {
	var out wfc.Sockets
	seen := 0
	for key, value := range e.Sockets {
		d, ok := wfc.ParseDirection(key)
		if !ok {
			return out, fmt.Errorf("catalog: %s: unknown side %q", e.File, key)
		}
		out[d] = wfc.Socket(value)
		seen |= 1 << int(d)
	}
	if seen != 0b1111 {
		return out, fmt.Errorf("%w (%s)", ErrMissingSocket, e.File)
	}
	return out, nil
}

// Parse reads a catalog document. The top level is either a list of entries
// or a mapping with background and tiles keys.
func Parse(r io.Reader) (*File, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoTiles
		}
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	var f File
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&f.Tiles); err != nil {
			return nil, fmt.Errorf("catalog: parse: %w", err)
		}
	case yaml.MappingNode:
		if err := root.Decode(&f); err != nil {
			return nil, fmt.Errorf("catalog: parse: %w", err)
		}
	default:
		return nil, fmt.Errorf("catalog: parse: unexpected top-level value on line %d", root.Line)
	}

	for i, e := range f.Tiles {
		if e.File == "" {
			return nil, fmt.Errorf("catalog: entry %d has no file", i)
		}
		if _, err := e.SocketSet(); err != nil {
			return nil, err
		}
		if w := e.TileWeight(); !(w > 0) {
			return nil, fmt.Errorf("catalog: %s: %w", e.File, wfc.ErrInvalidWeight)
		}
	}
	return &f, nil
}
