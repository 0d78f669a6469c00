package wfc

import "strings"

// Direction names one side of a cell.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

const numDirections = 4

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// Opposite returns the direction facing back across the shared edge.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Right:
		return Left
	case Left:
		return Right
	default:
		return d
	}
}

// Offset returns the grid delta for one step in d. Y grows downward.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 0, 0
	}
}

// Valid reports whether d is one of the four sides.
func (d Direction) Valid() bool { return d >= Up && d <= Left }

// AllDirections returns the four sides in clockwise order starting at Up.
func AllDirections() []Direction {
	return []Direction{Up, Right, Down, Left}
}

// ParseDirection maps a side name ("up", "Right", ...) to a Direction.
func ParseDirection(name string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up":
		return Up, true
	case "right":
		return Right, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	default:
		return 0, false
	}
}
