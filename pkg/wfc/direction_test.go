package wfc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOppositeIsInvolution(t *testing.T) {
	for _, d := range AllDirections() {
		assert.Equal(t, d, d.Opposite().Opposite(), "direction %s", d)
		assert.NotEqual(t, d, d.Opposite(), "direction %s", d)
	}
}

func TestOffsetsCancelAcrossOpposites(t *testing.T) {
	for _, d := range AllDirections() {
		dx, dy := d.Offset()
		ox, oy := d.Opposite().Offset()
		assert.Equal(t, 0, dx+ox, "direction %s", d)
		assert.Equal(t, 0, dy+oy, "direction %s", d)
		assert.Equal(t, 1, dx*dx+dy*dy, "direction %s", d)
	}
}

func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{Up, "up"},
		{Right, "right"},
		{Down, "down"},
		{Left, "left"},
		{Direction(9), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.dir.String())
	}
	assert.False(t, Direction(9).Valid())
}

func TestParseDirection(t *testing.T) {
	for _, d := range AllDirections() {
		got, ok := ParseDirection(d.String())
		assert.True(t, ok)
		assert.Equal(t, d, got)
	}
	got, ok := ParseDirection("Left")
	assert.True(t, ok)
	assert.Equal(t, Left, got)

	_, ok = ParseDirection("north")
	assert.False(t, ok)
}
