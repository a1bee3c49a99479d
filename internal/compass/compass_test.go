package compass

import (
	"math"
	"testing"

	"github.com/dekarrin/cmdbook/internal/host"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_Cardinal(t *testing.T) {
	testCases := []struct {
		name     string
		yaw      float64
		expect   string
		expectOK bool
	}{
		{name: "north", yaw: 90, expect: "North", expectOK: true},
		{name: "west", yaw: 0, expect: "West", expectOK: true},
		{name: "northeast lower bound", yaw: 112.5, expect: "Northeast", expectOK: true},
		{name: "just below northeast", yaw: 112.4, expect: "North", expectOK: true},
		{name: "east", yaw: 180, expect: "East", expectOK: true},
		{name: "southeast", yaw: 225, expect: "Southeast", expectOK: true},
		{name: "south", yaw: 270, expect: "South", expectOK: true},
		{name: "southwest", yaw: 315, expect: "Southwest", expectOK: true},
		{name: "northwest", yaw: 45, expect: "Northwest", expectOK: true},
		{name: "north upper bucket", yaw: 70, expect: "North", expectOK: true},
		{name: "negative yaw", yaw: -90, expect: "South", expectOK: true},
		{name: "large yaw", yaw: 720 + 90, expect: "North", expectOK: true},
		{name: "large negative yaw", yaw: -720, expect: "West", expectOK: true},
		{name: "not a number", yaw: math.NaN(), expect: "", expectOK: false},
		{name: "infinite", yaw: math.Inf(1), expect: "", expectOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, ok := Cardinal(tc.yaw)

			assert.Equal(tc.expectOK, ok)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Direction(t *testing.T) {
	testCases := []struct {
		name     string
		rot      float64
		expect   string
		expectOK bool
	}{
		{name: "zero", rot: 0, expect: "North", expectOK: true},
		{name: "22.5 is northeast", rot: 22.5, expect: "Northeast", expectOK: true},
		{name: "67.5 is east", rot: 67.5, expect: "East", expectOK: true},
		{name: "112.5 is southeast", rot: 112.5, expect: "Southeast", expectOK: true},
		{name: "157.5 is south", rot: 157.5, expect: "South", expectOK: true},
		{name: "202.5 is southwest", rot: 202.5, expect: "Southwest", expectOK: true},
		{name: "247.5 is west", rot: 247.5, expect: "West", expectOK: true},
		{name: "292.5 is northwest", rot: 292.5, expect: "Northwest", expectOK: true},
		{name: "337.5 is north", rot: 337.5, expect: "North", expectOK: true},
		{name: "359.9 is north", rot: 359.9, expect: "North", expectOK: true},
		{name: "360 is out of range", rot: 360, expect: "", expectOK: false},
		{name: "negative is out of range", rot: -0.1, expect: "", expectOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, ok := Direction(tc.rot)

			assert.Equal(tc.expectOK, ok)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Rotation(t *testing.T) {
	testCases := []struct {
		name   string
		yaw    float64
		expect float64
	}{
		{name: "90 is zero", yaw: 90, expect: 0},
		{name: "0 is 270", yaw: 0, expect: 270},
		{name: "450 is zero", yaw: 450, expect: 0},
		{name: "-270 is zero", yaw: -270, expect: 0},
		{name: "tiny negative rounds to zero", yaw: 90 - 1e-14, expect: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := Rotation(tc.yaw)

			assert.GreaterOrEqual(actual, 0.0)
			assert.Less(actual, 360.0)
			assert.InDelta(tc.expect, actual, 1e-9)
		})
	}
}

type facingPlayer struct {
	yaw float64
}

func (fp facingPlayer) SendMessage(string)      {}
func (fp facingPlayer) Name() string            { return "facer" }
func (fp facingPlayer) ID() uuid.UUID           { return uuid.Nil }
func (fp facingPlayer) Location() host.Location { return host.Location{Yaw: fp.yaw} }

func Test_PlayerDirection(t *testing.T) {
	assert := assert.New(t)

	dir, ok := PlayerDirection(facingPlayer{yaw: 180})

	assert.True(ok)
	assert.Equal("East", dir)
}
