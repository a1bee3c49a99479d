// Package compass names the direction an entity is facing.
package compass

import (
	"math"

	"github.com/dekarrin/cmdbook/internal/host"
)

// bucket is a half-open range of rotations [lo, hi) with a direction name.
type bucket struct {
	lo, hi float64
	name   string
}

var buckets = []bucket{
	{0, 22.5, "North"},
	{22.5, 67.5, "Northeast"},
	{67.5, 112.5, "East"},
	{112.5, 157.5, "Southeast"},
	{157.5, 202.5, "South"},
	{202.5, 247.5, "Southwest"},
	{247.5, 292.5, "West"},
	{292.5, 337.5, "Northwest"},
	{337.5, 360, "North"},
}

// Direction gives the name of the compass direction for a rotation in
// degrees, where 0 is North and rotation increases clockwise. The rotation
// must be in the range [0, 360); if it is not, ("", false) is returned.
func Direction(rot float64) (string, bool) {
	for _, b := range buckets {
		if b.lo <= rot && rot < b.hi {
			return b.name, true
		}
	}
	return "", false
}

// Rotation converts an entity yaw in degrees, which may be any value, to a
// compass rotation in the range [0, 360).
func Rotation(yaw float64) float64 {
	rot := math.Mod(yaw-90, 360)
	if rot < 0 {
		rot += 360
	}
	// adding 360 to a tiny negative value rounds up to exactly 360.
	if rot >= 360 {
		rot = 0
	}
	return rot
}

// Cardinal gives the name of the compass direction for an entity yaw. The
// returned bool is false only if yaw is not a finite number.
func Cardinal(yaw float64) (string, bool) {
	return Direction(Rotation(yaw))
}

// PlayerDirection gives the name of the compass direction p is facing.
func PlayerDirection(p host.Player) (string, bool) {
	return Cardinal(p.Location().Yaw)
}
