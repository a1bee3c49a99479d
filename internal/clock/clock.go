// Package clock converts game time into the time of day shown to players.
//
// Game time is measured in ticks. 1000 ticks make one hour, and tick 0 is
// 08:00 in the morning, so a full day is 24000 ticks.
package clock

import "fmt"

const (
	// TicksPerHour is the number of game ticks in one in-game hour.
	TicksPerHour = 1000

	// TicksPerDay is the number of game ticks in one in-game day.
	TicksPerDay = 24 * TicksPerHour

	// hourOffset is the hour of day that tick 0 falls on.
	hourOffset = 8
)

// Time is the time of day at some game tick.
type Time struct {
	hour   int
	minute int
}

// Of returns the time of day at game tick t. Negative ticks count backwards
// from 08:00, so tick -1000 is 07:00.
func Of(t int64) Time {
	hours := floorDiv(t, TicksPerHour)
	hours = floorMod(hours+hourOffset, 24)

	minutes := 60 * floorMod(t, TicksPerHour) / TicksPerHour

	return Time{hour: int(hours), minute: int(minutes)}
}

// Hour is the hour of the day on a 24-hour clock, 0 through 23.
func (tm Time) Hour() int {
	return tm.hour
}

// Minute is the minute of the hour, 0 through 59.
func (tm Time) Minute() int {
	return tm.minute
}

// String gives the time in both 24-hour and 12-hour format, for instance
// "13:30 (1:30 pm)".
func (tm Time) String() string {
	h12 := tm.hour % 12
	if h12 == 0 {
		h12 = 12
	}

	meridiem := "pm"
	if tm.hour < 12 {
		meridiem = "am"
	}

	return fmt.Sprintf("%02d:%02d (%d:%02d %s)", tm.hour, tm.minute, h12, tm.minute, meridiem)
}

// TimeString gives the time of day at game tick t in both 24-hour and 12-hour
// format.
func TimeString(t int64) string {
	return Of(t).String()
}

func floorDiv(x, y int64) int64 {
	q := x / y
	if (x%y != 0) && ((x < 0) != (y < 0)) {
		q--
	}
	return q
}

func floorMod(x, y int64) int64 {
	m := x % y
	if m != 0 && ((m < 0) != (y < 0)) {
		m += y
	}
	return m
}
