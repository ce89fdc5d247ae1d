// Package worldclock derives the day number, time of day and moon phase
// from the host's raw world tick counter.
package worldclock

import (
	"fmt"
	"slices"
)

const (
	// TicksPerDay is the length of one in-game day.
	TicksPerDay int64 = 24000

	// NightStart and NightEnd bound the night window, both inclusive.
	NightStart int64 = 13000
	NightEnd   int64 = 23000
)

// moonPhases is indexed by (day index mod 8): full moon at 0, new moon at 4.
var moonPhases = [8]string{
	"Vollmond 8/8",
	"Abnehmend 7/8",
	"Abnehmend 6/8",
	"Abnehmend 5/8",
	"Neumond 4/8",
	"Zunehmend 3/8",
	"Zunehmend 2/8",
	"Zunehmend 1/8",
}

// Reading is one derived clock value.
type Reading struct {
	Day       int64
	TimeOfDay int64
	// MoonPhase is nil outside the night window.
	MoonPhase *string
}

// Derive computes the clock reading for rawTicks.
func Derive(rawTicks int64) Reading {
	dayIndex := floorDiv(rawTicks, TicksPerDay)
	r := Reading{
		Day:       dayIndex + 1,
		TimeOfDay: rawTicks - dayIndex*TicksPerDay,
	}
	if IsNight(r.TimeOfDay) {
		phase := moonPhases[floorMod(dayIndex, int64(len(moonPhases)))]
		r.MoonPhase = &phase
	}
	return r
}

// IsNight reports whether timeOfDay falls inside the night window.
func IsNight(timeOfDay int64) bool {
	return timeOfDay >= NightStart && timeOfDay <= NightEnd
}

// MoonPhases returns a copy of the ordered phase labels.
func MoonPhases() []string {
	return slices.Clone(moonPhases[:])
}

// String renders the reading the way the world log line reads.
func (r Reading) String() string {
	if r.MoonPhase == nil {
		return fmt.Sprintf("Tag %d, Zeit: %d ticks", r.Day, r.TimeOfDay)
	}
	return fmt.Sprintf("Tag %d, Zeit: %d ticks, Mondphase: %s", r.Day, r.TimeOfDay, *r.MoonPhase)
}

// floorDiv and floorMod keep TimeOfDay in [0, TicksPerDay) for negative input.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
