package domain

import "math"

const (
	MinDurationSeconds = 1
	MaxDurationSeconds = 23*3600 + 59*60 + 59
)

// CalculateDuration returns the effective duration of a task's n-th
// occurrence (1-based). Growth is geometric per occurrence; only the final
// value is rounded and clamped, so a clamped occurrence never feeds into the
// next one.
func CalculateDuration(baseDuration, growthFactor, occurrence int) int {
	if growthFactor == 0 {
		return baseDuration
	}
	exp := float64(occurrence - 1)
	v := math.Round(float64(baseDuration) * math.Pow(1+float64(growthFactor)/100, exp))
	if v < MinDurationSeconds || math.IsNaN(v) {
		return MinDurationSeconds
	}
	if v > MaxDurationSeconds {
		return MaxDurationSeconds
	}
	return int(v)
}
