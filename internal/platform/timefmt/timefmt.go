// Package timefmt renders second counts the way the timer displays them.
package timefmt

import (
	"strconv"
	"strings"
)

// Format renders seconds as "1h 2m 3s". Zero components are omitted, except
// that a value under a minute always shows seconds.
func Format(totalSeconds int) string {
	if totalSeconds == 0 {
		return "0s"
	}
	negative := totalSeconds < 0
	abs := totalSeconds
	if negative {
		abs = -abs
	}
	hours := abs / 3600
	minutes := (abs % 3600) / 60
	seconds := abs % 60

	parts := make([]string, 0, 3)
	if hours > 0 {
		parts = append(parts, strconv.Itoa(hours)+"h")
	}
	if minutes > 0 {
		parts = append(parts, strconv.Itoa(minutes)+"m")
	}
	if seconds > 0 || (hours == 0 && minutes == 0) {
		parts = append(parts, strconv.Itoa(seconds)+"s")
	}
	out := strings.Join(parts, " ")
	if negative {
		return "-" + out
	}
	return out
}

// Remaining renders a countdown value with the leading minus used by the runner.
func Remaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return "-" + Format(seconds)
}

// Clock renders seconds as HH:MM:SS.
func Clock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	return pad(h) + ":" + pad(m) + ":" + pad(s)
}

func pad(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
