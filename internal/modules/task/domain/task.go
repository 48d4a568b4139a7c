package domain

import (
	"fmt"
	"strings"

	apperrors "laprun/internal/platform/errors"
)

const (
	MinDuration       = 1
	MaxDuration       = 23*3600 + 59*60 + 59
	MinLapInterval    = 1
	MaxLapInterval    = 99
	MinGrowthFactor   = -99
	MaxGrowthFactor   = 99
	MaxOccurrencesCap = 999
)

type Task struct {
	ID             int
	Title          string
	Description    string
	CategoryID     string
	Duration       int
	LapInterval    int
	GrowthFactor   int
	MaxOccurrences int
}

// Normalize trims text and clamps the scheduling fields into their ranges.
// An unset interval becomes 1; an unknown category becomes cat-0.
func (t Task) Normalize() Task {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	if t.LapInterval == 0 {
		t.LapInterval = 1
	}
	t.LapInterval = clamp(t.LapInterval, MinLapInterval, MaxLapInterval)
	t.GrowthFactor = clamp(t.GrowthFactor, MinGrowthFactor, MaxGrowthFactor)
	t.MaxOccurrences = clamp(t.MaxOccurrences, 0, MaxOccurrencesCap)
	t.CategoryID = CategoryByID(t.CategoryID).ID
	return t
}

func (t Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("%w: task title cannot be empty", apperrors.ErrInvalidInput)
	}
	if t.Duration < MinDuration {
		return fmt.Errorf("%w: duration must be greater than 0 seconds", apperrors.ErrInvalidInput)
	}
	if t.Duration > MaxDuration {
		return fmt.Errorf("%w: duration must be under 24 hours", apperrors.ErrInvalidInput)
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
