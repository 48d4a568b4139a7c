package domain

import "math"

// Progress is the displayable state of the current entry at task, lap and
// session granularity. All remaining values are non-negative magnitudes.
type Progress struct {
	SessionID       string
	State           State
	Index           int
	TotalEntries    int
	Entry           Entry
	Task            Task
	ActiveLap       int
	TotalActiveLaps int
	TotalLaps       int

	Remaining   int
	TaskElapsed int
	TaskPercent int

	LapElapsed   int
	LapRemaining int
	LapPercent   int

	SessionElapsed   int
	SessionRemaining int
	SessionPercent   int

	// TaskSessionTotal is the time spent on this task so far in the session,
	// including the running occurrence.
	TaskSessionTotal int

	ChangeDelta   int
	ChangePercent int

	CompletedOccurrences map[int]int
}

// Project derives progress for the entry at index with remaining seconds
// left. ok is false when index is outside the playlist or its task is not in
// the snapshot.
func Project(c *SessionCache, index, remaining int) (Progress, bool) {
	if c == nil || index < 0 || index >= len(c.Entries) {
		return Progress{}, false
	}
	entry := c.Entries[index]
	task, ok := c.Task(entry.TaskID)
	if !ok {
		return Progress{}, false
	}
	if remaining < 0 {
		remaining = 0
	}
	if remaining > entry.CalculatedDuration {
		remaining = entry.CalculatedDuration
	}

	taskElapsed := entry.CalculatedDuration - remaining
	lapDuration := c.LapDurations[entry.Lap]
	completedInLap := c.CumulativeSessionDurations[index] - c.LapStartCumulativeDurations[entry.Lap]
	lapElapsed := completedInLap + taskElapsed
	sessionElapsed := c.CumulativeSessionDurations[index] + taskElapsed
	delta, deltaPct := ChangeIndicators(entry)

	completed := make(map[int]int, len(c.CompletedOccurrences))
	for id, n := range c.CompletedOccurrences {
		completed[id] = n
	}

	return Progress{
		SessionID:            c.ID,
		Index:                index,
		TotalEntries:         len(c.Entries),
		Entry:                entry,
		Task:                 task,
		ActiveLap:            c.ActiveLapMap[entry.Lap],
		TotalActiveLaps:      c.TotalActiveLaps,
		TotalLaps:            c.TotalLaps,
		Remaining:            remaining,
		TaskElapsed:          taskElapsed,
		TaskPercent:          percent(taskElapsed, entry.CalculatedDuration),
		LapElapsed:           lapElapsed,
		LapRemaining:         nonNegative(lapDuration - lapElapsed),
		LapPercent:           percent(lapElapsed, lapDuration),
		SessionElapsed:       sessionElapsed,
		SessionRemaining:     nonNegative(c.TotalSessionDuration - sessionElapsed),
		SessionPercent:       percent(sessionElapsed, c.TotalSessionDuration),
		TaskSessionTotal:     c.CompletedTaskDurations[entry.TaskID] + taskElapsed,
		ChangeDelta:          delta,
		ChangePercent:        deltaPct,
		CompletedOccurrences: completed,
	}, true
}

// ChangeIndicators compares an occurrence's duration with its task's base
// duration. The percentage is rounded, unlike the progress percentages.
func ChangeIndicators(e Entry) (delta, percentChange int) {
	delta = e.CalculatedDuration - e.BaseDuration
	if e.BaseDuration <= 0 {
		return delta, 0
	}
	return delta, int(math.Round(float64(delta) / float64(e.BaseDuration) * 100))
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return part * 100 / whole
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
