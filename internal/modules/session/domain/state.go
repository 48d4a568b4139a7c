package domain

import "time"

type State string

const (
	StateStopped State = "STOPPED"
	StateRunning State = "RUNNING"
	StatePaused  State = "PAUSED"
)

const SchemaVersion = 1

// TaskTotal is the time credited to one task over a session.
type TaskTotal struct {
	TaskID      int
	Title       string
	Seconds     int
	Occurrences int
}

// Summary describes a session once it has ended, either by running out of
// entries (Finished) or by a user stop.
type Summary struct {
	SessionID        string
	StartedAt        time.Time
	EndedAt          time.Time
	Finished         bool
	TotalLaps        int
	TotalActiveLaps  int
	PlannedSeconds   int
	CompletedSeconds int
	EntriesTotal     int
	EntriesCompleted int
	TaskTotals       []TaskTotal
}
