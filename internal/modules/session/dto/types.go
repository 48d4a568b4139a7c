package dto

import "time"

type PlayInput struct {
	Laps int
}

type SkipLapInput struct {
	Direction int
}

type PlanInput struct {
	Laps int
}

type HistoryInput struct {
	Limit int
}

// ProgressOutput is the published runner state. Remaining values are
// non-negative magnitudes; Index is -1 when stopped.
type ProgressOutput struct {
	SessionID string
	State     string
	Index     int
	Total     int

	TaskID       int
	Title        string
	Description  string
	CategoryID   string
	CategoryName string
	CategoryIcon string

	Lap              int
	ActiveLap        int
	TotalActiveLaps  int
	TotalLaps        int
	TaskIndexInLap   int
	TotalTasksInLap  int
	Occurrence       int
	TotalOccurrences int

	Duration     int
	BaseDuration int
	Remaining    int
	TaskElapsed  int
	TaskPercent  int

	LapElapsed   int
	LapRemaining int
	LapPercent   int

	SessionElapsed   int
	SessionRemaining int
	SessionPercent   int

	TaskSessionTotal int
	ChangeDelta      int
	ChangePercent    int

	CompletedOccurrences map[int]int
}

func (p ProgressOutput) Running() bool { return p.State == "RUNNING" }
func (p ProgressOutput) Stopped() bool { return p.State == "" || p.State == "STOPPED" }

type TaskTotalOutput struct {
	TaskID      int
	Title       string
	Seconds     int
	Occurrences int
}

type SummaryOutput struct {
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
	Tasks            []TaskTotalOutput
	JournalPath      string
}

type PlanEntry struct {
	Index            int
	Lap              int
	ActiveLap        int
	TaskID           int
	Title            string
	CategoryIcon     string
	Duration         int
	BaseDuration     int
	Occurrence       int
	TotalOccurrences int
	StartsAt         int
}

type PlanOutput struct {
	Laps            int
	TotalActiveLaps int
	TotalSeconds    int
	Entries         []PlanEntry
}
