package domain

// Entry is one scheduled occurrence of a task in the session timeline.
type Entry struct {
	TaskID             int
	Lap                int
	CalculatedDuration int
	BaseDuration       int
	Occurrences        int
	TotalOccurrences   int
	TotalTasksInLap    int
	TaskIndexInLap     int
}

// Playlist is the expansion of a lap-list over a number of laps together with
// the cumulative indices used for progress queries.
type Playlist struct {
	Entries                     []Entry
	LapDurations                []int
	LapStartCumulativeDurations []int
	// CumulativeSessionDurations[i] is the session time before entry i starts.
	CumulativeSessionDurations []int
	TotalSessionDuration       int
	ActiveLapMap               map[int]int
	TotalActiveLaps            int
	TotalLaps                  int
	TaskOccurrences            map[int]int
}

// Empty reports whether nothing was scheduled.
func (p Playlist) Empty() bool { return len(p.Entries) == 0 }

// FirstEntryOfLap returns the index of the first entry scheduled in lap, or -1.
func (p Playlist) FirstEntryOfLap(lap int) int {
	for i, e := range p.Entries {
		if e.Lap == lap {
			return i
		}
	}
	return -1
}

// Expand schedules every task of lapList over totalLaps laps.
//
// Within a lap tasks keep lap-list order. A task fires on lap 0, then every
// LapInterval laps counted from the lap it last fired, until its
// MaxOccurrences cap (0 = unlimited). Ids missing from tasks are skipped.
func Expand(tasks map[int]Task, lapList []int, totalLaps int) Playlist {
	if totalLaps < 0 {
		totalLaps = 0
	}
	p := Playlist{
		LapDurations:                make([]int, totalLaps),
		LapStartCumulativeDurations: make([]int, totalLaps),
		ActiveLapMap:                map[int]int{},
		TotalLaps:                   totalLaps,
		TaskOccurrences:             map[int]int{},
	}

	buckets := make([][]Entry, totalLaps)
	lastFired := map[int]int{}
	cumulative := 0

	for lap := 0; lap < totalLaps; lap++ {
		p.LapStartCumulativeDurations[lap] = cumulative
		for _, taskID := range lapList {
			task, ok := tasks[taskID]
			if !ok {
				continue
			}
			soFar := p.TaskOccurrences[taskID]
			if limit := task.maxOccurrences(); limit > 0 && soFar >= limit {
				continue
			}
			last, fired := lastFired[taskID]
			if !fired {
				last = -1
			}
			if lap != 0 && !(lap > last && (lap-last)%task.interval() == 0) {
				continue
			}
			occurrence := soFar + 1
			p.TaskOccurrences[taskID] = occurrence
			buckets[lap] = append(buckets[lap], Entry{
				TaskID:             taskID,
				CalculatedDuration: CalculateDuration(task.Duration, task.GrowthFactor, occurrence),
				BaseDuration:       task.Duration,
				Occurrences:        occurrence,
			})
			lastFired[taskID] = lap
		}
		if len(buckets[lap]) == 0 {
			continue
		}
		p.TotalActiveLaps++
		p.ActiveLapMap[lap] = p.TotalActiveLaps
		for _, e := range buckets[lap] {
			p.LapDurations[lap] += e.CalculatedDuration
			cumulative += e.CalculatedDuration
		}
	}

	cumulative = 0
	for lap, bucket := range buckets {
		for i, e := range bucket {
			total := p.TaskOccurrences[e.TaskID]
			if limit := tasks[e.TaskID].maxOccurrences(); limit > 0 {
				total = limit
			}
			e.Lap = lap
			e.TotalTasksInLap = len(bucket)
			e.TaskIndexInLap = i + 1
			e.TotalOccurrences = total
			p.Entries = append(p.Entries, e)
			p.CumulativeSessionDurations = append(p.CumulativeSessionDurations, cumulative)
			cumulative += e.CalculatedDuration
		}
	}
	p.TotalSessionDuration = cumulative
	return p
}
