package domain_test

import (
	"math/rand/v2"
	"testing"

	"laprun/internal/modules/session/domain"
)

func task(id, duration, interval, growth, max int) domain.Task {
	return domain.Task{ID: id, Title: "task", Duration: duration, LapInterval: interval, GrowthFactor: growth, MaxOccurrences: max}
}

func tasksOf(ts ...domain.Task) map[int]domain.Task {
	out := make(map[int]domain.Task, len(ts))
	for _, t := range ts {
		out[t.ID] = t
	}
	return out
}

func lapsOf(p domain.Playlist, taskID int) []int {
	var laps []int
	for _, e := range p.Entries {
		if e.TaskID == taskID {
			laps = append(laps, e.Lap)
		}
	}
	return laps
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestExpandIntervalTwoOverFourLaps(t *testing.T) {
	t.Parallel()
	p := domain.Expand(tasksOf(task(1, 10, 2, 0, 0)), []int{1}, 4)
	if len(p.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(p.Entries))
	}
	if got := lapsOf(p, 1); !equalInts(got, []int{0, 2}) {
		t.Fatalf("expected laps [0 2], got %v", got)
	}
	for _, e := range p.Entries {
		if e.CalculatedDuration != 10 {
			t.Fatalf("expected duration 10, got %d", e.CalculatedDuration)
		}
	}
	if p.TotalActiveLaps != 2 || p.ActiveLapMap[0] != 1 || p.ActiveLapMap[2] != 2 {
		t.Fatalf("unexpected active lap numbering: %v total=%d", p.ActiveLapMap, p.TotalActiveLaps)
	}
	if _, ok := p.ActiveLapMap[1]; ok {
		t.Fatalf("zero-task lap 1 must not be numbered")
	}
	if p.LapStartCumulativeDurations[1] != 10 || p.LapStartCumulativeDurations[3] != 20 {
		t.Fatalf("unexpected lap start durations %v", p.LapStartCumulativeDurations)
	}
}

func TestExpandGrowthPerOccurrence(t *testing.T) {
	t.Parallel()
	p := domain.Expand(tasksOf(task(1, 100, 1, 10, 0)), []int{1}, 3)
	want := []int{100, 110, 121}
	for i, e := range p.Entries {
		if e.CalculatedDuration != want[i] || e.Occurrences != i+1 || e.TotalOccurrences != 3 || e.BaseDuration != 100 {
			t.Fatalf("entry %d unexpected: %+v", i, e)
		}
	}
	if p.TotalSessionDuration != 331 {
		t.Fatalf("expected total 331, got %d", p.TotalSessionDuration)
	}
}

func TestExpandAggressiveDecayStaysClamped(t *testing.T) {
	t.Parallel()
	p := domain.Expand(tasksOf(task(1, 1, 1, -90, 10)), []int{1}, 10)
	if len(p.Entries) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(p.Entries))
	}
	for _, e := range p.Entries {
		if e.CalculatedDuration < domain.MinDurationSeconds || e.CalculatedDuration > domain.MaxDurationSeconds {
			t.Fatalf("duration out of bounds: %+v", e)
		}
	}
}

func TestExpandIntervalsCountFromLastFire(t *testing.T) {
	t.Parallel()
	p := domain.Expand(tasksOf(task(1, 10, 2, 0, 0), task(2, 20, 3, 0, 0)), []int{1, 2}, 6)
	if got := lapsOf(p, 1); !equalInts(got, []int{0, 2, 4}) {
		t.Fatalf("A expected laps [0 2 4], got %v", got)
	}
	if got := lapsOf(p, 2); !equalInts(got, []int{0, 3}) {
		t.Fatalf("B expected laps [0 3], got %v", got)
	}
	first := p.Entries[0]
	second := p.Entries[1]
	if first.TaskID != 1 || second.TaskID != 2 {
		t.Fatalf("lap 0 must keep lap-list order, got %d then %d", first.TaskID, second.TaskID)
	}
	if first.TotalTasksInLap != 2 || first.TaskIndexInLap != 1 || second.TaskIndexInLap != 2 {
		t.Fatalf("unexpected in-lap positions: %+v %+v", first, second)
	}
	if p.TotalActiveLaps != 4 {
		t.Fatalf("expected laps 0,2,3,4 active, got %d", p.TotalActiveLaps)
	}
}

func TestExpandOccurrenceCaps(t *testing.T) {
	t.Parallel()
	p := domain.Expand(tasksOf(task(1, 5, 1, 0, 1), task(2, 5, 1, 0, 3)), []int{1, 2}, 8)
	if got := lapsOf(p, 1); !equalInts(got, []int{0}) {
		t.Fatalf("max 1 should fire once, got %v", got)
	}
	if got := lapsOf(p, 2); !equalInts(got, []int{0, 1, 2}) {
		t.Fatalf("max 3 should fire on laps 0..2, got %v", got)
	}
	for _, e := range p.Entries {
		if e.TaskID == 2 && e.TotalOccurrences != 3 {
			t.Fatalf("capped task reports cap as total, got %d", e.TotalOccurrences)
		}
	}
}

func TestExpandCapAboveActualReportsCap(t *testing.T) {
	t.Parallel()
	p := domain.Expand(tasksOf(task(1, 5, 1, 0, 10)), []int{1}, 2)
	if p.Entries[0].TotalOccurrences != 10 {
		t.Fatalf("total occurrences follows the cap when set, got %d", p.Entries[0].TotalOccurrences)
	}
}

func TestExpandIntervalLongerThanSession(t *testing.T) {
	t.Parallel()
	p := domain.Expand(tasksOf(task(1, 900, 99, 0, 0)), []int{1}, 5)
	if got := lapsOf(p, 1); !equalInts(got, []int{0}) {
		t.Fatalf("expected single lap-0 firing, got %v", got)
	}
}

func TestExpandSingleLap(t *testing.T) {
	t.Parallel()
	p := domain.Expand(tasksOf(task(1, 10, 1, 0, 0), task(2, 10, 4, 0, 0), task(3, 10, 2, 5, 0)), []int{3, 1, 2}, 1)
	if len(p.Entries) != 3 {
		t.Fatalf("every task fires once on a one-lap session, got %d", len(p.Entries))
	}
	if p.Entries[0].TaskID != 3 || p.Entries[2].TaskID != 2 {
		t.Fatalf("unexpected order %+v", p.Entries)
	}
}

func TestExpandSkipsMissingTasksAndEmptyInput(t *testing.T) {
	t.Parallel()
	p := domain.Expand(tasksOf(task(1, 10, 1, 0, 0)), []int{42, 1}, 2)
	if len(p.Entries) != 2 || p.Entries[0].TaskID != 1 {
		t.Fatalf("missing ids must be skipped silently, got %+v", p.Entries)
	}
	empty := domain.Expand(tasksOf(task(1, 10, 1, 0, 0)), nil, 3)
	if !empty.Empty() || empty.TotalSessionDuration != 0 || empty.TotalActiveLaps != 0 {
		t.Fatalf("empty lap-list must produce nothing, got %+v", empty)
	}
}

func TestExpandFirstEntryOfLap(t *testing.T) {
	t.Parallel()
	p := domain.Expand(tasksOf(task(1, 10, 2, 0, 0), task(2, 10, 1, 0, 0)), []int{1, 2}, 3)
	if got := p.FirstEntryOfLap(1); got != 2 {
		t.Fatalf("lap 1 starts at entry 2, got %d", got)
	}
	if got := p.FirstEntryOfLap(5); got != -1 {
		t.Fatalf("unknown lap must be -1, got %d", got)
	}
}

func TestExpandInvariants(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(3, 5))
	for round := 0; round < 300; round++ {
		n := 1 + rng.IntN(6)
		tasks := map[int]domain.Task{}
		var lapList []int
		for id := 1; id <= n; id++ {
			tasks[id] = task(id, 1+rng.IntN(600), 1+rng.IntN(5), rng.IntN(199)-99, rng.IntN(4))
			lapList = append(lapList, id)
		}
		totalLaps := 1 + rng.IntN(12)
		p := domain.Expand(tasks, lapList, totalLaps)

		counts := map[int]int{}
		lapSums := make([]int, totalLaps)
		for i, e := range p.Entries {
			counts[e.TaskID]++
			lapSums[e.Lap] += e.CalculatedDuration
			if i > 0 && p.CumulativeSessionDurations[i] < p.CumulativeSessionDurations[i-1] {
				t.Fatalf("cumulative durations must be non-decreasing: %v", p.CumulativeSessionDurations)
			}
		}
		for id, tk := range tasks {
			if tk.MaxOccurrences > 0 && counts[id] > tk.MaxOccurrences {
				t.Fatalf("task %d fired %d times over cap %d", id, counts[id], tk.MaxOccurrences)
			}
		}
		for lap := range lapSums {
			if lapSums[lap] != p.LapDurations[lap] {
				t.Fatalf("lap %d sum %d != lapDurations %d", lap, lapSums[lap], p.LapDurations[lap])
			}
		}
		if len(p.Entries) > 0 {
			last := len(p.Entries) - 1
			if p.CumulativeSessionDurations[last]+p.Entries[last].CalculatedDuration != p.TotalSessionDuration {
				t.Fatalf("final cumulative + last duration must equal total")
			}
		}
	}
}
