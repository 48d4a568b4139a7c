package runner

import (
	"strings"
	"testing"

	sessiondto "laprun/internal/modules/session/dto"
)

func TestLapCountFrozenWhileActive(t *testing.T) {
	t.Parallel()
	m := New(0)
	if m.Laps() != 1 {
		t.Fatalf("expected lap count to floor at 1, got %d", m.Laps())
	}
	if !m.SetLaps(3) || m.Laps() != 3 {
		t.Fatalf("expected lap count 3 while stopped")
	}
	m.SetProgress(sessiondto.ProgressOutput{State: "RUNNING", TotalLaps: 3})
	if m.SetLaps(5) {
		t.Fatalf("lap count must not change while running")
	}
	m.SetProgress(sessiondto.ProgressOutput{State: "PAUSED", TotalLaps: 3})
	if m.SetLaps(5) {
		t.Fatalf("lap count must not change while paused")
	}
	m.SetSummary(sessiondto.SummaryOutput{Finished: true, TotalLaps: 3})
	if m.SetLaps(0) || m.Laps() != 3 {
		t.Fatalf("invalid lap count should be ignored")
	}
	if !m.SetLaps(2) {
		t.Fatalf("expected lap count to change after the session ended")
	}
}

func TestViewShowsRunningTask(t *testing.T) {
	t.Parallel()
	m := New(2)
	m.SetProgress(sessiondto.ProgressOutput{
		State: "RUNNING", Index: 0, Total: 4, Title: "Stretch",
		Occurrence: 1, TotalOccurrences: 2, TotalLaps: 2, ActiveLap: 1, TotalActiveLaps: 2,
		Duration: 60, Remaining: 30, TaskElapsed: 30, TaskPercent: 50,
		ChangeDelta: 6, ChangePercent: 10,
	})
	out := m.View()
	for _, want := range []string{"RUNNING", "Stretch", "occurrence 1 of 2", "entry 1 of 4", "+6s (+10%)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestViewShowsLastSummary(t *testing.T) {
	t.Parallel()
	m := New(1)
	m.SetSummary(sessiondto.SummaryOutput{
		Finished: false, EntriesTotal: 3, EntriesCompleted: 1,
		PlannedSeconds: 90, CompletedSeconds: 45, TotalLaps: 1,
		Tasks: []sessiondto.TaskTotalOutput{{TaskID: 1, Title: "Read", Seconds: 45, Occurrences: 1}},
	})
	out := m.View()
	for _, want := range []string{"Stopped early", "1 of 3 entries", "45s of 1m 30s", "Read"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}
