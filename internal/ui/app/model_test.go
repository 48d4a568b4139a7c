package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	sessiondto "laprun/internal/modules/session/dto"
	taskdto "laprun/internal/modules/task/dto"
	apperrors "laprun/internal/platform/errors"
	"laprun/internal/ui/components"
)

type fakeSession struct {
	playLaps []int
	stops    int
	skips    []int
	playErr  error
}

func (f *fakeSession) PlayPause(_ context.Context, laps int) (sessiondto.ProgressOutput, error) {
	f.playLaps = append(f.playLaps, laps)
	return sessiondto.ProgressOutput{State: "RUNNING"}, f.playErr
}
func (f *fakeSession) Stop(context.Context) (sessiondto.ProgressOutput, error) {
	f.stops++
	return sessiondto.ProgressOutput{State: "STOPPED", Index: -1}, nil
}
func (f *fakeSession) Restart(context.Context) (sessiondto.ProgressOutput, error) {
	return sessiondto.ProgressOutput{}, nil
}
func (f *fakeSession) Next(context.Context) (sessiondto.ProgressOutput, error) {
	return sessiondto.ProgressOutput{}, nil
}
func (f *fakeSession) Prev(context.Context) (sessiondto.ProgressOutput, error) {
	return sessiondto.ProgressOutput{}, nil
}
func (f *fakeSession) SkipLap(_ context.Context, direction int) (sessiondto.ProgressOutput, error) {
	f.skips = append(f.skips, direction)
	return sessiondto.ProgressOutput{}, nil
}
func (f *fakeSession) Status(context.Context) (sessiondto.ProgressOutput, error) {
	return sessiondto.ProgressOutput{State: "STOPPED", Index: -1}, nil
}
func (f *fakeSession) History(context.Context, int) ([]sessiondto.SummaryOutput, error) {
	return nil, nil
}

type fakeTasks struct {
	seeded  int
	created []taskdto.TaskInput
}

func (f *fakeTasks) List(context.Context, string, string) ([]taskdto.TaskOutput, error) {
	return nil, nil
}
func (f *fakeTasks) Lap(context.Context) (taskdto.LapOutput, error) { return taskdto.LapOutput{}, nil }
func (f *fakeTasks) AddToLap(context.Context, int) (taskdto.LapOutput, error) {
	return taskdto.LapOutput{}, nil
}
func (f *fakeTasks) RemoveFromLap(context.Context, int) (taskdto.LapOutput, error) {
	return taskdto.LapOutput{}, nil
}
func (f *fakeTasks) MoveInLap(context.Context, int, int) (taskdto.LapOutput, error) {
	return taskdto.LapOutput{}, nil
}
func (f *fakeTasks) Panels(context.Context) (map[string]bool, error)       { return nil, nil }
func (f *fakeTasks) SetPanelCollapsed(context.Context, string, bool) error { return nil }
func (f *fakeTasks) Create(_ context.Context, in taskdto.TaskInput) (taskdto.TaskOutput, error) {
	f.created = append(f.created, in)
	return taskdto.TaskOutput{ID: 1, Title: in.Title}, nil
}
func (f *fakeTasks) Delete(context.Context, int) error { return nil }
func (f *fakeTasks) Duplicate(context.Context, int) (taskdto.TaskOutput, error) {
	return taskdto.TaskOutput{}, nil
}
func (f *fakeTasks) AddAllToLap(context.Context) (taskdto.LapOutput, error) {
	return taskdto.LapOutput{}, nil
}
func (f *fakeTasks) ClearLap(context.Context) (taskdto.LapOutput, error) {
	return taskdto.LapOutput{}, nil
}
func (f *fakeTasks) SeedDemo(context.Context) error {
	f.seeded++
	return nil
}

func submit(t *testing.T, m Model, input string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(components.PaletteSubmitMsg{Input: input})
	return next.(Model), cmd
}

func TestPaletteLapsThenPlay(t *testing.T) {
	t.Parallel()
	session := &fakeSession{}
	m := NewModel(1, &fakeTasks{}, session)

	m, _ = submit(t, m, "laps 3")
	if m.runnerView.Laps() != 3 {
		t.Fatalf("expected 3 laps, got %d", m.runnerView.Laps())
	}
	m, cmd := submit(t, m, "play")
	if cmd == nil {
		t.Fatalf("expected a play command")
	}
	next, _ := m.Update(cmd())
	m = next.(Model)
	if len(session.playLaps) != 1 || session.playLaps[0] != 3 {
		t.Fatalf("expected play with 3 laps, got %v", session.playLaps)
	}
	if m.status != "play" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestPaletteRejectsBadInput(t *testing.T) {
	t.Parallel()
	m := NewModel(1, &fakeTasks{}, &fakeSession{})
	m, _ = submit(t, m, "laps zero")
	if m.runnerView.Laps() != 1 || m.status == "" {
		t.Fatalf("expected invalid lap count to be rejected, status %q", m.status)
	}
	m, _ = submit(t, m, "warp")
	if m.status != "unknown command: warp" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestPlayFailureShowsWarning(t *testing.T) {
	t.Parallel()
	session := &fakeSession{playErr: apperrors.ErrEmptyLapList}
	m := NewModel(1, &fakeTasks{}, session)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(Model)
	next, _ = m.Update(cmd())
	m = next.(Model)
	if m.status != apperrors.UserMessage(apperrors.ErrEmptyLapList) {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestSeedDemoStopsSessionFirst(t *testing.T) {
	t.Parallel()
	session := &fakeSession{}
	tasks := &fakeTasks{}
	m := NewModel(1, tasks, session)
	m, cmd := submit(t, m, "seed-demo")
	next, _ := m.Update(cmd())
	m = next.(Model)
	if session.stops != 1 || tasks.seeded != 1 {
		t.Fatalf("expected stop then seed, got stops=%d seeded=%d", session.stops, tasks.seeded)
	}
	if m.status != "demo data loaded" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestRunnerKeysAndEvents(t *testing.T) {
	t.Parallel()
	session := &fakeSession{}
	m := NewModel(2, &fakeTasks{}, session)
	m.activeTab = tabRunner

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}})
	m = next.(Model)
	cmd()
	if len(session.skips) != 1 || session.skips[0] != 1 {
		t.Fatalf("expected forward lap skip, got %v", session.skips)
	}

	next, _ = m.Update(ProgressMsg{Progress: sessiondto.ProgressOutput{State: "RUNNING", Title: "Read", TotalLaps: 2}})
	m = next.(Model)
	if !m.runnerView.Progress().Running() {
		t.Fatalf("progress event not applied")
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	m = next.(Model)
	if m.runnerView.Laps() != 2 {
		t.Fatalf("lap count must stay fixed while running, got %d", m.runnerView.Laps())
	}

	next, _ = m.Update(SessionEndedMsg{Summary: sessiondto.SummaryOutput{Finished: true, CompletedSeconds: 90}})
	m = next.(Model)
	if !m.runnerView.Progress().Stopped() || m.status != "session finished: 1m 30s" {
		t.Fatalf("unexpected state after end: %q", m.status)
	}
}
