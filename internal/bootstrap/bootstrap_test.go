package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"laprun/internal/platform/config"
	apperrors "laprun/internal/platform/errors"
)

type idleScheduler struct{}

func (idleScheduler) Every(time.Duration, func()) func() { return func() {} }

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Log.Console = false
	cfg.Journal = true
	app, err := build(cfg, idleScheduler{})
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	return app
}

func TestWiringGuardsLapEditsDuringSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	app := newTestApp(t)
	defer app.Close()

	if err := app.TaskCLI.SeedDemo(ctx); err != nil {
		t.Fatalf("seed demo: %v", err)
	}
	p, err := app.SessionCLI.PlayPause(ctx, 2)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !p.Running() {
		t.Fatalf("expected running, got %s", p.State)
	}
	if _, err := app.TaskCLI.ClearLap(ctx); !errors.Is(err, apperrors.ErrSessionActive) {
		t.Fatalf("expected session-active rejection, got %v", err)
	}
	if _, err := app.SessionCLI.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if _, err := app.TaskCLI.ClearLap(ctx); err != nil {
		t.Fatalf("clear lap after stop: %v", err)
	}
}

func TestCloseRecordsActiveSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	app := newTestApp(t)

	if err := app.TaskCLI.SeedDemo(ctx); err != nil {
		t.Fatalf("seed demo: %v", err)
	}
	if _, err := app.SessionCLI.PlayPause(ctx, 1); err != nil {
		t.Fatalf("play: %v", err)
	}
	cfg := app.Config
	if err := app.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := build(cfg, idleScheduler{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	history, err := reopened.SessionCLI.History(ctx, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].Finished {
		t.Fatalf("expected one stopped session, got %+v", history)
	}
	lap, err := reopened.TaskCLI.Lap(ctx)
	if err != nil {
		t.Fatalf("lap: %v", err)
	}
	if len(lap.Tasks) == 0 {
		t.Fatalf("expected seeded lap-list to persist")
	}
}
