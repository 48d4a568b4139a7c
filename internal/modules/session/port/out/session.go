package out

import (
	"context"
	"time"

	"laprun/internal/modules/session/domain"
)

// TaskSource supplies the task definitions and lap-list a session starts from.
type TaskSource interface {
	Snapshot(ctx context.Context) (domain.TaskSet, error)
}

// Scheduler runs fn every interval until the returned stop is called. stop
// must not wait for an in-flight fn to return.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (stop func())
}

// Listener receives runner events in the order they were raised. Callbacks run
// outside the runner lock on a tick or operation goroutine and may call back
// into the runner. A slow callback holds up later events, so blocking work
// such as recording a summary must be bounded.
type Listener interface {
	OnProgress(progress domain.Progress)
	OnEnd(summary domain.Summary)
}

type HistoryStore interface {
	Append(ctx context.Context, summary domain.Summary) error
	List(ctx context.Context, limit int) ([]domain.Summary, error)
}

type Journal interface {
	Write(ctx context.Context, summary domain.Summary) (string, error)
}
