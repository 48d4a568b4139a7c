package in

import (
	"context"

	"laprun/internal/modules/session/dto"
)

type Usecase interface {
	PlayPause(ctx context.Context, input dto.PlayInput) (dto.ProgressOutput, error)
	Stop(ctx context.Context) (dto.ProgressOutput, error)
	Restart(ctx context.Context) (dto.ProgressOutput, error)
	Next(ctx context.Context) (dto.ProgressOutput, error)
	Prev(ctx context.Context) (dto.ProgressOutput, error)
	SkipLap(ctx context.Context, input dto.SkipLapInput) (dto.ProgressOutput, error)
	Status(ctx context.Context) (dto.ProgressOutput, error)
	Plan(ctx context.Context, input dto.PlanInput) (dto.PlanOutput, error)
	History(ctx context.Context, input dto.HistoryInput) ([]dto.SummaryOutput, error)
	Active(ctx context.Context) bool
	Subscribe(observer Observer) (unsubscribe func())
}

// Observer is notified of published progress and of session ends. It must
// not block.
type Observer interface {
	OnProgress(progress dto.ProgressOutput)
	OnEnd(summary dto.SummaryOutput)
}
