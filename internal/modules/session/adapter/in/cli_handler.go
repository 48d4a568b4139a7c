package in

import (
	"context"

	sessiondto "laprun/internal/modules/session/dto"
	sessionin "laprun/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) PlayPause(ctx context.Context, laps int) (sessiondto.ProgressOutput, error) {
	return h.usecase.PlayPause(ctx, sessiondto.PlayInput{Laps: laps})
}

func (h CLIHandler) Stop(ctx context.Context) (sessiondto.ProgressOutput, error) {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Restart(ctx context.Context) (sessiondto.ProgressOutput, error) {
	return h.usecase.Restart(ctx)
}

func (h CLIHandler) Next(ctx context.Context) (sessiondto.ProgressOutput, error) {
	return h.usecase.Next(ctx)
}

func (h CLIHandler) Prev(ctx context.Context) (sessiondto.ProgressOutput, error) {
	return h.usecase.Prev(ctx)
}

func (h CLIHandler) SkipLap(ctx context.Context, direction int) (sessiondto.ProgressOutput, error) {
	return h.usecase.SkipLap(ctx, sessiondto.SkipLapInput{Direction: direction})
}

func (h CLIHandler) Status(ctx context.Context) (sessiondto.ProgressOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Active(ctx context.Context) bool {
	return h.usecase.Active(ctx)
}

func (h CLIHandler) Plan(ctx context.Context, laps int) (sessiondto.PlanOutput, error) {
	return h.usecase.Plan(ctx, sessiondto.PlanInput{Laps: laps})
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]sessiondto.SummaryOutput, error) {
	return h.usecase.History(ctx, sessiondto.HistoryInput{Limit: limit})
}

func (h CLIHandler) Subscribe(observer sessionin.Observer) func() {
	return h.usecase.Subscribe(observer)
}
