package in

import (
	"context"

	"laprun/internal/modules/task/dto"
	taskin "laprun/internal/modules/task/port/in"
)

type CLIHandler struct {
	usecase taskin.Usecase
}

func NewCLIHandler(usecase taskin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, input dto.TaskInput) (dto.TaskOutput, error) {
	return h.usecase.Create(ctx, input)
}

func (h CLIHandler) Update(ctx context.Context, id int, input dto.TaskInput) (dto.TaskOutput, error) {
	return h.usecase.Update(ctx, dto.UpdateInput{ID: id, TaskInput: input})
}

func (h CLIHandler) Delete(ctx context.Context, id int) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) DeleteAll(ctx context.Context) error {
	return h.usecase.DeleteAll(ctx)
}

func (h CLIHandler) Duplicate(ctx context.Context, id int) (dto.TaskOutput, error) {
	return h.usecase.Duplicate(ctx, id)
}

func (h CLIHandler) Get(ctx context.Context, id int) (dto.TaskOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) List(ctx context.Context, field, order string) ([]dto.TaskOutput, error) {
	return h.usecase.List(ctx, dto.ListInput{SortField: field, SortOrder: order})
}

func (h CLIHandler) Lap(ctx context.Context) (dto.LapOutput, error) {
	return h.usecase.Lap(ctx)
}

func (h CLIHandler) AddToLap(ctx context.Context, id int) (dto.LapOutput, error) {
	return h.usecase.AddToLap(ctx, id)
}

func (h CLIHandler) AddAllToLap(ctx context.Context) (dto.LapOutput, error) {
	return h.usecase.AddAllToLap(ctx)
}

func (h CLIHandler) RemoveFromLap(ctx context.Context, id int) (dto.LapOutput, error) {
	return h.usecase.RemoveFromLap(ctx, id)
}

// MoveInLap takes a 0-based position; positions past the end move to the bottom.
func (h CLIHandler) MoveInLap(ctx context.Context, id, position int) (dto.LapOutput, error) {
	return h.usecase.MoveInLap(ctx, dto.MoveInput{ID: id, Position: position})
}

func (h CLIHandler) ClearLap(ctx context.Context) (dto.LapOutput, error) {
	return h.usecase.ClearLap(ctx)
}

func (h CLIHandler) SeedDemo(ctx context.Context) error {
	return h.usecase.SeedDemo(ctx)
}

func (h CLIHandler) Categories(ctx context.Context) []dto.CategoryOutput {
	return h.usecase.Categories(ctx)
}

func (h CLIHandler) Panels(ctx context.Context) (map[string]bool, error) {
	return h.usecase.Panels(ctx)
}

func (h CLIHandler) SetPanelCollapsed(ctx context.Context, panel string, collapsed bool) error {
	return h.usecase.SetPanelCollapsed(ctx, dto.PanelInput{Panel: panel, Collapsed: collapsed})
}
