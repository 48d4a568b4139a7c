package in

import (
	"context"

	"laprun/internal/modules/task/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.TaskInput) (dto.TaskOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.TaskOutput, error)
	Delete(ctx context.Context, id int) error
	DeleteAll(ctx context.Context) error
	Duplicate(ctx context.Context, id int) (dto.TaskOutput, error)
	Get(ctx context.Context, id int) (dto.TaskOutput, error)
	List(ctx context.Context, input dto.ListInput) ([]dto.TaskOutput, error)

	Lap(ctx context.Context) (dto.LapOutput, error)
	AddToLap(ctx context.Context, id int) (dto.LapOutput, error)
	AddAllToLap(ctx context.Context) (dto.LapOutput, error)
	RemoveFromLap(ctx context.Context, id int) (dto.LapOutput, error)
	MoveInLap(ctx context.Context, input dto.MoveInput) (dto.LapOutput, error)
	ClearLap(ctx context.Context) (dto.LapOutput, error)

	SeedDemo(ctx context.Context) error
	Categories(ctx context.Context) []dto.CategoryOutput
	Snapshot(ctx context.Context) (dto.SnapshotOutput, error)
	Panels(ctx context.Context) (map[string]bool, error)
	SetPanelCollapsed(ctx context.Context, input dto.PanelInput) error
}
