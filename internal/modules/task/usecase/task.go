package usecase

import (
	"context"
	"fmt"

	"laprun/internal/modules/task/domain"
	"laprun/internal/modules/task/dto"
	taskin "laprun/internal/modules/task/port/in"
	taskout "laprun/internal/modules/task/port/out"
	"laprun/internal/modules/task/service"
	apperrors "laprun/internal/platform/errors"
)

type Interactor struct {
	svc   *service.CatalogService
	guard taskout.SessionGuard
}

// NewInteractor builds the task usecase. A nil guard never blocks edits.
func NewInteractor(svc *service.CatalogService, guard taskout.SessionGuard) taskin.Usecase {
	return &Interactor{svc: svc, guard: guard}
}

func (i *Interactor) Create(ctx context.Context, input dto.TaskInput) (dto.TaskOutput, error) {
	var created domain.Task
	c, err := i.svc.Update(ctx, func(c *domain.Catalog) error {
		t, err := c.Create(fromInput(0, input))
		created = t
		return err
	})
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return toOutput(created, c), nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.TaskOutput, error) {
	if err := i.ensureStopped(ctx); err != nil {
		return dto.TaskOutput{}, err
	}
	var updated domain.Task
	c, err := i.svc.Update(ctx, func(c *domain.Catalog) error {
		t, err := c.Update(fromInput(input.ID, input.TaskInput))
		updated = t
		return err
	})
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return toOutput(updated, c), nil
}

func (i *Interactor) Delete(ctx context.Context, id int) error {
	if err := i.ensureStopped(ctx); err != nil {
		return err
	}
	_, err := i.svc.Update(ctx, func(c *domain.Catalog) error { return c.Delete(id) })
	return err
}

func (i *Interactor) DeleteAll(ctx context.Context) error {
	if err := i.ensureStopped(ctx); err != nil {
		return err
	}
	_, err := i.svc.Update(ctx, func(c *domain.Catalog) error {
		c.DeleteAll()
		return nil
	})
	return err
}

func (i *Interactor) Duplicate(ctx context.Context, id int) (dto.TaskOutput, error) {
	var copied domain.Task
	c, err := i.svc.Update(ctx, func(c *domain.Catalog) error {
		t, err := c.Duplicate(id)
		copied = t
		return err
	})
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return toOutput(copied, c), nil
}

func (i *Interactor) Get(ctx context.Context, id int) (dto.TaskOutput, error) {
	c, err := i.svc.Load(ctx)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	t, ok := c.Find(id)
	if !ok {
		return dto.TaskOutput{}, fmt.Errorf("%w: task %d", apperrors.ErrNotFound, id)
	}
	return toOutput(t, c), nil
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) ([]dto.TaskOutput, error) {
	spec, err := domain.ParseSort(input.SortField, input.SortOrder)
	if err != nil {
		return nil, err
	}
	c, err := i.svc.Load(ctx)
	if err != nil {
		return nil, err
	}
	sorted := domain.Sort(c.Tasks, spec)
	out := make([]dto.TaskOutput, 0, len(sorted))
	for _, t := range sorted {
		out = append(out, toOutput(t, c))
	}
	return out, nil
}

func (i *Interactor) Lap(ctx context.Context) (dto.LapOutput, error) {
	c, err := i.svc.Load(ctx)
	if err != nil {
		return dto.LapOutput{}, err
	}
	return toLapOutput(c), nil
}

func (i *Interactor) AddToLap(ctx context.Context, id int) (dto.LapOutput, error) {
	return i.editLap(ctx, func(c *domain.Catalog) error { return c.AddToLap(id) })
}

func (i *Interactor) AddAllToLap(ctx context.Context) (dto.LapOutput, error) {
	return i.editLap(ctx, func(c *domain.Catalog) error {
		c.AddAllToLap()
		return nil
	})
}

func (i *Interactor) RemoveFromLap(ctx context.Context, id int) (dto.LapOutput, error) {
	return i.editLap(ctx, func(c *domain.Catalog) error {
		c.RemoveFromLap(id)
		return nil
	})
}

func (i *Interactor) MoveInLap(ctx context.Context, input dto.MoveInput) (dto.LapOutput, error) {
	return i.editLap(ctx, func(c *domain.Catalog) error { return c.MoveInLap(input.ID, input.Position) })
}

func (i *Interactor) ClearLap(ctx context.Context) (dto.LapOutput, error) {
	return i.editLap(ctx, func(c *domain.Catalog) error {
		c.ClearLap()
		return nil
	})
}

func (i *Interactor) editLap(ctx context.Context, fn func(*domain.Catalog) error) (dto.LapOutput, error) {
	if err := i.ensureStopped(ctx); err != nil {
		return dto.LapOutput{}, err
	}
	c, err := i.svc.Update(ctx, fn)
	if err != nil {
		return dto.LapOutput{}, err
	}
	return toLapOutput(c), nil
}

func (i *Interactor) SeedDemo(ctx context.Context) error {
	if err := i.ensureStopped(ctx); err != nil {
		return err
	}
	_, err := i.svc.Update(ctx, func(c *domain.Catalog) error {
		c.SeedDemo()
		return nil
	})
	return err
}

func (i *Interactor) Categories(context.Context) []dto.CategoryOutput {
	cats := domain.Categories()
	out := make([]dto.CategoryOutput, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.CategoryOutput{ID: c.ID, Name: c.Name, Icon: c.Icon, Color: c.Color})
	}
	return out
}

func (i *Interactor) Snapshot(ctx context.Context) (dto.SnapshotOutput, error) {
	c, err := i.svc.Load(ctx)
	if err != nil {
		return dto.SnapshotOutput{}, err
	}
	out := dto.SnapshotOutput{LapList: append([]int{}, c.LapList...)}
	for _, t := range c.Tasks {
		out.Tasks = append(out.Tasks, toOutput(t, c))
	}
	return out, nil
}

func (i *Interactor) Panels(ctx context.Context) (map[string]bool, error) {
	c, err := i.svc.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Panels, nil
}

func (i *Interactor) SetPanelCollapsed(ctx context.Context, input dto.PanelInput) error {
	_, err := i.svc.Update(ctx, func(c *domain.Catalog) error {
		c.SetPanelCollapsed(input.Panel, input.Collapsed)
		return nil
	})
	return err
}

func (i *Interactor) ensureStopped(ctx context.Context) error {
	if i.guard != nil && i.guard.Active(ctx) {
		return apperrors.ErrSessionActive
	}
	return nil
}

func fromInput(id int, in dto.TaskInput) domain.Task {
	return domain.Task{
		ID:             id,
		Title:          in.Title,
		Description:    in.Description,
		CategoryID:     in.CategoryID,
		Duration:       in.Duration,
		LapInterval:    in.LapInterval,
		GrowthFactor:   in.GrowthFactor,
		MaxOccurrences: in.MaxOccurrences,
	}
}

func toOutput(t domain.Task, c domain.Catalog) dto.TaskOutput {
	cat := domain.CategoryByID(t.CategoryID)
	inLap := false
	for _, id := range c.LapList {
		if id == t.ID {
			inLap = true
			break
		}
	}
	return dto.TaskOutput{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		CategoryID:     cat.ID,
		CategoryName:   cat.Name,
		CategoryIcon:   cat.Icon,
		CategoryColor:  cat.Color,
		Duration:       t.Duration,
		LapInterval:    t.LapInterval,
		GrowthFactor:   t.GrowthFactor,
		MaxOccurrences: t.MaxOccurrences,
		InLap:          inLap,
	}
}

// toLapOutput lists lap-list tasks in order, skipping ids with no task.
func toLapOutput(c domain.Catalog) dto.LapOutput {
	out := dto.LapOutput{TotalSeconds: c.LapTotal()}
	for _, id := range c.LapList {
		if t, ok := c.Find(id); ok {
			out.Tasks = append(out.Tasks, toOutput(t, c))
		}
	}
	return out
}
