package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	taskout "laprun/internal/modules/task/adapter/out"
	"laprun/internal/modules/task/dto"
	taskin "laprun/internal/modules/task/port/in"
	"laprun/internal/modules/task/service"
	"laprun/internal/modules/task/usecase"
	apperrors "laprun/internal/platform/errors"
	"laprun/internal/platform/logx"
)

type fakeGuard struct{ active bool }

func (f *fakeGuard) Active(context.Context) bool { return f.active }

func newUsecase(t *testing.T) (taskin.Usecase, *fakeGuard) {
	t.Helper()
	store, err := taskout.NewSQLiteKVStore(filepath.Join(t.TempDir(), "laprun.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	guard := &fakeGuard{}
	return usecase.NewInteractor(service.NewCatalogService(store, logx.Nop()), guard), guard
}

func TestTaskLifecycle(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.TaskInput{Title: " Stretch ", CategoryID: "cat-1", Duration: 120, LapInterval: 200, GrowthFactor: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 1 || created.Title != "Stretch" || created.LapInterval != 99 || created.CategoryIcon != "💪" || created.InLap {
		t.Fatalf("unexpected created task %+v", created)
	}
	updated, err := uc.Update(ctx, dto.UpdateInput{ID: 1, TaskInput: dto.TaskInput{Title: "Stretch", Duration: 180, LapInterval: 2}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Duration != 180 || updated.CategoryID != "cat-0" {
		t.Fatalf("unexpected updated task %+v", updated)
	}
	dup, err := uc.Duplicate(ctx, 1)
	if err != nil || dup.ID != 2 {
		t.Fatalf("duplicate: %+v %v", dup, err)
	}
	if _, err := uc.Get(ctx, 3); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	list, err := uc.List(ctx, dto.ListInput{})
	if err != nil || len(list) != 2 || list[0].ID != 2 {
		t.Fatalf("default list is id desc: %+v %v", list, err)
	}
	if _, err := uc.List(ctx, dto.ListInput{SortField: "bogus"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid sort, got %v", err)
	}
	if err := uc.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := uc.Create(ctx, dto.TaskInput{Title: "x"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("zero duration must be rejected, got %v", err)
	}
}

func TestLapListEditing(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t)
	ctx := context.Background()
	if err := uc.SeedDemo(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	lap, err := uc.Lap(ctx)
	if err != nil || len(lap.Tasks) != 4 || lap.TotalSeconds != 900+60+30+300 {
		t.Fatalf("unexpected demo lap %+v %v", lap, err)
	}
	lap, err = uc.MoveInLap(ctx, dto.MoveInput{ID: 4, Position: 0})
	if err != nil || lap.Tasks[0].ID != 4 {
		t.Fatalf("move: %+v %v", lap, err)
	}
	lap, err = uc.RemoveFromLap(ctx, 1)
	if err != nil || len(lap.Tasks) != 3 || lap.TotalSeconds != 390 {
		t.Fatalf("remove: %+v %v", lap, err)
	}
	lap, err = uc.AddAllToLap(ctx)
	if err != nil || len(lap.Tasks) != 4 || lap.Tasks[3].ID != 1 {
		t.Fatalf("add all: %+v %v", lap, err)
	}
	lap, err = uc.ClearLap(ctx)
	if err != nil || len(lap.Tasks) != 0 {
		t.Fatalf("clear: %+v %v", lap, err)
	}
	if _, err := uc.AddToLap(ctx, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	snap, err := uc.Snapshot(ctx)
	if err != nil || len(snap.Tasks) != 4 || len(snap.LapList) != 1 || snap.LapList[0] != 3 {
		t.Fatalf("unexpected snapshot %+v %v", snap, err)
	}
	got, _ := uc.Get(ctx, 3)
	if !got.InLap {
		t.Fatalf("task 3 must be marked as in the lap-list")
	}
}

func TestActiveSessionBlocksEdits(t *testing.T) {
	t.Parallel()
	uc, guard := newUsecase(t)
	ctx := context.Background()
	if err := uc.SeedDemo(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	guard.active = true

	blocked := map[string]error{}
	_, blocked["update"] = uc.Update(ctx, dto.UpdateInput{ID: 1, TaskInput: dto.TaskInput{Title: "x", Duration: 1}})
	blocked["delete"] = uc.Delete(ctx, 1)
	blocked["delete all"] = uc.DeleteAll(ctx)
	_, blocked["add"] = uc.AddToLap(ctx, 1)
	_, blocked["add all"] = uc.AddAllToLap(ctx)
	_, blocked["remove"] = uc.RemoveFromLap(ctx, 1)
	_, blocked["move"] = uc.MoveInLap(ctx, dto.MoveInput{ID: 1})
	_, blocked["clear"] = uc.ClearLap(ctx)
	blocked["seed"] = uc.SeedDemo(ctx)
	for name, err := range blocked {
		if !errors.Is(err, apperrors.ErrSessionActive) {
			t.Fatalf("%s: expected session active error, got %v", name, err)
		}
	}
	if apperrors.UserMessage(apperrors.ErrSessionActive) != "Please stop the lap session to modify the playlist." {
		t.Fatalf("unexpected user message")
	}

	if _, err := uc.Create(ctx, dto.TaskInput{Title: "New", Duration: 10}); err != nil {
		t.Fatalf("create stays allowed during a session: %v", err)
	}
	if _, err := uc.Duplicate(ctx, 2); err != nil {
		t.Fatalf("duplicate stays allowed during a session: %v", err)
	}
	if err := uc.SetPanelCollapsed(ctx, dto.PanelInput{Panel: "repository", Collapsed: true}); err != nil {
		t.Fatalf("panel flags are not guarded: %v", err)
	}
	panels, err := uc.Panels(ctx)
	if err != nil || !panels["repository"] {
		t.Fatalf("unexpected panels %v %v", panels, err)
	}
	if len(uc.Categories(ctx)) != 10 {
		t.Fatalf("expected ten categories")
	}
}
