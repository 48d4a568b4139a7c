package domain_test

import (
	"errors"
	"testing"

	"laprun/internal/modules/task/domain"
	apperrors "laprun/internal/platform/errors"
)

func seeded() *domain.Catalog {
	c := &domain.Catalog{}
	c.SeedDemo()
	return c
}

func TestCreateAssignsIncreasingIDs(t *testing.T) {
	t.Parallel()
	c := seeded()
	created, err := c.Create(domain.Task{Title: "Stretch", Duration: 120})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 5 || c.LastID != 5 || created.LapInterval != 1 {
		t.Fatalf("unexpected created task %+v (last %d)", created, c.LastID)
	}
	if err := c.Delete(5); err != nil {
		t.Fatalf("delete: %v", err)
	}
	again, _ := c.Create(domain.Task{Title: "Again", Duration: 1})
	if again.ID != 6 {
		t.Fatalf("ids are never reused, got %d", again.ID)
	}
	if _, err := c.Create(domain.Task{Title: " ", Duration: 10}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteRemovesFromLapList(t *testing.T) {
	t.Parallel()
	c := seeded()
	if err := c.Delete(2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(c.LapList) != 3 || c.LapList[1] != 3 {
		t.Fatalf("unexpected lap-list %v", c.LapList)
	}
	if err := c.Delete(2); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateAndDuplicate(t *testing.T) {
	t.Parallel()
	c := seeded()
	updated, err := c.Update(domain.Task{ID: 3, Title: "Breathe deeply", Duration: 45, LapInterval: 1, GrowthFactor: 5, MaxOccurrences: 3, CategoryID: "cat-2"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got, _ := c.Find(3); got.Title != "Breathe deeply" || got.Duration != 45 || updated.ID != 3 {
		t.Fatalf("update not applied: %+v", got)
	}
	if _, err := c.Update(domain.Task{ID: 99, Title: "x", Duration: 1}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	dup, err := c.Duplicate(3)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if dup.ID != 5 || dup.Title != "Breathe deeply" || dup.MaxOccurrences != 3 {
		t.Fatalf("unexpected duplicate %+v", dup)
	}
	if len(c.LapList) != 4 {
		t.Fatalf("duplicate must not join the lap-list")
	}
}

func TestLapListOperations(t *testing.T) {
	t.Parallel()
	c := seeded()
	c.ClearLap()
	if err := c.AddToLap(3); err != nil {
		t.Fatalf("add: %v", err)
	}
	_ = c.AddToLap(1)
	_ = c.AddToLap(3)
	if len(c.LapList) != 2 || c.LapList[0] != 3 {
		t.Fatalf("duplicates must be ignored, got %v", c.LapList)
	}
	if err := c.AddToLap(42); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	c.AddAllToLap()
	if want := []int{3, 1, 2, 4}; !equal(c.LapList, want) {
		t.Fatalf("expected %v, got %v", want, c.LapList)
	}
	if err := c.MoveInLap(4, 0); err != nil {
		t.Fatalf("move: %v", err)
	}
	if want := []int{4, 3, 1, 2}; !equal(c.LapList, want) {
		t.Fatalf("expected %v, got %v", want, c.LapList)
	}
	_ = c.MoveInLap(4, 100)
	if want := []int{3, 1, 2, 4}; !equal(c.LapList, want) {
		t.Fatalf("expected %v, got %v", want, c.LapList)
	}
	_ = c.MoveInLap(2, 1)
	if want := []int{3, 2, 1, 4}; !equal(c.LapList, want) {
		t.Fatalf("expected %v, got %v", want, c.LapList)
	}
	if err := c.MoveInLap(9, 0); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	c.RemoveFromLap(2)
	if c.LapTotal() != 30+900+300 {
		t.Fatalf("unexpected lap total %d", c.LapTotal())
	}
}

func TestDeleteAllAndPanels(t *testing.T) {
	t.Parallel()
	c := seeded()
	c.DeleteAll()
	if len(c.Tasks) != 0 || len(c.LapList) != 0 || c.LastID != 0 {
		t.Fatalf("expected empty catalog, got %+v", c)
	}
	c.SetPanelCollapsed("repository", true)
	if !c.Panels["repository"] {
		t.Fatalf("panel flag not stored")
	}
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
