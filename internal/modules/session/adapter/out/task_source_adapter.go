package out

import (
	"context"

	"laprun/internal/modules/session/domain"
	taskin "laprun/internal/modules/task/port/in"
)

// TaskSourceAdapter reads the task module's snapshot for a new session.
type TaskSourceAdapter struct {
	tasks taskin.Usecase
}

func NewTaskSourceAdapter(tasks taskin.Usecase) TaskSourceAdapter {
	return TaskSourceAdapter{tasks: tasks}
}

func (a TaskSourceAdapter) Snapshot(ctx context.Context) (domain.TaskSet, error) {
	snap, err := a.tasks.Snapshot(ctx)
	if err != nil {
		return domain.TaskSet{}, err
	}
	set := domain.TaskSet{
		Tasks:   make(map[int]domain.Task, len(snap.Tasks)),
		LapList: append([]int(nil), snap.LapList...),
	}
	for _, t := range snap.Tasks {
		set.Tasks[t.ID] = domain.Task{
			ID:             t.ID,
			Title:          t.Title,
			Description:    t.Description,
			CategoryID:     t.CategoryID,
			CategoryName:   t.CategoryName,
			CategoryIcon:   t.CategoryIcon,
			Duration:       t.Duration,
			LapInterval:    t.LapInterval,
			GrowthFactor:   t.GrowthFactor,
			MaxOccurrences: t.MaxOccurrences,
		}
	}
	return set, nil
}
