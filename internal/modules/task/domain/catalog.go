package domain

import (
	"fmt"

	apperrors "laprun/internal/platform/errors"
)

// Catalog is the user's task repository and lap-list. Ids are assigned from
// LastID and never reused while tasks exist.
type Catalog struct {
	Tasks   []Task
	LapList []int
	LastID  int
	Panels  map[string]bool
}

func (c *Catalog) Find(id int) (Task, bool) {
	for _, t := range c.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

func (c *Catalog) Create(t Task) (Task, error) {
	t = t.Normalize()
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	c.LastID++
	t.ID = c.LastID
	c.Tasks = append(c.Tasks, t)
	return t, nil
}

func (c *Catalog) Update(t Task) (Task, error) {
	t = t.Normalize()
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	for i := range c.Tasks {
		if c.Tasks[i].ID == t.ID {
			c.Tasks[i] = t
			return t, nil
		}
	}
	return Task{}, notFound(t.ID)
}

// Delete removes the task and its lap-list slot.
func (c *Catalog) Delete(id int) error {
	for i := range c.Tasks {
		if c.Tasks[i].ID == id {
			c.Tasks = append(c.Tasks[:i], c.Tasks[i+1:]...)
			c.RemoveFromLap(id)
			return nil
		}
	}
	return notFound(id)
}

// DeleteAll empties the repository and restarts id assignment.
func (c *Catalog) DeleteAll() {
	c.Tasks = nil
	c.LapList = nil
	c.LastID = 0
}

func (c *Catalog) Duplicate(id int) (Task, error) {
	original, ok := c.Find(id)
	if !ok {
		return Task{}, notFound(id)
	}
	c.LastID++
	copied := original.Normalize()
	copied.ID = c.LastID
	c.Tasks = append(c.Tasks, copied)
	return copied, nil
}

// AddToLap appends id to the lap-list; ids already present are left alone.
func (c *Catalog) AddToLap(id int) error {
	if _, ok := c.Find(id); !ok {
		return notFound(id)
	}
	if c.lapIndex(id) < 0 {
		c.LapList = append(c.LapList, id)
	}
	return nil
}

func (c *Catalog) AddAllToLap() {
	for _, t := range c.Tasks {
		if c.lapIndex(t.ID) < 0 {
			c.LapList = append(c.LapList, t.ID)
		}
	}
}

func (c *Catalog) RemoveFromLap(id int) {
	if i := c.lapIndex(id); i >= 0 {
		c.LapList = append(c.LapList[:i], c.LapList[i+1:]...)
	}
}

func (c *Catalog) ClearLap() {
	c.LapList = nil
}

// MoveInLap moves id to position (0-based, clamped to the list).
func (c *Catalog) MoveInLap(id, position int) error {
	from := c.lapIndex(id)
	if from < 0 {
		return fmt.Errorf("%w: task %d is not in the lap-list", apperrors.ErrNotFound, id)
	}
	rest := append(append([]int(nil), c.LapList[:from]...), c.LapList[from+1:]...)
	position = clamp(position, 0, len(rest))
	moved := make([]int, 0, len(c.LapList))
	moved = append(moved, rest[:position]...)
	moved = append(moved, id)
	moved = append(moved, rest[position:]...)
	c.LapList = moved
	return nil
}

// LapTotal sums the base durations of the lap-list tasks.
func (c *Catalog) LapTotal() int {
	total := 0
	for _, id := range c.LapList {
		if t, ok := c.Find(id); ok {
			total += t.Duration
		}
	}
	return total
}

// SeedDemo replaces everything with the demo tasks and lap-list.
func (c *Catalog) SeedDemo() {
	c.Tasks = DemoTasks()
	c.LapList = DemoLapList()
	c.LastID = 0
	for _, t := range c.Tasks {
		if t.ID > c.LastID {
			c.LastID = t.ID
		}
	}
}

func (c *Catalog) SetPanelCollapsed(panel string, collapsed bool) {
	if c.Panels == nil {
		c.Panels = map[string]bool{}
	}
	c.Panels[panel] = collapsed
}

func (c *Catalog) lapIndex(id int) int {
	for i, v := range c.LapList {
		if v == id {
			return i
		}
	}
	return -1
}

func notFound(id int) error {
	return fmt.Errorf("%w: task %d", apperrors.ErrNotFound, id)
}
