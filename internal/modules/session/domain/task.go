package domain

// Task is the session's frozen view of a user task. Category fields are
// carried for display only.
type Task struct {
	ID             int
	Title          string
	Description    string
	CategoryID     string
	CategoryName   string
	CategoryIcon   string
	Duration       int
	LapInterval    int
	GrowthFactor   int
	MaxOccurrences int
}

func (t Task) interval() int {
	if t.LapInterval < 1 {
		return 1
	}
	return t.LapInterval
}

func (t Task) maxOccurrences() int {
	if t.MaxOccurrences < 0 {
		return 0
	}
	return t.MaxOccurrences
}

// TaskSet is the input snapshot for a session: tasks by id plus the ordered
// lap-list.
type TaskSet struct {
	Tasks   map[int]Task
	LapList []int
}

// Clone copies the set so later edits by the owner cannot reach a session.
func (s TaskSet) Clone() TaskSet {
	tasks := make(map[int]Task, len(s.Tasks))
	for id, t := range s.Tasks {
		tasks[id] = t
	}
	return TaskSet{Tasks: tasks, LapList: append([]int(nil), s.LapList...)}
}
