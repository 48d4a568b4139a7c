package dto

type TaskInput struct {
	Title          string
	Description    string
	CategoryID     string
	Duration       int
	LapInterval    int
	GrowthFactor   int
	MaxOccurrences int
}

type UpdateInput struct {
	ID int
	TaskInput
}

type ListInput struct {
	SortField string
	SortOrder string
}

// MoveInput places a lap-list task at Position (0-based).
type MoveInput struct {
	ID       int
	Position int
}

type PanelInput struct {
	Panel     string
	Collapsed bool
}

type TaskOutput struct {
	ID             int
	Title          string
	Description    string
	CategoryID     string
	CategoryName   string
	CategoryIcon   string
	CategoryColor  string
	Duration       int
	LapInterval    int
	GrowthFactor   int
	MaxOccurrences int
	InLap          bool
}

type LapOutput struct {
	Tasks        []TaskOutput
	TotalSeconds int
}

type CategoryOutput struct {
	ID    string
	Name  string
	Icon  string
	Color string
}

// SnapshotOutput is the full task set plus the ordered lap-list ids.
type SnapshotOutput struct {
	Tasks   []TaskOutput
	LapList []int
}
