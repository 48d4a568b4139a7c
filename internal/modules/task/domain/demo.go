package domain

// DemoTasks is the starter set loaded by a reset.
func DemoTasks() []Task {
	return []Task{
		{ID: 1, Title: "Shower", Description: "Take a refreshing shower.", CategoryID: "cat-1", Duration: 900, LapInterval: 99},
		{ID: 2, Title: "Cleanup mail", Description: "Organize and archive personal emails.", CategoryID: "cat-4", Duration: 60, LapInterval: 2, GrowthFactor: 10},
		{ID: 3, Title: "Breathe", Description: "A short exercise to center yourself.", CategoryID: "cat-2", Duration: 30, LapInterval: 1, GrowthFactor: 5, MaxOccurrences: 3},
		{ID: 4, Title: "Code", Description: "Focused coding session.", CategoryID: "cat-3", Duration: 300, LapInterval: 5, GrowthFactor: -10},
	}
}

func DemoLapList() []int {
	return []int{1, 2, 3, 4}
}
