package domain

type Category struct {
	ID    string
	Name  string
	Icon  string
	Color string
}

const DefaultCategoryID = "cat-0"

var categories = []Category{
	{ID: "cat-0", Name: "None", Icon: "⚫", Color: "#78716c"},
	{ID: "cat-1", Name: "Body", Icon: "💪", Color: "#ef4444"},
	{ID: "cat-2", Name: "Mind", Icon: "🧠", Color: "#8b5cf6"},
	{ID: "cat-3", Name: "Work", Icon: "💼", Color: "#3b82f6"},
	{ID: "cat-4", Name: "Personal", Icon: "🏠", Color: "#22c55e"},
	{ID: "cat-5", Name: "Relations", Icon: "❤️", Color: "#ec4899"},
	{ID: "cat-6", Name: "Social", Icon: "🎉", Color: "#f97316"},
	{ID: "cat-7", Name: "Education", Icon: "📚", Color: "#0ea5e9"},
	{ID: "cat-8", Name: "Finance", Icon: "💰", Color: "#84cc16"},
	{ID: "cat-9", Name: "Planning", Icon: "📅", Color: "#78716c"},
}

func Categories() []Category {
	return append([]Category(nil), categories...)
}

// CategoryByID falls back to the default category for unknown ids.
func CategoryByID(id string) Category {
	for _, c := range categories {
		if c.ID == id {
			return c
		}
	}
	return categories[0]
}
