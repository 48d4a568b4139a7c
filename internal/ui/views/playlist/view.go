package playlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	taskdto "laprun/internal/modules/task/dto"
	apperrors "laprun/internal/platform/errors"
	"laprun/internal/platform/timefmt"
	"laprun/internal/ui/components"
	"laprun/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type PlaylistPort interface {
	List(ctx context.Context, field, order string) ([]taskdto.TaskOutput, error)
	Lap(ctx context.Context) (taskdto.LapOutput, error)
	AddToLap(ctx context.Context, id int) (taskdto.LapOutput, error)
	RemoveFromLap(ctx context.Context, id int) (taskdto.LapOutput, error)
	MoveInLap(ctx context.Context, id, position int) (taskdto.LapOutput, error)
	Panels(ctx context.Context) (map[string]bool, error)
	SetPanelCollapsed(ctx context.Context, panel string, collapsed bool) error
}

const (
	PanelRepository = "repository"
	PanelLap        = "lapList"
)

var sortFields = []string{"id", "title", "duration", "category", "lapInterval", "maxOccurrences", "growthFactor"}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Tasks  []taskdto.TaskOutput
	Lap    taskdto.LapOutput
	Panels map[string]bool
	Err    error
}

type LapChangedMsg struct {
	lap   taskdto.LapOutput
	focus int
	err   error
}

// ─── list items ──────────────────────────────────────────────────────────────

type taskItem struct {
	task taskdto.TaskOutput
}

func (i taskItem) Title() string {
	mark := "  "
	if i.task.InLap {
		mark = theme.Good.Render("● ")
	}
	return fmt.Sprintf("%s%s %s", mark, i.task.CategoryIcon, i.task.Title)
}

func (i taskItem) Description() string { return describe(i.task) }
func (i taskItem) FilterValue() string { return i.task.Title }

type lapItem struct {
	pos  int
	task taskdto.TaskOutput
}

func (i lapItem) Title() string {
	return fmt.Sprintf("%2d. %s %s", i.pos+1, i.task.CategoryIcon, i.task.Title)
}
func (i lapItem) Description() string { return describe(i.task) }
func (i lapItem) FilterValue() string { return i.task.Title }

func describe(t taskdto.TaskOutput) string {
	parts := []string{
		fmt.Sprintf("#%d", t.ID),
		timefmt.Format(t.Duration),
	}
	if t.LapInterval > 1 {
		parts = append(parts, fmt.Sprintf("every %d laps", t.LapInterval))
	}
	if t.GrowthFactor != 0 {
		parts = append(parts, fmt.Sprintf("%+d%%", t.GrowthFactor))
	}
	if t.MaxOccurrences > 0 {
		parts = append(parts, fmt.Sprintf("max %d", t.MaxOccurrences))
	}
	return strings.Join(parts, "  ")
}

// ─── model ───────────────────────────────────────────────────────────────────

type pane int

const (
	paneRepository pane = iota
	paneLap
)

type Model struct {
	port      PlaylistPort
	repo      list.Model
	lap       list.Model
	focus     pane
	collapsed map[string]bool
	lapTotal  int
	sortField string
	sortOrder string
	width     int
	height    int
}

func New(port PlaylistPort) Model {
	return Model{
		port:      port,
		repo:      newList("Task Repository"),
		lap:       newList("Lap Playlist"),
		collapsed: map[string]bool{},
	}
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = title
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	return l
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload refetches the repository, the lap-list and the panel flags.
func (m Model) Reload() tea.Cmd {
	field, order := m.sortField, m.sortOrder
	return func() tea.Msg {
		ctx := context.Background()
		tasks, err := m.port.List(ctx, field, order)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		lap, err := m.port.Lap(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		panels, err := m.port.Panels(ctx)
		return LoadedMsg{Tasks: tasks, Lap: lap, Panels: panels, Err: err}
	}
}

// SetSort changes the repository ordering and reloads.
func (m *Model) SetSort(field, order string) tea.Cmd {
	m.sortField, m.sortOrder = field, order
	return m.Reload()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case LoadedMsg:
		if msg.Err != nil {
			return m, status("playlist: " + apperrors.UserMessage(msg.Err))
		}
		if msg.Panels != nil {
			m.collapsed = msg.Panels
		}
		items := make([]list.Item, len(msg.Tasks))
		for i, t := range msg.Tasks {
			items[i] = taskItem{task: t}
		}
		cmd := m.repo.SetItems(items)
		return m, tea.Batch(cmd, m.setLap(msg.Lap, m.lap.Index()))

	case LapChangedMsg:
		if msg.err != nil {
			return m, status(apperrors.UserMessage(msg.err))
		}
		// Repository rows carry the in-lap marker, so refresh them too.
		return m, tea.Batch(m.setLap(msg.lap, msg.focus), m.Reload())

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch msg.String() {
		case "p":
			m.focus = 1 - m.focus
			return m, nil
		case "a":
			if t, ok := m.selectedRepo(); ok {
				return m, m.lapCmd(len(m.lap.Items()), func(ctx context.Context) (taskdto.LapOutput, error) {
					return m.port.AddToLap(ctx, t.ID)
				})
			}
		case "x":
			if it, ok := m.selectedLap(); ok {
				return m, m.lapCmd(it.pos, func(ctx context.Context) (taskdto.LapOutput, error) {
					return m.port.RemoveFromLap(ctx, it.task.ID)
				})
			}
		case "+", "-", "T", "B":
			if it, ok := m.selectedLap(); ok {
				target := moveTarget(msg.String(), it.pos, len(m.lap.Items()))
				return m, m.lapCmd(target, func(ctx context.Context) (taskdto.LapOutput, error) {
					return m.port.MoveInLap(ctx, it.task.ID, target)
				})
			}
		case "c":
			panel := m.focusedPanel()
			collapsed := !m.collapsed[panel]
			m.collapsed[panel] = collapsed
			m.resize()
			return m, m.panelCmd(panel, collapsed)
		case "o":
			return m, m.SetSort(nextField(m.sortField), m.sortOrder)
		case "O":
			order := "asc"
			if m.sortOrder == "asc" {
				order = "desc"
			}
			return m, m.SetSort(m.sortField, order)
		}
	}

	var cmd tea.Cmd
	if m.focus == paneRepository {
		m.repo, cmd = m.repo.Update(msg)
	} else {
		m.lap, cmd = m.lap.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	half := m.width / 2
	left := m.renderPane(m.repo, PanelRepository, m.focus == paneRepository, half, "")
	footer := theme.Muted.Render("total " + timefmt.Format(m.lapTotal))
	right := m.renderPane(m.lap, PanelLap, m.focus == paneLap, m.width-half, footer)
	keys := theme.Muted.Render("p:pane  a:add  x:remove  +/-:move  T/B:top/bottom  c:collapse  o/O:sort")
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		keys,
	)
}

// Filtering reports whether a list filter is being typed.
func (m Model) Filtering() bool {
	return m.repo.FilterState() == list.Filtering || m.lap.FilterState() == list.Filtering
}

// SortLabel describes the current repository ordering.
func (m Model) SortLabel() string {
	field, order := m.sortField, m.sortOrder
	if field == "" {
		field = "id"
	}
	if order == "" {
		order = "desc"
	}
	return field + " " + order
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) setLap(lap taskdto.LapOutput, focus int) tea.Cmd {
	m.lapTotal = lap.TotalSeconds
	items := make([]list.Item, len(lap.Tasks))
	for i, t := range lap.Tasks {
		items[i] = lapItem{pos: i, task: t}
	}
	cmd := m.lap.SetItems(items)
	if focus >= len(items) {
		focus = len(items) - 1
	}
	if focus >= 0 {
		m.lap.Select(focus)
	}
	return cmd
}

func (m Model) renderPane(l list.Model, panel string, active bool, width int, footer string) string {
	style := theme.Pane
	if active {
		style = theme.PaneActive
	}
	body := l.View()
	if m.collapsed[panel] {
		body = theme.Title.Render(l.Title) + theme.Muted.Render(fmt.Sprintf("  (%d, collapsed)", len(l.Items())))
	}
	if footer != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, footer)
	}
	return style.Width(width - 4).Render(body)
}

func (m *Model) resize() {
	half := m.width / 2
	h := m.height - 4
	if h < 3 {
		h = 3
	}
	m.repo.SetSize(half-6, h)
	m.lap.SetSize(m.width-half-6, h-1)
}

func (m Model) focusedPanel() string {
	if m.focus == paneLap {
		return PanelLap
	}
	return PanelRepository
}

func (m Model) selectedRepo() (taskdto.TaskOutput, bool) {
	if m.focus != paneRepository {
		return taskdto.TaskOutput{}, false
	}
	it, ok := m.repo.SelectedItem().(taskItem)
	return it.task, ok
}

func (m Model) selectedLap() (lapItem, bool) {
	if m.focus != paneLap {
		return lapItem{}, false
	}
	it, ok := m.lap.SelectedItem().(lapItem)
	return it, ok
}

func moveTarget(key string, pos, n int) int {
	switch key {
	case "+":
		if pos > 0 {
			return pos - 1
		}
		return 0
	case "-":
		if pos < n-1 {
			return pos + 1
		}
		return pos
	case "T":
		return 0
	default:
		return n - 1
	}
}

func nextField(current string) string {
	for i, f := range sortFields {
		if f == current {
			return sortFields[(i+1)%len(sortFields)]
		}
	}
	return sortFields[1]
}

func (m Model) lapCmd(focus int, op func(ctx context.Context) (taskdto.LapOutput, error)) tea.Cmd {
	return func() tea.Msg {
		lap, err := op(context.Background())
		return LapChangedMsg{lap: lap, focus: focus, err: err}
	}
}

func (m Model) panelCmd(panel string, collapsed bool) tea.Cmd {
	return func() tea.Msg {
		if err := m.port.SetPanelCollapsed(context.Background(), panel, collapsed); err != nil {
			return components.StatusMsg{Text: "panel: " + err.Error()}
		}
		return nil
	}
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return components.StatusMsg{Text: text} }
}
