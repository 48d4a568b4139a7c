package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "laprun/internal/modules/session/dto"
	taskdto "laprun/internal/modules/task/dto"
	"laprun/internal/platform/config"
	apperrors "laprun/internal/platform/errors"
	"laprun/internal/platform/timefmt"
	"laprun/internal/ui/components"
	"laprun/internal/ui/theme"
	historyview "laprun/internal/ui/views/history"
	playlistview "laprun/internal/ui/views/playlist"
	runnerview "laprun/internal/ui/views/runner"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type sessionPort interface {
	PlayPause(ctx context.Context, laps int) (sessiondto.ProgressOutput, error)
	Stop(ctx context.Context) (sessiondto.ProgressOutput, error)
	Restart(ctx context.Context) (sessiondto.ProgressOutput, error)
	Next(ctx context.Context) (sessiondto.ProgressOutput, error)
	Prev(ctx context.Context) (sessiondto.ProgressOutput, error)
	SkipLap(ctx context.Context, direction int) (sessiondto.ProgressOutput, error)
	Status(ctx context.Context) (sessiondto.ProgressOutput, error)
	History(ctx context.Context, limit int) ([]sessiondto.SummaryOutput, error)
}

type taskPort interface {
	playlistview.PlaylistPort
	Create(ctx context.Context, input taskdto.TaskInput) (taskdto.TaskOutput, error)
	Delete(ctx context.Context, id int) error
	Duplicate(ctx context.Context, id int) (taskdto.TaskOutput, error)
	AddAllToLap(ctx context.Context) (taskdto.LapOutput, error)
	ClearLap(ctx context.Context) (taskdto.LapOutput, error)
	SeedDemo(ctx context.Context) error
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabPlaylist tabID = iota
	tabRunner
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{
	"Playlist", "Runner", "History",
}

// ─── async messages ───────────────────────────────────────────────────────────

type statusLoadedMsg struct {
	progress sessiondto.ProgressOutput
	err      error
}

// sessionResultMsg reports a session command. The new state itself arrives
// as a ProgressMsg through the observer.
type sessionResultMsg struct {
	action string
	err    error
}

type taskResultMsg struct {
	text string
	err  error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab       key.Binding
	Help      key.Binding
	Palette   key.Binding
	Quit      key.Binding
	PlayPause key.Binding
	Stop      key.Binding
	Restart   key.Binding
	Next      key.Binding
	Prev      key.Binding
	LapNext   key.Binding
	LapPrev   key.Binding
	Laps      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		PlayPause: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Stop:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Restart:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Next:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next task")),
		Prev:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous task")),
		LapNext:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next lap")),
		LapPrev:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous lap")),
		Laps:      key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "lap count")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.PlayPause, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Stop, k.Restart},
		{k.Next, k.Prev, k.LapNext, k.LapPrev, k.Laps},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the session
// controls, the global help overlay, and the command palette. All business
// logic is delegated to port interfaces; all rendering to sub-views.
type Model struct {
	session sessionPort
	tasks   taskPort

	playlistView playlistview.Model
	runnerView   runnerview.Model
	historyView  historyview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(defaultLaps int, tasks taskPort, session sessionPort) Model {
	return Model{
		session:      session,
		tasks:        tasks,
		playlistView: playlistview.New(tasks),
		runnerView:   runnerview.New(defaultLaps),
		historyView:  historyview.New(historyPortBridge{p: session}),
		activeTab:    tabPlaylist,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.playlistView.Init(),
		m.historyView.Init(),
		m.loadStatusCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts key input while open; session events still flow.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		if _, isKey := msg.(tea.KeyMsg); isKey {
			return m, cmd
		}
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case statusLoadedMsg:
		if msg.err != nil {
			m.status = "session status: " + msg.err.Error()
		} else {
			m.runnerView.SetProgress(msg.progress)
		}
		return m, nil

	case ProgressMsg:
		m.runnerView.SetProgress(msg.Progress)
		return m, nil

	case SessionEndedMsg:
		m.runnerView.SetSummary(msg.Summary)
		if msg.Summary.Finished {
			m.status = "session finished: " + timefmt.Format(msg.Summary.CompletedSeconds)
		} else {
			m.status = "session stopped: " + timefmt.Format(msg.Summary.CompletedSeconds)
		}
		return m, m.historyView.Reload()

	case sessionResultMsg:
		if msg.err != nil {
			m.status = apperrors.UserMessage(msg.err)
		} else {
			m.status = msg.action
		}
		return m, nil

	case taskResultMsg:
		if msg.err != nil {
			m.status = apperrors.UserMessage(msg.err)
			return m, nil
		}
		m.status = msg.text
		return m, m.playlistView.Reload()

	case components.StatusMsg:
		m.status = msg.Text
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case playlistview.LoadedMsg:
		var cmd tea.Cmd
		m.playlistView, cmd = m.playlistView.Update(msg)
		return m, cmd

	case playlistview.LapChangedMsg:
		var cmd tea.Cmd
		m.playlistView, cmd = m.playlistView.Update(msg)
		return m, cmd

	case historyview.LoadedMsg:
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case " ":
			return m, m.sessionCmd("play/pause", func(ctx context.Context) (sessiondto.ProgressOutput, error) {
				return m.session.PlayPause(ctx, m.runnerView.Laps())
			})
		}
		if m.activeTab == tabRunner {
			if cmd, handled := m.runnerKey(msg.String()); handled {
				return m, cmd
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabPlaylist:
		m.playlistView, tabCmd = m.playlistView.Update(msg)
	case tabRunner:
		m.runnerView, tabCmd = m.runnerView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) runnerKey(k string) (tea.Cmd, bool) {
	switch k {
	case "s":
		return m.sessionCmd("stopped", m.session.Stop), true
	case "r":
		return m.sessionCmd("restarted", m.session.Restart), true
	case "n":
		return m.sessionCmd("next task", m.session.Next), true
	case "p":
		return m.sessionCmd("previous task", m.session.Prev), true
	case "]":
		return m.skipLapCmd(1), true
	case "[":
		return m.skipLapCmd(-1), true
	case "+", "-":
		n := m.runnerView.Laps() + 1
		if k == "-" {
			n = m.runnerView.Laps() - 1
		}
		m.setLaps(n)
		return nil, true
	}
	return nil, false
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabPlaylist:
		return m.playlistView.View()
	case tabRunner:
		return m.runnerView.View()
	case tabHistory:
		return m.historyView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "laprun  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	p := m.runnerView.Progress()
	if !p.Stopped() {
		mark := "❚❚ "
		if p.Running() {
			mark = "● "
		}
		left = theme.Hot.Render(mark+p.Title+" "+timefmt.Remaining(p.Remaining)) + "  " + left
	}
	right := theme.Muted.Render(fmt.Sprintf("laps:%d  sort:%s  ?:help  :::palette  q:quit",
		m.runnerView.Laps(), m.playlistView.SortLabel()))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "play", "pause":
		p := m.runnerView.Progress()
		if (parts[0] == "play" && p.Running()) || (parts[0] == "pause" && !p.Running()) {
			m.status = "already " + strings.ToLower(stateLabel(p))
			return m, nil
		}
		return m, m.sessionCmd(parts[0], func(ctx context.Context) (sessiondto.ProgressOutput, error) {
			return m.session.PlayPause(ctx, m.runnerView.Laps())
		})

	case "stop":
		return m, m.sessionCmd("stopped", m.session.Stop)

	case "restart":
		return m, m.sessionCmd("restarted", m.session.Restart)

	case "next":
		return m, m.sessionCmd("next task", m.session.Next)

	case "prev":
		return m, m.sessionCmd("previous task", m.session.Prev)

	case "lap:next":
		return m, m.skipLapCmd(1)

	case "lap:prev":
		return m, m.skipLapCmd(-1)

	case "laps":
		if len(parts) < 2 {
			m.status = "usage: laps <n>"
			return m, nil
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 1 || n > config.MaxLaps {
			m.status = fmt.Sprintf("laps must be between 1 and %d", config.MaxLaps)
			return m, nil
		}
		m.setLaps(n)
		return m, nil

	case "lap:add-all":
		return m, m.taskCmd("all tasks added to lap", func(ctx context.Context) error {
			_, err := m.tasks.AddAllToLap(ctx)
			return err
		})

	case "lap:clear":
		return m, m.taskCmd("lap playlist cleared", func(ctx context.Context) error {
			_, err := m.tasks.ClearLap(ctx)
			return err
		})

	case "task:add":
		if len(parts) < 3 {
			m.status = "usage: task:add <seconds> <title>"
			return m, nil
		}
		secs, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid duration"
			return m, nil
		}
		title := strings.Join(parts[2:], " ")
		return m, m.taskCmd("task added: "+title, func(ctx context.Context) error {
			_, err := m.tasks.Create(ctx, taskdto.TaskInput{Title: title, Duration: secs})
			return err
		})

	case "task:duplicate", "task:delete":
		if len(parts) < 2 {
			m.status = "usage: " + parts[0] + " <id>"
			return m, nil
		}
		id, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid task id"
			return m, nil
		}
		if parts[0] == "task:delete" {
			return m, m.taskCmd(fmt.Sprintf("task #%d deleted", id), func(ctx context.Context) error {
				return m.tasks.Delete(ctx, id)
			})
		}
		return m, m.taskCmd(fmt.Sprintf("task #%d duplicated", id), func(ctx context.Context) error {
			_, err := m.tasks.Duplicate(ctx, id)
			return err
		})

	case "sort":
		if len(parts) < 2 {
			m.status = "usage: sort <field> [asc|desc]"
			return m, nil
		}
		order := ""
		if len(parts) >= 3 {
			order = parts[2]
		}
		m.activeTab = tabPlaylist
		return m, m.playlistView.SetSort(parts[1], order)

	case "seed-demo":
		// Seeding replaces the lap-list, so a running session is stopped first.
		return m, m.taskCmd("demo data loaded", func(ctx context.Context) error {
			if _, err := m.session.Stop(ctx); err != nil {
				return err
			}
			return m.tasks.SeedDemo(ctx)
		})

	case "history":
		m.activeTab = tabHistory
		return m, m.historyView.Reload()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabPlaylist:
		return m.playlistView.Filtering()
	case tabHistory:
		return m.historyView.Filtering()
	}
	return false
}

func (m *Model) setLaps(n int) {
	if n > config.MaxLaps {
		n = config.MaxLaps
	}
	if !m.runnerView.SetLaps(n) {
		if !m.runnerView.Progress().Stopped() {
			m.status = "stop the session to change the lap count"
		}
		return
	}
	m.status = fmt.Sprintf("%d lap(s)", n)
}

func stateLabel(p sessiondto.ProgressOutput) string {
	if p.State == "" {
		return "STOPPED"
	}
	return p.State
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 4}
	m.playlistView, _ = m.playlistView.Update(sz)
	m.runnerView, _ = m.runnerView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadStatusCmd() tea.Cmd {
	return func() tea.Msg {
		p, err := m.session.Status(context.Background())
		return statusLoadedMsg{progress: p, err: err}
	}
}

func (m Model) sessionCmd(action string, op func(ctx context.Context) (sessiondto.ProgressOutput, error)) tea.Cmd {
	return func() tea.Msg {
		_, err := op(context.Background())
		return sessionResultMsg{action: action, err: err}
	}
}

func (m Model) skipLapCmd(direction int) tea.Cmd {
	label := "next lap"
	if direction < 0 {
		label = "previous lap"
	}
	return m.sessionCmd(label, func(ctx context.Context) (sessiondto.ProgressOutput, error) {
		return m.session.SkipLap(ctx, direction)
	})
}

func (m Model) taskCmd(text string, op func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return taskResultMsg{text: text, err: op(context.Background())}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────

type historyPortBridge struct{ p sessionPort }

func (b historyPortBridge) History(ctx context.Context, limit int) ([]sessiondto.SummaryOutput, error) {
	return b.p.History(ctx, limit)
}
