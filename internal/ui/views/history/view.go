package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "laprun/internal/modules/session/dto"
	"laprun/internal/platform/timefmt"
	"laprun/internal/ui/theme"
)

const pageSize = 50

type HistoryPort interface {
	History(ctx context.Context, limit int) ([]sessiondto.SummaryOutput, error)
}

type LoadedMsg struct {
	Sessions []sessiondto.SummaryOutput
	Err      error
}

type sessionItem struct {
	s sessiondto.SummaryOutput
}

func (i sessionItem) Title() string {
	mark := theme.Good.Render("✓")
	if !i.s.Finished {
		mark = theme.Warn.Render("■")
	}
	return fmt.Sprintf("%s %s", mark, i.s.EndedAt.Local().Format("2006-01-02 15:04"))
}

func (i sessionItem) Description() string {
	return fmt.Sprintf("%d lap(s)  %s / %s", i.s.TotalLaps,
		timefmt.Format(i.s.CompletedSeconds), timefmt.Format(i.s.PlannedSeconds))
}

func (i sessionItem) FilterValue() string { return i.s.EndedAt.Format("2006-01-02") }

type Model struct {
	port   HistoryPort
	list   list.Model
	detail viewport.Model
	width  int
	height int
}

func New(port HistoryPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "History"
	l.Styles.Title = theme.Title
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	return Model{port: port, list: l, detail: vp}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		sessions, err := m.port.History(context.Background(), pageSize)
		return LoadedMsg{Sessions: sessions, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listW := m.width * 4 / 10
		m.list.SetSize(listW, m.height)
		m.detail.Width = m.width - listW - 4
		m.detail.Height = m.height - 4

	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "History: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "History"
		items := make([]list.Item, len(msg.Sessions))
		for i, s := range msg.Sessions {
			items[i] = sessionItem{s: s}
		}
		cmds = append(cmds, m.list.SetItems(items))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.detail.SetContent(m.renderDetail())
	m.detail, cmd = m.detail.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 4 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(m.width - listW - 2).
		Height(m.height - 2).
		Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(sessionItem)
	if !ok {
		return theme.Muted.Render("No sessions recorded yet")
	}
	s := item.s
	var sb strings.Builder
	outcome := "finished"
	if !s.Finished {
		outcome = "stopped"
	}
	sb.WriteString(theme.Title.Render("Session "+outcome) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:       ") + s.SessionID + "\n")
	sb.WriteString(theme.Muted.Render("started:  ") + s.StartedAt.Local().Format("2006-01-02 15:04:05") + "\n")
	sb.WriteString(theme.Muted.Render("ended:    ") + s.EndedAt.Local().Format("2006-01-02 15:04:05") + "\n")
	sb.WriteString(theme.Muted.Render("laps:     ") + fmt.Sprintf("%d (%d active)", s.TotalLaps, s.TotalActiveLaps) + "\n")
	sb.WriteString(theme.Muted.Render("entries:  ") + fmt.Sprintf("%d / %d", s.EntriesCompleted, s.EntriesTotal) + "\n")
	sb.WriteString(theme.Muted.Render("time:     ") + timefmt.Format(s.CompletedSeconds) + " / " + timefmt.Format(s.PlannedSeconds) + "\n\n")
	for _, t := range s.Tasks {
		sb.WriteString(fmt.Sprintf("  %-24s %3dx  %s\n", t.Title, t.Occurrences, timefmt.Format(t.Seconds)))
	}
	return sb.String()
}
