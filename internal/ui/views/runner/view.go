package runner

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "laprun/internal/modules/session/dto"
	"laprun/internal/platform/timefmt"
	"laprun/internal/ui/theme"
)

// Model renders the published runner state. It owns no port: the root model
// drives the session and pushes progress in.
type Model struct {
	progress sessiondto.ProgressOutput
	last     *sessiondto.SummaryOutput
	laps     int
	task     progress.Model
	lap      progress.Model
	session  progress.Model
	width    int
	height   int
}

func New(laps int) Model {
	if laps < 1 {
		laps = 1
	}
	return Model{
		laps:    laps,
		task:    newBar(string(theme.Peach), string(theme.Yellow)),
		lap:     newBar(string(theme.Sapphire), string(theme.Lavender)),
		session: newBar(string(theme.Green), string(theme.Sapphire)),
	}
}

func newBar(from, to string) progress.Model {
	return progress.New(progress.WithGradient(from, to), progress.WithoutPercentage())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		w := msg.Width - 20
		if w < 10 {
			w = 10
		}
		m.task.Width, m.lap.Width, m.session.Width = w, w, w
	}
	return m, nil
}

// SetProgress replaces the displayed runner state.
func (m *Model) SetProgress(p sessiondto.ProgressOutput) {
	m.progress = p
	if !p.Stopped() && p.TotalLaps > 0 {
		m.laps = p.TotalLaps
	}
}

// SetSummary records the most recent session end.
func (m *Model) SetSummary(s sessiondto.SummaryOutput) {
	m.last = &s
	m.progress = sessiondto.ProgressOutput{State: "STOPPED", Index: -1}
}

func (m Model) Progress() sessiondto.ProgressOutput { return m.progress }

// Laps is the lap count used for the next play.
func (m Model) Laps() int { return m.laps }

// SetLaps updates the lap count and reports whether it changed. The count is
// fixed while a session is running or paused.
func (m *Model) SetLaps(n int) bool {
	if !m.progress.Stopped() || n < 1 {
		return false
	}
	m.laps = n
	return true
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.renderHeader() + "\n\n")
	p := m.progress
	if p.Stopped() {
		sb.WriteString(theme.Muted.Render("Stopped. space: play  +/-: laps") + "\n")
		if m.last != nil {
			sb.WriteString("\n" + renderSummary(*m.last))
		}
		return lipgloss.NewStyle().Width(m.width).Height(m.height).Render(sb.String())
	}

	sb.WriteString(theme.Hot.Render(p.CategoryIcon+" "+p.Title) + "\n")
	if p.Description != "" {
		sb.WriteString(theme.Muted.Render(p.Description) + "\n")
	}
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%s · occurrence %d of %d · task %d of %d in lap",
		p.CategoryName, p.Occurrence, p.TotalOccurrences, p.TaskIndexInLap, p.TotalTasksInLap)))
	if ind := changeIndicator(p.ChangeDelta, p.ChangePercent); ind != "" {
		sb.WriteString("  " + ind)
	}
	sb.WriteString("\n\n")

	sb.WriteString(m.barRow("Task", m.task, p.TaskPercent, p.TaskElapsed, p.Remaining))
	sb.WriteString(m.barRow(fmt.Sprintf("Lap %d/%d", p.ActiveLap, p.TotalActiveLaps), m.lap, p.LapPercent, p.LapElapsed, p.LapRemaining))
	sb.WriteString(m.barRow("Session", m.session, p.SessionPercent, p.SessionElapsed, p.SessionRemaining))

	sb.WriteString("\n" + theme.Muted.Render(fmt.Sprintf("this task so far: %s", timefmt.Format(p.TaskSessionTotal))) + "\n")
	sb.WriteString(theme.Muted.Render("space:play/pause  s:stop  r:restart  n/p:next/prev  ]/[:lap skip") + "\n")
	return lipgloss.NewStyle().Width(m.width).Height(m.height).Render(sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderHeader() string {
	p := m.progress
	state := theme.Muted.Render("■ STOPPED")
	switch {
	case p.Running():
		state = theme.Good.Render("▶ RUNNING")
	case !p.Stopped():
		state = theme.Warn.Render("❚❚ PAUSED")
	}
	laps := theme.Title.Render(fmt.Sprintf("%d lap(s)", m.laps))
	if p.Stopped() {
		return state + "  " + laps
	}
	return fmt.Sprintf("%s  %s  %s", state, laps, theme.Muted.Render(fmt.Sprintf("entry %d of %d", p.Index+1, p.Total)))
}

func (m Model) barRow(label string, bar progress.Model, percent, elapsed, remaining int) string {
	return fmt.Sprintf("%-12s %s %4d%%  %s / %s\n",
		label,
		bar.ViewAs(float64(percent)/100),
		percent,
		timefmt.Format(elapsed),
		timefmt.Remaining(remaining),
	)
}

func changeIndicator(delta, pct int) string {
	if delta == 0 {
		return ""
	}
	text := fmt.Sprintf("%s (%+d%%)", signed(delta), pct)
	if delta > 0 {
		return theme.Bad.Render("▲ " + text)
	}
	return theme.Good.Render("▼ " + text)
}

func signed(seconds int) string {
	if seconds > 0 {
		return "+" + timefmt.Format(seconds)
	}
	return timefmt.Format(seconds)
}

func renderSummary(s sessiondto.SummaryOutput) string {
	outcome := theme.Good.Render("Finished")
	if !s.Finished {
		outcome = theme.Warn.Render("Stopped early")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Last session") + "  " + outcome + "\n")
	sb.WriteString(fmt.Sprintf("%d of %d entries · %s of %s · %d lap(s)\n",
		s.EntriesCompleted, s.EntriesTotal,
		timefmt.Format(s.CompletedSeconds), timefmt.Format(s.PlannedSeconds),
		s.TotalLaps))
	for _, t := range s.Tasks {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("  %-24s %3dx  %s", t.Title, t.Occurrences, timefmt.Format(t.Seconds))) + "\n")
	}
	if s.JournalPath != "" {
		sb.WriteString(theme.Muted.Render("journal: "+s.JournalPath) + "\n")
	}
	return sb.String()
}
