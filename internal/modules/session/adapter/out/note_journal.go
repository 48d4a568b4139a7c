package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"laprun/internal/modules/session/domain"
	"laprun/internal/platform/markdown"
	"laprun/internal/platform/slug"
	"laprun/internal/platform/timefmt"
)

// NoteJournal writes one markdown note per ended session under
// <dir>/YYYY/MM/DD.
type NoteJournal struct {
	dir string
}

func NewNoteJournal(dir string) *NoteJournal {
	return &NoteJournal{dir: dir}
}

func (j *NoteJournal) Write(_ context.Context, summary domain.Summary) (string, error) {
	date := summary.StartedAt.Local()
	dir := filepath.Join(j.dir, date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	base := fmt.Sprintf("%s-%s", date.Format("150405"), slug.Make(outcome(summary)+" "+strconv.Itoa(summary.TotalLaps)+" laps"))
	path, err := notePath(dir, base, summary.SessionID)
	if err != nil {
		return "", err
	}

	note := markdown.Note{
		Meta: map[string]any{
			"schema_version":    domain.SchemaVersion,
			"id":                summary.SessionID,
			"started_at":        summary.StartedAt.Format(time.RFC3339),
			"ended_at":          summary.EndedAt.Format(time.RFC3339),
			"finished":          summary.Finished,
			"total_laps":        summary.TotalLaps,
			"active_laps":       summary.TotalActiveLaps,
			"planned_seconds":   summary.PlannedSeconds,
			"completed_seconds": summary.CompletedSeconds,
		},
		Body: journalBody(summary),
	}
	rendered, err := note.Render()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write journal note: %w", err)
	}
	return path, nil
}

// notePath picks <base>.md, or <base>-N.md when another session already owns
// the name. A note of the same session is overwritten.
func notePath(dir, base, sessionID string) (string, error) {
	for n := 1; ; n++ {
		name := base + ".md"
		if n > 1 {
			name = fmt.Sprintf("%s-%d.md", base, n)
		}
		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("read journal note: %w", err)
		}
		existing, err := markdown.Parse(string(raw))
		if err == nil && existing.Meta["id"] == sessionID {
			return path, nil
		}
	}
}

func outcome(summary domain.Summary) string {
	if summary.Finished {
		return "finished"
	}
	return "stopped"
}

func journalBody(summary domain.Summary) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "# Lap session %s\n\n", summary.StartedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "- Outcome: %s\n", outcome(summary))
	fmt.Fprintf(&b, "- Laps: %d (%d active)\n", summary.TotalLaps, summary.TotalActiveLaps)
	fmt.Fprintf(&b, "- Entries: %d of %d\n", summary.EntriesCompleted, summary.EntriesTotal)
	fmt.Fprintf(&b, "- Time: %s of %s planned\n", timefmt.Format(summary.CompletedSeconds), timefmt.Format(summary.PlannedSeconds))
	if len(summary.TaskTotals) == 0 {
		return b.String()
	}
	rows := make([][]string, 0, len(summary.TaskTotals))
	for _, t := range summary.TaskTotals {
		rows = append(rows, []string{t.Title, strconv.Itoa(t.Occurrences), timefmt.Format(t.Seconds)})
	}
	b.WriteString("\n## Tasks\n\n")
	b.WriteString(markdown.Table([]string{"Task", "Occurrences", "Time"}, rows))
	return b.String()
}
