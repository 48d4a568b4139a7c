package usecase

import (
	"context"
	"sync"
	"time"

	"laprun/internal/modules/session/domain"
	sessiondto "laprun/internal/modules/session/dto"
	sessionin "laprun/internal/modules/session/port/in"
	sessionout "laprun/internal/modules/session/port/out"
	"laprun/internal/modules/session/service"
	"laprun/internal/platform/logx"
)

const recordTimeout = 5 * time.Second

type Interactor struct {
	runner  *service.Runner
	history sessionout.HistoryStore
	journal sessionout.Journal
	log     logx.Logger

	mu        sync.Mutex
	observers map[int]sessionin.Observer
	nextID    int
}

// NewInteractor registers itself as the runner's listener. history and
// journal may be nil.
func NewInteractor(runner *service.Runner, history sessionout.HistoryStore, journal sessionout.Journal, log logx.Logger) sessionin.Usecase {
	i := &Interactor{
		runner:    runner,
		history:   history,
		journal:   journal,
		log:       log,
		observers: map[int]sessionin.Observer{},
	}
	runner.SetListener(i)
	return i
}

func (i *Interactor) PlayPause(ctx context.Context, input sessiondto.PlayInput) (sessiondto.ProgressOutput, error) {
	if err := i.runner.PlayPause(ctx, input.Laps); err != nil {
		return sessiondto.ProgressOutput{}, err
	}
	return toProgressOutput(i.runner.Status()), nil
}

func (i *Interactor) Stop(context.Context) (sessiondto.ProgressOutput, error) {
	i.runner.Stop(false)
	return toProgressOutput(i.runner.Status()), nil
}

func (i *Interactor) Restart(context.Context) (sessiondto.ProgressOutput, error) {
	i.runner.Restart()
	return toProgressOutput(i.runner.Status()), nil
}

func (i *Interactor) Next(context.Context) (sessiondto.ProgressOutput, error) {
	i.runner.Next()
	return toProgressOutput(i.runner.Status()), nil
}

func (i *Interactor) Prev(context.Context) (sessiondto.ProgressOutput, error) {
	i.runner.Prev()
	return toProgressOutput(i.runner.Status()), nil
}

func (i *Interactor) SkipLap(_ context.Context, input sessiondto.SkipLapInput) (sessiondto.ProgressOutput, error) {
	i.runner.SkipLap(input.Direction)
	return toProgressOutput(i.runner.Status()), nil
}

func (i *Interactor) Status(context.Context) (sessiondto.ProgressOutput, error) {
	return toProgressOutput(i.runner.Status()), nil
}

func (i *Interactor) Active(context.Context) bool {
	return i.runner.Active()
}

func (i *Interactor) Plan(ctx context.Context, input sessiondto.PlanInput) (sessiondto.PlanOutput, error) {
	set, playlist, err := i.runner.Plan(ctx, input.Laps)
	if err != nil {
		return sessiondto.PlanOutput{}, err
	}
	out := sessiondto.PlanOutput{
		Laps:            playlist.TotalLaps,
		TotalActiveLaps: playlist.TotalActiveLaps,
		TotalSeconds:    playlist.TotalSessionDuration,
		Entries:         make([]sessiondto.PlanEntry, 0, len(playlist.Entries)),
	}
	for idx, e := range playlist.Entries {
		task := set.Tasks[e.TaskID]
		out.Entries = append(out.Entries, sessiondto.PlanEntry{
			Index:            idx,
			Lap:              e.Lap,
			ActiveLap:        playlist.ActiveLapMap[e.Lap],
			TaskID:           e.TaskID,
			Title:            task.Title,
			CategoryIcon:     task.CategoryIcon,
			Duration:         e.CalculatedDuration,
			BaseDuration:     e.BaseDuration,
			Occurrence:       e.Occurrences,
			TotalOccurrences: e.TotalOccurrences,
			StartsAt:         playlist.CumulativeSessionDurations[idx],
		})
	}
	return out, nil
}

func (i *Interactor) History(ctx context.Context, input sessiondto.HistoryInput) ([]sessiondto.SummaryOutput, error) {
	if i.history == nil {
		return nil, nil
	}
	summaries, err := i.history.List(ctx, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.SummaryOutput, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, toSummaryOutput(s, ""))
	}
	return out, nil
}

func (i *Interactor) Subscribe(observer sessionin.Observer) func() {
	i.mu.Lock()
	defer i.mu.Unlock()
	key := i.nextID
	i.nextID++
	i.observers[key] = observer
	return func() {
		i.mu.Lock()
		defer i.mu.Unlock()
		delete(i.observers, key)
	}
}

// OnProgress implements the runner listener.
func (i *Interactor) OnProgress(progress domain.Progress) {
	out := toProgressOutput(progress)
	for _, o := range i.snapshotObservers() {
		o.OnProgress(out)
	}
}

// OnEnd records the summary and forwards it to observers. Recording is bounded
// by recordTimeout and failures are logged; the session has already ended.
func (i *Interactor) OnEnd(summary domain.Summary) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if i.history != nil {
		if err := i.history.Append(ctx, summary); err != nil {
			i.log.Error("record session history", logx.String("session", summary.SessionID), logx.Err(err))
		}
	}
	path := ""
	if i.journal != nil {
		written, err := i.journal.Write(ctx, summary)
		if err != nil {
			i.log.Error("write session journal", logx.String("session", summary.SessionID), logx.Err(err))
		}
		path = written
	}

	out := toSummaryOutput(summary, path)
	for _, o := range i.snapshotObservers() {
		o.OnEnd(out)
	}
}

func (i *Interactor) snapshotObservers() []sessionin.Observer {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]sessionin.Observer, 0, len(i.observers))
	for key := 0; key < i.nextID; key++ {
		if o, ok := i.observers[key]; ok {
			out = append(out, o)
		}
	}
	return out
}

func toProgressOutput(p domain.Progress) sessiondto.ProgressOutput {
	completed := make(map[int]int, len(p.CompletedOccurrences))
	for id, n := range p.CompletedOccurrences {
		completed[id] = n
	}
	return sessiondto.ProgressOutput{
		SessionID:            p.SessionID,
		State:                string(p.State),
		Index:                p.Index,
		Total:                p.TotalEntries,
		TaskID:               p.Entry.TaskID,
		Title:                p.Task.Title,
		Description:          p.Task.Description,
		CategoryID:           p.Task.CategoryID,
		CategoryName:         p.Task.CategoryName,
		CategoryIcon:         p.Task.CategoryIcon,
		Lap:                  p.Entry.Lap,
		ActiveLap:            p.ActiveLap,
		TotalActiveLaps:      p.TotalActiveLaps,
		TotalLaps:            p.TotalLaps,
		TaskIndexInLap:       p.Entry.TaskIndexInLap,
		TotalTasksInLap:      p.Entry.TotalTasksInLap,
		Occurrence:           p.Entry.Occurrences,
		TotalOccurrences:     p.Entry.TotalOccurrences,
		Duration:             p.Entry.CalculatedDuration,
		BaseDuration:         p.Entry.BaseDuration,
		Remaining:            p.Remaining,
		TaskElapsed:          p.TaskElapsed,
		TaskPercent:          p.TaskPercent,
		LapElapsed:           p.LapElapsed,
		LapRemaining:         p.LapRemaining,
		LapPercent:           p.LapPercent,
		SessionElapsed:       p.SessionElapsed,
		SessionRemaining:     p.SessionRemaining,
		SessionPercent:       p.SessionPercent,
		TaskSessionTotal:     p.TaskSessionTotal,
		ChangeDelta:          p.ChangeDelta,
		ChangePercent:        p.ChangePercent,
		CompletedOccurrences: completed,
	}
}

func toSummaryOutput(s domain.Summary, journalPath string) sessiondto.SummaryOutput {
	out := sessiondto.SummaryOutput{
		SessionID:        s.SessionID,
		StartedAt:        s.StartedAt,
		EndedAt:          s.EndedAt,
		Finished:         s.Finished,
		TotalLaps:        s.TotalLaps,
		TotalActiveLaps:  s.TotalActiveLaps,
		PlannedSeconds:   s.PlannedSeconds,
		CompletedSeconds: s.CompletedSeconds,
		EntriesTotal:     s.EntriesTotal,
		EntriesCompleted: s.EntriesCompleted,
		JournalPath:      journalPath,
	}
	for _, t := range s.TaskTotals {
		out.Tasks = append(out.Tasks, sessiondto.TaskTotalOutput{
			TaskID:      t.TaskID,
			Title:       t.Title,
			Seconds:     t.Seconds,
			Occurrences: t.Occurrences,
		})
	}
	return out
}
