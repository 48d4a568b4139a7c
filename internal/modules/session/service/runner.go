package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"laprun/internal/modules/session/domain"
	sessionout "laprun/internal/modules/session/port/out"
	"laprun/internal/platform/clock"
	apperrors "laprun/internal/platform/errors"
	"laprun/internal/platform/id"
	"laprun/internal/platform/logx"
)

const TickInterval = time.Second

type event struct {
	progress *domain.Progress
	summary  *domain.Summary
}

// Runner plays one session at a time. Operations and ticks are serialised by
// mu. Listener events raised while holding it are delivered in order after
// release.
type Runner struct {
	clock     clock.Clock
	ids       id.Generator
	source    sessionout.TaskSource
	scheduler sessionout.Scheduler
	log       logx.Logger

	mu         sync.Mutex
	listener   sessionout.Listener
	outbox     []event
	delivering bool
	idle       *sync.Cond
	state      domain.State
	cache      *domain.SessionCache
	laps       int
	index      int
	remaining  int
	stopTick   func()
	tickGen    uint64
}

func NewRunner(clk clock.Clock, ids id.Generator, source sessionout.TaskSource, scheduler sessionout.Scheduler, log logx.Logger) *Runner {
	r := &Runner{
		clock:     clk,
		ids:       ids,
		source:    source,
		scheduler: scheduler,
		log:       log.With(logx.String("component", "runner")),
		state:     domain.StateStopped,
		index:     -1,
	}
	r.idle = sync.NewCond(&r.mu)
	return r
}

// Close waits until queued listener events have been delivered. It must not
// be called from a listener callback.
func (r *Runner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for r.delivering {
		r.idle.Wait()
	}
	return nil
}

func (r *Runner) SetListener(listener sessionout.Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listener = listener
}

// PlayPause pauses a running session, resumes a paused one, or starts a new
// session of laps laps when stopped.
func (r *Runner) PlayPause(ctx context.Context, laps int) error {
	r.mu.Lock()
	defer r.unlock()

	switch r.state {
	case domain.StateRunning:
		r.cancelTick()
		r.state = domain.StatePaused
		r.log.Debug("session paused", logx.String("session", r.cache.ID), logx.Int("index", r.index))
		r.publish()
		return nil
	case domain.StateStopped:
		if err := r.start(ctx, laps); err != nil {
			return err
		}
		if r.state == domain.StateStopped {
			return nil
		}
	}

	if r.cache == nil || r.index < 0 || r.index >= len(r.cache.Entries) {
		return nil
	}
	r.state = domain.StateRunning
	r.startTick()
	r.publish()
	return nil
}

func (r *Runner) start(ctx context.Context, laps int) error {
	set, playlist, err := r.expand(ctx, laps)
	if err != nil {
		return err
	}
	r.laps = normalizeLaps(laps)
	r.cache = domain.NewSessionCache(r.ids.New(), r.clock.Now(), set, playlist)
	r.state = domain.StatePaused
	r.log.Info("session started",
		logx.String("session", r.cache.ID),
		logx.Int("laps", r.laps),
		logx.Int("entries", len(playlist.Entries)),
		logx.Int("planned_seconds", playlist.TotalSessionDuration),
	)
	r.load(0)
	return nil
}

// Plan expands the current task set without starting a session.
func (r *Runner) Plan(ctx context.Context, laps int) (domain.TaskSet, domain.Playlist, error) {
	return r.expand(ctx, laps)
}

func (r *Runner) expand(ctx context.Context, laps int) (domain.TaskSet, domain.Playlist, error) {
	set, err := r.source.Snapshot(ctx)
	if err != nil {
		return domain.TaskSet{}, domain.Playlist{}, fmt.Errorf("load task snapshot: %w", err)
	}
	if len(set.LapList) == 0 {
		return domain.TaskSet{}, domain.Playlist{}, apperrors.ErrEmptyLapList
	}
	set = set.Clone()
	playlist := domain.Expand(set.Tasks, set.LapList, normalizeLaps(laps))
	if playlist.Empty() {
		return domain.TaskSet{}, domain.Playlist{}, apperrors.ErrNothingScheduled
	}
	return set, playlist, nil
}

// Stop ends the session. finished distinguishes a completed session from a
// user stop.
func (r *Runner) Stop(finished bool) {
	r.mu.Lock()
	defer r.unlock()
	if r.state == domain.StateStopped {
		return
	}
	r.end(finished)
}

// Restart replays the session from its first entry, re-expanding the task
// snapshot captured at start. The session ends up running.
func (r *Runner) Restart() {
	r.mu.Lock()
	defer r.unlock()
	if r.state == domain.StateStopped || r.cache == nil {
		return
	}
	r.cancelTick()
	r.cache.Playlist = domain.Expand(r.cache.Snapshot.Tasks, r.cache.Snapshot.LapList, r.laps)
	r.cache.CompletedTaskDurations = map[int]int{}
	r.cache.CompletedOccurrences = map[int]int{}
	r.log.Info("session restarted", logx.String("session", r.cache.ID))
	if !r.load(0) {
		return
	}
	r.state = domain.StateRunning
	r.startTick()
	r.publish()
}

// Next completes the current entry early. The skipped entry is credited with
// its full duration.
func (r *Runner) Next() {
	r.mu.Lock()
	defer r.unlock()
	if r.state == domain.StateStopped {
		return
	}
	r.navigate(r.advance)
}

// Prev reloads the previous entry at its full duration. Credited durations
// are left untouched.
func (r *Runner) Prev() {
	r.mu.Lock()
	defer r.unlock()
	if r.state == domain.StateStopped || r.index <= 0 {
		return
	}
	r.navigate(func() {
		if r.load(r.index - 1) {
			r.publish()
		}
	})
}

// SkipLap jumps to the first entry of the next (direction > 0) or previous
// (direction < 0) lap that has entries. Skipping past the last lap ends the
// session as finished.
func (r *Runner) SkipLap(direction int) {
	r.mu.Lock()
	defer r.unlock()
	if r.state == domain.StateStopped || r.cache == nil || r.cache.Empty() || direction == 0 {
		return
	}
	if r.index < 0 || r.index >= len(r.cache.Entries) {
		return
	}
	step := 1
	if direction < 0 {
		step = -1
	}
	target := r.cache.Entries[r.index].Lap + step
	if target < 0 {
		return
	}
	if target >= r.cache.TotalLaps {
		r.navigate(r.finishAll)
		return
	}
	for lap := target; lap >= 0 && lap < r.cache.TotalLaps; lap += step {
		if first := r.cache.FirstEntryOfLap(lap); first >= 0 {
			r.navigate(func() {
				if r.load(first) {
					r.publish()
				}
			})
			return
		}
	}
	if step > 0 {
		r.navigate(r.finishAll)
	}
}

// Status returns the current progress, or a stopped progress with Index -1.
func (r *Runner) Status() domain.Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.progress()
}

// Active reports whether a session is running or paused.
func (r *Runner) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state != domain.StateStopped
}

func (r *Runner) tick(gen uint64) {
	r.mu.Lock()
	defer r.unlock()
	if gen != r.tickGen || r.state != domain.StateRunning {
		return
	}
	r.remaining--
	if r.remaining < 0 {
		r.advance()
		return
	}
	r.publish()
}

// navigate runs move with the tick cancelled, resuming it if the session is
// still running afterwards.
func (r *Runner) navigate(move func()) {
	wasRunning := r.state == domain.StateRunning
	r.cancelTick()
	move()
	if wasRunning && r.state == domain.StateRunning {
		r.startTick()
	}
}

func (r *Runner) advance() {
	entry := r.cache.Entries[r.index]
	r.cache.CompletedTaskDurations[entry.TaskID] += entry.CalculatedDuration
	if r.load(r.index + 1) {
		r.publish()
	}
}

func (r *Runner) finishAll() {
	r.load(len(r.cache.Entries))
}

// load positions playback at index. Past the end, or on an entry whose task
// is missing from the snapshot, the session ends as finished and load
// returns false.
func (r *Runner) load(index int) bool {
	if index >= len(r.cache.Entries) {
		r.index = len(r.cache.Entries)
		r.cache.CompletedOccurrences = domain.CompletedOccurrences(r.cache.Entries, r.index)
		r.end(true)
		return false
	}
	entry := r.cache.Entries[index]
	if _, ok := r.cache.Task(entry.TaskID); !ok {
		r.log.Warn("entry references a task outside the snapshot", logx.Int("task", entry.TaskID), logx.Int("index", index))
		r.end(true)
		return false
	}
	r.index = index
	r.remaining = entry.CalculatedDuration
	r.cache.CompletedOccurrences = domain.CompletedOccurrences(r.cache.Entries, index)
	return true
}

func (r *Runner) end(finished bool) {
	r.cancelTick()
	summary := r.summary(finished)
	r.log.Info("session ended",
		logx.String("session", summary.SessionID),
		logx.Bool("finished", finished),
		logx.Int("completed_seconds", summary.CompletedSeconds),
	)
	r.state = domain.StateStopped
	r.cache = nil
	r.index = -1
	r.remaining = 0
	r.outbox = append(r.outbox, event{summary: &summary})
}

// summary credits completed entries plus, for a user stop, the elapsed part
// of the entry in progress.
func (r *Runner) summary(finished bool) domain.Summary {
	c := r.cache
	completed := r.index
	if completed < 0 {
		completed = 0
	}
	if completed > len(c.Entries) {
		completed = len(c.Entries)
	}
	seconds := make(map[int]int, len(c.CompletedTaskDurations))
	for taskID, s := range c.CompletedTaskDurations {
		seconds[taskID] = s
	}
	if !finished && r.index >= 0 && r.index < len(c.Entries) {
		entry := c.Entries[r.index]
		seconds[entry.TaskID] += entry.CalculatedDuration - r.remaining
	}
	occurrences := domain.CompletedOccurrences(c.Entries, completed)

	s := domain.Summary{
		SessionID:        c.ID,
		StartedAt:        c.StartedAt,
		EndedAt:          r.clock.Now(),
		Finished:         finished,
		TotalLaps:        c.TotalLaps,
		TotalActiveLaps:  c.TotalActiveLaps,
		PlannedSeconds:   c.TotalSessionDuration,
		EntriesTotal:     len(c.Entries),
		EntriesCompleted: completed,
	}
	seen := map[int]bool{}
	for _, e := range c.Entries {
		if seen[e.TaskID] {
			continue
		}
		seen[e.TaskID] = true
		if seconds[e.TaskID] == 0 && occurrences[e.TaskID] == 0 {
			continue
		}
		task, _ := c.Task(e.TaskID)
		s.TaskTotals = append(s.TaskTotals, domain.TaskTotal{
			TaskID:      e.TaskID,
			Title:       task.Title,
			Seconds:     seconds[e.TaskID],
			Occurrences: occurrences[e.TaskID],
		})
		s.CompletedSeconds += seconds[e.TaskID]
	}
	return s
}

func (r *Runner) progress() domain.Progress {
	if r.state == domain.StateStopped || r.cache == nil {
		return domain.Progress{State: domain.StateStopped, Index: -1}
	}
	p, ok := domain.Project(r.cache, r.index, r.remaining)
	if !ok {
		return domain.Progress{SessionID: r.cache.ID, State: r.state, Index: r.index}
	}
	p.State = r.state
	return p
}

func (r *Runner) publish() {
	p := r.progress()
	r.outbox = append(r.outbox, event{progress: &p})
}

func (r *Runner) startTick() {
	r.tickGen++
	gen := r.tickGen
	r.stopTick = r.scheduler.Every(TickInterval, func() { r.tick(gen) })
}

func (r *Runner) cancelTick() {
	r.tickGen++
	if r.stopTick != nil {
		r.stopTick()
		r.stopTick = nil
	}
}

// unlock releases mu and drains the outbox. Only one goroutine drains at a
// time; events queued by others meanwhile, including from listener callbacks
// that call back into the runner, are picked up by the active drainer.
func (r *Runner) unlock() {
	if r.delivering {
		r.mu.Unlock()
		return
	}
	r.delivering = true
	for {
		pending := r.outbox
		r.outbox = nil
		listener := r.listener
		if len(pending) == 0 || listener == nil {
			r.delivering = false
			r.idle.Broadcast()
			r.mu.Unlock()
			return
		}
		r.mu.Unlock()
		deliver(listener, pending)
		r.mu.Lock()
	}
}

func deliver(listener sessionout.Listener, pending []event) {
	for _, ev := range pending {
		if ev.progress != nil {
			listener.OnProgress(*ev.progress)
		}
		if ev.summary != nil {
			listener.OnEnd(*ev.summary)
		}
	}
}

func normalizeLaps(laps int) int {
	if laps < 1 {
		return 1
	}
	return laps
}
