package domain

import "time"

// SessionCache is the playlist of one session plus the bookkeeping that
// changes as playback moves. The playlist itself is never mutated; Restart
// replaces it wholesale.
type SessionCache struct {
	Playlist
	ID        string
	StartedAt time.Time
	// Snapshot is the task set captured when the session started. Restart
	// re-expands from it rather than from live definitions.
	Snapshot TaskSet
	// CompletedTaskDurations credits fully elapsed (or skipped) occurrences.
	CompletedTaskDurations map[int]int
	// CompletedOccurrences counts entries strictly before the current position.
	CompletedOccurrences map[int]int
}

func NewSessionCache(id string, startedAt time.Time, snapshot TaskSet, playlist Playlist) *SessionCache {
	return &SessionCache{
		Playlist:               playlist,
		ID:                     id,
		StartedAt:              startedAt,
		Snapshot:               snapshot,
		CompletedTaskDurations: map[int]int{},
		CompletedOccurrences:   map[int]int{},
	}
}

// Task returns the frozen task referenced by an entry.
func (c *SessionCache) Task(id int) (Task, bool) {
	t, ok := c.Snapshot.Tasks[id]
	return t, ok
}

// CompletedOccurrences counts, per task, the entries before position. A
// position past the end counts the whole playlist.
func CompletedOccurrences(entries []Entry, position int) map[int]int {
	if position > len(entries) {
		position = len(entries)
	}
	out := map[int]int{}
	for i := 0; i < position; i++ {
		out[entries[i].TaskID]++
	}
	return out
}
