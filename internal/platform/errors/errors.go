package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrSessionActive    = errors.New("session is active")
	ErrEmptyLapList     = errors.New("lap playlist is empty")
	ErrNothingScheduled = errors.New("no tasks scheduled for session")
)

var userMessages = map[error]string{
	ErrEmptyLapList:     "Add tasks to the Lap Playlist before starting.",
	ErrNothingScheduled: "No tasks are scheduled to run in this session with the current intervals and limits.",
	ErrSessionActive:    "Please stop the lap session to modify the playlist.",
}

// UserMessage returns the warning text shown to the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for sentinel, msg := range userMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return err.Error()
}
