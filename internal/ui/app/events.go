package app

import (
	tea "github.com/charmbracelet/bubbletea"

	sessiondto "laprun/internal/modules/session/dto"
)

// ProgressMsg carries a runner state published by the session.
type ProgressMsg struct{ Progress sessiondto.ProgressOutput }

// SessionEndedMsg carries the summary of a finished or stopped session.
type SessionEndedMsg struct{ Summary sessiondto.SummaryOutput }

// Observer forwards session events into a running program. It is called
// from the runner's tick goroutine; Send returns once the program has exited.
type Observer struct {
	send func(tea.Msg)
}

func NewObserver(send func(tea.Msg)) Observer {
	return Observer{send: send}
}

func (o Observer) OnProgress(p sessiondto.ProgressOutput) {
	o.send(ProgressMsg{Progress: p})
}

func (o Observer) OnEnd(s sessiondto.SummaryOutput) {
	o.send(SessionEndedMsg{Summary: s})
}
