package out

import (
	"context"
	"sync"
)

// SessionGuard is bound to the session module after both modules are built.
// Until then it reports no active session.
type SessionGuard struct {
	mu     sync.RWMutex
	active func(context.Context) bool
}

func NewSessionGuard() *SessionGuard {
	return &SessionGuard{}
}

func (g *SessionGuard) Bind(active func(context.Context) bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.active = active
}

func (g *SessionGuard) Active(ctx context.Context) bool {
	g.mu.RLock()
	active := g.active
	g.mu.RUnlock()
	return active != nil && active(ctx)
}
