package out

import (
	"sync"
	"time"
)

// WallScheduler drives ticks from a time.Ticker on its own goroutine.
type WallScheduler struct{}

func NewWallScheduler() WallScheduler {
	return WallScheduler{}
}

func (WallScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}
