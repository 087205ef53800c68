package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper drops expired sessions and reports how many it removed.
type Sweeper interface {
	Sweep() int
}

// StartSessionSweeper evicts idle edit sessions every interval until ctx is done.
// The returned channel closes once the loop has exited.
func StartSessionSweeper(ctx context.Context, sessions Sweeper, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	if sessions == nil || interval <= 0 {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := sessions.Sweep(); n > 0 {
					logger.Debug("session sweep", zap.Int("expired", n))
				}
			}
		}
	}()
	return done
}
