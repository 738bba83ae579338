package service

import (
	"context"
	"time"

	"recipeshare/internal/repository"
)

// JanitorService drops expired sessions in the background.
type JanitorService struct {
	sessions repository.Sessions
}

func NewJanitorService(sessions repository.Sessions) *JanitorService {
	return &JanitorService{sessions: sessions}
}

// Run ticks at the given interval until ctx is canceled. Purge failures are
// transient (busy database); the next tick retries.
func (s *JanitorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			_, _ = s.sessions.PurgeExpired(ctx, now)
		}
	}
}
