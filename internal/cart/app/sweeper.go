package app

import (
	"context"
	"log/slog"
	"time"
)

// SweepExpired invalidates every cart whose customer has been idle for longer
// than the session TTL, returning how many were removed.
func (s *Service) SweepExpired(ctx context.Context, now time.Time) int {
	if s.sessionTTL <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []string
	for customerID, seen := range s.lastSeen {
		if now.Sub(seen) > s.sessionTTL {
			expired = append(expired, customerID)
		}
	}

	removed := 0
	for _, customerID := range expired {
		if s.invalidateLocked(customerID) {
			removed++
		}
	}

	if removed > 0 {
		s.log.InfoContext(ctx, "expired carts invalidated", slog.Int("count", removed))
	}
	return removed
}

// RunSweeper calls SweepExpired every interval until ctx is cancelled.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) error {
	if s.sessionTTL <= 0 || interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.SweepExpired(ctx, s.now())
		}
	}
}
