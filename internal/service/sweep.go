package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"campuscare/internal/models"
	"campuscare/internal/notify"
	"campuscare/internal/repository"
)

// Sweep periodically counts Pending requests and nudges the first
// administrator when any exist. It runs on its own goroutine, independent of
// request handling, and tolerates an empty store.
type Sweep struct {
	requests   repository.RequestRepository
	users      repository.UserRepository
	dispatcher Dispatcher
	interval   time.Duration
	log        zerolog.Logger
}

func NewSweep(requests repository.RequestRepository, users repository.UserRepository, dispatcher Dispatcher, interval time.Duration, log zerolog.Logger) *Sweep {
	return &Sweep{requests: requests, users: users, dispatcher: dispatcher, interval: interval, log: log}
}

// Run ticks until ctx is cancelled.
func (s *Sweep) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.interval).Msg("pending-request sweep started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("pending-request sweep stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick performs one sweep: zero pending requests or a missing administrator
// account both skip dispatch silently.
func (s *Sweep) Tick(ctx context.Context) {
	count, err := s.requests.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		s.log.Error().Err(err).Msg("sweep: count pending requests")
		return
	}
	if count == 0 {
		return
	}

	admin, err := s.users.FirstAdmin(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("sweep: load administrator")
		return
	}
	if admin == nil {
		return
	}

	delivered := s.dispatcher.Dispatch(ctx, 0, notify.PendingSummary(admin, count))
	s.log.Info().
		Int("pending", count).
		Str("admin", admin.Email).
		Bool("delivered", delivered).
		Msg("sweep: pending summary dispatched")
}
