package game

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"literature-client/internal/transport"
	"literature-client/pkg/storage"
)

type Option func(*Session)

func WithContext(ctx context.Context) Option {
	return func(s *Session) {
		s.ctx = ctx
	}
}

func WithTransport(t transport.Service) Option {
	return func(s *Session) {
		s.transport = t
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

func WithClock(c clockwork.Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

func WithCredentials(creds transport.Credentials) Option {
	return func(s *Session) {
		s.creds = creds
	}
}

// WithStorage fills credentials missing from WithCredentials with the
// persisted identity.
func WithStorage(st storage.Service) Option {
	return func(s *Session) {
		s.storage = st
	}
}

func WithErrorDisplayDuration(d time.Duration) Option {
	return func(s *Session) {
		s.config.ErrorDisplayDuration = d
	}
}

func WithAnnounceOnJoin(enabled bool) Option {
	return func(s *Session) {
		s.config.AnnounceOnJoin = enabled
	}
}
