package game

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type ErrorOrigin int

const (
	OriginTransport ErrorOrigin = iota
	OriginApplication
	OriginProtocol
)

func (o ErrorOrigin) String() string {
	switch o {
	case OriginTransport:
		return "transport"
	case OriginApplication:
		return "application"
	case OriginProtocol:
		return "protocol"
	}
	return "unknown"
}

type Error struct {
	Origin  ErrorOrigin
	Message string
}

// ErrorSubscription delivers the active error on every change.
// A nil value means the surface was cleared.
type ErrorSubscription chan *Error

// ErrorSurface holds at most one active message of any origin. New
// errors replace the current one; every error auto-clears after a
// fixed interval unless superseded sooner. Display policy only, no
// retry logic is attached.
type ErrorSurface struct {
	logger     *zap.Logger
	clock      clockwork.Clock
	displayFor time.Duration

	mutex       sync.Mutex
	current     *Error
	gen         int
	subscribers []ErrorSubscription
}

func NewErrorSurface(logger *zap.Logger, clock clockwork.Clock, displayFor time.Duration) *ErrorSurface {
	return &ErrorSurface{
		logger:     logger.Named("errors"),
		clock:      clock,
		displayFor: displayFor,
	}
}

func (s *ErrorSurface) Push(origin ErrorOrigin, message string) {
	active := &Error{Origin: origin, Message: message}

	s.mutex.Lock()
	s.gen++
	gen := s.gen
	s.current = active
	subscribers := s.subscribersLocked()
	s.mutex.Unlock()

	s.logger.Info("error surfaced",
		zap.Stringer("origin", origin),
		zap.String("message", message),
	)

	s.clock.AfterFunc(s.displayFor, func() {
		s.clearIf(gen)
	})

	for _, subscriber := range subscribers {
		subscriber <- active
	}
}

// Current returns the active error, or nil.
func (s *ErrorSurface) Current() *Error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.current
}

// Clear drops the active error immediately.
func (s *ErrorSurface) Clear() {
	s.mutex.Lock()
	s.gen++
	s.current = nil
	subscribers := s.subscribersLocked()
	s.mutex.Unlock()

	for _, subscriber := range subscribers {
		subscriber <- nil
	}
}

func (s *ErrorSurface) Subscribe() ErrorSubscription {
	channel := make(ErrorSubscription, 10)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.subscribers = append(s.subscribers, channel)
	return channel
}

func (s *ErrorSurface) close() {
	s.mutex.Lock()
	subscribers := s.subscribers
	s.subscribers = nil
	s.mutex.Unlock()

	for _, subscriber := range subscribers {
		close(subscriber)
	}
}

// clearIf expires the error only if it has not been superseded.
func (s *ErrorSurface) clearIf(gen int) {
	s.mutex.Lock()
	if s.gen != gen || s.current == nil {
		s.mutex.Unlock()
		return
	}
	s.current = nil
	subscribers := s.subscribersLocked()
	s.mutex.Unlock()

	for _, subscriber := range subscribers {
		subscriber <- nil
	}
}

func (s *ErrorSurface) subscribersLocked() []ErrorSubscription {
	subscribers := make([]ErrorSubscription, len(s.subscribers))
	copy(subscribers, s.subscribers)
	return subscribers
}
