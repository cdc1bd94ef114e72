package game

import (
	"context"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"literature-client/internal/transport"
	"literature-client/pkg/protocol"
	"literature-client/pkg/storage"
)

// StateSubscription delivers every applied snapshot.
type StateSubscription chan *protocol.RoomState

// Session is the room session layer: it owns the latest authoritative
// RoomState, derives the current phase from it and exposes the typed
// action surface. The client is a pure follower: state is replaced
// wholesale from the server, never locally mutated, and no optimistic
// updates are performed.
type Session struct {
	logger    *zap.Logger
	ctx       context.Context
	transport transport.Service
	clock     clockwork.Clock
	errors    *ErrorSurface
	creds     transport.Credentials
	storage   storage.Service
	config    configuration

	mutex            sync.RWMutex
	roomID           protocol.RoomID
	state            *protocol.RoomState
	phase            Phase
	unidentified     bool
	exitRoom         chan struct{}
	stateSubscribers []StateSubscription
}

func NewSession(opts []Option) *Session {
	session := &Session{
		config: defaultConfig,
		phase:  PhaseConnecting,
	}

	for _, opt := range opts {
		opt(session)
	}

	if session.ctx == nil {
		session.ctx = context.Background()
	}

	if session.logger == nil {
		session.logger = zap.NewNop()
	}

	if session.transport == nil {
		session.logger.Error("transport is required")
		return nil
	}

	if session.clock == nil {
		session.logger.Error("clock is required")
		return nil
	}

	if session.storage != nil {
		if session.creds.Token == 0 {
			session.creds.Token = session.storage.UserToken()
		}
		if session.creds.Username == "" {
			session.creds.Username = session.storage.Username()
		}
	}

	session.errors = NewErrorSurface(session.logger, session.clock, session.config.ErrorDisplayDuration)

	return session
}

// Join subscribes to the transport and opens the room connection.
// Credentials are validated locally first: no network attempt is made
// with an empty room id, token or username.
func (s *Session) Join(roomID protocol.RoomID) error {
	if roomID.Empty() {
		return errors.New("room id cannot be empty")
	}
	if !s.creds.Complete() {
		return errors.New("user token and username are required")
	}

	s.mutex.Lock()
	if s.phase == PhaseEnded {
		s.mutex.Unlock()
		return errors.New("session has ended, create a new one")
	}
	if s.exitRoom != nil {
		s.mutex.Unlock()
		return errors.New("leave the current room to join another one")
	}
	exit := make(chan struct{})
	s.exitRoom = exit
	s.roomID = roomID
	s.phase = PhaseConnecting
	s.mutex.Unlock()

	// Subscribe before dialing so the first snapshot cannot be missed.
	sub := s.transport.SubscribeToMessages()
	statusSub := s.transport.SubscribeToStatus()

	if err := s.transport.Open(roomID, s.creds); err != nil {
		if sub.Unsubscribe != nil {
			sub.Unsubscribe()
		}
		s.mutex.Lock()
		s.exitRoom = nil
		s.mutex.Unlock()
		s.errors.Push(OriginTransport, err.Error())
		return errors.Wrap(err, "failed to join room")
	}

	go s.processIncomingMessages(sub, exit)
	go s.watchConnectionStatus(statusSub, exit)

	if s.config.AnnounceOnJoin {
		if err := s.AnnounceSelf(); err != nil {
			s.logger.Error("failed to announce player", zap.Error(err))
		}
	}

	s.logger.Info("joined room", zap.String("roomID", roomID.String()))
	return nil
}

// Leave removes the local player from the room and drops the socket.
// Safe to call when not connected.
func (s *Session) Leave() {
	payload, err := protocol.Marshal(protocol.NewRemovePlayerAction(s.actorID(), s.RoomID(), s.actorID()))
	if err == nil {
		// Best effort: the server also evicts us on disconnect.
		_ = s.transport.Send(payload)
	}

	s.transport.Close()

	s.mutex.Lock()
	if s.exitRoom != nil {
		close(s.exitRoom)
		s.exitRoom = nil
	}
	roomID := s.roomID
	// The old room's snapshot, and with it the server-assigned
	// identity, must not leak into the next Join. Ended stays terminal.
	s.state = nil
	s.unidentified = false
	if s.phase != PhaseEnded {
		s.phase = PhaseConnecting
	}
	s.mutex.Unlock()

	s.logger.Info("left room", zap.String("roomID", roomID.String()))
}

// Stop tears the session down and closes all subscriptions. No
// background work survives it.
func (s *Session) Stop() {
	s.Leave()

	s.mutex.Lock()
	subscribers := s.stateSubscribers
	s.stateSubscribers = nil
	s.mutex.Unlock()

	for _, subscriber := range subscribers {
		close(subscriber)
	}
	s.errors.close()
}

func (s *Session) SubscribeToStateChanges() StateSubscription {
	channel := make(StateSubscription, 10)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.stateSubscribers = append(s.stateSubscribers, channel)
	return channel
}

// CurrentState returns the latest snapshot, nil before the first one.
func (s *Session) CurrentState() *protocol.RoomState {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.state
}

func (s *Session) CurrentPhase() Phase {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.phase
}

// ValidActions lists the action kinds the server currently accepts.
func (s *Session) ValidActions() []protocol.ActionType {
	return ValidActions(s.CurrentPhase())
}

func (s *Session) RoomID() protocol.RoomID {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.roomID
}

func (s *Session) Errors() *ErrorSurface {
	return s.errors
}

// Unidentified reports the protocol violation where a snapshot past
// the connecting phase carries no receiver identity. The view must
// degrade to an explicit error display, not guess who it is.
func (s *Session) Unidentified() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.unidentified
}

func (s *Session) IsHost() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.state == nil || !s.state.HasReceiver() {
		return false
	}
	return s.state.HostID == s.state.ReceiverID
}

func (s *Session) IsMyTurn() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.state == nil || !s.state.HasReceiver() {
		return false
	}
	current := s.state.Game.CurrentPlayerID
	return current != nil && *current == s.state.ReceiverID
}

// Me returns the viewer's Player entry from the latest snapshot.
func (s *Session) Me() *protocol.Player {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.state == nil || !s.state.HasReceiver() {
		return nil
	}
	return s.state.PlayerByID(s.state.ReceiverID)
}

func (s *Session) processIncomingMessages(sub *transport.MessagesSubscription, exit chan struct{}) {
	if sub.Unsubscribe != nil {
		defer sub.Unsubscribe()
	}

	for {
		select {
		case payload, more := <-sub.Ch:
			if !more {
				return
			}
			s.handleFrame(payload)
		case <-exit:
			return
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Session) watchConnectionStatus(sub transport.StatusSubscription, exit chan struct{}) {
	for {
		select {
		case status, more := <-sub:
			if !more {
				return
			}
			s.logger.Info("connection status changed", zap.String("status", string(status)))
			if status != transport.StatusError && status != transport.StatusClosed {
				continue
			}
			if err := s.transport.Err(); err != nil {
				s.errors.Push(OriginTransport, err.Error())
			}
		case <-exit:
			return
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Session) handleFrame(payload []byte) {
	frame := protocol.DecodeFrame(payload)

	switch frame.Kind {
	case protocol.FrameState:
		s.applyState(frame.State)

	case protocol.FrameError:
		s.logger.Info("action rejected", zap.String("error", frame.Error))
		s.errors.Push(OriginApplication, frame.Error)
		if frame.Disconnect {
			// The server is about to drop us anyway.
			s.logger.Warn("server requested disconnect")
			s.transport.Close()
		}

	case protocol.FrameNonConforming:
		s.logger.Warn("non-conforming frame received", zap.ByteString("payload", frame.Raw))
		s.errors.Push(OriginTransport, "received a malformed message from the server")
	}
}

// applyState replaces the room state wholesale and re-derives the
// phase. The single frame loop is the only caller, so snapshots are
// applied strictly in delivery order.
func (s *Session) applyState(state *protocol.RoomState) {
	if err := state.Game.Validate(); err != nil {
		s.logger.Warn("snapshot violates invariants", zap.Error(err))
	}

	s.mutex.Lock()
	s.state = state
	s.phase = phaseOf(state.Game.Status)
	s.unidentified = !state.HasReceiver()
	unidentified := s.unidentified
	phase := s.phase
	subscribers := make([]StateSubscription, len(s.stateSubscribers))
	copy(subscribers, s.stateSubscribers)
	s.mutex.Unlock()

	s.logger.Debug("state replaced",
		zap.String("phase", string(phase)),
		zap.Int("players", len(state.Game.Players)),
	)

	if unidentified {
		s.errors.Push(OriginProtocol, "server did not identify this connection")
	}

	for _, subscriber := range subscribers {
		subscriber <- state
	}
}

// actorID is the identity used to stamp outbound actions: the
// server-assigned receiver id once known, the requested token before.
func (s *Session) actorID() protocol.PlayerID {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.state != nil && s.state.HasReceiver() {
		return s.state.ReceiverID
	}
	return s.creds.Token
}
