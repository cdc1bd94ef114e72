package game

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"literature-client/internal/transport"
	"literature-client/pkg/protocol"
)

// Action surface: one method per UI intent, each building exactly one
// typed payload. Affordances like "only the host sees the start
// button" are a view concern; nothing here blocks a non-host from
// calling StartGame, authorization is server-side.

// AnnounceSelf registers the local player in the room.
func (s *Session) AnnounceSelf() error {
	return s.send(protocol.NewAddPlayerAction(s.actorID(), s.RoomID(), s.creds.Username))
}

// ChangeTeam moves the local player to the given team.
func (s *Session) ChangeTeam(newTeam protocol.TeamID) error {
	if !newTeam.Valid() {
		return errors.Errorf("invalid team %d", newTeam)
	}
	actor := s.actorID()
	return s.send(protocol.NewChangeTeamAction(actor, s.RoomID(), actor, newTeam))
}

func (s *Session) StartGame() error {
	return s.send(protocol.NewStartGameAction(s.actorID(), s.RoomID()))
}

func (s *Session) ChangeHost(newHostID protocol.PlayerID) error {
	return s.send(protocol.NewChangeHostAction(s.actorID(), s.RoomID(), newHostID))
}

// AskCard requests a card from an opponent. Whether the ask succeeds
// is decided by the server, never locally.
func (s *Session) AskCard(askedPlayerID protocol.PlayerID, card protocol.Card) error {
	if !card.Valid() {
		return errors.Errorf("unknown card %q", card)
	}
	move := protocol.NewAskCardMove(askedPlayerID, card)
	return s.send(protocol.NewInGameAction(s.actorID(), s.RoomID(), move))
}

func (s *Session) ClaimSet(set protocol.SetID) error {
	if !set.Valid() {
		return errors.Errorf("invalid set number %d", set)
	}
	move := protocol.NewClaimSetMove(set)
	return s.send(protocol.NewInGameAction(s.actorID(), s.RoomID(), move))
}

func (s *Session) PassTurn(teammateID protocol.PlayerID) error {
	move := protocol.NewPassTurnMove(teammateID)
	return s.send(protocol.NewInGameAction(s.actorID(), s.RoomID(), move))
}

func (s *Session) send(payload protocol.Payload) error {
	data, err := protocol.Marshal(payload)
	if err != nil {
		// Total over the action union: failing here is a local bug.
		s.logger.Error("failed to marshal action", zap.Error(err))
		return err
	}

	if err := s.transport.Send(data); err != nil {
		message := err.Error()
		if errors.Is(err, transport.ErrNotConnected) {
			message = "not connected to the room"
		}
		s.errors.Push(OriginTransport, message)
		return err
	}

	s.logger.Debug("action sent", zap.String("type", string(payload.Kind())))
	return nil
}
