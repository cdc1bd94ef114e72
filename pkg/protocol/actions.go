package protocol

import (
	"encoding/json"

	"github.com/pkg/errors"
)

type ActionType string

const (
	ActionTypeAddPlayer    ActionType = "add_player"
	ActionTypeStartGame    ActionType = "start_game"
	ActionTypeRemovePlayer ActionType = "remove_player"
	ActionTypeChangeHost   ActionType = "change_host"
	ActionTypePreGame      ActionType = "pre_game_action"
	ActionTypeInGame       ActionType = "in_game_action"
)

// Action carries the fields every outbound action shares. The server
// routes on Type and authorizes on ActorID.
type Action struct {
	Type    ActionType `json:"type"`
	ActorID PlayerID   `json:"actor_id"`
	RoomID  RoomID     `json:"room_id"`
}

func (a Action) Kind() ActionType {
	return a.Type
}

// Payload is the discriminated union of outbound actions, one variant
// per player intent.
type Payload interface {
	Kind() ActionType
}

type AddPlayerAction struct {
	Action
	ActorName string `json:"actor_name"`
}

type StartGameAction struct {
	Action
}

type RemovePlayerAction struct {
	Action
	PlayerID PlayerID `json:"player_id"`
}

type ChangeHostAction struct {
	Action
	NewHostID PlayerID `json:"new_host_id"`
}

// ChangeTeamAction is the only pre-game move so far. It travels inside
// a PreGameAction envelope, never bare.
type ChangeTeamAction struct {
	Type     ActionType `json:"type"`
	PlayerID PlayerID   `json:"player_id"`
	NewTeam  TeamID     `json:"new_team"`
}

const ActionTypeChangeTeam ActionType = "change_team"

// PreGameAction wraps lobby-phase moves so the server can reject the
// whole class by room phase without inspecting the inner payload.
type PreGameAction struct {
	Action
	Inner ChangeTeamAction `json:"pre_game_action"`
}

type MoveType string

const (
	MoveTypeAskCard  MoveType = "ask_card"
	MoveTypeClaimSet MoveType = "claim_set"
	MoveTypePassTurn MoveType = "pass_turn"
)

// InGameMove is the union of moves valid while a game is in progress.
type InGameMove interface {
	Move() MoveType
}

type AskCardMove struct {
	MoveType      MoveType `json:"move_type"`
	AskedPlayerID PlayerID `json:"asked_player_id"`
	Card          Card     `json:"card"`
}

func (m AskCardMove) Move() MoveType { return MoveTypeAskCard }

type ClaimSetMove struct {
	MoveType  MoveType `json:"move_type"`
	SetNumber SetID    `json:"set_number"`
}

func (m ClaimSetMove) Move() MoveType { return MoveTypeClaimSet }

type PassTurnMove struct {
	MoveType   MoveType `json:"move_type"`
	TeammateID PlayerID `json:"teammate_id"`
}

func (m PassTurnMove) Move() MoveType { return MoveTypePassTurn }

// InGameAction is the counterpart envelope for in-progress moves.
type InGameAction struct {
	Action
	InGameMove InGameMove `json:"in_game_action"`
}

func (a *InGameAction) UnmarshalJSON(payload []byte) error {
	var raw struct {
		Action
		InGameMove json.RawMessage `json:"in_game_action"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return errors.Wrap(err, "failed to unmarshal in-game action")
	}

	move, err := unmarshalMove(raw.InGameMove)
	if err != nil {
		return err
	}

	a.Action = raw.Action
	a.InGameMove = move
	return nil
}

func unmarshalMove(payload []byte) (InGameMove, error) {
	var head struct {
		MoveType MoveType `json:"move_type"`
	}
	if err := json.Unmarshal(payload, &head); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal move")
	}

	switch head.MoveType {
	case MoveTypeAskCard:
		var move AskCardMove
		err := json.Unmarshal(payload, &move)
		return move, errors.Wrap(err, "failed to unmarshal ask_card move")
	case MoveTypeClaimSet:
		var move ClaimSetMove
		err := json.Unmarshal(payload, &move)
		return move, errors.Wrap(err, "failed to unmarshal claim_set move")
	case MoveTypePassTurn:
		var move PassTurnMove
		err := json.Unmarshal(payload, &move)
		return move, errors.Wrap(err, "failed to unmarshal pass_turn move")
	}

	return nil, errors.Errorf("unknown move type %q", head.MoveType)
}

func NewAddPlayerAction(actorID PlayerID, roomID RoomID, actorName string) *AddPlayerAction {
	return &AddPlayerAction{
		Action:    Action{Type: ActionTypeAddPlayer, ActorID: actorID, RoomID: roomID},
		ActorName: actorName,
	}
}

func NewStartGameAction(actorID PlayerID, roomID RoomID) *StartGameAction {
	return &StartGameAction{
		Action: Action{Type: ActionTypeStartGame, ActorID: actorID, RoomID: roomID},
	}
}

func NewRemovePlayerAction(actorID PlayerID, roomID RoomID, playerID PlayerID) *RemovePlayerAction {
	return &RemovePlayerAction{
		Action:   Action{Type: ActionTypeRemovePlayer, ActorID: actorID, RoomID: roomID},
		PlayerID: playerID,
	}
}

func NewChangeHostAction(actorID PlayerID, roomID RoomID, newHostID PlayerID) *ChangeHostAction {
	return &ChangeHostAction{
		Action:    Action{Type: ActionTypeChangeHost, ActorID: actorID, RoomID: roomID},
		NewHostID: newHostID,
	}
}

func NewChangeTeamAction(actorID PlayerID, roomID RoomID, playerID PlayerID, newTeam TeamID) *PreGameAction {
	return &PreGameAction{
		Action: Action{Type: ActionTypePreGame, ActorID: actorID, RoomID: roomID},
		Inner: ChangeTeamAction{
			Type:     ActionTypeChangeTeam,
			PlayerID: playerID,
			NewTeam:  newTeam,
		},
	}
}

func NewInGameAction(actorID PlayerID, roomID RoomID, move InGameMove) *InGameAction {
	return &InGameAction{
		Action:     Action{Type: ActionTypeInGame, ActorID: actorID, RoomID: roomID},
		InGameMove: move,
	}
}

func NewAskCardMove(askedPlayerID PlayerID, card Card) AskCardMove {
	return AskCardMove{
		MoveType:      MoveTypeAskCard,
		AskedPlayerID: askedPlayerID,
		Card:          card,
	}
}

func NewClaimSetMove(setNumber SetID) ClaimSetMove {
	return ClaimSetMove{
		MoveType:  MoveTypeClaimSet,
		SetNumber: setNumber,
	}
}

func NewPassTurnMove(teammateID PlayerID) PassTurnMove {
	return PassTurnMove{
		MoveType:   MoveTypePassTurn,
		TeammateID: teammateID,
	}
}
