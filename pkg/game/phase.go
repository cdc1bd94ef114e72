package game

import "literature-client/pkg/protocol"

// Phase is the client-side room phase, derived exclusively from
// inbound snapshots. The session never transitions on local intent.
type Phase string

const (
	// PhaseConnecting means no snapshot has been received yet.
	PhaseConnecting Phase = "connecting"
	PhaseLobbyWait  Phase = "lobby-wait"
	PhaseInGame     Phase = "in-game"
	// PhaseEnded is terminal. A new room requires a fresh session.
	PhaseEnded Phase = "ended"
)

func phaseOf(status protocol.GameStatus) Phase {
	switch status {
	case protocol.GameInProgress:
		return PhaseInGame
	case protocol.GameEnded:
		return PhaseEnded
	}
	return PhaseLobbyWait
}

// ValidActions lists the action kinds the server accepts in the given
// phase. An affordance hint for views; the server stays authoritative
// and nothing blocks sending an action outside this list.
func ValidActions(phase Phase) []protocol.ActionType {
	switch phase {
	case PhaseLobbyWait:
		return []protocol.ActionType{
			protocol.ActionTypeAddPlayer,
			protocol.ActionTypePreGame,
			protocol.ActionTypeStartGame,
			protocol.ActionTypeRemovePlayer,
			protocol.ActionTypeChangeHost,
		}
	case PhaseInGame:
		return []protocol.ActionType{
			protocol.ActionTypeInGame,
			protocol.ActionTypeRemovePlayer,
			protocol.ActionTypeChangeHost,
		}
	}
	// Connecting has no room yet, ended rooms take nothing.
	return nil
}
