package protocol

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

type GameStatus string

const (
	GameNotStarted GameStatus = "not_started"
	GameInProgress GameStatus = "in_progress"
	GameEnded      GameStatus = "ended"
)

type Player struct {
	ID   PlayerID `json:"id"`
	Name string   `json:"name"`
	Team TeamID   `json:"team"`
	// Hand is only populated for the viewer; other players' hands
	// never leave the server.
	Hand      []Card `json:"hand,omitempty"`
	CardCount int    `json:"cardCount"`
}

// Ask is the last card-request outcome, server-computed, display-only.
type Ask struct {
	AskingPlayerID PlayerID `json:"askingPlayerId"`
	AskedPlayerID  PlayerID `json:"askedPlayerId"`
	Card           Card     `json:"card"`
	Success        bool     `json:"success"`
}

type GameState struct {
	GameID          string           `json:"gameId"`
	Status          GameStatus       `json:"state"`
	Players         []Player         `json:"players"`
	CurrentPlayerID *PlayerID        `json:"currentPlayerId"`
	ClaimedSets     map[SetID]TeamID `json:"claimedSets"`
	Scores          map[TeamID]int   `json:"scores"`
	WinningTeam     *TeamID          `json:"winningTeam"`
	LastAsk         *Ask             `json:"lastAsk"`
}

// RoomState is the complete server snapshot, the sole unit of state
// transfer. Never mutated field-wise, only replaced wholesale.
type RoomState struct {
	RoomID             RoomID       `json:"roomId"`
	HostID             PlayerID     `json:"hostId"`
	ConnectedPlayerIDs PlayerIDList `json:"connectedPlayerIds"`
	// ReceiverID is who the server says we are on this connection.
	// Authoritative over any locally cached identity.
	ReceiverID PlayerID  `json:"receiverId"`
	Game       GameState `json:"game"`
}

func (s *RoomState) HasReceiver() bool {
	return s.ReceiverID != 0
}

func (s *RoomState) PlayerByID(id PlayerID) *Player {
	index := slices.IndexFunc(s.Game.Players, func(p Player) bool {
		return p.ID == id
	})
	if index < 0 {
		return nil
	}
	return &s.Game.Players[index]
}

// Validate checks the structural invariants a well-formed snapshot must
// hold. Violations indicate a misbehaving server, not a local bug.
func (g *GameState) Validate() error {
	switch g.Status {
	case GameNotStarted, GameInProgress, GameEnded:
	default:
		return errors.Errorf("unknown game status %q", g.Status)
	}

	if (g.CurrentPlayerID != nil) != (g.Status == GameInProgress) {
		return errors.New("currentPlayerId must be set exactly when game is in progress")
	}

	if g.WinningTeam != nil && g.Status != GameEnded {
		return errors.New("winningTeam set before game ended")
	}

	for i := range g.Players {
		player := &g.Players[i]
		if player.Hand != nil && len(player.Hand) != player.CardCount {
			return errors.Errorf("player %s hand size %d does not match cardCount %d",
				player.ID, len(player.Hand), player.CardCount)
		}
	}

	return nil
}
