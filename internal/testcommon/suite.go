package testcommon

import (
	"go.uber.org/zap"

	"github.com/stretchr/testify/suite"

	"literature-client/internal/config"
	"literature-client/pkg/protocol"
)

type Suite struct {
	suite.Suite
	Logger *zap.Logger
}

func (s *Suite) SetupSuite() {
	s.Logger = SetupConfigLogger(s.T())
}

func (s *Suite) TearDownSuite() {
	_ = config.Logger.Sync()
}

// FakeRoomState builds a snapshot of a not-started room with the given
// players, hosted and viewed by the first one.
func (s *Suite) FakeRoomState(roomID protocol.RoomID, playerIDs ...protocol.PlayerID) *protocol.RoomState {
	s.Require().NotEmpty(playerIDs)

	players := make([]protocol.Player, 0, len(playerIDs))
	for i, id := range playerIDs {
		team := protocol.Team1
		if i%2 == 1 {
			team = protocol.Team2
		}
		players = append(players, protocol.Player{
			ID:   id,
			Name: "player-" + id.String(),
			Team: team,
		})
	}

	return &protocol.RoomState{
		RoomID:             roomID,
		HostID:             playerIDs[0],
		ConnectedPlayerIDs: playerIDs,
		ReceiverID:         playerIDs[0],
		Game: protocol.GameState{
			GameID:  "game-" + roomID.String(),
			Status:  protocol.GameNotStarted,
			Players: players,
		},
	}
}
