package protocol

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

func randomPlayerID() PlayerID {
	return PlayerID(gofakeit.Number(1, 1_000_000_000))
}

func randomRoomID() RoomID {
	return RoomID(gofakeit.LetterN(6))
}

func TestCardTable(t *testing.T) {
	require.Len(t, AllCards, 54)

	seen := make(map[Card]struct{})
	for _, card := range AllCards {
		require.True(t, card.Valid(), "card %q", card)
		_, duplicate := seen[card]
		require.False(t, duplicate, "card %q", card)
		seen[card] = struct{}{}
	}

	for set := MinSetID; set <= MaxSetID; set++ {
		cards := CardsInSet(set)
		require.Len(t, cards, 6)
		for _, card := range cards {
			require.Equal(t, set, card.Set())
		}
		require.NotEmpty(t, SetName(set))
	}
}

func TestCardAccessors(t *testing.T) {
	card := Card("AC1")
	require.Equal(t, byte('A'), card.Rank())
	require.Equal(t, byte('C'), card.Suit())
	require.Equal(t, SetID(1), card.Set())

	joker := Card("JR9")
	require.Equal(t, byte('R'), joker.Suit())
	require.Equal(t, SetID(9), joker.Set())

	require.False(t, Card("XX1").Valid())
	require.False(t, Card("7C1").Valid(), "sevens only belong to set 9")
}

func TestActionRoundTrip(t *testing.T) {
	actorID := randomPlayerID()
	roomID := randomRoomID()
	otherID := randomPlayerID()

	payloads := []Payload{
		NewAddPlayerAction(actorID, roomID, gofakeit.Username()),
		NewStartGameAction(actorID, roomID),
		NewRemovePlayerAction(actorID, roomID, otherID),
		NewChangeHostAction(actorID, roomID, otherID),
		NewChangeTeamAction(actorID, roomID, actorID, Team2),
		NewInGameAction(actorID, roomID, NewAskCardMove(otherID, "AC1")),
		NewInGameAction(actorID, roomID, NewClaimSetMove(3)),
		NewInGameAction(actorID, roomID, NewPassTurnMove(otherID)),
	}

	for _, sent := range payloads {
		data, err := Marshal(sent)
		require.NoError(t, err, "%T", sent)

		received, err := UnmarshalAction(data)
		require.NoError(t, err, "%T", sent)
		require.Equal(t, sent, received)
	}
}

func TestMarshalRejectsMalformedPayloads(t *testing.T) {
	// Hand-built payloads with a wrong type tag are programmer errors.
	_, err := Marshal(&StartGameAction{
		Action: Action{Type: ActionTypeAddPlayer},
	})
	require.Error(t, err)

	_, err = Marshal(&InGameAction{
		Action: Action{Type: ActionTypeInGame},
	})
	require.Error(t, err)
}

func TestUnmarshalUnknownAction(t *testing.T) {
	_, err := UnmarshalAction([]byte(`{"type":"make_move"}`))
	require.Error(t, err)

	_, err = UnmarshalAction([]byte(`not json`))
	require.Error(t, err)

	_, err = UnmarshalAction([]byte(`{"type":"in_game_action","in_game_action":{"move_type":"fold"}}`))
	require.Error(t, err)
}

func TestDecodeStateFrame(t *testing.T) {
	receiverID := randomPlayerID()
	state := &RoomState{
		RoomID:             randomRoomID(),
		HostID:             receiverID,
		ConnectedPlayerIDs: PlayerIDList{receiverID},
		ReceiverID:         receiverID,
		Game: GameState{
			GameID:  gofakeit.UUID(),
			Status:  GameNotStarted,
			Players: []Player{{ID: receiverID, Name: gofakeit.Username(), Team: Team1}},
		},
	}

	payload, err := EncodeStateFrame(state)
	require.NoError(t, err)

	frame := DecodeFrame(payload)
	require.Equal(t, FrameState, frame.Kind)
	require.Equal(t, state, frame.State)
	require.True(t, frame.State.HasReceiver())
}

func TestDecodeErrorFrame(t *testing.T) {
	payload, err := EncodeErrorFrame("not your turn", false)
	require.NoError(t, err)

	frame := DecodeFrame(payload)
	require.Equal(t, FrameError, frame.Kind)
	require.Equal(t, "not your turn", frame.Error)
	require.False(t, frame.Disconnect)

	payload, err = EncodeErrorFrame("room is full", true)
	require.NoError(t, err)

	frame = DecodeFrame(payload)
	require.Equal(t, FrameError, frame.Kind)
	require.True(t, frame.Disconnect)
}

func TestDecodeNonConformingFrame(t *testing.T) {
	inputs := [][]byte{
		[]byte(`this is not json`),
		[]byte(`{}`),
		[]byte(`{"currentState":{}}`),
		[]byte(`{"success":true}`),
		[]byte(`42`),
		nil,
	}

	for _, input := range inputs {
		frame := DecodeFrame(input)
		require.Equal(t, FrameNonConforming, frame.Kind, "input %q", input)
		require.Equal(t, input, frame.Raw)
	}
}

func TestGameStateValidate(t *testing.T) {
	currentID := randomPlayerID()
	winner := Team1

	valid := GameState{
		Status:          GameInProgress,
		CurrentPlayerID: &currentID,
	}
	require.NoError(t, valid.Validate())

	missingTurn := GameState{Status: GameInProgress}
	require.Error(t, missingTurn.Validate())

	danglingTurn := GameState{Status: GameNotStarted, CurrentPlayerID: &currentID}
	require.Error(t, danglingTurn.Validate())

	earlyWinner := GameState{Status: GameNotStarted, WinningTeam: &winner}
	require.Error(t, earlyWinner.Validate())

	ended := GameState{Status: GameEnded, WinningTeam: &winner}
	require.NoError(t, ended.Validate())

	unknown := GameState{Status: "paused"}
	require.Error(t, unknown.Validate())

	shortHand := GameState{
		Status: GameNotStarted,
		Players: []Player{
			{ID: currentID, Hand: []Card{"AC1"}, CardCount: 2},
		},
	}
	require.Error(t, shortHand.Validate())
}
