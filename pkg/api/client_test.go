package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"literature-client/pkg/protocol"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(zap.NewNop(), server.URL)
}

func TestCreateRoom(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/games/create-room", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"room_id": "HKFROG"}`))
	})

	roomID, err := client.CreateRoom(context.Background())
	require.NoError(t, err)
	require.Equal(t, protocol.RoomID("HKFROG"), roomID)
}

func TestCreateRoomEmptyRoomID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.CreateRoom(context.Background())
	require.Error(t, err)
}

func TestCreateRoomServerMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"message": "room limit reached"}`))
	})

	_, err := client.CreateRoom(context.Background())
	require.ErrorContains(t, err, "room limit reached")
}

func TestCreateRoomMalformedErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>oops</html>"))
	})

	_, err := client.CreateRoom(context.Background())
	require.ErrorContains(t, err, "failed to create room")
}

func TestListRooms(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/games/list-rooms", r.URL.Path)
		_, _ = w.Write([]byte(`{"rooms": [
			{"room_id": "HKFROG", "game_type": "literature"},
			{"room_id": "ZXCVBN", "game_type": "literature"}
		]}`))
	})

	rooms, err := client.ListRooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	require.Equal(t, protocol.RoomID("HKFROG"), rooms[0].RoomID)
	require.Equal(t, "literature", rooms[0].GameType)
}

func TestListRoomsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"rooms": []}`))
	})

	rooms, err := client.ListRooms(context.Background())
	require.NoError(t, err)
	require.Empty(t, rooms)
}

func TestListRoomsMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := client.ListRooms(context.Background())
	require.Error(t, err)
}
