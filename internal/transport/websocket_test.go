package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/coder/websocket"
	"github.com/stretchr/testify/suite"

	"literature-client/internal/testcommon"
	"literature-client/pkg/protocol"
)

func TestConnection(t *testing.T) {
	suite.Run(t, new(Suite))
}

type Suite struct {
	testcommon.Suite

	ctx    context.Context
	cancel context.CancelFunc
	creds  Credentials
	roomID protocol.RoomID
}

func (s *Suite) SetupTest() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.creds = Credentials{
		Token:    protocol.PlayerID(gofakeit.Number(1, 1000)),
		Username: gofakeit.Username(),
	}
	s.roomID = protocol.RoomID(gofakeit.LetterN(6))
}

func (s *Suite) TearDownTest() {
	s.cancel()
}

// newServer upgrades every request and hands the socket to handler.
// Handlers must return for the server to shut down cleanly.
func (s *Suite) newServer(handler func(r *http.Request, conn *websocket.Conn)) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		handler(r, conn)
	}))
	s.T().Cleanup(server.Close)
	return server
}

// holdOpen keeps reading until the peer closes the socket.
func holdOpen(conn *websocket.Conn) {
	for {
		if _, _, err := conn.Read(context.Background()); err != nil {
			return
		}
	}
}

func (s *Suite) waitStatus(sub StatusSubscription, expected Status) {
	for {
		select {
		case status := <-sub:
			if status == expected {
				return
			}
		case <-time.After(3 * time.Second):
			s.Require().Fail("timeout waiting for status", "expected %s", expected)
		}
	}
}

func (s *Suite) TestOpenValidation() {
	var hits atomic.Int32
	server := s.newServer(func(_ *http.Request, conn *websocket.Conn) {
		hits.Add(1)
		_ = conn.CloseNow()
	})

	connection := NewConnection(s.ctx, s.Logger, server.URL)

	s.Require().Error(connection.Open("", s.creds))
	s.Require().Error(connection.Open(s.roomID, Credentials{Username: s.creds.Username}))
	s.Require().Error(connection.Open(s.roomID, Credentials{Token: s.creds.Token}))

	s.Require().Zero(hits.Load())
	s.Require().Equal(StatusClosed, connection.Status())
}

func (s *Suite) TestConnectAndReceive() {
	payload := []byte(`{"success": true}`)
	paths := make(chan string, 1)
	server := s.newServer(func(r *http.Request, conn *websocket.Conn) {
		paths <- r.URL.Path
		_ = conn.Write(context.Background(), websocket.MessageText, payload)
		holdOpen(conn)
	})

	connection := NewConnection(s.ctx, s.Logger, server.URL)
	sub := connection.SubscribeToMessages()
	defer sub.Unsubscribe()

	s.Require().NoError(connection.Open(s.roomID, s.creds))
	s.Require().Equal(StatusOpen, connection.Status())
	s.Require().NoError(connection.Err())

	select {
	case received := <-sub.Ch:
		s.Require().Equal(payload, received)
	case <-time.After(3 * time.Second):
		s.Require().Fail("timeout waiting for message")
	}

	expectedPrefix := "/ws/room/" + s.roomID.String() + "/" + s.creds.Token.String() + "/"
	s.Require().True(strings.HasPrefix(<-paths, expectedPrefix))

	connection.Close()
	s.Require().Equal(StatusClosed, connection.Status())
}

func (s *Suite) TestSendDeliversToServer() {
	received := make(chan []byte, 1)
	server := s.newServer(func(_ *http.Request, conn *websocket.Conn) {
		_, payload, err := conn.Read(context.Background())
		if err == nil {
			received <- payload
		}
		holdOpen(conn)
	})

	connection := NewConnection(s.ctx, s.Logger, server.URL)
	s.Require().NoError(connection.Open(s.roomID, s.creds))
	defer connection.Close()

	payload := []byte(`{"type": "start_game"}`)
	s.Require().NoError(connection.Send(payload))

	select {
	case echoed := <-received:
		s.Require().Equal(payload, echoed)
	case <-time.After(3 * time.Second):
		s.Require().Fail("timeout waiting for server read")
	}
}

func (s *Suite) TestSendWhileClosed() {
	connection := NewConnection(s.ctx, s.Logger, "http://localhost:0")

	err := connection.Send([]byte("dropped"))
	s.Require().ErrorIs(err, ErrNotConnected)
	s.Require().ErrorIs(connection.Err(), ErrNotConnected)
}

func (s *Suite) TestCloseIsIdempotent() {
	server := s.newServer(func(_ *http.Request, conn *websocket.Conn) {
		holdOpen(conn)
	})

	connection := NewConnection(s.ctx, s.Logger, server.URL)
	s.Require().NoError(connection.Open(s.roomID, s.creds))

	connection.Close()
	connection.Close()

	s.Require().Equal(StatusClosed, connection.Status())
	s.Require().NoError(connection.Err())
}

// A subscriber that stops draining cannot ruin Close: the read loop
// blocked on the full channel must still exit when Close cancels it.
func (s *Suite) TestCloseWithStalledSubscriber() {
	server := s.newServer(func(_ *http.Request, conn *websocket.Conn) {
		for i := 0; i < 20; i++ {
			if err := conn.Write(context.Background(), websocket.MessageText, []byte(`{"success":true}`)); err != nil {
				return
			}
		}
		holdOpen(conn)
	})

	connection := NewConnection(s.ctx, s.Logger, server.URL)
	sub := connection.SubscribeToMessages()
	defer sub.Unsubscribe()

	s.Require().NoError(connection.Open(s.roomID, s.creds))

	// Never drain sub.Ch: the burst above overflows its buffer.
	closed := make(chan struct{})
	go func() {
		connection.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(3 * time.Second):
		s.Require().Fail("Close did not return with a stalled subscriber")
	}
	s.Require().Equal(StatusClosed, connection.Status())
}

func (s *Suite) TestReopenReplacesConnection() {
	server := s.newServer(func(_ *http.Request, conn *websocket.Conn) {
		holdOpen(conn)
	})

	connection := NewConnection(s.ctx, s.Logger, server.URL)
	s.Require().NoError(connection.Open(s.roomID, s.creds))
	s.Require().NoError(connection.Open(s.roomID, s.creds))
	defer connection.Close()

	s.Require().Equal(StatusOpen, connection.Status())
}

func (s *Suite) TestDialFailure() {
	server := s.newServer(func(_ *http.Request, _ *websocket.Conn) {})
	serverURL := server.URL
	server.Close()

	connection := NewConnection(s.ctx, s.Logger, serverURL)
	sub := connection.SubscribeToStatus()

	err := connection.Open(s.roomID, s.creds)
	s.Require().Error(err)

	s.waitStatus(sub, StatusError)
	s.Require().Equal(StatusError, connection.Status())
	s.Require().Error(connection.Err())
}

func (s *Suite) TestPeerNormalClose() {
	server := s.newServer(func(_ *http.Request, conn *websocket.Conn) {
		_ = conn.Close(websocket.StatusNormalClosure, "room dismantled")
	})

	connection := NewConnection(s.ctx, s.Logger, server.URL)
	sub := connection.SubscribeToStatus()

	s.Require().NoError(connection.Open(s.roomID, s.creds))

	s.waitStatus(sub, StatusClosed)
	s.Require().NoError(connection.Err())
}

func (s *Suite) TestPeerAbnormalClose() {
	server := s.newServer(func(_ *http.Request, conn *websocket.Conn) {
		_ = conn.Close(websocket.StatusInternalError, "handler crashed")
	})

	connection := NewConnection(s.ctx, s.Logger, server.URL)
	sub := connection.SubscribeToStatus()

	s.Require().NoError(connection.Open(s.roomID, s.creds))

	s.waitStatus(sub, StatusClosed)
	s.Require().Error(connection.Err())
}
