package transport

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"literature-client/pkg/protocol"
)

const dialTimeout = 10 * time.Second
const writeTimeout = 3 * time.Second

var ErrNotConnected = errors.New("connection is not open")

// Connection is the websocket implementation of Service. One value per
// room session; construct at room entry, Close at room exit.
type Connection struct {
	logger    *zap.Logger
	ctx       context.Context
	serverURL string

	mutex             sync.Mutex
	gen               int
	conn              *websocket.Conn
	cancelRead        context.CancelFunc
	readDone          chan struct{}
	status            Status
	err               error
	subscribers       []chan []byte
	statusSubscribers []StatusSubscription
}

func NewConnection(ctx context.Context, logger *zap.Logger, serverURL string) *Connection {
	return &Connection{
		logger:    logger.Named("transport"),
		ctx:       ctx,
		serverURL: serverURL,
		status:    StatusClosed,
	}
}

// Open dials the room endpoint. Missing inputs are rejected locally
// without any network attempt. An already-active connection is torn
// down first, so at most one socket exists at a time.
func (c *Connection) Open(roomID protocol.RoomID, creds Credentials) error {
	if roomID.Empty() {
		return errors.New("room id cannot be empty")
	}
	if !creds.Complete() {
		return errors.New("user token and username are required")
	}

	c.Close()

	logger := c.logger.With(
		zap.String("connection", uuid.NewString()),
		zap.String("roomID", roomID.String()),
	)

	c.setStatus(StatusConnecting, nil)

	dialCtx, cancelDial := context.WithTimeout(c.ctx, dialTimeout)
	defer cancelDial()

	conn, _, err := websocket.Dial(dialCtx, c.roomURL(roomID, creds), nil) //nolint:bodyclose
	if err != nil {
		err = errors.Wrap(err, "failed to connect to room")
		logger.Error("dial failed", zap.Error(err))
		c.setStatus(StatusError, err)
		return err
	}

	readCtx, cancelRead := context.WithCancel(c.ctx)
	done := make(chan struct{})

	c.mutex.Lock()
	c.gen++
	gen := c.gen
	c.conn = conn
	c.cancelRead = cancelRead
	c.readDone = done
	c.mutex.Unlock()

	c.setStatus(StatusOpen, nil)
	logger.Info("connected")

	go c.readLoop(readCtx, conn, gen, done, logger)

	return nil
}

// Send transmits one frame. It never queues: when the connection is
// not open the payload is dropped, the error recorded and returned.
func (c *Connection) Send(payload []byte) error {
	c.mutex.Lock()
	conn := c.conn
	status := c.status
	c.mutex.Unlock()

	if status != StatusOpen || conn == nil {
		c.recordErr(ErrNotConnected)
		return ErrNotConnected
	}

	writeCtx, cancel := context.WithTimeout(c.ctx, writeTimeout)
	defer cancel()

	err := conn.Write(writeCtx, websocket.MessageText, payload)
	if err != nil {
		err = errors.Wrap(err, "failed to send message")
		c.recordErr(err)
		return err
	}

	c.logger.Debug("message sent", zap.Int("size", len(payload)))
	return nil
}

// Close tears the socket down. Safe to call multiple times and from
// any status. When it returns, the read loop has exited and no further
// events will be delivered.
func (c *Connection) Close() {
	c.mutex.Lock()
	conn := c.conn
	cancelRead := c.cancelRead
	done := c.readDone
	if conn == nil {
		c.mutex.Unlock()
		return
	}
	c.gen++ // mark the running read loop stale
	c.conn = nil
	c.cancelRead = nil
	c.readDone = nil
	c.status = StatusClosed
	c.err = nil
	statusSubscribers := slices.Clone(c.statusSubscribers)
	c.mutex.Unlock()

	cancelRead()
	_ = conn.Close(websocket.StatusNormalClosure, "")
	<-done

	c.logger.Info("connection closed")
	for _, subscriber := range statusSubscribers {
		subscriber <- StatusClosed
	}
}

func (c *Connection) Status() Status {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.status
}

func (c *Connection) Err() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.err
}

func (c *Connection) SubscribeToMessages() *MessagesSubscription {
	channel := make(chan []byte, 10)

	c.mutex.Lock()
	c.subscribers = append(c.subscribers, channel)
	c.mutex.Unlock()

	return &MessagesSubscription{
		Ch: channel,
		Unsubscribe: func() {
			c.mutex.Lock()
			defer c.mutex.Unlock()
			c.subscribers = slices.DeleteFunc(c.subscribers, func(ch chan []byte) bool {
				return ch == channel
			})
		},
	}
}

func (c *Connection) SubscribeToStatus() StatusSubscription {
	channel := make(StatusSubscription, 10)

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.statusSubscribers = append(c.statusSubscribers, channel)
	return channel
}

func (c *Connection) readLoop(ctx context.Context, conn *websocket.Conn, gen int, done chan struct{}, logger *zap.Logger) {
	defer close(done)

	for {
		_, payload, err := conn.Read(ctx)
		if err != nil {
			c.finishRead(ctx, gen, err, logger)
			return
		}

		logger.Debug("message received", zap.Int("size", len(payload)))
		c.deliver(ctx, payload)
	}
}

func (c *Connection) finishRead(ctx context.Context, gen int, err error, logger *zap.Logger) {
	if ctx.Err() != nil {
		// Torn down locally, Close owns the status transition.
		return
	}

	var status Status
	var statusErr error

	switch closeStatus := websocket.CloseStatus(err); closeStatus {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		logger.Info("connection closed by peer")
		status = StatusClosed
	case -1:
		statusErr = errors.Wrap(err, "connection failed")
		logger.Error("read failed", zap.Error(err))
		status = StatusError
	default:
		statusErr = errors.Errorf("connection terminated by peer (%s)", closeStatus)
		logger.Error("abnormal termination", zap.Error(statusErr))
		status = StatusClosed
	}

	c.mutex.Lock()
	if gen != c.gen {
		c.mutex.Unlock()
		return
	}
	c.status = status
	c.err = statusErr
	statusSubscribers := slices.Clone(c.statusSubscribers)
	c.mutex.Unlock()

	for _, subscriber := range statusSubscribers {
		subscriber <- status
	}
}

// deliver fans a frame out to subscribers. A subscriber that stopped
// draining must not pin the read loop past teardown: Close cancels ctx
// and waits for the loop to exit, so delivery is abandoned on cancel.
func (c *Connection) deliver(ctx context.Context, payload []byte) {
	c.mutex.Lock()
	subscribers := slices.Clone(c.subscribers)
	c.mutex.Unlock()

	for _, subscriber := range subscribers {
		select {
		case subscriber <- payload:
		case <-ctx.Done():
			return
		}
	}
}

func (c *Connection) setStatus(status Status, err error) {
	c.mutex.Lock()
	c.status = status
	c.err = err
	statusSubscribers := slices.Clone(c.statusSubscribers)
	c.mutex.Unlock()

	for _, subscriber := range statusSubscribers {
		subscriber <- status
	}
}

func (c *Connection) recordErr(err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.err = err
}

func (c *Connection) roomURL(roomID protocol.RoomID, creds Credentials) string {
	return fmt.Sprintf("%s/ws/room/%s/%s/%s/",
		c.serverURL, roomID, creds.Token, url.PathEscape(creds.Username))
}
