package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"literature-client/pkg/protocol"
)

const requestTimeout = 10 * time.Second

// Client talks to the room server's lobby REST surface. The realtime
// stream is a separate concern, see internal/transport.
type Client struct {
	logger     *zap.Logger
	httpClient *http.Client
	baseURL    string
}

type RoomInfo struct {
	RoomID   protocol.RoomID `json:"room_id"`
	GameType string          `json:"game_type"`
}

type createRoomResponse struct {
	RoomID protocol.RoomID `json:"room_id"`
}

type listRoomsResponse struct {
	Rooms []RoomInfo `json:"rooms"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func NewClient(logger *zap.Logger, baseURL string) *Client {
	return &Client{
		logger:     logger.Named("api"),
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
	}
}

// CreateRoom asks the server for a fresh room and returns its code.
func (c *Client) CreateRoom(ctx context.Context) (protocol.RoomID, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/games/create-room", bytes.NewReader([]byte("{}")))
	if err != nil {
		return "", errors.Wrap(err, "failed to build create-room request")
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", errors.Wrap(err, "failed to create room")
	}
	defer response.Body.Close()

	if err := checkResponse(response, "failed to create room"); err != nil {
		return "", err
	}

	var body createRoomResponse
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
		return "", errors.Wrap(err, "failed to parse create-room response")
	}
	if body.RoomID.Empty() {
		return "", errors.New("server returned no room id")
	}

	c.logger.Info("room created", zap.String("roomID", body.RoomID.String()))
	return body.RoomID, nil
}

// ListRooms returns the rooms currently open for joining.
func (c *Client) ListRooms(ctx context.Context) ([]RoomInfo, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/games/list-rooms", nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build list-rooms request")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list rooms")
	}
	defer response.Body.Close()

	if err := checkResponse(response, "failed to list rooms"); err != nil {
		return nil, err
	}

	var body listRoomsResponse
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "failed to parse list-rooms response")
	}

	return body.Rooms, nil
}

// checkResponse turns a non-2xx reply into an error carrying the
// server's message when it sent one. A failure here must surface as
// such, never crash the lobby view.
func checkResponse(response *http.Response, fallback string) error {
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}

	var body errorResponse
	if err := json.NewDecoder(response.Body).Decode(&body); err == nil && body.Message != "" {
		return errors.New(body.Message)
	}

	return errors.Errorf("%s: %s", fallback, response.Status)
}
