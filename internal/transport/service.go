package transport

import "literature-client/pkg/protocol"

//go:generate mockgen -source=service.go -destination=mock/service.go

// Service owns one socket's lifecycle for a room/credential pair.
// Exactly one socket is active at a time: Open tears down any previous
// connection before dialing.
type Service interface {
	Open(roomID protocol.RoomID, creds Credentials) error
	Send(payload []byte) error
	Close()

	Status() Status
	Err() error

	SubscribeToMessages() *MessagesSubscription
	SubscribeToStatus() StatusSubscription
}

// Credentials identify the local user to the room server. The server
// may still attribute a different identity to the connection; the
// snapshot's receiverId is authoritative.
type Credentials struct {
	Token    protocol.PlayerID
	Username string
}

func (c Credentials) Complete() bool {
	return c.Token != 0 && c.Username != ""
}

type Status string

const (
	StatusConnecting Status = "connecting"
	StatusOpen       Status = "open"
	StatusClosed     Status = "closed"
	StatusError      Status = "error"
)

type MessagesSubscription struct {
	Ch          chan []byte
	Unsubscribe func()
}

type StatusSubscription chan Status
