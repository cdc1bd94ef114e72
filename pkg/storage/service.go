package storage

import "literature-client/pkg/protocol"

//go:generate mockgen -source=service.go -destination=mock/service.go

// Service persists the local identity (user token + display name)
// across runs. The server-assigned receiver identity always wins over
// whatever is stored here.
type Service interface {
	Initialize() error
	UserToken() protocol.PlayerID
	Username() string
	SetUserToken(token protocol.PlayerID) error
	SetUsername(name string) error
	ResetIdentity() error
}
