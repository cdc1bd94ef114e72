package protocol

import (
	"strconv"

	"golang.org/x/exp/slices"
)

// PlayerID is the numeric identity the server attributes to a player.
// Valid ids are positive; zero means "no player".
type PlayerID int64

func (id PlayerID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

type TeamID int

const (
	Team1 TeamID = 1
	Team2 TeamID = 2
)

func (t TeamID) Valid() bool {
	return t == Team1 || t == Team2
}

// SetID identifies one of the nine collectible sets.
type SetID int

const MinSetID SetID = 1
const MaxSetID SetID = 9

func (s SetID) Valid() bool {
	return s >= MinSetID && s <= MaxSetID
}

// RoomID is a server-issued short room code.
type RoomID string

func (id RoomID) String() string {
	return string(id)
}

func (id RoomID) Empty() bool {
	return id == ""
}

type PlayerIDList []PlayerID

func (l PlayerIDList) Contains(id PlayerID) bool {
	return slices.Contains(l, id)
}
