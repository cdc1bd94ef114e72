package game

import (
	"time"

	"literature-client/internal/config"
)

type configuration struct {
	ErrorDisplayDuration time.Duration
	// AnnounceOnJoin controls whether the session sends add_player
	// right after the socket opens.
	AnnounceOnJoin bool
}

var defaultConfig = configuration{
	ErrorDisplayDuration: config.ErrorDisplayDuration,
	AnnounceOnJoin:       true,
}
