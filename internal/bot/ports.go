package bot

import (
	"context"

	"github.com/hws-labs/wetterbot/internal/weather"
)

// SavedLocation is the per-user default location persisted in the
// location store. A stored record is always fully populated; it is
// written in a single set and never partially updated.
type SavedLocation struct {
	FormattedName string  `json:"formattedName"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}

// LocationStore persists one SavedLocation per user. Absence is a valid
// outcome distinct from failure: Get reports it via the boolean, not an
// error. Deleting an absent record is a no-op success. Concurrent
// commands from the same user race with last-write-wins semantics; the
// store does no per-user locking.
type LocationStore interface {
	Get(ctx context.Context, userID int64) (SavedLocation, bool, error)
	Set(ctx context.Context, userID int64, loc SavedLocation) error
	Delete(ctx context.Context, userID int64) error
}

// LocationResolver turns free-text input into a canonical geocoded
// location. Callers must reject empty input themselves before resolving.
type LocationResolver interface {
	Resolve(ctx context.Context, query string) (SavedLocation, error)
}

// WeatherFetcher returns the current and daily conditions for a pair of
// coordinates. A single attempt per invocation; no caching.
type WeatherFetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (weather.Snapshot, error)
}

// ReplySender delivers an outbound reply to the transport.
type ReplySender interface {
	Send(reply Reply) error
}

// Inbound is a routed text message. UserID is zero when the transport
// delivered a message without a sender identity.
type Inbound struct {
	ChatID    int64
	UserID    int64
	MessageID int
	Text      string
}

// Reply is a transport-ready outbound payload addressed to the
// originating chat.
type Reply struct {
	ChatID  int64
	Text    string
	ReplyTo int
	HTML    bool
}
