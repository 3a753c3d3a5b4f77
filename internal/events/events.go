// Package events carries session change notifications (sign-in, sign-out,
// profile updates) from the auth surface to everything that caches
// per-session state.
package events

import (
	"context"
	"time"
)

type Type string

const (
	SignedIn       Type = "SIGNED_IN"
	SignedOut      Type = "SIGNED_OUT"
	ProfileUpdated Type = "PROFILE_UPDATED"
)

type Event struct {
	Type      Type      `json:"type"`
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id,omitempty"`
	At        time.Time `json:"at"`
}

func New(t Type, userID, sessionID string) Event {
	return Event{Type: t, UserID: userID, SessionID: sessionID, At: time.Now().UTC()}
}

// Bus fans events out to every subscriber. Subscribe returns a channel and
// an idempotent unsubscribe func that closes it.
type Bus interface {
	Publish(ctx context.Context, ev Event) error
	Subscribe() (<-chan Event, func())
	Close() error
}
