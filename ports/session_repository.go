package ports

import (
	"context"

	"namecorrector/domain/core"
	"namecorrector/models"
)

// SessionRepository defines the interface for session data operations
type SessionRepository interface {
	// CreateSession starts an empty session under a fresh ID
	CreateSession(ctx context.Context) (*models.Session, error)

	// GetSession retrieves a live session, refreshing its expiry
	GetSession(ctx context.Context, id core.SessionID) (*models.Session, error)

	// DeleteSession drops a session and everything it holds
	DeleteSession(ctx context.Context, id core.SessionID) error

	// Count returns the number of live sessions
	Count() int
}
