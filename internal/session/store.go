// Package session keeps browser sessions in memory with sliding expiry.
package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"namecorrector/domain/core"
	"namecorrector/internal"
	"namecorrector/internal/errors"
	"namecorrector/models"
)

// Store is an in-memory SessionRepository. Idle sessions expire after the
// configured TTL and are swept periodically.
type Store struct {
	cache  *cache.Cache
	ttl    time.Duration
	logger *internal.Logger
}

// NewStore creates a session store
func NewStore(ttl time.Duration, logger *internal.Logger) *Store {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	logger = logger.With("SessionStore")

	sweep := ttl / 2
	if sweep < time.Minute {
		sweep = time.Minute
	}
	c := cache.New(ttl, sweep)
	c.OnEvicted(func(key string, _ interface{}) {
		logger.Debug("session %s expired", key)
	})

	return &Store{cache: c, ttl: ttl, logger: logger}
}

// CreateSession starts an empty session under a fresh ID
func (s *Store) CreateSession(ctx context.Context) (*models.Session, error) {
	sess := models.NewSession(core.NewSessionID())
	if err := s.cache.Add(sess.ID.String(), sess, s.ttl); err != nil {
		return nil, errors.Wrap(err, "failed to register session")
	}
	s.logger.Debug("session %s created (%d live)", sess.ID, s.cache.ItemCount())
	return sess, nil
}

// GetSession retrieves a live session and extends its expiry
func (s *Store) GetSession(ctx context.Context, id core.SessionID) (*models.Session, error) {
	v, ok := s.cache.Get(id.String())
	if !ok {
		return nil, errors.WithCode(errors.CodeNotFound, core.ErrSessionNotFound)
	}
	sess, ok := v.(*models.Session)
	if !ok {
		return nil, errors.InternalError("session entry has unexpected type")
	}
	s.cache.Set(id.String(), sess, s.ttl)
	return sess, nil
}

// DeleteSession drops a session
func (s *Store) DeleteSession(ctx context.Context, id core.SessionID) error {
	s.cache.Delete(id.String())
	return nil
}

// Count returns the number of live sessions, including expired ones not yet swept
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
