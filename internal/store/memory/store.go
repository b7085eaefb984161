package memory

import (
	"context"
	"sync"
	"time"

	"usermgmt/portal-service/internal/models"
	"usermgmt/portal-service/internal/store"

	"github.com/google/uuid"
)

// Store keeps sessions in process memory. Used when DB_DSN is not set.
type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	sessions map[string]models.Session
}

func NewStore() *Store {
	return &Store{now: time.Now, sessions: make(map[string]models.Session)}
}

func (s *Store) Create(ctx context.Context, token string, user models.User, expiresAt time.Time) (models.Session, error) {
	session := models.Session{
		SessionID: uuid.NewString(),
		Token:     token,
		User:      user,
		CreatedAt: s.now().UTC(),
		ExpiresAt: expiresAt.UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[store.HashSessionID(session.SessionID)] = session
	return session, nil
}

func (s *Store) Get(ctx context.Context, sessionID string) (models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[store.HashSessionID(sessionID)]
	if !ok || session.Expired(s.now()) {
		return models.Session{}, store.ErrSessionNotFound
	}
	return session, nil
}

func (s *Store) UpdateUser(ctx context.Context, sessionID string, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := store.HashSessionID(sessionID)
	session, ok := s.sessions[key]
	if !ok {
		return store.ErrSessionNotFound
	}
	session.User = user
	s.sessions[key] = session
	return nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, store.HashSessionID(sessionID))
	return nil
}

func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	for key, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, key)
			removed++
		}
	}
	return removed, nil
}
