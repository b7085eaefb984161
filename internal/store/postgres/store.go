package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"usermgmt/portal-service/internal/models"
	"usermgmt/portal-service/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Create(ctx context.Context, token string, user models.User, expiresAt time.Time) (models.Session, error) {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return models.Session{}, err
	}
	session := models.Session{
		SessionID: uuid.NewString(),
		Token:     token,
		User:      user,
		ExpiresAt: expiresAt.UTC(),
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO portal_sessions (session_hash, backend_token, user_json, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, store.HashSessionID(session.SessionID), token, userJSON, session.ExpiresAt)
	if err := row.Scan(&session.CreatedAt); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (s *Store) Get(ctx context.Context, sessionID string) (models.Session, error) {
	session := models.Session{SessionID: sessionID}
	var userJSON []byte
	row := s.pool.QueryRow(ctx, `
		SELECT backend_token, user_json, created_at, expires_at
		FROM portal_sessions
		WHERE session_hash = $1 AND expires_at > NOW()
	`, store.HashSessionID(sessionID))
	if err := row.Scan(&session.Token, &userJSON, &session.CreatedAt, &session.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Session{}, store.ErrSessionNotFound
		}
		return models.Session{}, err
	}
	if err := json.Unmarshal(userJSON, &session.User); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (s *Store) UpdateUser(ctx context.Context, sessionID string, user models.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE portal_sessions
		SET user_json = $2
		WHERE session_hash = $1 AND expires_at > NOW()
	`, store.HashSessionID(sessionID), userJSON)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrSessionNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM portal_sessions
		WHERE session_hash = $1
	`, store.HashSessionID(sessionID))
	return err
}

func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM portal_sessions
		WHERE expires_at <= $1
	`, now.UTC())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
