package store

import (
	"context"
	"encoding/hex"
	"time"

	"usermgmt/portal-service/internal/models"

	"golang.org/x/crypto/blake2b"
)

type Store interface {
	Create(ctx context.Context, token string, user models.User, expiresAt time.Time) (models.Session, error)
	Get(ctx context.Context, sessionID string) (models.Session, error)
	UpdateUser(ctx context.Context, sessionID string, user models.User) error
	Delete(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// HashSessionID returns the at-rest key for a session id. The raw id only
// ever lives in the signed browser cookie.
func HashSessionID(sessionID string) string {
	sum := blake2b.Sum256([]byte(sessionID))
	return hex.EncodeToString(sum[:])
}
