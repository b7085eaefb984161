package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"usermgmt/portal-service/internal/models"
	"usermgmt/portal-service/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestStoreIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()
	if err := Migrate(ctx, dsn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	defer pool.Close()
	st := NewStore(pool)

	user := models.User{UserID: "user-1", Email: "ola@example.com", Licenses: []models.License{{LicenseID: "lic-1", Status: models.LicenseStatusActive}}}
	created, err := st.Create(ctx, "backend-token", user, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer st.Delete(ctx, created.SessionID)

	got, err := st.Get(ctx, created.SessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Token != "backend-token" || got.User.Email != user.Email || len(got.User.Licenses) != 1 {
		t.Fatalf("unexpected session: %+v", got)
	}

	user.Name = "Ola"
	if err := st.UpdateUser(ctx, created.SessionID, user); err != nil {
		t.Fatalf("update user: %v", err)
	}
	got, _ = st.Get(ctx, created.SessionID)
	if got.User.Name != "Ola" {
		t.Fatalf("expected updated name, got %q", got.User.Name)
	}

	if err := st.Delete(ctx, created.SessionID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.Get(ctx, created.SessionID); !errors.Is(err, store.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
