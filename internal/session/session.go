// Package session holds the per-request view of who is signed in.
//
// A Context is created by Begin when a request arrives (loading), settled by
// Resolve once the identity is known, and torn down by Logout or End. Handlers
// receive it through the request context instead of a process-wide global.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"usermgmt/portal-service/internal/models"
)

// Provider is the external identity service.
type Provider interface {
	CurrentUser(ctx context.Context, token string) (models.User, error)
	Logout(ctx context.Context, token string) error
}

type Context struct {
	provider Provider

	mu       sync.Mutex
	record   *models.Session
	user     *models.User
	loading  bool
	resolved bool

	logoutOnce sync.Once
	logoutErr  error
}

// Begin starts a session context for a request. record is nil when the
// browser carries no known session.
func Begin(provider Provider, record *models.Session) *Context {
	return &Context{provider: provider, record: record, loading: true}
}

// Resolve settles the loading phase. It is safe to call more than once; only
// the first call does any work. Any failure yields "no user".
func (c *Context) Resolve(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resolved {
		return
	}
	c.resolved = true
	c.loading = false

	if c.record == nil || c.record.Expired(time.Now()) {
		c.record = nil
		return
	}
	if c.record.User.UserID != "" {
		user := c.record.User
		c.user = &user
		return
	}
	if c.provider == nil || c.record.Token == "" {
		return
	}
	user, err := c.provider.CurrentUser(ctx, c.record.Token)
	if err != nil {
		log.Printf("session resolve failed session=%s err=%v", shortID(c.record.SessionID), err)
		return
	}
	c.record.User = user
	c.user = &user
}

// State returns the current user (nil when absent) and the loading flag.
func (c *Context) State() (*models.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil, c.loading
	}
	user := *c.user
	return &user, c.loading
}

func (c *Context) User() (*models.User, bool) {
	user, _ := c.State()
	return user, user != nil
}

func (c *Context) Loading() bool {
	_, loading := c.State()
	return loading
}

func (c *Context) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.record == nil {
		return ""
	}
	return c.record.SessionID
}

func (c *Context) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.record == nil {
		return ""
	}
	return c.record.Token
}

// SetUser replaces the cached user after a profile change.
func (c *Context) SetUser(user models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.record == nil {
		return
	}
	c.record.User = user
	c.user = &user
}

// Logout signs the session out with the provider at most once and ends the
// context. Later calls return the first call's result.
func (c *Context) Logout(ctx context.Context) error {
	c.logoutOnce.Do(func() {
		token := c.Token()
		if token != "" && c.provider != nil {
			c.logoutErr = c.provider.Logout(ctx, token)
		}
		c.End()
	})
	return c.logoutErr
}

// End clears the identity without contacting the provider.
func (c *Context) End() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record = nil
	c.user = nil
	c.loading = false
	c.resolved = true
}

type contextKey struct{}

func WithContext(ctx context.Context, sc *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, sc)
}

func FromContext(ctx context.Context) (*Context, bool) {
	sc, ok := ctx.Value(contextKey{}).(*Context)
	return sc, ok && sc != nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
