package httpapi

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"usermgmt/portal-service/internal/models"
	"usermgmt/portal-service/internal/nav"
	"usermgmt/portal-service/internal/session"
	"usermgmt/portal-service/internal/store"

	"github.com/gorilla/sessions"
)

const (
	cookieName     = "portal_session"
	cookieValueKey = "sid"
)

// NewCookieStore builds the signed cookie store carrying the session id.
func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	cookies := sessions.NewCookieStore([]byte(secret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return cookies
}

// SessionMiddleware attaches a session.Context to every request. Lookup
// failures are logged and treated as "no session".
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var record *models.Session
		if sessionID := h.sessionIDFromRequest(r); sessionID != "" {
			found, err := h.store.Get(r.Context(), sessionID)
			switch {
			case err == nil:
				record = &found
			case errors.Is(err, store.ErrSessionNotFound):
			default:
				log.Printf("session lookup error: %v", err)
			}
		}
		sc := session.Begin(h.backend, record)
		next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), sc)))
	})
}

func (h *Handler) sessionIDFromRequest(r *http.Request) string {
	cookie, err := h.cookies.Get(r, cookieName)
	if err != nil || cookie == nil {
		return ""
	}
	value, _ := cookie.Values[cookieValueKey].(string)
	return strings.TrimSpace(value)
}

func (h *Handler) saveSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string, expiresAt time.Time) error {
	cookie, _ := h.cookies.Get(r, cookieName)
	cookie.Values[cookieValueKey] = sessionID
	cookie.Options = h.cookieOptions(int(time.Until(expiresAt).Seconds()))
	return cookie.Save(r, w)
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	cookie, _ := h.cookies.Get(r, cookieName)
	delete(cookie.Values, cookieValueKey)
	cookie.Options = h.cookieOptions(-1)
	if err := cookie.Save(r, w); err != nil {
		log.Printf("clear session cookie error: %v", err)
	}
}

func (h *Handler) cookieOptions(maxAge int) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

// expireSession drops a session the backend no longer accepts and sends the
// browser back to sign in.
func (h *Handler) expireSession(w http.ResponseWriter, r *http.Request, sc *session.Context) {
	if sessionID := sc.SessionID(); sessionID != "" {
		if err := h.store.Delete(r.Context(), sessionID); err != nil {
			log.Printf("delete session error: %v", err)
		}
	}
	sc.End()
	h.clearSessionCookie(w, r)
	http.Redirect(w, r, nav.LoginPath, http.StatusSeeOther)
}

// safeNext only allows local paths as post-login targets.
func safeNext(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return nav.DashboardPath
	}
	for _, blocked := range []string{nav.LoginPath, nav.LogoutPath} {
		if raw == blocked || strings.HasPrefix(raw, blocked+"?") || strings.HasPrefix(raw, blocked+"/") {
			return nav.DashboardPath
		}
	}
	return raw
}
