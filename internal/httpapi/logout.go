package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"usermgmt/portal-service/internal/logout"
	"usermgmt/portal-service/internal/nav"
	"usermgmt/portal-service/internal/session"
	"usermgmt/portal-service/internal/store"

	"github.com/igm/sockjs-go/sockjs"
)

const countdownPrefix = nav.LogoutPath + "/countdown"

type logoutPage struct {
	Seconds    int
	StreamPath string
}

type countdownFrame struct {
	Remaining *int   `json:"remaining,omitempty"`
	Navigate  string `json:"navigate,omitempty"`
}

// handleLogout ends the session and renders the countdown page. The page
// falls back to a meta refresh when the countdown stream is unavailable.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sc, ok := session.FromContext(r.Context()); ok {
		if err := h.signOut(r.Context(), sc); err != nil {
			log.Printf("backend logout error: %v", err)
		}
	}
	h.clearSessionCookie(w, r)

	l := layout{
		Title:        "Signed out",
		CurrentPage:  "logout",
		RefreshTo:    nav.HomePath,
		RefreshAfter: h.logout.Seconds(),
	}
	render(w, r, http.StatusOK, "logout", l, logoutPage{Seconds: h.logout.Seconds(), StreamPath: countdownPrefix})
}

// signOut revokes the backend token and drops the stored session record.
// The record is removed even when the backend call fails, so the cookie no
// longer maps to a user either way.
func (h *Handler) signOut(ctx context.Context, sc *session.Context) error {
	sessionID := sc.SessionID()
	err := sc.Logout(ctx)
	if sessionID != "" {
		if delErr := h.store.Delete(ctx, sessionID); delErr != nil && !errors.Is(delErr, store.ErrSessionNotFound) {
			log.Printf("delete session error: %v", delErr)
		}
	}
	return err
}

// countdownHandler streams the logout countdown over sockjs. Each socket is
// one run of the flow; closing the socket cancels it.
func (h *Handler) countdownHandler() http.Handler {
	return sockjs.NewHandler(countdownPrefix, sockjs.DefaultOptions, func(s sockjs.Session) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			for {
				if _, err := s.Recv(); err != nil {
					cancel()
					return
				}
			}
		}()

		hooks := logout.Hooks{
			Tick: func(remaining int) {
				sendFrame(s, countdownFrame{Remaining: &remaining})
			},
			Navigate: nav.NavigatorFunc(func(path string) {
				sendFrame(s, countdownFrame{Navigate: path})
			}),
		}
		if req := s.Request(); req != nil {
			if sc, ok := session.FromContext(req.Context()); ok {
				hooks.Logout = func(ctx context.Context) error {
					return h.signOut(ctx, sc)
				}
			}
		}

		if h.logout.Run(ctx, hooks) {
			_ = s.Close(3000, "countdown complete")
		}
	})
}

func sendFrame(s sockjs.Session, frame countdownFrame) {
	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}
	if err := s.Send(string(payload)); err != nil {
		log.Printf("countdown send error session=%s err=%v", s.ID(), err)
	}
}
