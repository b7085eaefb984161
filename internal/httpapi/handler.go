package httpapi

import (
	"context"
	"encoding/json"
	"expvar"
	"net/http"
	"time"

	"usermgmt/portal-service/internal/backend"
	"usermgmt/portal-service/internal/guard"
	"usermgmt/portal-service/internal/logout"
	"usermgmt/portal-service/internal/models"
	"usermgmt/portal-service/internal/nav"
	"usermgmt/portal-service/internal/session"
	"usermgmt/portal-service/internal/store"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

// Backend is the slice of the external API the pages use.
type Backend interface {
	session.Provider
	Login(ctx context.Context, email, password string) (backend.LoginResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, token string, update backend.ProfileUpdate) (models.User, error)
	Company(ctx context.Context, token, companyID string) (models.Company, error)
	Room(ctx context.Context, token, companyID, roomID string) (models.Room, error)
}

type Options struct {
	Backend       Backend
	Store         store.Store
	Cookies       sessions.Store
	SecureCookies bool
	SessionTTL    time.Duration
	Limiter       *RateLimiter
	Logout        *logout.Flow
}

type Handler struct {
	backend       Backend
	store         store.Store
	cookies       sessions.Store
	secureCookies bool
	sessionTTL    time.Duration
	limiter       *RateLimiter
	logout        *logout.Flow
	now           func() time.Time
}

type errorResponse struct {
	Error responseError `json:"error"`
}

type responseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewHandler(opts Options) *Handler {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	limiter := opts.Limiter
	if limiter == nil {
		limiter = NewRateLimiter(RateLimitConfig{})
	}
	flow := opts.Logout
	if flow == nil {
		flow = logout.New(logout.DefaultSeconds, nil)
	}
	return &Handler{
		backend:       opts.Backend,
		store:         opts.Store,
		cookies:       opts.Cookies,
		secureCookies: opts.SecureCookies,
		sessionTTL:    ttl,
		limiter:       limiter,
		logout:        flow,
		now:           time.Now,
	}
}

func (h *Handler) Routes() http.Handler {
	r := mux.NewRouter()
	r.Handle("/metrics", expvar.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)

	r.HandleFunc(nav.LoginPath, h.handleLoginPage).Methods(http.MethodGet)
	r.Handle(nav.LoginPath, h.limiter.Middleware(http.HandlerFunc(h.handleLogin))).Methods(http.MethodPost)
	r.HandleFunc(nav.LogoutPath, h.handleLogout).Methods(http.MethodGet)
	r.PathPrefix(countdownPrefix + "/").Handler(h.countdownHandler())
	r.HandleFunc(nav.ForgotPasswordPath, h.handleForgotPasswordPage).Methods(http.MethodGet)
	r.Handle(nav.ForgotPasswordPath, h.limiter.Middleware(http.HandlerFunc(h.handleForgotPassword))).Methods(http.MethodPost)

	r.Handle(nav.HomePath, protect(h.handleHome)).Methods(http.MethodGet)
	r.Handle(nav.DashboardPath, protect(h.handleDashboard)).Methods(http.MethodGet)
	r.Handle(nav.SettingsPath, protect(h.handleSettings)).Methods(http.MethodGet, http.MethodPost)
	r.Handle(nav.LicensesPath, protect(h.handleLicenses)).Methods(http.MethodGet)
	r.Handle(nav.LicensesPath+"/{licenseID}/delete", protect(h.handleDeleteLicense)).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/companies/{companyID}", protect(h.handleCompany)).Methods(http.MethodGet)
	r.Handle("/companies/{companyID}/rooms/{roomID}", protect(h.handleRoom)).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(renderNotFound)
	return h.SessionMiddleware(r)
}

func protect(fn http.HandlerFunc) http.Handler {
	return guard.Middleware(nav.LoginPath, fn)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: responseError{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}
