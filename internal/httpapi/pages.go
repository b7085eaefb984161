package httpapi

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"usermgmt/portal-service/internal/backend"
	"usermgmt/portal-service/internal/dialog"
	"usermgmt/portal-service/internal/models"
	"usermgmt/portal-service/internal/nav"
	"usermgmt/portal-service/internal/phone"
	"usermgmt/portal-service/internal/session"

	"github.com/gorilla/mux"
)

type loginPage struct {
	Email string
	Next  string
	Error string
}

type forgotPasswordPage struct {
	Email string
	Sent  bool
	Error string
}

type licenseRow struct {
	License models.License
	Active  bool
}

type dashboardPage struct {
	User     models.User
	Phone    string
	Licenses []licenseRow
}

type licensesPage struct {
	Licenses []licenseRow
}

type licenseDeletePage struct {
	Licenses []licenseRow
	Dialog   dialog.Confirm
	Action   string
}

type settingsPage struct {
	Name  string
	Phone phone.Input
	Saved bool
	Error string
}

type companyPage struct {
	Company models.Company
}

type roomPage struct {
	Room models.Room
}

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	page := loginPage{Next: safeNext(r.URL.Query().Get("next"))}
	render(w, r, http.StatusOK, "login", layout{Title: "Sign in", CurrentPage: "login"}, page)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		render(w, r, http.StatusBadRequest, "login", layout{Title: "Sign in"}, loginPage{Next: nav.DashboardPath, Error: "Invalid form submission."})
		return
	}
	page := loginPage{
		Email: strings.TrimSpace(r.PostFormValue("email")),
		Next:  safeNext(r.PostFormValue("next")),
	}
	password := r.PostFormValue("password")
	if page.Email == "" || password == "" {
		page.Error = "Email and password are required."
		render(w, r, http.StatusBadRequest, "login", layout{Title: "Sign in"}, page)
		return
	}

	result, err := h.backend.Login(r.Context(), page.Email, password)
	if err != nil {
		switch {
		case errors.Is(err, backend.ErrUnauthorized):
			page.Error = "Invalid email or password."
			render(w, r, http.StatusUnauthorized, "login", layout{Title: "Sign in"}, page)
		default:
			log.Printf("login backend error: %v", err)
			page.Error = "Sign-in is unavailable right now. Try again shortly."
			render(w, r, http.StatusBadGateway, "login", layout{Title: "Sign in"}, page)
		}
		return
	}

	expiresAt := h.now().Add(h.sessionTTL)
	if !result.ExpiresAt.IsZero() && result.ExpiresAt.Before(expiresAt) {
		expiresAt = result.ExpiresAt
	}
	record, err := h.store.Create(r.Context(), result.Token, result.User, expiresAt)
	if err != nil {
		log.Printf("create session error: %v", err)
		renderError(w, r, http.StatusInternalServerError, "Could not start a session.")
		return
	}
	if err := h.saveSessionCookie(w, r, record.SessionID, expiresAt); err != nil {
		log.Printf("save session cookie error: %v", err)
		renderError(w, r, http.StatusInternalServerError, "Could not start a session.")
		return
	}
	log.Printf("login user_id=%s expires_at=%s", result.User.UserID, expiresAt.UTC().Format(time.RFC3339))
	http.Redirect(w, r, page.Next, http.StatusSeeOther)
}

func (h *Handler) handleForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, "forgot_password", layout{Title: "Reset password"}, forgotPasswordPage{})
}

// handleForgotPassword always reports the request as sent; backend failures
// are only logged.
func (h *Handler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	page := forgotPasswordPage{Email: strings.TrimSpace(r.PostFormValue("email"))}
	if page.Email == "" {
		page.Error = "Email is required."
		render(w, r, http.StatusBadRequest, "forgot_password", layout{Title: "Reset password"}, page)
		return
	}
	if err := h.backend.RequestPasswordReset(r.Context(), page.Email); err != nil {
		log.Printf("password reset request error: %v", err)
	}
	page.Sent = true
	render(w, r, http.StatusOK, "forgot_password", layout{Title: "Reset password"}, page)
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, nav.DashboardPath, http.StatusSeeOther)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		renderNotFound(w, r)
		return
	}
	page := dashboardPage{
		User:     user,
		Phone:    (phone.Input{CountryCode: user.CountryCode, Number: user.Phone}).Value(),
		Licenses: h.licenseRows(user),
	}
	render(w, r, http.StatusOK, "dashboard", layout{Title: "Dashboard", CurrentPage: "dashboard"}, page)
}

func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	sc, _ := session.FromContext(r.Context())
	user, ok := currentUser(r)
	if !ok {
		renderNotFound(w, r)
		return
	}
	l := layout{Title: "Settings", CurrentPage: "settings"}

	if r.Method == http.MethodGet {
		page := settingsPage{
			Name:  user.Name,
			Phone: phone.Input{CountryCode: user.CountryCode, Number: user.Phone},
			Saved: r.URL.Query().Get("saved") == "1",
		}
		render(w, r, http.StatusOK, "settings", l, page)
		return
	}

	if err := r.ParseForm(); err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid form submission.")
		return
	}
	// The form owns the value; the phone widget only reports edits, and only
	// for the fields the form actually sent.
	update := backend.ProfileUpdate{
		Name:        strings.TrimSpace(r.PostForm.Get("name")),
		CountryCode: user.CountryCode,
		Phone:       user.Phone,
	}
	input := phone.Input{
		CountryCode:   update.CountryCode,
		Number:        update.Phone,
		OnCountryCode: func(code string) { update.CountryCode = code },
		OnNumber:      func(number string) { update.Phone = number },
	}
	if r.PostForm.Has("country_code") {
		input.ChangeCountryCode(r.PostForm.Get("country_code"))
	}
	if r.PostForm.Has("phone") {
		input.ChangeNumber(r.PostForm.Get("phone"))
	}

	page := settingsPage{
		Name:  update.Name,
		Phone: phone.Input{CountryCode: update.CountryCode, Number: update.Phone},
	}
	if update.Name == "" {
		page.Error = "Name is required."
		render(w, r, http.StatusBadRequest, "settings", l, page)
		return
	}

	updated, err := h.backend.UpdateProfile(r.Context(), sc.Token(), update)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			h.expireSession(w, r, sc)
			return
		}
		log.Printf("update profile error user_id=%s err=%v", user.UserID, err)
		page.Error = "Could not save your profile. Try again shortly."
		render(w, r, http.StatusBadGateway, "settings", l, page)
		return
	}
	if err := h.store.UpdateUser(r.Context(), sc.SessionID(), updated); err != nil {
		log.Printf("cache profile error user_id=%s err=%v", user.UserID, err)
	}
	sc.SetUser(updated)
	http.Redirect(w, r, nav.SettingsPath+"?saved=1", http.StatusSeeOther)
}

func (h *Handler) handleLicenses(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		renderNotFound(w, r)
		return
	}
	render(w, r, http.StatusOK, "licenses", layout{Title: "Licenses", CurrentPage: "licenses"}, licensesPage{Licenses: h.licenseRows(user)})
}

// handleDeleteLicense shows the confirmation dialog. Either button only
// closes it; no delete is issued to the backend.
func (h *Handler) handleDeleteLicense(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		renderNotFound(w, r)
		return
	}
	licenseID := mux.Vars(r)["licenseID"]
	license, ok := user.License(licenseID)
	if !ok {
		renderNotFound(w, r)
		return
	}

	closeDialog := func() {
		http.Redirect(w, r, nav.LicensesPath, http.StatusSeeOther)
	}
	confirm := dialog.DeleteLicense(license.Type, closeDialog)

	if r.Method == http.MethodPost {
		action := r.PostFormValue("action")
		log.Printf("license dialog closed user_id=%s license_id=%s action=%s", user.UserID, licenseID, action)
		confirm.Handle(action)
		return
	}

	page := licenseDeletePage{
		Licenses: h.licenseRows(user),
		Dialog:   confirm,
		Action:   r.URL.Path,
	}
	render(w, r, http.StatusOK, "license_delete", layout{Title: "Licenses", CurrentPage: "licenses"}, page)
}

func (h *Handler) handleCompany(w http.ResponseWriter, r *http.Request) {
	sc, _ := session.FromContext(r.Context())
	company, err := h.backend.Company(r.Context(), sc.Token(), mux.Vars(r)["companyID"])
	if err != nil {
		h.backendFailure(w, r, sc, err)
		return
	}
	render(w, r, http.StatusOK, "company", layout{Title: company.Name, CurrentPage: "company"}, companyPage{Company: company})
}

func (h *Handler) handleRoom(w http.ResponseWriter, r *http.Request) {
	sc, _ := session.FromContext(r.Context())
	vars := mux.Vars(r)
	room, err := h.backend.Room(r.Context(), sc.Token(), vars["companyID"], vars["roomID"])
	if err != nil {
		h.backendFailure(w, r, sc, err)
		return
	}
	render(w, r, http.StatusOK, "room", layout{Title: room.Name, CurrentPage: "company"}, roomPage{Room: room})
}

func (h *Handler) backendFailure(w http.ResponseWriter, r *http.Request, sc *session.Context, err error) {
	switch {
	case errors.Is(err, backend.ErrNotFound):
		renderNotFound(w, r)
	case errors.Is(err, backend.ErrUnauthorized):
		h.expireSession(w, r, sc)
	default:
		log.Printf("backend error path=%s err=%v", r.URL.Path, err)
		renderError(w, r, http.StatusBadGateway, "The service is unavailable right now. Try again shortly.")
	}
}

func (h *Handler) licenseRows(user models.User) []licenseRow {
	now := h.now()
	rows := make([]licenseRow, 0, len(user.Licenses))
	for _, license := range user.Licenses {
		rows = append(rows, licenseRow{License: license, Active: license.Active(now)})
	}
	return rows
}

func currentUser(r *http.Request) (models.User, bool) {
	sc, ok := session.FromContext(r.Context())
	if !ok {
		return models.User{}, false
	}
	user, ok := sc.User()
	if !ok {
		return models.User{}, false
	}
	return *user, true
}
