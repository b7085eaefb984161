package models

import "time"

type User struct {
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CountryCode string    `json:"country_code"`
	Phone       string    `json:"phone"`
	Role        string    `json:"role"`
	Image       string    `json:"image"`
	Company     *Company  `json:"company,omitempty"`
	Licenses    []License `json:"licenses,omitempty"`
}

type Company struct {
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	OrgNumber string `json:"org_number"`
}

type Room struct {
	RoomID    string `json:"room_id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
}

// Session is the portal's record of a signed-in browser. User is the cached
// copy returned by the backend at sign-in and is never written back.
type Session struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"-"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
