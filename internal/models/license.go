package models

import "time"

const (
	LicenseStatusActive    = "active"
	LicenseStatusSuspended = "suspended"
	LicenseStatusExpired   = "expired"
)

type License struct {
	LicenseID  string    `json:"license_id"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
	MaxUsers   int       `json:"max_users"`
	MaxRooms   int       `json:"max_rooms"`
}

// Active reports whether the license is marked active and now falls inside
// its validity window. A zero ValidUntil means open-ended.
func (l License) Active(now time.Time) bool {
	if l.Status != LicenseStatusActive {
		return false
	}
	if !l.ValidFrom.IsZero() && now.Before(l.ValidFrom) {
		return false
	}
	if !l.ValidUntil.IsZero() && !now.Before(l.ValidUntil) {
		return false
	}
	return true
}

func (u User) License(licenseID string) (License, bool) {
	for _, license := range u.Licenses {
		if license.LicenseID == licenseID {
			return license, true
		}
	}
	return License{}, false
}
