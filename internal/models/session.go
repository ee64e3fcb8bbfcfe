package models

import "time"

// Session is the currently authenticated identity. IsAdmin is always
// derived from the administrator allow-list at login and restore time; a
// persisted IsAdmin value is never treated as ground truth.
type Session struct {
	UID         string    `json:"uid"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	PhotoURL    string    `json:"photo_url"`
	IsAdmin     bool      `json:"is_admin"`
	Mock        bool      `json:"mock"`
	LoginTime   time.Time `json:"login_time"`
}
