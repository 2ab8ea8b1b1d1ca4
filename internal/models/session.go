package models

import "github.com/google/uuid"

// SessionStatus describes who, if anyone, is currently logged in.
type SessionStatus struct {
	User     *uuid.UUID `json:"user"`
	LoggedIn bool       `json:"logged_in"`
}
