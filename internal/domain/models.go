package domain

import "time"

type Account struct {
	ID          string
	Email       string
	DisplayName string
	CreatedAt   time.Time
}

// HasDisplayName reports whether the account was created with a display name.
func (a Account) HasDisplayName() bool { return a.DisplayName != "" }
