package entity

import (
	"strings"
	"time"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in Password.
type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	AvatarURL string
	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SplitName returns the first name and the remainder of the full name.
// The registration form collects a single full-name field.
func (u *User) SplitName() (first, last string) {
	parts := strings.SplitN(strings.TrimSpace(u.Name), " ", 2)
	first = parts[0]
	if len(parts) > 1 {
		last = parts[1]
	}
	return first, last
}
