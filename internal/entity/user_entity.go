package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. PasswordHash is nil for OAuth-only accounts
// and GoogleId is nil for password-only accounts; at least one must be set
// for the user to be able to authenticate.
//
// OTP and OTPExpiresAt are either both set (verification pending) or both
// nil; they are cleared the moment the code is accepted.
type User struct {
	Id            uuid.UUID
	GoogleId      *string
	Email         string
	FullName      string
	PasswordHash  *string
	EmailVerified bool
	OTP           *string
	OTPExpiresAt  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Sanitized returns a copy safe to expose to handlers: credential and OTP
// fields stripped.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.PasswordHash = nil
	c.OTP = nil
	c.OTPExpiresAt = nil
	return &c
}
