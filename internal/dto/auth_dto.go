package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterResponse struct {
	UserId uuid.UUID `json:"user_id"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UserResponse is the trimmed user projection returned after login or
// verification.
type UserResponse struct {
	Id    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// SessionResult carries a freshly minted session token alongside the user
// projection. The token travels to the client as a cookie, never in the
// JSON body.
type SessionResult struct {
	Token string `json:"-"`
	User  UserResponse
}

type MeResponse struct {
	Id            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"is_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// SendOTPMailMessage is the payload published to the OTP mail topic.
type SendOTPMailMessage struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}
