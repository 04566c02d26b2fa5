package specification

import (
	"time"

	"gorm.io/gorm"
)

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type ByGoogleId struct {
	GoogleId string
}

func (s ByGoogleId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("google_id = ?", s.GoogleId)
}

// ByOTP matches the stored code together with a strict expiry bound so the
// lookup-and-match is a single query; an expired code can never match, even
// if the row is read and checked at different instants.
type ByOTP struct {
	Code string
	Now  time.Time
}

func (s ByOTP) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("otp = ? AND otp_expires_at > ?", s.Code, s.Now)
}

type Unverified struct{}

func (s Unverified) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email_verified = ?", false)
}
