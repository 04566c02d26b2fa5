package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GoogleId      *string   `gorm:"type:varchar(255);uniqueIndex"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName      string    `gorm:"type:varchar(255);not null"`
	PasswordHash  *string   `gorm:"type:varchar(255)"`
	EmailVerified bool      `gorm:"default:false"`
	OTP           *string   `gorm:"column:otp;type:varchar(6)"`
	OTPExpiresAt  *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
