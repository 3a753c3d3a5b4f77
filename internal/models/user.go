package models

import "time"

// User - учетная запись (email + пароль или только magic link).
type User struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255)" json:"-"`
}

// Session - строка живой сессии; JWT ссылается на нее через claim sid.
type Session struct {
	BaseModel
	UserID    string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	UserAgent string    `gorm:"type:varchar(255)" json:"-"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// LoginToken - одноразовый токен magic link; хранится только sha256 от токена.
type LoginToken struct {
	TokenHash string    `gorm:"type:varchar(64);primaryKey"`
	Email     string    `gorm:"type:varchar(255);not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}
