package repositories

import (
	"time"

	"kalasangam_backend/internal/models"

	"gorm.io/gorm"
)

type LoginTokenRepository interface {
	Create(db *gorm.DB, token *models.LoginToken) error
	Consume(db *gorm.DB, tokenHash string, now time.Time) (*models.LoginToken, error)
	DeleteExpired(db *gorm.DB, now time.Time) (int64, error)
}

type LoginTokenRepositoryImpl struct{}

func NewLoginTokenRepository() *LoginTokenRepositoryImpl {
	return &LoginTokenRepositoryImpl{}
}

func (r *LoginTokenRepositoryImpl) Create(db *gorm.DB, token *models.LoginToken) error {
	return db.Create(token).Error
}

// Consume удаляет токен и возвращает его. Из двух параллельных вызовов
// успешен только тот, чей DELETE затронул строку.
func (r *LoginTokenRepositoryImpl) Consume(db *gorm.DB, tokenHash string, now time.Time) (*models.LoginToken, error) {
	var token models.LoginToken
	if err := db.First(&token, "token_hash = ?", tokenHash).Error; err != nil {
		return nil, notFound(err, ErrLoginTokenInvalid)
	}

	res := db.Where("token_hash = ?", tokenHash).Delete(&models.LoginToken{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 || !now.Before(token.ExpiresAt) {
		return nil, ErrLoginTokenInvalid
	}
	return &token, nil
}

func (r *LoginTokenRepositoryImpl) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Where("expires_at <= ?", now).Delete(&models.LoginToken{})
	return res.RowsAffected, res.Error
}
