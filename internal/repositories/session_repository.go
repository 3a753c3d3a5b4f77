package repositories

import (
	"time"

	"kalasangam_backend/internal/models"

	"gorm.io/gorm"
)

// SessionRepository - строки сессий. Удаление строки = отзыв сессии.
type SessionRepository interface {
	Create(db *gorm.DB, session *models.Session) error
	FindByID(db *gorm.DB, id string) (*models.Session, error)
	Delete(db *gorm.DB, id string) (bool, error)
	DeleteExpired(db *gorm.DB, now time.Time) (int64, error)
}

type SessionRepositoryImpl struct{}

func NewSessionRepository() *SessionRepositoryImpl {
	return &SessionRepositoryImpl{}
}

func (r *SessionRepositoryImpl) Create(db *gorm.DB, session *models.Session) error {
	return db.Create(session).Error
}

func (r *SessionRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Session, error) {
	var session models.Session
	if err := db.First(&session, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrSessionNotFound)
	}
	return &session, nil
}

// Delete reports whether a row was actually removed.
func (r *SessionRepositoryImpl) Delete(db *gorm.DB, id string) (bool, error) {
	res := db.Where("id = ?", id).Delete(&models.Session{})
	return res.RowsAffected > 0, res.Error
}

func (r *SessionRepositoryImpl) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Where("expires_at <= ?", now).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
