package repositories

import (
	"errors"

	"kalasangam_backend/internal/models"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(db *gorm.DB, profile *models.Profile) error
	// FindByID загружает профиль вместе со specs и portfolio (списками)
	FindByID(db *gorm.DB, id string) (*models.Profile, error)
	FindByUsername(db *gorm.DB, username string) (*models.Profile, error)
	Exists(db *gorm.DB, id string) (bool, error)
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() *ProfileRepositoryImpl {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) Create(db *gorm.DB, profile *models.Profile) error {
	exists, err := r.Exists(db, profile.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrProfileAlreadyExists
	}

	var taken int64
	if err := db.Model(&models.Profile{}).Where("username = ?", profile.Username).Count(&taken).Error; err != nil {
		return err
	}
	if taken > 0 {
		return ErrUsernameTaken
	}

	// связи создаются отдельно, здесь только сама строка профиля
	if err := db.Omit("Specs", "Portfolio").Create(profile).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *ProfileRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Profile, error) {
	var profile models.Profile
	err := db.Preload("Specs").Preload("Portfolio").First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, ErrProfileNotFound)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindByUsername(db *gorm.DB, username string) (*models.Profile, error) {
	var profile models.Profile
	err := db.Preload("Specs").Preload("Portfolio").First(&profile, "username = ?", username).Error
	if err != nil {
		return nil, notFound(err, ErrProfileNotFound)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) Exists(db *gorm.DB, id string) (bool, error) {
	var p models.Profile
	err := db.Select("id").First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}
