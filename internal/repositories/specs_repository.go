package repositories

import (
	"kalasangam_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SpecsRepository interface {
	Create(db *gorm.DB, specs *models.Specs) error
	Upsert(db *gorm.DB, specs *models.Specs) error
}

type SpecsRepositoryImpl struct{}

func NewSpecsRepository() *SpecsRepositoryImpl {
	return &SpecsRepositoryImpl{}
}

func (r *SpecsRepositoryImpl) Create(db *gorm.DB, specs *models.Specs) error {
	return db.Create(specs).Error
}

// Upsert по первичному ключу profile_id
func (r *SpecsRepositoryImpl) Upsert(db *gorm.DB, specs *models.Specs) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}},
		UpdateAll: true,
	}).Create(specs).Error
}
