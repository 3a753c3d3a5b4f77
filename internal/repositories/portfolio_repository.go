package repositories

import (
	"errors"

	"kalasangam_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PortfolioRepository interface {
	Create(db *gorm.DB, portfolio *models.Portfolio) error
	// Upsert пишет все поля кроме media_assets: медиа обновляются только загрузкой
	Upsert(db *gorm.DB, portfolio *models.Portfolio) error
	// SetMediaSlot - частичный upsert одного слота media_assets
	SetMediaSlot(db *gorm.DB, profileID string, slot models.MediaSlot, url string) (models.MediaAssets, error)
}

type PortfolioRepositoryImpl struct{}

func NewPortfolioRepository() *PortfolioRepositoryImpl {
	return &PortfolioRepositoryImpl{}
}

func (r *PortfolioRepositoryImpl) Create(db *gorm.DB, portfolio *models.Portfolio) error {
	return db.Create(portfolio).Error
}

func (r *PortfolioRepositoryImpl) Upsert(db *gorm.DB, portfolio *models.Portfolio) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "profile_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"bio", "artistic_belief", "social_links", "experience_json", "updated_at",
		}),
	}).Create(portfolio).Error
}

func (r *PortfolioRepositoryImpl) SetMediaSlot(db *gorm.DB, profileID string, slot models.MediaSlot, url string) (models.MediaAssets, error) {
	var assets models.MediaAssets

	err := db.Transaction(func(tx *gorm.DB) error {
		var current models.Portfolio
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&current, "profile_id = ?", profileID).Error
		switch {
		case err == nil:
			assets = current.MediaAssets.Data()
		case errors.Is(err, gorm.ErrRecordNotFound):
			// профиль есть, строки портфолио нет: создаем с одним слотом
		default:
			return err
		}

		assets.Set(slot, url)

		row := models.Portfolio{
			ProfileID:   profileID,
			MediaAssets: datatypes.NewJSONType(assets),
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"media_assets", "updated_at"}),
		}).Create(&row).Error
	})
	return assets, err
}
