package repositories

import (
	"kalasangam_backend/internal/models"

	"gorm.io/gorm"
)

// ApplicationRepository - отклики. Уникальность (applicant, role) не
// проверяется: повторный отклик сохраняется как новая строка.
type ApplicationRepository interface {
	Create(db *gorm.DB, app *models.Application) error
	ListByApplicant(db *gorm.DB, applicantID string) ([]models.Application, error)
	ListByProject(db *gorm.DB, projectID string) ([]models.Application, error)
	CountByApplicant(db *gorm.DB, applicantID string) (int64, error)
	CountByProjects(db *gorm.DB, projectIDs []string) (map[string]int64, error)
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() *ApplicationRepositoryImpl {
	return &ApplicationRepositoryImpl{}
}

func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, app *models.Application) error {
	return db.Omit("Project", "Role", "Applicant").Create(app).Error
}

func (r *ApplicationRepositoryImpl) ListByApplicant(db *gorm.DB, applicantID string) ([]models.Application, error) {
	var apps []models.Application
	err := db.Preload("Project").Preload("Role").
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) ListByProject(db *gorm.DB, projectID string) ([]models.Application, error) {
	var apps []models.Application
	err := db.Preload("Role").Preload("Applicant").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) CountByApplicant(db *gorm.DB, applicantID string) (int64, error) {
	var count int64
	err := db.Model(&models.Application{}).Where("applicant_id = ?", applicantID).Count(&count).Error
	return count, err
}

// CountByProjects returns application counts keyed by project id; projects
// without applications are absent from the map.
func (r *ApplicationRepositoryImpl) CountByProjects(db *gorm.DB, projectIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(projectIDs))
	if len(projectIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ProjectID string
		Total     int64
	}
	err := db.Model(&models.Application{}).
		Select("project_id, COUNT(*) AS total").
		Where("project_id IN ?", projectIDs).
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ProjectID] = row.Total
	}
	return counts, nil
}
