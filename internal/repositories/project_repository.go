package repositories

import (
	"kalasangam_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectFilter для листинга. Закрытые проекты не возвращаются никогда.
type ProjectFilter struct {
	CreatorID        string // только проекты этого пользователя
	ExcludeCreatorID string // все, кроме проектов этого пользователя
}

type ProjectRepository interface {
	Create(db *gorm.DB, project *models.Project) error
	Update(db *gorm.DB, project *models.Project) error
	FindByID(db *gorm.DB, id string) (*models.Project, error)
	ListOpen(db *gorm.DB, filter ProjectFilter) ([]models.Project, error)
	UpdateStatus(db *gorm.DB, id string, status models.ProjectStatus) error

	UpsertRole(db *gorm.DB, role *models.Role) error
	FindRolesByProject(db *gorm.DB, projectID string) ([]models.Role, error)
}

type ProjectRepositoryImpl struct{}

func NewProjectRepository() *ProjectRepositoryImpl {
	return &ProjectRepositoryImpl{}
}

func (r *ProjectRepositoryImpl) Create(db *gorm.DB, project *models.Project) error {
	return db.Omit("Roles").Create(project).Error
}

// Update перезаписывает редактируемые поля; creator_id и created_at не трогаются.
func (r *ProjectRepositoryImpl) Update(db *gorm.DB, project *models.Project) error {
	res := db.Model(project).
		Select("title", "description", "casting_agency", "project_type", "status",
			"project_location", "language_requirements", "date_start", "date_end", "updated_at").
		Updates(project)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Project, error) {
	var project models.Project
	err := db.Preload("Roles", orderRoles).First(&project, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) ListOpen(db *gorm.DB, filter ProjectFilter) ([]models.Project, error) {
	query := db.Model(&models.Project{}).
		Preload("Roles", orderRoles).
		Where("status <> ?", models.ProjectStatusClosed)

	if filter.CreatorID != "" {
		query = query.Where("creator_id = ?", filter.CreatorID)
	}
	if filter.ExcludeCreatorID != "" {
		query = query.Where("creator_id <> ?", filter.ExcludeCreatorID)
	}

	var projects []models.Project
	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.ProjectStatus) error {
	res := db.Model(&models.Project{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepositoryImpl) UpsertRole(db *gorm.DB, role *models.Role) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"role_name", "description", "audition_instructions", "script_url", "specs",
		}),
	}).Create(role).Error
}

func (r *ProjectRepositoryImpl) FindRolesByProject(db *gorm.DB, projectID string) ([]models.Role, error) {
	var roles []models.Role
	err := orderRoles(db.Where("project_id = ?", projectID)).Find(&roles).Error
	return roles, err
}

// первая роль = самая ранняя
func orderRoles(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}
