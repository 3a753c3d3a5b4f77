package services

import (
	"context"
	"errors"

	"kalasangam_backend/internal/logger"
	"kalasangam_backend/internal/models"
	"kalasangam_backend/internal/normalize"
	"kalasangam_backend/internal/repositories"
	"kalasangam_backend/internal/services/dto"
	"kalasangam_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ScopeAll  = "all"
	ScopeMine = "mine"
)

type ProjectService interface {
	List(db *gorm.DB, userID, scope string) ([]dto.ProjectView, error)
	Get(db *gorm.DB, projectID string) (*dto.ProjectView, error)
	// Save создает проект (projectID == "") или редактирует существующий
	Save(ctx context.Context, db *gorm.DB, userID, projectID string, req *dto.SaveProjectRequest) (*dto.ProjectView, error)
	Archive(ctx context.Context, db *gorm.DB, userID, projectID string) error
	Roles(db *gorm.DB, projectID string) ([]models.Role, error)
	ApplicationsForOwner(db *gorm.DB, userID, projectID string) ([]dto.ApplicationView, error)
}

type ProjectServiceImpl struct {
	projectRepo     repositories.ProjectRepository
	applicationRepo repositories.ApplicationRepository
}

func NewProjectService(
	projectRepo repositories.ProjectRepository,
	applicationRepo repositories.ApplicationRepository,
) *ProjectServiceImpl {
	return &ProjectServiceImpl{
		projectRepo:     projectRepo,
		applicationRepo: applicationRepo,
	}
}

// List - открытые проекты, новые сверху. "all" - чужие проекты плюс демо.
func (s *ProjectServiceImpl) List(db *gorm.DB, userID, scope string) ([]dto.ProjectView, error) {
	filter := repositories.ProjectFilter{ExcludeCreatorID: userID}
	if scope == ScopeMine {
		filter = repositories.ProjectFilter{CreatorID: userID}
	}

	projects, err := s.projectRepo.ListOpen(db, filter)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	ids := make([]string, len(projects))
	for i := range projects {
		ids[i] = projects[i].ID
	}
	counts, err := s.applicationRepo.CountByProjects(db, ids)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	views := make([]dto.ProjectView, 0, len(projects)+len(demoProjects))
	for _, p := range projects {
		views = append(views, dto.ProjectView{Project: p, ApplicationCount: counts[p.ID]})
	}
	if scope != ScopeMine {
		views = append(views, DemoProjects()...)
	}
	return views, nil
}

func (s *ProjectServiceImpl) Get(db *gorm.DB, projectID string) (*dto.ProjectView, error) {
	if demo, ok := findDemoProject(projectID); ok {
		return demo, nil
	}
	project, err := s.projectRepo.FindByID(db, projectID)
	if err != nil {
		return nil, handleProjectError(err)
	}
	counts, err := s.applicationRepo.CountByProjects(db, []string{project.ID})
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	return &dto.ProjectView{Project: *project, ApplicationCount: counts[project.ID]}, nil
}

// Save - проект и его единственная роль в одной транзакции
func (s *ProjectServiceImpl) Save(ctx context.Context, db *gorm.DB, userID, projectID string, req *dto.SaveProjectRequest) (*dto.ProjectView, error) {
	if IsDemoProject(projectID) {
		return nil, apperrors.ErrDemoReadOnly
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	var project *models.Project
	if projectID == "" {
		project = &models.Project{CreatorID: userID}
	} else {
		existing, err := s.projectRepo.FindByID(tx, projectID)
		if err != nil {
			return nil, handleProjectError(err)
		}
		if existing.CreatorID != userID {
			return nil, apperrors.ErrNotProjectOwner
		}
		if existing.IsClosed() {
			return nil, apperrors.ErrProjectClosed
		}
		project = existing
	}

	applyProjectFields(project, req)

	if projectID == "" {
		if err := s.projectRepo.Create(tx, project); err != nil {
			return nil, apperrors.ErrDatabase(err)
		}
	} else {
		if err := s.projectRepo.Update(tx, project); err != nil {
			return nil, handleProjectError(err)
		}
	}

	role := &models.Role{ProjectID: project.ID}
	if current := project.FirstRole(); current != nil {
		role = &models.Role{ID: current.ID, ProjectID: project.ID, CreatedAt: current.CreatedAt}
	}
	applyRoleFields(role, &req.Role)
	if err := s.projectRepo.UpsertRole(tx, role); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	logger.CtxInfo(ctx, "Project saved", "project_id", project.ID, "creator_id", userID, "created", projectID == "")
	return s.Get(db, project.ID)
}

// Archive переводит проект в closed. Строка не удаляется.
func (s *ProjectServiceImpl) Archive(ctx context.Context, db *gorm.DB, userID, projectID string) error {
	if IsDemoProject(projectID) {
		return apperrors.ErrDemoReadOnly
	}

	project, err := s.projectRepo.FindByID(db, projectID)
	if err != nil {
		return handleProjectError(err)
	}
	if project.CreatorID != userID {
		return apperrors.ErrNotProjectOwner
	}
	if project.IsClosed() {
		return nil
	}

	if err := s.projectRepo.UpdateStatus(db, projectID, models.ProjectStatusClosed); err != nil {
		return handleProjectError(err)
	}
	logger.CtxInfo(ctx, "Project archived", "project_id", projectID)
	return nil
}

func (s *ProjectServiceImpl) Roles(db *gorm.DB, projectID string) ([]models.Role, error) {
	if demo, ok := findDemoProject(projectID); ok {
		return demo.Roles, nil
	}
	if _, err := s.projectRepo.FindByID(db, projectID); err != nil {
		return nil, handleProjectError(err)
	}
	roles, err := s.projectRepo.FindRolesByProject(db, projectID)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	return roles, nil
}

// ApplicationsForOwner - отклики на проект с именем роли и автора, только создателю
func (s *ProjectServiceImpl) ApplicationsForOwner(db *gorm.DB, userID, projectID string) ([]dto.ApplicationView, error) {
	if IsDemoProject(projectID) {
		return nil, apperrors.ErrNotProjectOwner
	}

	project, err := s.projectRepo.FindByID(db, projectID)
	if err != nil {
		return nil, handleProjectError(err)
	}
	if project.CreatorID != userID {
		return nil, apperrors.ErrNotProjectOwner
	}

	apps, err := s.applicationRepo.ListByProject(db, projectID)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	views := make([]dto.ApplicationView, 0, len(apps))
	for i := range apps {
		v := dto.NewApplicationView(&apps[i])
		v.ProjectTitle = project.Title
		views = append(views, v)
	}
	return views, nil
}

func applyProjectFields(p *models.Project, req *dto.SaveProjectRequest) {
	p.Title = req.Title
	p.Description = req.Description
	p.CastingAgency = req.CastingAgency
	p.ProjectType = req.ProjectType
	p.ProjectLocation = datatypes.JSONSlice[string](req.ProjectLocation)
	p.LanguageRequirements = datatypes.JSONSlice[string](req.LanguageRequirements)
	p.DateStart = req.DateStart
	p.DateEnd = req.DateEnd

	// статус casting, если явно не запрошен open
	p.Status = models.ProjectStatusCasting
	if req.Status == models.ProjectStatusOpen {
		p.Status = models.ProjectStatusOpen
	}
}

func applyRoleFields(r *models.Role, in *dto.RoleInput) {
	r.RoleName = in.RoleName
	r.Description = in.Description
	r.AuditionInstructions = in.AuditionInstructions
	r.ScriptURL = in.ScriptURL
	r.Specs = datatypes.JSON("{}")
	if specs, err := normalize.UnwrapJSON(in.Specs); err == nil {
		r.Specs = datatypes.JSON(specs)
	}
}

func handleProjectError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrProjectNotFound):
		return apperrors.ErrProjectNotFound
	}
	return apperrors.ErrDatabase(err)
}
