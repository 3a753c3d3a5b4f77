package services

import (
	"context"

	"kalasangam_backend/internal/inflight"
	"kalasangam_backend/internal/logger"
	"kalasangam_backend/internal/metrics"
	"kalasangam_backend/internal/models"
	"kalasangam_backend/internal/repositories"
	"kalasangam_backend/internal/services/dto"
	"kalasangam_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ApplicationService interface {
	Apply(ctx context.Context, db *gorm.DB, userID, sessionID, projectID string, req *dto.ApplyRequest) (*dto.ApplicationView, error)
	ListMine(db *gorm.DB, userID, sessionID string) ([]dto.ApplicationView, error)
	CountMine(db *gorm.DB, userID string) (int64, error)
}

type ApplicationServiceImpl struct {
	projectRepo     repositories.ProjectRepository
	applicationRepo repositories.ApplicationRepository
	demo            *DemoStore
	guard           *inflight.Guard
	metrics         *metrics.Manager
}

func NewApplicationService(
	projectRepo repositories.ProjectRepository,
	applicationRepo repositories.ApplicationRepository,
	demo *DemoStore,
	guard *inflight.Guard,
	m *metrics.Manager,
) *ApplicationServiceImpl {
	return &ApplicationServiceImpl{
		projectRepo:     projectRepo,
		applicationRepo: applicationRepo,
		demo:            demo,
		guard:           guard,
		metrics:         m,
	}
}

// Apply откликается на первую роль проекта. Повторный последовательный отклик
// допускается; параллельный дубль (тот же пользователь и проект) отклоняется.
func (s *ApplicationServiceImpl) Apply(ctx context.Context, db *gorm.DB, userID, sessionID, projectID string, req *dto.ApplyRequest) (*dto.ApplicationView, error) {
	release, ok := s.guard.TryAcquire(inflight.Key("application.apply", userID, projectID))
	if !ok {
		s.metrics.PendingRejected("application.apply")
		return nil, apperrors.ErrRequestPending
	}
	defer release()

	if demo, ok := findDemoProject(projectID); ok {
		view := s.demo.Add(sessionID, userID, demo, req)
		s.metrics.ApplicationSubmitted(true)
		logger.CtxInfo(ctx, "Local application to demo project", "project_id", projectID)
		return &view, nil
	}

	project, err := s.projectRepo.FindByID(db, projectID)
	if err != nil {
		return nil, handleProjectError(err)
	}
	if project.IsClosed() {
		return nil, apperrors.ErrProjectClosed
	}
	role := project.FirstRole()
	if role == nil {
		return nil, apperrors.ErrProjectHasNoRoles
	}

	app := &models.Application{
		ApplicantID:     userID,
		ProjectID:       project.ID,
		RoleID:          role.ID,
		CoverNote:       req.CoverNote,
		SubmissionMedia: req.SubmissionMedia,
		Status:          models.ApplicationStatusApplied,
	}
	if err := s.applicationRepo.Create(db, app); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	s.metrics.ApplicationSubmitted(false)
	logger.CtxInfo(ctx, "Application submitted", "project_id", project.ID, "application_id", app.ID)

	app.Project = project
	app.Role = role
	view := dto.NewApplicationView(app)
	return &view, nil
}

// ListMine - сохраненные отклики, затем локальные отклики этой сессии
func (s *ApplicationServiceImpl) ListMine(db *gorm.DB, userID, sessionID string) ([]dto.ApplicationView, error) {
	apps, err := s.applicationRepo.ListByApplicant(db, userID)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	local := s.demo.List(sessionID)
	views := make([]dto.ApplicationView, 0, len(apps)+len(local))
	for i := range apps {
		views = append(views, dto.NewApplicationView(&apps[i]))
	}
	return append(views, local...), nil
}

func (s *ApplicationServiceImpl) CountMine(db *gorm.DB, userID string) (int64, error) {
	count, err := s.applicationRepo.CountByApplicant(db, userID)
	if err != nil {
		return 0, apperrors.ErrDatabase(err)
	}
	return count, nil
}
