package services

import (
	"context"
	"testing"
	"time"

	"kalasangam_backend/database"
	"kalasangam_backend/internal/auth"
	"kalasangam_backend/internal/email"
	"kalasangam_backend/internal/events"
	"kalasangam_backend/internal/inflight"
	"kalasangam_backend/internal/logger"
	"kalasangam_backend/internal/metrics"
	"kalasangam_backend/internal/repositories"
	"kalasangam_backend/internal/services/dto"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv - сервисы поверх чистой sqlite-базы в памяти
type testEnv struct {
	db      *gorm.DB
	bus     *events.MemoryBus
	guard   *inflight.Guard
	metrics *metrics.Manager
	mail    *email.LogProvider

	userRepo      *repositories.UserRepositoryImpl
	profileRepo   *repositories.ProfileRepositoryImpl
	specsRepo     *repositories.SpecsRepositoryImpl
	portfolioRepo *repositories.PortfolioRepositoryImpl
	projectRepo   *repositories.ProjectRepositoryImpl
	appRepo       *repositories.ApplicationRepositoryImpl

	auth         *AuthServiceImpl
	profiles     *ProfileServiceImpl
	projects     *ProjectServiceImpl
	applications *ApplicationServiceImpl
	demo         *DemoStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger.Init("test")

	db, err := database.OpenMemory()
	require.NoError(t, err, "Не удалось поднять sqlite в памяти")

	env := &testEnv{
		db:            db,
		bus:           events.NewMemoryBus(64),
		guard:         inflight.NewGuard(),
		metrics:       metrics.NewManager(),
		mail:          email.NewLogProvider(),
		userRepo:      repositories.NewUserRepository(),
		profileRepo:   repositories.NewProfileRepository(),
		specsRepo:     repositories.NewSpecsRepository(),
		portfolioRepo: repositories.NewPortfolioRepository(),
		projectRepo:   repositories.NewProjectRepository(),
		appRepo:       repositories.NewApplicationRepository(),
	}

	env.auth = NewAuthService(
		env.userRepo,
		repositories.NewSessionRepository(),
		repositories.NewLoginTokenRepository(),
		auth.NewTokenManager("test-secret"),
		env.mail,
		env.bus,
		env.metrics,
		AuthConfig{SessionTTL: time.Hour, MagicLinkURL: "http://localhost:5173/auth/callback"},
	)
	env.profiles = NewProfileService(env.profileRepo, env.specsRepo, env.portfolioRepo, env.guard, env.bus, env.metrics)
	env.projects = NewProjectService(env.projectRepo, env.appRepo)
	env.demo = NewDemoStore(env.bus)
	env.applications = NewApplicationService(env.projectRepo, env.appRepo, env.demo, env.guard, env.metrics)

	t.Cleanup(func() {
		env.demo.Close()
		_ = env.bus.Close()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return env
}

func (e *testEnv) signUp(t *testing.T, addr string) *dto.SessionResponse {
	t.Helper()
	resp, err := e.auth.SignUp(context.Background(), e.db, &dto.SignUpRequest{Email: addr, Password: "password123"})
	require.NoError(t, err)
	return resp
}

func (e *testEnv) onboard(t *testing.T, userID, fullName, username string) *dto.ProfileBundle {
	t.Helper()
	bundle, err := e.profiles.Onboard(context.Background(), e.db, userID, &dto.OnboardRequest{
		FullName: fullName,
		Username: username,
	})
	require.NoError(t, err)
	return bundle
}

func (e *testEnv) createProject(t *testing.T, creatorID, title string) *dto.ProjectView {
	t.Helper()
	view, err := e.projects.Save(context.Background(), e.db, creatorID, "", &dto.SaveProjectRequest{
		Title: title,
		Role:  dto.RoleInput{RoleName: "Lead"},
	})
	require.NoError(t, err)
	return view
}
