package services

import (
	"context"
	"errors"

	"kalasangam_backend/internal/events"
	"kalasangam_backend/internal/inflight"
	"kalasangam_backend/internal/logger"
	"kalasangam_backend/internal/metrics"
	"kalasangam_backend/internal/models"
	"kalasangam_backend/internal/repositories"
	"kalasangam_backend/internal/services/dto"
	"kalasangam_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileService interface {
	Onboard(ctx context.Context, db *gorm.DB, userID string, req *dto.OnboardRequest) (*dto.ProfileBundle, error)
	Load(db *gorm.DB, userID string) (*dto.ProfileBundle, error)
	LoadByUsername(db *gorm.DB, username string) (*dto.ProfileBundle, error)
	Save(ctx context.Context, db *gorm.DB, userID string, specs *dto.SpecsInput, portfolio *dto.PortfolioInput) (*dto.ProfileBundle, error)
}

type ProfileServiceImpl struct {
	profileRepo   repositories.ProfileRepository
	specsRepo     repositories.SpecsRepository
	portfolioRepo repositories.PortfolioRepository
	guard         *inflight.Guard
	bus           events.Bus
	metrics       *metrics.Manager
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	specsRepo repositories.SpecsRepository,
	portfolioRepo repositories.PortfolioRepository,
	guard *inflight.Guard,
	bus events.Bus,
	m *metrics.Manager,
) *ProfileServiceImpl {
	return &ProfileServiceImpl{
		profileRepo:   profileRepo,
		specsRepo:     specsRepo,
		portfolioRepo: portfolioRepo,
		guard:         guard,
		bus:           bus,
		metrics:       m,
	}
}

// Onboard создает профиль и пустые specs/portfolio одной транзакцией
func (s *ProfileServiceImpl) Onboard(ctx context.Context, db *gorm.DB, userID string, req *dto.OnboardRequest) (*dto.ProfileBundle, error) {
	roleType := req.RoleType
	if roleType == "" {
		roleType = models.RoleTypeTalent
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	profile := &models.Profile{
		ID:               userID,
		FullName:         req.FullName,
		Username:         req.Username,
		RoleType:         roleType,
		OnboardingStatus: models.OnboardingDetailsAdded,
	}
	if err := s.profileRepo.Create(tx, profile); err != nil {
		return nil, handleProfileError(err)
	}
	if err := s.specsRepo.Create(tx, &models.Specs{ProfileID: userID}); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	if err := s.portfolioRepo.Create(tx, &models.Portfolio{ProfileID: userID}); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	logger.CtxInfo(ctx, "Profile onboarded", "user_id", userID, "username", req.Username)
	publishProfileUpdated(ctx, s.bus, userID)
	return s.Load(db, userID)
}

func (s *ProfileServiceImpl) Load(db *gorm.DB, userID string) (*dto.ProfileBundle, error) {
	profile, err := s.profileRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleProfileError(err)
	}
	return dto.NewProfileBundle(profile), nil
}

func (s *ProfileServiceImpl) LoadByUsername(db *gorm.DB, username string) (*dto.ProfileBundle, error) {
	profile, err := s.profileRepo.FindByUsername(db, username)
	if err != nil {
		return nil, handleProfileError(err)
	}
	return dto.NewProfileBundle(profile), nil
}

// Save - два независимых upsert (specs, затем portfolio). Если второй
// падает, первый уже записан: отката нет, ошибка возвращается вызывающему.
func (s *ProfileServiceImpl) Save(ctx context.Context, db *gorm.DB, userID string, specs *dto.SpecsInput, portfolio *dto.PortfolioInput) (*dto.ProfileBundle, error) {
	release, ok := s.guard.TryAcquire(inflight.Key("profile.save", userID))
	if !ok {
		s.metrics.PendingRejected("profile.save")
		return nil, apperrors.ErrRequestPending
	}
	defer release()

	exists, err := s.profileRepo.Exists(db, userID)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	if !exists {
		return nil, apperrors.ErrProfileNotFound
	}

	if err := s.specsRepo.Upsert(db, specsModel(userID, specs)); err != nil {
		logger.CtxWithError(ctx, "Specs upsert failed", err, "user_id", userID)
		return nil, apperrors.ErrDatabase(err)
	}
	if err := s.portfolioRepo.Upsert(db, portfolioModel(userID, portfolio)); err != nil {
		logger.CtxWithError(ctx, "Portfolio upsert failed, specs already saved", err, "user_id", userID)
		return nil, apperrors.ErrDatabase(err)
	}

	publishProfileUpdated(ctx, s.bus, userID)
	return s.Load(db, userID)
}

// publishProfileUpdated сбрасывает кеш SessionGate для пользователя.
func publishProfileUpdated(ctx context.Context, bus events.Bus, userID string) {
	if err := bus.Publish(ctx, events.New(events.ProfileUpdated, userID, "")); err != nil {
		logger.CtxWithError(ctx, "Failed to publish profile update", err, "user_id", userID)
	}
}

func specsModel(profileID string, in *dto.SpecsInput) *models.Specs {
	if in == nil {
		in = &dto.SpecsInput{}
	}
	return &models.Specs{
		ProfileID:       profileID,
		StageName:       in.StageName,
		DateOfBirth:     in.DateOfBirth,
		HeightFt:        in.HeightFt,
		HeightIn:        in.HeightIn,
		BuildType:       in.BuildType,
		City:            in.City,
		Country:         in.Country,
		PrimarySkill:    in.PrimarySkill,
		SecondarySkills: datatypes.JSONSlice[string](in.SecondarySkills),
		LanguagesSpoken: datatypes.JSONSlice[string](in.LanguagesSpoken),
	}
}

func portfolioModel(profileID string, in *dto.PortfolioInput) *models.Portfolio {
	if in == nil {
		in = &dto.PortfolioInput{}
	}
	return &models.Portfolio{
		ProfileID:      profileID,
		Bio:            in.Bio,
		ArtisticBelief: in.ArtisticBelief,
		SocialLinks:    datatypes.NewJSONType(in.SocialLinks),
		ExperienceJSON: datatypes.JSONSlice[models.Experience](in.ExperienceJSON),
	}
}

func handleProfileError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrProfileNotFound):
		return apperrors.ErrProfileNotFound
	case errors.Is(err, repositories.ErrProfileAlreadyExists):
		return apperrors.ErrProfileExists
	case errors.Is(err, repositories.ErrUsernameTaken):
		return apperrors.ErrUsernameTaken
	}
	return apperrors.ErrDatabase(err)
}
