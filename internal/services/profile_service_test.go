package services

import (
	"context"
	"errors"
	"testing"

	"kalasangam_backend/internal/inflight"
	"kalasangam_backend/internal/models"
	"kalasangam_backend/internal/repositories"
	"kalasangam_backend/internal/services/dto"
	"kalasangam_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// failingPortfolioRepo падает на Upsert, остальное делегирует настоящему репозиторию
type failingPortfolioRepo struct {
	*repositories.PortfolioRepositoryImpl
}

func (failingPortfolioRepo) Upsert(db *gorm.DB, portfolio *models.Portfolio) error {
	return errors.New("portfolio store unavailable")
}

func intPtr(v int) *int { return &v }

func TestProfileService_Onboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := uuid.NewString()

	bundle := env.onboard(t, userID, "Meera Iyer", "meera")
	assert.Equal(t, userID, bundle.ID)
	assert.Equal(t, models.RoleTypeTalent, bundle.RoleType)
	assert.Equal(t, models.OnboardingDetailsAdded, bundle.OnboardingStatus)
	require.NotNil(t, bundle.ProfileSpecs, "Пустые specs создаются вместе с профилем")
	require.NotNil(t, bundle.ProfilePortfolio)
	assert.Empty(t, bundle.Specs().StageName)
	assert.Empty(t, bundle.Portfolio().Bio)

	_, err := env.profiles.Onboard(ctx, env.db, userID, &dto.OnboardRequest{FullName: "Again", Username: "meera2"})
	assert.ErrorIs(t, err, apperrors.ErrProfileExists)

	_, err = env.profiles.Onboard(ctx, env.db, uuid.NewString(), &dto.OnboardRequest{FullName: "Other", Username: "meera"})
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)

	byName, err := env.profiles.LoadByUsername(env.db, "meera")
	require.NoError(t, err)
	assert.Equal(t, userID, byName.ID)
}

func TestProfileService_LoadMissing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.profiles.Load(env.db, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

func TestProfileService_Save(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := uuid.NewString()
	env.onboard(t, userID, "Kabir Khan", "kabir")

	bundle, err := env.profiles.Save(ctx, env.db, userID,
		&dto.SpecsInput{
			StageName:       "Kabir",
			HeightFt:        intPtr(5),
			HeightIn:        intPtr(10),
			LanguagesSpoken: []string{"Hindi", "Urdu"},
		},
		&dto.PortfolioInput{
			Bio:            "Stage and screen",
			ExperienceJSON: []models.Experience{{Title: "Macbeth"}},
		},
	)
	require.NoError(t, err)
	assert.Equal(t, "Kabir", bundle.Specs().StageName)
	require.NotNil(t, bundle.Specs().HeightIn)
	assert.Equal(t, 10, *bundle.Specs().HeightIn)
	assert.Equal(t, []string{"Hindi", "Urdu"}, []string(bundle.Specs().LanguagesSpoken))
	assert.Equal(t, "Stage and screen", bundle.Portfolio().Bio)
	require.Len(t, bundle.Portfolio().ExperienceJSON, 1)

	t.Run("save does not touch media slots", func(t *testing.T) {
		_, err := env.portfolioRepo.SetMediaSlot(env.db, userID, models.SlotHeadshot, "http://cdn/head.jpg")
		require.NoError(t, err)

		bundle, err := env.profiles.Save(ctx, env.db, userID, &dto.SpecsInput{StageName: "Kabir K"}, &dto.PortfolioInput{Bio: "Updated"})
		require.NoError(t, err)
		assert.Equal(t, "Updated", bundle.Portfolio().Bio)
		assert.Equal(t, "http://cdn/head.jpg", bundle.Portfolio().MediaAssets.Data().Headshot)
	})

	t.Run("without profile", func(t *testing.T) {
		_, err := env.profiles.Save(ctx, env.db, uuid.NewString(), &dto.SpecsInput{}, &dto.PortfolioInput{})
		assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
	})
}

func TestProfileService_SaveKeepsSpecsWhenPortfolioFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := uuid.NewString()
	env.onboard(t, userID, "Zoya", "zoya")

	broken := NewProfileService(env.profileRepo, env.specsRepo,
		failingPortfolioRepo{env.portfolioRepo}, env.guard, env.bus, env.metrics)

	_, err := broken.Save(ctx, env.db, userID, &dto.SpecsInput{StageName: "Zoya Z"}, &dto.PortfolioInput{Bio: "lost"})
	require.Error(t, err)

	// specs уже записаны, portfolio нет
	bundle, err := env.profiles.Load(env.db, userID)
	require.NoError(t, err)
	assert.Equal(t, "Zoya Z", bundle.Specs().StageName)
	assert.Empty(t, bundle.Portfolio().Bio)
}

func TestProfileService_SaveRejectsConcurrentDuplicate(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.NewString()
	env.onboard(t, userID, "Dev", "dev")

	release, ok := env.guard.TryAcquire(inflight.Key("profile.save", userID))
	require.True(t, ok)
	defer release()

	_, err := env.profiles.Save(context.Background(), env.db, userID, &dto.SpecsInput{}, &dto.PortfolioInput{})
	assert.ErrorIs(t, err, apperrors.ErrRequestPending)
}
