package services

import (
	"strings"

	"kalasangam_backend/internal/services/dto"

	"gorm.io/gorm"
)

type DashboardService interface {
	Get(db *gorm.DB, userID string) (*dto.DashboardResponse, error)
}

type DashboardServiceImpl struct {
	profiles     ProfileService
	applications ApplicationService
	challenge    dto.WeeklyChallenge
}

func NewDashboardService(profiles ProfileService, applications ApplicationService) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		profiles:     profiles,
		applications: applications,
		challenge:    mustCatalogue().WeeklyChallenge,
	}
}

func (s *DashboardServiceImpl) Get(db *gorm.DB, userID string) (*dto.DashboardResponse, error) {
	bundle, err := s.profiles.Load(db, userID)
	if err != nil {
		return nil, err
	}
	count, err := s.applications.CountMine(db, userID)
	if err != nil {
		return nil, err
	}

	// профиль заполнен, когда есть и имя, и сценическое имя
	complete := bundle.FullName != "" && bundle.Specs().StageName != ""

	return &dto.DashboardResponse{
		FirstName:        firstName(bundle.FullName),
		ApplicationCount: count,
		ProfileComplete:  complete,
		NeedsAuditions:   count == 0,
		NeedsProfile:     !complete,
		Challenge:        s.challenge,
	}, nil
}

func firstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
