package dto

import (
	"encoding/json"
	"fmt"

	"kalasangam_backend/internal/models"
	"kalasangam_backend/internal/normalize"
)

// ==========================
// Requests
// ==========================

type OnboardRequest struct {
	FullName string          `json:"full_name" validate:"required,max=255"`
	Username string          `json:"username" validate:"required,min=3,max=50,username"`
	RoleType models.RoleType `json:"role_type" validate:"omitempty,is-role-type"`
}

// SaveProfileRequest принимает profile_specs и profile_portfolio как объект
// или как список из одного объекта (в таком виде их отдает выборка профиля).
type SaveProfileRequest struct {
	ProfileSpecs     json.RawMessage `json:"profile_specs" swaggertype:"object"`
	ProfilePortfolio json.RawMessage `json:"profile_portfolio" swaggertype:"object"`
}

type SpecsInput struct {
	StageName       string   `json:"stage_name" validate:"max=255"`
	DateOfBirth     string   `json:"date_of_birth" validate:"omitempty,is-date"`
	HeightFt        *int     `json:"height_ft" validate:"omitempty,min=0,max=8"`
	HeightIn        *int     `json:"height_in" validate:"omitempty,min=0,max=11"`
	BuildType       string   `json:"build_type" validate:"max=50"`
	City            string   `json:"city" validate:"max=100"`
	Country         string   `json:"country" validate:"max=100"`
	PrimarySkill    string   `json:"primary_skill" validate:"max=100"`
	SecondarySkills []string `json:"secondary_skills"`
	LanguagesSpoken []string `json:"languages_spoken"`
}

type PortfolioInput struct {
	Bio            string              `json:"bio" validate:"max=5000"`
	ArtisticBelief string              `json:"artistic_belief" validate:"max=5000"`
	SocialLinks    models.SocialLinks  `json:"social_links"`
	ExperienceJSON []models.Experience `json:"experience_json" validate:"dive"`
}

// Decode нормализует обе части запроса. Отсутствующая часть дает пустой объект.
func (r *SaveProfileRequest) Decode() (*SpecsInput, *PortfolioInput, error) {
	specs, _, err := normalize.Record[SpecsInput](r.ProfileSpecs)
	if err != nil {
		return nil, nil, fmt.Errorf("profile_specs: %w", err)
	}
	portfolio, _, err := normalize.Record[PortfolioInput](r.ProfilePortfolio)
	if err != nil {
		return nil, nil, fmt.Errorf("profile_portfolio: %w", err)
	}
	return &specs, &portfolio, nil
}

// ==========================
// Responses
// ==========================

// ProfileBundle - профиль с нормализованными specs и portfolio.
// Отсутствующая связанная запись сериализуется как {}.
type ProfileBundle struct {
	models.Profile
	ProfileSpecs     *models.Specs     `json:"-"`
	ProfilePortfolio *models.Portfolio `json:"-"`
}

func (b ProfileBundle) MarshalJSON() ([]byte, error) {
	type profileAlias models.Profile
	out := struct {
		profileAlias
		ProfileSpecs     interface{} `json:"profile_specs"`
		ProfilePortfolio interface{} `json:"profile_portfolio"`
	}{
		profileAlias:     profileAlias(b.Profile),
		ProfileSpecs:     emptyObject{},
		ProfilePortfolio: emptyObject{},
	}
	if b.ProfileSpecs != nil {
		out.ProfileSpecs = b.ProfileSpecs
	}
	if b.ProfilePortfolio != nil {
		out.ProfilePortfolio = b.ProfilePortfolio
	}
	return json.Marshal(out)
}

// Specs returns the specs record or a zero value.
func (b *ProfileBundle) Specs() models.Specs {
	if b == nil || b.ProfileSpecs == nil {
		return models.Specs{}
	}
	return *b.ProfileSpecs
}

// Portfolio returns the portfolio record or a zero value.
func (b *ProfileBundle) Portfolio() models.Portfolio {
	if b == nil || b.ProfilePortfolio == nil {
		return models.Portfolio{}
	}
	return *b.ProfilePortfolio
}

type emptyObject struct{}

// NewProfileBundle сводит has-many связи к одному объекту (первый элемент).
func NewProfileBundle(p *models.Profile) *ProfileBundle {
	b := &ProfileBundle{Profile: *p}
	b.Profile.Specs = nil
	b.Profile.Portfolio = nil

	if specs := normalize.One(p.Specs); specs.ProfileID != "" {
		b.ProfileSpecs = &specs
	}
	if portfolio := normalize.One(p.Portfolio); portfolio.ProfileID != "" {
		b.ProfilePortfolio = &portfolio
	}
	return b
}
