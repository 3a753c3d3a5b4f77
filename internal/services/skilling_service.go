package services

import (
	_ "embed"
	"fmt"

	"kalasangam_backend/internal/services/dto"
	"kalasangam_backend/pkg/apperrors"

	"gopkg.in/yaml.v2"
)

//go:embed content/catalogue.yaml
var catalogueYAML []byte

const (
	TabAcademy    = "academy"
	TabLibrary    = "library"
	TabFlashcards = "flashcards"
)

var SkillingTabs = []string{TabAcademy, TabLibrary, TabFlashcards}

type catalogueFile struct {
	WeeklyChallenge dto.WeeklyChallenge   `yaml:"weekly_challenge"`
	Skilling        dto.SkillingCatalogue `yaml:"skilling"`
}

func parseCatalogue(data []byte) (*catalogueFile, error) {
	var c catalogueFile
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse content catalogue: %w", err)
	}
	return &c, nil
}

// mustCatalogue падает при старте, если встроенный YAML сломан
func mustCatalogue() *catalogueFile {
	c, err := parseCatalogue(catalogueYAML)
	if err != nil {
		panic(err)
	}
	return c
}

type SkillingService interface {
	Catalogue() *dto.SkillingCatalogue
	// Tab returns one of academy, library, flashcards
	Tab(name string) (interface{}, error)
}

type SkillingServiceImpl struct {
	catalogue dto.SkillingCatalogue
}

func NewSkillingService() *SkillingServiceImpl {
	return &SkillingServiceImpl{catalogue: mustCatalogue().Skilling}
}

func (s *SkillingServiceImpl) Catalogue() *dto.SkillingCatalogue {
	c := s.catalogue
	return &c
}

func (s *SkillingServiceImpl) Tab(name string) (interface{}, error) {
	switch name {
	case TabAcademy:
		return s.catalogue.Academy, nil
	case TabLibrary:
		return s.catalogue.Library, nil
	case TabFlashcards:
		return s.catalogue.Flashcards, nil
	}
	return nil, apperrors.ErrNotFound(fmt.Errorf("unknown skilling tab %q", name)).
		WithDetails(map[string]interface{}{"tabs": SkillingTabs})
}
