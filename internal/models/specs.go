package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Specs - физические и кастинговые характеристики профиля.
type Specs struct {
	ProfileID       string                      `gorm:"type:varchar(36);primaryKey" json:"profile_id"`
	StageName       string                      `gorm:"type:varchar(255)" json:"stage_name"`
	DateOfBirth     string                      `gorm:"type:varchar(10)" json:"date_of_birth"`
	HeightFt        *int                        `json:"height_ft"`
	HeightIn        *int                        `json:"height_in"`
	BuildType       string                      `gorm:"type:varchar(50)" json:"build_type"`
	City            string                      `gorm:"type:varchar(100)" json:"city"`
	Country         string                      `gorm:"type:varchar(100)" json:"country"`
	PrimarySkill    string                      `gorm:"type:varchar(100)" json:"primary_skill"`
	SecondarySkills datatypes.JSONSlice[string] `json:"secondary_skills"`
	LanguagesSpoken datatypes.JSONSlice[string] `json:"languages_spoken"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

func (Specs) TableName() string { return "profile_specs" }

// BeforeSave не дает записать в JSON-колонки NULL.
func (s *Specs) BeforeSave(tx *gorm.DB) error {
	if s.SecondarySkills == nil {
		s.SecondarySkills = datatypes.JSONSlice[string]{}
	}
	if s.LanguagesSpoken == nil {
		s.LanguagesSpoken = datatypes.JSONSlice[string]{}
	}
	return nil
}
