package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project - кастинговое объявление. У проекта ровно одна роль.
type Project struct {
	BaseModel
	Title                string                      `gorm:"type:varchar(255);not null" json:"title"`
	Description          string                      `gorm:"type:text" json:"description"`
	CastingAgency        string                      `gorm:"type:varchar(255)" json:"casting_agency"`
	ProjectType          string                      `gorm:"type:varchar(100)" json:"project_type"`
	Status               ProjectStatus               `gorm:"type:varchar(20);not null;default:'casting';index" json:"status"`
	CreatorID            string                      `gorm:"type:varchar(36);not null;index" json:"creator_id"`
	ProjectLocation      datatypes.JSONSlice[string] `json:"project_location"`
	LanguageRequirements datatypes.JSONSlice[string] `json:"language_requirements"`
	DateStart            string                      `gorm:"type:varchar(10)" json:"date_start"`
	DateEnd              string                      `gorm:"type:varchar(10)" json:"date_end"`

	Roles []Role `gorm:"foreignKey:ProjectID" json:"project_roles"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) BeforeSave(tx *gorm.DB) error {
	if p.ProjectLocation == nil {
		p.ProjectLocation = datatypes.JSONSlice[string]{}
	}
	if p.LanguageRequirements == nil {
		p.LanguageRequirements = datatypes.JSONSlice[string]{}
	}
	return nil
}

func (p *Project) IsClosed() bool {
	return p.Status == ProjectStatusClosed
}

// FirstRole returns the project's role, nil if it has none loaded.
func (p *Project) FirstRole() *Role {
	if len(p.Roles) == 0 {
		return nil
	}
	return &p.Roles[0]
}

type Role struct {
	ID                   string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID            string         `gorm:"type:varchar(36);not null;index" json:"project_id"`
	RoleName             string         `gorm:"type:varchar(255);not null" json:"role_name"`
	Description          string         `gorm:"type:text" json:"description"`
	AuditionInstructions string         `gorm:"type:text" json:"audition_instructions"`
	ScriptURL            string         `gorm:"type:varchar(1024)" json:"script_url"`
	Specs                datatypes.JSON `json:"specs"`
	CreatedAt            time.Time      `json:"created_at"`
}

func (Role) TableName() string { return "project_roles" }

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *Role) BeforeSave(tx *gorm.DB) error {
	if len(r.Specs) == 0 {
		r.Specs = datatypes.JSON("{}")
	}
	return nil
}
