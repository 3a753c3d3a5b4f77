package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application - отклик пользователя на роль проекта.
type Application struct {
	ID              string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	ApplicantID     string            `gorm:"type:varchar(36);not null;index" json:"applicant_id"`
	ProjectID       string            `gorm:"type:varchar(36);not null;index" json:"project_id"`
	RoleID          string            `gorm:"type:varchar(36);not null" json:"role_id"`
	CoverNote       string            `gorm:"type:text" json:"cover_note"`
	SubmissionMedia string            `gorm:"type:varchar(1024)" json:"submission_media"`
	Status          ApplicationStatus `gorm:"type:varchar(20);not null;default:'applied'" json:"status"`
	CreatedAt       time.Time         `gorm:"index" json:"created_at"`

	Project   *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Role      *Role    `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Applicant *Profile `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
}

func (Application) TableName() string { return "user_applications" }

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = ApplicationStatusApplied
	}
	return nil
}
