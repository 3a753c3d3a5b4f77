package dto

import (
	"encoding/json"
	"time"

	"kalasangam_backend/internal/models"
)

// ==========================
// Projects
// ==========================

type ListProjectsQuery struct {
	Scope string `form:"scope" validate:"omitempty,oneof=all mine"`
}

// SaveProjectRequest - создание или редактирование проекта вместе с его ролью
type SaveProjectRequest struct {
	Title                string               `json:"title" validate:"required,max=255"`
	Description          string               `json:"description" validate:"max=5000"`
	CastingAgency        string               `json:"casting_agency" validate:"max=255"`
	ProjectType          string               `json:"project_type" validate:"max=100"`
	Status               models.ProjectStatus `json:"status" validate:"omitempty,oneof=open casting"`
	ProjectLocation      []string             `json:"project_location"`
	LanguageRequirements []string             `json:"language_requirements"`
	DateStart            string               `json:"date_start" validate:"omitempty,is-date"`
	DateEnd              string               `json:"date_end" validate:"omitempty,is-date"`
	Role                 RoleInput            `json:"role"`
}

type RoleInput struct {
	RoleName             string          `json:"role_name" validate:"required,max=255"`
	Description          string          `json:"description" validate:"max=5000"`
	AuditionInstructions string          `json:"audition_instructions" validate:"max=5000"`
	ScriptURL            string          `json:"script_url" validate:"omitempty,url"`
	Specs                json.RawMessage `json:"specs" validate:"json-object" swaggertype:"object"`
}

// ProjectView - проект в ленте; демо-записи помечены is_demo
type ProjectView struct {
	models.Project
	IsDemo           bool  `json:"is_demo"`
	ApplicationCount int64 `json:"application_count"`
}

// ==========================
// Applications
// ==========================

type ApplyRequest struct {
	CoverNote       string `json:"cover_note" validate:"max=5000"`
	SubmissionMedia string `json:"submission_media" validate:"omitempty,url"`
}

// ApplicationView объединяет сохраненные и локальные (демо) отклики
type ApplicationView struct {
	ID              string                   `json:"id"`
	ProjectID       string                   `json:"project_id"`
	ProjectTitle    string                   `json:"project_title"`
	RoleID          string                   `json:"role_id"`
	RoleName        string                   `json:"role_name"`
	ApplicantID     string                   `json:"applicant_id"`
	ApplicantName   string                   `json:"applicant_name,omitempty"`
	CoverNote       string                   `json:"cover_note"`
	SubmissionMedia string                   `json:"submission_media,omitempty"`
	Status          models.ApplicationStatus `json:"status"`
	CreatedAt       time.Time                `json:"created_at"`
	IsLocal         bool                     `json:"is_local"`
}

func NewApplicationView(a *models.Application) ApplicationView {
	v := ApplicationView{
		ID:              a.ID,
		ProjectID:       a.ProjectID,
		RoleID:          a.RoleID,
		ApplicantID:     a.ApplicantID,
		CoverNote:       a.CoverNote,
		SubmissionMedia: a.SubmissionMedia,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
	}
	if a.Project != nil {
		v.ProjectTitle = a.Project.Title
	}
	if a.Role != nil {
		v.RoleName = a.Role.RoleName
	}
	if a.Applicant != nil {
		v.ApplicantName = a.Applicant.FullName
	}
	return v
}
