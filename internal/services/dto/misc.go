package dto

import "kalasangam_backend/internal/models"

// ==========================
// Session gate / shell
// ==========================

type SessionStateResponse struct {
	State     string         `json:"state"`
	UserID    string         `json:"user_id,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
	Profile   *ProfileBundle `json:"profile,omitempty"`
}

type SetViewRequest struct {
	View string `json:"view" validate:"required"`
}

type ShellViewResponse struct {
	View      string   `json:"view"`
	Available []string `json:"available"`
	Locked    bool     `json:"locked"` // true пока не пройден онбординг
}

// ==========================
// Dashboard
// ==========================

type WeeklyChallenge struct {
	Week         int      `json:"week" yaml:"week"`
	Title        string   `json:"title" yaml:"title"`
	Teaser       string   `json:"teaser" yaml:"teaser"`
	Prompt       string   `json:"prompt" yaml:"prompt"`
	Instructions []string `json:"instructions" yaml:"instructions"`
	Hashtag      string   `json:"hashtag" yaml:"hashtag"`
	ShareCaption string   `json:"share_caption" yaml:"share_caption"`
	ShareURL     string   `json:"share_url" yaml:"share_url"`
}

type DashboardResponse struct {
	FirstName        string          `json:"first_name"`
	ApplicationCount int64           `json:"application_count"`
	ProfileComplete  bool            `json:"profile_complete"`
	NeedsAuditions   bool            `json:"needs_auditions"`
	NeedsProfile     bool            `json:"needs_profile"`
	Challenge        WeeklyChallenge `json:"weekly_challenge"`
}

// ==========================
// Skilling
// ==========================

type Video struct {
	ID    int    `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Src   string `json:"src" yaml:"src"`
}

type Article struct {
	Title   string `json:"title" yaml:"title"`
	Type    string `json:"type" yaml:"type"`
	Author  string `json:"author" yaml:"author"`
	Content string `json:"content" yaml:"content"`
}

type Flashcard struct {
	Title string `json:"title" yaml:"title"`
	Desc  string `json:"desc" yaml:"desc"`
}

type SkillingCatalogue struct {
	Academy    []Video     `json:"academy" yaml:"academy"`
	Library    []Article   `json:"library" yaml:"library"`
	Flashcards []Flashcard `json:"flashcards" yaml:"flashcards"`
}

// ==========================
// Media
// ==========================

type MediaUploadResponse struct {
	Slot        models.MediaSlot   `json:"slot"`
	URL         string             `json:"url"`
	MediaAssets models.MediaAssets `json:"media_assets"`
	Compressed  bool               `json:"compressed"`
	Outcome     string             `json:"outcome"`
	Size        int                `json:"size"`
}

type ExperienceMediaResponse struct {
	MediaURL  string `json:"media_url"`
	MediaType string `json:"media_type"` // video, audio, image
}

// ==========================
// AI coach
// ==========================

type CoachAnalyzeResponse struct {
	Result string `json:"result"`
	Prompt string `json:"prompt"`
}

type CoachReportRequest struct {
	Text string `json:"text" validate:"required"`
}

// ==========================
// Setup
// ==========================

type SetupRequest struct {
	URL     string `json:"url" validate:"required"`
	AnonKey string `json:"anon_key" validate:"required"`
}

type SetupStatusResponse struct {
	Configured     bool   `json:"configured"`
	ConnectionFile string `json:"connection_file"`
}
