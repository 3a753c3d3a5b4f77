package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MediaSlot string

const (
	SlotHeadshot   MediaSlot = "headshot"
	SlotMidshot    MediaSlot = "midshot"
	SlotLongshot   MediaSlot = "longshot"
	SlotIntroVideo MediaSlot = "intro_video"
)

var mediaSlots = map[string]MediaSlot{
	"headshot":   SlotHeadshot,
	"midshot":    SlotMidshot,
	"longshot":   SlotLongshot,
	"introvideo": SlotIntroVideo,
}

// ParseMediaSlot принимает "headshot", "Head-Shot", "intro_video", "intro-video".
func ParseMediaSlot(name string) (MediaSlot, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	slot, ok := mediaSlots[key]
	return slot, ok
}

func (s MediaSlot) IsVideo() bool {
	return s == SlotIntroVideo
}

type MediaAssets struct {
	Headshot   string `json:"headshot"`
	Midshot    string `json:"midshot"`
	Longshot   string `json:"longshot"`
	IntroVideo string `json:"intro_video"`
}

func (m MediaAssets) Get(slot MediaSlot) string {
	switch slot {
	case SlotHeadshot:
		return m.Headshot
	case SlotMidshot:
		return m.Midshot
	case SlotLongshot:
		return m.Longshot
	case SlotIntroVideo:
		return m.IntroVideo
	}
	return ""
}

func (m *MediaAssets) Set(slot MediaSlot, url string) {
	switch slot {
	case SlotHeadshot:
		m.Headshot = url
	case SlotMidshot:
		m.Midshot = url
	case SlotLongshot:
		m.Longshot = url
	case SlotIntroVideo:
		m.IntroVideo = url
	}
}

type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Linkedin  string `json:"linkedin"`
}

// Experience - элемент упорядоченного списка опыта.
type Experience struct {
	Title       string `json:"title"`
	Role        string `json:"role"`
	Year        string `json:"year"`
	Description string `json:"description"`
	MediaType   string `json:"media_type,omitempty"`
	MediaURL    string `json:"media_url,omitempty"`
}

type Portfolio struct {
	ProfileID      string                          `gorm:"type:varchar(36);primaryKey" json:"profile_id"`
	Bio            string                          `gorm:"type:text" json:"bio"`
	ArtisticBelief string                          `gorm:"type:text" json:"artistic_belief"`
	MediaAssets    datatypes.JSONType[MediaAssets] `json:"media_assets"`
	SocialLinks    datatypes.JSONType[SocialLinks] `json:"social_links"`
	ExperienceJSON datatypes.JSONSlice[Experience] `gorm:"column:experience_json" json:"experience_json"`
	UpdatedAt      time.Time                       `json:"updated_at"`
}

func (Portfolio) TableName() string { return "profile_portfolio" }

func (p *Portfolio) BeforeSave(tx *gorm.DB) error {
	if p.ExperienceJSON == nil {
		p.ExperienceJSON = datatypes.JSONSlice[Experience]{}
	}
	return nil
}
