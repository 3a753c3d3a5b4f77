package models

import "time"

// Profile - корневая запись пользователя. ID совпадает с ID пользователя.
// Specs и Portfolio загружаются как has-many, поэтому приходят списками и
// нормализуются к одному объекту на уровне сервиса.
type Profile struct {
	ID               string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	FullName         string           `gorm:"type:varchar(255)" json:"full_name"`
	Username         string           `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	RoleType         RoleType         `gorm:"type:varchar(20);not null;default:'talent'" json:"role_type"`
	OnboardingStatus OnboardingStatus `gorm:"type:varchar(30)" json:"onboarding_status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`

	Specs     []Specs     `gorm:"foreignKey:ProfileID" json:"-"`
	Portfolio []Portfolio `gorm:"foreignKey:ProfileID" json:"-"`
}

func (Profile) TableName() string { return "profiles" }
