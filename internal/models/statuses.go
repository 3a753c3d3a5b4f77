package models

type RoleType string
type OnboardingStatus string
type ProjectStatus string
type ApplicationStatus string

const (
	RoleTypeTalent  RoleType = "talent"
	RoleTypeCasting RoleType = "casting"
	RoleTypeBoth    RoleType = "both"

	OnboardingDetailsAdded OnboardingStatus = "details_added"

	ProjectStatusOpen    ProjectStatus = "open"
	ProjectStatusCasting ProjectStatus = "casting"
	ProjectStatusClosed  ProjectStatus = "closed"

	ApplicationStatusApplied ApplicationStatus = "applied"
)

func (r RoleType) Valid() bool {
	switch r {
	case RoleTypeTalent, RoleTypeCasting, RoleTypeBoth:
		return true
	}
	return false
}
