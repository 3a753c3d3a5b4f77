package services

import (
	"kalasangam_backend/internal/email"
	"kalasangam_backend/internal/events"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService        AuthService
	SessionGate        *SessionGate
	ProfileService     ProfileService
	MediaService       MediaService
	ProjectService     ProjectService
	ApplicationService ApplicationService
	DashboardService   DashboardService
	SkillingService    SkillingService
	CoachService       CoachService
	ShellService       *ShellService
	EmailService       email.Provider
	Bus                events.Bus

	demo *DemoStore
}

func (c *ServiceContainer) SetDemoStore(d *DemoStore) {
	c.demo = d
}

// Close снимает подписки на шину; саму шину закрывает владелец.
func (c *ServiceContainer) Close() {
	if c.SessionGate != nil {
		c.SessionGate.Close()
	}
	if c.ShellService != nil {
		c.ShellService.Close()
	}
	if c.demo != nil {
		c.demo.Close()
	}
}
