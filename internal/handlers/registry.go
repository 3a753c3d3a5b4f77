package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	SessionHandler   *SessionHandler
	ProfileHandler   *ProfileHandler
	ProjectHandler   *ProjectHandler
	DashboardHandler *DashboardHandler
	SkillingHandler  *SkillingHandler
	CoachHandler     *CoachHandler
	SetupHandler     *SetupHandler
	HealthHandler    *HealthHandler
}
