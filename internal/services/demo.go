package services

import (
	"sync"
	"time"

	"kalasangam_backend/internal/events"
	"kalasangam_backend/internal/models"
	"kalasangam_backend/internal/services/dto"

	"github.com/google/uuid"
)

// Демо-проекты показываются в общей ленте после настоящих. Их нельзя
// редактировать, а отклики на них живут только в памяти до выхода из сессии.
var demoProjects = []dto.ProjectView{
	demoProject("mock1", "The Silent Hill", "Horror short film.", "Red Chillies", "Ghost", 12),
	demoProject("mock2", "Fizz Soda Ad", "High energy dancers needed.", "Ogilvy", "Lead Dancer", 45),
}

func demoProject(id, title, description, agency, roleName string, applications int64) dto.ProjectView {
	p := models.Project{
		Title:         title,
		Description:   description,
		CastingAgency: agency,
		Status:        models.ProjectStatusCasting,
		Roles: []models.Role{{
			ID:        id + "_role",
			ProjectID: id,
			RoleName:  roleName,
		}},
	}
	p.ID = id
	return dto.ProjectView{Project: p, IsDemo: true, ApplicationCount: applications}
}

func DemoProjects() []dto.ProjectView {
	out := make([]dto.ProjectView, len(demoProjects))
	copy(out, demoProjects)
	return out
}

func findDemoProject(id string) (*dto.ProjectView, bool) {
	for i := range demoProjects {
		if demoProjects[i].ID == id {
			p := demoProjects[i]
			return &p, true
		}
	}
	return nil, false
}

func IsDemoProject(id string) bool {
	_, ok := findDemoProject(id)
	return ok
}

// DemoStore - локальные отклики на демо-проекты, по сессии.
type DemoStore struct {
	mu   sync.Mutex
	apps map[string][]dto.ApplicationView // session id -> applications

	listener *sessionListener
}

func NewDemoStore(bus events.Bus) *DemoStore {
	s := &DemoStore{apps: make(map[string][]dto.ApplicationView)}
	s.listener = listenSessionEvents(bus, func(ev events.Event) {
		if ev.Type == events.SignedOut {
			s.Drop(ev.SessionID)
		}
	})
	return s
}

func (s *DemoStore) Add(sessionID, applicantID string, project *dto.ProjectView, req *dto.ApplyRequest) dto.ApplicationView {
	view := dto.ApplicationView{
		ID:              "local_" + uuid.NewString(),
		ProjectID:       project.ID,
		ProjectTitle:    project.Title,
		ApplicantID:     applicantID,
		CoverNote:       req.CoverNote,
		SubmissionMedia: req.SubmissionMedia,
		Status:          models.ApplicationStatusApplied,
		CreatedAt:       time.Now().UTC(),
		IsLocal:         true,
	}
	if role := project.FirstRole(); role != nil {
		view.RoleID = role.ID
		view.RoleName = role.RoleName
	}

	s.mu.Lock()
	s.apps[sessionID] = append(s.apps[sessionID], view)
	s.mu.Unlock()
	return view
}

func (s *DemoStore) List(sessionID string) []dto.ApplicationView {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dto.ApplicationView, len(s.apps[sessionID]))
	copy(out, s.apps[sessionID])
	return out
}

func (s *DemoStore) Drop(sessionID string) {
	s.mu.Lock()
	delete(s.apps, sessionID)
	s.mu.Unlock()
}

func (s *DemoStore) Close() {
	s.listener.stop()
}
