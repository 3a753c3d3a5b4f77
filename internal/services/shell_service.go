package services

import (
	"fmt"
	"sync"

	"kalasangam_backend/internal/events"
	"kalasangam_backend/internal/services/dto"
	"kalasangam_backend/pkg/apperrors"
)

type View string

const (
	ViewDashboard    View = "dashboard"
	ViewProfile      View = "profile"
	ViewProjects     View = "projects"
	ViewApplications View = "applications"
	ViewSkilling     View = "skilling"
	ViewAICoach      View = "ai-coach"
	ViewOnboarding   View = "onboarding"
)

// навигационные экраны; onboarding выбирается только gate
var navigableViews = []View{
	ViewDashboard, ViewProfile, ViewProjects, ViewApplications, ViewSkilling, ViewAICoach,
}

func ParseView(name string) (View, error) {
	v := View(name)
	if v == ViewOnboarding {
		return v, nil
	}
	for _, known := range navigableViews {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q", name)
}

// ShellService хранит выбранный экран для каждой сессии в памяти.
// Состояние сессии сбрасывается по SIGNED_OUT.
type ShellService struct {
	mu    sync.Mutex
	views map[string]View

	listener *sessionListener
}

func NewShellService(bus events.Bus) *ShellService {
	s := &ShellService{views: make(map[string]View)}
	s.listener = listenSessionEvents(bus, func(ev events.Event) {
		if ev.Type == events.SignedOut {
			s.mu.Lock()
			delete(s.views, ev.SessionID)
			s.mu.Unlock()
		}
	})
	return s
}

func (s *ShellService) Current(sessionID string, state GateState) *dto.ShellViewResponse {
	if state != StateReady {
		return shellResponse(ViewOnboarding, true)
	}

	s.mu.Lock()
	view, ok := s.views[sessionID]
	s.mu.Unlock()
	if !ok {
		view = ViewDashboard
	}
	return shellResponse(view, false)
}

func (s *ShellService) Set(sessionID string, state GateState, name string) (*dto.ShellViewResponse, error) {
	view, err := ParseView(name)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	if state != StateReady {
		return nil, apperrors.ErrInvalidOperation("shell", "Complete onboarding first")
	}
	if view == ViewOnboarding {
		return nil, apperrors.ErrInvalidOperation("shell", "Onboarding is already complete")
	}

	s.mu.Lock()
	s.views[sessionID] = view
	s.mu.Unlock()
	return shellResponse(view, false), nil
}

func (s *ShellService) Close() {
	s.listener.stop()
}

func shellResponse(view View, locked bool) *dto.ShellViewResponse {
	available := make([]string, 0, len(navigableViews))
	if !locked {
		for _, v := range navigableViews {
			available = append(available, string(v))
		}
	} else {
		available = append(available, string(ViewOnboarding))
	}
	return &dto.ShellViewResponse{View: string(view), Available: available, Locked: locked}
}
