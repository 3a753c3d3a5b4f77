package services

import (
	"context"
	"errors"
	"sync"

	"kalasangam_backend/internal/events"
	"kalasangam_backend/internal/logger"
	"kalasangam_backend/internal/services/dto"
	"kalasangam_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type GateState string

const (
	StateUnauthenticated GateState = "unauthenticated"
	StateOnboarding      GateState = "onboarding"
	StateReady           GateState = "ready"
)

type GateResult struct {
	State     GateState
	UserID    string
	SessionID string
	Profile   *dto.ProfileBundle
}

func (r *GateResult) Response() *dto.SessionStateResponse {
	return &dto.SessionStateResponse{
		State:     string(r.State),
		UserID:    r.UserID,
		SessionID: r.SessionID,
		Profile:   r.Profile,
	}
}

// SessionGate решает, что показывать: экран входа, онбординг или приложение.
// Результат кешируется по сессии; кеш сбрасывается только событиями шины
// (SIGNED_OUT - по сессии, PROFILE_UPDATED - все сессии пользователя).
type SessionGate struct {
	auth     AuthService
	profiles ProfileService

	mu    sync.RWMutex
	cache map[string]*GateResult // session id -> result

	listener *sessionListener
}

func NewSessionGate(auth AuthService, profiles ProfileService, bus events.Bus) *SessionGate {
	g := &SessionGate{
		auth:     auth,
		profiles: profiles,
		cache:    make(map[string]*GateResult),
	}
	g.listener = listenSessionEvents(bus, g.handle)
	return g
}

// Resolve never reports a missing profile as an error: that is the onboarding state.
func (g *SessionGate) Resolve(ctx context.Context, db *gorm.DB, token string) (*GateResult, error) {
	if token == "" {
		return &GateResult{State: StateUnauthenticated}, nil
	}

	session, err := g.auth.GetSession(db, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidToken) {
			return &GateResult{State: StateUnauthenticated}, nil
		}
		return nil, err
	}

	if cached, ok := g.cached(session.ID); ok {
		return cached, nil
	}

	result := &GateResult{UserID: session.UserID, SessionID: session.ID}
	bundle, err := g.profiles.Load(db, session.UserID)
	switch {
	case err == nil:
		result.State = StateReady
		result.Profile = bundle
	case errors.Is(err, apperrors.ErrProfileNotFound):
		result.State = StateOnboarding
	default:
		return nil, err
	}

	// онбординг не кешируем: он заканчивается первым же успешным Onboard
	if result.State == StateReady {
		g.mu.Lock()
		g.cache[session.ID] = result
		g.mu.Unlock()
	}

	logger.CtxDebug(ctx, "Session gate resolved", "session_id", session.ID, "state", string(result.State))
	return result, nil
}

func (g *SessionGate) cached(sessionID string) (*GateResult, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.cache[sessionID]
	return r, ok
}

// Cached reports the number of cached sessions.
func (g *SessionGate) Cached() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.cache)
}

func (g *SessionGate) handle(ev events.Event) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch ev.Type {
	case events.SignedOut:
		delete(g.cache, ev.SessionID)
	case events.ProfileUpdated:
		for id, r := range g.cache {
			if r.UserID == ev.UserID {
				delete(g.cache, id)
			}
		}
	}
}

// Close отписывает gate от шины
func (g *SessionGate) Close() {
	g.listener.stop()
}
