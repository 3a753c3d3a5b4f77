package services

import (
	"context"
	"errors"
	"net/url"
	"time"

	"kalasangam_backend/internal/auth"
	"kalasangam_backend/internal/email"
	"kalasangam_backend/internal/events"
	"kalasangam_backend/internal/logger"
	"kalasangam_backend/internal/metrics"
	"kalasangam_backend/internal/models"
	"kalasangam_backend/internal/repositories"
	"kalasangam_backend/internal/services/dto"
	"kalasangam_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	SignUp(ctx context.Context, db *gorm.DB, req *dto.SignUpRequest) (*dto.SessionResponse, error)
	SignIn(ctx context.Context, db *gorm.DB, req *dto.SignInRequest) (*dto.SessionResponse, error)
	RequestMagicLink(ctx context.Context, db *gorm.DB, emailAddr string) error
	VerifyMagicLink(ctx context.Context, db *gorm.DB, token string) (*dto.SessionResponse, error)
	SignOut(ctx context.Context, db *gorm.DB, sessionID string) error
	GetSession(db *gorm.DB, token string) (*models.Session, error)
}

type AuthConfig struct {
	SessionTTL   time.Duration
	MagicLinkTTL time.Duration
	MagicLinkURL string // ссылка получает ?token=<token>
}

type AuthServiceImpl struct {
	userRepo       repositories.UserRepository
	sessionRepo    repositories.SessionRepository
	loginTokenRepo repositories.LoginTokenRepository
	tokens         *auth.TokenManager
	emailProvider  email.Provider
	bus            events.Bus
	metrics        *metrics.Manager
	config         AuthConfig
	now            func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	loginTokenRepo repositories.LoginTokenRepository,
	tokens *auth.TokenManager,
	emailProvider email.Provider,
	bus events.Bus,
	m *metrics.Manager,
	config AuthConfig,
) *AuthServiceImpl {
	if config.SessionTTL <= 0 {
		config.SessionTTL = 7 * 24 * time.Hour
	}
	if config.MagicLinkTTL <= 0 {
		config.MagicLinkTTL = 15 * time.Minute
	}
	return &AuthServiceImpl{
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		loginTokenRepo: loginTokenRepo,
		tokens:         tokens,
		emailProvider:  emailProvider,
		bus:            bus,
		metrics:        m,
		config:         config,
		now:            time.Now,
	}
}

// SignUp создает пользователя и сразу открывает сессию
func (s *AuthServiceImpl) SignUp(ctx context.Context, db *gorm.DB, req *dto.SignUpRequest) (*dto.SessionResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user := &models.User{Email: req.Email, PasswordHash: hash}
	if err := s.userRepo.Create(tx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.ErrDatabase(err)
	}

	resp, err := s.openSession(tx, user)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	logger.CtxInfo(ctx, "User signed up", "user_id", user.ID)
	s.publish(ctx, events.New(events.SignedIn, user.ID, resp.SessionID))
	return resp, nil
}

func (s *AuthServiceImpl) SignIn(ctx context.Context, db *gorm.DB, req *dto.SignInRequest) (*dto.SessionResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.ErrDatabase(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	resp, err := s.openSession(db, user)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.SignedIn, user.ID, resp.SessionID))
	return resp, nil
}

// RequestMagicLink отправляет одноразовую ссылку. Пользователь создается при
// первом входе по ссылке, поэтому неизвестный email здесь не ошибка.
func (s *AuthServiceImpl) RequestMagicLink(ctx context.Context, db *gorm.DB, emailAddr string) error {
	token, err := auth.NewOpaqueToken()
	if err != nil {
		return apperrors.InternalError(err)
	}

	record := &models.LoginToken{
		TokenHash: auth.HashToken(token),
		Email:     emailAddr,
		ExpiresAt: s.now().Add(s.config.MagicLinkTTL),
	}
	if err := s.loginTokenRepo.Create(db, record); err != nil {
		return apperrors.ErrDatabase(err)
	}

	if err := s.emailProvider.SendMagicLink(ctx, emailAddr, s.magicLink(token)); err != nil {
		logger.CtxWithError(ctx, "Failed to send magic link", err)
		return apperrors.Wrap(err, apperrors.CodeExternalServiceError, "email", "Failed to send sign-in link", 502)
	}
	return nil
}

func (s *AuthServiceImpl) VerifyMagicLink(ctx context.Context, db *gorm.DB, token string) (*dto.SessionResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	record, err := s.loginTokenRepo.Consume(tx, auth.HashToken(token), s.now())
	if err != nil {
		if errors.Is(err, repositories.ErrLoginTokenInvalid) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.ErrDatabase(err)
	}

	user, err := s.userRepo.FindByEmail(tx, record.Email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		user = &models.User{Email: record.Email}
		err = s.userRepo.Create(tx, user)
	}
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	resp, err := s.openSession(tx, user)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	s.publish(ctx, events.New(events.SignedIn, user.ID, resp.SessionID))
	return resp, nil
}

// SignOut удаляет строку сессии. Повторный выход не ошибка.
func (s *AuthServiceImpl) SignOut(ctx context.Context, db *gorm.DB, sessionID string) error {
	session, err := s.sessionRepo.FindByID(db, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil
		}
		return apperrors.ErrDatabase(err)
	}

	deleted, err := s.sessionRepo.Delete(db, sessionID)
	if err != nil {
		return apperrors.ErrDatabase(err)
	}
	if deleted {
		s.publish(ctx, events.New(events.SignedOut, session.UserID, sessionID))
	}
	return nil
}

// GetSession требует валидную подпись и живую строку сессии
func (s *AuthServiceImpl) GetSession(db *gorm.DB, token string) (*models.Session, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken.WithError(err)
	}

	session, err := s.sessionRepo.FindByID(db, claims.SessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.ErrDatabase(err)
	}
	if session.UserID != claims.UserID() || session.Expired(s.now()) {
		return nil, apperrors.ErrInvalidToken
	}
	return session, nil
}

func (s *AuthServiceImpl) openSession(db *gorm.DB, user *models.User) (*dto.SessionResponse, error) {
	session := &models.Session{
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.config.SessionTTL).UTC(),
	}
	if err := s.sessionRepo.Create(db, session); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	token, err := s.tokens.Issue(user.ID, session.ID, session.ExpiresAt)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.SessionResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   session.ExpiresAt,
		SessionID:   session.ID,
		UserID:      user.ID,
		Email:       user.Email,
	}, nil
}

func (s *AuthServiceImpl) magicLink(token string) string {
	base := s.config.MagicLinkURL
	u, err := url.Parse(base)
	if err != nil || base == "" {
		return base + "?token=" + url.QueryEscape(token)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *AuthServiceImpl) publish(ctx context.Context, ev events.Event) {
	s.metrics.SessionEvent(string(ev.Type))
	if err := s.bus.Publish(ctx, ev); err != nil {
		logger.CtxWithError(ctx, "Failed to publish session event", err, "event", string(ev.Type))
	}
}
