package workers

import (
	"context"
	"time"

	"kalasangam_backend/internal/logger"
	"kalasangam_backend/internal/repositories"

	"gorm.io/gorm"
)

// SessionWorker удаляет просроченные сессии и неиспользованные magic-link токены.
type SessionWorker struct {
	db       *gorm.DB
	sessions repositories.SessionRepository
	tokens   repositories.LoginTokenRepository
	interval time.Duration
	now      func() time.Time
}

func NewSessionWorker(db *gorm.DB, sessions repositories.SessionRepository, tokens repositories.LoginTokenRepository, interval time.Duration) *SessionWorker {
	return &SessionWorker{
		db:       db,
		sessions: sessions,
		tokens:   tokens,
		interval: interval,
		now:      time.Now,
	}
}

// Start запускает очистку в фоне до отмены ctx. Нулевой интервал выключает воркер.
func (w *SessionWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		logger.Info("Session cleanup worker disabled")
		return
	}
	go w.run(ctx)
}

func (w *SessionWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session cleanup worker stopped")
			return
		case <-ticker.C:
			if _, _, err := w.Sweep(ctx); err != nil {
				logger.Error("Error cleaning up expired sessions", "error", err)
			}
		}
	}
}

// Sweep - один проход очистки
func (w *SessionWorker) Sweep(ctx context.Context) (sessions, tokens int64, err error) {
	now := w.now().UTC()
	db := w.db.WithContext(ctx)

	sessions, err = w.sessions.DeleteExpired(db, now)
	if err != nil {
		return 0, 0, err
	}
	tokens, err = w.tokens.DeleteExpired(db, now)
	if err != nil {
		return sessions, 0, err
	}

	if sessions > 0 || tokens > 0 {
		logger.Info("Expired sessions cleaned up", "sessions", sessions, "login_tokens", tokens)
	}
	return sessions, tokens, nil
}
