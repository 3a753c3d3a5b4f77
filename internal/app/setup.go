package app

import (
	"context"
	"net/http"
	"sync/atomic"

	"kalasangam_backend/internal/config"
	"kalasangam_backend/internal/handlers"
	"kalasangam_backend/internal/logger"
	"kalasangam_backend/internal/routes"
	"kalasangam_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// switchHandler позволяет заменить роутер без перезапуска сервера.
// Конкретный тип хендлера меняется (HandlerFunc -> *gin.Engine), поэтому
// храним указатель на интерфейс, а не atomic.Value.
type switchHandler struct {
	current atomic.Pointer[http.Handler]
}

func newSwitchHandler() *switchHandler {
	h := &switchHandler{}
	h.Swap(http.NotFoundHandler())
	return h
}

func (h *switchHandler) Swap(next http.Handler) {
	h.current.Store(&next)
}

func (h *switchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	(*h.current.Load()).ServeHTTP(w, r)
}

// setupRouter - режим настройки: доступны только /api/v1/setup и health,
// остальное отвечает 503 SETUP_REQUIRED.
func (a *App) setupRouter() *gin.Engine {
	router := a.initializeGinRouter(nil)
	baseHandler := handlers.NewBaseHandler(a.validator)

	routes.RegisterSetupRoutes(router, a.newSetupHandler(baseHandler), handlers.NewHealthHandler(nil, a.metrics))
	router.NoRoute(func(c *gin.Context) {
		apperrors.HandleError(c, apperrors.ErrSetupRequired)
	})
	return router
}

func (a *App) newSetupHandler(base *handlers.BaseHandler) *handlers.SetupHandler {
	return handlers.NewSetupHandler(base, a.cfg.ConnectionFile, a.Configured, a.applySetup)
}

// applySetup сначала проверяет подключение и только потом сохраняет ключи,
// чтобы нерабочий URL не попал в файл.
func (a *App) applySetup(ctx context.Context, conn config.Connection) error {
	a.setupMu.Lock()
	defer a.setupMu.Unlock()

	a.mu.Lock()
	configured := a.db != nil
	a.mu.Unlock()
	if configured {
		return apperrors.ErrConflict(nil, "setup", "Backend connection is already configured")
	}

	if err := a.connect(ctx, conn); err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternalServiceError, "setup", "Could not connect to the backend", http.StatusBadGateway)
	}

	if err := config.SaveConnection(a.cfg.ConnectionFile, conn); err != nil {
		logger.Error("Connected, but failed to persist connection file", "path", a.cfg.ConnectionFile, "error", err)
		return apperrors.InternalError(err)
	}

	logger.Info("Backend connection configured", "connection_file", a.cfg.ConnectionFile)
	return nil
}
