package handlers

import (
	"io"
	"net/http"
	"time"

	"kalasangam_backend/internal/events"
	"kalasangam_backend/internal/logger"
	"kalasangam_backend/internal/middleware"
	"kalasangam_backend/internal/services"
	"kalasangam_backend/internal/services/dto"
	"kalasangam_backend/pkg/contextkeys"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

const sseKeepAlive = 25 * time.Second

// SessionHandler отдает состояние gate, выбранный экран и поток событий сессии.
type SessionHandler struct {
	*BaseHandler
	gate  *services.SessionGate
	shell *services.ShellService
	bus   events.Bus
}

func NewSessionHandler(base *BaseHandler, gate *services.SessionGate, shell *services.ShellService, bus events.Bus) *SessionHandler {
	return &SessionHandler{
		BaseHandler: base,
		gate:        gate,
		shell:       shell,
		bus:         bus,
	}
}

func (h *SessionHandler) RegisterRoutes(r *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	// без токена это просто состояние unauthenticated
	r.GET("/session", h.GetSession)
	r.GET("/session/events", requireAuth, h.Events)

	shell := r.Group("/shell")
	shell.Use(requireAuth)
	{
		shell.GET("/view", h.GetView)
		shell.PUT("/view", h.SetView)
	}
}

// GetSession
// @Summary Состояние сессии
// @Description unauthenticated, onboarding или ready (с профилем)
// @Tags session
// @Produce json
// @Success 200 {object} dto.SessionStateResponse
// @Router /api/v1/session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	result, err := h.gate.Resolve(c.Request.Context(), h.GetDB(c), middleware.BearerToken(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result.Response())
}

// Events - SSE поток уведомлений о смене сессии текущего пользователя.
// Подписка снимается, когда клиент отключается.
func (h *SessionHandler) Events(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	sessionID := c.GetString(contextkeys.SessionIDKey)
	ctx := c.Request.Context()

	ch, unsubscribe := h.bus.Subscribe()
	defer unsubscribe()

	ticker := time.NewTicker(sseKeepAlive)
	defer ticker.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	logger.CtxDebug(ctx, "Session event stream opened")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			c.Render(-1, sse.Event{Event: "ping", Data: time.Now().UTC().Format(time.RFC3339)})
			return true
		case ev, open := <-ch:
			if !open {
				return false
			}
			if ev.UserID != userID {
				return true
			}
			c.Render(-1, sse.Event{Event: string(ev.Type), Data: ev})
			// своя сессия закрыта - поток больше не нужен
			return !(ev.Type == events.SignedOut && ev.SessionID == sessionID)
		}
	})
	logger.CtxDebug(ctx, "Session event stream closed")
}

// @Summary Текущий экран
// @Tags shell
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ShellViewResponse
// @Router /api/v1/shell/view [get]
func (h *SessionHandler) GetView(c *gin.Context) {
	result, ok := h.resolve(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.shell.Current(result.SessionID, result.State))
}

// @Summary Выбрать экран
// @Tags shell
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SetViewRequest true "Экран"
// @Success 200 {object} dto.ShellViewResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/v1/shell/view [put]
func (h *SessionHandler) SetView(c *gin.Context) {
	var req dto.SetViewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, ok := h.resolve(c)
	if !ok {
		return
	}

	view, err := h.shell.Set(result.SessionID, result.State, req.View)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) resolve(c *gin.Context) (*services.GateResult, bool) {
	result, err := h.gate.Resolve(c.Request.Context(), h.GetDB(c), c.GetString(contextkeys.TokenKey))
	if err != nil {
		h.HandleServiceError(c, err)
		return nil, false
	}
	return result, true
}
