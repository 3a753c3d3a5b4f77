package handlers

import (
	"context"
	"errors"
	"net/http"

	"kalasangam_backend/internal/config"
	"kalasangam_backend/internal/logger"
	"kalasangam_backend/internal/services/dto"
	"kalasangam_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ApplyConnection сохраняет ключи, подключается и включает полный роутер.
type ApplyConnection func(ctx context.Context, conn config.Connection) error

// SetupHandler - экран настройки подключения к бэкенду (URL + anon key).
type SetupHandler struct {
	*BaseHandler
	connectionFile string
	configured     func() bool
	apply          ApplyConnection
}

func NewSetupHandler(base *BaseHandler, connectionFile string, configured func() bool, apply ApplyConnection) *SetupHandler {
	return &SetupHandler{
		BaseHandler:    base,
		connectionFile: connectionFile,
		configured:     configured,
		apply:          apply,
	}
}

func (h *SetupHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/setup", h.GetStatus)
	r.POST("/setup", h.Configure)
}

// @Summary Статус подключения
// @Tags setup
// @Produce json
// @Success 200 {object} dto.SetupStatusResponse
// @Router /api/v1/setup [get]
func (h *SetupHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SetupStatusResponse{
		Configured:     h.configured(),
		ConnectionFile: h.connectionFile,
	})
}

// Configure
// @Summary Сохранить URL и anon key
// @Description Доступно только пока подключение не настроено
// @Tags setup
// @Accept json
// @Produce json
// @Param request body dto.SetupRequest true "URL и ключ"
// @Success 200 {object} dto.SetupStatusResponse
// @Failure 409 {object} apperrors.ErrorResponse "Уже настроено"
// @Failure 502 {object} apperrors.ErrorResponse "Не удалось подключиться"
// @Router /api/v1/setup [post]
func (h *SetupHandler) Configure(c *gin.Context) {
	var req dto.SetupRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if h.configured() {
		apperrors.HandleError(c, apperrors.ErrConflict(errors.New("already configured"), "setup", "Backend connection is already configured"))
		return
	}

	conn := config.Connection{URL: req.URL, AnonKey: req.AnonKey}
	if err := h.apply(c.Request.Context(), conn); err != nil {
		logger.CtxWithError(c.Request.Context(), "Setup failed", err)
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SetupStatusResponse{Configured: true, ConnectionFile: h.connectionFile})
}
