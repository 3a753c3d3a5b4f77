package handlers

import (
	"net/http"

	"kalasangam_backend/internal/services"
	"kalasangam_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes - limit ограничивает частоту попыток входа, requireAuth проверяет сессию.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, requireAuth, limit gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		public := auth.Group("")
		public.Use(limit)
		{
			public.POST("/signup", h.SignUp)
			public.POST("/signin", h.SignIn)
			public.POST("/magic-link", h.RequestMagicLink)
			public.POST("/magic-link/verify", h.VerifyMagicLink)
		}

		auth.POST("/signout", requireAuth, h.SignOut)
	}
}

// SignUp
// @Summary Регистрация по email и паролю
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignUpRequest true "Email и пароль"
// @Success 201 {object} dto.SessionResponse
// @Failure 409 {object} apperrors.ErrorResponse "Email уже занят"
// @Router /api/v1/auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	session, err := h.authService.SignUp(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// SignIn
// @Summary Вход по паролю
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignInRequest true "Email и пароль"
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /api/v1/auth/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	session, err := h.authService.SignIn(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// RequestMagicLink всегда отвечает 202, чтобы не раскрывать наличие email.
// @Summary Отправить ссылку для входа
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.MagicLinkRequest true "Email"
// @Success 202 {object} dto.MessageResponse
// @Router /api/v1/auth/magic-link [post]
func (h *AuthHandler) RequestMagicLink(c *gin.Context) {
	var req dto.MagicLinkRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.RequestMagicLink(c.Request.Context(), h.GetDB(c), req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.MessageResponse{Message: "Check your email for the login link"})
}

// @Summary Войти по ссылке
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyMagicLinkRequest true "Токен из письма"
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /api/v1/auth/magic-link/verify [post]
func (h *AuthHandler) VerifyMagicLink(c *gin.Context) {
	var req dto.VerifyMagicLinkRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	session, err := h.authService.VerifyMagicLink(c.Request.Context(), h.GetDB(c), req.Token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// SignOut только отзывает сессию; локальное состояние сбрасывают подписчики SIGNED_OUT.
// @Summary Выход
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Router /api/v1/auth/signout [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	sessionID, ok := h.GetSessionID(c)
	if !ok {
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), h.GetDB(c), sessionID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
