package handlers

import (
	"net/http"

	"kalasangam_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// SkillingHandler - статический каталог, авторизация не нужна.
type SkillingHandler struct {
	*BaseHandler
	skillingService services.SkillingService
}

func NewSkillingHandler(base *BaseHandler, skillingService services.SkillingService) *SkillingHandler {
	return &SkillingHandler{
		BaseHandler:     base,
		skillingService: skillingService,
	}
}

func (h *SkillingHandler) RegisterRoutes(r *gin.RouterGroup) {
	skilling := r.Group("/skilling")
	{
		skilling.GET("", h.GetCatalogue)
		skilling.GET("/:tab", h.GetTab)
	}
}

// @Summary Каталог обучения
// @Tags skilling
// @Produce json
// @Success 200 {object} dto.SkillingCatalogue
// @Router /api/v1/skilling [get]
func (h *SkillingHandler) GetCatalogue(c *gin.Context) {
	c.JSON(http.StatusOK, h.skillingService.Catalogue())
}

// @Summary Одна вкладка каталога
// @Tags skilling
// @Produce json
// @Param tab path string true "academy | library | flashcards"
// @Success 200 {array} object
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/skilling/{tab} [get]
func (h *SkillingHandler) GetTab(c *gin.Context) {
	items, err := h.skillingService.Tab(c.Param("tab"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}
