package handlers

import (
	"net/http"
	"time"

	"kalasangam_backend/internal/services"
	"kalasangam_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CoachHandler struct {
	*BaseHandler
	coachService services.CoachService
}

func NewCoachHandler(base *BaseHandler, coachService services.CoachService) *CoachHandler {
	return &CoachHandler{
		BaseHandler:  base,
		coachService: coachService,
	}
}

func (h *CoachHandler) RegisterRoutes(r *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	coach := r.Group("/coach")
	coach.Use(requireAuth)
	{
		coach.POST("/analyze", h.Analyze)
		coach.POST("/report", h.DownloadReport)
	}
}

// Analyze
// @Summary AI-коуч (заглушка)
// @Description Видео обязательно, но не анализируется; ответ - шаблон с prompt
// @Tags coach
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param video formData file true "Видео"
// @Param prompt formData string false "Запрос"
// @Success 200 {object} dto.CoachAnalyzeResponse
// @Router /api/v1/coach/analyze [post]
func (h *CoachHandler) Analyze(c *gin.Context) {
	_, closeFn, ok := openFormFile(c, "video")
	if !ok {
		return
	}
	// содержимое видео не нужно
	closeFn()

	prompt := c.PostForm("prompt")
	result, err := h.coachService.Analyze(c.Request.Context(), prompt)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CoachAnalyzeResponse{Result: result, Prompt: prompt})
}

// DownloadReport отдает текст анализа как text/plain вложение.
// @Summary Скачать отчет
// @Tags coach
// @Security BearerAuth
// @Accept json
// @Produce plain
// @Param request body dto.CoachReportRequest true "Текст отчета"
// @Success 200 {string} string
// @Router /api/v1/coach/report [post]
func (h *CoachHandler) DownloadReport(c *gin.Context) {
	var req dto.CoachReportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	filename := h.coachService.ReportFilename(time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(req.Text))
}
