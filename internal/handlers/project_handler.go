package handlers

import (
	"net/http"

	"kalasangam_backend/internal/services"
	"kalasangam_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ============================================
// PROJECT HANDLER
// ============================================

type ProjectHandler struct {
	*BaseHandler
	projectService     services.ProjectService
	applicationService services.ApplicationService
}

func NewProjectHandler(base *BaseHandler, projectService services.ProjectService, applicationService services.ApplicationService) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler:        base,
		projectService:     projectService,
		applicationService: applicationService,
	}
}

// ============================================
// ROUTES
// ============================================

func (h *ProjectHandler) RegisterRoutes(r *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	projects := r.Group("/projects")
	projects.Use(requireAuth)
	{
		projects.GET("", h.ListProjects)
		projects.POST("", h.CreateProject)
		projects.GET("/:id", h.GetProject)
		projects.PUT("/:id", h.UpdateProject)
		projects.POST("/:id/archive", h.ArchiveProject)
		projects.GET("/:id/roles", h.GetRoles)

		// Отклики
		projects.POST("/:id/applications", h.Apply)
		projects.GET("/:id/applications", h.GetProjectApplications)
	}

	applications := r.Group("/applications")
	applications.Use(requireAuth)
	{
		applications.GET("/me", h.GetMyApplications)
	}
}

// ============================================
// PROJECTS
// ============================================

// ListProjects
// @Summary Лента проектов
// @Description scope=all: чужие открытые проекты и демо; scope=mine: свои
// @Tags projects
// @Security BearerAuth
// @Produce json
// @Param scope query string false "all | mine"
// @Success 200 {array} dto.ProjectView
// @Router /api/v1/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var query dto.ListProjectsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	scope := query.Scope
	if scope == "" {
		scope = services.ScopeAll
	}

	projects, err := h.projectService.List(h.GetDB(c), userID, scope)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectService.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// CreateProject
// @Summary Создать проект с ролью
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SaveProjectRequest true "Проект"
// @Success 201 {object} dto.ProjectView
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/v1/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	h.saveProject(c, "", http.StatusCreated)
}

// UpdateProject
// @Summary Редактировать проект
// @Description Только создатель; демо-проекты только для чтения
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "ID проекта"
// @Param request body dto.SaveProjectRequest true "Проект"
// @Success 200 {object} dto.ProjectView
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/v1/projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	h.saveProject(c, c.Param("id"), http.StatusOK)
}

func (h *ProjectHandler) saveProject(c *gin.Context, projectID string, status int) {
	var req dto.SaveProjectRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	project, err := h.projectService.Save(c.Request.Context(), h.GetDB(c), userID, projectID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(status, project)
}

// ArchiveProject
// @Summary Архивировать проект
// @Description status -> closed, строка не удаляется
// @Tags projects
// @Security BearerAuth
// @Param id path string true "ID проекта"
// @Success 200 {object} dto.MessageResponse
// @Router /api/v1/projects/{id}/archive [post]
func (h *ProjectHandler) ArchiveProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.Archive(c.Request.Context(), h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Project archived"})
}

func (h *ProjectHandler) GetRoles(c *gin.Context) {
	roles, err := h.projectService.Roles(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, roles)
}

// ============================================
// APPLICATIONS
// ============================================

// Apply
// @Summary Откликнуться на проект
// @Description Отклик на первую роль проекта. Повторный отклик разрешен; параллельный дубль - 409
// @Tags applications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "ID проекта"
// @Param request body dto.ApplyRequest true "Сопроводительное письмо"
// @Success 201 {object} dto.ApplicationView
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /api/v1/projects/{id}/applications [post]
func (h *ProjectHandler) Apply(c *gin.Context) {
	var req dto.ApplyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	sessionID, ok := h.GetSessionID(c)
	if !ok {
		return
	}

	application, err := h.applicationService.Apply(c.Request.Context(), h.GetDB(c), userID, sessionID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, application)
}

// GetProjectApplications - список откликов для создателя проекта.
func (h *ProjectHandler) GetProjectApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applications, err := h.projectService.ApplicationsForOwner(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, applications)
}

// @Summary Мои отклики
// @Description Включая локальные отклики на демо-проекты (is_local)
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.ApplicationView
// @Router /api/v1/applications/me [get]
func (h *ProjectHandler) GetMyApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	sessionID, ok := h.GetSessionID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.ListMine(h.GetDB(c), userID, sessionID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, applications)
}
