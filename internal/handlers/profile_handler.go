package handlers

import (
	"mime/multipart"
	"net/http"

	"kalasangam_backend/internal/services"
	"kalasangam_backend/internal/services/dto"
	"kalasangam_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// multipart сверх лимита уходит во временные файлы
const multipartMemory = 8 << 20

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
	mediaService   services.MediaService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService, mediaService services.MediaService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
		mediaService:   mediaService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	// Public routes
	public := r.Group("/profiles")
	{
		public.GET("/by-username/:username", h.GetByUsername)
	}

	// Protected routes
	profiles := r.Group("/profiles")
	profiles.Use(requireAuth)
	{
		profiles.POST("", h.Onboard)
		profiles.GET("/me", h.GetMyProfile)
		profiles.PUT("/me", h.SaveMyProfile)
		profiles.POST("/me/media/:slot", h.UploadMedia)
		profiles.POST("/me/experience-media", h.UploadExperienceMedia)
	}
}

// Onboard
// @Summary Онбординг: создать профиль
// @Description Создает профиль с пустыми specs и portfolio
// @Tags profiles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.OnboardRequest true "Имя, username, тип"
// @Success 201 {object} dto.ProfileBundle
// @Failure 409 {object} apperrors.ErrorResponse "Профиль уже есть или username занят"
// @Router /api/v1/profiles [post]
func (h *ProfileHandler) Onboard(c *gin.Context) {
	var req dto.OnboardRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bundle, err := h.profileService.Onboard(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bundle)
}

// @Summary Мой профиль
// @Tags profiles
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ProfileBundle
// @Failure 404 {object} apperrors.ErrorResponse "Онбординг не пройден"
// @Router /api/v1/profiles/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bundle, err := h.profileService.Load(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bundle)
}

// GetByUsername - публичная ссылка на профиль.
// @Summary Профиль по username
// @Tags profiles
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.ProfileBundle
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/profiles/by-username/{username} [get]
func (h *ProfileHandler) GetByUsername(c *gin.Context) {
	bundle, err := h.profileService.LoadByUsername(h.GetDB(c), c.Param("username"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bundle)
}

// SaveMyProfile
// @Summary Сохранить specs и portfolio
// @Description Два независимых upsert: сначала specs, потом portfolio
// @Tags profiles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SaveProfileRequest true "profile_specs и profile_portfolio"
// @Success 200 {object} dto.ProfileBundle
// @Failure 409 {object} apperrors.ErrorResponse "Предыдущее сохранение еще выполняется"
// @Router /api/v1/profiles/me [put]
func (h *ProfileHandler) SaveMyProfile(c *gin.Context) {
	var req dto.SaveProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	specs, portfolio, err := req.Decode()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError(err.Error()))
		return
	}
	if !h.Validate(c, specs) || !h.Validate(c, portfolio) {
		return
	}

	bundle, err := h.profileService.Save(c.Request.Context(), h.GetDB(c), userID, specs, portfolio)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bundle)
}

// UploadMedia
// @Summary Загрузить медиа в слот
// @Description headshot, midshot, longshot или intro_video; URL сразу пишется в media_assets
// @Tags media
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param slot path string true "Слот"
// @Param file formData file true "Файл"
// @Success 200 {object} dto.MediaUploadResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 413 {object} apperrors.ErrorResponse
// @Router /api/v1/profiles/me/media/{slot} [post]
func (h *ProfileHandler) UploadMedia(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	in, closeFn, ok := openFormFile(c, "file")
	if !ok {
		return
	}
	defer closeFn()

	resp, err := h.mediaService.UploadSlot(c.Request.Context(), h.GetDB(c), userID, c.Param("slot"), in)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UploadExperienceMedia - файл для записи опыта; прикрепляется при сохранении portfolio.
func (h *ProfileHandler) UploadExperienceMedia(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	in, closeFn, ok := openFormFile(c, "file")
	if !ok {
		return
	}
	defer closeFn()

	resp, err := h.mediaService.UploadExperienceMedia(c.Request.Context(), userID, in)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// openFormFile открывает файл из multipart формы; вызывающий обязан вызвать close.
func openFormFile(c *gin.Context, field string) (services.UploadInput, func(), bool) {
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("failed to parse form: "+err.Error()))
		return services.UploadInput{}, nil, false
	}

	fileHeader, err := c.FormFile(field)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("file is required in field '"+field+"'"))
		return services.UploadInput{}, nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return services.UploadInput{}, nil, false
	}

	return uploadInput(file, fileHeader), func() { _ = file.Close() }, true
}

func uploadInput(file multipart.File, header *multipart.FileHeader) services.UploadInput {
	return services.UploadInput{
		Reader:   file,
		Size:     header.Size,
		Filename: header.Filename,
	}
}
