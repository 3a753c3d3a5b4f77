package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"kalasangam_backend/internal/events"
	"kalasangam_backend/internal/imageprocessor"
	"kalasangam_backend/internal/logger"
	"kalasangam_backend/internal/metrics"
	"kalasangam_backend/internal/models"
	"kalasangam_backend/internal/repositories"
	"kalasangam_backend/internal/services/dto"
	"kalasangam_backend/internal/storage"
	"kalasangam_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
	"gorm.io/gorm"
)

// UploadInput - открытый файл из multipart-запроса
type UploadInput struct {
	Reader   io.Reader
	Size     int64
	Filename string
}

type MediaService interface {
	UploadSlot(ctx context.Context, db *gorm.DB, userID, slot string, in UploadInput) (*dto.MediaUploadResponse, error)
	UploadExperienceMedia(ctx context.Context, userID string, in UploadInput) (*dto.ExperienceMediaResponse, error)
}

type MediaConfig struct {
	MaxSize      int64
	AllowedTypes []string
}

type MediaServiceImpl struct {
	profileRepo   repositories.ProfileRepository
	portfolioRepo repositories.PortfolioRepository
	storage       storage.Storage
	compressor    *imageprocessor.Compressor
	bus           events.Bus
	metrics       *metrics.Manager
	config        MediaConfig
	now           func() time.Time
}

func NewMediaService(
	profileRepo repositories.ProfileRepository,
	portfolioRepo repositories.PortfolioRepository,
	store storage.Storage,
	compressor *imageprocessor.Compressor,
	bus events.Bus,
	m *metrics.Manager,
	config MediaConfig,
) *MediaServiceImpl {
	if config.MaxSize <= 0 {
		config.MaxSize = 50 * 1024 * 1024
	}
	return &MediaServiceImpl{
		profileRepo:   profileRepo,
		portfolioRepo: portfolioRepo,
		storage:       store,
		compressor:    compressor,
		bus:           bus,
		metrics:       m,
		config:        config,
		now:           time.Now,
	}
}

// UploadSlot сжимает изображение, кладет его в storage и сразу пишет URL в
// media_assets. При любой ошибке прежнее значение слота остается.
func (s *MediaServiceImpl) UploadSlot(ctx context.Context, db *gorm.DB, userID, slotName string, in UploadInput) (*dto.MediaUploadResponse, error) {
	slot, ok := models.ParseMediaSlot(slotName)
	if !ok {
		return nil, apperrors.ErrInvalidMediaSlot.WithDetails(map[string]string{"slot": slotName})
	}

	// слот пишется в портфолио, без профиля появилась бы строка-сирота
	exists, err := s.profileRepo.Exists(db, userID)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	if !exists {
		return nil, apperrors.ErrProfileNotFound
	}

	data, mtype, err := s.read(in)
	if err != nil {
		return nil, err
	}

	wantVideo := slot.IsVideo()
	if isVideo := strings.HasPrefix(mtype.String(), "video/"); isVideo != wantVideo {
		return nil, apperrors.ErrInvalidFileType.WithDetails(map[string]string{
			"slot": string(slot), "content_type": mtype.String(),
		})
	}

	result := imageprocessor.Result{
		Data:        data,
		ContentType: mtype.String(),
		Outcome:     imageprocessor.OutcomeSkipped,
	}
	if !wantVideo {
		result = s.compressor.Compress(ctx, data, mtype.String())
	}
	if result.Outcome == imageprocessor.OutcomeTimeout {
		logger.CtxWarn(ctx, "Image compression timed out, uploading original", "slot", string(slot))
	}

	ext := mtype.Extension()
	if result.Compressed {
		ext = ".jpg"
	}

	stamp := s.now().UnixMilli()
	key := fmt.Sprintf("%s/%s_%d%s", userID, slot, stamp, ext)

	url, err := s.put(ctx, key, result.Data, result.ContentType)
	if err != nil {
		return nil, err
	}
	url = withCacheBuster(url, stamp)

	assets, err := s.portfolioRepo.SetMediaSlot(db, userID, slot, url)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to persist media slot, removing object", err, "key", key)
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			logger.CtxWithError(ctx, "Failed to remove orphaned object", delErr, "key", key)
		}
		return nil, apperrors.ErrDatabase(err)
	}

	publishProfileUpdated(ctx, s.bus, userID)
	s.metrics.MediaUploaded(string(slot), string(result.Outcome), len(result.Data))
	logger.CtxInfo(ctx, "Media slot uploaded",
		"slot", string(slot),
		"outcome", string(result.Outcome),
		"original_size", len(data),
		"stored_size", len(result.Data),
	)

	return &dto.MediaUploadResponse{
		Slot:        slot,
		URL:         url,
		MediaAssets: assets,
		Compressed:  result.Compressed,
		Outcome:     string(result.Outcome),
		Size:        len(result.Data),
	}, nil
}

// UploadExperienceMedia хранит файл без сжатия; ссылка попадает в
// experience_json при следующем сохранении портфолио.
func (s *MediaServiceImpl) UploadExperienceMedia(ctx context.Context, userID string, in UploadInput) (*dto.ExperienceMediaResponse, error) {
	data, mtype, err := s.read(in)
	if err != nil {
		return nil, err
	}

	mediaType := MediaTypeOf(mtype.String())
	if mediaType == "" {
		return nil, apperrors.ErrInvalidFileType.WithDetails(map[string]string{"content_type": mtype.String()})
	}

	key := fmt.Sprintf("%s/exp_%d%s", userID, s.now().UnixMilli(), mtype.Extension())
	url, err := s.put(ctx, key, data, mtype.String())
	if err != nil {
		return nil, err
	}

	s.metrics.MediaUploaded("experience", string(imageprocessor.OutcomeSkipped), len(data))
	return &dto.ExperienceMediaResponse{MediaURL: url, MediaType: mediaType}, nil
}

func (s *MediaServiceImpl) read(in UploadInput) ([]byte, *mimetype.MIME, error) {
	if in.Reader == nil {
		return nil, nil, apperrors.NewBadRequestError("file is required")
	}
	if in.Size > s.config.MaxSize {
		return nil, nil, apperrors.ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(in.Reader, s.config.MaxSize+1))
	if err != nil {
		return nil, nil, apperrors.NewBadRequestError("failed to read file: " + err.Error())
	}
	if int64(len(data)) > s.config.MaxSize {
		return nil, nil, apperrors.ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, nil, apperrors.NewBadRequestError("file is empty")
	}

	mtype := mimetype.Detect(data)
	if !s.allowed(mtype) {
		return nil, nil, apperrors.ErrInvalidFileType.WithDetails(map[string]string{"content_type": mtype.String()})
	}
	return data, mtype, nil
}

func (s *MediaServiceImpl) allowed(mtype *mimetype.MIME) bool {
	if len(s.config.AllowedTypes) == 0 {
		return true
	}
	for m := mtype; m != nil; m = m.Parent() {
		if mimetype.EqualsAny(m.String(), s.config.AllowedTypes...) {
			return true
		}
	}
	return false
}

func (s *MediaServiceImpl) put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := s.storage.Save(ctx, key, bytes.NewReader(data), contentType); err != nil {
		if ctx.Err() != nil {
			return "", apperrors.NewBadRequestError("upload cancelled")
		}
		return "", apperrors.ErrStorage(err)
	}
	url, err := s.storage.GetURL(ctx, key)
	if err != nil {
		return "", apperrors.ErrStorage(err)
	}
	return url, nil
}

// MediaTypeOf maps a MIME type to the experience media kind.
func MediaTypeOf(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	case strings.HasPrefix(contentType, "audio/"):
		return "audio"
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	}
	return ""
}

func withCacheBuster(url string, stamp int64) string {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%st=%d", url, sep, stamp)
}
