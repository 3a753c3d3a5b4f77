package middleware

import (
	"crypto/subtle"
	"strings"

	"kalasangam_backend/internal/logger"
	"kalasangam_backend/internal/services"
	"kalasangam_backend/pkg/apperrors"
	"kalasangam_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// APIKeyHeader - заголовок с анонимным ключом клиента.
const APIKeyHeader = "apikey"

// APIKeyMiddleware пропускает только запросы с настроенным анонимным ключом.
func APIKeyMiddleware(anonKey string) gin.HandlerFunc {
	expected := []byte(anonKey)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader(APIKeyHeader))
		if len(expected) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
			logger.CtxWarn(c.Request.Context(), "Rejected request without valid apikey",
				"path", c.Request.URL.Path,
				"ip", c.ClientIP(),
			)
			apperrors.AbortWithError(c, apperrors.ErrInvalidAPIKey)
			return
		}
		c.Next()
	}
}

// BearerToken достает токен из заголовка Authorization.
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// AuthMiddleware - проверка токена сессии (подпись + живая строка sessions).
func AuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			apperrors.AbortWithError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		db := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
		session, err := authService.GetSession(db, token)
		if err != nil {
			apperrors.AbortWithError(c, err)
			return
		}

		c.Set(contextkeys.UserIDKey, session.UserID)
		c.Set(contextkeys.SessionIDKey, session.ID)
		c.Set(contextkeys.TokenKey, token)

		ctx := logger.WithUserID(c.Request.Context(), session.UserID)
		ctx = logger.WithSessionID(ctx, session.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
