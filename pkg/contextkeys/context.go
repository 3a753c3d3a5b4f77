package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - это ключ, по которому мы будем хранить *gorm.DB в context
const DBContextKey = contextKey("db")

// Keys set on *gin.Context by the auth middleware.
const (
	UserIDKey    = "user_id"
	SessionIDKey = "session_id"
	TokenKey     = "access_token"
)
