package apperrors

import (
	"net/http"
)

// =========================================================================
// Фабричные ФУНКЦИИ
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrDatabase wraps a store failure that is not a known sentinel.
func ErrDatabase(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "database", "Database operation failed", http.StatusInternalServerError)
}

// ErrStorage wraps an object storage failure.
func ErrStorage(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "storage", "Media upload failed", http.StatusBadGateway)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ
// =========================================================================

// --- Auth ---

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - неверный или просроченный токен (session, magic link).
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrInvalidAPIKey = New(
	CodeInvalidAPIKey,
	"auth",
	"Missing or invalid apikey header",
	http.StatusUnauthorized,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)

var ErrRateLimited = New(
	CodeRateLimited,
	"auth",
	"Too many requests, try again later",
	http.StatusTooManyRequests,
)

// --- Profile ---

// ErrProfileNotFound - у пользователя еще нет профиля (онбординг не пройден).
var ErrProfileNotFound = New(
	CodeNotFound,
	"profile",
	"Profile not found",
	http.StatusNotFound,
)

var ErrProfileExists = New(
	CodeAlreadyExists,
	"profile",
	"Profile already exists",
	http.StatusConflict,
)

var ErrUsernameTaken = New(
	CodeAlreadyExists,
	"profile",
	"Username is already taken",
	http.StatusConflict,
)

// ErrRequestPending - такой же запрос уже выполняется.
var ErrRequestPending = New(
	CodeRequestPending,
	"request",
	"A previous request is still in progress",
	http.StatusConflict,
)

// --- Media ---

var ErrInvalidMediaSlot = New(
	CodeInvalidSlot,
	"media",
	"Unknown media slot",
	http.StatusBadRequest,
)

var ErrFileTooLarge = New(
	CodeFileTooLarge,
	"media",
	"File is too large",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeInvalidFileType,
	"media",
	"File type is not allowed",
	http.StatusBadRequest,
)

// --- Projects ---

var ErrProjectNotFound = New(
	CodeNotFound,
	"project",
	"Project not found",
	http.StatusNotFound,
)

var ErrProjectClosed = New(
	CodeInvalidStatus,
	"project",
	"Project is closed",
	http.StatusConflict,
)

var ErrProjectHasNoRoles = New(
	CodeInvalidOperation,
	"project",
	"Project has no roles to apply for",
	http.StatusBadRequest,
)

var ErrNotProjectOwner = New(
	CodeForbidden,
	"project",
	"Only the project creator can do this",
	http.StatusForbidden,
)

// ErrDemoReadOnly - демонстрационные проекты нельзя изменять.
var ErrDemoReadOnly = New(
	CodeInvalidOperation,
	"project",
	"Demo projects are read-only",
	http.StatusBadRequest,
)

// --- Setup ---

var ErrSetupRequired = New(
	CodeSetupRequired,
	"setup",
	"Backend connection is not configured",
	http.StatusServiceUnavailable,
)
