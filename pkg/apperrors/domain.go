package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для общих ошибок бизнес-логики и домена.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (Используются для оборачивания ошибок, напр. из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
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

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ (Для частых, статичных ошибок)
// =========================================================================

// --- Аутентификация ---

// ErrInvalidCredentials - единый ответ для unified-login: не раскрываем,
// нашелся email или нет (анти-перечисление учеток).
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials or no active access",
	http.StatusUnauthorized,
)

// ErrInvalidToken - токен не распарсился, просрочен или subject не найден
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrUnauthenticated - нет ни cookie, ни bearer-заголовка
var ErrUnauthenticated = New(
	CodeUnauthorized,
	"auth",
	"Authentication required",
	http.StatusUnauthorized,
)

// ErrInvalidSession - токен сессии не найден в хранилище
var ErrInvalidSession = New(
	CodeInvalidSession,
	"auth",
	"Invalid session",
	http.StatusUnauthorized,
)

// ErrSessionExpired - сессия найдена, но срок истёк (строка удаляется при чтении)
var ErrSessionExpired = New(
	CodeSessionExpired,
	"auth",
	"Session expired, please log in again",
	http.StatusUnauthorized,
)

// ErrTwoFactorInvalid - неверный TOTP-код
var ErrTwoFactorInvalid = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid two-factor code",
	http.StatusUnauthorized,
)

// --- Авторизация ---

// ErrInsufficientPermissions - роль не допущена к операции
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrTenantMismatch - попытка доступа к ресурсу чужого тенанта.
// Всегда 403, никогда не молчаливый пустой ответ.
var ErrTenantMismatch = New(
	CodeForbidden,
	"tenant",
	"Access to this company's resources is denied",
	http.StatusForbidden,
)

// --- Лицензирование ---

// ErrLicenseSuspended - компания отключена супер-админом
var ErrLicenseSuspended = New(
	CodeLicenseSuspended,
	"license",
	"Company access is suspended, contact administrator",
	http.StatusForbidden,
)

// ErrLicenseExpired - лицензионное окно закончилось
var ErrLicenseExpired = New(
	CodeLicenseExpired,
	"license",
	"Company license has expired, please renew subscription",
	http.StatusForbidden,
)

// --- Пользователи ---

// ErrWeakPassword - пароль не прошел проверку сложности
var ErrWeakPassword = New(
	CodeValidationFailed,
	"users",
	"Password must be at least 8 characters",
	http.StatusBadRequest,
)

// ErrLastSuperAdmin - нельзя удалить последнего супер-админа
var ErrLastSuperAdmin = New(
	CodeInvalidOperation,
	"users",
	"Cannot remove the last super admin",
	http.StatusBadRequest,
)
