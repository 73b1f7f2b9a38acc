package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// Ключи, по которым middleware кладет данные аутентификации в gin.Context
const (
	// ClaimsContextKey - распарсенные JWT-claims (bearer-маршруты)
	ClaimsContextKey = contextKey("claims")

	// SessionContextKey - резолвнутая сессия (session-маршруты)
	SessionContextKey = contextKey("session")
)

// String возвращает строковое представление ключа для c.Get/c.Set
func (k contextKey) String() string {
	return string(k)
}
