package middleware

import (
	"github.com/gin-gonic/gin"

	"hrcell_backend/internal/logger"
	"hrcell_backend/internal/models"
	"hrcell_backend/internal/services"
	"hrcell_backend/pkg/apperrors"
	"hrcell_backend/pkg/contextkeys"
)

// SessionCookieName - имя cookie опакового токена сессии
const SessionCookieName = "session_token"

// sessionToken достает токен сессии: сначала cookie, затем bearer-заголовок.
// Bearer-путь нужен клиентам, у которых кросс-сайтовые cookie отрезаны.
func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
		return token
	}
	return bearerToken(c)
}

// RequireSessionRole резолвит сессию и сверяет роль. Сессии держат только
// admin и employee: super_admin ходит по bearer-маршрутам и обхода здесь
// не имеет.
func RequireSessionRole(sessionService services.SessionService, roles ...models.Role) gin.HandlerFunc {
	roleSet := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		session, err := sessionService.Resolve(sessionToken(c))
		if err != nil {
			apperrors.HandleError(c, err)
			c.Abort()
			return
		}

		if len(roleSet) > 0 && !roleSet[session.Role] {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			c.Abort()
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), session.UserID)
		ctx = logger.WithCompanyID(ctx, session.CompanyID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(contextkeys.SessionContextKey.String(), session)
		c.Next()
	}
}

// SessionFromContext достает сессию, положенную session-guard'ом
func SessionFromContext(c *gin.Context) (*models.Session, bool) {
	v, ok := c.Get(contextkeys.SessionContextKey.String())
	if !ok {
		return nil, false
	}
	session, ok := v.(*models.Session)
	return session, ok
}
