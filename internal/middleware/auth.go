package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hrcell_backend/internal/auth"
	"hrcell_backend/internal/logger"
	"hrcell_backend/internal/models"
	"hrcell_backend/internal/services"
	"hrcell_backend/pkg/apperrors"
	"hrcell_backend/pkg/contextkeys"
)

// bearerToken достает токен из заголовка Authorization
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// resolveClaims проверяет bearer-токен и кладет claims в контекст.
// Субъект перечитывается из БД: отозванный аккаунт с живым токеном не проходит.
func resolveClaims(c *gin.Context, authService services.AuthService) (*auth.Claims, bool) {
	token := bearerToken(c)
	if token == "" {
		apperrors.HandleError(c, apperrors.ErrUnauthenticated)
		c.Abort()
		return nil, false
	}

	claims, _, err := authService.ResolveBearer(token)
	if err != nil {
		apperrors.HandleError(c, err)
		c.Abort()
		return nil, false
	}

	ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
	c.Request = c.Request.WithContext(ctx)
	c.Set(contextkeys.ClaimsContextKey.String(), claims)
	return claims, true
}

// RequireSuperAdmin пускает только super_admin
func RequireSuperAdmin(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := resolveClaims(c, authService)
		if !ok {
			return
		}
		if claims.Role != models.RoleSuperAdmin {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdminOrSuper пускает admin и super_admin
func RequireAdminOrSuper(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := resolveClaims(c, authService)
		if !ok {
			return
		}
		if claims.Role != models.RoleSuperAdmin && claims.Role != models.RoleAdmin {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ClaimsFromContext достает claims, положенные auth-guard'ом
func ClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(contextkeys.ClaimsContextKey.String())
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
