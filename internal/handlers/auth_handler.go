package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hrcell_backend/internal/middleware"
	"hrcell_backend/internal/models"
	"hrcell_backend/internal/services"
	"hrcell_backend/internal/services/dto"
	"hrcell_backend/pkg/apperrors"
)

type AuthHandler struct {
	*BaseHandler
	authService        services.AuthService
	unifiedAuthService services.UnifiedAuthService
	sessionService     services.SessionService
	cookieDomain       string
}

func NewAuthHandler(
	base *BaseHandler,
	authService services.AuthService,
	unifiedAuthService services.UnifiedAuthService,
	sessionService services.SessionService,
	cookieDomain string,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler:        base,
		authService:        authService,
		unifiedAuthService: unifiedAuthService,
		sessionService:     sessionService,
		cookieDomain:       cookieDomain,
	}
}

// RegisterRoutes регистрирует маршруты аутентификации
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/unified-login", h.UnifiedLogin)
		auth.POST("/select-company", h.SelectCompany)
		auth.GET("/me-session", h.GetSession)
		auth.POST("/logout", h.Logout)

		auth.POST("/superadmin/login", h.SuperAdminLogin)
	}

	tokenMe := rg.Group("/auth/me")
	tokenMe.Use(middleware.RequireAdminOrSuper(h.authService))
	{
		tokenMe.GET("", h.Me)
	}

	superadmin := rg.Group("/superadmin")
	superadmin.Use(middleware.RequireSuperAdmin(h.authService))
	{
		superadmin.POST("/2fa/setup", h.TwoFactorSetup)
		superadmin.POST("/2fa/enable", h.TwoFactorEnable)
		superadmin.POST("/2fa/disable", h.TwoFactorDisable)
		superadmin.POST("/change-password", h.SuperAdminChangePassword)
	}

	me := rg.Group("/me")
	me.Use(middleware.RequireSessionRole(h.sessionService))
	{
		me.POST("/change-password", h.SessionChangePassword)
	}
}

func (h *AuthHandler) UnifiedLogin(c *gin.Context) {
	var req dto.UnifiedLoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.unifiedAuthService.UnifiedLogin(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// setSessionCookie ставит cookie сессии. SameSite=None для кросс-сайтовых
// фронтов, поэтому Secure обязателен.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *AuthHandler) SelectCompany(c *gin.Context) {
	var req dto.SelectCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	session, company, err := h.unifiedAuthService.SelectCompany(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, session.Token, int(services.SessionTTL.Seconds()))
	c.JSON(http.StatusOK, sessionResponse(session, company.Slug))
}

func (h *AuthHandler) GetSession(c *gin.Context) {
	token := sessionTokenFromRequest(c)
	session, err := h.sessionService.Resolve(token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session, ""))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := sessionTokenFromRequest(c)
	if err := h.sessionService.Revoke(token); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) SuperAdminLogin(c *gin.Context) {
	var req dto.SuperAdminLoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.SuperAdminLogin(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me - принципал текущего bearer-токена
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		h.HandleServiceError(c, apperrors.ErrUnauthenticated)
		return
	}

	kind := models.KindSuperAdmin
	if claims.Role != models.RoleSuperAdmin {
		var found bool
		kind, found = models.KindForRole(claims.Role)
		if !found {
			h.HandleServiceError(c, apperrors.ErrInvalidToken)
			return
		}
	}

	resp, err := h.authService.Profile(kind, claims.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) TwoFactorSetup(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		h.HandleServiceError(c, apperrors.ErrUnauthenticated)
		return
	}

	resp, err := h.authService.TwoFactorSetup(claims.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) TwoFactorEnable(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		h.HandleServiceError(c, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.TwoFactorConfirmRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.TwoFactorEnable(claims.UserID, req.Code); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Two-factor authentication enabled"})
}

func (h *AuthHandler) TwoFactorDisable(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		h.HandleServiceError(c, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.TwoFactorConfirmRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.TwoFactorDisable(claims.UserID, req.Code); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Two-factor authentication disabled"})
}

func (h *AuthHandler) SuperAdminChangePassword(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		h.HandleServiceError(c, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(models.KindSuperAdmin, claims.UserID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

func (h *AuthHandler) SessionChangePassword(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		h.HandleServiceError(c, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	kind, ok := models.KindForRole(session.Role)
	if !ok {
		h.HandleServiceError(c, apperrors.ErrInvalidSession)
		return
	}

	if err := h.authService.ChangePassword(kind, session.UserID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

// sessionTokenFromRequest повторяет порядок session-guard'а: cookie, затем bearer
func sessionTokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}

func sessionResponse(s *models.Session, companySlug string) *dto.SessionResponse {
	return &dto.SessionResponse{
		SessionToken: s.Token,
		UserID:       s.UserID,
		Email:        s.Email,
		Name:         s.Name,
		Picture:      s.Picture,
		CompanyID:    s.CompanyID,
		CompanyName:  s.CompanyName,
		CompanySlug:  companySlug,
		Role:         string(s.Role),
		ExpiresAt:    s.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
