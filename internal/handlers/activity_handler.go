package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hrcell_backend/internal/middleware"
	"hrcell_backend/internal/models"
	"hrcell_backend/internal/services"
	"hrcell_backend/pkg/apperrors"
)

type ActivityHandler struct {
	*BaseHandler
	activityService services.ActivityService
	authService     services.AuthService
	sessionService  services.SessionService
}

func NewActivityHandler(base *BaseHandler, activityService services.ActivityService, authService services.AuthService, sessionService services.SessionService) *ActivityHandler {
	return &ActivityHandler{
		BaseHandler:     base,
		activityService: activityService,
		authService:     authService,
		sessionService:  sessionService,
	}
}

// RegisterRoutes регистрирует маршруты журнала действий
func (h *ActivityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	global := rg.Group("/superadmin/activity")
	global.Use(middleware.RequireSuperAdmin(h.authService))
	{
		global.GET("", h.ListGlobal)
	}

	scoped := rg.Group("/activity")
	scoped.Use(middleware.RequireSessionRole(h.sessionService, models.RoleAdmin))
	{
		scoped.GET("", h.ListByCompany)
	}
}

func (h *ActivityHandler) ListGlobal(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	resp, err := h.activityService.ListGlobal(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ActivityHandler) ListByCompany(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		h.HandleServiceError(c, apperrors.ErrUnauthenticated)
		return
	}

	page, pageSize := ParsePagination(c)
	resp, err := h.activityService.ListByCompany(session.CompanyID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
