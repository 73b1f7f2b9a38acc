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

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
	sessionService     services.SessionService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService, sessionService services.SessionService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
		sessionService:     sessionService,
	}
}

// RegisterRoutes регистрирует тенантские маршруты откликов
func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	view := rg.Group("/applications")
	view.Use(middleware.RequireSessionRole(h.sessionService, models.RoleAdmin, models.RoleEmployee))
	{
		view.GET("", h.List)
		view.GET("/:id", h.Get)
		view.GET("/export/xlsx", h.ExportXLSX)
		view.GET("/export/resumes", h.ExportResumesZIP)
	}

	manage := rg.Group("/applications")
	manage.Use(middleware.RequireSessionRole(h.sessionService, models.RoleAdmin))
	{
		manage.PUT("/:id", h.Update)
		manage.DELETE("/:id", h.Delete)
	}
}

func (h *ApplicationHandler) tenant(c *gin.Context) (*models.Session, bool) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		h.HandleServiceError(c, apperrors.ErrUnauthenticated)
		return nil, false
	}
	return session, true
}

func (h *ApplicationHandler) List(c *gin.Context) {
	session, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter dto.ApplicationListFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	resp, err := h.applicationService.List(session.CompanyID, filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	session, ok := h.tenant(c)
	if !ok {
		return
	}

	resp, err := h.applicationService.GetByID(session.CompanyID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) Update(c *gin.Context) {
	session, ok := h.tenant(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.applicationService.Update(session.CompanyID, c.Param("id"), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	session, ok := h.tenant(c)
	if !ok {
		return
	}

	if err := h.applicationService.Delete(session.CompanyID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application deleted"})
}

func (h *ApplicationHandler) ExportXLSX(c *gin.Context) {
	session, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter dto.ApplicationListFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	data, err := h.applicationService.ExportXLSX(session.CompanyID, filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	filename := "applications_" + time.Now().UTC().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *ApplicationHandler) ExportResumesZIP(c *gin.Context) {
	session, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter dto.ApplicationListFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	data, err := h.applicationService.ExportResumesZIP(session.CompanyID, filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	filename := "resumes_" + time.Now().UTC().Format("2006-01-02") + ".zip"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/zip", data)
}
