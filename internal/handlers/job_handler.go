package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hrcell_backend/internal/middleware"
	"hrcell_backend/internal/models"
	"hrcell_backend/internal/services"
	"hrcell_backend/internal/services/dto"
	"hrcell_backend/pkg/apperrors"
)

type JobHandler struct {
	*BaseHandler
	jobService     services.JobService
	sessionService services.SessionService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService, sessionService services.SessionService) *JobHandler {
	return &JobHandler{
		BaseHandler:    base,
		jobService:     jobService,
		sessionService: sessionService,
	}
}

// RegisterRoutes регистрирует тенантские маршруты вакансий.
// Тенант всегда берется из сессии, не из запроса.
func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	view := rg.Group("/jobs")
	view.Use(middleware.RequireSessionRole(h.sessionService, models.RoleAdmin, models.RoleEmployee))
	{
		view.GET("", h.List)
		view.GET("/:id", h.Get)
	}

	manage := rg.Group("/jobs")
	manage.Use(middleware.RequireSessionRole(h.sessionService, models.RoleAdmin))
	{
		manage.POST("", h.Create)
		manage.PUT("/:id", h.Update)
		manage.DELETE("/:id", h.Delete)
	}
}

func (h *JobHandler) tenant(c *gin.Context) (*models.Session, bool) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		h.HandleServiceError(c, apperrors.ErrUnauthenticated)
		return nil, false
	}
	return session, true
}

func (h *JobHandler) Create(c *gin.Context) {
	session, ok := h.tenant(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.jobService.Create(session.CompanyID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *JobHandler) List(c *gin.Context) {
	session, ok := h.tenant(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	resp, err := h.jobService.List(session.CompanyID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": resp})
}

func (h *JobHandler) Get(c *gin.Context) {
	session, ok := h.tenant(c)
	if !ok {
		return
	}

	resp, err := h.jobService.GetByID(session.CompanyID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) Update(c *gin.Context) {
	session, ok := h.tenant(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.jobService.Update(session.CompanyID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) Delete(c *gin.Context) {
	session, ok := h.tenant(c)
	if !ok {
		return
	}

	if err := h.jobService.Delete(session.CompanyID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}
