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

type FormFieldHandler struct {
	*BaseHandler
	formFieldService services.FormFieldService
	sessionService   services.SessionService
}

func NewFormFieldHandler(base *BaseHandler, formFieldService services.FormFieldService, sessionService services.SessionService) *FormFieldHandler {
	return &FormFieldHandler{
		BaseHandler:      base,
		formFieldService: formFieldService,
		sessionService:   sessionService,
	}
}

// RegisterRoutes регистрирует тенантские маршруты конструктора форм
func (h *FormFieldHandler) RegisterRoutes(rg *gin.RouterGroup) {
	fields := rg.Group("/form-fields")
	fields.Use(middleware.RequireSessionRole(h.sessionService, models.RoleAdmin))
	{
		fields.POST("", h.Create)
		fields.GET("", h.List)
		fields.PUT("/:id", h.Update)
		fields.DELETE("/:id", h.Delete)
	}
}

func (h *FormFieldHandler) tenant(c *gin.Context) (*models.Session, bool) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		h.HandleServiceError(c, apperrors.ErrUnauthenticated)
		return nil, false
	}
	return session, true
}

func (h *FormFieldHandler) Create(c *gin.Context) {
	session, ok := h.tenant(c)
	if !ok {
		return
	}

	var req dto.CreateFormFieldRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	field, err := h.formFieldService.Create(session.CompanyID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, field)
}

func (h *FormFieldHandler) List(c *gin.Context) {
	session, ok := h.tenant(c)
	if !ok {
		return
	}

	// job_id сужает до формы конкретной вакансии (с фолбэком на дефолтную)
	if jobID := c.Query("job_id"); jobID != "" {
		fields, err := h.formFieldService.ListForJob(session.CompanyID, jobID)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"form_fields": fields})
		return
	}

	fields, err := h.formFieldService.ListByCompany(session.CompanyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"form_fields": fields})
}

func (h *FormFieldHandler) Update(c *gin.Context) {
	session, ok := h.tenant(c)
	if !ok {
		return
	}

	var req dto.UpdateFormFieldRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	field, err := h.formFieldService.Update(session.CompanyID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, field)
}

func (h *FormFieldHandler) Delete(c *gin.Context) {
	session, ok := h.tenant(c)
	if !ok {
		return
	}

	if err := h.formFieldService.Delete(session.CompanyID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Form field deleted"})
}
