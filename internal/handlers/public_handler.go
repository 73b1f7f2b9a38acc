package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hrcell_backend/internal/logger"
	"hrcell_backend/internal/services"
	"hrcell_backend/internal/services/dto"
	"hrcell_backend/internal/wilayah"
)

// PublicHandler обслуживает неаутентифицированные маршруты:
// страницы карьеры, резолв доменов, подачу откликов и справочник адресов.
type PublicHandler struct {
	*BaseHandler
	companyService     services.CompanyService
	jobService         services.JobService
	formFieldService   services.FormFieldService
	applicationService services.ApplicationService
	wilayahClient      *wilayah.Client
}

func NewPublicHandler(
	base *BaseHandler,
	companyService services.CompanyService,
	jobService services.JobService,
	formFieldService services.FormFieldService,
	applicationService services.ApplicationService,
	wilayahClient *wilayah.Client,
) *PublicHandler {
	return &PublicHandler{
		BaseHandler:        base,
		companyService:     companyService,
		jobService:         jobService,
		formFieldService:   formFieldService,
		applicationService: applicationService,
		wilayahClient:      wilayahClient,
	}
}

// RegisterRoutes регистрирует публичные маршруты
func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/public")
	{
		public.GET("/domain-lookup", h.DomainLookup)
		public.GET("/careers/:slug", h.CareersPage)
		public.GET("/careers/:slug/jobs/:jobId/form", h.JobForm)
		public.POST("/careers/:slug/jobs/:jobId/apply", h.Apply)

		wilayahGroup := public.Group("/wilayah")
		{
			wilayahGroup.GET("/provinces", h.Provinces)
			wilayahGroup.GET("/regencies/:code", h.Regencies)
			wilayahGroup.GET("/districts/:code", h.Districts)
			wilayahGroup.GET("/villages/:code", h.Villages)
		}
	}
}

func (h *PublicHandler) DomainLookup(c *gin.Context) {
	hostname := c.Query("hostname")
	if hostname == "" {
		hostname = c.Request.Host
	}

	resp, err := h.companyService.LookupDomain(hostname)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CareersPage отдает публичный профиль компании с открытыми вакансиями
func (h *PublicHandler) CareersPage(c *gin.Context) {
	// В пути slug либо кастомный домен - оба резолвятся одинаково
	lookup, err := h.companyService.LookupDomain(c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	company, err := h.companyService.GetByID(lookup.CompanyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	jobs, err := h.jobService.ListPublished(company.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"company": gin.H{
			"id":      company.ID,
			"name":    company.Name,
			"slug":    company.Slug,
			"profile": company.Profile,
		},
		"jobs": jobs,
	})
}

// JobForm отдает поля формы отклика вакансии (или дефолтной формы компании)
func (h *PublicHandler) JobForm(c *gin.Context) {
	lookup, err := h.companyService.LookupDomain(c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	fields, err := h.formFieldService.ListForJob(lookup.CompanyID, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"form_fields": fields})
}

func (h *PublicHandler) Apply(c *gin.Context) {
	var req dto.SubmitApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.applicationService.Submit(c.Param("slug"), c.Param("jobId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// regions отвечает списком справочника; сбой апстрима деградирует
// до пустого списка, не до ошибки
func (h *PublicHandler) regions(c *gin.Context, fetch func() ([]wilayah.Region, error)) {
	regions, err := fetch()
	if err != nil {
		logger.CtxWarn(c.Request.Context(), "wilayah upstream unavailable", "error", err)
		c.JSON(http.StatusOK, gin.H{"data": []wilayah.Region{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": regions})
}

func (h *PublicHandler) Provinces(c *gin.Context) {
	h.regions(c, h.wilayahClient.Provinces)
}

func (h *PublicHandler) Regencies(c *gin.Context) {
	code := c.Param("code")
	h.regions(c, func() ([]wilayah.Region, error) { return h.wilayahClient.Regencies(code) })
}

func (h *PublicHandler) Districts(c *gin.Context) {
	code := c.Param("code")
	h.regions(c, func() ([]wilayah.Region, error) { return h.wilayahClient.Districts(code) })
}

func (h *PublicHandler) Villages(c *gin.Context) {
	code := c.Param("code")
	h.regions(c, func() ([]wilayah.Region, error) { return h.wilayahClient.Villages(code) })
}
