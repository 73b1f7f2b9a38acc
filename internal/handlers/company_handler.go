package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hrcell_backend/internal/middleware"
	"hrcell_backend/internal/services"
	"hrcell_backend/internal/services/dto"
)

type CompanyHandler struct {
	*BaseHandler
	companyService services.CompanyService
	authService    services.AuthService
}

func NewCompanyHandler(base *BaseHandler, companyService services.CompanyService, authService services.AuthService) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:    base,
		companyService: companyService,
		authService:    authService,
	}
}

// RegisterRoutes регистрирует маршруты управления компаниями (супер-админ)
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/superadmin/companies")
	companies.Use(middleware.RequireSuperAdmin(h.authService))
	{
		companies.POST("", h.Create)
		companies.GET("", h.List)
		companies.GET("/:id", h.Get)
		companies.PUT("/:id", h.Update)
		companies.DELETE("/:id", h.Delete)
		companies.PUT("/:id/license", h.UpdateLicense)
		companies.PUT("/:id/custom-domains", h.UpdateCustomDomains)
	}

	dashboard := rg.Group("/superadmin/dashboard")
	dashboard.Use(middleware.RequireSuperAdmin(h.authService))
	{
		dashboard.GET("/stats", h.DashboardStats)
	}
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.companyService.Create(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CompanyHandler) List(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	resp, err := h.companyService.List(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": resp})
}

func (h *CompanyHandler) Get(c *gin.Context) {
	resp, err := h.companyService.GetByID(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	var req dto.UpdateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.companyService.Update(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	if err := h.companyService.Delete(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company deleted"})
}

func (h *CompanyHandler) UpdateLicense(c *gin.Context) {
	var req dto.UpdateLicenseRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.companyService.UpdateLicense(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CompanyHandler) UpdateCustomDomains(c *gin.Context) {
	var req dto.UpdateCustomDomainsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.companyService.UpdateCustomDomains(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CompanyHandler) DashboardStats(c *gin.Context) {
	resp, err := h.companyService.DashboardStats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
