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

type UserHandler struct {
	*BaseHandler
	userService    services.UserService
	authService    services.AuthService
	sessionService services.SessionService
}

func NewUserHandler(base *BaseHandler, userService services.UserService, authService services.AuthService, sessionService services.SessionService) *UserHandler {
	return &UserHandler{
		BaseHandler:    base,
		userService:    userService,
		authService:    authService,
		sessionService: sessionService,
	}
}

// RegisterRoutes регистрирует управление учетными записями:
// супер-админ ведет супер-админов и админов компаний глобально,
// админ компании ведет сотрудников своего тенанта.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	superadmins := rg.Group("/superadmin/users")
	superadmins.Use(middleware.RequireSuperAdmin(h.authService))
	{
		superadmins.POST("", h.kindCreate(models.KindSuperAdmin))
		superadmins.GET("", h.kindList(models.KindSuperAdmin))
		superadmins.GET("/:id", h.kindGet(models.KindSuperAdmin))
		superadmins.PUT("/:id", h.kindUpdate(models.KindSuperAdmin))
		superadmins.DELETE("/:id", h.kindDelete(models.KindSuperAdmin))
	}

	admins := rg.Group("/superadmin/company-admins")
	admins.Use(middleware.RequireSuperAdmin(h.authService))
	{
		admins.POST("", h.kindCreate(models.KindCompanyAdmin))
		admins.GET("", h.kindList(models.KindCompanyAdmin))
		admins.GET("/:id", h.kindGet(models.KindCompanyAdmin))
		admins.PUT("/:id", h.kindUpdate(models.KindCompanyAdmin))
		admins.DELETE("/:id", h.kindDelete(models.KindCompanyAdmin))
		admins.POST("/:id/companies/:companyId", h.grantCompany(models.KindCompanyAdmin))
		admins.DELETE("/:id/companies/:companyId", h.revokeCompany(models.KindCompanyAdmin))
	}

	employees := rg.Group("/employees")
	employees.Use(middleware.RequireSessionRole(h.sessionService, models.RoleAdmin))
	{
		employees.POST("", h.CreateEmployee)
		employees.GET("", h.ListEmployees)
		employees.PUT("/:id", h.UpdateEmployee)
		employees.DELETE("/:id", h.DeleteEmployee)
	}
}

func (h *UserHandler) kindCreate(kind models.PrincipalKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateUserRequest
		if !h.BindAndValidate_JSON(c, &req) {
			return
		}

		resp, err := h.userService.Create(kind, &req)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

func (h *UserHandler) kindList(kind models.PrincipalKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := ParsePagination(c)
		resp, err := h.userService.List(kind, page, pageSize)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": resp})
	}
}

func (h *UserHandler) kindGet(kind models.PrincipalKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := h.userService.GetByID(kind, c.Param("id"))
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *UserHandler) kindUpdate(kind models.PrincipalKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.UpdateUserRequest
		if !h.BindAndValidate_JSON(c, &req) {
			return
		}

		resp, err := h.userService.Update(kind, c.Param("id"), &req)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *UserHandler) kindDelete(kind models.PrincipalKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.userService.Delete(kind, c.Param("id")); err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}

func (h *UserHandler) grantCompany(kind models.PrincipalKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := h.userService.GrantCompany(kind, c.Param("id"), c.Param("companyId"))
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *UserHandler) revokeCompany(kind models.PrincipalKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := h.userService.RevokeCompany(kind, c.Param("id"), c.Param("companyId"))
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *UserHandler) tenant(c *gin.Context) (*models.Session, bool) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		h.HandleServiceError(c, apperrors.ErrUnauthenticated)
		return nil, false
	}
	return session, true
}

// ensureTenantMember сверяет принадлежность сотрудника тенанту сессии.
// Чужой сотрудник - всегда 403, не пустой ответ.
func (h *UserHandler) ensureTenantMember(c *gin.Context, session *models.Session, employeeID string) bool {
	resp, err := h.userService.GetByID(models.KindEmployee, employeeID)
	if err != nil {
		h.HandleServiceError(c, err)
		return false
	}
	for _, companyID := range resp.Companies {
		if companyID == session.CompanyID {
			return true
		}
	}
	h.HandleServiceError(c, apperrors.ErrTenantMismatch)
	return false
}

func (h *UserHandler) CreateEmployee(c *gin.Context) {
	session, ok := h.tenant(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	// Членство всегда в тенанте сессии, что бы ни прислал клиент
	req.Companies = []string{session.CompanyID}

	resp, err := h.userService.Create(models.KindEmployee, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UserHandler) ListEmployees(c *gin.Context) {
	session, ok := h.tenant(c)
	if !ok {
		return
	}

	resp, err := h.userService.ListByCompany(models.KindEmployee, session.CompanyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": resp})
}

func (h *UserHandler) UpdateEmployee(c *gin.Context) {
	session, ok := h.tenant(c)
	if !ok {
		return
	}
	if !h.ensureTenantMember(c, session, c.Param("id")) {
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	// Админ тенанта не меняет членства сотрудника в других компаниях
	req.Companies = nil

	resp, err := h.userService.Update(models.KindEmployee, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) DeleteEmployee(c *gin.Context) {
	session, ok := h.tenant(c)
	if !ok {
		return
	}
	if !h.ensureTenantMember(c, session, c.Param("id")) {
		return
	}

	// Сотрудник нескольких компаний теряет только членство в этой,
	// запись удаляется лишь когда членств не осталось
	resp, err := h.userService.RevokeCompany(models.KindEmployee, c.Param("id"), session.CompanyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if len(resp.Companies) == 0 {
		if err := h.userService.Delete(models.KindEmployee, c.Param("id")); err != nil {
			h.HandleServiceError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee removed"})
}
