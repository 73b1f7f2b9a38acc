package services

import (
	"strings"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/datatypes"

	"hrcell_backend/internal/auth"
	"hrcell_backend/internal/license"
	"hrcell_backend/internal/logger"
	"hrcell_backend/internal/models"
	"hrcell_backend/internal/repositories"
	"hrcell_backend/internal/services/dto"
	"hrcell_backend/pkg/apperrors"
)

type CompanyService interface {
	Create(req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	GetByID(id string) (*dto.CompanyResponse, error)
	List(page, pageSize int) ([]dto.CompanyResponse, error)
	Update(id string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
	UpdateLicense(id string, req *dto.UpdateLicenseRequest) (*dto.CompanyResponse, error)
	UpdateCustomDomains(id string, req *dto.UpdateCustomDomainsRequest) (*dto.CompanyResponse, error)
	// Delete удаляет тенанта со всем содержимым: вакансии, формы, отклики,
	// журнал, сессии; принципалы теряют членство, осиротевшие удаляются
	Delete(id string) error

	DashboardStats() (*dto.DashboardStats, error)

	// LookupDomain резолвит hostname в тенанта и тип страницы
	// по domain, slug и custom_domains
	LookupDomain(hostname string) (*dto.DomainLookupResponse, error)
}

type CompanyServiceImpl struct {
	companyRepo   repositories.CompanyRepository
	principalRepo repositories.PrincipalRepository
	jobRepo       repositories.JobRepository
	formFieldRepo repositories.FormFieldRepository
	appRepo       repositories.ApplicationRepository
	activityRepo  repositories.ActivityRepository
	sessionRepo   repositories.SessionRepository
	now           func() time.Time
}

func NewCompanyService(
	companyRepo repositories.CompanyRepository,
	principalRepo repositories.PrincipalRepository,
	jobRepo repositories.JobRepository,
	formFieldRepo repositories.FormFieldRepository,
	appRepo repositories.ApplicationRepository,
	activityRepo repositories.ActivityRepository,
	sessionRepo repositories.SessionRepository,
) CompanyService {
	return &CompanyServiceImpl{
		companyRepo:   companyRepo,
		principalRepo: principalRepo,
		jobRepo:       jobRepo,
		formFieldRepo: formFieldRepo,
		appRepo:       appRepo,
		activityRepo:  activityRepo,
		sessionRepo:   sessionRepo,
		now:           time.Now,
	}
}

func (s *CompanyServiceImpl) Create(req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	companySlug := req.Slug
	if companySlug == "" {
		companySlug = slug.Make(req.Name)
	}

	if err := s.checkHostnameFree(strings.ToLower(req.Domain), ""); err != nil {
		return nil, err
	}
	if _, err := s.companyRepo.FindBySlug(companySlug); err == nil {
		return nil, apperrors.NewConflictError("Company slug is already taken")
	}

	licenseEnd, err := parseTimePtr(req.LicenseEnd)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid license_end format, expected ISO-8601")
	}

	licenseType := models.LicenseType(req.LicenseType)
	if licenseType == "" {
		licenseType = models.LicenseTypeTrial
	}

	now := s.now()
	company := &models.Company{
		Name:         req.Name,
		Slug:         companySlug,
		Domain:       strings.ToLower(req.Domain),
		IsActive:     true,
		LicenseType:  licenseType,
		LicenseStart: &now,
		LicenseEnd:   licenseEnd,
	}

	if err := s.companyRepo.Create(company); err != nil {
		if apperrors.Is(err, repositories.ErrCompanyAlreadyExists) {
			return nil, apperrors.NewConflictError("Company with this slug or domain already exists")
		}
		return nil, apperrors.InternalError(err)
	}

	// Первый админ создается вместе с компанией, если переданы реквизиты
	if req.AdminEmail != "" {
		if err := s.createFirstAdmin(company, req); err != nil {
			logger.Error("first admin creation failed", "company_id", company.ID, "error", err)
		}
	}

	logger.Info("company created", "company_id", company.ID, "slug", company.Slug)
	return s.toResponse(company), nil
}

// createFirstAdmin заводит company_admin или дает членство существующему
func (s *CompanyServiceImpl) createFirstAdmin(company *models.Company, req *dto.CreateCompanyRequest) error {
	existing, err := s.principalRepo.FindByKindAndEmail(models.KindCompanyAdmin, req.AdminEmail)
	if err == nil {
		if !existing.HasCompany(company.ID) {
			existing.Companies = append(existing.Companies, company.ID)
			return s.principalRepo.Update(existing)
		}
		return nil
	}

	if err := auth.ValidatePassword(req.AdminPassword); err != nil {
		return err
	}
	hash, err := auth.HashPassword(req.AdminPassword)
	if err != nil {
		return err
	}

	name := req.AdminName
	if name == "" {
		name = req.AdminEmail
	}
	return s.principalRepo.Create(&models.Principal{
		Kind:         models.KindCompanyAdmin,
		Email:        req.AdminEmail,
		Name:         name,
		PasswordHash: hash,
		Companies:    datatypes.NewJSONSlice([]string{company.ID}),
		IsActive:     true,
		AuthProvider: models.AuthProviderEmail,
	})
}

func (s *CompanyServiceImpl) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("Company not found")
	}
	return s.toResponse(company), nil
}

func (s *CompanyServiceImpl) List(page, pageSize int) ([]dto.CompanyResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}

	companies, err := s.companyRepo.FindAll(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		out = append(out, *s.toResponse(&companies[i]))
	}
	return out, nil
}

func (s *CompanyServiceImpl) Update(id string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("Company not found")
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Domain != nil && strings.ToLower(*req.Domain) != company.Domain {
		domain := strings.ToLower(*req.Domain)
		if err := s.checkHostnameFree(domain, company.ID); err != nil {
			return nil, err
		}
		company.Domain = domain
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
		if !*req.IsActive {
			// Приостановка немедленно гасит открытые сессии тенанта
			if err := s.sessionRepo.DeleteByCompany(company.ID); err != nil {
				logger.Error("session purge on suspend failed", "company_id", company.ID, "error", err)
			}
		}
	}
	if req.Profile != nil {
		company.Profile = datatypes.NewJSONType(*req.Profile)
	}
	if req.SMTP != nil {
		company.SMTPSettings = datatypes.NewJSONType(*req.SMTP)
	}

	if err := s.companyRepo.Update(company); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(company), nil
}

func (s *CompanyServiceImpl) UpdateLicense(id string, req *dto.UpdateLicenseRequest) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("Company not found")
	}

	start, err := parseTimePtr(req.LicenseStart)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid license_start format, expected ISO-8601")
	}
	end, err := parseTimePtr(req.LicenseEnd)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid license_end format, expected ISO-8601")
	}

	company.LicenseType = models.LicenseType(req.LicenseType)
	if start != nil {
		company.LicenseStart = start
	}
	company.LicenseEnd = end

	if err := s.companyRepo.Update(company); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("license updated", "company_id", company.ID,
		"license_type", company.LicenseType, "license_end", formatTimePtr(company.LicenseEnd))
	return s.toResponse(company), nil
}

func (s *CompanyServiceImpl) UpdateCustomDomains(id string, req *dto.UpdateCustomDomainsRequest) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("Company not found")
	}

	domains := models.CustomDomains{
		Main:    strings.ToLower(req.Main),
		Careers: strings.ToLower(req.Careers),
		HR:      strings.ToLower(req.HR),
	}
	for _, d := range domains.All() {
		if err := s.checkHostnameFree(d, company.ID); err != nil {
			return nil, err
		}
	}

	company.CustomDomains = datatypes.NewJSONType(domains)
	if err := s.companyRepo.Update(company); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(company), nil
}

// checkHostnameFree проверяет, что hostname не занят ни одним тенантом
// (domain, slug или любой из custom_domains), кроме excludeID
func (s *CompanyServiceImpl) checkHostnameFree(hostname, excludeID string) error {
	if hostname == "" {
		return nil
	}

	companies, err := s.companyRepo.FindAll(0, 0)
	if err != nil {
		return apperrors.InternalError(err)
	}
	for i := range companies {
		c := &companies[i]
		if c.ID == excludeID {
			continue
		}
		if c.Domain == hostname || c.Slug == hostname {
			return apperrors.NewConflictError("Domain is already in use by another company")
		}
		for _, d := range c.CustomDomains.Data().All() {
			if strings.ToLower(d) == hostname {
				return apperrors.NewConflictError("Domain is already in use by another company")
			}
		}
	}
	return nil
}

func (s *CompanyServiceImpl) Delete(id string) error {
	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		return apperrors.NewNotFoundError("Company not found")
	}

	// Порядок: зависимые таблицы, затем членства, затем сама компания
	if err := s.appRepo.DeleteByCompany(id); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.formFieldRepo.DeleteByCompany(id); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.jobRepo.DeleteByCompany(id); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.activityRepo.DeleteByCompany(id); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.sessionRepo.DeleteByCompany(id); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.principalRepo.DeleteByCompany(id); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.companyRepo.Delete(id); err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("company deleted", "company_id", id, "slug", company.Slug)
	return nil
}

func (s *CompanyServiceImpl) DashboardStats() (*dto.DashboardStats, error) {
	total, err := s.companyRepo.Count()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	active, err := s.companyRepo.CountActive()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	admins, err := s.principalRepo.CountByKind(models.KindCompanyAdmin)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	employees, err := s.principalRepo.CountByKind(models.KindEmployee)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	recent, err := s.companyRepo.FindRecent(5)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	stats := &dto.DashboardStats{
		TotalCompanies:  total,
		ActiveCompanies: active,
		TotalAdmins:     admins,
		TotalEmployees:  employees,
		RecentCompanies: make([]dto.CompanyResponse, 0, len(recent)),
	}
	for i := range recent {
		stats.RecentCompanies = append(stats.RecentCompanies, *s.toResponse(&recent[i]))
	}
	return stats, nil
}

func (s *CompanyServiceImpl) LookupDomain(hostname string) (*dto.DomainLookupResponse, error) {
	hostname = strings.ToLower(strings.TrimSpace(hostname))
	if hostname == "" {
		return nil, apperrors.NewBadRequestError("Hostname is required")
	}

	if c, err := s.companyRepo.FindByDomain(hostname); err == nil {
		return domainLookup(c, "main"), nil
	}
	if c, err := s.companyRepo.FindBySlug(hostname); err == nil {
		return domainLookup(c, "main"), nil
	}

	companies, err := s.companyRepo.FindAll(0, 0)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	for i := range companies {
		c := &companies[i]
		d := c.CustomDomains.Data()
		switch hostname {
		case strings.ToLower(d.Main):
			return domainLookup(c, "main"), nil
		case strings.ToLower(d.Careers):
			return domainLookup(c, "careers"), nil
		case strings.ToLower(d.HR):
			return domainLookup(c, "hr"), nil
		}
	}
	return nil, apperrors.NewNotFoundError("No company is registered for this domain")
}

func domainLookup(c *models.Company, pageType string) *dto.DomainLookupResponse {
	return &dto.DomainLookupResponse{
		CompanyID:   c.ID,
		CompanyName: c.Name,
		CompanySlug: c.Slug,
		PageType:    pageType,
	}
}

func (s *CompanyServiceImpl) toResponse(c *models.Company) *dto.CompanyResponse {
	ev := license.Evaluate(c, s.now())

	employeeCount, err := s.principalRepo.CountByCompany(c.ID)
	if err != nil {
		employeeCount = 0
	}

	return &dto.CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		Slug:          c.Slug,
		Domain:        c.Domain,
		IsActive:      c.IsActive,
		LicenseType:   string(c.LicenseType),
		LicenseStart:  formatTimePtr(c.LicenseStart),
		LicenseEnd:    formatTimePtr(c.LicenseEnd),
		LicenseStatus: string(ev.Status),
		DaysRemaining: ev.DaysRemaining,
		CustomDomains: c.CustomDomains.Data(),
		Profile:       c.Profile.Data(),
		EmployeeCount: employeeCount,
		CreatedAt:     formatTime(c.CreatedAt),
		UpdatedAt:     formatTime(c.UpdatedAt),
	}
}
