package dto

import (
	"hrcell_backend/internal/models"
)

// CreateCompanyRequest - создание тенанта супер-админом
type CreateCompanyRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug,omitempty"`
	Domain      string `json:"domain" binding:"required,hostname_rfc1123"`
	LicenseType string `json:"license_type,omitempty" validate:"is-license-type"`
	// LicenseEnd - ISO-8601; пустая строка = неограниченное окно
	LicenseEnd string `json:"license_end,omitempty"`

	AdminEmail    string `json:"admin_email,omitempty" binding:"omitempty,email"`
	AdminName     string `json:"admin_name,omitempty"`
	AdminPassword string `json:"admin_password,omitempty"`
}

// UpdateCompanyRequest - частичное обновление тенанта
type UpdateCompanyRequest struct {
	Name     *string                `json:"name,omitempty"`
	Domain   *string                `json:"domain,omitempty" binding:"omitempty,hostname_rfc1123"`
	IsActive *bool                  `json:"is_active,omitempty"`
	Profile  *models.CompanyProfile `json:"profile,omitempty"`
	SMTP     *models.SMTPSettings   `json:"smtp_settings,omitempty"`
}

// UpdateLicenseRequest - управление лицензионным окном
type UpdateLicenseRequest struct {
	LicenseType  string `json:"license_type" binding:"required" validate:"is-license-type"`
	LicenseStart string `json:"license_start,omitempty"`
	LicenseEnd   string `json:"license_end,omitempty"`
}

// UpdateCustomDomainsRequest - назначение кастомных доменов
type UpdateCustomDomainsRequest struct {
	Main    string `json:"main,omitempty" binding:"omitempty,hostname_rfc1123"`
	Careers string `json:"careers,omitempty" binding:"omitempty,hostname_rfc1123"`
	HR      string `json:"hr,omitempty" binding:"omitempty,hostname_rfc1123"`
}

// CompanyResponse - представление компании в API
type CompanyResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Slug          string                `json:"slug"`
	Domain        string                `json:"domain"`
	IsActive      bool                  `json:"is_active"`
	LicenseType   string                `json:"license_type"`
	LicenseStart  string                `json:"license_start,omitempty"`
	LicenseEnd    string                `json:"license_end,omitempty"`
	LicenseStatus string                `json:"license_status"`
	DaysRemaining *int                  `json:"days_remaining"`
	CustomDomains models.CustomDomains  `json:"custom_domains"`
	Profile       models.CompanyProfile `json:"profile"`
	EmployeeCount int64                 `json:"employee_count"`
	CreatedAt     string                `json:"created_at"`
	UpdatedAt     string                `json:"updated_at"`
}

// DashboardStats - сводка для панели супер-админа
type DashboardStats struct {
	TotalCompanies  int64             `json:"total_companies"`
	ActiveCompanies int64             `json:"active_companies"`
	TotalAdmins     int64             `json:"total_admins"`
	TotalEmployees  int64             `json:"total_employees"`
	RecentCompanies []CompanyResponse `json:"recent_companies"`
}

// DomainLookupResponse - результат резолва hostname в тенанта
type DomainLookupResponse struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	CompanySlug string `json:"company_slug"`
	PageType    string `json:"page_type"` // main | careers | hr
}
