package services

import (
	"hrcell_backend/internal/email"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService        AuthService
	UnifiedAuthService UnifiedAuthService
	SessionService     SessionService
	CompanyService     CompanyService
	JobService         JobService
	FormFieldService   FormFieldService
	ApplicationService ApplicationService
	UserService        UserService
	ActivityService    ActivityService
	EmailService       email.Provider
}
