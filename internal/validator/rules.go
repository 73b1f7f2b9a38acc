package validator

import (
	"log"

	"hrcell_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {

	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Если правило не удалось зарегистрировать, приложение
			// не должно запускаться.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-license-type': trial/monthly/yearly/lifetime
	mustRegister("is-license-type", validateLicenseType)

	// 'is-user-table': таблица принципала в wire-формате unified-login
	mustRegister("is-user-table", validateUserTable)

	// 'is-session-role': роль, под которой создается сессия
	mustRegister("is-session-role", validateSessionRole)

	// 'is-job-status': статус вакансии
	mustRegister("is-job-status", validateJobStatus)

	// 'is-application-status': статус отклика кандидата
	mustRegister("is-application-status", validateApplicationStatus)

	// 'is-field-type': тип поля кастомной формы
	mustRegister("is-field-type", validateFieldType)
}

// --- Функции валидации ---

func validateLicenseType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	switch models.LicenseType(value) {
	case models.LicenseTypeTrial, models.LicenseTypeMonthly, models.LicenseTypeYearly, models.LicenseTypeLifetime:
		return true
	default:
		return false
	}
}

func validateUserTable(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch value {
	case models.UserTableCompanyAdmins, models.UserTableEmployees:
		return true
	default:
		return false
	}
}

func validateSessionRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	// super_admin сессий не держит, только токен
	switch models.Role(value) {
	case models.RoleAdmin, models.RoleEmployee:
		return true
	default:
		return false
	}
}

func validateJobStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.JobStatus(value) {
	case models.JobStatusDraft, models.JobStatusPublished, models.JobStatusClosed:
		return true
	default:
		return false
	}
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ApplicationStatus(value) {
	case models.ApplicationStatusNew, models.ApplicationStatusReviewed,
		models.ApplicationStatusShortlisted, models.ApplicationStatusRejected,
		models.ApplicationStatusHired:
		return true
	default:
		return false
	}
}

func validateFieldType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.FieldType(value) {
	case models.FieldTypeText, models.FieldTypeTextarea, models.FieldTypeSelect,
		models.FieldTypeFile, models.FieldTypeDate, models.FieldTypeNumber,
		models.FieldTypeEmail, models.FieldTypePhone:
		return true
	default:
		return false
	}
}
