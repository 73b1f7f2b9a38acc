package models

// Role - роль аутентифицированного принципала в рамках запроса
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleEmployee   Role = "employee"
)

// PrincipalKind - дискриминант таблицы principals
type PrincipalKind string

const (
	KindSuperAdmin   PrincipalKind = "super_admin"
	KindCompanyAdmin PrincipalKind = "company_admin"
	KindEmployee     PrincipalKind = "employee"
)

// Wire-значения user_table из unified-login (исторический формат API)
const (
	UserTableCompanyAdmins = "company_admins"
	UserTableEmployees     = "employees"
)

// KindForUserTable переводит wire-значение user_table в PrincipalKind
func KindForUserTable(table string) (PrincipalKind, bool) {
	switch table {
	case UserTableCompanyAdmins:
		return KindCompanyAdmin, true
	case UserTableEmployees:
		return KindEmployee, true
	default:
		return "", false
	}
}

// KindForRole переводит роль в kind записи, которая эту роль несет
func KindForRole(role Role) (PrincipalKind, bool) {
	switch role {
	case RoleSuperAdmin:
		return KindSuperAdmin, true
	case RoleAdmin:
		return KindCompanyAdmin, true
	case RoleEmployee:
		return KindEmployee, true
	default:
		return "", false
	}
}

// UserTableForKind - обратное преобразование для ответов API
func UserTableForKind(kind PrincipalKind) string {
	switch kind {
	case KindCompanyAdmin:
		return UserTableCompanyAdmins
	case KindEmployee:
		return UserTableEmployees
	default:
		return ""
	}
}

// AuthProvider - способ аутентификации принципала
type AuthProvider string

const (
	AuthProviderEmail  AuthProvider = "email"
	AuthProviderGoogle AuthProvider = "google"
)

// LicenseType - тип лицензии компании
type LicenseType string

const (
	LicenseTypeTrial    LicenseType = "trial"
	LicenseTypeMonthly  LicenseType = "monthly"
	LicenseTypeYearly   LicenseType = "yearly"
	LicenseTypeLifetime LicenseType = "lifetime"
)

// JobStatus - статус вакансии
type JobStatus string

const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusPublished JobStatus = "published"
	JobStatusClosed    JobStatus = "closed"
)

// ApplicationStatus - статус отклика кандидата
type ApplicationStatus string

const (
	ApplicationStatusNew         ApplicationStatus = "new"
	ApplicationStatusReviewed    ApplicationStatus = "reviewed"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusHired       ApplicationStatus = "hired"
)

// FieldType - тип поля кастомной формы отклика
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeFile     FieldType = "file"
	FieldTypeDate     FieldType = "date"
	FieldTypeNumber   FieldType = "number"
	FieldTypeEmail    FieldType = "email"
	FieldTypePhone    FieldType = "phone"
)
