package license

import (
	"time"

	"hrcell_backend/internal/models"
	"hrcell_backend/pkg/apperrors"
)

// Status - лицензионный статус компании
type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusSuspended Status = "suspended"
)

// Evaluation - результат вычисления лицензии.
// DaysRemaining == nil, когда окно не ограничено (или компания suspended).
type Evaluation struct {
	Status        Status `json:"status"`
	DaysRemaining *int   `json:"days_remaining"`
}

// Evaluate - чистая функция: (компания, момент времени) -> статус лицензии.
// Правила, в порядке приоритета:
//  1. is_active == false -> suspended, безусловно, даты не смотрим;
//  2. license_end не задан -> active без ограничения;
//  3. иначе days_remaining = усеченная разница в днях (license_end - now);
//     отрицательная -> expired, иначе active.
//
// Деление усекается к меньшему (floor): лицензия, истекающая через 23 часа,
// дает days_remaining=0, вчерашняя дата дает -1. UI завязан на эту округлялку.
func Evaluate(company *models.Company, now time.Time) Evaluation {
	if !company.IsActive {
		return Evaluation{Status: StatusSuspended}
	}

	if company.LicenseEnd == nil {
		return Evaluation{Status: StatusActive}
	}

	days := daysBetween(now, *company.LicenseEnd)
	if days < 0 {
		return Evaluation{Status: StatusExpired, DaysRemaining: &days}
	}
	return Evaluation{Status: StatusActive, DaysRemaining: &days}
}

// EvaluateRaw парсит license_end из строки (ISO-8601, хвостовой Z = UTC).
// Мусор в данных не должен ронять проверку лицензии: при ошибке парсинга
// считаем active без ограничения.
func EvaluateRaw(isActive bool, licenseEnd string, now time.Time) Evaluation {
	if !isActive {
		return Evaluation{Status: StatusSuspended}
	}
	if licenseEnd == "" {
		return Evaluation{Status: StatusActive}
	}

	end, err := time.Parse(time.RFC3339, licenseEnd)
	if err != nil {
		return Evaluation{Status: StatusActive}
	}

	c := &models.Company{IsActive: isActive, LicenseEnd: &end}
	return Evaluate(c, now)
}

// daysBetween - разница end-now в целых днях с округлением вниз:
// -1 час -> -1, -25 часов -> -2, +23 часа -> 0.
func daysBetween(now, end time.Time) int {
	d := end.Sub(now)
	days := int(d.Hours() / 24)
	// floor для отрицательных неполных дней
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return days
}

// Check применяет лицензионный гейт: пропускает active, возвращает типизированную
// ошибку для suspended/expired. Вызывается каждым тенантским обработчиком.
func Check(company *models.Company, now time.Time) error {
	switch Evaluate(company, now).Status {
	case StatusSuspended:
		return apperrors.ErrLicenseSuspended
	case StatusExpired:
		return apperrors.ErrLicenseExpired
	default:
		return nil
	}
}
