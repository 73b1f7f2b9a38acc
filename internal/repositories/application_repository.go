package repositories

import (
	"errors"
	"time"

	"hrcell_backend/internal/models"

	"gorm.io/gorm"
)

var ErrApplicationNotFound = errors.New("application not found")

// ApplicationFilter - критерии выборки откликов внутри тенанта
type ApplicationFilter struct {
	CompanyID string
	JobID     string
	Status    models.ApplicationStatus
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  int
}

type ApplicationRepository interface {
	FindByID(id string) (*models.Application, error)
	FindWithFilter(filter ApplicationFilter) ([]models.Application, int64, error)
	CountByCompany(companyID string) (int64, error)
	CountByJob(jobID string) (int64, error)
	Create(a *models.Application) error
	Update(a *models.Application) error
	Delete(id string) error
	DeleteByCompany(companyID string) error
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) FindByID(id string) (*models.Application, error) {
	var a models.Application
	err := r.db.First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepositoryImpl) FindWithFilter(filter ApplicationFilter) ([]models.Application, int64, error) {
	q := r.db.Model(&models.Application{}).Where("company_id = ?", filter.CompanyID)

	if filter.JobID != "" {
		q = q.Where("job_id = ?", filter.JobID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		q = q.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("created_at <= ?", *filter.DateTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		q = q.Limit(filter.PageSize).Offset(offset)
	}

	var out []models.Application
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ApplicationRepositoryImpl) CountByCompany(companyID string) (int64, error) {
	var n int64
	err := r.db.Model(&models.Application{}).Where("company_id = ?", companyID).Count(&n).Error
	return n, err
}

func (r *ApplicationRepositoryImpl) CountByJob(jobID string) (int64, error) {
	var n int64
	err := r.db.Model(&models.Application{}).Where("job_id = ?", jobID).Count(&n).Error
	return n, err
}

func (r *ApplicationRepositoryImpl) Create(a *models.Application) error {
	return r.db.Create(a).Error
}

func (r *ApplicationRepositoryImpl) Update(a *models.Application) error {
	return r.db.Save(a).Error
}

func (r *ApplicationRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Application{}, "id = ?", id).Error
}

func (r *ApplicationRepositoryImpl) DeleteByCompany(companyID string) error {
	return r.db.Delete(&models.Application{}, "company_id = ?", companyID).Error
}
