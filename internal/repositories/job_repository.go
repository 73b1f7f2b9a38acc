package repositories

import (
	"errors"

	"hrcell_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	FindByID(id string) (*models.Job, error)
	FindByCompany(companyID string, limit, offset int) ([]models.Job, error)
	FindPublishedByCompany(companyID string) ([]models.Job, error)
	CountByCompany(companyID string) (int64, error)
	Create(j *models.Job) error
	Update(j *models.Job) error
	Delete(id string) error
	DeleteByCompany(companyID string) error
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var j models.Job
	err := r.db.First(&j, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &j, nil
}

func (r *JobRepositoryImpl) FindByCompany(companyID string, limit, offset int) ([]models.Job, error) {
	var out []models.Job
	q := r.db.Where("company_id = ?", companyID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *JobRepositoryImpl) FindPublishedByCompany(companyID string) ([]models.Job, error) {
	var out []models.Job
	err := r.db.
		Where("company_id = ? AND status = ?", companyID, models.JobStatusPublished).
		Order("published_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *JobRepositoryImpl) CountByCompany(companyID string) (int64, error) {
	var n int64
	err := r.db.Model(&models.Job{}).Where("company_id = ?", companyID).Count(&n).Error
	return n, err
}

func (r *JobRepositoryImpl) Create(j *models.Job) error {
	return r.db.Create(j).Error
}

func (r *JobRepositoryImpl) Update(j *models.Job) error {
	return r.db.Save(j).Error
}

func (r *JobRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Job{}, "id = ?", id).Error
}

func (r *JobRepositoryImpl) DeleteByCompany(companyID string) error {
	return r.db.Delete(&models.Job{}, "company_id = ?", companyID).Error
}
