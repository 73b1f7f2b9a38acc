package repositories

import (
	"hrcell_backend/internal/models"

	"gorm.io/gorm"
)

type ActivityRepository interface {
	Create(entry *models.ActivityLog) error
	FindByCompany(companyID string, limit, offset int) ([]models.ActivityLog, int64, error)
	FindGlobal(limit, offset int) ([]models.ActivityLog, int64, error)
	DeleteByCompany(companyID string) error
}

type ActivityRepositoryImpl struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &ActivityRepositoryImpl{db: db}
}

func (r *ActivityRepositoryImpl) Create(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

func (r *ActivityRepositoryImpl) FindByCompany(companyID string, limit, offset int) ([]models.ActivityLog, int64, error) {
	var total int64
	q := r.db.Model(&models.ActivityLog{}).Where("company_id = ?", companyID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.ActivityLog
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ActivityRepositoryImpl) FindGlobal(limit, offset int) ([]models.ActivityLog, int64, error) {
	var total int64
	if err := r.db.Model(&models.ActivityLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.ActivityLog
	err := r.db.Model(&models.ActivityLog{}).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ActivityRepositoryImpl) DeleteByCompany(companyID string) error {
	return r.db.Delete(&models.ActivityLog{}, "company_id = ?", companyID).Error
}
