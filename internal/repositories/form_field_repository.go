package repositories

import (
	"errors"

	"hrcell_backend/internal/models"

	"gorm.io/gorm"
)

var ErrFormFieldNotFound = errors.New("form field not found")

type FormFieldRepository interface {
	FindByID(id string) (*models.FormField, error)
	// FindForJob возвращает форму вакансии, либо дефолтную форму компании,
	// если у вакансии нет собственных полей
	FindForJob(companyID, jobID string) ([]models.FormField, error)
	FindByCompany(companyID string) ([]models.FormField, error)
	Create(f *models.FormField) error
	Update(f *models.FormField) error
	Delete(id string) error
	DeleteByCompany(companyID string) error
}

type FormFieldRepositoryImpl struct {
	db *gorm.DB
}

func NewFormFieldRepository(db *gorm.DB) FormFieldRepository {
	return &FormFieldRepositoryImpl{db: db}
}

func (r *FormFieldRepositoryImpl) FindByID(id string) (*models.FormField, error) {
	var f models.FormField
	err := r.db.First(&f, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormFieldNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *FormFieldRepositoryImpl) FindForJob(companyID, jobID string) ([]models.FormField, error) {
	var out []models.FormField
	err := r.db.
		Where("company_id = ? AND job_id = ?", companyID, jobID).
		Order("sort_order ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	if len(out) > 0 {
		return out, nil
	}

	// Фолбэк на дефолтную форму компании (job_id пустой)
	err = r.db.
		Where("company_id = ? AND (job_id IS NULL OR job_id = '')", companyID).
		Order("sort_order ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FormFieldRepositoryImpl) FindByCompany(companyID string) ([]models.FormField, error) {
	var out []models.FormField
	err := r.db.
		Where("company_id = ?", companyID).
		Order("job_id ASC, sort_order ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FormFieldRepositoryImpl) Create(f *models.FormField) error {
	return r.db.Create(f).Error
}

func (r *FormFieldRepositoryImpl) Update(f *models.FormField) error {
	return r.db.Save(f).Error
}

func (r *FormFieldRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.FormField{}, "id = ?", id).Error
}

func (r *FormFieldRepositoryImpl) DeleteByCompany(companyID string) error {
	return r.db.Delete(&models.FormField{}, "company_id = ?", companyID).Error
}
