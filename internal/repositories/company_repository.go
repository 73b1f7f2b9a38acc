package repositories

import (
	"errors"

	"hrcell_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound      = errors.New("company not found")
	ErrCompanyAlreadyExists = errors.New("company already exists")
)

type CompanyRepository interface {
	FindByID(id string) (*models.Company, error)
	FindBySlug(slug string) (*models.Company, error)
	FindByDomain(domain string) (*models.Company, error)
	FindAll(limit, offset int) ([]models.Company, error)
	FindRecent(limit int) ([]models.Company, error)
	Count() (int64, error)
	CountActive() (int64, error)
	Create(c *models.Company) error
	Update(c *models.Company) error
	Delete(id string) error
}

type CompanyRepositoryImpl struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &CompanyRepositoryImpl{db: db}
}

func (r *CompanyRepositoryImpl) FindByID(id string) (*models.Company, error) {
	var c models.Company
	err := r.db.First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepositoryImpl) FindBySlug(slug string) (*models.Company, error) {
	var c models.Company
	err := r.db.First(&c, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepositoryImpl) FindByDomain(domain string) (*models.Company, error) {
	var c models.Company
	err := r.db.First(&c, "domain = ?", domain).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepositoryImpl) FindAll(limit, offset int) ([]models.Company, error) {
	var out []models.Company
	q := r.db.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CompanyRepositoryImpl) FindRecent(limit int) ([]models.Company, error) {
	var out []models.Company
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CompanyRepositoryImpl) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Company{}).Count(&n).Error
	return n, err
}

func (r *CompanyRepositoryImpl) CountActive() (int64, error) {
	var n int64
	err := r.db.Model(&models.Company{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}

func (r *CompanyRepositoryImpl) Create(c *models.Company) error {
	var existing models.Company
	if err := r.db.Where("slug = ? OR domain = ?", c.Slug, c.Domain).First(&existing).Error; err == nil {
		return ErrCompanyAlreadyExists
	}
	return r.db.Create(c).Error
}

func (r *CompanyRepositoryImpl) Update(c *models.Company) error {
	return r.db.Save(c).Error
}

func (r *CompanyRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Company{}, "id = ?", id).Error
}
