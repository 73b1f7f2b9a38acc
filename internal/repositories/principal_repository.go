package repositories

import (
	"errors"

	"hrcell_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPrincipalNotFound      = errors.New("principal not found")
	ErrPrincipalAlreadyExists = errors.New("principal already exists")
)

type PrincipalRepository interface {
	FindByID(id string) (*models.Principal, error)
	FindByKindAndID(kind models.PrincipalKind, id string) (*models.Principal, error)
	FindByKindAndEmail(kind models.PrincipalKind, email string) (*models.Principal, error)
	FindByKind(kind models.PrincipalKind, limit, offset int) ([]models.Principal, error)
	FindByCompany(kind models.PrincipalKind, companyID string) ([]models.Principal, error)
	CountByKind(kind models.PrincipalKind) (int64, error)
	CountByCompany(companyID string) (int64, error)
	Create(p *models.Principal) error
	Update(p *models.Principal) error
	Delete(id string) error
	DeleteByCompany(companyID string) error
}

type PrincipalRepositoryImpl struct {
	db *gorm.DB
}

func NewPrincipalRepository(db *gorm.DB) PrincipalRepository {
	return &PrincipalRepositoryImpl{db: db}
}

func (r *PrincipalRepositoryImpl) FindByID(id string) (*models.Principal, error) {
	var p models.Principal
	err := r.db.First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPrincipalNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PrincipalRepositoryImpl) FindByKindAndID(kind models.PrincipalKind, id string) (*models.Principal, error) {
	var p models.Principal
	err := r.db.First(&p, "kind = ? AND id = ?", kind, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPrincipalNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PrincipalRepositoryImpl) FindByKindAndEmail(kind models.PrincipalKind, email string) (*models.Principal, error) {
	var p models.Principal
	err := r.db.First(&p, "kind = ? AND email = ?", kind, email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPrincipalNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PrincipalRepositoryImpl) FindByKind(kind models.PrincipalKind, limit, offset int) ([]models.Principal, error) {
	var out []models.Principal
	q := r.db.Where("kind = ?", kind).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByCompany ищет принципалов, у которых companyID входит в jsonb-массив companies
func (r *PrincipalRepositoryImpl) FindByCompany(kind models.PrincipalKind, companyID string) ([]models.Principal, error) {
	var out []models.Principal
	err := r.db.
		Where("kind = ? AND companies @> ?", kind, `["`+companyID+`"]`).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PrincipalRepositoryImpl) CountByKind(kind models.PrincipalKind) (int64, error) {
	var n int64
	err := r.db.Model(&models.Principal{}).Where("kind = ?", kind).Count(&n).Error
	return n, err
}

func (r *PrincipalRepositoryImpl) CountByCompany(companyID string) (int64, error) {
	var n int64
	err := r.db.Model(&models.Principal{}).
		Where("companies @> ?", `["`+companyID+`"]`).
		Count(&n).Error
	return n, err
}

func (r *PrincipalRepositoryImpl) Create(p *models.Principal) error {
	var existing models.Principal
	if err := r.db.Where("kind = ? AND email = ?", p.Kind, p.Email).First(&existing).Error; err == nil {
		return ErrPrincipalAlreadyExists
	}
	return r.db.Create(p).Error
}

func (r *PrincipalRepositoryImpl) Update(p *models.Principal) error {
	return r.db.Save(p).Error
}

func (r *PrincipalRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Principal{}, "id = ?", id).Error
}

// DeleteByCompany - каскад при удалении компании: убираем компанию из
// списков доступа, осиротевших принципалов (пустой список) удаляем целиком.
func (r *PrincipalRepositoryImpl) DeleteByCompany(companyID string) error {
	var principals []models.Principal
	if err := r.db.
		Where("companies @> ?", `["`+companyID+`"]`).
		Find(&principals).Error; err != nil {
		return err
	}

	for i := range principals {
		p := &principals[i]
		remaining := p.Companies[:0]
		for _, id := range p.Companies {
			if id != companyID {
				remaining = append(remaining, id)
			}
		}
		if len(remaining) == 0 {
			if err := r.db.Delete(&models.Principal{}, "id = ?", p.ID).Error; err != nil {
				return err
			}
			continue
		}
		p.Companies = remaining
		if err := r.db.Save(p).Error; err != nil {
			return err
		}
	}
	return nil
}
