package repositories

import (
	"errors"

	"hrcell_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	FindByToken(token string) (*models.Session, error)
	Create(s *models.Session) error
	// DeleteByToken идемпотентен: удаление несуществующего токена - не ошибка
	DeleteByToken(token string) error
	DeleteByCompany(companyID string) error
	DeleteByUser(userID string) error
}

type SessionRepositoryImpl struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

func (r *SessionRepositoryImpl) FindByToken(token string) (*models.Session, error) {
	var s models.Session
	err := r.db.First(&s, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepositoryImpl) Create(s *models.Session) error {
	return r.db.Create(s).Error
}

func (r *SessionRepositoryImpl) DeleteByToken(token string) error {
	return r.db.Delete(&models.Session{}, "token = ?", token).Error
}

func (r *SessionRepositoryImpl) DeleteByCompany(companyID string) error {
	return r.db.Delete(&models.Session{}, "company_id = ?", companyID).Error
}

func (r *SessionRepositoryImpl) DeleteByUser(userID string) error {
	return r.db.Delete(&models.Session{}, "user_id = ?", userID).Error
}
