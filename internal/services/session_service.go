package services

import (
	"time"

	"hrcell_backend/internal/auth"
	"hrcell_backend/internal/logger"
	"hrcell_backend/internal/models"
	"hrcell_backend/internal/repositories"
	"hrcell_backend/pkg/apperrors"
)

// SessionTTL - фиксированное время жизни сессии. Скользящего продления нет:
// через 7 дней релогин независимо от активности.
const SessionTTL = 7 * 24 * time.Hour

type SessionService interface {
	// Create выпускает новую сессию для связки (user, company, role)
	Create(user *models.Principal, company *models.Company, role models.Role) (*models.Session, error)

	// Resolve находит сессию по токену. Просроченная строка удаляется
	// при чтении (повторный Resolve того же токена даст InvalidSession).
	Resolve(token string) (*models.Session, error)

	// Revoke идемпотентно удаляет сессию
	Revoke(token string) error
}

type SessionServiceImpl struct {
	sessionRepo repositories.SessionRepository
	now         func() time.Time
}

func NewSessionService(sessionRepo repositories.SessionRepository) SessionService {
	return &SessionServiceImpl{sessionRepo: sessionRepo, now: time.Now}
}

// NewSessionServiceWithClock - конструктор с инжектируемыми часами (для тестов)
func NewSessionServiceWithClock(sessionRepo repositories.SessionRepository, now func() time.Time) SessionService {
	return &SessionServiceImpl{sessionRepo: sessionRepo, now: now}
}

func (s *SessionServiceImpl) Create(user *models.Principal, company *models.Company, role models.Role) (*models.Session, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	session := &models.Session{
		Token:       token,
		UserID:      user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Picture:     user.Picture,
		CompanyID:   company.ID,
		CompanyName: company.Name,
		Role:        role,
		ExpiresAt:   s.now().Add(SessionTTL),
		CreatedAt:   s.now(),
	}

	if err := s.sessionRepo.Create(session); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return session, nil
}

func (s *SessionServiceImpl) Resolve(token string) (*models.Session, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	session, err := s.sessionRepo.FindByToken(token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSessionNotFound) {
			return nil, apperrors.ErrInvalidSession
		}
		return nil, apperrors.InternalError(err)
	}

	if s.now().After(session.ExpiresAt) {
		// Ленивая эвикция: фоновой чистки нет, просроченное убираем при чтении
		if err := s.sessionRepo.DeleteByToken(token); err != nil {
			logger.Warn("failed to evict expired session", "error", err)
		}
		return nil, apperrors.ErrSessionExpired
	}

	return session, nil
}

func (s *SessionServiceImpl) Revoke(token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessionRepo.DeleteByToken(token); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
