package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrcell_backend/internal/models"
	"hrcell_backend/pkg/apperrors"
)

func sessionFixtures() (*models.Principal, *models.Company) {
	user := &models.Principal{
		BaseModel: models.BaseModel{ID: "user-1"},
		Kind:      models.KindCompanyAdmin,
		Email:     "admin@acme.test",
		Name:      "Acme Admin",
	}
	company := &models.Company{
		BaseModel: models.BaseModel{ID: "company-1"},
		Name:      "Acme",
		Slug:      "acme",
		IsActive:  true,
	}
	return user, company
}

func TestSessionService_CreateAndResolve(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc := NewSessionServiceWithClock(newFakeSessionRepo(), func() time.Time { return now })

	user, company := sessionFixtures()
	session, err := svc.Create(user, company, models.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, now.Add(SessionTTL), session.ExpiresAt)

	resolved, err := svc.Resolve(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", resolved.UserID)
	assert.Equal(t, "company-1", resolved.CompanyID)
	assert.Equal(t, models.RoleAdmin, resolved.Role)
}

func TestSessionService_EmptyTokenIsUnauthenticated(t *testing.T) {
	t.Parallel()

	svc := NewSessionService(newFakeSessionRepo())

	_, err := svc.Resolve("")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestSessionService_UnknownTokenIsInvalid(t *testing.T) {
	t.Parallel()

	svc := NewSessionService(newFakeSessionRepo())

	_, err := svc.Resolve("no-such-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidSession)
}

func TestSessionService_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	repo := newFakeSessionRepo()
	svc := NewSessionServiceWithClock(repo, func() time.Time { return now })

	user, company := sessionFixtures()
	session, err := svc.Create(user, company, models.RoleEmployee)
	require.NoError(t, err)

	// За секунду до истечения сессия еще жива
	now = session.ExpiresAt.Add(-time.Second)
	_, err = svc.Resolve(session.Token)
	assert.NoError(t, err)

	// Секундой после - просрочена
	now = session.ExpiresAt.Add(time.Second)
	_, err = svc.Resolve(session.Token)
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
}

func TestSessionService_LazyEviction(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	repo := newFakeSessionRepo()
	svc := NewSessionServiceWithClock(repo, func() time.Time { return now })

	user, company := sessionFixtures()
	session, err := svc.Create(user, company, models.RoleAdmin)
	require.NoError(t, err)

	now = now.Add(SessionTTL + time.Hour)

	// Первое чтение просроченного токена удаляет строку
	_, err = svc.Resolve(session.Token)
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)

	// Второе чтение того же токена - строки уже нет
	_, err = svc.Resolve(session.Token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSession)
}

func TestSessionService_RevokeIsIdempotent(t *testing.T) {
	t.Parallel()

	svc := NewSessionService(newFakeSessionRepo())

	user, company := sessionFixtures()
	session, err := svc.Create(user, company, models.RoleAdmin)
	require.NoError(t, err)

	assert.NoError(t, svc.Revoke(session.Token))
	assert.NoError(t, svc.Revoke(session.Token), "повторный logout не ошибка")
	assert.NoError(t, svc.Revoke(""))

	_, err = svc.Resolve(session.Token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSession)
}
