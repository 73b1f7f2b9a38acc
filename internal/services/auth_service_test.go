package services

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrcell_backend/internal/auth"
	"hrcell_backend/internal/models"
	"hrcell_backend/internal/services/dto"
	"hrcell_backend/pkg/apperrors"
)

func newAuthFixture(t *testing.T) (*fakePrincipalRepo, AuthService) {
	t.Helper()
	repo := newFakePrincipalRepo()
	svc := NewAuthService(repo, auth.NewTokenIssuer("test-secret"))
	return repo, svc
}

func seedSuperAdmin(t *testing.T, repo *fakePrincipalRepo, password string) *models.Principal {
	t.Helper()
	p := &models.Principal{
		BaseModel:    models.BaseModel{ID: "root-1"},
		Kind:         models.KindSuperAdmin,
		Email:        "root@test",
		Name:         "Root",
		PasswordHash: mustHash(t, password),
		IsActive:     true,
	}
	require.NoError(t, repo.Create(p))
	return p
}

func TestSuperAdminLogin_IssuesToken(t *testing.T) {
	t.Parallel()

	repo, svc := newAuthFixture(t)
	seedSuperAdmin(t, repo, "root-password")

	resp, err := svc.SuperAdminLogin(&dto.SuperAdminLoginRequest{Email: "root@test", Password: "root-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.False(t, resp.Requires2FA)
	require.NotNil(t, resp.User)
	assert.Equal(t, "root@test", resp.User.Email)
}

func TestSuperAdminLogin_GenericRejection(t *testing.T) {
	t.Parallel()

	repo, svc := newAuthFixture(t)
	seedSuperAdmin(t, repo, "root-password")

	_, errWrong := svc.SuperAdminLogin(&dto.SuperAdminLoginRequest{Email: "root@test", Password: "bad-password"})
	_, errGhost := svc.SuperAdminLogin(&dto.SuperAdminLoginRequest{Email: "ghost@test", Password: "bad-password"})

	assert.ErrorIs(t, errWrong, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errGhost, apperrors.ErrInvalidCredentials)
}

func TestSuperAdminLogin_TwoFactorFlow(t *testing.T) {
	t.Parallel()

	repo, svc := newAuthFixture(t)
	seedSuperAdmin(t, repo, "root-password")

	setup, err := svc.TwoFactorSetup("root-1")
	require.NoError(t, err)
	assert.NotEmpty(t, setup.Secret)
	assert.Contains(t, setup.OTPAuthURL, "otpauth://")

	// До подтверждения кодом 2FA не активен, вход идет без кода
	resp, err := svc.SuperAdminLogin(&dto.SuperAdminLoginRequest{Email: "root@test", Password: "root-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	// Включаем настоящим кодом
	code, err := totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, svc.TwoFactorEnable("root-1", code))

	// Теперь вход без кода возвращает requires_2fa и никакого токена
	resp, err = svc.SuperAdminLogin(&dto.SuperAdminLoginRequest{Email: "root@test", Password: "root-password"})
	require.NoError(t, err)
	assert.True(t, resp.Requires2FA)
	assert.Empty(t, resp.Token)

	// Вход с кодом дает токен
	code, err = totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	resp, err = svc.SuperAdminLogin(&dto.SuperAdminLoginRequest{Email: "root@test", Password: "root-password", TOTPCode: code})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	// Неверный код - типизированная ошибка
	_, err = svc.SuperAdminLogin(&dto.SuperAdminLoginRequest{Email: "root@test", Password: "root-password", TOTPCode: "000000"})
	assert.ErrorIs(t, err, apperrors.ErrTwoFactorInvalid)
}

func TestResolveBearer_RejectsDeactivated(t *testing.T) {
	t.Parallel()

	repo, svc := newAuthFixture(t)
	admin := seedSuperAdmin(t, repo, "root-password")

	resp, err := svc.SuperAdminLogin(&dto.SuperAdminLoginRequest{Email: "root@test", Password: "root-password"})
	require.NoError(t, err)

	claims, principal, err := svc.ResolveBearer(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "root-1", claims.UserID)
	assert.Equal(t, models.RoleSuperAdmin, claims.Role)
	assert.Equal(t, "root@test", principal.Email)

	// Деактивация отсекает даже живой токен
	admin.IsActive = false
	require.NoError(t, repo.Update(admin))

	_, _, err = svc.ResolveBearer(resp.Token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	repo, svc := newAuthFixture(t)
	seedSuperAdmin(t, repo, "old-password")

	// Неверный текущий пароль
	err := svc.ChangePassword(models.KindSuperAdmin, "root-1", &dto.ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "new-password-1",
	})
	assert.Error(t, err)

	// Слабый новый пароль
	err = svc.ChangePassword(models.KindSuperAdmin, "root-1", &dto.ChangePasswordRequest{
		CurrentPassword: "old-password", NewPassword: "short",
	})
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)

	// Успех: старый пароль перестает работать
	err = svc.ChangePassword(models.KindSuperAdmin, "root-1", &dto.ChangePasswordRequest{
		CurrentPassword: "old-password", NewPassword: "new-password-1",
	})
	require.NoError(t, err)

	_, err = svc.SuperAdminLogin(&dto.SuperAdminLoginRequest{Email: "root@test", Password: "old-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = svc.SuperAdminLogin(&dto.SuperAdminLoginRequest{Email: "root@test", Password: "new-password-1"})
	assert.NoError(t, err)
}
