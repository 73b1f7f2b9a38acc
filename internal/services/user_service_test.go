package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrcell_backend/internal/models"
	"hrcell_backend/internal/services/dto"
	"hrcell_backend/pkg/apperrors"
)

type userFixture struct {
	principalRepo *fakePrincipalRepo
	companyRepo   *fakeCompanyRepo
	sessionRepo   *fakeSessionRepo
	svc           UserService
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	f := &userFixture{
		principalRepo: newFakePrincipalRepo(),
		companyRepo:   newFakeCompanyRepo(),
		sessionRepo:   newFakeSessionRepo(),
	}
	f.svc = NewUserService(f.principalRepo, f.companyRepo, f.sessionRepo)
	return f
}

func (f *userFixture) addCompany(t *testing.T, name string) *models.Company {
	t.Helper()
	c := &models.Company{Name: name, Slug: name, Domain: name + ".test", IsActive: true}
	require.NoError(t, f.companyRepo.Create(c))
	return c
}

func TestUserCreate_ValidatesCompanies(t *testing.T) {
	t.Parallel()

	f := newUserFixture(t)
	c := f.addCompany(t, "acme")

	resp, err := f.svc.Create(models.KindEmployee, &dto.CreateUserRequest{
		Email: "emp@acme.test", Name: "Employee", Password: "secure-password",
		Companies: []string{c.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID}, resp.Companies)
	assert.True(t, resp.IsActive)

	// Неизвестная компания отклоняется
	_, err = f.svc.Create(models.KindEmployee, &dto.CreateUserRequest{
		Email: "emp2@acme.test", Name: "Employee", Password: "secure-password",
		Companies: []string{"ghost"},
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)

	// У super_admin членства нет даже если переданы
	admin, err := f.svc.Create(models.KindSuperAdmin, &dto.CreateUserRequest{
		Email: "root@hrcell.test", Name: "Root", Password: "secure-password",
		Companies: []string{c.ID},
	})
	require.NoError(t, err)
	assert.Empty(t, admin.Companies)
}

func TestUserCreate_DuplicateEmailWithinKind(t *testing.T) {
	t.Parallel()

	f := newUserFixture(t)
	_, err := f.svc.Create(models.KindCompanyAdmin, &dto.CreateUserRequest{
		Email: "shared@test", Name: "Admin", Password: "secure-password",
	})
	require.NoError(t, err)

	_, err = f.svc.Create(models.KindCompanyAdmin, &dto.CreateUserRequest{
		Email: "shared@test", Name: "Other", Password: "secure-password",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode)

	// Тот же email в другом kind - отдельный аккаунт
	_, err = f.svc.Create(models.KindEmployee, &dto.CreateUserRequest{
		Email: "shared@test", Name: "Employee", Password: "secure-password",
	})
	assert.NoError(t, err)
}

func TestUserUpdate_WeakPasswordRejected(t *testing.T) {
	t.Parallel()

	f := newUserFixture(t)
	created, err := f.svc.Create(models.KindEmployee, &dto.CreateUserRequest{
		Email: "emp@test", Name: "Employee", Password: "secure-password",
	})
	require.NoError(t, err)

	weak := "short"
	_, err = f.svc.Update(models.KindEmployee, created.ID, &dto.UpdateUserRequest{Password: &weak})
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
}

func TestUserDeactivate_PurgesSessions(t *testing.T) {
	t.Parallel()

	f := newUserFixture(t)
	created, err := f.svc.Create(models.KindEmployee, &dto.CreateUserRequest{
		Email: "emp@test", Name: "Employee", Password: "secure-password",
	})
	require.NoError(t, err)

	require.NoError(t, f.sessionRepo.Create(&models.Session{
		Token: "tok-emp", UserID: created.ID, ExpiresAt: time.Now().Add(time.Hour),
	}))

	inactive := false
	_, err = f.svc.Update(models.KindEmployee, created.ID, &dto.UpdateUserRequest{IsActive: &inactive})
	require.NoError(t, err)

	_, err = f.sessionRepo.FindByToken("tok-emp")
	assert.Error(t, err)
}

func TestLastSuperAdminProtection(t *testing.T) {
	t.Parallel()

	f := newUserFixture(t)
	only, err := f.svc.Create(models.KindSuperAdmin, &dto.CreateUserRequest{
		Email: "root@test", Name: "Root", Password: "secure-password",
	})
	require.NoError(t, err)

	// Единственного супер-админа нельзя ни удалить, ни деактивировать
	err = f.svc.Delete(models.KindSuperAdmin, only.ID)
	assert.ErrorIs(t, err, apperrors.ErrLastSuperAdmin)

	inactive := false
	_, err = f.svc.Update(models.KindSuperAdmin, only.ID, &dto.UpdateUserRequest{IsActive: &inactive})
	assert.ErrorIs(t, err, apperrors.ErrLastSuperAdmin)

	// Со вторым админом удаление проходит
	_, err = f.svc.Create(models.KindSuperAdmin, &dto.CreateUserRequest{
		Email: "root2@test", Name: "Root 2", Password: "secure-password",
	})
	require.NoError(t, err)
	assert.NoError(t, f.svc.Delete(models.KindSuperAdmin, only.ID))
}

func TestGrantRevokeCompany(t *testing.T) {
	t.Parallel()

	f := newUserFixture(t)
	first := f.addCompany(t, "first")
	second := f.addCompany(t, "second")

	created, err := f.svc.Create(models.KindCompanyAdmin, &dto.CreateUserRequest{
		Email: "admin@test", Name: "Admin", Password: "secure-password",
		Companies: []string{first.ID},
	})
	require.NoError(t, err)

	granted, err := f.svc.GrantCompany(models.KindCompanyAdmin, created.ID, second.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first.ID, second.ID}, granted.Companies)

	// Повторный grant идемпотентен
	granted, err = f.svc.GrantCompany(models.KindCompanyAdmin, created.ID, second.ID)
	require.NoError(t, err)
	assert.Len(t, granted.Companies, 2)

	// Grant в несуществующую компанию - 404
	_, err = f.svc.GrantCompany(models.KindCompanyAdmin, created.ID, "ghost")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)

	// Super_admin членств не имеет
	_, err = f.svc.GrantCompany(models.KindSuperAdmin, created.ID, first.ID)
	assert.Error(t, err)

	revoked, err := f.svc.RevokeCompany(models.KindCompanyAdmin, created.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID}, revoked.Companies)
}
