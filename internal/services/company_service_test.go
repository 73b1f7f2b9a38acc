package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/datatypes"

	"hrcell_backend/internal/models"
	"hrcell_backend/internal/services/dto"
	"hrcell_backend/pkg/apperrors"
)

type companyFixture struct {
	companyRepo   *fakeCompanyRepo
	principalRepo *fakePrincipalRepo
	sessionRepo   *fakeSessionRepo
	svc           CompanyService
}

func newCompanyFixture(t *testing.T) *companyFixture {
	t.Helper()
	f := &companyFixture{
		companyRepo:   newFakeCompanyRepo(),
		principalRepo: newFakePrincipalRepo(),
		sessionRepo:   newFakeSessionRepo(),
	}
	f.svc = NewCompanyService(
		f.companyRepo, f.principalRepo,
		newFakeJobRepo(), newFakeFormFieldRepo(),
		newFakeApplicationRepo(), newFakeActivityRepo(),
		f.sessionRepo,
	)
	return f
}

func TestCompanyCreate_GeneratesSlugAndAdmin(t *testing.T) {
	t.Parallel()

	f := newCompanyFixture(t)
	resp, err := f.svc.Create(&dto.CreateCompanyRequest{
		Name:          "Acme Corp",
		Domain:        "Acme.Test",
		AdminEmail:    "admin@acme.test",
		AdminName:     "First Admin",
		AdminPassword: "secure-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "acme-corp", resp.Slug)
	assert.Equal(t, "acme.test", resp.Domain, "домен нормализуется в нижний регистр")
	assert.Equal(t, "trial", resp.LicenseType)
	assert.Equal(t, "active", resp.LicenseStatus)

	// Первый админ создан с членством
	admin, err := f.principalRepo.FindByKindAndEmail(models.KindCompanyAdmin, "admin@acme.test")
	require.NoError(t, err)
	assert.True(t, admin.HasCompany(resp.ID))
}

func TestCompanyCreate_DuplicateDomainConflicts(t *testing.T) {
	t.Parallel()

	f := newCompanyFixture(t)
	_, err := f.svc.Create(&dto.CreateCompanyRequest{Name: "First", Domain: "shared.test"})
	require.NoError(t, err)

	_, err = f.svc.Create(&dto.CreateCompanyRequest{Name: "Second", Domain: "shared.test"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode)
}

func TestCustomDomains_GlobalCollision(t *testing.T) {
	t.Parallel()

	f := newCompanyFixture(t)
	first, err := f.svc.Create(&dto.CreateCompanyRequest{Name: "First", Domain: "first.test"})
	require.NoError(t, err)
	second, err := f.svc.Create(&dto.CreateCompanyRequest{Name: "Second", Domain: "second.test"})
	require.NoError(t, err)

	// Кастомный домен первой компании
	_, err = f.svc.UpdateCustomDomains(first.ID, &dto.UpdateCustomDomainsRequest{Careers: "jobs.first.test"})
	require.NoError(t, err)

	// Вторая компания не может занять ни careers-домен первой, ни ее основной домен
	_, err = f.svc.UpdateCustomDomains(second.ID, &dto.UpdateCustomDomainsRequest{Main: "jobs.first.test"})
	assert.Error(t, err)
	_, err = f.svc.UpdateCustomDomains(second.ID, &dto.UpdateCustomDomainsRequest{HR: "first.test"})
	assert.Error(t, err)

	// Свой же домен переназначить можно
	_, err = f.svc.UpdateCustomDomains(first.ID, &dto.UpdateCustomDomainsRequest{Careers: "jobs.first.test", HR: "hr.first.test"})
	assert.NoError(t, err)
}

func TestLookupDomain_ResolvesAllSources(t *testing.T) {
	t.Parallel()

	f := newCompanyFixture(t)
	created, err := f.svc.Create(&dto.CreateCompanyRequest{Name: "Acme Corp", Domain: "acme.test"})
	require.NoError(t, err)
	_, err = f.svc.UpdateCustomDomains(created.ID, &dto.UpdateCustomDomainsRequest{Careers: "jobs.acme.test"})
	require.NoError(t, err)

	byDomain, err := f.svc.LookupDomain("acme.test")
	require.NoError(t, err)
	assert.Equal(t, "main", byDomain.PageType)

	bySlug, err := f.svc.LookupDomain("acme-corp")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.CompanyID)

	byCustom, err := f.svc.LookupDomain("JOBS.ACME.TEST")
	require.NoError(t, err)
	assert.Equal(t, "careers", byCustom.PageType)

	_, err = f.svc.LookupDomain("unknown.test")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
}

func TestCompanySuspend_PurgesSessions(t *testing.T) {
	t.Parallel()

	f := newCompanyFixture(t)
	created, err := f.svc.Create(&dto.CreateCompanyRequest{Name: "Acme", Domain: "acme.test"})
	require.NoError(t, err)

	require.NoError(t, f.sessionRepo.Create(&models.Session{
		Token: "tok-1", UserID: "u1", CompanyID: created.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	inactive := false
	_, err = f.svc.Update(created.ID, &dto.UpdateCompanyRequest{IsActive: &inactive})
	require.NoError(t, err)

	_, err = f.sessionRepo.FindByToken("tok-1")
	assert.Error(t, err, "приостановка гасит открытые сессии тенанта")
}

func TestCompanyDelete_CascadesAndPrunesMemberships(t *testing.T) {
	t.Parallel()

	f := newCompanyFixture(t)
	created, err := f.svc.Create(&dto.CreateCompanyRequest{Name: "Acme", Domain: "acme.test"})
	require.NoError(t, err)
	other, err := f.svc.Create(&dto.CreateCompanyRequest{Name: "Other", Domain: "other.test"})
	require.NoError(t, err)

	// Сотрудник только этой компании и сотрудник двух компаний
	require.NoError(t, f.principalRepo.Create(&models.Principal{
		BaseModel: models.BaseModel{ID: "only"},
		Kind:      models.KindEmployee, Email: "only@test", Name: "Only",
		Companies: datatypes.NewJSONSlice([]string{created.ID}),
	}))
	require.NoError(t, f.principalRepo.Create(&models.Principal{
		BaseModel: models.BaseModel{ID: "both"},
		Kind:      models.KindEmployee, Email: "both@test", Name: "Both",
		Companies: datatypes.NewJSONSlice([]string{created.ID, other.ID}),
	}))

	require.NoError(t, f.svc.Delete(created.ID))

	_, err = f.companyRepo.FindByID(created.ID)
	assert.Error(t, err)

	// Осиротевший удален, второй потерял только членство
	_, err = f.principalRepo.FindByID("only")
	assert.Error(t, err)
	both, err := f.principalRepo.FindByID("both")
	require.NoError(t, err)
	assert.False(t, both.HasCompany(created.ID))
	assert.True(t, both.HasCompany(other.ID))
}

func TestDashboardStats(t *testing.T) {
	t.Parallel()

	f := newCompanyFixture(t)
	_, err := f.svc.Create(&dto.CreateCompanyRequest{Name: "Acme", Domain: "acme.test"})
	require.NoError(t, err)
	created, err := f.svc.Create(&dto.CreateCompanyRequest{Name: "Beta", Domain: "beta.test"})
	require.NoError(t, err)

	inactive := false
	_, err = f.svc.Update(created.ID, &dto.UpdateCompanyRequest{IsActive: &inactive})
	require.NoError(t, err)

	stats, err := f.svc.DashboardStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalCompanies)
	assert.Equal(t, int64(1), stats.ActiveCompanies)
	assert.Len(t, stats.RecentCompanies, 2)
}
