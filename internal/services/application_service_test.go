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

type applicationFixture struct {
	appRepo       *fakeApplicationRepo
	jobRepo       *fakeJobRepo
	companyRepo   *fakeCompanyRepo
	formFieldRepo *fakeFormFieldRepo
	activityRepo  *fakeActivityRepo
	now           time.Time
	svc           ApplicationService
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()
	f := &applicationFixture{
		appRepo:       newFakeApplicationRepo(),
		jobRepo:       newFakeJobRepo(),
		companyRepo:   newFakeCompanyRepo(),
		formFieldRepo: newFakeFormFieldRepo(),
		activityRepo:  newFakeActivityRepo(),
		now:           time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	svc := NewApplicationService(
		f.appRepo, f.jobRepo, f.companyRepo, f.formFieldRepo,
		f.activityRepo, nil, "storage/uploads",
	).(*ApplicationServiceImpl)
	svc.now = func() time.Time { return f.now }
	f.svc = svc
	return f
}

func (f *applicationFixture) addCompany(t *testing.T, slug string, licenseEnd *time.Time, active bool) *models.Company {
	t.Helper()
	start := f.now.Add(-30 * 24 * time.Hour)
	c := &models.Company{
		Name: slug, Slug: slug, Domain: slug + ".test",
		IsActive:    active,
		LicenseType: models.LicenseTypeMonthly,
		LicenseStart: &start, LicenseEnd: licenseEnd,
	}
	require.NoError(t, f.companyRepo.Create(c))
	return c
}

func (f *applicationFixture) addJob(t *testing.T, companyID string, status models.JobStatus, closesAt *time.Time) *models.Job {
	t.Helper()
	j := &models.Job{CompanyID: companyID, Title: "Engineer", Status: status, ClosesAt: closesAt}
	require.NoError(t, f.jobRepo.Create(j))
	return j
}

func validSubmit() *dto.SubmitApplicationRequest {
	return &dto.SubmitApplicationRequest{
		CandidateName:  "Jane Doe",
		CandidateEmail: "jane@example.com",
	}
}

func TestSubmit_HappyPath(t *testing.T) {
	t.Parallel()

	f := newApplicationFixture(t)
	company := f.addCompany(t, "acme", nil, true)
	job := f.addJob(t, company.ID, models.JobStatusPublished, nil)

	resp, err := f.svc.Submit("acme", job.ID, validSubmit())
	require.NoError(t, err)
	assert.Equal(t, "new", resp.Status)
	assert.Equal(t, job.ID, resp.JobID)
	assert.Equal(t, company.ID, resp.CompanyID)
	assert.Equal(t, "Engineer", resp.JobTitle)
}

func TestSubmit_LicenseGate(t *testing.T) {
	t.Parallel()

	f := newApplicationFixture(t)

	// Приостановленный тенант
	suspended := f.addCompany(t, "suspended", nil, false)
	job := f.addJob(t, suspended.ID, models.JobStatusPublished, nil)
	_, err := f.svc.Submit("suspended", job.ID, validSubmit())
	assert.ErrorIs(t, err, apperrors.ErrLicenseSuspended)

	// Истекшая лицензия
	expiredEnd := f.now.Add(-48 * time.Hour)
	expired := f.addCompany(t, "expired", &expiredEnd, true)
	job = f.addJob(t, expired.ID, models.JobStatusPublished, nil)
	_, err = f.svc.Submit("expired", job.ID, validSubmit())
	assert.ErrorIs(t, err, apperrors.ErrLicenseExpired)

	// Неизвестный slug
	_, err = f.svc.Submit("ghost", job.ID, validSubmit())
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
}

func TestSubmit_JobMustBeOpenAndOwned(t *testing.T) {
	t.Parallel()

	f := newApplicationFixture(t)
	company := f.addCompany(t, "acme", nil, true)
	other := f.addCompany(t, "other", nil, true)

	// Черновик не принимает отклики
	draft := f.addJob(t, company.ID, models.JobStatusDraft, nil)
	_, err := f.svc.Submit("acme", draft.ID, validSubmit())
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)

	// Закрытая по дедлайну вакансия
	passed := f.now.Add(-time.Hour)
	closed := f.addJob(t, company.ID, models.JobStatusPublished, &passed)
	_, err = f.svc.Submit("acme", closed.ID, validSubmit())
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)

	// Вакансия другого тенанта под чужим slug - 404, без утечки существования
	foreign := f.addJob(t, other.ID, models.JobStatusPublished, nil)
	_, err = f.svc.Submit("acme", foreign.ID, validSubmit())
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
}

func TestSubmit_ValidatesFormAnswers(t *testing.T) {
	t.Parallel()

	f := newApplicationFixture(t)
	company := f.addCompany(t, "acme", nil, true)
	job := f.addJob(t, company.ID, models.JobStatusPublished, nil)

	require.NoError(t, f.formFieldRepo.Create(&models.FormField{
		CompanyID: company.ID, JobID: job.ID,
		Label: "Expected salary", FieldKey: "salary",
		FieldType: models.FieldTypeText, Required: true,
	}))
	require.NoError(t, f.formFieldRepo.Create(&models.FormField{
		CompanyID: company.ID, JobID: job.ID,
		Label: "Work format", FieldKey: "format",
		FieldType: models.FieldTypeSelect,
		Options:   datatypes.NewJSONSlice([]string{"remote", "office"}),
	}))

	// Обязательное поле не заполнено
	req := validSubmit()
	_, err := f.svc.Submit("acme", job.ID, req)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
	assert.Contains(t, appErr.Details, "salary")

	// Select вне списка вариантов
	req.Answers = map[string]interface{}{"salary": "100", "format": "hybrid"}
	_, err = f.svc.Submit("acme", job.ID, req)
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details, "format")

	// Корректные ответы проходят
	req.Answers = map[string]interface{}{"salary": "100", "format": "remote"}
	_, err = f.svc.Submit("acme", job.ID, req)
	assert.NoError(t, err)
}

func TestApplicationAccess_TenantIsolation(t *testing.T) {
	t.Parallel()

	f := newApplicationFixture(t)
	company := f.addCompany(t, "acme", nil, true)
	job := f.addJob(t, company.ID, models.JobStatusPublished, nil)

	created, err := f.svc.Submit("acme", job.ID, validSubmit())
	require.NoError(t, err)

	_, err = f.svc.GetByID("foreign", created.ID)
	assert.ErrorIs(t, err, apperrors.ErrTenantMismatch)
	err = f.svc.Delete("foreign", created.ID)
	assert.ErrorIs(t, err, apperrors.ErrTenantMismatch)

	got, err := f.svc.GetByID(company.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestApplicationUpdate_StatusChangeLogged(t *testing.T) {
	t.Parallel()

	f := newApplicationFixture(t)
	company := f.addCompany(t, "acme", nil, true)
	job := f.addJob(t, company.ID, models.JobStatusPublished, nil)
	created, err := f.svc.Submit("acme", job.ID, validSubmit())
	require.NoError(t, err)

	actor := &models.Session{UserID: "admin-1", Email: "admin@acme.test", Role: "admin", CompanyID: company.ID}

	status := "reviewed"
	updated, err := f.svc.Update(company.ID, created.ID, actor, &dto.UpdateApplicationRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "reviewed", updated.Status)

	entries, _, err := f.activityRepo.FindByCompany(company.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "application.status_changed", entries[0].Action)
	assert.Equal(t, "new", entries[0].Detail["from"])
	assert.Equal(t, "reviewed", entries[0].Detail["to"])

	// Обновление без смены статуса журнал не трогает
	notes := "strong candidate"
	_, err = f.svc.Update(company.ID, created.ID, actor, &dto.UpdateApplicationRequest{Notes: &notes})
	require.NoError(t, err)
	entries, _, err = f.activityRepo.FindByCompany(company.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestApplicationList_FiltersAndPaginates(t *testing.T) {
	t.Parallel()

	f := newApplicationFixture(t)
	company := f.addCompany(t, "acme", nil, true)
	first := f.addJob(t, company.ID, models.JobStatusPublished, nil)
	second := f.addJob(t, company.ID, models.JobStatusPublished, nil)

	for i := 0; i < 3; i++ {
		_, err := f.svc.Submit("acme", first.ID, validSubmit())
		require.NoError(t, err)
	}
	_, err := f.svc.Submit("acme", second.ID, validSubmit())
	require.NoError(t, err)

	all, err := f.svc.List(company.ID, dto.ApplicationListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), all.Total)

	byJob, err := f.svc.List(company.ID, dto.ApplicationListFilter{JobID: second.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), byJob.Total)

	paged, err := f.svc.List(company.ID, dto.ApplicationListFilter{Page: 2, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(4), paged.Total)
	assert.Len(t, paged.Applications, 1)

	_, err = f.svc.List(company.ID, dto.ApplicationListFilter{DateFrom: "garbage"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
}

func TestExportXLSX_ReturnsWorkbook(t *testing.T) {
	t.Parallel()

	f := newApplicationFixture(t)
	company := f.addCompany(t, "acme", nil, true)
	job := f.addJob(t, company.ID, models.JobStatusPublished, nil)
	_, err := f.svc.Submit("acme", job.ID, validSubmit())
	require.NoError(t, err)

	data, err := f.svc.ExportXLSX(company.ID, dto.ApplicationListFilter{})
	require.NoError(t, err)
	// XLSX - это zip-контейнер
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}

func TestExportResumesZIP_EmptyIsError(t *testing.T) {
	t.Parallel()

	f := newApplicationFixture(t)
	company := f.addCompany(t, "acme", nil, true)
	job := f.addJob(t, company.ID, models.JobStatusPublished, nil)
	_, err := f.svc.Submit("acme", job.ID, validSubmit())
	require.NoError(t, err)

	// Отклик без резюме - архивировать нечего
	_, err = f.svc.ExportResumesZIP(company.ID, dto.ApplicationListFilter{})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
}
