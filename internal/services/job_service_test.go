package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrcell_backend/internal/services/dto"
	"hrcell_backend/pkg/apperrors"
)

func newJobService(jobRepo *fakeJobRepo, now time.Time) JobService {
	svc := NewJobService(jobRepo, newFakeApplicationRepo()).(*JobServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

func TestJobCreate_RequiresCompany(t *testing.T) {
	t.Parallel()

	svc := newJobService(newFakeJobRepo(), time.Now())
	_, err := svc.Create("", &dto.CreateJobRequest{Title: "Engineer", Description: "..."})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode)
}

func TestJobCreate_PublishedGetsTimestamp(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeJobRepo()
	svc := newJobService(repo, now)

	draft, err := svc.Create("c1", &dto.CreateJobRequest{Title: "Backend Engineer", Description: "..."})
	require.NoError(t, err)
	assert.Equal(t, "draft", draft.Status)
	assert.Empty(t, draft.PublishedAt)
	assert.Equal(t, "backend-engineer", draft.Slug)

	published, err := svc.Create("c1", &dto.CreateJobRequest{Title: "QA", Description: "...", Status: "published"})
	require.NoError(t, err)
	assert.NotEmpty(t, published.PublishedAt)

	// Перевод draft -> published проставляет PublishedAt один раз
	status := "published"
	updated, err := svc.Update("c1", draft.ID, &dto.UpdateJobRequest{Status: &status})
	require.NoError(t, err)
	assert.NotEmpty(t, updated.PublishedAt)

	firstPublish := updated.PublishedAt
	updated, err = svc.Update("c1", draft.ID, &dto.UpdateJobRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, firstPublish, updated.PublishedAt)
}

func TestJobAccess_TenantIsolation(t *testing.T) {
	t.Parallel()

	repo := newFakeJobRepo()
	svc := newJobService(repo, time.Now())

	created, err := svc.Create("c1", &dto.CreateJobRequest{Title: "Engineer", Description: "..."})
	require.NoError(t, err)

	// Чужой тенант получает 403, а не пустой ответ и не 404
	_, err = svc.GetByID("c2", created.ID)
	assert.ErrorIs(t, err, apperrors.ErrTenantMismatch)
	_, err = svc.Update("c2", created.ID, &dto.UpdateJobRequest{})
	assert.ErrorIs(t, err, apperrors.ErrTenantMismatch)
	err = svc.Delete("c2", created.ID)
	assert.ErrorIs(t, err, apperrors.ErrTenantMismatch)

	// Несуществующий id - 404
	_, err = svc.GetByID("c1", "missing")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)

	// Своя вакансия доступна
	got, err := svc.GetByID("c1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestListPublished_FiltersClosedAndDrafts(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeJobRepo()
	svc := newJobService(repo, now)

	_, err := svc.Create("c1", &dto.CreateJobRequest{Title: "Draft", Description: "..."})
	require.NoError(t, err)
	open, err := svc.Create("c1", &dto.CreateJobRequest{Title: "Open", Description: "...", Status: "published"})
	require.NoError(t, err)
	_, err = svc.Create("c1", &dto.CreateJobRequest{
		Title: "Expired", Description: "...", Status: "published",
		ClosesAt: now.Add(-time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)
	_, err = svc.Create("c2", &dto.CreateJobRequest{Title: "Foreign", Description: "...", Status: "published"})
	require.NoError(t, err)

	jobs, err := svc.ListPublished("c1")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, open.ID, jobs[0].ID)
}

func TestJobUpdate_BadClosesAt(t *testing.T) {
	t.Parallel()

	svc := newJobService(newFakeJobRepo(), time.Now())
	created, err := svc.Create("c1", &dto.CreateJobRequest{Title: "Engineer", Description: "..."})
	require.NoError(t, err)

	bad := "not-a-date"
	_, err = svc.Update("c1", created.ID, &dto.UpdateJobRequest{ClosesAt: &bad})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
}
