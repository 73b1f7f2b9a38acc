package services

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"hrcell_backend/internal/models"
	"hrcell_backend/internal/repositories"
)

// In-memory репозитории: сервисы принимают интерфейсы, юнит-тесты
// гоняются без Postgres.

type fakePrincipalRepo struct {
	principals map[string]*models.Principal
}

func newFakePrincipalRepo() *fakePrincipalRepo {
	return &fakePrincipalRepo{principals: make(map[string]*models.Principal)}
}

func (r *fakePrincipalRepo) FindByID(id string) (*models.Principal, error) {
	if p, ok := r.principals[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repositories.ErrPrincipalNotFound
}

func (r *fakePrincipalRepo) FindByKindAndID(kind models.PrincipalKind, id string) (*models.Principal, error) {
	if p, ok := r.principals[id]; ok && p.Kind == kind {
		cp := *p
		return &cp, nil
	}
	return nil, repositories.ErrPrincipalNotFound
}

func (r *fakePrincipalRepo) FindByKindAndEmail(kind models.PrincipalKind, email string) (*models.Principal, error) {
	for _, p := range r.principals {
		if p.Kind == kind && p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrPrincipalNotFound
}

func (r *fakePrincipalRepo) FindByKind(kind models.PrincipalKind, limit, offset int) ([]models.Principal, error) {
	var out []models.Principal
	for _, p := range r.principals {
		if p.Kind == kind {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePrincipalRepo) FindByCompany(kind models.PrincipalKind, companyID string) ([]models.Principal, error) {
	var out []models.Principal
	for _, p := range r.principals {
		if p.Kind == kind && p.HasCompany(companyID) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePrincipalRepo) CountByKind(kind models.PrincipalKind) (int64, error) {
	var n int64
	for _, p := range r.principals {
		if p.Kind == kind {
			n++
		}
	}
	return n, nil
}

func (r *fakePrincipalRepo) CountByCompany(companyID string) (int64, error) {
	var n int64
	for _, p := range r.principals {
		if p.HasCompany(companyID) {
			n++
		}
	}
	return n, nil
}

func (r *fakePrincipalRepo) Create(p *models.Principal) error {
	if _, err := r.FindByKindAndEmail(p.Kind, p.Email); err == nil {
		return repositories.ErrPrincipalAlreadyExists
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.principals[p.ID] = &cp
	return nil
}

func (r *fakePrincipalRepo) Update(p *models.Principal) error {
	if _, ok := r.principals[p.ID]; !ok {
		return repositories.ErrPrincipalNotFound
	}
	cp := *p
	r.principals[p.ID] = &cp
	return nil
}

func (r *fakePrincipalRepo) Delete(id string) error {
	delete(r.principals, id)
	return nil
}

func (r *fakePrincipalRepo) DeleteByCompany(companyID string) error {
	for id, p := range r.principals {
		if !p.HasCompany(companyID) {
			continue
		}
		var rest []string
		for _, c := range p.Companies {
			if c != companyID {
				rest = append(rest, c)
			}
		}
		if len(rest) == 0 {
			delete(r.principals, id)
		} else {
			p.Companies = rest
		}
	}
	return nil
}

type fakeCompanyRepo struct {
	companies map[string]*models.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]*models.Company)}
}

func (r *fakeCompanyRepo) FindByID(id string) (*models.Company, error) {
	if c, ok := r.companies[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, repositories.ErrCompanyNotFound
}

func (r *fakeCompanyRepo) FindBySlug(slug string) (*models.Company, error) {
	for _, c := range r.companies {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrCompanyNotFound
}

func (r *fakeCompanyRepo) FindByDomain(domain string) (*models.Company, error) {
	for _, c := range r.companies {
		if c.Domain == domain {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrCompanyNotFound
}

func (r *fakeCompanyRepo) FindAll(limit, offset int) ([]models.Company, error) {
	var out []models.Company
	for _, c := range r.companies {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCompanyRepo) FindRecent(limit int) ([]models.Company, error) {
	out, _ := r.FindAll(0, 0)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeCompanyRepo) Count() (int64, error) {
	return int64(len(r.companies)), nil
}

func (r *fakeCompanyRepo) CountActive() (int64, error) {
	var n int64
	for _, c := range r.companies {
		if c.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *fakeCompanyRepo) Create(c *models.Company) error {
	for _, existing := range r.companies {
		if existing.Slug == c.Slug || existing.Domain == c.Domain {
			return repositories.ErrCompanyAlreadyExists
		}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) Update(c *models.Company) error {
	if _, ok := r.companies[c.ID]; !ok {
		return repositories.ErrCompanyNotFound
	}
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) Delete(id string) error {
	delete(r.companies, id)
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (r *fakeSessionRepo) FindByToken(token string) (*models.Session, error) {
	if s, ok := r.sessions[token]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, repositories.ErrSessionNotFound
}

func (r *fakeSessionRepo) Create(s *models.Session) error {
	cp := *s
	r.sessions[s.Token] = &cp
	return nil
}

func (r *fakeSessionRepo) DeleteByToken(token string) error {
	delete(r.sessions, token)
	return nil
}

func (r *fakeSessionRepo) DeleteByCompany(companyID string) error {
	for token, s := range r.sessions {
		if s.CompanyID == companyID {
			delete(r.sessions, token)
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteByUser(userID string) error {
	for token, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, token)
		}
	}
	return nil
}

type fakeJobRepo struct {
	jobs map[string]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*models.Job)}
}

func (r *fakeJobRepo) FindByID(id string) (*models.Job, error) {
	if j, ok := r.jobs[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, repositories.ErrJobNotFound
}

func (r *fakeJobRepo) FindByCompany(companyID string, limit, offset int) ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.jobs {
		if j.CompanyID == companyID {
			out = append(out, *j)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeJobRepo) FindPublishedByCompany(companyID string) ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.jobs {
		if j.CompanyID == companyID && j.Status == models.JobStatusPublished {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) CountByCompany(companyID string) (int64, error) {
	var n int64
	for _, j := range r.jobs {
		if j.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (r *fakeJobRepo) Create(j *models.Job) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	j.CreatedAt = time.Now()
	j.UpdatedAt = j.CreatedAt
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *fakeJobRepo) Update(j *models.Job) error {
	if _, ok := r.jobs[j.ID]; !ok {
		return repositories.ErrJobNotFound
	}
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *fakeJobRepo) Delete(id string) error {
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) DeleteByCompany(companyID string) error {
	for id, j := range r.jobs {
		if j.CompanyID == companyID {
			delete(r.jobs, id)
		}
	}
	return nil
}

type fakeApplicationRepo struct {
	applications map[string]*models.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: make(map[string]*models.Application)}
}

func (r *fakeApplicationRepo) FindByID(id string) (*models.Application, error) {
	if a, ok := r.applications[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r *fakeApplicationRepo) FindWithFilter(filter repositories.ApplicationFilter) ([]models.Application, int64, error) {
	var matched []models.Application
	for _, a := range r.applications {
		if a.CompanyID != filter.CompanyID {
			continue
		}
		if filter.JobID != "" && a.JobID != filter.JobID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		matched = append(matched, *a)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.PageSize
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeApplicationRepo) CountByCompany(companyID string) (int64, error) {
	var n int64
	for _, a := range r.applications {
		if a.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (r *fakeApplicationRepo) CountByJob(jobID string) (int64, error) {
	var n int64
	for _, a := range r.applications {
		if a.JobID == jobID {
			n++
		}
	}
	return n, nil
}

func (r *fakeApplicationRepo) Create(a *models.Application) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	r.applications[a.ID] = &cp
	return nil
}

func (r *fakeApplicationRepo) Update(a *models.Application) error {
	if _, ok := r.applications[a.ID]; !ok {
		return repositories.ErrApplicationNotFound
	}
	cp := *a
	r.applications[a.ID] = &cp
	return nil
}

func (r *fakeApplicationRepo) Delete(id string) error {
	delete(r.applications, id)
	return nil
}

func (r *fakeApplicationRepo) DeleteByCompany(companyID string) error {
	for id, a := range r.applications {
		if a.CompanyID == companyID {
			delete(r.applications, id)
		}
	}
	return nil
}

type fakeFormFieldRepo struct {
	fields map[string]*models.FormField
}

func newFakeFormFieldRepo() *fakeFormFieldRepo {
	return &fakeFormFieldRepo{fields: make(map[string]*models.FormField)}
}

func (r *fakeFormFieldRepo) FindByID(id string) (*models.FormField, error) {
	if f, ok := r.fields[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, repositories.ErrFormFieldNotFound
}

func (r *fakeFormFieldRepo) FindForJob(companyID, jobID string) ([]models.FormField, error) {
	var scoped, fallback []models.FormField
	for _, f := range r.fields {
		if f.CompanyID != companyID {
			continue
		}
		if f.JobID == jobID {
			scoped = append(scoped, *f)
		} else if f.JobID == "" {
			fallback = append(fallback, *f)
		}
	}
	if len(scoped) > 0 {
		return scoped, nil
	}
	return fallback, nil
}

func (r *fakeFormFieldRepo) FindByCompany(companyID string) ([]models.FormField, error) {
	var out []models.FormField
	for _, f := range r.fields {
		if f.CompanyID == companyID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFormFieldRepo) Create(f *models.FormField) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	cp := *f
	r.fields[f.ID] = &cp
	return nil
}

func (r *fakeFormFieldRepo) Update(f *models.FormField) error {
	if _, ok := r.fields[f.ID]; !ok {
		return repositories.ErrFormFieldNotFound
	}
	cp := *f
	r.fields[f.ID] = &cp
	return nil
}

func (r *fakeFormFieldRepo) Delete(id string) error {
	delete(r.fields, id)
	return nil
}

func (r *fakeFormFieldRepo) DeleteByCompany(companyID string) error {
	for id, f := range r.fields {
		if f.CompanyID == companyID {
			delete(r.fields, id)
		}
	}
	return nil
}

type fakeActivityRepo struct {
	entries []models.ActivityLog
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

func (r *fakeActivityRepo) Create(entry *models.ActivityLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeActivityRepo) FindByCompany(companyID string, limit, offset int) ([]models.ActivityLog, int64, error) {
	var out []models.ActivityLog
	for _, e := range r.entries {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeActivityRepo) FindGlobal(limit, offset int) ([]models.ActivityLog, int64, error) {
	return r.entries, int64(len(r.entries)), nil
}

func (r *fakeActivityRepo) DeleteByCompany(companyID string) error {
	var kept []models.ActivityLog
	for _, e := range r.entries {
		if e.CompanyID != companyID {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}
