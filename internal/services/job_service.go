package services

import (
	"time"

	"github.com/gosimple/slug"

	"hrcell_backend/internal/logger"
	"hrcell_backend/internal/models"
	"hrcell_backend/internal/repositories"
	"hrcell_backend/internal/services/dto"
	"hrcell_backend/pkg/apperrors"
)

type JobService interface {
	// Create создается только внутри тенанта; super_admin без company_id
	// вакансии не создает
	Create(companyID string, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetByID(companyID, jobID string) (*dto.JobResponse, error)
	List(companyID string, page, pageSize int) ([]dto.JobResponse, error)
	Update(companyID, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	Delete(companyID, jobID string) error

	// ListPublished - открытые вакансии для публичной страницы карьеры
	ListPublished(companyID string) ([]dto.JobResponse, error)
}

type JobServiceImpl struct {
	jobRepo repositories.JobRepository
	appRepo repositories.ApplicationRepository
	now     func() time.Time
}

func NewJobService(jobRepo repositories.JobRepository, appRepo repositories.ApplicationRepository) JobService {
	return &JobServiceImpl{jobRepo: jobRepo, appRepo: appRepo, now: time.Now}
}

func (s *JobServiceImpl) Create(companyID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	if companyID == "" {
		return nil, apperrors.NewForbiddenError("Jobs can only be created within a company")
	}

	closesAt, err := parseTimePtr(req.ClosesAt)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid closes_at format, expected ISO-8601")
	}

	status := models.JobStatus(req.Status)
	if status == "" {
		status = models.JobStatusDraft
	}

	job := &models.Job{
		CompanyID:      companyID,
		Title:          req.Title,
		Slug:           slug.Make(req.Title),
		Department:     req.Department,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Description:    req.Description,
		Requirements:   req.Requirements,
		Status:         status,
		ClosesAt:       closesAt,
	}
	if status == models.JobStatusPublished {
		now := s.now()
		job.PublishedAt = &now
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("job created", "company_id", companyID, "job_id", job.ID, "status", job.Status)
	return s.toResponse(job), nil
}

// findOwned достает вакансию и сверяет владение тенантом.
// Чужая строка - всегда 403, никогда не пустой результат.
func (s *JobServiceImpl) findOwned(companyID, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.NewNotFoundError("Job not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if job.CompanyID != companyID {
		return nil, apperrors.ErrTenantMismatch
	}
	return job, nil
}

func (s *JobServiceImpl) GetByID(companyID, jobID string) (*dto.JobResponse, error) {
	job, err := s.findOwned(companyID, jobID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(job), nil
}

func (s *JobServiceImpl) List(companyID string, page, pageSize int) ([]dto.JobResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}

	jobs, err := s.jobRepo.FindByCompany(companyID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, *s.toResponse(&jobs[i]))
	}
	return out, nil
}

func (s *JobServiceImpl) Update(companyID, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.findOwned(companyID, jobID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
		job.Slug = slug.Make(*req.Title)
	}
	if req.Department != nil {
		job.Department = *req.Department
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.EmploymentType != nil {
		job.EmploymentType = *req.EmploymentType
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements = *req.Requirements
	}
	if req.ClosesAt != nil {
		closesAt, err := parseTimePtr(*req.ClosesAt)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid closes_at format, expected ISO-8601")
		}
		job.ClosesAt = closesAt
	}
	if req.Status != nil {
		newStatus := models.JobStatus(*req.Status)
		if newStatus == models.JobStatusPublished && job.Status != models.JobStatusPublished {
			now := s.now()
			job.PublishedAt = &now
		}
		job.Status = newStatus
	}

	if err := s.jobRepo.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(job), nil
}

func (s *JobServiceImpl) Delete(companyID, jobID string) error {
	job, err := s.findOwned(companyID, jobID)
	if err != nil {
		return err
	}
	if err := s.jobRepo.Delete(job.ID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.Info("job deleted", "company_id", companyID, "job_id", jobID)
	return nil
}

func (s *JobServiceImpl) ListPublished(companyID string) ([]dto.JobResponse, error) {
	jobs, err := s.jobRepo.FindPublishedByCompany(companyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := s.now()
	out := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		if !jobs[i].IsOpen(now) {
			continue
		}
		out = append(out, *s.toResponse(&jobs[i]))
	}
	return out, nil
}

func (s *JobServiceImpl) toResponse(j *models.Job) *dto.JobResponse {
	count, err := s.appRepo.CountByJob(j.ID)
	if err != nil {
		count = 0
	}
	return &dto.JobResponse{
		ID:               j.ID,
		CompanyID:        j.CompanyID,
		Title:            j.Title,
		Slug:             j.Slug,
		Department:       j.Department,
		Location:         j.Location,
		EmploymentType:   j.EmploymentType,
		Description:      j.Description,
		Requirements:     j.Requirements,
		Status:           string(j.Status),
		PublishedAt:      formatTimePtr(j.PublishedAt),
		ClosesAt:         formatTimePtr(j.ClosesAt),
		ApplicationCount: count,
		CreatedAt:        formatTime(j.CreatedAt),
		UpdatedAt:        formatTime(j.UpdatedAt),
	}
}
