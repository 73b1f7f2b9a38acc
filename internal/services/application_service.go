package services

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"hrcell_backend/internal/email"
	"hrcell_backend/internal/export"
	"hrcell_backend/internal/license"
	"hrcell_backend/internal/logger"
	"hrcell_backend/internal/models"
	"hrcell_backend/internal/repositories"
	"hrcell_backend/internal/services/dto"
	"hrcell_backend/pkg/apperrors"
)

type ApplicationService interface {
	// Submit - публичная подача отклика без аутентификации.
	// Лицензия компании проверяется: просроченный тенант откликов не принимает.
	Submit(companySlug, jobID string, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error)

	GetByID(companyID, applicationID string) (*dto.ApplicationResponse, error)
	List(companyID string, filter dto.ApplicationListFilter) (*dto.ApplicationListResponse, error)
	Update(companyID, applicationID string, actor *models.Session, req *dto.UpdateApplicationRequest) (*dto.ApplicationResponse, error)
	Delete(companyID, applicationID string) error

	// ExportXLSX выгружает отфильтрованные отклики в книгу Excel
	ExportXLSX(companyID string, filter dto.ApplicationListFilter) ([]byte, error)
	// ExportResumesZIP собирает резюме отфильтрованных откликов в архив
	ExportResumesZIP(companyID string, filter dto.ApplicationListFilter) ([]byte, error)
}

type ApplicationServiceImpl struct {
	appRepo       repositories.ApplicationRepository
	jobRepo       repositories.JobRepository
	companyRepo   repositories.CompanyRepository
	formFieldRepo repositories.FormFieldRepository
	activityRepo  repositories.ActivityRepository
	mailer        email.Provider
	storageBase   string
	now           func() time.Time
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	companyRepo repositories.CompanyRepository,
	formFieldRepo repositories.FormFieldRepository,
	activityRepo repositories.ActivityRepository,
	mailer email.Provider,
	storageBase string,
) ApplicationService {
	return &ApplicationServiceImpl{
		appRepo:       appRepo,
		jobRepo:       jobRepo,
		companyRepo:   companyRepo,
		formFieldRepo: formFieldRepo,
		activityRepo:  activityRepo,
		mailer:        mailer,
		storageBase:   storageBase,
		now:           time.Now,
	}
}

func (s *ApplicationServiceImpl) Submit(companySlug, jobID string, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error) {
	company, err := s.companyRepo.FindBySlug(companySlug)
	if err != nil {
		return nil, apperrors.NewNotFoundError("Company not found")
	}
	if !company.IsActive {
		return nil, apperrors.ErrLicenseSuspended
	}
	if err := license.Check(company, s.now()); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil || job.CompanyID != company.ID {
		return nil, apperrors.NewNotFoundError("Job not found")
	}
	if !job.IsOpen(s.now()) {
		return nil, apperrors.NewBadRequestError("This job is no longer accepting applications")
	}

	if err := s.validateAnswers(company.ID, job.ID, req.Answers); err != nil {
		return nil, err
	}

	app := &models.Application{
		CompanyID:      company.ID,
		JobID:          job.ID,
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		CandidatePhone: req.CandidatePhone,
		Answers:        datatypes.JSONMap(req.Answers),
		ResumeURL:      req.ResumeURL,
		Status:         models.ApplicationStatusNew,
	}
	if err := s.appRepo.Create(app); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Уведомление и журнал не блокируют ответ кандидату
	go s.notifyReceived(company, job, app)

	logger.Info("application submitted", "company_id", company.ID, "job_id", job.ID, "application_id", app.ID)
	return s.toResponse(app, job.Title), nil
}

// validateAnswers сверяет ответы с формой вакансии: обязательные поля
// заполнены, select-значения из списка вариантов
func (s *ApplicationServiceImpl) validateAnswers(companyID, jobID string, answers map[string]interface{}) error {
	fields, err := s.formFieldRepo.FindForJob(companyID, jobID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	for i := range fields {
		f := &fields[i]
		raw, present := answers[f.FieldKey]
		value, _ := raw.(string)

		if f.Required && (!present || value == "") {
			return apperrors.ValidationError(map[string]string{
				f.FieldKey: fmt.Sprintf("field %q is required", f.Label),
			})
		}
		if f.FieldType == models.FieldTypeSelect && value != "" {
			valid := false
			for _, opt := range f.Options {
				if opt == value {
					valid = true
					break
				}
			}
			if !valid {
				return apperrors.ValidationError(map[string]string{
					f.FieldKey: fmt.Sprintf("value is not an allowed option for %q", f.Label),
				})
			}
		}
	}
	return nil
}

func (s *ApplicationServiceImpl) notifyReceived(company *models.Company, job *models.Job, app *models.Application) {
	if s.mailer == nil {
		return
	}
	err := s.mailer.SendTemplate(
		[]string{app.CandidateEmail},
		"Application received: "+job.Title,
		"application_received",
		email.TemplateData{
			"CandidateName": app.CandidateName,
			"JobTitle":      job.Title,
			"CompanyName":   company.Name,
		},
	)
	if err != nil {
		logger.Warn("application email failed", "application_id", app.ID, "error", err)
	}
}

func (s *ApplicationServiceImpl) findOwned(companyID, applicationID string) (*models.Application, error) {
	app, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.NewNotFoundError("Application not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if app.CompanyID != companyID {
		return nil, apperrors.ErrTenantMismatch
	}
	return app, nil
}

func (s *ApplicationServiceImpl) GetByID(companyID, applicationID string) (*dto.ApplicationResponse, error) {
	app, err := s.findOwned(companyID, applicationID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(app, s.jobTitle(app.JobID)), nil
}

func (s *ApplicationServiceImpl) List(companyID string, filter dto.ApplicationListFilter) (*dto.ApplicationListResponse, error) {
	apps, total, err := s.findFiltered(companyID, filter)
	if err != nil {
		return nil, err
	}

	titles := s.jobTitles(apps)
	resp := &dto.ApplicationListResponse{
		Applications: make([]dto.ApplicationResponse, 0, len(apps)),
		Total:        total,
		Page:         filter.Page,
		PageSize:     filter.PageSize,
	}
	for i := range apps {
		resp.Applications = append(resp.Applications, *s.toResponse(&apps[i], titles[apps[i].JobID]))
	}
	return resp, nil
}

func (s *ApplicationServiceImpl) findFiltered(companyID string, filter dto.ApplicationListFilter) ([]models.Application, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 200 {
		filter.PageSize = 50
	}

	dateFrom, err := parseTimePtr(filter.DateFrom)
	if err != nil {
		return nil, 0, apperrors.NewBadRequestError("Invalid date_from format, expected ISO-8601")
	}
	dateTo, err := parseTimePtr(filter.DateTo)
	if err != nil {
		return nil, 0, apperrors.NewBadRequestError("Invalid date_to format, expected ISO-8601")
	}

	apps, total, err := s.appRepo.FindWithFilter(repositories.ApplicationFilter{
		CompanyID: companyID,
		JobID:     filter.JobID,
		Status:    models.ApplicationStatus(filter.Status),
		DateFrom:  dateFrom,
		DateTo:    dateTo,
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	})
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return apps, total, nil
}

func (s *ApplicationServiceImpl) Update(companyID, applicationID string, actor *models.Session, req *dto.UpdateApplicationRequest) (*dto.ApplicationResponse, error) {
	app, err := s.findOwned(companyID, applicationID)
	if err != nil {
		return nil, err
	}

	statusChanged := false
	oldStatus := app.Status
	if req.Status != nil && models.ApplicationStatus(*req.Status) != app.Status {
		app.Status = models.ApplicationStatus(*req.Status)
		statusChanged = true
	}
	if req.Notes != nil {
		app.Notes = *req.Notes
	}

	if err := s.appRepo.Update(app); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if statusChanged {
		go s.notifyStatusChanged(app)
		s.logActivity(actor, companyID, "application.status_changed", app.ID, map[string]interface{}{
			"from": string(oldStatus),
			"to":   string(app.Status),
		})
	}
	return s.toResponse(app, s.jobTitle(app.JobID)), nil
}

func (s *ApplicationServiceImpl) notifyStatusChanged(app *models.Application) {
	if s.mailer == nil {
		return
	}
	title := s.jobTitle(app.JobID)
	err := s.mailer.SendTemplate(
		[]string{app.CandidateEmail},
		"Application update: "+title,
		"application_status_changed",
		email.TemplateData{
			"CandidateName": app.CandidateName,
			"JobTitle":      title,
			"Status":        string(app.Status),
		},
	)
	if err != nil {
		logger.Warn("status email failed", "application_id", app.ID, "error", err)
	}
}

func (s *ApplicationServiceImpl) logActivity(actor *models.Session, companyID, action, entityID string, detail map[string]interface{}) {
	if actor == nil {
		return
	}
	err := s.activityRepo.Create(&models.ActivityLog{
		CompanyID:  companyID,
		ActorID:    actor.UserID,
		ActorEmail: actor.Email,
		ActorRole:  actor.Role,
		Action:     action,
		Entity:     "application",
		EntityID:   entityID,
		Detail:     datatypes.JSONMap(detail),
	})
	if err != nil {
		logger.Warn("activity log write failed", "action", action, "error", err)
	}
}

func (s *ApplicationServiceImpl) Delete(companyID, applicationID string) error {
	app, err := s.findOwned(companyID, applicationID)
	if err != nil {
		return err
	}
	if err := s.appRepo.Delete(app.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ApplicationServiceImpl) ExportXLSX(companyID string, filter dto.ApplicationListFilter) ([]byte, error) {
	filter.Page = 1
	filter.PageSize = 200
	var all []models.Application
	for {
		apps, total, err := s.findFiltered(companyID, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, apps...)
		if int64(len(all)) >= total || len(apps) == 0 {
			break
		}
		filter.Page++
	}

	data, err := export.ApplicationsXLSX(all, s.jobTitles(all))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return data, nil
}

func (s *ApplicationServiceImpl) ExportResumesZIP(companyID string, filter dto.ApplicationListFilter) ([]byte, error) {
	filter.Page = 1
	filter.PageSize = 200
	var all []models.Application
	for {
		apps, total, err := s.findFiltered(companyID, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, apps...)
		if int64(len(all)) >= total || len(apps) == 0 {
			break
		}
		filter.Page++
	}

	data, err := export.ResumesZIP(all, s.storageBase)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	return data, nil
}

func (s *ApplicationServiceImpl) jobTitle(jobID string) string {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return ""
	}
	return job.Title
}

func (s *ApplicationServiceImpl) jobTitles(apps []models.Application) map[string]string {
	titles := make(map[string]string)
	for i := range apps {
		id := apps[i].JobID
		if _, ok := titles[id]; ok {
			continue
		}
		titles[id] = s.jobTitle(id)
	}
	return titles
}

func (s *ApplicationServiceImpl) toResponse(a *models.Application, jobTitle string) *dto.ApplicationResponse {
	return &dto.ApplicationResponse{
		ID:             a.ID,
		CompanyID:      a.CompanyID,
		JobID:          a.JobID,
		JobTitle:       jobTitle,
		CandidateName:  a.CandidateName,
		CandidateEmail: a.CandidateEmail,
		CandidatePhone: a.CandidatePhone,
		Answers:        a.Answers,
		ResumeURL:      a.ResumeURL,
		Status:         string(a.Status),
		Notes:          a.Notes,
		CreatedAt:      formatTime(a.CreatedAt),
		UpdatedAt:      formatTime(a.UpdatedAt),
	}
}
