package services

import (
	"gorm.io/datatypes"

	"hrcell_backend/internal/models"
	"hrcell_backend/internal/repositories"
	"hrcell_backend/internal/services/dto"
	"hrcell_backend/pkg/apperrors"
)

type FormFieldService interface {
	Create(companyID string, req *dto.CreateFormFieldRequest) (*models.FormField, error)
	// ListForJob возвращает форму вакансии либо дефолтную форму компании
	ListForJob(companyID, jobID string) ([]models.FormField, error)
	ListByCompany(companyID string) ([]models.FormField, error)
	Update(companyID, fieldID string, req *dto.UpdateFormFieldRequest) (*models.FormField, error)
	Delete(companyID, fieldID string) error
}

type FormFieldServiceImpl struct {
	formFieldRepo repositories.FormFieldRepository
	jobRepo       repositories.JobRepository
}

func NewFormFieldService(formFieldRepo repositories.FormFieldRepository, jobRepo repositories.JobRepository) FormFieldService {
	return &FormFieldServiceImpl{formFieldRepo: formFieldRepo, jobRepo: jobRepo}
}

func (s *FormFieldServiceImpl) Create(companyID string, req *dto.CreateFormFieldRequest) (*models.FormField, error) {
	// Поле с job_id привязано к вакансии; привязка к чужой вакансии - 403
	if req.JobID != "" {
		job, err := s.jobRepo.FindByID(req.JobID)
		if err != nil {
			return nil, apperrors.NewNotFoundError("Job not found")
		}
		if job.CompanyID != companyID {
			return nil, apperrors.ErrTenantMismatch
		}
	}

	if req.FieldType == string(models.FieldTypeSelect) && len(req.Options) == 0 {
		return nil, apperrors.NewBadRequestError("Select fields require at least one option")
	}

	field := &models.FormField{
		CompanyID: companyID,
		JobID:     req.JobID,
		Label:     req.Label,
		FieldKey:  req.FieldKey,
		FieldType: models.FieldType(req.FieldType),
		Options:   datatypes.NewJSONSlice(req.Options),
		Required:  req.Required,
		SortOrder: req.SortOrder,
	}
	if err := s.formFieldRepo.Create(field); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return field, nil
}

func (s *FormFieldServiceImpl) ListForJob(companyID, jobID string) ([]models.FormField, error) {
	fields, err := s.formFieldRepo.FindForJob(companyID, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return fields, nil
}

func (s *FormFieldServiceImpl) ListByCompany(companyID string) ([]models.FormField, error) {
	fields, err := s.formFieldRepo.FindByCompany(companyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return fields, nil
}

func (s *FormFieldServiceImpl) findOwned(companyID, fieldID string) (*models.FormField, error) {
	field, err := s.formFieldRepo.FindByID(fieldID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrFormFieldNotFound) {
			return nil, apperrors.NewNotFoundError("Form field not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if field.CompanyID != companyID {
		return nil, apperrors.ErrTenantMismatch
	}
	return field, nil
}

func (s *FormFieldServiceImpl) Update(companyID, fieldID string, req *dto.UpdateFormFieldRequest) (*models.FormField, error) {
	field, err := s.findOwned(companyID, fieldID)
	if err != nil {
		return nil, err
	}

	if req.Label != nil {
		field.Label = *req.Label
	}
	if req.FieldType != nil {
		field.FieldType = models.FieldType(*req.FieldType)
	}
	if req.Options != nil {
		field.Options = datatypes.NewJSONSlice(*req.Options)
	}
	if req.Required != nil {
		field.Required = *req.Required
	}
	if req.SortOrder != nil {
		field.SortOrder = *req.SortOrder
	}

	if field.FieldType == models.FieldTypeSelect && len(field.Options) == 0 {
		return nil, apperrors.NewBadRequestError("Select fields require at least one option")
	}

	if err := s.formFieldRepo.Update(field); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return field, nil
}

func (s *FormFieldServiceImpl) Delete(companyID, fieldID string) error {
	field, err := s.findOwned(companyID, fieldID)
	if err != nil {
		return err
	}
	if err := s.formFieldRepo.Delete(field.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
