package services

import (
	"gorm.io/datatypes"

	"hrcell_backend/internal/auth"
	"hrcell_backend/internal/logger"
	"hrcell_backend/internal/models"
	"hrcell_backend/internal/repositories"
	"hrcell_backend/internal/services/dto"
	"hrcell_backend/pkg/apperrors"
)

type UserService interface {
	// Create заводит принципала данного kind. Для super_admin список
	// компаний игнорируется.
	Create(kind models.PrincipalKind, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByID(kind models.PrincipalKind, id string) (*dto.UserResponse, error)
	List(kind models.PrincipalKind, page, pageSize int) ([]dto.UserResponse, error)
	// ListByCompany - принципалы kind с членством в компании (тенантский скоуп)
	ListByCompany(kind models.PrincipalKind, companyID string) ([]dto.UserResponse, error)
	Update(kind models.PrincipalKind, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	// Delete отклоняет удаление последнего активного super_admin
	Delete(kind models.PrincipalKind, id string) error

	// GrantCompany/RevokeCompany управляют членством в тенанте
	GrantCompany(kind models.PrincipalKind, id, companyID string) (*dto.UserResponse, error)
	RevokeCompany(kind models.PrincipalKind, id, companyID string) (*dto.UserResponse, error)
}

type UserServiceImpl struct {
	principalRepo repositories.PrincipalRepository
	companyRepo   repositories.CompanyRepository
	sessionRepo   repositories.SessionRepository
}

func NewUserService(
	principalRepo repositories.PrincipalRepository,
	companyRepo repositories.CompanyRepository,
	sessionRepo repositories.SessionRepository,
) UserService {
	return &UserServiceImpl{
		principalRepo: principalRepo,
		companyRepo:   companyRepo,
		sessionRepo:   sessionRepo,
	}
}

func (s *UserServiceImpl) Create(kind models.PrincipalKind, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	companies := req.Companies
	if kind == models.KindSuperAdmin {
		companies = nil
	}
	for _, companyID := range companies {
		if _, err := s.companyRepo.FindByID(companyID); err != nil {
			return nil, apperrors.NewBadRequestError("Unknown company: " + companyID)
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	p := &models.Principal{
		Kind:         kind,
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Companies:    datatypes.NewJSONSlice(companies),
		IsActive:     isActive,
		AuthProvider: models.AuthProviderEmail,
	}
	if err := s.principalRepo.Create(p); err != nil {
		if apperrors.Is(err, repositories.ErrPrincipalAlreadyExists) {
			return nil, apperrors.NewConflictError("An account with this email already exists")
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("principal created", "kind", kind, "principal_id", p.ID)
	return toUserResponse(p), nil
}

func (s *UserServiceImpl) findByKind(kind models.PrincipalKind, id string) (*models.Principal, error) {
	p, err := s.principalRepo.FindByKindAndID(kind, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPrincipalNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return p, nil
}

func (s *UserServiceImpl) GetByID(kind models.PrincipalKind, id string) (*dto.UserResponse, error) {
	p, err := s.findByKind(kind, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(p), nil
}

func (s *UserServiceImpl) List(kind models.PrincipalKind, page, pageSize int) ([]dto.UserResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}

	principals, err := s.principalRepo.FindByKind(kind, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.UserResponse, 0, len(principals))
	for i := range principals {
		out = append(out, *toUserResponse(&principals[i]))
	}
	return out, nil
}

func (s *UserServiceImpl) ListByCompany(kind models.PrincipalKind, companyID string) ([]dto.UserResponse, error) {
	principals, err := s.principalRepo.FindByCompany(kind, companyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.UserResponse, 0, len(principals))
	for i := range principals {
		out = append(out, *toUserResponse(&principals[i]))
	}
	return out, nil
}

func (s *UserServiceImpl) Update(kind models.PrincipalKind, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	p, err := s.findByKind(kind, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != p.Email {
		if _, err := s.principalRepo.FindByKindAndEmail(kind, *req.Email); err == nil {
			return nil, apperrors.NewConflictError("An account with this email already exists")
		}
		p.Email = *req.Email
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Password != nil {
		if err := auth.ValidatePassword(*req.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		p.PasswordHash = hash
	}
	if req.Companies != nil && kind != models.KindSuperAdmin {
		for _, companyID := range *req.Companies {
			if _, err := s.companyRepo.FindByID(companyID); err != nil {
				return nil, apperrors.NewBadRequestError("Unknown company: " + companyID)
			}
		}
		p.Companies = datatypes.NewJSONSlice(*req.Companies)
	}
	if req.IsActive != nil {
		if kind == models.KindSuperAdmin && !*req.IsActive {
			if err := s.ensureNotLastSuperAdmin(p.ID); err != nil {
				return nil, err
			}
		}
		p.IsActive = *req.IsActive
		if !*req.IsActive {
			// Деактивация немедленно гасит открытые сессии принципала
			if err := s.sessionRepo.DeleteByUser(p.ID); err != nil {
				logger.Error("session purge on deactivate failed", "principal_id", p.ID, "error", err)
			}
		}
	}

	if err := s.principalRepo.Update(p); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toUserResponse(p), nil
}

func (s *UserServiceImpl) Delete(kind models.PrincipalKind, id string) error {
	p, err := s.findByKind(kind, id)
	if err != nil {
		return err
	}

	if kind == models.KindSuperAdmin {
		if err := s.ensureNotLastSuperAdmin(p.ID); err != nil {
			return err
		}
	}

	if err := s.sessionRepo.DeleteByUser(p.ID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.principalRepo.Delete(p.ID); err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("principal deleted", "kind", kind, "principal_id", id)
	return nil
}

// ensureNotLastSuperAdmin не дает системе остаться без супер-админов
func (s *UserServiceImpl) ensureNotLastSuperAdmin(excludeID string) error {
	count, err := s.principalRepo.CountByKind(models.KindSuperAdmin)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if count <= 1 {
		return apperrors.ErrLastSuperAdmin
	}
	return nil
}

func (s *UserServiceImpl) GrantCompany(kind models.PrincipalKind, id, companyID string) (*dto.UserResponse, error) {
	if kind == models.KindSuperAdmin {
		return nil, apperrors.NewBadRequestError("Super admins do not hold company memberships")
	}

	p, err := s.findByKind(kind, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.companyRepo.FindByID(companyID); err != nil {
		return nil, apperrors.NewNotFoundError("Company not found")
	}

	if !p.HasCompany(companyID) {
		p.Companies = append(p.Companies, companyID)
		if err := s.principalRepo.Update(p); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	return toUserResponse(p), nil
}

func (s *UserServiceImpl) RevokeCompany(kind models.PrincipalKind, id, companyID string) (*dto.UserResponse, error) {
	p, err := s.findByKind(kind, id)
	if err != nil {
		return nil, err
	}

	filtered := make([]string, 0, len(p.Companies))
	for _, c := range p.Companies {
		if c != companyID {
			filtered = append(filtered, c)
		}
	}
	p.Companies = datatypes.NewJSONSlice(filtered)

	if err := s.principalRepo.Update(p); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toUserResponse(p), nil
}
