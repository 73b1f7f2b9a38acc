package services

import (
	"time"

	"hrcell_backend/internal/auth"
	"hrcell_backend/internal/license"
	"hrcell_backend/internal/logger"
	"hrcell_backend/internal/models"
	"hrcell_backend/internal/repositories"
	"hrcell_backend/internal/services/dto"
	"hrcell_backend/pkg/apperrors"
)

type UnifiedAuthService interface {
	// UnifiedLogin проверяет пароль независимо против company_admin и
	// employee записей и собирает кросс-компанейский список доступов.
	UnifiedLogin(req *dto.UnifiedLoginRequest) (*dto.UnifiedLoginResponse, error)

	// SelectCompany - явный выбор компании из списка доступов, создает сессию
	SelectCompany(req *dto.SelectCompanyRequest) (*models.Session, *models.Company, error)
}

type UnifiedAuthServiceImpl struct {
	principalRepo  repositories.PrincipalRepository
	companyRepo    repositories.CompanyRepository
	sessionService SessionService
	now            func() time.Time
}

func NewUnifiedAuthService(
	principalRepo repositories.PrincipalRepository,
	companyRepo repositories.CompanyRepository,
	sessionService SessionService,
) UnifiedAuthService {
	return &UnifiedAuthServiceImpl{
		principalRepo:  principalRepo,
		companyRepo:    companyRepo,
		sessionService: sessionService,
		now:            time.Now,
	}
}

// NewUnifiedAuthServiceWithClock - конструктор с инжектируемыми часами (для тестов)
func NewUnifiedAuthServiceWithClock(
	principalRepo repositories.PrincipalRepository,
	companyRepo repositories.CompanyRepository,
	sessionService SessionService,
	now func() time.Time,
) UnifiedAuthService {
	return &UnifiedAuthServiceImpl{
		principalRepo:  principalRepo,
		companyRepo:    companyRepo,
		sessionService: sessionService,
		now:            now,
	}
}

func (s *UnifiedAuthServiceImpl) UnifiedLogin(req *dto.UnifiedLoginRequest) (*dto.UnifiedLoginResponse, error) {
	resp := &dto.UnifiedLoginResponse{
		AccessList: []dto.UserAccess{},
		UserEmail:  req.Email,
	}

	// Обе таблицы проверяются независимо: частичное совпадение пароля
	// (только admin или только employee) — валидный вход.
	s.collectAccess(models.KindCompanyAdmin, models.RoleAdmin, req, resp)
	s.collectAccess(models.KindEmployee, models.RoleEmployee, req, resp)

	if len(resp.AccessList) == 0 {
		// Единый отказ: не раскрываем, нашелся ли email и в какой таблице
		return nil, apperrors.ErrInvalidCredentials
	}

	resp.NeedsSelection = len(resp.AccessList) > 1
	return resp, nil
}

// collectAccess добавляет в resp доступы принципала данного kind,
// отфильтрованные по активности и лицензии компании
func (s *UnifiedAuthServiceImpl) collectAccess(
	kind models.PrincipalKind,
	role models.Role,
	req *dto.UnifiedLoginRequest,
	resp *dto.UnifiedLoginResponse,
) {
	p, err := s.principalRepo.FindByKindAndEmail(kind, req.Email)
	if err != nil {
		return
	}
	if !p.IsActive || p.PasswordHash == "" {
		return
	}
	if !auth.CheckPasswordHash(req.Password, p.PasswordHash) {
		return
	}

	// Имя admin-личности имеет приоритет, employee заполняет только пустое
	if resp.UserName == "" {
		resp.UserName = p.Name
	}
	if resp.UserPicture == "" {
		resp.UserPicture = p.Picture
	}

	now := s.now()
	for _, companyID := range p.Companies {
		company, err := s.companyRepo.FindByID(companyID)
		if err != nil {
			// Висячая ссылка в списке доступа - пропускаем, не падаем
			logger.Warn("access list references missing company",
				"principal_id", p.ID, "company_id", companyID)
			continue
		}
		if !company.IsActive {
			continue
		}

		ev := license.Evaluate(company, now)
		if ev.Status == license.StatusExpired || ev.Status == license.StatusSuspended {
			continue
		}

		resp.AccessList = append(resp.AccessList, dto.UserAccess{
			CompanyID:   company.ID,
			CompanyName: company.Name,
			CompanySlug: company.Slug,
			Role:        string(role),
			UserTable:   models.UserTableForKind(kind),
			UserID:      p.ID,
		})
	}
}

func (s *UnifiedAuthServiceImpl) SelectCompany(req *dto.SelectCompanyRequest) (*models.Session, *models.Company, error) {
	kind, ok := models.KindForUserTable(req.UserTable)
	if !ok {
		return nil, nil, apperrors.NewBadRequestError("Unknown user table: " + req.UserTable)
	}

	// Перечитываем принципала: клиент мог подделать company_id из чужого
	// списка доступов
	p, err := s.principalRepo.FindByKindAndID(kind, req.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPrincipalNotFound) {
			return nil, nil, apperrors.NewForbiddenError("Access to this company is not granted")
		}
		return nil, nil, apperrors.InternalError(err)
	}

	if !p.HasCompany(req.CompanyID) {
		return nil, nil, apperrors.NewForbiddenError("Access to this company is not granted")
	}

	company, err := s.companyRepo.FindByID(req.CompanyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, nil, apperrors.NewNotFoundError("Company not found")
		}
		return nil, nil, apperrors.InternalError(err)
	}

	// Лицензия здесь повторно не проверяется: фильтрация была на unified-login,
	// окно между логином и выбором принимаем как есть.
	session, err := s.sessionService.Create(p, company, models.Role(req.Role))
	if err != nil {
		return nil, nil, err
	}
	return session, company, nil
}
