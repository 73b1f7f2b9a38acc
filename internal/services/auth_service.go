package services

import (
	"hrcell_backend/internal/auth"
	"hrcell_backend/internal/logger"
	"hrcell_backend/internal/models"
	"hrcell_backend/internal/repositories"
	"hrcell_backend/internal/services/dto"
	"hrcell_backend/pkg/apperrors"
)

type AuthService interface {
	// SuperAdminLogin - вход супер-админа. При включенном 2FA и отсутствии
	// кода возвращает Requires2FA без токена.
	SuperAdminLogin(req *dto.SuperAdminLoginRequest) (*dto.SuperAdminLoginResponse, error)

	// ResolveBearer проверяет токен и перечитывает субъекта из БД:
	// деактивированный или удаленный принципал отсекается даже
	// с валидным неистекшим токеном
	ResolveBearer(tokenStr string) (*auth.Claims, *models.Principal, error)

	// Profile - принципал текущего токена
	Profile(kind models.PrincipalKind, userID string) (*dto.UserResponse, error)

	TwoFactorSetup(userID string) (*dto.TwoFactorSetupResponse, error)
	TwoFactorEnable(userID, code string) error
	TwoFactorDisable(userID, code string) error

	ChangePassword(kind models.PrincipalKind, userID string, req *dto.ChangePasswordRequest) error
}

type AuthServiceImpl struct {
	principalRepo repositories.PrincipalRepository
	tokens        *auth.TokenIssuer
}

func NewAuthService(principalRepo repositories.PrincipalRepository, tokens *auth.TokenIssuer) AuthService {
	return &AuthServiceImpl{principalRepo: principalRepo, tokens: tokens}
}

func (s *AuthServiceImpl) SuperAdminLogin(req *dto.SuperAdminLoginRequest) (*dto.SuperAdminLoginResponse, error) {
	admin, err := s.principalRepo.FindByKindAndEmail(models.KindSuperAdmin, req.Email)
	if err != nil {
		// Тот же отказ, что и при неверном пароле - не раскрываем существование email
		return nil, apperrors.ErrInvalidCredentials
	}
	if !admin.IsActive || !auth.CheckPasswordHash(req.Password, admin.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if admin.TOTPEnabled {
		if req.TOTPCode == "" {
			return &dto.SuperAdminLoginResponse{Requires2FA: true}, nil
		}
		if !auth.VerifyTOTP(req.TOTPCode, admin.TOTPSecret) {
			return nil, apperrors.ErrTwoFactorInvalid
		}
	}

	token, err := s.tokens.Generate(admin.ID, models.RoleSuperAdmin, "")
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("super admin logged in", "user_id", admin.ID)
	return &dto.SuperAdminLoginResponse{
		Token: token,
		User:  toUserResponse(admin),
	}, nil
}

func (s *AuthServiceImpl) ResolveBearer(tokenStr string) (*auth.Claims, *models.Principal, error) {
	claims, err := s.tokens.Parse(tokenStr)
	if err != nil {
		return nil, nil, apperrors.ErrInvalidToken
	}

	kind := models.KindSuperAdmin
	if claims.Role != models.RoleSuperAdmin {
		var ok bool
		kind, ok = models.KindForRole(claims.Role)
		if !ok {
			return nil, nil, apperrors.ErrInvalidToken
		}
	}

	p, err := s.principalRepo.FindByKindAndID(kind, claims.UserID)
	if err != nil {
		return nil, nil, apperrors.ErrInvalidToken
	}
	if !p.IsActive {
		return nil, nil, apperrors.ErrInvalidToken
	}
	return claims, p, nil
}

func (s *AuthServiceImpl) Profile(kind models.PrincipalKind, userID string) (*dto.UserResponse, error) {
	p, err := s.principalRepo.FindByKindAndID(kind, userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return toUserResponse(p), nil
}

func (s *AuthServiceImpl) TwoFactorSetup(userID string) (*dto.TwoFactorSetupResponse, error) {
	admin, err := s.principalRepo.FindByKindAndID(models.KindSuperAdmin, userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	secret, url, err := auth.GenerateTOTPSecret(admin.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Секрет сохраняется сразу, но 2FA не активен до подтверждения кодом
	admin.TOTPSecret = secret
	admin.TOTPEnabled = false
	if err := s.principalRepo.Update(admin); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TwoFactorSetupResponse{Secret: secret, OTPAuthURL: url}, nil
}

func (s *AuthServiceImpl) TwoFactorEnable(userID, code string) error {
	admin, err := s.principalRepo.FindByKindAndID(models.KindSuperAdmin, userID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	if admin.TOTPSecret == "" {
		return apperrors.NewBadRequestError("Two-factor setup has not been started")
	}
	if !auth.VerifyTOTP(code, admin.TOTPSecret) {
		return apperrors.ErrTwoFactorInvalid
	}

	admin.TOTPEnabled = true
	if err := s.principalRepo.Update(admin); err != nil {
		return apperrors.InternalError(err)
	}
	logger.Info("two-factor enabled", "user_id", admin.ID)
	return nil
}

func (s *AuthServiceImpl) TwoFactorDisable(userID, code string) error {
	admin, err := s.principalRepo.FindByKindAndID(models.KindSuperAdmin, userID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	if !admin.TOTPEnabled {
		return apperrors.NewBadRequestError("Two-factor is not enabled")
	}
	if !auth.VerifyTOTP(code, admin.TOTPSecret) {
		return apperrors.ErrTwoFactorInvalid
	}

	admin.TOTPEnabled = false
	admin.TOTPSecret = ""
	if err := s.principalRepo.Update(admin); err != nil {
		return apperrors.InternalError(err)
	}
	logger.Info("two-factor disabled", "user_id", admin.ID)
	return nil
}

func (s *AuthServiceImpl) ChangePassword(kind models.PrincipalKind, userID string, req *dto.ChangePasswordRequest) error {
	p, err := s.principalRepo.FindByKindAndID(kind, userID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	if !auth.CheckPasswordHash(req.CurrentPassword, p.PasswordHash) {
		return apperrors.NewBadRequestError("Current password is incorrect")
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	p.PasswordHash = hash
	if err := s.principalRepo.Update(p); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
