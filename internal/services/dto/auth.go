package dto

// SuperAdminLoginRequest - вход супер-админа (email+пароль, опционально TOTP)
type SuperAdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	TOTPCode string `json:"totp_code,omitempty"`
}

// SuperAdminLoginResponse - либо токен, либо требование второго фактора
type SuperAdminLoginResponse struct {
	Token       string         `json:"token,omitempty"`
	Requires2FA bool           `json:"requires_2fa,omitempty"`
	User        *UserResponse  `json:"user,omitempty"`
}

// UnifiedLoginRequest - единый вход для админов компаний и сотрудников
type UnifiedLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserAccess - доступ пользователя к одной компании в одной роли
type UserAccess struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	CompanySlug string `json:"company_slug"`
	Role        string `json:"role"`
	UserTable   string `json:"user_table"`
	UserID      string `json:"user_id"`
}

// UnifiedLoginResponse - список доступов; при >1 элементе клиент обязан
// сделать явный выбор компании
type UnifiedLoginResponse struct {
	AccessList     []UserAccess `json:"access_list"`
	UserEmail      string       `json:"user_email"`
	UserName       string       `json:"user_name"`
	UserPicture    string       `json:"user_picture,omitempty"`
	NeedsSelection bool         `json:"needs_selection"`
}

// SelectCompanyRequest - явный выбор компании и роли после unified-login
type SelectCompanyRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	UserTable string `json:"user_table" binding:"required" validate:"is-user-table"`
	CompanyID string `json:"company_id" binding:"required"`
	Role      string `json:"role" binding:"required" validate:"is-session-role"`
}

// SessionResponse - данные активной сессии
type SessionResponse struct {
	SessionToken string `json:"session_token"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture,omitempty"`
	CompanyID    string `json:"company_id"`
	CompanyName  string `json:"company_name"`
	CompanySlug  string `json:"company_slug,omitempty"`
	Role         string `json:"role"`
	ExpiresAt    string `json:"expires_at"`
}

// TwoFactorSetupResponse - секрет и otpauth URL для QR-кода
type TwoFactorSetupResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}

// TwoFactorConfirmRequest - подтверждение включения/выключения 2FA кодом
type TwoFactorConfirmRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}

// ChangePasswordRequest - смена пароля аутентифицированным принципалом
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}
