package dto

// CreateUserRequest - создание company_admin/employee/super_admin
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	// Companies - тенанты, к которым дается доступ (не используется для super_admin)
	Companies []string `json:"companies,omitempty"`
	IsActive  *bool    `json:"is_active,omitempty"`
}

// UpdateUserRequest - частичное обновление принципала
type UpdateUserRequest struct {
	Email     *string   `json:"email,omitempty" binding:"omitempty,email"`
	Name      *string   `json:"name,omitempty"`
	Password  *string   `json:"password,omitempty"`
	Companies *[]string `json:"companies,omitempty"`
	IsActive  *bool     `json:"is_active,omitempty"`
}

// UserResponse - представление принципала в API (без секретов)
type UserResponse struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Picture      string   `json:"picture,omitempty"`
	Companies    []string `json:"companies,omitempty"`
	TOTPEnabled  bool     `json:"totp_enabled"`
	IsActive     bool     `json:"is_active"`
	AuthProvider string   `json:"auth_provider"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

// ActivityLogResponse - запись журнала действий
type ActivityLogResponse struct {
	ID         string                 `json:"id"`
	CompanyID  string                 `json:"company_id,omitempty"`
	ActorID    string                 `json:"actor_id"`
	ActorEmail string                 `json:"actor_email"`
	ActorRole  string                 `json:"actor_role"`
	Action     string                 `json:"action"`
	Entity     string                 `json:"entity"`
	EntityID   string                 `json:"entity_id,omitempty"`
	Detail     map[string]interface{} `json:"detail,omitempty"`
	CreatedAt  string                 `json:"created_at"`
}

// ActivityLogListResponse - страница журнала
type ActivityLogListResponse struct {
	Logs     []ActivityLogResponse `json:"logs"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}
