package dto

// SubmitApplicationRequest - публичная заявка кандидата
type SubmitApplicationRequest struct {
	CandidateName  string                 `json:"candidate_name" binding:"required"`
	CandidateEmail string                 `json:"candidate_email" binding:"required,email"`
	CandidatePhone string                 `json:"candidate_phone,omitempty"`
	Answers        map[string]interface{} `json:"answers,omitempty"`
	ResumeURL      string                 `json:"resume_url,omitempty"`
}

// ApplicationListFilter - query-параметры списка и экспортов откликов
type ApplicationListFilter struct {
	JobID    string `form:"job_id"`
	Status   string `form:"status" validate:"omitempty,is-application-status"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// UpdateApplicationRequest - смена статуса/заметок рекрутером
type UpdateApplicationRequest struct {
	Status *string `json:"status,omitempty" validate:"omitempty,is-application-status"`
	Notes  *string `json:"notes,omitempty"`
}

// ApplicationResponse - представление отклика в API
type ApplicationResponse struct {
	ID             string                 `json:"id"`
	CompanyID      string                 `json:"company_id"`
	JobID          string                 `json:"job_id"`
	JobTitle       string                 `json:"job_title,omitempty"`
	CandidateName  string                 `json:"candidate_name"`
	CandidateEmail string                 `json:"candidate_email"`
	CandidatePhone string                 `json:"candidate_phone,omitempty"`
	Answers        map[string]interface{} `json:"answers,omitempty"`
	ResumeURL      string                 `json:"resume_url,omitempty"`
	Status         string                 `json:"status"`
	Notes          string                 `json:"notes,omitempty"`
	CreatedAt      string                 `json:"created_at"`
	UpdatedAt      string                 `json:"updated_at"`
}

// ApplicationListResponse - страница откликов
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
}
