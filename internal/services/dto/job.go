package dto

// CreateJobRequest - создание вакансии админом компании
type CreateJobRequest struct {
	Title          string `json:"title" binding:"required"`
	Department     string `json:"department,omitempty"`
	Location       string `json:"location,omitempty"`
	EmploymentType string `json:"employment_type,omitempty"`
	Description    string `json:"description" binding:"required"`
	Requirements   string `json:"requirements,omitempty"`
	Status         string `json:"status,omitempty" validate:"is-job-status"`
	ClosesAt       string `json:"closes_at,omitempty"`
}

// UpdateJobRequest - частичное обновление вакансии
type UpdateJobRequest struct {
	Title          *string `json:"title,omitempty"`
	Department     *string `json:"department,omitempty"`
	Location       *string `json:"location,omitempty"`
	EmploymentType *string `json:"employment_type,omitempty"`
	Description    *string `json:"description,omitempty"`
	Requirements   *string `json:"requirements,omitempty"`
	Status         *string `json:"status,omitempty" validate:"omitempty,is-job-status"`
	ClosesAt       *string `json:"closes_at,omitempty"`
}

// JobResponse - представление вакансии в API
type JobResponse struct {
	ID               string `json:"id"`
	CompanyID        string `json:"company_id"`
	Title            string `json:"title"`
	Slug             string `json:"slug"`
	Department       string `json:"department,omitempty"`
	Location         string `json:"location,omitempty"`
	EmploymentType   string `json:"employment_type,omitempty"`
	Description      string `json:"description"`
	Requirements     string `json:"requirements,omitempty"`
	Status           string `json:"status"`
	PublishedAt      string `json:"published_at,omitempty"`
	ClosesAt         string `json:"closes_at,omitempty"`
	ApplicationCount int64  `json:"application_count,omitempty"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}
