package models

import (
	"gorm.io/datatypes"
)

// Application - отклик кандидата на вакансию. Создается публичным
// эндпоинтом без аутентификации, дальше живет в тенантском скоупе.
type Application struct {
	BaseModel
	CompanyID string `gorm:"type:uuid;not null;index" json:"company_id"`
	JobID     string `gorm:"type:uuid;not null;index" json:"job_id"`

	CandidateName  string `gorm:"not null" json:"candidate_name"`
	CandidateEmail string `gorm:"not null" json:"candidate_email"`
	CandidatePhone string `json:"candidate_phone,omitempty"`

	// Answers - ответы на поля кастомной формы, ключ = FormField.FieldKey
	Answers datatypes.JSONMap `json:"answers,omitempty"`

	ResumeURL string            `json:"resume_url,omitempty"`
	Status    ApplicationStatus `gorm:"type:varchar(20);default:'new'" json:"status"`
	Notes     string            `gorm:"type:text" json:"notes,omitempty"`
}
