package models

import "time"

// Job - вакансия. CompanyID задает владение тенантом: админ видит и меняет
// только строки своего company_id.
type Job struct {
	BaseModel
	CompanyID      string    `gorm:"type:uuid;not null;index" json:"company_id"`
	Title          string    `gorm:"not null" json:"title"`
	Slug           string    `gorm:"not null;index" json:"slug"`
	Department     string    `json:"department,omitempty"`
	Location       string    `json:"location,omitempty"`
	EmploymentType string    `json:"employment_type,omitempty"`
	Description    string    `gorm:"type:text" json:"description"`
	Requirements   string    `gorm:"type:text" json:"requirements,omitempty"`
	Status         JobStatus `gorm:"type:varchar(20);default:'draft'" json:"status"`

	PublishedAt *time.Time `json:"published_at,omitempty"`
	ClosesAt    *time.Time `json:"closes_at,omitempty"`
}

// IsOpen сообщает, принимает ли вакансия отклики в данный момент
func (j *Job) IsOpen(now time.Time) bool {
	if j.Status != JobStatusPublished {
		return false
	}
	if j.ClosesAt != nil && now.After(*j.ClosesAt) {
		return false
	}
	return true
}
