package models

import (
	"gorm.io/datatypes"
)

// FormField - поле кастомной формы отклика. Пустой JobID означает
// дефолтную форму компании, применяемую ко всем вакансиям без своей формы.
type FormField struct {
	BaseModel
	CompanyID string    `gorm:"type:uuid;not null;index" json:"company_id"`
	JobID     string    `gorm:"type:uuid;index" json:"job_id,omitempty"`
	Label     string    `gorm:"not null" json:"label"`
	FieldKey  string    `gorm:"not null" json:"field_key"`
	FieldType FieldType `gorm:"type:varchar(20);not null" json:"field_type"`

	// Options - варианты для select-полей
	Options datatypes.JSONSlice[string] `json:"options,omitempty"`

	Required  bool `gorm:"default:false" json:"required"`
	SortOrder int  `gorm:"default:0" json:"sort_order"`
}
