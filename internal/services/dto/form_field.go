package dto

// CreateFormFieldRequest - поле кастомной формы отклика
type CreateFormFieldRequest struct {
	JobID     string   `json:"job_id,omitempty"`
	Label     string   `json:"label" binding:"required"`
	FieldKey  string   `json:"field_key" binding:"required"`
	FieldType string   `json:"field_type" binding:"required" validate:"is-field-type"`
	Options   []string `json:"options,omitempty"`
	Required  bool     `json:"required"`
	SortOrder int      `json:"sort_order"`
}

// UpdateFormFieldRequest - частичное обновление поля формы
type UpdateFormFieldRequest struct {
	Label     *string   `json:"label,omitempty"`
	FieldType *string   `json:"field_type,omitempty" validate:"omitempty,is-field-type"`
	Options   *[]string `json:"options,omitempty"`
	Required  *bool     `json:"required,omitempty"`
	SortOrder *int      `json:"sort_order,omitempty"`
}
