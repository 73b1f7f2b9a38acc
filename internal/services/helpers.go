package services

import (
	"time"

	"hrcell_backend/internal/models"
	"hrcell_backend/internal/services/dto"
)

// toUserResponse конвертирует принципала в API-представление без секретов
func toUserResponse(p *models.Principal) *dto.UserResponse {
	return &dto.UserResponse{
		ID:           p.ID,
		Kind:         string(p.Kind),
		Email:        p.Email,
		Name:         p.Name,
		Picture:      p.Picture,
		Companies:    p.Companies,
		TOTPEnabled:  p.TOTPEnabled,
		IsActive:     p.IsActive,
		AuthProvider: string(p.AuthProvider),
		CreatedAt:    formatTime(p.CreatedAt),
		UpdatedAt:    formatTime(p.UpdatedAt),
	}
}

// formatTime - каноническое строковое представление временных меток в API
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// formatTimePtr - то же для опциональных меток
func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

// parseTimePtr парсит ISO-8601 (хвостовой Z = UTC); пустая строка -> nil
func parseTimePtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
