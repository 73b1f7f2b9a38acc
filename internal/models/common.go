package models

import (
	"time"
)

// BaseModel - общие поля всех таблиц.
// Временные метки нормализуются на границе хранилища: в БД всегда timestamptz,
// наружу всегда RFC3339 (UTC).
type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
