package models

import "time"

// Session - серверная сессия: одна строка = одна связка (user, company, role).
// Жизненный цикл: создана select-company -> активна -> удалена logout'ом
// или лениво при чтении после expires_at. Скользящего продления нет.
type Session struct {
	Token       string    `gorm:"primaryKey" json:"session_token"`
	UserID      string    `gorm:"not null;index" json:"user_id"`
	Email       string    `gorm:"not null" json:"email"`
	Name        string    `json:"name"`
	Picture     string    `json:"picture,omitempty"`
	CompanyID   string    `gorm:"not null;index" json:"company_id"`
	CompanyName string    `json:"company_name"`
	Role        Role      `gorm:"type:varchar(20);not null" json:"role"`
	ExpiresAt   time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt   time.Time `gorm:"default:now()" json:"created_at"`
}
