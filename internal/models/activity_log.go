package models

import (
	"gorm.io/datatypes"
)

// ActivityLog - журнал действий. Запись best-effort: сбой записи логируется
// и не влияет на основную операцию. Пустой CompanyID = запись уровня
// супер-админа (вне тенанта).
type ActivityLog struct {
	BaseModel
	CompanyID  string            `gorm:"type:uuid;index" json:"company_id,omitempty"`
	ActorID    string            `gorm:"not null" json:"actor_id"`
	ActorEmail string            `json:"actor_email"`
	ActorRole  Role              `gorm:"type:varchar(20)" json:"actor_role"`
	Action     string            `gorm:"not null;index" json:"action"`
	Entity     string            `json:"entity"`
	EntityID   string            `json:"entity_id,omitempty"`
	Detail     datatypes.JSONMap `json:"detail,omitempty"`
}
