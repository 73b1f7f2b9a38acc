package models

import (
	"gorm.io/datatypes"
)

// Principal - единая таблица учетных записей с дискриминантом Kind.
// Email уникален внутри своего kind: один и тот же адрес может независимо
// существовать как company_admin и как employee (это разные личности).
type Principal struct {
	BaseModel
	Kind         PrincipalKind `gorm:"type:varchar(20);not null;uniqueIndex:idx_principals_kind_email" json:"kind"`
	Email        string        `gorm:"not null;uniqueIndex:idx_principals_kind_email" json:"email"`
	Name         string        `gorm:"not null" json:"name"`
	PasswordHash string        `json:"-"`
	Picture      string        `json:"picture,omitempty"`

	// Companies - набор id тенантов, в которых принципал может действовать.
	// Имеет смысл только для kind company_admin и employee.
	Companies datatypes.JSONSlice[string] `json:"companies"`

	TOTPSecret   string       `json:"-"`
	TOTPEnabled  bool         `gorm:"default:false" json:"totp_enabled"`
	IsActive     bool         `gorm:"default:true" json:"is_active"`
	AuthProvider AuthProvider `gorm:"type:varchar(20);default:'email'" json:"auth_provider"`
}

// HasCompany проверяет членство принципала в компании
func (p *Principal) HasCompany(companyID string) bool {
	for _, id := range p.Companies {
		if id == companyID {
			return true
		}
	}
	return false
}
