package models

import (
	"time"

	"gorm.io/datatypes"
)

// CustomDomains - кастомные домены тенанта по типам страниц
type CustomDomains struct {
	Main    string `json:"main,omitempty"`
	Careers string `json:"careers,omitempty"`
	HR      string `json:"hr,omitempty"`
}

// All возвращает непустые значения для глобальной проверки коллизий
func (d CustomDomains) All() []string {
	var out []string
	for _, v := range []string{d.Main, d.Careers, d.HR} {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// SMTPSettings - тенантские настройки исходящей почты (опционально)
type SMTPSettings struct {
	Host      string `json:"host,omitempty"`
	Port      int    `json:"port,omitempty"`
	Username  string `json:"username,omitempty"`
	Password  string `json:"password,omitempty"`
	FromEmail string `json:"from_email,omitempty"`
	FromName  string `json:"from_name,omitempty"`
	UseTLS    bool   `json:"use_tls,omitempty"`
}

// CompanyProfile - брендинг публичной страницы карьеры
type CompanyProfile struct {
	LogoURL        string `json:"logo_url,omitempty"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
	About          string `json:"about,omitempty"`
	Address        string `json:"address,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	Website        string `json:"website,omitempty"`
}

// Company - тенант. slug и domain глобально уникальны; значения
// custom_domains не должны коллидировать ни с чьим domain/slug/custom_domains.
// Приостановка - это is_active=false, не удаление.
type Company struct {
	BaseModel
	Name     string `gorm:"not null" json:"name"`
	Slug     string `gorm:"uniqueIndex;not null" json:"slug"`
	Domain   string `gorm:"uniqueIndex;not null" json:"domain"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	LicenseStart *time.Time  `json:"license_start,omitempty"`
	LicenseEnd   *time.Time  `json:"license_end,omitempty"`
	LicenseType  LicenseType `gorm:"type:varchar(20);default:'trial'" json:"license_type"`

	CustomDomains datatypes.JSONType[CustomDomains]  `json:"custom_domains"`
	SMTPSettings  datatypes.JSONType[SMTPSettings]   `json:"smtp_settings"`
	Profile       datatypes.JSONType[CompanyProfile] `json:"profile"`
}
