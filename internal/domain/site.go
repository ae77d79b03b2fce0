package domain

import (
	"time"
)

// Site is one tenant's boutique configuration. A tenant has at most one
// configuration record; slug (and custom domain, when set) are unique across
// the whole platform.
type Site struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	Slug         string    `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	Tagline      string    `gorm:"type:text" json:"tagline"`
	Logo         string    `gorm:"type:text" json:"logo"`
	ThemeColor   string    `gorm:"type:text" json:"theme_color"`
	Phone        string    `gorm:"type:text" json:"phone"`
	AdminUser    string    `gorm:"type:text;not null" json:"admin_user"`
	AdminPass    string    `gorm:"type:text;not null" json:"admin_pass"`
	AdminSurname string    `gorm:"type:text" json:"admin_surname"`
	CustomDomain string    `gorm:"type:text" json:"custom_domain"`
	MaxItems     int       `gorm:"not null;default:100" json:"max_items"`
	CreatedAt    time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Site) TableName() string {
	return "sites"
}
