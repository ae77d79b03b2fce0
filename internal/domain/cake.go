package domain

import (
	"time"
)

// Cake is a catalog product. A cake with an empty SiteID is a global seed
// template; seeds are cloned into a tenant's catalog at creation time and the
// clones carry that tenant's SiteID.
type Cake struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       int64     `gorm:"not null;default:0" json:"price"`
	Category    string    `gorm:"type:text" json:"category"`
	ImageURL    string    `gorm:"type:text" json:"image_url"`
	SiteID      string    `gorm:"type:text;index" json:"site_id"`
	CreatedAt   time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Cake) TableName() string {
	return "cakes"
}

// IsSeed reports whether the cake is a global template rather than a tenant's
// own product.
func (c Cake) IsSeed() bool {
	return c.SiteID == ""
}
