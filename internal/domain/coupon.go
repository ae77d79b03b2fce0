package domain

import "strings"

// Coupon is a percentage discount code. Codes are stored upper-cased and
// compared case-insensitively; (code, site_id) is the composite identity.
type Coupon struct {
	Code            string `gorm:"primaryKey;type:text" json:"code"`
	SiteID          string `gorm:"primaryKey;type:text" json:"site_id"`
	DiscountPercent int    `gorm:"not null;default:0" json:"discount_percent"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// Matches reports whether the coupon's code equals the given one, ignoring case.
func (c Coupon) Matches(code string) bool {
	return strings.EqualFold(c.Code, code)
}
