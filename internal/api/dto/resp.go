package dto

import (
	"encoding/json"
	"time"
)

// SiteResponse is the operator view of a boutique, credentials included —
// the dashboard edits them in place.
type SiteResponse struct {
	ID           string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Slug         string    `json:"slug" example:"farah-cakes"`
	Name         string    `json:"name" example:"Farah Cakes"`
	Tagline      string    `json:"tagline"`
	Logo         string    `json:"logo"`
	ThemeColor   string    `json:"theme_color" example:"#F7C04A"`
	Phone        string    `json:"phone"`
	AdminUser    string    `json:"admin_user"`
	AdminPass    string    `json:"admin_pass"`
	AdminSurname string    `json:"admin_surname"`
	CustomDomain string    `json:"custom_domain"`
	MaxItems     int       `json:"max_items" example:"100"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicSiteResponse is the storefront view: no credentials, no limits.
type PublicSiteResponse struct {
	ID           string `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Tagline      string `json:"tagline"`
	Logo         string `json:"logo"`
	ThemeColor   string `json:"theme_color"`
	Phone        string `json:"phone"`
	CustomDomain string `json:"custom_domain"`
}

type CakeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	SiteID      string `json:"site_id"`
}

type CouponResponse struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
	SiteID          string `json:"site_id"`
}

// ResolveResponse is the router verdict for the caller's host + fragment.
type ResolveResponse struct {
	Mode          string              `json:"mode" example:"TENANT"`
	Site          *PublicSiteResponse `json:"site,omitempty"`
	ClearFragment bool                `json:"clear_fragment"`
}

type StorefrontResponse struct {
	Site       PublicSiteResponse `json:"site"`
	Cakes      []CakeResponse     `json:"cakes"`
	Coupons    []CouponResponse   `json:"coupons"`
	Categories []string           `json:"categories"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	Site  SiteResponse `json:"site"`
}

type ApplyCouponResponse struct {
	Valid           bool   `json:"valid"`
	Code            string `json:"code,omitempty"`
	DiscountPercent int    `json:"discount_percent,omitempty"`
}

type DescribeCakeResponse struct {
	Description string `json:"description"`
}

type UploadImageResponse struct {
	URL string `json:"url"`
}

type DefaultsResponse struct {
	Cakes      []CakeResponse `json:"cakes"`
	Categories []string       `json:"categories"`
}

// StorefrontEvent is broadcast over redis and relayed to WebSocket clients
// whenever a tenant's data changes.
type StorefrontEvent struct {
	Type      string          `json:"type" example:"cake.saved"`
	SiteID    string          `json:"site_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Event types carried by StorefrontEvent.
const (
	EventCakeSaved          = "cake.saved"
	EventCakeDeleted        = "cake.deleted"
	EventCouponSaved        = "coupon.saved"
	EventCouponDeleted      = "coupon.deleted"
	EventCategoriesReplaced = "categories.replaced"
	EventSiteUpdated        = "site.updated"
)
