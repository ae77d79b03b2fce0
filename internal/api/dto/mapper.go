package dto

import (
	"github.com/farahcakes/bakery-engine/internal/domain"
)

// ToSite converts a CreateSiteRequest into a Site domain model. Identity and
// slug are assigned by the service, not the caller.
func (r *CreateSiteRequest) ToSite() *domain.Site {
	return &domain.Site{
		Name:         r.Name,
		Tagline:      r.Tagline,
		Logo:         r.Logo,
		ThemeColor:   r.ThemeColor,
		Phone:        r.Phone,
		AdminUser:    r.AdminUser,
		AdminPass:    r.AdminPass,
		AdminSurname: r.AdminSurname,
		CustomDomain: r.CustomDomain,
		MaxItems:     r.MaxItems,
	}
}

func (r *SaveCakeRequest) ToCake() *domain.Cake {
	return &domain.Cake{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
	}
}

func FromSite(site *domain.Site) *SiteResponse {
	return &SiteResponse{
		ID:           site.ID,
		Slug:         site.Slug,
		Name:         site.Name,
		Tagline:      site.Tagline,
		Logo:         site.Logo,
		ThemeColor:   site.ThemeColor,
		Phone:        site.Phone,
		AdminUser:    site.AdminUser,
		AdminPass:    site.AdminPass,
		AdminSurname: site.AdminSurname,
		CustomDomain: site.CustomDomain,
		MaxItems:     site.MaxItems,
		CreatedAt:    site.CreatedAt,
		UpdatedAt:    site.UpdatedAt,
	}
}

func FromSites(sites []domain.Site) []SiteResponse {
	responses := make([]SiteResponse, len(sites))
	for i := range sites {
		responses[i] = *FromSite(&sites[i])
	}
	return responses
}

func PublicFromSite(site *domain.Site) *PublicSiteResponse {
	return &PublicSiteResponse{
		ID:           site.ID,
		Slug:         site.Slug,
		Name:         site.Name,
		Tagline:      site.Tagline,
		Logo:         site.Logo,
		ThemeColor:   site.ThemeColor,
		Phone:        site.Phone,
		CustomDomain: site.CustomDomain,
	}
}

func FromCake(cake *domain.Cake) *CakeResponse {
	return &CakeResponse{
		ID:          cake.ID,
		Name:        cake.Name,
		Description: cake.Description,
		Price:       cake.Price,
		Category:    cake.Category,
		ImageURL:    cake.ImageURL,
		SiteID:      cake.SiteID,
	}
}

func FromCakes(cakes []domain.Cake) []CakeResponse {
	responses := make([]CakeResponse, len(cakes))
	for i := range cakes {
		responses[i] = *FromCake(&cakes[i])
	}
	return responses
}

func FromCoupon(coupon *domain.Coupon) *CouponResponse {
	return &CouponResponse{
		Code:            coupon.Code,
		DiscountPercent: coupon.DiscountPercent,
		SiteID:          coupon.SiteID,
	}
}

func FromCoupons(coupons []domain.Coupon) []CouponResponse {
	responses := make([]CouponResponse, len(coupons))
	for i := range coupons {
		responses[i] = *FromCoupon(&coupons[i])
	}
	return responses
}
