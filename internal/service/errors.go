package service

import "errors"

var (
	// Site errors
	ErrSiteNotFound       = errors.New("site not found")
	ErrDomainTaken        = errors.New("custom domain is already in use by another boutique")
	ErrInvalidCredentials = errors.New("incorrect credentials, check the engine dashboard")

	// Catalog errors
	ErrCapacityReached  = errors.New("capacity reached, contact support to upgrade")
	ErrCakeNotFound     = errors.New("cake not found")
	ErrCouponNotFound   = errors.New("invalid coupon")
	ErrCouponCodeEmpty  = errors.New("coupon code is required")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrNameRequired     = errors.New("name is required")
)
