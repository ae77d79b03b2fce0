package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farahcakes/bakery-engine/internal/api/dto"
	"github.com/farahcakes/bakery-engine/internal/domain"
	"github.com/farahcakes/bakery-engine/internal/router"
	"github.com/farahcakes/bakery-engine/internal/service"
	"github.com/farahcakes/bakery-engine/internal/tenant"
)

// StorefrontHandler serves the public, unauthenticated surface: navigation
// resolution, storefront data, and coupon checks.
type StorefrontHandler struct {
	*BaseHandler
	sites   *service.SiteService
	catalog *service.CatalogService
}

func NewStorefrontHandler(sites *service.SiteService, catalog *service.CatalogService) *StorefrontHandler {
	return &StorefrontHandler{sites: sites, catalog: catalog}
}

// Resolve godoc
// @Summary Resolve host and fragment to an application mode
// @Description Maps the caller's host name and hash fragment to PLATFORM, WIZARD, or TENANT. A fragment pointing at a dead slug resolves to PLATFORM with clear_fragment set.
// @Tags storefront
// @Produce json
// @Param host query string false "Host name (defaults to the request Host header)"
// @Param fragment query string false "URL hash fragment"
// @Success 200 {object} dto.ResolveResponse
// @Router /resolve [get]
func (h *StorefrontHandler) Resolve(c *gin.Context) {
	host := c.Query("host")
	if host == "" {
		host = c.Request.Host
	}

	route := router.Resolve(host, c.Query("fragment"), h.sites.Snapshot())

	resp := dto.ResolveResponse{
		Mode:          string(route.Mode),
		ClearFragment: route.ClearFragment,
	}
	if route.Site != nil {
		resp.Site = dto.PublicFromSite(route.Site)
	}
	c.JSON(http.StatusOK, resp)
}

// GetStorefront godoc
// @Summary Load a boutique storefront
// @Description Full storefront payload for one boutique: site info, cakes, coupons, and categories, loaded concurrently
// @Tags storefront
// @Produce json
// @Param slug path string true "Boutique slug"
// @Success 200 {object} dto.StorefrontResponse
// @Failure 404 {object} dto.Error
// @Router /storefront/{slug} [get]
func (h *StorefrontHandler) GetStorefront(c *gin.Context) {
	site := h.findSite(c.Param("slug"))
	if site == nil {
		c.JSON(http.StatusNotFound, dto.Error{Error: "boutique not found"})
		return
	}

	data := h.catalog.Load(h.RequestCtx(c), site.ID)

	c.JSON(http.StatusOK, dto.StorefrontResponse{
		Site:       *dto.PublicFromSite(site),
		Cakes:      dto.FromCakes(data.Cakes),
		Coupons:    dto.FromCoupons(data.Coupons),
		Categories: data.Categories,
	})
}

// ApplyCoupon godoc
// @Summary Validate a coupon code at checkout
// @Description Case-insensitive lookup of a coupon code for one boutique
// @Tags storefront
// @Accept json
// @Produce json
// @Param slug path string true "Boutique slug"
// @Param body body dto.ApplyCouponRequest true "Coupon code"
// @Success 200 {object} dto.ApplyCouponResponse
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /storefront/{slug}/coupons/apply [post]
func (h *StorefrontHandler) ApplyCoupon(c *gin.Context) {
	site := h.findSite(c.Param("slug"))
	if site == nil {
		c.JSON(http.StatusNotFound, dto.Error{Error: "boutique not found"})
		return
	}

	var req dto.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	resp, err := h.catalog.ApplyCoupon(h.RequestCtx(c), site.ID, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			// Invalid codes are a normal checkout outcome, not an error status.
			c.JSON(http.StatusOK, resp)
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *StorefrontHandler) findSite(ref string) *domain.Site {
	sites := h.sites.Snapshot()
	if site := tenant.FindBySlug(sites, ref); site != nil {
		return site
	}
	return tenant.FindByID(sites, ref)
}
