package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farahcakes/bakery-engine/internal/api/dto"
	"github.com/farahcakes/bakery-engine/internal/service"
	"github.com/farahcakes/bakery-engine/internal/service/ai"
	"github.com/farahcakes/bakery-engine/internal/service/images"
)

// CatalogHandler serves the manager dashboard: cake, coupon, and category
// mutations for one boutique, plus the AI and image helpers.
type CatalogHandler struct {
	*BaseHandler
	sites     *service.SiteService
	catalog   *service.CatalogService
	describer *ai.Describer
	optimizer *images.Optimizer
}

func NewCatalogHandler(sites *service.SiteService, catalog *service.CatalogService, describer *ai.Describer, optimizer *images.Optimizer) *CatalogHandler {
	return &CatalogHandler{
		sites:     sites,
		catalog:   catalog,
		describer: describer,
		optimizer: optimizer,
	}
}

// SaveCake godoc
// @Summary Create or replace a cake
// @Description Saves a cake for one boutique. New cakes are rejected once the boutique's item limit is reached.
// @Tags catalog
// @Accept json
// @Produce json
// @Param siteId path string true "Site ID"
// @Param body body dto.SaveCakeRequest true "Cake object"
// @Success 200 {object} dto.CakeResponse
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Router /sites/{siteId}/cakes [post]
func (h *CatalogHandler) SaveCake(c *gin.Context) {
	site, err := h.sites.GetByID(c.Param("siteId"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.Error{Error: err.Error()})
		return
	}

	var req dto.SaveCakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	cake, err := h.catalog.SaveCake(h.RequestCtx(c), site, req)
	if err != nil {
		if errors.Is(err, service.ErrCapacityReached) {
			c.JSON(http.StatusConflict, dto.Error{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, cake)
}

// DeleteCake godoc
// @Summary Delete a cake
// @Tags catalog
// @Produce json
// @Param siteId path string true "Site ID"
// @Param cakeId path string true "Cake ID"
// @Success 204
// @Failure 404 {object} dto.Error
// @Router /sites/{siteId}/cakes/{cakeId} [delete]
func (h *CatalogHandler) DeleteCake(c *gin.Context) {
	err := h.catalog.DeleteCake(h.RequestCtx(c), c.Param("siteId"), c.Param("cakeId"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.Error{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// SaveCoupon godoc
// @Summary Create or replace a coupon
// @Description Codes are stored uppercase; saving an existing code replaces its discount.
// @Tags catalog
// @Accept json
// @Produce json
// @Param siteId path string true "Site ID"
// @Param body body dto.SaveCouponRequest true "Coupon object"
// @Success 200 {object} dto.CouponResponse
// @Failure 400 {object} dto.Error
// @Router /sites/{siteId}/coupons [post]
func (h *CatalogHandler) SaveCoupon(c *gin.Context) {
	var req dto.SaveCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	coupon, err := h.catalog.SaveCoupon(h.RequestCtx(c), c.Param("siteId"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, coupon)
}

// DeleteCoupon godoc
// @Summary Delete a coupon
// @Tags catalog
// @Produce json
// @Param siteId path string true "Site ID"
// @Param code path string true "Coupon code"
// @Success 204
// @Failure 404 {object} dto.Error
// @Router /sites/{siteId}/coupons/{code} [delete]
func (h *CatalogHandler) DeleteCoupon(c *gin.Context) {
	err := h.catalog.DeleteCoupon(h.RequestCtx(c), c.Param("siteId"), c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.Error{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// AddCategory godoc
// @Summary Add a category
// @Tags catalog
// @Accept json
// @Produce json
// @Param siteId path string true "Site ID"
// @Param body body dto.AddCategoryRequest true "Category name"
// @Success 200 {array} string
// @Failure 400 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Router /sites/{siteId}/categories [post]
func (h *CatalogHandler) AddCategory(c *gin.Context) {
	var req dto.AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	names, err := h.catalog.AddCategory(h.RequestCtx(c), c.Param("siteId"), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryExists) {
			c.JSON(http.StatusConflict, dto.Error{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, names)
}

// RemoveCategory godoc
// @Summary Remove a category
// @Tags catalog
// @Produce json
// @Param siteId path string true "Site ID"
// @Param name path string true "Category name"
// @Success 200 {array} string
// @Failure 404 {object} dto.Error
// @Router /sites/{siteId}/categories/{name} [delete]
func (h *CatalogHandler) RemoveCategory(c *gin.Context) {
	names, err := h.catalog.RemoveCategory(h.RequestCtx(c), c.Param("siteId"), c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.Error{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, names)
}

// ReplaceCategories godoc
// @Summary Replace the category list
// @Tags catalog
// @Accept json
// @Produce json
// @Param siteId path string true "Site ID"
// @Param body body dto.ReplaceCategoriesRequest true "Category names"
// @Success 200 {array} string
// @Failure 400 {object} dto.Error
// @Router /sites/{siteId}/categories [put]
func (h *CatalogHandler) ReplaceCategories(c *gin.Context) {
	var req dto.ReplaceCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	names, err := h.catalog.ReplaceCategories(h.RequestCtx(c), c.Param("siteId"), req.Categories)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, names)
}

// DescribeCake godoc
// @Summary Generate a cake description
// @Description Produces a one-sentence description for a cake name. Falls back to stock copy when the model is unavailable.
// @Tags catalog
// @Accept json
// @Produce json
// @Param siteId path string true "Site ID"
// @Param body body dto.DescribeCakeRequest true "Cake name and category"
// @Success 200 {object} dto.DescribeCakeResponse
// @Failure 400 {object} dto.Error
// @Router /sites/{siteId}/cakes/describe [post]
func (h *CatalogHandler) DescribeCake(c *gin.Context) {
	var req dto.DescribeCakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	description := h.describer.Describe(h.RequestCtx(c), req.Name, req.Category)
	c.JSON(http.StatusOK, dto.DescribeCakeResponse{Description: description})
}

// UploadImage godoc
// @Summary Upload and optimize a cake photo
// @Description Accepts a raw image body, scales it down, re-encodes as JPEG, and returns a URL (S3 when configured, inline data URL otherwise)
// @Tags catalog
// @Accept octet-stream
// @Produce json
// @Param siteId path string true "Site ID"
// @Success 200 {object} dto.UploadImageResponse
// @Failure 400 {object} dto.Error
// @Router /sites/{siteId}/images [post]
func (h *CatalogHandler) UploadImage(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil || len(data) == 0 {
		c.JSON(http.StatusBadRequest, dto.Error{Error: "image body required"})
		return
	}

	url, err := h.optimizer.Optimize(h.RequestCtx(c), data)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.UploadImageResponse{URL: url})
}
