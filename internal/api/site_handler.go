package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farahcakes/bakery-engine/internal/api/dto"
	"github.com/farahcakes/bakery-engine/internal/domain"
	"github.com/farahcakes/bakery-engine/internal/service"
)

type SiteHandler struct {
	*BaseHandler
	service *service.SiteService
}

func NewSiteHandler(service *service.SiteService) *SiteHandler {
	return &SiteHandler{service: service}
}

// CreateSite godoc
// @Summary Create a new boutique
// @Description Create a boutique from the wizard form and seed its catalog
// @Tags sites
// @Accept json
// @Produce json
// @Param body body dto.CreateSiteRequest true "Boutique object"
// @Success 201 {object} dto.SiteResponse
// @Failure 400 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Router /sites [post]
func (h *SiteHandler) CreateSite(c *gin.Context) {
	var req dto.CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	site, err := h.service.Create(h.RequestCtx(c), req)
	if err != nil {
		if errors.Is(err, service.ErrDomainTaken) {
			c.JSON(http.StatusConflict, dto.Error{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, site)
}

// ListSites godoc
// @Summary List all boutiques
// @Description Get the full boutique list, reconciled against the remote store
// @Tags sites
// @Produce json
// @Success 200 {array} dto.SiteResponse
// @Failure 401 {object} dto.Error
// @Router /sites [get]
func (h *SiteHandler) ListSites(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.List(h.RequestCtx(c)))
}

// GetSite godoc
// @Summary Get one boutique
// @Tags sites
// @Produce json
// @Param siteId path string true "Site ID"
// @Success 200 {object} dto.SiteResponse
// @Failure 404 {object} dto.Error
// @Router /sites/{siteId} [get]
func (h *SiteHandler) GetSite(c *gin.Context) {
	site, err := h.service.GetByID(c.Param("siteId"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.Error{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromSite(site))
}

// UpdateSite godoc
// @Summary Update a boutique's configuration
// @Description Edit boutique settings. The slug is fixed at creation and does not change on rename.
// @Tags sites
// @Accept json
// @Produce json
// @Param siteId path string true "Site ID"
// @Param body body dto.UpdateSiteRequest true "Boutique object"
// @Success 200 {object} dto.SiteResponse
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Router /sites/{siteId} [put]
func (h *SiteHandler) UpdateSite(c *gin.Context) {
	var req dto.UpdateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	site, err := h.service.Update(h.RequestCtx(c), c.Param("siteId"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSiteNotFound):
			c.JSON(http.StatusNotFound, dto.Error{Error: err.Error()})
		case errors.Is(err, service.ErrDomainTaken):
			c.JSON(http.StatusConflict, dto.Error{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.Error{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, site)
}

// DeleteSite godoc
// @Summary Delete a boutique
// @Tags sites
// @Produce json
// @Param siteId path string true "Site ID"
// @Success 204
// @Failure 404 {object} dto.Error
// @Router /sites/{siteId} [delete]
func (h *SiteHandler) DeleteSite(c *gin.Context) {
	if err := h.service.Delete(h.RequestCtx(c), c.Param("siteId")); err != nil {
		c.JSON(http.StatusNotFound, dto.Error{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetDefaults godoc
// @Summary Get the global seed catalog
// @Description Seed cakes and categories cloned into every new boutique
// @Tags defaults
// @Produce json
// @Success 200 {object} dto.DefaultsResponse
// @Router /defaults [get]
func (h *SiteHandler) GetDefaults(c *gin.Context) {
	cakes, categories := h.service.Defaults(h.RequestCtx(c))
	c.JSON(http.StatusOK, dto.DefaultsResponse{
		Cakes:      dto.FromCakes(cakes),
		Categories: categories,
	})
}

// UpdateDefaults godoc
// @Summary Replace the global seed catalog
// @Tags defaults
// @Accept json
// @Produce json
// @Param body body dto.UpdateDefaultsRequest true "Seed catalog"
// @Success 200 {object} dto.DefaultsResponse
// @Failure 400 {object} dto.Error
// @Router /defaults [put]
func (h *SiteHandler) UpdateDefaults(c *gin.Context) {
	var req dto.UpdateDefaultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	cakes := make([]domain.Cake, 0, len(req.Cakes))
	for i := range req.Cakes {
		cakes = append(cakes, *req.Cakes[i].ToCake())
	}

	savedCakes, savedCategories := h.service.UpdateDefaults(h.RequestCtx(c), cakes, req.Categories)
	c.JSON(http.StatusOK, dto.DefaultsResponse{
		Cakes:      dto.FromCakes(savedCakes),
		Categories: savedCategories,
	})
}
