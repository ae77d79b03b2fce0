package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farahcakes/bakery-engine/internal/api/dto"
	"github.com/farahcakes/bakery-engine/internal/middleware"
	"github.com/farahcakes/bakery-engine/internal/service"
)

type AuthHandler struct {
	*BaseHandler
	sites *service.SiteService
	auth  *middleware.AuthMiddleware
}

func NewAuthHandler(sites *service.SiteService, auth *middleware.AuthMiddleware) *AuthHandler {
	return &AuthHandler{sites: sites, auth: auth}
}

// Login godoc
// @Summary Log in to a boutique dashboard
// @Description Exchange manager credentials for a JWT scoped to one boutique
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	site, err := h.sites.Authenticate(req.Site, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrSiteNotFound) || errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.Error{Error: "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Error{Error: err.Error()})
		return
	}

	token, err := h.auth.GenerateToken(site.AdminUser, site.ID, []string{"operator"})
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		Site:  *dto.FromSite(site),
	})
}
