package utils

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

type ContextKey string

const (
	ClaimsKey ContextKey = "claims"
	SiteIDKey ContextKey = "site_id"
)

var (
	ErrNoClaimsInContext = errors.New("no claims found in context")
	ErrInvalidClaimsType = errors.New("invalid claims type")
	ErrNoSiteIDInClaims  = errors.New("no site_id found in claims")
	ErrInvalidSiteIDType = errors.New("site_id must be a string")
)

func GetSiteIDFromContext(c context.Context) (string, error) {
	claims, exists := c.Value(ClaimsKey).(jwt.MapClaims)
	if !exists {
		return "", ErrNoClaimsInContext
	}

	siteID, exists := claims[string(SiteIDKey)]
	if !exists {
		return "", ErrNoSiteIDInClaims
	}

	siteIDStr, ok := siteID.(string)
	if !ok {
		return "", ErrInvalidSiteIDType
	}

	return siteIDStr, nil
}
