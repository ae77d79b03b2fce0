// Package tenant holds pure lookups over the platform site list plus slug
// derivation for new boutiques.
package tenant

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/farahcakes/bakery-engine/internal/domain"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonWordRe    = regexp.MustCompile(`[^\w-]+`)
	multiDashRe  = regexp.MustCompile(`--+`)
)

// FindBySlug returns the site with the given slug, or nil.
func FindBySlug(sites []domain.Site, slug string) *domain.Site {
	for i := range sites {
		if sites[i].Slug == slug {
			return &sites[i]
		}
	}
	return nil
}

// FindByDomain returns the site whose custom domain exactly matches host, or
// nil. Sites without a custom domain never match.
func FindByDomain(sites []domain.Site, host string) *domain.Site {
	for i := range sites {
		if sites[i].CustomDomain != "" && sites[i].CustomDomain == host {
			return &sites[i]
		}
	}
	return nil
}

// FindByID returns the site with the given ID, or nil.
func FindByID(sites []domain.Site, id string) *domain.Site {
	for i := range sites {
		if sites[i].ID == id {
			return &sites[i]
		}
	}
	return nil
}

// DeriveSlug turns a display name into a URL-friendly slug: lower-cased,
// whitespace collapsed to hyphens, non-word characters stripped, repeated
// hyphens collapsed.
func DeriveSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = whitespaceRe.ReplaceAllString(slug, "-")
	slug = nonWordRe.ReplaceAllString(slug, "")
	slug = multiDashRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// UniqueSlug derives a slug from name and, on collision with an existing
// site, appends a numeric suffix until it is free. excludeID skips the site
// being edited so renaming to its own slug is not a collision.
func UniqueSlug(sites []domain.Site, name, excludeID string) string {
	base := DeriveSlug(name)
	if base == "" {
		base = "bakery"
	}

	taken := func(slug string) bool {
		for i := range sites {
			if sites[i].Slug == slug && sites[i].ID != excludeID {
				return true
			}
		}
		return false
	}

	if !taken(base) {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if !taken(candidate) {
			return candidate
		}
	}
}

// DomainTaken reports whether another site already claims the custom domain.
func DomainTaken(sites []domain.Site, customDomain, excludeID string) bool {
	if customDomain == "" {
		return false
	}
	for i := range sites {
		if sites[i].CustomDomain == customDomain && sites[i].ID != excludeID {
			return true
		}
	}
	return false
}
