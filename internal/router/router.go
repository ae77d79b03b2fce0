// Package router maps the navigation surface (host name + hash fragment) to
// one of the three application modes. It is a pure function of its inputs and
// the current site list.
package router

import (
	"strings"

	"github.com/farahcakes/bakery-engine/internal/domain"
	"github.com/farahcakes/bakery-engine/internal/tenant"
)

// WizardToken is the reserved fragment that selects the site-creation wizard.
const WizardToken = "generator"

type Mode string

const (
	ModePlatform Mode = "PLATFORM"
	ModeWizard   Mode = "WIZARD"
	ModeTenant   Mode = "TENANT"
)

// Route is the resolved navigation state. ClearFragment is set when the
// fragment pointed at a dead slug and the client should self-correct back to
// the dashboard.
type Route struct {
	Mode          Mode
	Site          *domain.Site
	ClearFragment bool
}

// NormalizeFragment strips the hash prefix variants ("#/slug", "#slug",
// "/slug") down to the bare token.
func NormalizeFragment(fragment string) string {
	fragment = strings.TrimPrefix(fragment, "#")
	fragment = strings.TrimPrefix(fragment, "/")
	return strings.TrimSpace(fragment)
}

// Resolve applies the transition rules in order:
//  1. host matches a custom domain -> that tenant, regardless of fragment
//  2. fragment is the wizard token -> wizard
//  3. fragment matches a slug -> that tenant
//  4. fragment is non-empty but dead -> platform, clear the fragment
//  5. otherwise -> platform
func Resolve(host, fragment string, sites []domain.Site) Route {
	if site := tenant.FindByDomain(sites, host); site != nil {
		return Route{Mode: ModeTenant, Site: site}
	}

	fragment = NormalizeFragment(fragment)
	if fragment == WizardToken {
		return Route{Mode: ModeWizard}
	}
	if fragment != "" {
		if site := tenant.FindBySlug(sites, fragment); site != nil {
			return Route{Mode: ModeTenant, Site: site}
		}
		return Route{Mode: ModePlatform, ClearFragment: true}
	}
	return Route{Mode: ModePlatform}
}
