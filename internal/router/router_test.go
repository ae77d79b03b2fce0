package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farahcakes/bakery-engine/internal/domain"
)

var testSites = []domain.Site{
	{ID: "site1", Slug: "farah-cakes", CustomDomain: "farahcakes.com"},
	{ID: "site2", Slug: "sweet-tooth"},
}

func TestResolve_CustomDomainWinsOverFragment(t *testing.T) {
	// A custom domain pins the tenant regardless of what the fragment says.
	route := Resolve("farahcakes.com", "#/sweet-tooth", testSites)

	assert.Equal(t, ModeTenant, route.Mode)
	assert.Equal(t, "site1", route.Site.ID)
	assert.False(t, route.ClearFragment)
}

func TestResolve_CustomDomainWinsOverWizardToken(t *testing.T) {
	route := Resolve("farahcakes.com", "#/"+WizardToken, testSites)

	assert.Equal(t, ModeTenant, route.Mode)
	assert.Equal(t, "site1", route.Site.ID)
}

func TestResolve_WizardToken(t *testing.T) {
	route := Resolve("platform.example.com", "#/"+WizardToken, testSites)

	assert.Equal(t, ModeWizard, route.Mode)
	assert.Nil(t, route.Site)
}

func TestResolve_SlugFragment(t *testing.T) {
	for _, fragment := range []string{"#/sweet-tooth", "#sweet-tooth", "/sweet-tooth", "sweet-tooth"} {
		route := Resolve("platform.example.com", fragment, testSites)

		assert.Equal(t, ModeTenant, route.Mode, "fragment %q", fragment)
		assert.Equal(t, "site2", route.Site.ID, "fragment %q", fragment)
	}
}

func TestResolve_DeadSlugClearsFragment(t *testing.T) {
	route := Resolve("platform.example.com", "#/deleted-bakery", testSites)

	assert.Equal(t, ModePlatform, route.Mode)
	assert.Nil(t, route.Site)
	assert.True(t, route.ClearFragment)
}

func TestResolve_EmptyFragmentIsPlatform(t *testing.T) {
	route := Resolve("platform.example.com", "", testSites)

	assert.Equal(t, ModePlatform, route.Mode)
	assert.False(t, route.ClearFragment)
}

func TestResolve_NoSites(t *testing.T) {
	route := Resolve("platform.example.com", "#/anything", nil)

	assert.Equal(t, ModePlatform, route.Mode)
	assert.True(t, route.ClearFragment)
}

func TestNormalizeFragment(t *testing.T) {
	cases := map[string]string{
		"#/farah-cakes": "farah-cakes",
		"#farah-cakes":  "farah-cakes",
		"/farah-cakes":  "farah-cakes",
		"farah-cakes":   "farah-cakes",
		"#/":            "",
		"":              "",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeFragment(input), "input %q", input)
	}
}
