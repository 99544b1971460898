package favicon

import (
	"fmt"
	"net/url"
	"strings"
)

// PlaceholderGlyph is rendered once every provider has failed.
const PlaceholderGlyph = "🔗"

// ProviderURLs returns the ordered favicon service URLs for a site.
// Multiple providers because any single one may be blocked regionally
// (Google in particular); callers walk the list on image load failure.
func ProviderURLs(siteURL string, size int) []string {
	domain := hostnameOf(siteURL)
	if domain == "" {
		return nil
	}
	if size <= 0 {
		size = 64
	}

	return []string{
		// Google: high quality, but blocked in some regions.
		fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=%d", domain, size),
		// FaviconKit: reliable alternative.
		fmt.Sprintf("https://api.faviconkit.com/%s/64", domain),
		// Unavatar: aggregates multiple sources.
		fmt.Sprintf("https://unavatar.io/%s", domain),
	}
}

// Chain is the presentational retry ladder for a single rendered icon:
// the original icon URL first, then each provider in order, then the
// placeholder glyph. It performs no network probing itself; the caller's
// image error events drive Advance.
type Chain struct {
	icon       string
	site       string
	candidates []string
	step       int
}

// NewChain builds a ladder for an icon value and its bookmark's site URL.
func NewChain(icon, site string, size int) *Chain {
	c := &Chain{}
	c.Reset(icon, site, size)
	return c
}

// Reset rebuilds the ladder. Called whenever icon or site changes.
func (c *Chain) Reset(icon, site string, size int) {
	c.icon = icon
	c.site = site
	c.step = 0
	c.candidates = nil
	if strings.HasPrefix(icon, "http") {
		c.candidates = append(c.candidates, icon)
		c.candidates = append(c.candidates, ProviderURLs(site, size)...)
	}
	// A non-URL icon (emoji literal) has no ladder at all.
}

// Current returns the candidate to render. ok is false once the ladder is
// exhausted (or the icon was never a URL); render the placeholder then.
func (c *Chain) Current() (string, bool) {
	if c.step >= len(c.candidates) {
		return "", false
	}
	return c.candidates[c.step], true
}

// Advance moves to the next candidate after a load failure.
func (c *Chain) Advance() {
	if c.step < len(c.candidates) {
		c.step++
	}
}

// Exhausted reports whether every candidate has failed.
func (c *Chain) Exhausted() bool {
	return c.step >= len(c.candidates)
}

// Candidates exposes the full ordered ladder, e.g. for a frontend that
// wants to manage the error events itself.
func (c *Chain) Candidates() []string {
	return append([]string(nil), c.candidates...)
}

func hostnameOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
