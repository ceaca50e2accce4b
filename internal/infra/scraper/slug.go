package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// SlugFromHostname normalizes a hostname into a tenant subdomain: leading
// "www." stripped, the ".no" country suffix stripped, remaining dots and any
// other non-alphanumeric characters replaced with hyphens, lowercased.
// Idempotent: SlugFromHostname(SlugFromHostname(h)) == SlugFromHostname(h).
func SlugFromHostname(hostname string) string {
	slug := strings.TrimPrefix(hostname, "www.")
	slug = strings.TrimSuffix(slug, ".no")
	slug = strings.ReplaceAll(slug, ".", "-")
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.ToLower(slug)
}

// SlugFromURL derives the subdomain slug for a scrape target URL.
func SlugFromURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url %q, %v", rawURL, err)
	}
	hostname := parsed.Hostname()
	if hostname == "" {
		return "", fmt.Errorf("url %q has no hostname", rawURL)
	}
	return SlugFromHostname(hostname), nil
}
