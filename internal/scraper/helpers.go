package scraper

import (
	"net/url"

	"golang.org/x/net/publicsuffix"
)

// baseDomain returns the eTLD+1 for an inputted URL, e.g.
// m.youtube.com -> youtube.com.
func baseDomain(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return publicsuffix.EffectiveTLDPlusOne(u.Hostname())
}
