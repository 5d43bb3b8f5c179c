// Package scraper handles web scraping operations and browser cookie access.
package scraper

import (
	"context"
	"fmt"

	"github.com/gocolly/colly"

	"github.com/mralexsaavedra/jellytube/internal/logging"
)

// Scraper fetches channel pages directly, as a fallback for metadata the
// extractor does not return.
type Scraper struct {
	cookieManager *CookieManager
}

// New returns a new Scraper instance.
func New() *Scraper {
	return &Scraper{
		cookieManager: NewCookieManager(),
	}
}

// CookieManager exposes the scraper's cookie manager for callers that need
// to materialize a cookie file.
func (s *Scraper) CookieManager() *CookieManager {
	return s.cookieManager
}

// ChannelAvatarURL scrapes the channel page's og:image meta tag, which holds
// the channel avatar on the major video hosts.
func (s *Scraper) ChannelAvatarURL(ctx context.Context, channelURL string) (string, error) {
	collector := colly.NewCollector()

	var avatarURL string
	collector.OnHTML(`meta[property="og:image"]`, func(e *colly.HTMLElement) {
		if avatarURL == "" {
			avatarURL = e.Attr("content")
		}
	})

	// Attach browser cookies when available; some channels gate their
	// pages behind consent or login walls.
	if cookies, err := s.cookieManager.GetCookies(ctx, channelURL); err == nil && len(cookies) > 0 {
		if err := collector.SetCookies(channelURL, cookies); err != nil {
			logging.D("Failed to set cookies for %q: %v", channelURL, err)
		}
	}

	if err := collector.Visit(channelURL); err != nil {
		return "", fmt.Errorf("error visiting webpage %q: %w", channelURL, err)
	}
	collector.Wait()

	if avatarURL == "" {
		return "", fmt.Errorf("no og:image found at %q", channelURL)
	}

	logging.D("Scraped avatar URL %q from %q", avatarURL, channelURL)
	return avatarURL, nil
}
