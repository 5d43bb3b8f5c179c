package scraper

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/browserutils/kooky"
	// Register all supported browsers for kooky.
	_ "github.com/browserutils/kooky/browser/all"

	"github.com/mralexsaavedra/jellytube/internal/logging"
)

// CookieManager holds cookies per base domain.
type CookieManager struct {
	mu      sync.RWMutex
	cookies map[string][]*http.Cookie
}

// NewCookieManager initializes a new cookie manager instance.
func NewCookieManager() *CookieManager {
	return &CookieManager{
		cookies: make(map[string][]*http.Cookie),
	}
}

// GetCookies retrieves browser cookies for a given URL, caching per domain.
func (cm *CookieManager) GetCookies(ctx context.Context, u string) ([]*http.Cookie, error) {
	domain, err := baseDomain(u)
	if err != nil {
		return nil, fmt.Errorf("error extracting base domain in cookie grab: %w", err)
	}

	cm.mu.RLock()
	if cookies, ok := cm.cookies[domain]; ok {
		cm.mu.RUnlock()
		return cookies, nil
	}
	cm.mu.RUnlock()

	cookies := loadCookiesForDomain(ctx, domain)

	cm.mu.Lock()
	cm.cookies[domain] = cookies
	cm.mu.Unlock()

	return cookies, nil
}

// MaterializeCookieFile writes the browser cookies for siteURL to a
// Netscape-format file yt-dlp can consume. Returns an empty path when no
// cookies were found.
func (cm *CookieManager) MaterializeCookieFile(ctx context.Context, siteURL, destPath string) (string, error) {
	cookies, err := cm.GetCookies(ctx, siteURL)
	if err != nil {
		return "", err
	}
	if len(cookies) == 0 {
		logging.I("No browser cookies found for %q, commands will run unauthenticated", siteURL)
		return "", nil
	}

	if err := writeCookieFile(cookies, destPath); err != nil {
		return "", err
	}
	return destPath, nil
}

// loadCookiesForDomain loads the cookies associated with a particular domain.
func loadCookiesForDomain(ctx context.Context, domain string) []*http.Cookie {
	kookyCookies, err := kooky.ReadCookies(ctx, kooky.Valid, kooky.Domain(domain))
	if err != nil {
		logging.D("Failed reading browser cookies: %v", err)
		return nil
	}

	if len(kookyCookies) == 0 {
		logging.D("No cookies found for %s", domain)
		return nil
	}

	logging.I("Found %d cookies for %s", len(kookyCookies), domain)
	return convertToHTTPCookies(kookyCookies)
}

// convertToHTTPCookies converts kooky cookies to http.Cookie format.
func convertToHTTPCookies(kookyCookies []*kooky.Cookie) []*http.Cookie {
	httpCookies := make([]*http.Cookie, len(kookyCookies))
	for i, c := range kookyCookies {
		httpCookies[i] = &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Expires: c.Expires,
			Secure:  c.Secure,
		}
	}
	return httpCookies
}

// writeCookieFile saves the cookies to a file in Netscape format.
func writeCookieFile(cookies []*http.Cookie, cookieFilePath string) error {
	file, err := os.Create(cookieFilePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.E("Failed to close file %q: %v", cookieFilePath, err)
		}
	}()

	if _, err := file.WriteString("# Netscape HTTP Cookie File\n# https://curl.haxx.se/rfc/cookie_spec.html\n# This is a generated file! Do not edit.\n\n"); err != nil {
		return err
	}

	logging.D("Saving %d cookies to file %s...", len(cookies), cookieFilePath)

	for _, cookie := range cookies {
		domain := cookie.Domain
		if !strings.HasPrefix(domain, ".") && strings.Count(domain, ".") > 1 {
			domain = "." + domain
		}

		secure := "FALSE"
		if cookie.Secure {
			secure = "TRUE"
		}

		expires := int64(0)
		if !cookie.Expires.IsZero() {
			expires = cookie.Expires.Unix()
		}

		if _, err := fmt.Fprintf(file, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			domain, "FALSE", cookie.Path, secure, expires, cookie.Name, cookie.Value); err != nil {
			return err
		}
	}
	return nil
}
