package scraper

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteCookieFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cookies.txt")
	cookies := []*http.Cookie{
		{
			Name:    "SID",
			Value:   "abc",
			Path:    "/",
			Domain:  "youtube.com",
			Secure:  true,
			Expires: time.Unix(1900000000, 0),
		},
	}

	if err := writeCookieFile(cookies, path); err != nil {
		t.Fatalf("writeCookieFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "# Netscape HTTP Cookie File") {
		t.Fatalf("missing Netscape header:\n%s", content)
	}
	if !strings.Contains(content, "youtube.com\tFALSE\t/\tTRUE\t1900000000\tSID\tabc\n") {
		t.Fatalf("cookie line not written as expected:\n%s", content)
	}
}

func TestBaseDomain(t *testing.T) {
	t.Parallel()

	got, err := baseDomain("https://m.youtube.com/@somechannel")
	if err != nil {
		t.Fatalf("baseDomain failed: %v", err)
	}
	if got != "youtube.com" {
		t.Fatalf("baseDomain = %q, want youtube.com", got)
	}
}
