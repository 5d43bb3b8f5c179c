// Package keys holds the configuration keys used across jellytube.
package keys

// Program setting keys.
const (
	Channels     = "channels"
	OutputDir    = "output-dir"
	ProxyURL     = "proxy-url"
	MaxVideos    = "max-videos"
	Concurrency  = "concurrency"
	SkipShorts   = "skip-shorts"
	SkipLives    = "skip-lives"
	SyncInterval = "sync-interval"
	DateAfter    = "date-after"
	CookieSource = "cookie-source"
	LogLevel     = "log-level"
	ConfigFile   = "config-file"
)

// Proxy server keys.
const (
	ProxyPort = "proxy-port"
	CacheDir  = "cache-dir"
	StreamTTL = "stream-ttl"
)
