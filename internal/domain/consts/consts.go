// Package consts holds constants used across jellytube.
package consts

// External programs.
const (
	YtDlp = "yt-dlp"
)

// Library layout.
const (
	ExtStrm          = ".strm"
	ExtNfo           = ".nfo"
	ExtThumb         = ".jpg"
	SeasonPrefix     = "Season "
	UnknownSeason    = "Unknown"
	ChannelThumbFile = "folder.jpg"
)

// URL templates.
const (
	WatchURLFmt = "https://www.youtube.com/watch?v=%s"
	StreamPath  = "/stream/"
	CookieSite  = "https://www.youtube.com"
)

// Defaults.
const (
	DefaultOutputDir   = "./output"
	DefaultProxyURL    = "http://localhost:8826"
	DefaultProxyPort   = "8826"
	DefaultMaxVideos   = 50
	DefaultConcurrency = 2
	DefaultSyncHours   = 6
	DefaultStreamTTL   = 240 // minutes
)

// Database.
const (
	DBFileName       = "jellytube.db"
	CookieFileName   = "cookies.txt"
	DBStreams        = "streams"
	QStreamVideoID   = "video_id"
	QStreamURL       = "stream_url"
	QStreamExpiresAt = "expires_at"
)
