package models

import (
	"fmt"

	"github.com/mralexsaavedra/jellytube/internal/parsing"
)

// VideoSummary is a lightweight listing entry from a channel's flat
// playlist. It typically lacks the upload date.
type VideoSummary struct {
	ID    string
	Title string
	URL   string
}

// Video holds the full metadata for a single video.
type Video struct {
	ID           string
	Title        string
	UploadDate   string // yyyymmdd, may be empty
	Duration     int64  // seconds, may be zero
	Description  string
	ThumbnailURL string
}

// SanitizedTitle returns the title with filesystem-illegal characters removed.
func (v Video) SanitizedTitle() string {
	return parsing.Sanitize(v.Title)
}

// SeasonYear returns the video's season bucket, "Unknown" when the upload
// date is absent or too short.
func (v Video) SeasonYear() string {
	return parsing.SeasonBucket(v.UploadDate)
}

// BaseName returns the shared base filename for the video's pointer, sidecar
// and thumbnail files. The bracketed ID keeps names unique even when two
// titles sanitize identically.
func (v Video) BaseName() string {
	return fmt.Sprintf("%s [%s]", v.SanitizedTitle(), v.ID)
}
