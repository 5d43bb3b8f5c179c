package ytdlp

import "github.com/mralexsaavedra/jellytube/internal/models"

// rawInfo is the loose shape of a yt-dlp JSON record. Flat-playlist entries
// and full video dumps share it; absent fields stay zero-valued.
type rawInfo struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	Uploader          string         `json:"uploader"`
	Channel           string         `json:"channel"`
	PlaylistUploader  string         `json:"playlist_uploader"`
	PlaylistTitle     string         `json:"playlist_title"`
	ChannelID         string         `json:"channel_id"`
	UploaderID        string         `json:"uploader_id"`
	PlaylistChannelID string         `json:"playlist_channel_id"`
	PlaylistID        string         `json:"playlist_id"`
	UploadDate        string         `json:"upload_date"`
	Duration          float64        `json:"duration"`
	Description       string         `json:"description"`
	Thumbnail         string         `json:"thumbnail"`
	Thumbnails        []rawThumbnail `json:"thumbnails"`
	URL               string         `json:"url"`
	WebpageURL        string         `json:"webpage_url"`
}

type rawThumbnail struct {
	URL string `json:"url"`
}

// resolveChannelName prefers the most specific uploader field, falling back
// through playlist-level fields.
func resolveChannelName(r rawInfo) string {
	for _, candidate := range []string{r.Uploader, r.Channel, r.PlaylistUploader, r.PlaylistTitle} {
		if candidate != "" {
			return candidate
		}
	}
	return "Unknown Channel"
}

// resolveChannelID prefers the explicit channel ID over uploader and
// playlist fallbacks.
func resolveChannelID(r rawInfo) string {
	for _, candidate := range []string{r.ChannelID, r.UploaderID, r.PlaylistChannelID, r.PlaylistID} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// resolveThumbnailURL picks the highest quality thumbnail; yt-dlp orders the
// thumbnails array ascending, so the last entry wins.
func resolveThumbnailURL(r rawInfo) string {
	if n := len(r.Thumbnails); n > 0 && r.Thumbnails[n-1].URL != "" {
		return r.Thumbnails[n-1].URL
	}
	return r.Thumbnail
}

func channelInfoFromRaw(r rawInfo) models.ChannelInfo {
	return models.ChannelInfo{
		ID:           resolveChannelID(r),
		Name:         resolveChannelName(r),
		ThumbnailURL: resolveThumbnailURL(r),
	}
}

func summaryFromRaw(r rawInfo) models.VideoSummary {
	u := r.URL
	if u == "" {
		u = r.WebpageURL
	}
	return models.VideoSummary{
		ID:    r.ID,
		Title: r.Title,
		URL:   u,
	}
}

func videoFromRaw(r rawInfo) models.Video {
	return models.Video{
		ID:           r.ID,
		Title:        r.Title,
		UploadDate:   r.UploadDate,
		Duration:     int64(r.Duration),
		Description:  r.Description,
		ThumbnailURL: resolveThumbnailURL(r),
	}
}
