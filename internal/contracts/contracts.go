// Package contracts defines the ports consumed by the sync pipeline and the
// playback proxy.
package contracts

import (
	"context"
	"time"

	"github.com/mralexsaavedra/jellytube/internal/models"
)

// MetadataSource resolves channel and video metadata from the remote host.
type MetadataSource interface {
	// GetChannelInfo resolves channel identity from the channel URL.
	GetChannelInfo(ctx context.Context, channelURL string) (models.ChannelInfo, error)

	// GetChannelVideos lists up to maxVideos lightweight entries for a channel.
	GetChannelVideos(ctx context.Context, channelURL string, maxVideos int) ([]models.VideoSummary, error)

	// GetVideoDetails fetches full metadata for a single video.
	GetVideoDetails(ctx context.Context, videoID string) (models.Video, error)
}

// StorageSink performs the filesystem side of a sync run.
type StorageSink interface {
	EnsureDirectory(path string) error
	FileExists(path string) bool
	WriteStrmFile(path, url string) error
	WriteNfoFile(path string, video models.Video, channel models.Channel) error

	// DownloadImage streams a remote image to destPath. A failed download
	// must not leave a partial file behind.
	DownloadImage(ctx context.Context, url, destPath string) error
}

// StreamResolver resolves a video ID to a directly playable stream URL.
type StreamResolver interface {
	ResolveStreamURL(ctx context.Context, videoID string) (string, error)
}

// StreamStore caches resolved stream URLs for the playback proxy.
type StreamStore interface {
	GetStreamURL(videoID string) (url string, found bool, err error)
	SaveStreamURL(videoID, url string, expiresAt time.Time) error
	PruneExpired() error
}
