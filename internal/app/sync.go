// Package app contains the channel synchronization pipeline.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mralexsaavedra/jellytube/internal/contracts"
	"github.com/mralexsaavedra/jellytube/internal/domain/consts"
	"github.com/mralexsaavedra/jellytube/internal/logging"
	"github.com/mralexsaavedra/jellytube/internal/models"
)

// AvatarFunc resolves a channel page to an avatar image URL. Used as a
// fallback when the metadata source reports no channel thumbnail.
type AvatarFunc func(ctx context.Context, channelURL string) (string, error)

// Options holds the configuration values the pipeline consumes.
type Options struct {
	OutputDir   string
	ProxyURL    string
	MaxVideos   int
	Concurrency int
}

// Syncer drives one channel at a time from URL to a fully populated
// season-structured directory tree.
type Syncer struct {
	meta   contracts.MetadataSource
	sink   contracts.StorageSink
	avatar AvatarFunc // nil disables the fallback
	opts   Options
}

// NewSyncer returns a pipeline over the given ports.
func NewSyncer(meta contracts.MetadataSource, sink contracts.StorageSink, avatar AvatarFunc, opts Options) *Syncer {
	return &Syncer{
		meta:   meta,
		sink:   sink,
		avatar: avatar,
		opts:   opts,
	}
}

// SyncChannel synchronizes a single channel. Individual video failures are
// logged and isolated; only a failed channel-identity or listing fetch
// returns an error.
func (s *Syncer) SyncChannel(ctx context.Context, channelURL string) error {
	logging.I("Starting channel sync for %q", channelURL)

	info, err := s.meta.GetChannelInfo(ctx, channelURL)
	if err != nil {
		return fmt.Errorf("channel info fetch failed for %q: %w", channelURL, err)
	}
	channel := models.Channel{ID: info.ID, Name: info.Name, URL: channelURL}

	summaries, err := s.meta.GetChannelVideos(ctx, channelURL, s.opts.MaxVideos)
	if err != nil {
		return fmt.Errorf("video listing failed for channel %q: %w", channel.Name, err)
	}
	logging.I("Found %d video(s) for channel %q", len(summaries), channel.Name)

	channelDir := filepath.Join(s.opts.OutputDir, channel.DirName())
	if err := s.sink.EnsureDirectory(channelDir); err != nil {
		return err
	}

	// The channel thumbnail is a shared target across videos, so it is
	// fetched once here instead of inside the fan-out.
	s.fetchChannelThumbnail(ctx, channel, info, channelDir)

	conc := max(s.opts.Concurrency, 1)

	jobs := make(chan models.VideoSummary, len(summaries))
	results := make(chan error, len(summaries))

	var wg sync.WaitGroup
	for range conc {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sum := range jobs {
				results <- s.processVideo(ctx, sum, channel)
			}
		}()
	}

	for _, sum := range summaries {
		if sum.ID == "" {
			logging.W("Skipping listing entry with no ID for channel %q", channel.Name)
			continue
		}
		jobs <- sum
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var errs []error
	for err := range results {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		logging.W("Channel %q finished with %d of %d video(s) failed: %v",
			channel.Name, len(errs), len(summaries), errors.Join(errs...))
	}
	logging.I("Channel sync completed for %q", channel.Name)
	return nil
}

// processVideo runs one unit of work: full detail fetch, path computation
// and the idempotent pointer/sidecar/thumbnail writes.
func (s *Syncer) processVideo(ctx context.Context, sum models.VideoSummary, channel models.Channel) error {
	logging.D("Processing video %q", sum.ID)

	video, err := s.meta.GetVideoDetails(ctx, sum.ID)
	if err != nil {
		return fmt.Errorf("could not fetch details for video %q, skipping: %w", sum.ID, err)
	}

	seasonDir := filepath.Join(
		s.opts.OutputDir,
		channel.DirName(),
		consts.SeasonPrefix+video.SeasonYear())

	if err := s.sink.EnsureDirectory(seasonDir); err != nil {
		return err
	}

	base := video.BaseName()

	strmPath := filepath.Join(seasonDir, base+consts.ExtStrm)
	if !s.sink.FileExists(strmPath) {
		if err := s.sink.WriteStrmFile(strmPath, StreamURL(s.opts.ProxyURL, video.ID)); err != nil {
			return err
		}
	}

	nfoPath := filepath.Join(seasonDir, base+consts.ExtNfo)
	if !s.sink.FileExists(nfoPath) {
		if err := s.sink.WriteNfoFile(nfoPath, video, channel); err != nil {
			return err
		}
	}

	// Thumbnail is best effort; a failed download never fails the video.
	thumbPath := filepath.Join(seasonDir, base+consts.ExtThumb)
	if video.ThumbnailURL != "" && !s.sink.FileExists(thumbPath) {
		if err := s.sink.DownloadImage(ctx, video.ThumbnailURL, thumbPath); err != nil {
			logging.W("Failed to download thumbnail for video %q: %v", video.ID, err)
		} else {
			logging.D("Downloaded thumbnail for video %q", video.ID)
		}
	}

	return nil
}

// fetchChannelThumbnail downloads the channel-level folder image once per
// tree. Existence of the file is the only guard; every failure is logged
// and non-fatal.
func (s *Syncer) fetchChannelThumbnail(ctx context.Context, channel models.Channel, info models.ChannelInfo, channelDir string) {
	thumbPath := filepath.Join(channelDir, consts.ChannelThumbFile)
	if s.sink.FileExists(thumbPath) {
		return
	}

	thumbURL := info.ThumbnailURL
	if thumbURL == "" && s.avatar != nil {
		u, err := s.avatar(ctx, channel.URL)
		if err != nil {
			logging.D("Avatar fallback failed for channel %q: %v", channel.Name, err)
		} else {
			thumbURL = u
		}
	}

	if thumbURL == "" {
		logging.W("No thumbnail URL found for channel %q", channel.Name)
		return
	}

	if err := s.sink.DownloadImage(ctx, thumbURL, thumbPath); err != nil {
		logging.W("Failed to download channel thumbnail for %q: %v", channel.Name, err)
		return
	}
	logging.I("Downloaded channel thumbnail for %q", channel.Name)
}

// StreamURL builds the playback URL written into stream-pointer files. One
// trailing slash on the base URL is stripped before the path is appended.
func StreamURL(baseURL, videoID string) string {
	return strings.TrimSuffix(baseURL, "/") + consts.StreamPath + videoID
}
