// Package ytdlp implements the metadata source and stream resolver ports by
// shelling out to yt-dlp.
package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mralexsaavedra/jellytube/internal/domain/consts"
	"github.com/mralexsaavedra/jellytube/internal/logging"
	"github.com/mralexsaavedra/jellytube/internal/models"
)

// Options configures listing filters and authentication for all yt-dlp calls.
type Options struct {
	SkipShorts bool
	SkipLives  bool
	DateAfter  string // yyyymmdd, empty to disable
	CookieFile string // Netscape cookie file path, empty to disable
}

// Client runs yt-dlp commands and parses their JSON output.
type Client struct {
	opts Options
}

// New returns a yt-dlp client with the given options.
func New(opts Options) *Client {
	return &Client{opts: opts}
}

// GetChannelInfo resolves channel identity from the first flat-playlist entry.
func (c *Client) GetChannelInfo(ctx context.Context, channelURL string) (models.ChannelInfo, error) {
	out, err := c.run(ctx, buildChannelInfoArgs(channelURL, c.opts.CookieFile))
	if err != nil {
		return models.ChannelInfo{}, fmt.Errorf("failed to fetch channel info for %q: %w", channelURL, err)
	}

	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")

	var raw rawInfo
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return models.ChannelInfo{}, fmt.Errorf("failed to parse channel info for %q: %w", channelURL, err)
	}

	return channelInfoFromRaw(raw), nil
}

// GetChannelVideos lists up to maxVideos flat-playlist entries. Unparsable
// output lines are logged and dropped rather than failing the listing.
func (c *Client) GetChannelVideos(ctx context.Context, channelURL string, maxVideos int) ([]models.VideoSummary, error) {
	out, err := c.run(ctx, buildChannelVideosArgs(channelURL, maxVideos, c.opts))
	if err != nil {
		return nil, fmt.Errorf("failed to list videos for %q: %w", channelURL, err)
	}

	summaries := make([]models.VideoSummary, 0, maxVideos)

	scanner := bufio.NewScanner(bytes.NewReader(out))
	// Flat-playlist lines can exceed the default scanner limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw rawInfo
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			logging.W("Failed to parse JSON line from yt-dlp for %q: %v", channelURL, err)
			continue
		}
		if raw.ID == "" {
			continue
		}

		summaries = append(summaries, summaryFromRaw(raw))
		if len(summaries) == maxVideos {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed reading yt-dlp output for %q: %w", channelURL, err)
	}

	return summaries, nil
}

// GetVideoDetails fetches the full metadata dump for one video.
func (c *Client) GetVideoDetails(ctx context.Context, videoID string) (models.Video, error) {
	videoURL := fmt.Sprintf(consts.WatchURLFmt, videoID)

	out, err := c.run(ctx, buildVideoDetailsArgs(videoURL, c.opts.CookieFile))
	if err != nil {
		return models.Video{}, fmt.Errorf("failed to fetch details for video %q: %w", videoID, err)
	}

	var raw rawInfo
	if err := json.Unmarshal(bytes.TrimSpace(out), &raw); err != nil {
		return models.Video{}, fmt.Errorf("failed to parse details for video %q: %w", videoID, err)
	}

	return videoFromRaw(raw), nil
}

// ResolveStreamURL resolves a directly playable stream URL for a video.
func (c *Client) ResolveStreamURL(ctx context.Context, videoID string) (string, error) {
	videoURL := fmt.Sprintf(consts.WatchURLFmt, videoID)

	out, err := c.run(ctx, buildStreamURLArgs(videoURL, c.opts.CookieFile))
	if err != nil {
		return "", fmt.Errorf("failed to resolve stream for video %q: %w", videoID, err)
	}

	streamURL, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	if streamURL == "" {
		return "", fmt.Errorf("yt-dlp returned no stream URL for video %q", videoID)
	}
	return streamURL, nil
}

// run executes yt-dlp with the given args, returning stdout. Stderr is
// folded into the returned error.
func (c *Client) run(ctx context.Context, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, consts.YtDlp, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.D("Running command: %s", cmd.String())

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
