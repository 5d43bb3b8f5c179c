package ytdlp

import (
	"strconv"
	"strings"
)

// buildChannelInfoArgs builds the argument list for resolving channel
// identity from the first flat-playlist entry.
func buildChannelInfoArgs(channelURL, cookieFile string) []string {
	args := make([]string, 0, 8)
	args = append(args,
		"--flat-playlist",
		"--dump-json",
		"--playlist-items", "1",
		"--no-warnings")

	if cookieFile != "" {
		args = append(args, "--cookies", cookieFile)
	}

	return append(args, channelURL)
}

// buildChannelVideosArgs builds the argument list for a bounded flat-playlist
// listing, with optional shorts/lives filters and a lower date bound.
func buildChannelVideosArgs(channelURL string, maxVideos int, opts Options) []string {
	args := make([]string, 0, 16)
	args = append(args,
		"--flat-playlist",
		"--dump-json",
		"--no-warnings",
		"--playlist-end", strconv.Itoa(maxVideos))

	var matchFilters []string
	if opts.SkipShorts {
		// original_url is the reliable shorts signal in flat-playlist output.
		matchFilters = append(matchFilters, "original_url!*=/shorts/")
	}
	if opts.SkipLives {
		matchFilters = append(matchFilters, "!is_live")
	}
	if len(matchFilters) > 0 {
		args = append(args, "--match-filter", strings.Join(matchFilters, " & "))
	}

	if opts.DateAfter != "" {
		args = append(args, "--dateafter", opts.DateAfter)
	}

	if opts.CookieFile != "" {
		args = append(args, "--cookies", opts.CookieFile)
	}

	return append(args, channelURL)
}

// buildVideoDetailsArgs builds the argument list for a full metadata dump of
// one video.
func buildVideoDetailsArgs(videoURL, cookieFile string) []string {
	args := make([]string, 0, 6)
	args = append(args,
		"--dump-json",
		"--skip-download",
		"--no-warnings")

	if cookieFile != "" {
		args = append(args, "--cookies", cookieFile)
	}

	return append(args, videoURL)
}

// buildStreamURLArgs builds the argument list for resolving the best
// pre-muxed stream URL for playback.
func buildStreamURLArgs(videoURL, cookieFile string) []string {
	args := make([]string, 0, 6)
	args = append(args,
		"-f", "best[ext=mp4]/best",
		"--get-url")

	if cookieFile != "" {
		args = append(args, "--cookies", cookieFile)
	}

	return append(args, videoURL)
}
