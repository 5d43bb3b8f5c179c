package app

import (
	"context"
	"time"

	"github.com/mralexsaavedra/jellytube/internal/logging"
)

// SyncAll processes channels strictly sequentially, in input order. A failed
// channel is logged and the loop moves on to the next one.
func (s *Syncer) SyncAll(ctx context.Context, channelURLs []string) {
	logging.I("Starting sync for %d channel(s)", len(channelURLs))

	for _, channelURL := range channelURLs {
		select {
		case <-ctx.Done():
			logging.W("Sync interrupted: %v", ctx.Err())
			return
		default:
		}

		if err := s.SyncChannel(ctx, channelURL); err != nil {
			logging.E("Failed to sync channel %q, continuing to next: %v", channelURL, err)
		}
	}

	logging.I("All channels processed")
}

// Run performs an immediate sync, then repeats on the given interval until
// the context is cancelled. An interval of zero runs once and returns.
func (s *Syncer) Run(ctx context.Context, channelURLs []string, interval time.Duration) error {
	s.SyncAll(ctx, channelURLs)

	if interval <= 0 {
		return nil
	}

	logging.I("Next sync in %s", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			logging.I("Starting scheduled sync...")
			s.SyncAll(ctx, channelURLs)
			logging.I("Next sync in %s", interval)
		}
	}
}
