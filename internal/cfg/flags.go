package cfg

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mralexsaavedra/jellytube/internal/domain/consts"
	"github.com/mralexsaavedra/jellytube/internal/domain/keys"
)

// initProgramFlags initializes the shared user flag settings.
func initProgramFlags(rootCmd *cobra.Command) error {

	// Channel sources
	rootCmd.PersistentFlags().StringSliceP(keys.Channels, "c", nil, "Channel URLs to sync (repeatable or comma separated)")

	// Library output
	rootCmd.PersistentFlags().StringP(keys.OutputDir, "o", consts.DefaultOutputDir, "Root directory of the generated media library")

	// Playback proxy base URL written into stream pointer files
	rootCmd.PersistentFlags().String(keys.ProxyURL, consts.DefaultProxyURL, "Base URL of the playback proxy")

	// Listing limits and filters
	rootCmd.PersistentFlags().Int(keys.MaxVideos, consts.DefaultMaxVideos, "Maximum number of videos fetched per channel")
	rootCmd.PersistentFlags().Int(keys.Concurrency, consts.DefaultConcurrency, "Number of videos processed in parallel")
	rootCmd.PersistentFlags().Bool(keys.SkipShorts, false, "Skip short-form videos")
	rootCmd.PersistentFlags().Bool(keys.SkipLives, false, "Skip live and upcoming streams")
	rootCmd.PersistentFlags().String(keys.DateAfter, "", "Only sync videos uploaded on or after this date")

	// Scheduling
	rootCmd.PersistentFlags().Int(keys.SyncInterval, consts.DefaultSyncHours, "Hours between syncs (0 syncs once and exits)")

	// Authentication
	rootCmd.PersistentFlags().String(keys.CookieSource, "", "Cookie source for authenticated fetches (set to 'browser' to read installed browser cookies)")

	// Misc
	rootCmd.PersistentFlags().String(keys.LogLevel, "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String(keys.CacheDir, "", "Directory for the cookie file and stream cache (defaults inside the output dir)")
	rootCmd.PersistentFlags().String(keys.ConfigFile, "", "Config file to load settings from")

	for _, key := range []string{
		keys.Channels,
		keys.OutputDir,
		keys.ProxyURL,
		keys.MaxVideos,
		keys.Concurrency,
		keys.SkipShorts,
		keys.SkipLives,
		keys.DateAfter,
		keys.SyncInterval,
		keys.CookieSource,
		keys.LogLevel,
		keys.CacheDir,
		keys.ConfigFile,
	} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)); err != nil {
			return err
		}
	}
	return nil
}

// initServeFlags initializes flags specific to the proxy server command.
func initServeFlags(serveCmd *cobra.Command) error {
	serveCmd.Flags().StringP(keys.ProxyPort, "p", consts.DefaultProxyPort, "Port the playback proxy listens on")
	serveCmd.Flags().Int(keys.StreamTTL, consts.DefaultStreamTTL, "Minutes a resolved stream URL stays cached")

	for _, key := range []string{keys.ProxyPort, keys.StreamTTL} {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(key)); err != nil {
			return err
		}
	}
	return nil
}
