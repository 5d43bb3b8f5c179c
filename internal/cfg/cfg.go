// Package cfg provides configuration and command-line interface setup for jellytube.
package cfg

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mralexsaavedra/jellytube/internal/app"
	"github.com/mralexsaavedra/jellytube/internal/domain/keys"
	"github.com/mralexsaavedra/jellytube/internal/fsio"
	"github.com/mralexsaavedra/jellytube/internal/logging"
	"github.com/mralexsaavedra/jellytube/internal/scraper"
	"github.com/mralexsaavedra/jellytube/internal/ytdlp"
)

var rootCmd = &cobra.Command{
	Use:   "jellytube",
	Short: "JellyTube mirrors video channels into a media server library.",
	Long: `JellyTube syncs channels from video hosting sites into a Jellyfin-style
library of stream pointer files, NFO sidecars and thumbnails, and serves a
playback proxy that resolves video IDs to direct stream URLs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configFile := viper.GetString(keys.ConfigFile); configFile != "" {
			cInfo, err := os.Stat(configFile)
			if err != nil {
				return fmt.Errorf("failed check for config file path: %w", err)
			}
			if cInfo.IsDir() {
				return fmt.Errorf("config file %q is a directory, should be a file", configFile)
			}

			viper.SetConfigFile(configFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("failed loading config file: %w", err)
			}
		}

		logging.Setup(viper.GetString(keys.LogLevel))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd.Context())
	},
}

// runSync wires the pipeline from settings and runs it until done or
// cancelled.
func runSync(ctx context.Context) error {
	settings, err := LoadSettings()
	if err != nil {
		return err
	}
	if err := validateSyncSettings(settings); err != nil {
		return err
	}

	sink := fsio.New()
	if err := sink.EnsureDirectory(settings.CacheDir); err != nil {
		return err
	}

	scrape := scraper.New()

	cookieFile, err := materializeCookies(ctx, scrape, settings)
	if err != nil {
		logging.W("Could not load browser cookies, continuing without: %v", err)
		cookieFile = ""
	}

	meta := ytdlp.New(ytdlp.Options{
		SkipShorts: settings.SkipShorts,
		SkipLives:  settings.SkipLives,
		DateAfter:  settings.DateAfter,
		CookieFile: cookieFile,
	})

	syncer := app.NewSyncer(meta, sink, scrape.ChannelAvatarURL, app.Options{
		OutputDir:   settings.OutputDir,
		ProxyURL:    settings.ProxyURL,
		MaxVideos:   settings.MaxVideos,
		Concurrency: settings.Concurrency,
	})

	return syncer.Run(ctx, settings.Channels, settings.SyncInterval)
}

// InitCommands initializes all commands and their flags.
func InitCommands() error {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_")) // Convert "output-dir" to "OUTPUT_DIR"

	if err := initProgramFlags(rootCmd); err != nil {
		return err
	}

	serveCmd, err := newServeCmd()
	if err != nil {
		return err
	}
	rootCmd.AddCommand(serveCmd)

	return nil
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
