package cfg

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mralexsaavedra/jellytube/internal/database"
	"github.com/mralexsaavedra/jellytube/internal/domain/consts"
	"github.com/mralexsaavedra/jellytube/internal/fsio"
	"github.com/mralexsaavedra/jellytube/internal/logging"
	"github.com/mralexsaavedra/jellytube/internal/repo"
	"github.com/mralexsaavedra/jellytube/internal/scraper"
	"github.com/mralexsaavedra/jellytube/internal/server"
	"github.com/mralexsaavedra/jellytube/internal/ytdlp"
)

// newServeCmd builds the playback proxy command.
func newServeCmd() (*cobra.Command, error) {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the playback proxy server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	if err := initServeFlags(serveCmd); err != nil {
		return nil, err
	}
	return serveCmd, nil
}

// runServe wires the proxy from settings and serves until cancelled.
func runServe(ctx context.Context) error {
	settings, err := LoadSettings()
	if err != nil {
		return err
	}

	sink := fsio.New()
	if err := sink.EnsureDirectory(settings.CacheDir); err != nil {
		return err
	}

	db, err := database.Open(filepath.Join(settings.CacheDir, consts.DBFileName))
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.E("Failed to close stream cache database: %v", err)
		}
	}()

	store := repo.NewStreamStore(db.Conn())

	scrape := scraper.New()
	cookieFile, err := materializeCookies(ctx, scrape, settings)
	if err != nil {
		logging.W("Could not load browser cookies, continuing without: %v", err)
		cookieFile = ""
	}

	resolver := ytdlp.New(ytdlp.Options{CookieFile: cookieFile})

	return server.StartServer(ctx, settings.ProxyPort, resolver, store, settings.StreamTTL)
}

// materializeCookies writes the browser cookie jar to a yt-dlp readable file
// when a cookie source is configured. An empty path disables cookie use.
func materializeCookies(ctx context.Context, scrape *scraper.Scraper, settings *Settings) (string, error) {
	if settings.CookieSource == "" {
		return "", nil
	}
	dest := filepath.Join(settings.CacheDir, consts.CookieFileName)
	return scrape.CookieManager().MaterializeCookieFile(ctx, consts.CookieSite, dest)
}
