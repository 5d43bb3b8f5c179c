package cfg

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mralexsaavedra/jellytube/internal/domain/keys"
	"github.com/mralexsaavedra/jellytube/internal/parsing"
)

// Settings holds the resolved program configuration.
type Settings struct {
	Channels     []string
	OutputDir    string
	ProxyURL     string
	MaxVideos    int
	Concurrency  int
	SkipShorts   bool
	SkipLives    bool
	SyncInterval time.Duration
	DateAfter    string // normalized to yyyymmdd
	CookieSource string
	LogLevel     string

	ProxyPort string
	CacheDir  string
	StreamTTL time.Duration
}

// LoadSettings reads and validates the full configuration from Viper.
func LoadSettings() (*Settings, error) {
	s := &Settings{
		Channels:     splitChannels(viper.GetStringSlice(keys.Channels)),
		OutputDir:    viper.GetString(keys.OutputDir),
		ProxyURL:     viper.GetString(keys.ProxyURL),
		MaxVideos:    viper.GetInt(keys.MaxVideos),
		Concurrency:  viper.GetInt(keys.Concurrency),
		SkipShorts:   viper.GetBool(keys.SkipShorts),
		SkipLives:    viper.GetBool(keys.SkipLives),
		SyncInterval: time.Duration(viper.GetInt(keys.SyncInterval)) * time.Hour,
		CookieSource: viper.GetString(keys.CookieSource),
		LogLevel:     viper.GetString(keys.LogLevel),
		ProxyPort:    viper.GetString(keys.ProxyPort),
		CacheDir:     viper.GetString(keys.CacheDir),
		StreamTTL:    time.Duration(viper.GetInt(keys.StreamTTL)) * time.Minute,
	}

	if s.MaxVideos < 1 {
		return nil, fmt.Errorf("%s must be at least 1, got %d", keys.MaxVideos, s.MaxVideos)
	}
	if s.Concurrency < 1 {
		return nil, fmt.Errorf("%s must be at least 1, got %d", keys.Concurrency, s.Concurrency)
	}

	if raw := viper.GetString(keys.DateAfter); raw != "" {
		normalized, err := parsing.DateAfter(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", keys.DateAfter, raw, err)
		}
		s.DateAfter = normalized
	}

	if s.CacheDir == "" {
		s.CacheDir = filepath.Join(s.OutputDir, ".jellytube")
	}

	return s, nil
}

// validateSyncSettings checks settings the sync command needs beyond the
// shared validation.
func validateSyncSettings(s *Settings) error {
	if len(s.Channels) == 0 {
		return errors.New("no channels configured, set the channels flag or the CHANNELS environment variable")
	}
	return nil
}

// splitChannels flattens comma-joined entries so both repeated flags and a
// single CHANNELS=a,b,c environment value work.
func splitChannels(raw []string) []string {
	var channels []string
	for _, entry := range raw {
		for _, c := range strings.Split(entry, ",") {
			if c = strings.TrimSpace(c); c != "" {
				channels = append(channels, c)
			}
		}
	}
	return channels
}
