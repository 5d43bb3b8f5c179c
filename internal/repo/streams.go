// Package repo holds data stores backed by the sqlite database.
package repo

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/mralexsaavedra/jellytube/internal/domain/consts"
)

// StreamStore caches resolved stream URLs with an expiry.
type StreamStore struct {
	db *sql.DB
}

// NewStreamStore returns a stream store with injected database.
func NewStreamStore(db *sql.DB) *StreamStore {
	return &StreamStore{
		db: db,
	}
}

// GetStreamURL returns the cached stream URL for a video if present and not
// yet expired.
func (ss *StreamStore) GetStreamURL(videoID string) (string, bool, error) {
	query := squirrel.
		Select(consts.QStreamURL, consts.QStreamExpiresAt).
		From(consts.DBStreams).
		Where(squirrel.Eq{consts.QStreamVideoID: videoID})

	sqlStr, args, err := query.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return "", false, fmt.Errorf("failed to build query: %w", err)
	}

	var (
		streamURL string
		expiresAt int64
	)
	if err := ss.db.QueryRow(sqlStr, args...).Scan(&streamURL, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to query stream for video %q: %w", videoID, err)
	}

	if time.Now().Unix() >= expiresAt {
		return "", false, nil
	}
	return streamURL, true, nil
}

// SaveStreamURL inserts or refreshes the cached stream URL for a video.
func (ss *StreamStore) SaveStreamURL(videoID, url string, expiresAt time.Time) error {
	query := squirrel.
		Insert(consts.DBStreams).
		Columns(consts.QStreamVideoID, consts.QStreamURL, consts.QStreamExpiresAt).
		Values(videoID, url, expiresAt.Unix()).
		Suffix(fmt.Sprintf("ON CONFLICT(%s) DO UPDATE SET %s = excluded.%s, %s = excluded.%s",
			consts.QStreamVideoID,
			consts.QStreamURL, consts.QStreamURL,
			consts.QStreamExpiresAt, consts.QStreamExpiresAt))

	sqlStr, args, err := query.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := ss.db.Exec(sqlStr, args...); err != nil {
		return fmt.Errorf("failed to save stream for video %q: %w", videoID, err)
	}
	return nil
}

// PruneExpired deletes all expired cache rows.
func (ss *StreamStore) PruneExpired() error {
	query := squirrel.
		Delete(consts.DBStreams).
		Where(squirrel.LtOrEq{consts.QStreamExpiresAt: time.Now().Unix()})

	sqlStr, args, err := query.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := ss.db.Exec(sqlStr, args...); err != nil {
		return fmt.Errorf("failed to prune expired streams: %w", err)
	}
	return nil
}
