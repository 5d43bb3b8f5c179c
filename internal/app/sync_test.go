package app_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mralexsaavedra/jellytube/internal/app"
	"github.com/mralexsaavedra/jellytube/internal/models"
)

// stubSource is an in-memory metadata source with per-video failure
// injection and optional gating for concurrency checks.
type stubSource struct {
	mu          sync.Mutex
	info        models.ChannelInfo
	infoErr     error
	summaries   []models.VideoSummary
	listErr     error
	details     map[string]models.Video
	failDetails map[string]bool
	gate        chan struct{} // when non-nil, detail fetches block until closed

	detailCalls int
	inFlight    int
	maxInFlight int
}

func (s *stubSource) GetChannelInfo(ctx context.Context, channelURL string) (models.ChannelInfo, error) {
	if s.infoErr != nil {
		return models.ChannelInfo{}, s.infoErr
	}
	return s.info, nil
}

func (s *stubSource) GetChannelVideos(ctx context.Context, channelURL string, maxVideos int) ([]models.VideoSummary, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if len(s.summaries) > maxVideos {
		return s.summaries[:maxVideos], nil
	}
	return s.summaries, nil
}

func (s *stubSource) GetVideoDetails(ctx context.Context, videoID string) (models.Video, error) {
	s.mu.Lock()
	s.detailCalls++
	s.inFlight++
	if s.inFlight > s.maxInFlight {
		s.maxInFlight = s.inFlight
	}
	gate := s.gate
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}

	s.mu.Lock()
	s.inFlight--
	fail := s.failDetails[videoID]
	v, ok := s.details[videoID]
	s.mu.Unlock()

	if fail || !ok {
		return models.Video{}, fmt.Errorf("extractor error for %s", videoID)
	}
	return v, nil
}

func (s *stubSource) stats() (calls, maxInFlight int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detailCalls, s.maxInFlight
}

// stubSink records writes in memory and reports existence from them.
type stubSink struct {
	mu         sync.Mutex
	dirs       map[string]bool
	files      map[string]string
	strmWrites int
	nfoWrites  int
	downloads  []string // source URLs, in order
}

func newStubSink() *stubSink {
	return &stubSink{
		dirs:  make(map[string]bool),
		files: make(map[string]string),
	}
}

func (s *stubSink) EnsureDirectory(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirs[path] = true
	return nil
}

func (s *stubSink) FileExists(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[path]
	return ok
}

func (s *stubSink) WriteStrmFile(path, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strmWrites++
	s.files[path] = url
	return nil
}

func (s *stubSink) WriteNfoFile(path string, video models.Video, channel models.Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nfoWrites++
	s.files[path] = "nfo:" + video.ID
	return nil
}

func (s *stubSink) DownloadImage(ctx context.Context, url, destPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloads = append(s.downloads, url)
	s.files[destPath] = "img:" + url
	return nil
}

func (s *stubSink) writeCounts() (strm, nfo, img int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strmWrites, s.nfoWrites, len(s.downloads)
}

func (s *stubSink) content(path string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.files[path]
	return c, ok
}

func defaultOpts() app.Options {
	return app.Options{
		OutputDir:   "out",
		ProxyURL:    "http://proxy:3000/",
		MaxVideos:   50,
		Concurrency: 2,
	}
}

// TestSyncChannelLayout runs the end-to-end scenario: one video succeeds,
// one fails its detail fetch and is skipped entirely.
func TestSyncChannelLayout(t *testing.T) {
	t.Parallel()

	source := &stubSource{
		info: models.ChannelInfo{ID: "UC1", Name: "Test & Co"},
		summaries: []models.VideoSummary{
			{ID: "v1", Title: "First"},
			{ID: "v2", Title: "Second"},
		},
		details: map[string]models.Video{
			"v1": {ID: "v1", Title: "First", UploadDate: "20220101"},
		},
		failDetails: map[string]bool{"v2": true},
	}
	sink := newStubSink()

	syncer := app.NewSyncer(source, sink, nil, defaultOpts())
	if err := syncer.SyncChannel(context.Background(), "https://example.com/c"); err != nil {
		t.Fatalf("SyncChannel returned error: %v", err)
	}

	seasonDir := filepath.Join("out", "Test & Co", "Season 2022")

	strm, ok := sink.content(filepath.Join(seasonDir, "First [v1].strm"))
	if !ok {
		t.Fatal("expected strm file for v1")
	}
	if strm != "http://proxy:3000/stream/v1" {
		t.Fatalf("strm content = %q", strm)
	}

	if _, ok := sink.content(filepath.Join(seasonDir, "First [v1].nfo")); !ok {
		t.Fatal("expected nfo file for v1")
	}

	// v2 failed before any path computation, nothing may exist for it.
	for path := range sink.files {
		if filepath.Base(path) == "Second [v2].strm" || filepath.Base(path) == "Second [v2].nfo" {
			t.Fatalf("unexpected file for failed video: %q", path)
		}
	}
}

// TestSyncChannelIdempotent verifies the second run issues zero writes for
// files that already exist.
func TestSyncChannelIdempotent(t *testing.T) {
	t.Parallel()

	source := &stubSource{
		info: models.ChannelInfo{ID: "UC1", Name: "Chan", ThumbnailURL: "http://img/chan.jpg"},
		summaries: []models.VideoSummary{
			{ID: "v1", Title: "One"},
			{ID: "v2", Title: "Two"},
		},
		details: map[string]models.Video{
			"v1": {ID: "v1", Title: "One", UploadDate: "20230101", ThumbnailURL: "http://img/v1.jpg"},
			"v2": {ID: "v2", Title: "Two", UploadDate: "20230202", ThumbnailURL: "http://img/v2.jpg"},
		},
	}
	sink := newStubSink()
	syncer := app.NewSyncer(source, sink, nil, defaultOpts())

	if err := syncer.SyncChannel(context.Background(), "https://example.com/c"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	strm1, nfo1, img1 := sink.writeCounts()
	if strm1 != 2 || nfo1 != 2 || img1 != 3 { // 2 video thumbs + 1 channel thumb
		t.Fatalf("first run wrote strm=%d nfo=%d img=%d", strm1, nfo1, img1)
	}

	if err := syncer.SyncChannel(context.Background(), "https://example.com/c"); err != nil {
		t.Fatalf("second run: %v", err)
	}
	strm2, nfo2, img2 := sink.writeCounts()
	if strm2 != strm1 || nfo2 != nfo1 || img2 != img1 {
		t.Fatalf("second run issued writes: strm=%d nfo=%d img=%d", strm2-strm1, nfo2-nfo1, img2-img1)
	}
}

// TestSyncChannelConcurrencyBound blocks detail fetches and checks that no
// more than the configured limit are in flight at once.
func TestSyncChannelConcurrencyBound(t *testing.T) {
	t.Parallel()

	const numVideos = 6
	const limit = 2

	summaries := make([]models.VideoSummary, 0, numVideos)
	details := make(map[string]models.Video, numVideos)
	for i := range numVideos {
		id := fmt.Sprintf("v%d", i)
		summaries = append(summaries, models.VideoSummary{ID: id, Title: id})
		details[id] = models.Video{ID: id, Title: id, UploadDate: "20230101"}
	}

	gate := make(chan struct{})
	source := &stubSource{
		info:      models.ChannelInfo{ID: "UC1", Name: "Chan"},
		summaries: summaries,
		details:   details,
		gate:      gate,
	}
	sink := newStubSink()

	opts := defaultOpts()
	opts.Concurrency = limit
	syncer := app.NewSyncer(source, sink, nil, opts)

	done := make(chan error, 1)
	go func() {
		done <- syncer.SyncChannel(context.Background(), "https://example.com/c")
	}()

	// Wait until the pool has saturated its slots.
	deadline := time.After(5 * time.Second)
	for {
		if _, inFlight := source.stats(); inFlight >= limit {
			break
		}
		select {
		case <-deadline:
			t.Fatal("workers never saturated the concurrency limit")
		case <-time.After(10 * time.Millisecond):
		}
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("SyncChannel returned error: %v", err)
	}

	calls, maxInFlight := source.stats()
	if calls != numVideos {
		t.Fatalf("detail calls = %d, want %d", calls, numVideos)
	}
	if maxInFlight > limit {
		t.Fatalf("max in-flight = %d, exceeds limit %d", maxInFlight, limit)
	}
}

// TestSyncChannelIsolation verifies that a failing subset skips only itself.
func TestSyncChannelIsolation(t *testing.T) {
	t.Parallel()

	source := &stubSource{
		info: models.ChannelInfo{ID: "UC1", Name: "Chan"},
		summaries: []models.VideoSummary{
			{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"},
		},
		details: map[string]models.Video{
			"a": {ID: "a", Title: "A", UploadDate: "20230101"},
			"c": {ID: "c", Title: "C", UploadDate: "20230101"},
		},
		failDetails: map[string]bool{"b": true, "d": true},
	}
	sink := newStubSink()
	syncer := app.NewSyncer(source, sink, nil, defaultOpts())

	if err := syncer.SyncChannel(context.Background(), "https://example.com/c"); err != nil {
		t.Fatalf("SyncChannel returned error: %v", err)
	}

	strm, nfo, _ := sink.writeCounts()
	if strm != 2 || nfo != 2 {
		t.Fatalf("wrote strm=%d nfo=%d, want 2 each", strm, nfo)
	}
}

// TestSyncChannelFatalFetches verifies identity and listing failures
// propagate to the caller.
func TestSyncChannelFatalFetches(t *testing.T) {
	t.Parallel()

	sink := newStubSink()

	infoFail := &stubSource{infoErr: errors.New("extractor down")}
	if err := app.NewSyncer(infoFail, sink, nil, defaultOpts()).SyncChannel(context.Background(), "u"); err == nil {
		t.Fatal("expected error for failed channel info fetch")
	}

	listFail := &stubSource{
		info:    models.ChannelInfo{ID: "UC1", Name: "Chan"},
		listErr: errors.New("extractor down"),
	}
	if err := app.NewSyncer(listFail, sink, nil, defaultOpts()).SyncChannel(context.Background(), "u"); err == nil {
		t.Fatal("expected error for failed video listing")
	}
}

// TestSyncChannelUnknownSeason verifies videos without an upload date land
// in the Unknown bucket.
func TestSyncChannelUnknownSeason(t *testing.T) {
	t.Parallel()

	source := &stubSource{
		info:      models.ChannelInfo{ID: "UC1", Name: "Chan"},
		summaries: []models.VideoSummary{{ID: "v1", Title: "NoDate"}},
		details: map[string]models.Video{
			"v1": {ID: "v1", Title: "NoDate"},
		},
	}
	sink := newStubSink()
	syncer := app.NewSyncer(source, sink, nil, defaultOpts())

	if err := syncer.SyncChannel(context.Background(), "u"); err != nil {
		t.Fatalf("SyncChannel returned error: %v", err)
	}

	want := filepath.Join("out", "Chan", "Season Unknown", "NoDate [v1].strm")
	if _, ok := sink.content(want); !ok {
		t.Fatalf("expected %q to exist", want)
	}
}

// TestChannelThumbnailFallback verifies the avatar fallback is used only
// when the metadata source reports no thumbnail, and the existing file
// guards repeat downloads.
func TestChannelThumbnailFallback(t *testing.T) {
	t.Parallel()

	source := &stubSource{
		info: models.ChannelInfo{ID: "UC1", Name: "Chan"},
	}
	sink := newStubSink()

	avatarCalls := 0
	avatar := func(ctx context.Context, channelURL string) (string, error) {
		avatarCalls++
		return "http://img/avatar.jpg", nil
	}

	syncer := app.NewSyncer(source, sink, avatar, defaultOpts())
	if err := syncer.SyncChannel(context.Background(), "u"); err != nil {
		t.Fatalf("SyncChannel returned error: %v", err)
	}

	thumbPath := filepath.Join("out", "Chan", "folder.jpg")
	if got, ok := sink.content(thumbPath); !ok || got != "img:http://img/avatar.jpg" {
		t.Fatalf("channel thumbnail = %q (exists: %v)", got, ok)
	}
	if avatarCalls != 1 {
		t.Fatalf("avatar calls = %d, want 1", avatarCalls)
	}

	// Second run: file exists, no new download or avatar lookup.
	if err := syncer.SyncChannel(context.Background(), "u"); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if avatarCalls != 1 {
		t.Fatalf("avatar calls after second run = %d, want 1", avatarCalls)
	}
	if _, _, img := sink.writeCounts(); img != 1 {
		t.Fatalf("image downloads = %d, want 1", img)
	}
}

func TestStreamURL(t *testing.T) {
	t.Parallel()

	if got := app.StreamURL("http://proxy:3000/", "abc"); got != "http://proxy:3000/stream/abc" {
		t.Fatalf("StreamURL = %q", got)
	}
	if got := app.StreamURL("http://proxy:3000", "abc"); got != "http://proxy:3000/stream/abc" {
		t.Fatalf("StreamURL = %q", got)
	}
}
