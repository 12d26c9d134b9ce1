package downloader

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fbarchive/pkg/dataset"
	"fbarchive/pkg/facebook"
	"fbarchive/pkg/logger"
	"fbarchive/pkg/storage"
)

var (
	testTypes   = []string{"photo", "video", "album"}
	testFormats = []string{"jpeg", "jpg", "png", "mp3", "mp4"}
)

func TestDestinationName(t *testing.T) {
	// The embedded date renders in local time
	ts := time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local).Unix()

	name := DestinationName("123", "456", ts, "jpg")
	assert.Equal(t, "123 456 2024-03-05_10.00.00.jpg", name)
}

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		name     string
		rawURL   string
		expected string
	}{
		{
			name:     "plain path",
			rawURL:   "https://cdn.example.com/photos/m1.jpg",
			expected: "m1.jpg",
		},
		{
			name:     "query string ignored",
			rawURL:   "https://cdn.example.com/photos/m1.jpg?oh=abc&oe=def",
			expected: "m1.jpg",
		},
		{
			name:     "percent encoding decoded",
			rawURL:   "https://cdn.example.com/photos/my%20photo.png",
			expected: "my photo.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilenameFromURL(tt.rawURL)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMediaFormat(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"photo.jpg", "jpg"},
		{"archive.tar.gz", "gz"},
		{"noextension", "noextension"},
		{"trailingdot.", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MediaFormat(tt.filename), tt.filename)
	}
}

func writeInputCSV(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "media.csv")
	content := "id,created_unix_timestamp,media_id,media_type,media_url\n" + rows
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestDownloader(t *testing.T, outputDir string) (*Downloader, *logger.TestLogger) {
	t.Helper()
	log := logger.NewTestLogger()
	client := facebook.NewClient(5*time.Second, log)
	store, err := storage.NewManager(outputDir)
	require.NoError(t, err)
	return New(client, store, testTypes, testFormats, log), log
}

func TestRunDownloadsEligibleRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "content of %s", r.URL.Path)
	}))
	defer srv.Close()

	ts := time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local).Unix()
	input := writeInputCSV(t, fmt.Sprintf(
		"p1,%d,m1,photo,%s/m1.jpg\np2,%d,m2,video,%s/m2.mp4\n", ts, srv.URL, ts, srv.URL))

	outputDir := t.TempDir()
	dl, _ := newTestDownloader(t, outputDir)

	downloaded, err := dl.Run(input, dataset.DefaultColumnMapping())
	require.NoError(t, err)
	assert.Equal(t, 2, downloaded)

	data, err := os.ReadFile(filepath.Join(outputDir, DestinationName("p1", "m1", ts, "jpg")))
	require.NoError(t, err)
	assert.Equal(t, "content of /m1.jpg", string(data))

	assert.FileExists(t, filepath.Join(outputDir, DestinationName("p2", "m2", ts, "mp4")))
}

func TestRunSkipsIneligibleRows(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, "bytes")
	}))
	defer srv.Close()

	ts := time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local).Unix()
	input := writeInputCSV(t, fmt.Sprintf(
		// Unaccepted type
		"p1,%d,m1,link,%s/m1.jpg\n"+
			// Empty URL
			"p2,%d,m2,photo,\n"+
			// Unsupported extension
			"p3,%d,m3,photo,%s/m3.webp\n"+
			// Missing timestamp
			"p4,,m4,photo,%s/m4.jpg\n"+
			// Eligible
			"p5,%d,m5,photo,%s/m5.jpg\n",
		ts, srv.URL, ts, ts, srv.URL, srv.URL, ts, srv.URL))

	outputDir := t.TempDir()
	dl, log := newTestDownloader(t, outputDir)

	downloaded, err := dl.Run(input, dataset.DefaultColumnMapping())
	require.NoError(t, err)
	assert.Equal(t, 1, downloaded)
	assert.Equal(t, 1, requests)

	assert.True(t, log.HasMessage("skipping row without creation timestamp"))

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunContinuesPastFailedDownloads(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone.jpg" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, "bytes")
	}))
	defer srv.Close()

	ts := time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local).Unix()
	input := writeInputCSV(t, fmt.Sprintf(
		"p1,%d,m1,photo,%s/gone.jpg\np2,%d,m2,photo,%s/ok.jpg\n", ts, srv.URL, ts, srv.URL))

	outputDir := t.TempDir()
	dl, log := newTestDownloader(t, outputDir)

	downloaded, err := dl.Run(input, dataset.DefaultColumnMapping())
	require.NoError(t, err)
	assert.Equal(t, 1, downloaded)
	assert.True(t, log.HasMessage("download failed"))

	assert.FileExists(t, filepath.Join(outputDir, DestinationName("p2", "m2", ts, "jpg")))
}

func TestRunIsIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "bytes")
	}))
	defer srv.Close()

	ts := time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local).Unix()
	input := writeInputCSV(t, fmt.Sprintf("p1,%d,m1,photo,%s/m1.jpg\n", ts, srv.URL))

	outputDir := t.TempDir()
	dl, _ := newTestDownloader(t, outputDir)

	_, err := dl.Run(input, dataset.DefaultColumnMapping())
	require.NoError(t, err)
	_, err = dl.Run(input, dataset.DefaultColumnMapping())
	require.NoError(t, err)

	// Deterministic names mean a re-run overwrites instead of duplicating
	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunMissingInputFileIsFatal(t *testing.T) {
	dl, _ := newTestDownloader(t, t.TempDir())

	_, err := dl.Run(filepath.Join(t.TempDir(), "absent.csv"), dataset.DefaultColumnMapping())
	require.Error(t, err)
}

func TestRunUppercaseExtensionAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "bytes")
	}))
	defer srv.Close()

	ts := time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local).Unix()
	input := writeInputCSV(t, fmt.Sprintf("p1,%d,m1,photo,%s/M1.JPG\n", ts, srv.URL))

	outputDir := t.TempDir()
	dl, _ := newTestDownloader(t, outputDir)

	downloaded, err := dl.Run(input, dataset.DefaultColumnMapping())
	require.NoError(t, err)
	assert.Equal(t, 1, downloaded)

	// The stored extension is lowercased
	assert.FileExists(t, filepath.Join(outputDir, DestinationName("p1", "m1", ts, "jpg")))
}
