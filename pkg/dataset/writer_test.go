package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "fbarchive/pkg/errors"
	"fbarchive/pkg/models"
)

func int64ptr(v int64) *int64 { return &v }

func TestWriteMediaHeaderAndOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "media.csv")

	records := []*models.MediaRecord{
		{ID: "p1", MediaID: "m1", CreatedUnixTimestamp: int64ptr(100)},
		{ID: "p2", MediaID: "m2", CreatedUnixTimestamp: int64ptr(200)},
	}
	require.NoError(t, WriteMedia(path, records))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t,
		"id,created_time,created_unix_timestamp,permalink_url,media_id,media_page_url,media_title,media_description,media_type,media_url,error",
		lines[0])

	// Row order follows record order
	assert.True(t, strings.HasPrefix(lines[1], "p1,"))
	assert.True(t, strings.HasPrefix(lines[2], "p2,"))
}

func TestMediaRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "media.csv")

	records := []*models.MediaRecord{
		{
			ID:                   "p1",
			CreatedTime:          "2024-03-05T10:00:00+0000",
			CreatedUnixTimestamp: int64ptr(1709632800),
			PermalinkURL:         "https://facebook.com/p1",
			MediaID:              "m1",
			MediaPageURL:         "https://facebook.com/photo/m1",
			MediaTitle:           "A caption, with a comma,",
			MediaDescription:     "Line one Line two,",
			MediaType:            "photo",
			MediaURL:             "https://cdn/m1.jpg?a=1&b=2",
		},
		{
			// Degraded record: no timestamp, error populated with
			// characters that need CSV quoting
			ID:      "p2",
			MediaID: "m2",
			Error:   "invalid created_time \"garbage\"\nsecond line",
		},
	}
	require.NoError(t, WriteMedia(path, records))

	got, err := ReadMedia(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, records[0].MediaTitle, got[0].MediaTitle)
	assert.Equal(t, records[0].MediaURL, got[0].MediaURL)
	require.NotNil(t, got[0].CreatedUnixTimestamp)
	assert.Equal(t, int64(1709632800), *got[0].CreatedUnixTimestamp)

	// An absent timestamp serializes as an empty cell and reads back nil
	assert.Nil(t, got[1].CreatedUnixTimestamp)
	assert.Equal(t, records[1].Error, got[1].Error)
}

func TestPostsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.csv")

	published := true
	records := []*models.PostRecord{
		{
			ID:                   "p1",
			CreatedTime:          "2024-03-05T10:00:00+0000",
			CreatedUnixTimestamp: 1709632800,
			Message:              "hello, world,",
			IsPublished:          &published,
			PermalinkURL:         "https://facebook.com/p1",
		},
		{
			ID:                   "p2",
			CreatedTime:          "2024-03-06T09:00:00+0000",
			CreatedUnixTimestamp: 1709715600,
			Story:                "updated their cover photo,",
		},
	}
	require.NoError(t, WritePosts(path, records))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw),
		"id,created_time,created_unix_timestamp,message,story,is_published,permalink_url\n"))

	got, err := ReadPosts(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "hello, world,", got[0].Message)
	require.NotNil(t, got[0].IsPublished)
	assert.True(t, *got[0].IsPublished)
	assert.Equal(t, "updated their cover photo,", got[1].Story)
}

func TestWriteMediaCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "media.csv")

	require.NoError(t, WriteMedia(path, []*models.MediaRecord{{ID: "p1"}}))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteMediaEmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "media.csv")

	require.NoError(t, WriteMedia(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	// Header row only
	assert.Equal(t,
		"id,created_time,created_unix_timestamp,permalink_url,media_id,media_page_url,media_title,media_description,media_type,media_url,error",
		strings.TrimRight(string(raw), "\n"))
}

func TestReadMediaMissingFile(t *testing.T) {
	_, err := ReadMedia(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeIO, appErr.Type)
}
