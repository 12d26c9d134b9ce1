package archive

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fbarchive/pkg/facebook"
	"fbarchive/pkg/logger"
)

// newGraphServer serves a canned two-post, one-album page. The posts
// collection is split over two pages to exercise cursor following.
func newGraphServer(t *testing.T) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	mux := http.NewServeMux()

	// Post ids, paginated
	mux.HandleFunc("/v20.0/page1/posts", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"data": [{"id": "page1_post2"}]}`)
			return
		}
		fmt.Fprintf(w, `{"data": [{"id": "page1_post1"}], "paging": {"next": "%s/v20.0/page1/posts?page=2"}}`, srv.URL)
	})

	// Post details, served with every field so both pipelines can decode
	mux.HandleFunc("/v20.0/page1_post1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"id": "page1_post1",
			"created_time": "2024-03-05T10:00:00+0000",
			"permalink_url": "https://facebook.com/page1/posts/1",
			"message": "beach day",
			"is_published": true,
			"attachments": {"data": [{
				"type": "photo",
				"target": {"id": "m1", "url": "https://facebook.com/photo/m1"},
				"media": {"source": "https://cdn/post-m1.jpg"}
			}]}
		}`)
	})
	mux.HandleFunc("/v20.0/page1_post2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"id": "page1_post2",
			"created_time": "2024-03-06T09:00:00+0000",
			"permalink_url": "https://facebook.com/page1/posts/2",
			"story": "updated their cover photo"
		}`)
	})

	// Page photos, used by both the profile photo walk and the photo
	// story walk
	mux.HandleFunc("/v20.0/page1/photos", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [{
			"id": "m1",
			"page_story_id": "page1_post1",
			"created_time": "2024-03-05T10:00:00+0000",
			"name": "beach",
			"link": "https://facebook.com/photo/m1",
			"width": 1080,
			"height": 720,
			"images": [
				{"width": 1080, "height": 720, "source": "https://cdn/photo-m1-full.jpg"},
				{"width": 320, "height": 213, "source": "https://cdn/photo-m1-small.jpg"}
			]
		}]}`)
	})

	// Albums and their photos
	mux.HandleFunc("/v20.0/page1/albums", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [{"id": "album1"}]}`)
	})
	mux.HandleFunc("/v20.0/album1/photos", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [{
			"id": "m2",
			"page_story_id": "page1_post2",
			"created_time": "2024-03-06T09:00:00+0000",
			"link": "https://facebook.com/photo/m2",
			"width": 640,
			"height": 480,
			"images": [{"width": 640, "height": 480, "source": "https://cdn/photo-m2.jpg"}]
		}]}`)
	})

	// Feed for the posts pipeline
	mux.HandleFunc("/v20.0/page1/feed", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [
			{
				"id": "page1_post1",
				"created_time": "2024-03-05T10:00:00+0000",
				"permalink_url": "https://facebook.com/page1/posts/1",
				"message": "beach day",
				"is_published": true
			},
			{
				"id": "page1_post2",
				"created_time": "2024-03-06T09:00:00+0000",
				"permalink_url": "https://facebook.com/page1/posts/2",
				"story": "updated their cover photo"
			}
		]}`)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestArchiver(t *testing.T, baseURL string) (*Archiver, *logger.TestLogger) {
	t.Helper()
	log := logger.NewTestLogger()
	client := facebook.NewClient(5*time.Second, log)
	endpoints := facebook.NewEndpoints(baseURL, "v20.0", "test-token")
	return New(client, endpoints, testAcceptedTypes, log), log
}

func TestArchiveMedia(t *testing.T) {
	srv := newGraphServer(t)
	archiver, _ := newTestArchiver(t, srv.URL)

	records, err := archiver.ArchiveMedia("page1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	// m1 is reached twice: post attachment first, then the page photo
	// walk. The photo record replaces the attachment record wholesale.
	m1 := records[0]
	assert.Equal(t, "m1", m1.MediaID)
	assert.Equal(t, "page1_post1", m1.ID)
	assert.Equal(t, PhotoMediaType, m1.MediaType)
	assert.Equal(t, "https://cdn/photo-m1-full.jpg", m1.MediaURL)
	assert.Equal(t, "beach,", m1.MediaTitle)
	assert.Empty(t, m1.Error)

	m2 := records[1]
	assert.Equal(t, "m2", m2.MediaID)
	assert.Equal(t, "https://cdn/photo-m2.jpg", m2.MediaURL)

	// Sorted ascending by creation time
	require.NotNil(t, m1.CreatedUnixTimestamp)
	require.NotNil(t, m2.CreatedUnixTimestamp)
	assert.Less(t, *m1.CreatedUnixTimestamp, *m2.CreatedUnixTimestamp)
}

func TestArchiveMediaTransportErrorAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	archiver, _ := newTestArchiver(t, srv.URL)

	records, err := archiver.ArchiveMedia("page1")
	require.Error(t, err)
	assert.Nil(t, records)

	var graphErr *facebook.Error
	require.ErrorAs(t, err, &graphErr)
	assert.Equal(t, facebook.ErrorTypeServerError, graphErr.Type)
}

func TestArchiveMediaInvalidPostTimestampAborts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v20.0/page1/posts", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [{"id": "page1_post1"}]}`)
	})
	mux.HandleFunc("/v20.0/page1_post1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": "page1_post1", "created_time": "garbage"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	archiver, _ := newTestArchiver(t, srv.URL)

	_, err := archiver.ArchiveMedia("page1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid created_time")
}

func TestArchiveMediaReportsDegradedRecords(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v20.0/page1/posts", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": []}`)
	})
	mux.HandleFunc("/v20.0/page1/albums", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": []}`)
	})
	mux.HandleFunc("/v20.0/page1/photos", func(w http.ResponseWriter, r *http.Request) {
		// No variant matches the photo's own dimensions
		fmt.Fprint(w, `{"data": [{
			"id": "m1",
			"page_story_id": "page1_post1",
			"created_time": "2024-03-05T10:00:00+0000",
			"width": 1080,
			"height": 720,
			"images": [{"width": 320, "height": 213, "source": "https://cdn/small.jpg"}]
		}]}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	archiver, log := newTestArchiver(t, srv.URL)

	records, err := archiver.ArchiveMedia("page1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Error, "no image variant matches")
	assert.True(t, log.HasMessage("media resolution degraded"))
}

func TestArchivePosts(t *testing.T) {
	srv := newGraphServer(t)
	archiver, _ := newTestArchiver(t, srv.URL)

	records, err := archiver.ArchivePosts("page1")
	require.NoError(t, err)

	// The photo story resolves back to page1_post1, which the feed
	// already produced; identical content collapses to one record.
	require.Len(t, records, 2)

	p1 := records[0]
	assert.Equal(t, "page1_post1", p1.ID)
	assert.Equal(t, "beach day,", p1.Message)
	assert.Equal(t, "", p1.Story)
	require.NotNil(t, p1.IsPublished)
	assert.True(t, *p1.IsPublished)

	p2 := records[1]
	assert.Equal(t, "page1_post2", p2.ID)
	assert.Equal(t, "updated their cover photo,", p2.Story)
	assert.Nil(t, p2.IsPublished)

	assert.Less(t, p1.CreatedUnixTimestamp, p2.CreatedUnixTimestamp)
}

func TestArchivePostsFeedErrorAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	archiver, _ := newTestArchiver(t, srv.URL)

	_, err := archiver.ArchivePosts("page1")
	require.Error(t, err)

	var graphErr *facebook.Error
	require.ErrorAs(t, err, &graphErr)
	assert.Equal(t, facebook.ErrorTypeAuth, graphErr.Type)
}
