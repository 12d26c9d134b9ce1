package facebook

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fbarchive/pkg/logger"
)

func newWalkerClient(t *testing.T) *Client {
	t.Helper()
	return NewClient(5*time.Second, logger.NewTestLogger())
}

func TestWalkPagesFollowsCursor(t *testing.T) {
	var srv *httptest.Server
	requests := 0

	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		switch r.URL.Query().Get("page") {
		case "":
			fmt.Fprintf(w, `{"data": [1, 2], "paging": {"next": "%s/?page=2"}}`, srv.URL)
		case "2":
			fmt.Fprintf(w, `{"data": [3], "paging": {"next": "%s/?page=3"}}`, srv.URL)
		default:
			// Last page: data present, no cursor
			fmt.Fprint(w, `{"data": [4]}`)
		}
	}))
	defer srv.Close()

	var visited []int
	err := newWalkerClient(t).WalkPages(srv.URL, func(data json.RawMessage) error {
		var items []int
		require.NoError(t, json.Unmarshal(data, &items))
		visited = append(visited, items...)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, visited)
	assert.Equal(t, 3, requests)
}

func TestWalkPagesEmptyCursorTerminates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [1], "paging": {"next": ""}}`)
	}))
	defer srv.Close()

	calls := 0
	err := newWalkerClient(t).WalkPages(srv.URL, func(json.RawMessage) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWalkPagesEmptyCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": []}`)
	}))
	defer srv.Close()

	calls := 0
	err := newWalkerClient(t).WalkPages(srv.URL, func(json.RawMessage) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	// Visit is not invoked for an empty data array
	assert.Equal(t, 0, calls)
}

func TestWalkPagesTransportErrorAborts(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"data": [1], "paging": {"next": "%s/?page=2"}}`, srv.URL)
	}))
	defer srv.Close()

	pages := 0
	err := newWalkerClient(t).WalkPages(srv.URL, func(json.RawMessage) error {
		pages++
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, 1, pages)

	var graphErr *Error
	require.ErrorAs(t, err, &graphErr)
	assert.Equal(t, ErrorTypeServerError, graphErr.Type)
}

func TestWalkPagesVisitErrorAborts(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"data": [1], "paging": {"next": "%s/?page=2"}}`, srv.URL)
	}))
	defer srv.Close()

	visitErr := errors.New("stop here")
	err := newWalkerClient(t).WalkPages(srv.URL, func(json.RawMessage) error {
		return visitErr
	})

	assert.ErrorIs(t, err, visitErr)
}

func TestWalkCollectionDecodesItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [{"id": "a"}, {"id": "b"}]}`)
	}))
	defer srv.Close()

	var ids []string
	err := WalkCollection(newWalkerClient(t), srv.URL, func(items []IDObject) error {
		for _, item := range items {
			ids = append(ids, item.ID)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestWalkCollectionBadDataShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [42]}`)
	}))
	defer srv.Close()

	err := WalkCollection(newWalkerClient(t), srv.URL, func(items []IDObject) error {
		return nil
	})

	require.Error(t, err)
	var graphErr *Error
	require.ErrorAs(t, err, &graphErr)
	assert.Equal(t, ErrorTypeParsing, graphErr.Type)
}
