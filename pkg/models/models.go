package models

import (
	"fmt"
	"strconv"
	"strings"
)

// MediaRecord is the normalized unit persisted to the media CSV. Field
// order defines the CSV column order.
type MediaRecord struct {
	ID                   string `csv:"id"`
	CreatedTime          string `csv:"created_time"`
	CreatedUnixTimestamp *int64 `csv:"created_unix_timestamp"`
	PermalinkURL         string `csv:"permalink_url"`
	MediaID              string `csv:"media_id"`
	MediaPageURL         string `csv:"media_page_url"`
	MediaTitle           string `csv:"media_title"`
	MediaDescription     string `csv:"media_description"`
	MediaType            string `csv:"media_type"`
	MediaURL             string `csv:"media_url"`
	Error                string `csv:"error"`
}

// Key returns the composite identity of the record. Two records from
// different traversal paths with the same key are the same media item.
func (r *MediaRecord) Key() string {
	return MediaKey(r.MediaID, r.CreatedUnixTimestamp)
}

// MediaKey builds the composite key from a media id and unix timestamp.
// A nil timestamp (unparseable created_time) contributes an empty part.
func MediaKey(mediaID string, createdUnix *int64) string {
	if createdUnix == nil {
		return mediaID + "_"
	}
	return fmt.Sprintf("%s_%d", mediaID, *createdUnix)
}

// PostRecord is the unit persisted by the posts-only pipeline. Field order
// defines the CSV column order.
type PostRecord struct {
	ID                   string `csv:"id"`
	CreatedTime          string `csv:"created_time"`
	CreatedUnixTimestamp int64  `csv:"created_unix_timestamp"`
	Message              string `csv:"message"`
	Story                string `csv:"story"`
	IsPublished          *bool  `csv:"is_published"`
	PermalinkURL         string `csv:"permalink_url"`
}

// Key returns a canonical key over every field, in declaration order.
// Posts have no stable sub-identity beyond their full content, so the
// posts pipeline deduplicates by whole-record equality.
func (r *PostRecord) Key() string {
	published := ""
	if r.IsPublished != nil {
		published = strconv.FormatBool(*r.IsPublished)
	}
	return strings.Join([]string{
		r.ID,
		r.CreatedTime,
		strconv.FormatInt(r.CreatedUnixTimestamp, 10),
		r.Message,
		r.Story,
		published,
		r.PermalinkURL,
	}, "\x1f")
}
