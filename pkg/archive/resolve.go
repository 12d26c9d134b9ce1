package archive

import (
	"fmt"
	"strings"

	"fbarchive/pkg/facebook"
	"fbarchive/pkg/models"
)

// PhotoMediaType is the media_type recorded for photo-sourced records
const PhotoMediaType = "photo"

// Resolver turns raw attachment and photo nodes into normalized media
// records. The accepted-type set is injected so traversal paths can be
// tested in isolation with substituted values.
type Resolver struct {
	acceptedTypes map[string]struct{}
}

// NewResolver creates a resolver with the given attachment type allow-list
func NewResolver(acceptedTypes []string) *Resolver {
	accepted := make(map[string]struct{}, len(acceptedTypes))
	for _, t := range acceptedTypes {
		accepted[t] = struct{}{}
	}
	return &Resolver{acceptedTypes: accepted}
}

// Accepted reports whether a media type is in the allow-list
func (r *Resolver) Accepted(mediaType string) bool {
	_, ok := r.acceptedTypes[mediaType]
	return ok
}

// formatText normalizes an optional title/description field the way the
// datasets have always recorded it: newlines become spaces and a trailing
// comma is appended. Downstream CSV consumers expect this legacy shape.
// An absent field stays empty.
func formatText(s *string) string {
	if s == nil {
		return ""
	}
	return strings.ReplaceAll(*s, "\n", " ") + ","
}

// ResolvePostAttachments flattens a post's attachment tree and resolves
// every accepted leaf into a media record. An unparseable post timestamp is
// an upstream failure and aborts the post's traversal path; per-attachment
// shape problems are captured in the record's Error field instead.
func (r *Resolver) ResolvePostAttachments(post *facebook.Post) ([]*models.MediaRecord, error) {
	ts, err := facebook.ParseCreatedTime(post.CreatedTime)
	if err != nil {
		return nil, fmt.Errorf("post %s: invalid created_time %q: %w", post.ID, post.CreatedTime, err)
	}
	createdUnix := ts.Unix()

	if post.Attachments == nil {
		return nil, nil
	}

	var flat []*facebook.Attachment
	for _, att := range post.Attachments.Data {
		flat = append(flat, FlattenAttachments(att)...)
	}

	var records []*models.MediaRecord
	for _, att := range flat {
		rec, ok := r.resolveAttachment(post, createdUnix, att)
		if ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// resolveAttachment builds one record from a flattened attachment node.
// Returns false when the attachment carries a type outside the accepted
// set; such nodes are skipped without a record.
func (r *Resolver) resolveAttachment(post *facebook.Post, createdUnix int64, att *facebook.Attachment) (*models.MediaRecord, bool) {
	rec := &models.MediaRecord{
		ID:                   post.ID,
		CreatedTime:          post.CreatedTime,
		CreatedUnixTimestamp: &createdUnix,
		PermalinkURL:         post.PermalinkURL,
	}

	if att.Type == "" {
		rec.Error = "attachment has no type"
		return rec, true
	}
	if !r.Accepted(att.Type) {
		return nil, false
	}
	rec.MediaType = att.Type

	rec.MediaTitle = formatText(att.Title)
	rec.MediaDescription = formatText(att.Description)

	if att.Target != nil {
		rec.MediaID = att.Target.ID
		rec.MediaPageURL = att.Target.URL
	}

	if att.Media != nil {
		rec.MediaURL = att.Media.Source
		if rec.MediaURL == "" && att.Media.Image != nil {
			rec.MediaURL = att.Media.Image.Src
		}
	}

	return rec, true
}

// ResolvePhoto builds a record from a photo node. The downloadable URL is
// the unique image variant whose dimensions equal the photo's own; zero or
// multiple matches is a resolution error, recorded rather than raised.
func (r *Resolver) ResolvePhoto(photo *facebook.Photo) *models.MediaRecord {
	rec := &models.MediaRecord{
		ID:               photo.PageStoryID,
		CreatedTime:      photo.CreatedTime,
		PermalinkURL:     photo.Link,
		MediaID:          photo.ID,
		MediaPageURL:     photo.Link,
		MediaTitle:       formatText(photo.Name),
		MediaDescription: formatText(photo.AltText),
		MediaType:        PhotoMediaType,
	}

	ts, err := facebook.ParseCreatedTime(photo.CreatedTime)
	if err != nil {
		rec.Error = fmt.Sprintf("invalid created_time %q: %v", photo.CreatedTime, err)
		return rec
	}
	createdUnix := ts.Unix()
	rec.CreatedUnixTimestamp = &createdUnix

	var matches []facebook.ImageVariant
	for _, img := range photo.Images {
		if img.Width == photo.Width && img.Height == photo.Height {
			matches = append(matches, img)
		}
	}

	switch len(matches) {
	case 1:
		rec.MediaURL = matches[0].Source
	case 0:
		rec.Error = fmt.Sprintf("no image variant matches photo dimensions %dx%d", photo.Width, photo.Height)
	default:
		rec.Error = fmt.Sprintf("%d image variants match photo dimensions %dx%d", len(matches), photo.Width, photo.Height)
	}

	return rec
}
