package archive

import (
	"fbarchive/pkg/facebook"
	"fbarchive/pkg/logger"
	"fbarchive/pkg/models"
)

// Archiver runs the extraction pipelines against a Facebook page. All
// traversal is strictly sequential: one path at a time, one page at a time,
// one record at a time, so the merge outcome is deterministic.
type Archiver struct {
	client    *facebook.Client
	endpoints *facebook.Endpoints
	resolver  *Resolver
	logger    logger.Logger
}

// New creates an Archiver for the given client and endpoint builder
func New(client *facebook.Client, endpoints *facebook.Endpoints, acceptedTypes []string, log logger.Logger) *Archiver {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Archiver{
		client:    client,
		endpoints: endpoints,
		resolver:  NewResolver(acceptedTypes),
		logger:    log,
	}
}

// ArchiveMedia walks the page's posts, profile photos and albums, in that
// fixed order, and returns the merged media dataset sorted by creation
// time. The fold order makes the last-write-wins policy explicit: album
// data wins over profile photo data, which wins over post attachment data.
func (a *Archiver) ArchiveMedia(pageID string) ([]*models.MediaRecord, error) {
	collection := NewMediaCollection()

	// Posts: one detail fetch per post id to retrieve its attachment tree
	err := facebook.WalkCollection(a.client, a.endpoints.PagePostIDsURL(pageID),
		func(ids []facebook.IDObject) error {
			for _, id := range ids {
				var post facebook.Post
				if err := a.client.GetJSON(a.endpoints.PostAttachmentsURL(id.ID), &post); err != nil {
					return err
				}

				records, err := a.resolver.ResolvePostAttachments(&post)
				if err != nil {
					return err
				}
				a.reportRecords(records)
				collection.AddAll(records)

				a.logger.InfoWithFields("processed post", map[string]interface{}{
					"post_id": post.ID,
					"records": len(records),
				})
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	// Profile photos: the page itself is walked as an album
	if err := a.archiveEntityPhotos(pageID, collection); err != nil {
		return nil, err
	}

	// Albums
	err = facebook.WalkCollection(a.client, a.endpoints.PageAlbumsURL(pageID),
		func(albums []facebook.IDObject) error {
			for _, album := range albums {
				if err := a.archiveEntityPhotos(album.ID, collection); err != nil {
					return err
				}
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	return collection.Records(), nil
}

// archiveEntityPhotos walks the photos of a page or album and folds every
// resolved record into the collection
func (a *Archiver) archiveEntityPhotos(entityID string, collection *MediaCollection) error {
	return facebook.WalkCollection(a.client, a.endpoints.EntityPhotosURL(entityID),
		func(photos []facebook.Photo) error {
			for i := range photos {
				rec := a.resolver.ResolvePhoto(&photos[i])
				a.reportRecord(rec)
				collection.Add(rec)

				a.logger.InfoWithFields("processed photo", map[string]interface{}{
					"entity_id": entityID,
					"photo_id":  photos[i].ID,
				})
			}
			return nil
		})
}

// reportRecords surfaces degraded records so partial failures are visible
// on the console
func (a *Archiver) reportRecords(records []*models.MediaRecord) {
	for _, rec := range records {
		a.reportRecord(rec)
	}
}

func (a *Archiver) reportRecord(rec *models.MediaRecord) {
	if rec.Error == "" {
		return
	}
	a.logger.WarnWithFields("media resolution degraded", map[string]interface{}{
		"post_id":  rec.ID,
		"media_id": rec.MediaID,
		"error":    rec.Error,
	})
}
