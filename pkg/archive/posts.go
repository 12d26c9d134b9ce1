package archive

import (
	"fmt"

	"fbarchive/pkg/facebook"
	"fbarchive/pkg/models"
)

// NewPostRecord normalizes a page post into the posts dataset shape.
// Message and story get the same legacy formatting the media fields do.
// An unparseable created_time aborts the traversal path.
func NewPostRecord(post *facebook.Post) (*models.PostRecord, error) {
	ts, err := facebook.ParseCreatedTime(post.CreatedTime)
	if err != nil {
		return nil, fmt.Errorf("post %s: invalid created_time %q: %w", post.ID, post.CreatedTime, err)
	}

	return &models.PostRecord{
		ID:                   post.ID,
		CreatedTime:          post.CreatedTime,
		CreatedUnixTimestamp: ts.Unix(),
		Message:              formatText(post.Message),
		Story:                formatText(post.Story),
		IsPublished:          post.IsPublished,
		PermalinkURL:         post.PermalinkURL,
	}, nil
}

// ArchivePosts walks the page feed and then the page's photo stories and
// returns the deduplicated posts dataset sorted by creation time. Photo
// stories surface posts the feed omits; the same post reached twice
// collapses by whole-record equality.
func (a *Archiver) ArchivePosts(pageID string) ([]*models.PostRecord, error) {
	set := NewPostSet()

	// Page feed
	err := facebook.WalkCollection(a.client, a.endpoints.PageFeedURL(pageID),
		func(posts []facebook.Post) error {
			for i := range posts {
				rec, err := NewPostRecord(&posts[i])
				if err != nil {
					return err
				}
				set.Add(rec)

				a.logger.InfoWithFields("processed post", map[string]interface{}{
					"post_id": rec.ID,
				})
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	// Photo stories: fetch the owning post of every page photo
	err = facebook.WalkCollection(a.client, a.endpoints.PagePhotoStoriesURL(pageID),
		func(stories []facebook.PhotoStory) error {
			for _, story := range stories {
				var post facebook.Post
				if err := a.client.GetJSON(a.endpoints.PostDetailsURL(story.PageStoryID), &post); err != nil {
					return err
				}

				rec, err := NewPostRecord(&post)
				if err != nil {
					return err
				}
				set.Add(rec)

				a.logger.InfoWithFields("processed photo story", map[string]interface{}{
					"photo_id": story.ID,
					"post_id":  rec.ID,
				})
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	return set.Records(), nil
}
