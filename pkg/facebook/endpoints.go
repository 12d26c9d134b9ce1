package facebook

import (
	"fmt"
	"net/url"
)

const (
	// DefaultBaseURL is the Graph API host
	DefaultBaseURL = "https://graph.facebook.com"

	// DefaultAPIVersion is the Graph API version the archiver targets
	DefaultAPIVersion = "v20.0"
)

// Field lists for the collections the archiver walks
const (
	postFields       = "id,message,story,created_time,permalink_url,is_published"
	attachmentFields = "id,created_time,permalink_url,attachments"
	photoFields      = "id,page_story_id,created_time,name,alt_text,images,link,height,width"
	photoStoryFields = "id,page_story_id"
)

// Endpoints builds Graph API request URLs. The entity id and access token
// are passed as explicit query parameters rather than spliced into a
// template string, so ids or tokens containing placeholder-like text can
// never corrupt the URL.
type Endpoints struct {
	BaseURL     string
	APIVersion  string
	AccessToken string
}

// NewEndpoints creates an endpoint builder for the given credential
func NewEndpoints(baseURL, apiVersion, accessToken string) *Endpoints {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	return &Endpoints{
		BaseURL:     baseURL,
		APIVersion:  apiVersion,
		AccessToken: accessToken,
	}
}

// build constructs {base}/{version}/{id}?fields=...&access_token=...
func (e *Endpoints) build(id, fields string) string {
	return fmt.Sprintf("%s/%s/%s?%s", e.BaseURL, e.APIVersion, url.PathEscape(id), e.query(fields))
}

// buildEdge constructs {base}/{version}/{id}/{edge}?fields=...&access_token=...
func (e *Endpoints) buildEdge(id, edge, fields string) string {
	return fmt.Sprintf("%s/%s/%s/%s?%s", e.BaseURL, e.APIVersion, url.PathEscape(id), edge, e.query(fields))
}

func (e *Endpoints) query(fields string) string {
	params := url.Values{}
	params.Set("fields", fields)
	params.Set("access_token", e.AccessToken)
	return params.Encode()
}

// PageFeedURL returns the URL for a page's feed (full post fields)
func (e *Endpoints) PageFeedURL(pageID string) string {
	return e.buildEdge(pageID, "feed", postFields)
}

// PagePostIDsURL returns the URL for a page's post ids
func (e *Endpoints) PagePostIDsURL(pageID string) string {
	return e.buildEdge(pageID, "posts", "id")
}

// PageAlbumsURL returns the URL for a page's album ids
func (e *Endpoints) PageAlbumsURL(pageID string) string {
	return e.buildEdge(pageID, "albums", "id")
}

// EntityPhotosURL returns the URL for the photos of a page or album,
// with the full photo fields needed for media resolution
func (e *Endpoints) EntityPhotosURL(entityID string) string {
	return e.buildEdge(entityID, "photos", photoFields)
}

// PagePhotoStoriesURL returns the URL for a page's photos with just the
// photo-to-story linkage, used by the posts pipeline
func (e *Endpoints) PagePhotoStoriesURL(pageID string) string {
	return e.buildEdge(pageID, "photos", photoStoryFields)
}

// PostDetailsURL returns the URL for a single post with full post fields
func (e *Endpoints) PostDetailsURL(postID string) string {
	return e.build(postID, postFields)
}

// PostAttachmentsURL returns the URL for a single post with its
// attachment tree
func (e *Endpoints) PostAttachmentsURL(postID string) string {
	return e.build(postID, attachmentFields)
}
