package facebook

import "time"

// CreatedTimeLayout is the timestamp format the Graph API uses for
// created_time fields, e.g. "2024-03-05T10:00:00+0000".
const CreatedTimeLayout = "2006-01-02T15:04:05-0700"

// ParseCreatedTime parses a Graph API created_time value
func ParseCreatedTime(s string) (time.Time, error) {
	return time.Parse(CreatedTimeLayout, s)
}

// Paging contains the cursor to the next page of a collection
type Paging struct {
	Next string `json:"next"`
}

// IDObject is a bare {"id": ...} collection entry
type IDObject struct {
	ID string `json:"id"`
}

// Post represents a page post. Optional text fields are pointers so that
// an absent field can be told apart from an empty one.
type Post struct {
	ID           string          `json:"id"`
	CreatedTime  string          `json:"created_time"`
	PermalinkURL string          `json:"permalink_url"`
	Message      *string         `json:"message"`
	Story        *string         `json:"story"`
	IsPublished  *bool           `json:"is_published"`
	Attachments  *AttachmentList `json:"attachments"`
}

// AttachmentList wraps the data array of an attachment collection
type AttachmentList struct {
	Data []*Attachment `json:"data"`
}

// Attachment is one node of a post's attachment tree. Subattachments may
// nest further Attachment nodes to unbounded depth.
type Attachment struct {
	Type           string          `json:"type"`
	Title          *string         `json:"title"`
	Description    *string         `json:"description"`
	Target         *Target         `json:"target"`
	Media          *Media          `json:"media"`
	Subattachments *AttachmentList `json:"subattachments"`
}

// Target identifies the entity an attachment points at
type Target struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Media holds an attachment's downloadable source, either directly or
// through a nested image descriptor
type Media struct {
	Source string `json:"source"`
	Image  *Image `json:"image"`
}

// Image is a nested image descriptor
type Image struct {
	Src    string `json:"src"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Photo represents a photo node from a photos collection
type Photo struct {
	ID          string         `json:"id"`
	PageStoryID string         `json:"page_story_id"`
	CreatedTime string         `json:"created_time"`
	Name        *string        `json:"name"`
	AltText     *string        `json:"alt_text"`
	Link        string         `json:"link"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Images      []ImageVariant `json:"images"`
}

// ImageVariant is one sized rendition of a photo
type ImageVariant struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Source string `json:"source"`
}

// PhotoStory links a photo to the post (page story) that published it
type PhotoStory struct {
	ID          string `json:"id"`
	PageStoryID string `json:"page_story_id"`
}
