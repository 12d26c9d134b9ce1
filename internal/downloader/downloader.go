package downloader

import (
	"net/url"
	"path"
	"strings"
	"time"

	"fbarchive/pkg/dataset"
	"fbarchive/pkg/facebook"
	"fbarchive/pkg/logger"
	"fbarchive/pkg/storage"
)

// dateFormat shapes the creation date embedded in downloaded filenames
const dateFormat = "2006-01-02_15.04.05"

// Downloader streams the media files referenced by a previously produced
// CSV to disk. Rows are processed strictly in file order; a failed
// download is logged and counted, never fatal.
type Downloader struct {
	client   *facebook.Client
	storage  *storage.Manager
	accepted map[string]struct{}
	formats  map[string]struct{}
	logger   logger.Logger
}

// New creates a Downloader. acceptedTypes is the media type allow-list,
// formats the supported file extension allow-list (lowercase).
func New(client *facebook.Client, store *storage.Manager, acceptedTypes, formats []string, log logger.Logger) *Downloader {
	if log == nil {
		log = logger.GetLogger()
	}

	accepted := make(map[string]struct{}, len(acceptedTypes))
	for _, t := range acceptedTypes {
		accepted[t] = struct{}{}
	}
	supported := make(map[string]struct{}, len(formats))
	for _, f := range formats {
		supported[strings.ToLower(f)] = struct{}{}
	}

	return &Downloader{
		client:   client,
		storage:  store,
		accepted: accepted,
		formats:  supported,
		logger:   log,
	}
}

// Run reads the input CSV through the supplied column mapping and
// downloads every eligible row. It returns the number of files
// successfully written.
func (d *Downloader) Run(inputPath string, cols dataset.ColumnMapping) (int, error) {
	rows, err := dataset.ReadRows(inputPath, cols)
	if err != nil {
		return 0, err
	}

	total := len(rows)
	successes := 0

	for i, row := range rows {
		if _, ok := d.accepted[row.MediaType]; !ok {
			continue
		}
		if row.MediaURL == "" {
			continue
		}

		originalName, err := FilenameFromURL(row.MediaURL)
		if err != nil {
			d.logger.WarnWithFields("skipping row with unparseable media URL", map[string]interface{}{
				"post_id":  row.PostID,
				"media_id": row.MediaID,
				"url":      row.MediaURL,
				"error":    err.Error(),
			})
			continue
		}

		ext := strings.ToLower(MediaFormat(originalName))
		if _, ok := d.formats[ext]; !ok {
			continue
		}

		if row.CreatedUnix == nil {
			d.logger.WarnWithFields("skipping row without creation timestamp", map[string]interface{}{
				"post_id":  row.PostID,
				"media_id": row.MediaID,
			})
			continue
		}

		filename := DestinationName(row.PostID, row.MediaID, *row.CreatedUnix, ext)

		if err := d.download(row.MediaURL, filename); err != nil {
			d.logger.ErrorWithFields("download failed", map[string]interface{}{
				"post_id":  row.PostID,
				"media_id": row.MediaID,
				"index":    i + 1,
				"total":    total,
				"url":      row.MediaURL,
				"error":    err.Error(),
			})
			continue
		}

		successes++
		d.logger.InfoWithFields("media downloaded", map[string]interface{}{
			"post_id":  row.PostID,
			"media_id": row.MediaID,
			"index":    i + 1,
			"total":    total,
			"file":     filename,
		})
	}

	return successes, nil
}

// download streams one URL to the storage manager
func (d *Downloader) download(mediaURL, filename string) error {
	body, err := d.client.Download(mediaURL)
	if err != nil {
		return err
	}
	defer body.Close()

	return d.storage.SaveFile(body, filename)
}

// FilenameFromURL returns the percent-decoded basename of the URL's path
// component
func FilenameFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return path.Base(u.Path), nil
}

// MediaFormat returns the extension of a filename, taken as everything
// after the last dot. A name without a dot returns unchanged, which never
// matches a supported format.
func MediaFormat(filename string) string {
	parts := strings.Split(filename, ".")
	return parts[len(parts)-1]
}

// DestinationName derives the deterministic output filename for a record:
// "{post_id} {media_id} {YYYY-MM-DD_HH.MM.SS}.{ext}" with the date
// rendered in local time.
func DestinationName(postID, mediaID string, createdUnix int64, ext string) string {
	date := time.Unix(createdUnix, 0).Format(dateFormat)
	return postID + " " + mediaID + " " + date + "." + ext
}
