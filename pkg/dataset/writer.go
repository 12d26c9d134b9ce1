package dataset

import (
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"fbarchive/pkg/errors"
	"fbarchive/pkg/models"
)

// WriteMedia writes the media dataset to path in record order, header
// first. The column set and order are fixed by the MediaRecord csv tags.
// Any open or write failure aborts the run; a non-zero exit means the
// output file is not usable.
func WriteMedia(path string, records []*models.MediaRecord) error {
	return write(path, &records)
}

// WritePosts writes the posts dataset to path in record order
func WritePosts(path string, records []*models.PostRecord) error {
	return write(path, &records)
}

func write(path string, records interface{}) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &errors.Error{
				Type:    errors.ErrorTypeIO,
				Message: "failed to create output directory: " + err.Error(),
				URL:     path,
			}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return &errors.Error{
			Type:    errors.ErrorTypeIO,
			Message: "failed to create output file: " + err.Error(),
			URL:     path,
		}
	}
	defer file.Close()

	if err := gocsv.MarshalFile(records, file); err != nil {
		return &errors.Error{
			Type:    errors.ErrorTypeIO,
			Message: "failed to write CSV: " + err.Error(),
			URL:     path,
		}
	}

	return nil
}

// ReadMedia reads a media dataset previously produced by WriteMedia
func ReadMedia(path string) ([]*models.MediaRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeIO,
			Message: "failed to open input file: " + err.Error(),
			URL:     path,
		}
	}
	defer file.Close()

	var records []*models.MediaRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeIO,
			Message: "failed to parse CSV: " + err.Error(),
			URL:     path,
		}
	}
	return records, nil
}

// ReadPosts reads a posts dataset previously produced by WritePosts
func ReadPosts(path string) ([]*models.PostRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeIO,
			Message: "failed to open input file: " + err.Error(),
			URL:     path,
		}
	}
	defer file.Close()

	var records []*models.PostRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeIO,
			Message: "failed to parse CSV: " + err.Error(),
			URL:     path,
		}
	}
	return records, nil
}
