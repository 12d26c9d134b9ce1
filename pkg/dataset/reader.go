package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"fbarchive/pkg/errors"
)

// ColumnMapping names the columns the downloader needs in an input CSV.
// The downloader accepts any CSV carrying these five columns under
// whatever names the producer chose.
type ColumnMapping struct {
	PostID               string
	CreatedUnixTimestamp string
	MediaID              string
	MediaType            string
	MediaURL             string
}

// DefaultColumnMapping matches the media dataset this tool produces
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		PostID:               "id",
		CreatedUnixTimestamp: "created_unix_timestamp",
		MediaID:              "media_id",
		MediaType:            "media_type",
		MediaURL:             "media_url",
	}
}

// Row is one downloader input row. CreatedUnix is nil when the timestamp
// cell was empty or unparseable.
type Row struct {
	PostID      string
	CreatedUnix *int64
	MediaID     string
	MediaType   string
	MediaURL    string
}

// ReadRows reads a downloader input CSV as an ordered sequence of rows
// using the supplied column mapping. A mapped column missing from the
// header is a configuration error.
func ReadRows(path string, cols ColumnMapping) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeIO,
			Message: "failed to open input file: " + err.Error(),
			URL:     path,
		}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeIO,
			Message: "failed to read CSV header: " + err.Error(),
			URL:     path,
		}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	required := map[string]string{
		"post id":        cols.PostID,
		"unix timestamp": cols.CreatedUnixTimestamp,
		"media id":       cols.MediaID,
		"media type":     cols.MediaType,
		"media URL":      cols.MediaURL,
	}
	for what, name := range required {
		if _, ok := index[name]; !ok {
			return nil, &errors.Error{
				Type:    errors.ErrorTypeConfig,
				Message: fmt.Sprintf("input CSV has no %s column %q", what, name),
				URL:     path,
			}
		}
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &errors.Error{
				Type:    errors.ErrorTypeIO,
				Message: "failed to read CSV row: " + err.Error(),
				URL:     path,
			}
		}

		cell := func(name string) string {
			i := index[name]
			if i >= len(record) {
				return ""
			}
			return record[i]
		}

		rows = append(rows, Row{
			PostID:      cell(cols.PostID),
			CreatedUnix: parseUnix(cell(cols.CreatedUnixTimestamp)),
			MediaID:     cell(cols.MediaID),
			MediaType:   cell(cols.MediaType),
			MediaURL:    cell(cols.MediaURL),
		})
	}

	return rows, nil
}

// parseUnix accepts both integer timestamps and the legacy float form
// ("1709632800.0") older datasets carry
func parseUnix(s string) *int64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	ts := int64(f)
	return &ts
}
