package archive

import (
	"sort"

	"fbarchive/pkg/models"
)

// MediaCollection merges records produced by independent traversal paths
// into a single dataset keyed by (media_id, created_unix_timestamp). A
// later write for an existing key fully replaces the earlier record; there
// is no field-level merge. The pipeline folds paths in the fixed order
// posts, profile photos, albums, which is what decides who wins a
// collision.
type MediaCollection struct {
	records map[string]*models.MediaRecord
	order   []string
}

// NewMediaCollection creates an empty collection
func NewMediaCollection() *MediaCollection {
	return &MediaCollection{
		records: make(map[string]*models.MediaRecord),
	}
}

// Add folds one record into the collection, last write wins
func (c *MediaCollection) Add(rec *models.MediaRecord) {
	key := rec.Key()
	if _, exists := c.records[key]; !exists {
		c.order = append(c.order, key)
	}
	c.records[key] = rec
}

// AddAll folds a slice of records in order
func (c *MediaCollection) AddAll(recs []*models.MediaRecord) {
	for _, rec := range recs {
		c.Add(rec)
	}
}

// Len returns the number of distinct records
func (c *MediaCollection) Len() int {
	return len(c.records)
}

// Records returns the merged records sorted ascending by
// created_unix_timestamp. Records without a timestamp sort first; ties
// keep first-insertion order.
func (c *MediaCollection) Records() []*models.MediaRecord {
	out := make([]*models.MediaRecord, 0, len(c.records))
	for _, key := range c.order {
		out = append(out, c.records[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return recordTimestamp(out[i]) < recordTimestamp(out[j])
	})
	return out
}

func recordTimestamp(rec *models.MediaRecord) int64 {
	if rec.CreatedUnixTimestamp == nil {
		return 0
	}
	return *rec.CreatedUnixTimestamp
}

// PostSet deduplicates posts by whole-record content. Posts carry no
// composite sub-key, so any two records with identical field values
// collapse to one; discovery order carries no meaning for ties.
type PostSet struct {
	records map[string]*models.PostRecord
	order   []string
}

// NewPostSet creates an empty set
func NewPostSet() *PostSet {
	return &PostSet{
		records: make(map[string]*models.PostRecord),
	}
}

// Add inserts a record; exact duplicates collapse
func (s *PostSet) Add(rec *models.PostRecord) {
	key := rec.Key()
	if _, exists := s.records[key]; exists {
		return
	}
	s.records[key] = rec
	s.order = append(s.order, key)
}

// Len returns the number of distinct records
func (s *PostSet) Len() int {
	return len(s.records)
}

// Records returns the distinct records sorted ascending by
// created_unix_timestamp
func (s *PostSet) Records() []*models.PostRecord {
	out := make([]*models.PostRecord, 0, len(s.records))
	for _, key := range s.order {
		out = append(out, s.records[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedUnixTimestamp < out[j].CreatedUnixTimestamp
	})
	return out
}
