// Package archive implements the extraction and normalization pipeline:
// attachment tree flattening, media URL resolution, cross-source record
// merging and the posts-only pipeline.
//
// The media pipeline walks three traversal paths in a fixed order -
// posts, profile photos, albums - and merges their records by the
// composite (media_id, created_unix_timestamp) key with last-write-wins
// semantics. The posts pipeline deduplicates by whole-record content
// instead. Both return datasets sorted ascending by creation time.
package archive
