// Package dataset persists and reads the archiver's CSV datasets.
//
// The fixed-schema posts and media datasets are written and read through
// gocsv struct tags, so the column list and order live on the record types
// themselves. The downloader-side reader instead binds columns by an
// externally supplied name mapping, because its input may be any CSV that
// carries the five columns it needs.
package dataset
