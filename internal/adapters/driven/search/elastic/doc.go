// Package elastic implements driven.SearchEngine on top of Elasticsearch 8.
//
// Documents carry four fields: title and author are standard-analysed text,
// year_publication is a date in "yyyy" format, and text uses a custom
// analyzer (standard tokenizer, lowercase, language stop words plus an
// extra stop list) with term vectors enabled so per-document term
// frequencies can be read back for the top-words report.
//
// Every call is throttled by an optional token bucket. A 429 response
// pushes back subsequent calls for the duration of its Retry-After header.
package elastic
