// Package domain defines the core business entities for folio.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - BookIdentity: The (title, author, year) triple that identifies a book
//   - StoredDocument: A book as held by the search engine
//   - Query: An engine-neutral structured query
//   - TermVector / TermCount: Per-document and aggregated word statistics
//   - IngestOutcome / IngestRun: Per-file ingestion results and run history
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
