// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SearchEngine: Full-text index, search and term vectors (Elasticsearch)
//   - SourceReader: Lists and reads book source files
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - IngestJournal: Ingest run history. Without it, runs are not recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
