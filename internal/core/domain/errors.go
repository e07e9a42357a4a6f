package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConnection indicates the search engine cannot be reached.
	// It is fatal for the whole run.
	ErrConnection = errors.New("cannot connect to search engine")

	// ErrEngineUnavailable indicates no search engine has been configured.
	ErrEngineUnavailable = errors.New("search engine unavailable")

	// ErrIndexExists indicates the index is already present.
	ErrIndexExists = errors.New("index already exists")

	// ErrIndexCreation indicates the engine rejected the index schema.
	ErrIndexCreation = errors.New("index creation failed")

	// ErrIO indicates a source file could not be read.
	// In directory mode it only fails the affected file.
	ErrIO = errors.New("source unreadable")

	// ErrMalformedInput indicates a filename that does not encode a BookIdentity.
	// It is absorbed into a skip outcome, never surfaced as a failure.
	ErrMalformedInput = errors.New("malformed input")

	// ErrQueryExecution indicates a search or term-vector call failed.
	ErrQueryExecution = errors.New("query execution failed")

	// ErrJournalUnavailable indicates the ingest journal is disabled.
	ErrJournalUnavailable = errors.New("ingest journal unavailable")
)

// QueryError identifies which query or document a failed engine call was for.
type QueryError struct {
	// Operation names the engine call, e.g. "search" or "termvectors".
	Operation string

	// Target is the query description or document ID.
	Target string

	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Target, e.Err)
}

func (e *QueryError) Unwrap() []error {
	return []error{ErrQueryExecution, e.Err}
}

// PartialAggregationError reports the documents of a year cohort whose
// term vectors could not be fetched. Their counts are not part of any
// returned ranking.
type PartialAggregationError struct {
	Year   int
	Failed map[string]error
}

// FailedIDs returns the failed document IDs in ascending order.
func (e *PartialAggregationError) FailedIDs() []string {
	ids := make([]string, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (e *PartialAggregationError) Error() string {
	return fmt.Sprintf("top words for %d: term vectors failed for %d document(s): %s",
		e.Year, len(e.Failed), strings.Join(e.FailedIDs(), ", "))
}

func (e *PartialAggregationError) Unwrap() error {
	return ErrQueryExecution
}
