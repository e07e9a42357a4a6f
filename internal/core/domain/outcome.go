package domain

import "time"

// OutcomeKind classifies what happened to one ingestion candidate.
type OutcomeKind string

const (
	OutcomeStored           OutcomeKind = "stored"
	OutcomeSkippedDuplicate OutcomeKind = "skipped_duplicate"
	OutcomeSkippedMalformed OutcomeKind = "skipped_malformed_name"
	OutcomeFailed           OutcomeKind = "failed"
)

// IngestOutcome is the result for a single source file.
type IngestOutcome struct {
	// Filename is the entry name as listed (not the full path).
	Filename string

	Kind OutcomeKind

	// Identity is zero for malformed names.
	Identity BookIdentity

	// DocumentID is set when Kind is OutcomeStored.
	DocumentID string

	// Err is set when Kind is OutcomeFailed or OutcomeSkippedMalformed.
	Err error
}

// IngestTally counts outcomes by kind.
type IngestTally struct {
	Stored    int
	Duplicate int
	Malformed int
	Failed    int
}

// Tally summarises a list of outcomes.
func Tally(outcomes []IngestOutcome) IngestTally {
	var t IngestTally
	for i := range outcomes {
		switch outcomes[i].Kind {
		case OutcomeStored:
			t.Stored++
		case OutcomeSkippedDuplicate:
			t.Duplicate++
		case OutcomeSkippedMalformed:
			t.Malformed++
		case OutcomeFailed:
			t.Failed++
		}
	}
	return t
}

// IngestRun is one recorded add-book / add-books invocation.
type IngestRun struct {
	ID         string
	Path       string
	Index      string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []IngestOutcome
}

// Tally summarises the run's outcomes.
func (r IngestRun) Tally() IngestTally {
	return Tally(r.Outcomes)
}
