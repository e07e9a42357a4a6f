package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

func TestJournal_RecordAssignsUUID(t *testing.T) {
	j := NewJournal()

	id, err := j.Record(context.Background(), domain.IngestRun{Path: "/books"})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}

func TestJournal_RecentAndGet(t *testing.T) {
	j := NewJournal()
	ctx := context.Background()
	var ids []string
	for _, p := range []string{"/a", "/b", "/c"} {
		id, err := j.Record(ctx, domain.IngestRun{Path: p})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "/c", runs[0].Path)
	assert.Equal(t, "/b", runs[1].Path)

	run, err := j.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "/a", run.Path)

	_, err = j.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJournal_RecordCopiesOutcomes(t *testing.T) {
	j := NewJournal()
	outcomes := []domain.IngestOutcome{{Filename: "a", Kind: domain.OutcomeStored}}

	id, err := j.Record(context.Background(), domain.IngestRun{Outcomes: outcomes})
	require.NoError(t, err)
	outcomes[0].Filename = "changed"

	run, err := j.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "a", run.Outcomes[0].Filename)
}
