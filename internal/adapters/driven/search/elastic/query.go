package elastic

import (
	"encoding/json"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// searchBody renders a domain query as a bool query. Only the identity
// fields are fetched back; the body text stays on the engine side.
func searchBody(q domain.Query) ([]byte, error) {
	boolQuery := map[string]any{}
	if must := clauses(q.Must); len(must) > 0 {
		boolQuery["must"] = must
	}
	if mustNot := clauses(q.MustNot); len(mustNot) > 0 {
		boolQuery["must_not"] = mustNot
	}

	var query map[string]any
	if len(boolQuery) == 0 {
		query = map[string]any{"match_all": map[string]any{}}
	} else {
		query = map[string]any{"bool": boolQuery}
	}

	return json.Marshal(map[string]any{
		"query":   query,
		"_source": []string{domain.FieldTitle, domain.FieldAuthor, domain.FieldYear},
	})
}

func clauses(cs []domain.Clause) []any {
	out := make([]any, 0, len(cs))
	for _, c := range cs {
		out = append(out, clause(c))
	}
	return out
}

func clause(c domain.Clause) map[string]any {
	if c.Kind == domain.ClauseRange {
		return map[string]any{
			"range": map[string]any{
				c.Field: map[string]any{"gte": c.From, "lte": c.To},
			},
		}
	}
	return map[string]any{
		"match": map[string]any{c.Field: c.Text},
	}
}

// searchResponse is the subset of the search response that is read.
type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string         `json:"_id"`
			Source map[string]any `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// termVectorsResponse is the subset of the termvectors response that is read.
type termVectorsResponse struct {
	Found       bool `json:"found"`
	TermVectors map[string]struct {
		Terms map[string]struct {
			TermFreq int `json:"term_freq"`
		} `json:"terms"`
	} `json:"term_vectors"`
}

// indexResponse is the subset of the index response that is read.
type indexResponse struct {
	ID string `json:"_id"`
}

// errorResponse is the engine's error envelope.
type errorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}
