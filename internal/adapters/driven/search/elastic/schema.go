package elastic

import (
	"encoding/json"

	"github.com/custodia-labs/folio/internal/core/domain"
)

const (
	analyzerName      = "custom_analyzer"
	languageStopName  = "language_stop"
	extraStopName     = "extra_stop"
	yearFormat        = "yyyy"
	termVectorSetting = "yes"
)

// mapping builds the create-index body for the book schema.
func mapping(schema domain.IndexSchema) ([]byte, error) {
	filters := []string{"lowercase"}
	filterDefs := map[string]any{}

	if schema.LanguageStopwords != "" {
		filterDefs[languageStopName] = map[string]any{
			"type":      "stop",
			"stopwords": schema.LanguageStopwords,
		}
		filters = append(filters, languageStopName)
	}
	if len(schema.ExtraStopwords) > 0 {
		filterDefs[extraStopName] = map[string]any{
			"type":      "stop",
			"stopwords": schema.ExtraStopwords,
		}
		filters = append(filters, extraStopName)
	}

	body := map[string]any{
		"settings": map[string]any{
			"analysis": map[string]any{
				"filter": filterDefs,
				"analyzer": map[string]any{
					analyzerName: map[string]any{
						"type":      "custom",
						"tokenizer": "standard",
						"filter":    filters,
					},
				},
			},
		},
		"mappings": map[string]any{
			"properties": map[string]any{
				domain.FieldTitle:  map[string]any{"type": "text", "analyzer": "standard"},
				domain.FieldAuthor: map[string]any{"type": "text", "analyzer": "standard"},
				domain.FieldYear:   map[string]any{"type": "date", "format": yearFormat},
				domain.FieldText: map[string]any{
					"type":        "text",
					"analyzer":    analyzerName,
					"term_vector": termVectorSetting,
				},
			},
		},
	}
	return json.Marshal(body)
}
