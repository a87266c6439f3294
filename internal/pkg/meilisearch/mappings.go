package meilisearch

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/meilisearch/meilisearch-go"
)

// mappingsFS holds the embedded per-index mapping templates. Each template
// describes one physical index: its primary key and the Meilisearch settings
// applied to it. The content is treated as opaque payload by the lifecycle
// manager; only this package knows its shape.
//
//go:embed mappings/*.json
var mappingsFS embed.FS

// IndexMapping is a decoded index mapping template.
type IndexMapping struct {
	PrimaryKey string               `json:"primaryKey"`
	Settings   meilisearch.Settings `json:"settings"`
}

// LoadIndexMapping loads and decodes the mapping template resource with the
// given name (e.g. "table_index_mapping.json").
func LoadIndexMapping(name string) (*IndexMapping, error) {
	data, err := mappingsFS.ReadFile(fmt.Sprintf("mappings/%s", name))
	if err != nil {
		return nil, fmt.Errorf("failed to read index mapping %s: %w", name, err)
	}

	var mapping IndexMapping
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("failed to decode index mapping %s: %w", name, err)
	}

	return &mapping, nil
}
