package model

import (
	"encoding/json"
	"time"
)

// Include selects which rows an entity listing spans.
type Include string

const (
	// IncludeAll spans soft-deleted rows as well, required by reindexing.
	IncludeAll Include = "all"
	// IncludeNonDeleted spans live rows only.
	IncludeNonDeleted Include = "non-deleted"
)

// ListFilter restricts an entity listing.
type ListFilter struct {
	Include Include
}

// Entity is one catalog entity row from the primary datastore.
type Entity struct {
	ID          string          `db:"id"`
	EntityType  string          `db:"entity_type"`
	Name        string          `db:"name"`
	DisplayName string          `db:"display_name"`
	FQN         string          `db:"fqn"`
	JSON        json.RawMessage `db:"json"`
	Deleted     bool            `db:"deleted"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// Paging carries the page totals and the opaque forward cursor. After is
// empty on the final page.
type Paging struct {
	Total int    `json:"total"`
	After string `json:"after,omitempty"`
}

// EntityPage is one page of an entity listing.
type EntityPage struct {
	Data   []*Entity `json:"data"`
	Paging Paging    `json:"paging"`
}
