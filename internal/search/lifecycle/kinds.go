package lifecycle

import (
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// IndexKind identifies a category of searchable entity. Each kind is bound
// to exactly one physical index and one mapping template; the table is fixed
// at process start.
type IndexKind string

const (
	KindTable     IndexKind = "table"
	KindTopic     IndexKind = "topic"
	KindDashboard IndexKind = "dashboard"
	KindPipeline  IndexKind = "pipeline"
	KindUser      IndexKind = "user"
	KindTeam      IndexKind = "team"
	KindGlossary  IndexKind = "glossary"
	KindMLModel   IndexKind = "mlmodel"
	KindTag       IndexKind = "tag"
)

// IndexStatus is the runtime status of one physical index, tracked
// in-memory by the Manager and rebuilt fresh on restart.
type IndexStatus string

const (
	IndexStatusNotCreated IndexStatus = "NOT_CREATED"
	IndexStatusCreated    IndexStatus = "CREATED"
	IndexStatusFailed     IndexStatus = "FAILED"
)

// Definition binds an index kind to its physical index name and mapping
// template resource.
type Definition struct {
	Kind        IndexKind
	IndexName   string
	MappingFile string
}

// definitions is the closed 1:1 kind table.
var definitions = map[IndexKind]Definition{
	KindTable:     {Kind: KindTable, IndexName: "table_search_index", MappingFile: "table_index_mapping.json"},
	KindTopic:     {Kind: KindTopic, IndexName: "topic_search_index", MappingFile: "topic_index_mapping.json"},
	KindDashboard: {Kind: KindDashboard, IndexName: "dashboard_search_index", MappingFile: "dashboard_index_mapping.json"},
	KindPipeline:  {Kind: KindPipeline, IndexName: "pipeline_search_index", MappingFile: "pipeline_index_mapping.json"},
	KindUser:      {Kind: KindUser, IndexName: "user_search_index", MappingFile: "user_index_mapping.json"},
	KindTeam:      {Kind: KindTeam, IndexName: "team_search_index", MappingFile: "team_index_mapping.json"},
	KindGlossary:  {Kind: KindGlossary, IndexName: "glossary_search_index", MappingFile: "glossary_index_mapping.json"},
	KindMLModel:   {Kind: KindMLModel, IndexName: "mlmodel_search_index", MappingFile: "mlmodel_index_mapping.json"},
	KindTag:       {Kind: KindTag, IndexName: "tag_search_index", MappingFile: "tag_index_mapping.json"},
}

// entityTypeToKind maps domain entity type names to their index kind.
// Lookup is case-insensitive; two entity types may share one kind
// (glossaryTerm documents live in the glossary index).
var entityTypeToKind = map[string]IndexKind{
	"table":        KindTable,
	"topic":        KindTopic,
	"dashboard":    KindDashboard,
	"pipeline":     KindPipeline,
	"user":         KindUser,
	"team":         KindTeam,
	"glossary":     KindGlossary,
	"glossaryterm": KindGlossary,
	"mlmodel":      KindMLModel,
	"tag":          KindTag,
}

// Kinds returns all index kinds in a stable order.
func Kinds() []IndexKind {
	return []IndexKind{
		KindTable,
		KindTopic,
		KindDashboard,
		KindPipeline,
		KindUser,
		KindTeam,
		KindGlossary,
		KindMLModel,
		KindTag,
	}
}

// DefinitionFor returns the index definition for the given kind.
func DefinitionFor(kind IndexKind) Definition {
	return definitions[kind]
}

// KindForEntityType resolves a domain entity type name to its index kind.
func KindForEntityType(entityType string) (IndexKind, error) {
	kind, ok := entityTypeToKind[strings.ToLower(entityType)]
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "unknown entity type: %s", entityType)
	}

	return kind, nil
}
