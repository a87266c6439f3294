package document

import (
	"encoding/json"
	"strings"
	"sync"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/opencatalog/searchsync/internal/model"
)

// Builder produces a search document representation from one entity
// instance. Implementations are registered per entity type.
type Builder interface {
	Build(entity *model.Entity) (map[string]any, error)
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc func(entity *model.Entity) (map[string]any, error)

// Build implements Builder.
func (f BuilderFunc) Build(entity *model.Entity) (map[string]any, error) {
	return f(entity)
}

// Registry holds document builders keyed by entity type name
// (case-insensitive).
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]Builder),
	}
}

// Register binds a builder to an entity type name, replacing any previous
// binding.
func (r *Registry) Register(entityType string, b Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[strings.ToLower(entityType)] = b
}

// Build produces a document for the entity using the builder registered for
// its entity type.
func (r *Registry) Build(entityType string, entity *model.Entity) (map[string]any, error) {
	r.mu.RLock()
	b, ok := r.builders[strings.ToLower(entityType)]
	r.mu.RUnlock()
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "no document builder registered for entity type: %s", entityType)
	}

	return b.Build(entity)
}

// BaseBuilder flattens the entity's core attributes and its JSON payload
// into one document. The entity ID becomes the document primary key.
func BaseBuilder() Builder {
	return BuilderFunc(func(entity *model.Entity) (map[string]any, error) {
		doc := map[string]any{}

		if len(entity.JSON) > 0 {
			if err := json.Unmarshal(entity.JSON, &doc); err != nil {
				return nil, status.Errorf(codes.InvalidArgument, "failed to decode entity payload: %v", err)
			}
		}

		doc["id"] = entity.ID
		doc["entityType"] = entity.EntityType
		doc["name"] = entity.Name
		doc["displayName"] = entity.DisplayName
		doc["fullyQualifiedName"] = entity.FQN
		doc["deleted"] = entity.Deleted
		doc["updatedAt"] = entity.UpdatedAt.UnixMilli()

		return doc, nil
	})
}

// RegisterDefaults registers the base builder for every known entity type.
func RegisterDefaults(r *Registry) {
	for _, entityType := range []string{
		"table", "topic", "dashboard", "pipeline",
		"user", "team", "glossary", "glossaryTerm", "mlmodel", "tag",
	} {
		r.Register(entityType, BaseBuilder())
	}
}
