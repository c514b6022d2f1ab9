package validation

// Registry maps (resource, operation) pairs to validation schemas. Schemas
// are registered once at startup and the registry is read-only afterwards,
// so lookups need no locking.
//
// Resolution checks the operation-level key first and falls back to a
// resource-level registration: nearest scope wins. No registration at all
// means validation is a deliberate no-op for that route.
type Registry struct {
	specs map[string]*Schema
}

func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]*Schema)}
}

// Register stores a schema under resource, or under resource+"."+operation
// when operation is non-empty.
func (r *Registry) Register(resource, operation string, schema *Schema) {
	r.specs[key(resource, operation)] = schema
}

// Resolve returns the schema for the given operation, or nil when none is
// registered at either scope.
func (r *Registry) Resolve(resource, operation string) *Schema {
	if s, ok := r.specs[key(resource, operation)]; ok {
		return s
	}
	return r.specs[resource]
}

func key(resource, operation string) string {
	if operation == "" {
		return resource
	}
	return resource + "." + operation
}
