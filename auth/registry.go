package auth

// Registry maps provider names to their resource owners and callback check
// paths. Registration order is preserved; after construction the registry
// is read-only and safe for concurrent lookups.
type Registry struct {
	names  []string
	owners map[string]ResourceOwner
	paths  map[string]string
}

// NewRegistry creates an empty resource owner registry.
func NewRegistry() *Registry {
	return &Registry{
		owners: make(map[string]ResourceOwner),
		paths:  make(map[string]string),
	}
}

// Register adds a provider under name with its callback check path.
// Registering an existing name replaces the owner but keeps its original
// position.
func (r *Registry) Register(name string, owner ResourceOwner, checkPath string) *Registry {
	if _, ok := r.owners[name]; !ok {
		r.names = append(r.names, name)
	}
	r.owners[name] = owner
	r.paths[name] = checkPath
	return r
}

// Owner resolves the resource owner registered under name.
func (r *Registry) Owner(name string) (ResourceOwner, error) {
	owner, ok := r.owners[name]
	if !ok {
		return nil, authErrors.New(ErrUnknownProvider).WithDetail("provider", name)
	}
	return owner, nil
}

// CheckPath resolves the callback check path registered under name.
func (r *Registry) CheckPath(name string) (string, error) {
	path, ok := r.paths[name]
	if !ok {
		return "", authErrors.New(ErrUnknownProvider).WithDetail("provider", name)
	}
	return path, nil
}

// Has reports whether a provider is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.owners[name]
	return ok
}

// Names returns the provider names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
