// Package registry maps room and station type names to small stable indices
// so lookup tables can be plain slices.
package registry

// Registry assigns each distinct type name the index of its first appearance.
type Registry struct {
	names  []string
	lookup map[string]int
}

// New builds a registry from names. Duplicates keep their first index.
func New(names ...string) *Registry {
	r := &Registry{lookup: make(map[string]int, len(names))}
	for _, n := range names {
		r.Add(n)
	}
	return r
}

// Add registers name if it is new and returns its index.
func (r *Registry) Add(name string) int {
	if i, ok := r.lookup[name]; ok {
		return i
	}
	i := len(r.names)
	r.names = append(r.names, name)
	r.lookup[name] = i
	return i
}

// Index returns the index for name, or -1 and false when it is unknown.
// A nil registry knows no names.
func (r *Registry) Index(name string) (int, bool) {
	if r == nil {
		return -1, false
	}
	i, ok := r.lookup[name]
	if !ok {
		return -1, false
	}
	return i, true
}

// Name returns the type name at index i.
func (r *Registry) Name(i int) string {
	if r == nil || i < 0 || i >= len(r.names) {
		return ""
	}
	return r.names[i]
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Names returns the registered names in index order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
