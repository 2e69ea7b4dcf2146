package proc

import (
	"sort"
)

// Kind tags the closed set of command kinds a registry entry can hold.
type Kind int

const (
	// KindExternal is a command spawned as a child process.
	KindExternal Kind = iota
	// KindEmbedded is a host-registered callable run in-process.
	KindEmbedded
)

// Entry is a resolved registry entry.
type Entry struct {
	Name string
	Kind Kind

	// Path is the executable path for KindExternal entries.
	Path string
	// Main is the callable for KindEmbedded entries.
	Main CommandFunc
}

// Registry maps command names to embedded callables or external executables.
// The embedding host populates it before the read loop starts; the shell
// only resolves names and never removes entries. It is not internally
// synchronized, hosts driving it from multiple goroutines must serialize.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds an embedded command under name, replacing any previous
// entry with the same name.
func (r *Registry) Register(name string, main CommandFunc) {
	r.entries[name] = Entry{Name: name, Kind: KindEmbedded, Main: main}
}

// RegisterExternal maps name to an executable path, bypassing PATH lookup.
func (r *Registry) RegisterExternal(name, path string) {
	r.entries[name] = Entry{Name: name, Kind: KindExternal, Path: path}
}

// Clone returns an independent copy of the registry. Sessions clone the
// shared registry so per-session commands never leak across sessions.
func (r *Registry) Clone() *Registry {
	out := NewRegistry()
	for name, entry := range r.entries {
		out.entries[name] = entry
	}
	return out
}

// Lookup resolves name to a registry entry.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names returns all registered command names in sorted order.
func (r *Registry) Names() []string {
	var names []string
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
