// Package registry maps (version, kind) identity tag pairs to the concrete
// types that implement them.
//
// The set of document kinds is open: built-in types register themselves at
// init time and callers add their own. Lookup failure is therefore a normal
// runtime condition, not a programming error, and is reported as
// ErrNotRegistered.
//
// The package-level Default registry exists for ergonomic parity with
// single-process use; it must be fully populated before concurrent use
// begins. Tests and libraries that want isolation construct their own
// Registry and thread it through explicitly.
package registry

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/kindform/go-kindform/inspect"
)

// ErrNotRegistered reports a lookup of identity tags no type was registered
// for. It is fatal to the operation that needed the type, and to nothing
// else.
var ErrNotRegistered = errors.New("no model for identity tags")

// ErrBadType re-exports the inspect sentinel: a type that does not qualify
// as a document type cannot be registered.
var ErrBadType = inspect.ErrBadType

// Object is the capability interface every document type implements,
// usually by embedding models.TypeMeta. The two tags identify which
// registered type a serialized document represents.
type Object interface {
	GetAPIVersion() string
	GetKind() string
}

// Entry is one registered document type.
type Entry struct {
	// APIVersion and Kind are the prototype's identity tags; APIVersion
	// may be group-qualified ("group/version").
	APIVersion string
	Kind       string

	// Type is the concrete struct type behind the prototype.
	Type reflect.Type

	// Plural is the lowercase plural resource name, e.g. "configmaps".
	Plural string

	// Namespaced reports whether instances live inside a namespace.
	Namespaced bool
}

// New returns a fresh zero instance of the entry's type with its identity
// tags populated.
func (e Entry) New() Object {
	obj := reflect.New(e.Type).Interface().(Object)
	if s, ok := obj.(interface{ SetGroupVersionKind(string, string) }); ok {
		s.SetGroupVersionKind(e.APIVersion, e.Kind)
	}
	return obj
}

type Registry struct {
	mu      sync.RWMutex
	entries map[key]Entry
}

type key struct {
	version string
	kind    string
}

func New() *Registry {
	return &Registry{entries: map[key]Entry{}}
}

// Default is the process-wide registry. Registration into it is expected at
// load time, before steady-state lookups begin; concurrent registration
// during lookups is not part of the contract even though the registry
// itself is locked.
var Default = New()

type RegisterOption func(*Entry)

// WithPlural sets the plural resource name. When unset it is derived by
// lowercasing the kind and appending "s".
func WithPlural(plural string) RegisterOption {
	return func(e *Entry) { e.Plural = plural }
}

// Namespaced marks whether the resource is namespace-scoped.
func Namespaced(v bool) RegisterOption {
	return func(e *Entry) { e.Namespaced = v }
}

// Register records a prototype object under its identity tags. The
// prototype must be a pointer to a struct whose identity tags are populated
// and whose shape is introspectable; otherwise Register fails with
// ErrBadType.
//
// Registering the same (version, kind) pair again replaces the previous
// entry (last write wins). Callers should not rely on that: re-registering
// a different type for a live pair is a logic error on their side.
func (r *Registry) Register(proto Object, opts ...RegisterOption) error {
	if proto == nil {
		return fmt.Errorf("%w: nil prototype", ErrBadType)
	}
	apiVersion, kind := proto.GetAPIVersion(), proto.GetKind()
	if apiVersion == "" || kind == "" {
		return fmt.Errorf("%w: prototype %T does not declare identity tags", ErrBadType, proto)
	}
	t := reflect.TypeOf(proto)
	if t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: prototype %T must be a pointer to a struct", ErrBadType, proto)
	}
	// the type must be introspectable and must carry the identity fields
	fields, err := inspect.Fields(t)
	if err != nil {
		return err
	}
	if !hasField(fields, "apiVersion") || !hasField(fields, "kind") {
		return fmt.Errorf("%w: %T does not expose apiVersion and kind fields", ErrBadType, proto)
	}

	e := Entry{
		APIVersion: apiVersion,
		Kind:       kind,
		Type:       t.Elem(),
		Plural:     strings.ToLower(kind) + "s",
	}
	for _, opt := range opts {
		opt(&e)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key{version: Version(apiVersion), kind: kind}] = e
	return nil
}

// Lookup resolves identity tags to a registered entry. The version part of
// a group-qualified apiVersion is its suffix after the last "/".
func (r *Registry) Lookup(apiVersion, kind string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[key{version: Version(apiVersion), kind: kind}]
	return e, ok
}

// Entries returns all registered entries in unspecified order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		res = append(res, e)
	}
	return res
}

// Version extracts the version tag from a possibly group-qualified
// apiVersion string: "apps/v1" and "v1" both yield "v1".
func Version(apiVersion string) string {
	if i := strings.LastIndex(apiVersion, "/"); i >= 0 {
		return apiVersion[i+1:]
	}
	return apiVersion
}

func hasField(fields []inspect.Field, name string) bool {
	for _, f := range fields {
		if f.Name == name {
			return true
		}
	}
	return false
}
