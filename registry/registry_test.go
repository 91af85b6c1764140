package registry

import (
	"errors"
	"testing"
)

type meta struct {
	APIVersion string `kform:"name=apiVersion"`
	Kind       string `kform:"name=kind"`
}

func (m meta) GetAPIVersion() string { return m.APIVersion }
func (m meta) GetKind() string       { return m.Kind }

func (m *meta) SetGroupVersionKind(apiVersion, kind string) {
	m.APIVersion = apiVersion
	m.Kind = kind
}

type widget struct {
	meta
	Size string `kform:"name=size"`
}

type gadget struct {
	meta
	Count int `kform:"name=count"`
}

type tagless struct {
	Size string `kform:"name=size"`
}

func (tagless) GetAPIVersion() string { return "v1" }
func (tagless) GetKind() string       { return "Tagless" }

func TestRegisterLookup(t *testing.T) {
	r := New()
	w := &widget{meta: meta{APIVersion: "v1", Kind: "Widget"}}
	if err := r.Register(w, Namespaced(true)); err != nil {
		t.Fatal(err)
	}
	e, ok := r.Lookup("v1", "Widget")
	if !ok {
		t.Fatal("expected entry")
	}
	if e.Plural != "widgets" {
		t.Errorf("got plural %q", e.Plural)
	}
	if !e.Namespaced {
		t.Error("expected namespaced")
	}
	obj := e.New()
	if obj.GetAPIVersion() != "v1" || obj.GetKind() != "Widget" {
		t.Errorf("got identity %q %q", obj.GetAPIVersion(), obj.GetKind())
	}
	if _, ok := obj.(*widget); !ok {
		t.Errorf("got %T", obj)
	}
}

func TestLookupUnregistered(t *testing.T) {
	r := New()
	if _, ok := r.Lookup("v1", "Nothing"); ok {
		t.Fatal("expected no entry")
	}
}

func TestLookupGroupQualified(t *testing.T) {
	r := New()
	w := &widget{meta: meta{APIVersion: "apps/v1", Kind: "Widget"}}
	if err := r.Register(w); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Lookup("apps/v1", "Widget"); !ok {
		t.Error("expected group-qualified lookup to hit")
	}
	if _, ok := r.Lookup("v1", "Widget"); !ok {
		t.Error("expected version-suffix lookup to hit")
	}
}

func TestRegisterReplaces(t *testing.T) {
	r := New()
	if err := r.Register(&widget{meta: meta{APIVersion: "v1", Kind: "Thing"}}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&gadget{meta: meta{APIVersion: "v1", Kind: "Thing"}}); err != nil {
		t.Fatal(err)
	}
	e, ok := r.Lookup("v1", "Thing")
	if !ok {
		t.Fatal("expected entry")
	}
	if _, isGadget := e.New().(*gadget); !isGadget {
		t.Errorf("got %T, want *gadget", e.New())
	}
}

func TestRegisterRejects(t *testing.T) {
	r := New()
	for _, tc := range []struct {
		name  string
		proto Object
	}{
		{"nil", nil},
		{"no identity tags", &widget{}},
		{"no identity fields", &tagless{}},
	} {
		err := r.Register(tc.proto)
		if !errors.Is(err, ErrBadType) {
			t.Errorf("%s: got %v, want ErrBadType", tc.name, err)
		}
	}
}

func TestVersion(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"v1", "v1"},
		{"apps/v1", "v1"},
		{"networking.k8s.io/v1beta1", "v1beta1"},
	} {
		if got := Version(tc.in); got != tc.want {
			t.Errorf("Version(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
