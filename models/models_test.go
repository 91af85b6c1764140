package models

import (
	"testing"

	"github.com/kindform/go-kindform/registry"
	"github.com/kindform/go-kindform/schema"
)

func TestBuiltinsRegistered(t *testing.T) {
	for _, tc := range []struct {
		apiVersion, kind, plural string
		namespaced               bool
	}{
		{"v1", "ConfigMap", "configmaps", true},
		{"v1", "Namespace", "namespaces", false},
		{"v1", "Pod", "pods", true},
		{"v1", "Status", "statuses", false},
		{"v1", "DeleteOptions", "deleteoptions", false},
	} {
		e, ok := registry.Default.Lookup(tc.apiVersion, tc.kind)
		if !ok {
			t.Errorf("(%s, %s): not registered", tc.apiVersion, tc.kind)
			continue
		}
		if e.Plural != tc.plural {
			t.Errorf("(%s, %s): got plural %q, want %q", tc.apiVersion, tc.kind, e.Plural, tc.plural)
		}
		if e.Namespaced != tc.namespaced {
			t.Errorf("(%s, %s): namespaced = %v", tc.apiVersion, tc.kind, e.Namespaced)
		}
		obj := e.New()
		if obj.GetAPIVersion() != tc.apiVersion || obj.GetKind() != tc.kind {
			t.Errorf("(%s, %s): New() identity (%s, %s)",
				tc.apiVersion, tc.kind, obj.GetAPIVersion(), obj.GetKind())
		}
	}
}

func TestBuiltinsSynthesize(t *testing.T) {
	for _, e := range registry.Default.Entries() {
		s, err := schema.Synthesize(e.Type)
		if err != nil {
			t.Errorf("%s: %v", e.Kind, err)
			continue
		}
		if s.Type != "object" {
			t.Errorf("%s: got schema type %q", e.Kind, s.Type)
		}
	}
}

func TestPodSchema(t *testing.T) {
	s, err := schema.Synthesize(Pod{})
	if err != nil {
		t.Fatal(err)
	}
	spec, ok := s.Properties["spec"]
	if !ok {
		t.Fatal("no spec property")
	}
	if got := spec.Required; len(got) != 1 || got[0] != "containers" {
		t.Errorf("spec required = %v", got)
	}
	port := spec.Properties["containers"].Items.Properties["ports"].Items
	if port.Properties["containerPort"].Minimum == nil ||
		*port.Properties["containerPort"].Minimum != 1 {
		t.Error("containerPort minimum not carried")
	}
	proto := port.Properties["protocol"]
	if len(proto.Enum) != 3 || proto.Default != "TCP" {
		t.Errorf("protocol schema = %+v", proto)
	}
}

func TestImageRef(t *testing.T) {
	c := Container{Name: "c", Image: "quay.io/acme/web:v2"}
	ref, err := c.ImageRef()
	if err != nil {
		t.Fatal(err)
	}
	if ref.Registry != "quay.io" || ref.Name != "acme/web" || ref.Tag != "v2" {
		t.Errorf("got %+v", ref)
	}

	// bare names normalize to the default registry and tag
	ref, err = Container{Name: "c", Image: "nginx"}.ImageRef()
	if err != nil {
		t.Fatal(err)
	}
	if ref.Registry != "docker.io" || ref.Tag != "latest" {
		t.Errorf("got %+v", ref)
	}

	if _, err := (Container{Name: "c", Image: ":::"}).ImageRef(); err == nil {
		t.Error("expected error for malformed image")
	}
}
