package schema

import (
	"errors"
	"testing"

	"github.com/kindform/go-kindform/inspect"
	"github.com/kindform/go-kindform/ir"
)

type widgetMeta struct {
	APIVersion string `kform:"name=apiVersion,optional"`
	Kind       string `kform:"name=kind,optional"`
}

type widgetPart struct {
	Name  string `kform:"name=name,desc='part name'"`
	Count int32  `kform:"name=count,optional,min=0"`
}

type widget struct {
	widgetMeta
	Metadata map[string]string `kform:"name=metadata"`
	Size     string            `kform:"name=size,enum=small|large,desc='widget size'"`
	Weight   *float64          `kform:"name=weight"`
	Parts    []widgetPart      `kform:"name=parts"`
	Extra    map[string]string `kform:"name=extra"`
	Timeout  int               `kform:"name=timeout,default=30"`
	Secret   string            `kform:"name=secret,omit"`
}

func TestSynthesize(t *testing.T) {
	s, err := Synthesize(widget{})
	if err != nil {
		t.Fatal(err)
	}
	if s.Type != "object" {
		t.Fatalf("type = %q", s.Type)
	}
	// identity fields never appear
	for _, name := range []string{"apiVersion", "kind", "metadata"} {
		if _, ok := s.Properties[name]; ok {
			t.Errorf("property %q should be ignored", name)
		}
	}
	if _, ok := s.Properties["secret"]; ok {
		t.Error("omitted field leaked into schema")
	}

	size := s.Properties["size"]
	if size == nil || size.Type != "string" {
		t.Fatalf("size = %+v", size)
	}
	if size.Description != "widget size" {
		t.Errorf("size description = %q", size.Description)
	}
	if len(size.Enum) != 2 || size.Enum[0] != "small" || size.Enum[1] != "large" {
		t.Errorf("size enum = %v", size.Enum)
	}

	weight := s.Properties["weight"]
	if weight == nil || weight.Type != "number" {
		t.Errorf("weight = %+v", weight)
	}

	parts := s.Properties["parts"]
	if parts == nil || parts.Type != "array" || parts.Items == nil {
		t.Fatalf("parts = %+v", parts)
	}
	if parts.Items.Type != "object" {
		t.Errorf("parts items type = %q", parts.Items.Type)
	}
	name := parts.Items.Properties["name"]
	if name == nil || name.Type != "string" || name.Description != "part name" {
		t.Errorf("parts.items.name = %+v", name)
	}
	count := parts.Items.Properties["count"]
	if count == nil || count.Minimum == nil || *count.Minimum != 0 {
		t.Errorf("parts.items.count = %+v", count)
	}

	extra := s.Properties["extra"]
	if extra == nil || extra.Type != "object" || extra.AdditionalProperties == nil ||
		extra.AdditionalProperties.Type != "string" {
		t.Errorf("extra = %+v", extra)
	}

	timeout := s.Properties["timeout"]
	if timeout == nil || timeout.Default != int64(30) {
		t.Errorf("timeout = %+v", timeout)
	}
}

func TestSynthesizeRequired(t *testing.T) {
	s, err := Synthesize(widget{})
	if err != nil {
		t.Fatal(err)
	}
	// size has no default: required. weight is optional-wrapped, parts and
	// extra have usable zeros, timeout declares a default.
	want := []string{"size"}
	if len(s.Required) != len(want) {
		t.Fatalf("required = %v, want %v", s.Required, want)
	}
	for i := range want {
		if s.Required[i] != want[i] {
			t.Errorf("required[%d] = %q, want %q", i, s.Required[i], want[i])
		}
	}

	// nested object required lists are computed from the nested shape
	parts := s.Properties["parts"].Items
	if len(parts.Required) != 1 || parts.Required[0] != "name" {
		t.Errorf("nested required = %v", parts.Required)
	}
}

func TestSynthesizeFailsFast(t *testing.T) {
	type bad struct {
		A string   `kform:"name=a"`
		C chan int `kform:"name=c"`
	}
	if _, err := Synthesize(bad{}); !errors.Is(err, inspect.ErrBadType) {
		t.Errorf("expected ErrBadType, got %v", err)
	}
	if _, err := Synthesize(42); !errors.Is(err, inspect.ErrBadType) {
		t.Errorf("expected ErrBadType for non-struct, got %v", err)
	}
}

func TestSchemaToIR(t *testing.T) {
	s, err := Synthesize(widget{})
	if err != nil {
		t.Fatal(err)
	}
	node := s.ToIR()
	if got := ir.GetString(node, "type"); got != "object" {
		t.Errorf("type = %q", got)
	}
	props := ir.Get(node, "properties")
	if props == nil || props.Type != ir.ObjectType {
		t.Fatalf("properties = %v", props)
	}
	size := ir.Get(props, "size")
	if size == nil || ir.GetString(size, "type") != "string" {
		t.Errorf("size = %v", size)
	}
	enum := ir.Get(size, "enum")
	if enum == nil || len(enum.Values) != 2 {
		t.Errorf("enum = %v", enum)
	}
}
