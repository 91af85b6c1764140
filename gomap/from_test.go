package gomap

import (
	"errors"
	"net"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kindform/go-kindform/ir"
	"github.com/kindform/go-kindform/parse"
)

func TestFromIR(t *testing.T) {
	doc := []byte(`name: api
addr:
  host: 10.0.0.1
  port: 8080
  ip: 10.0.0.1
aliases:
  - a
  - b
labels:
  tier: backend
weight: 1.5
`)
	node, err := parse.Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	var got testServer
	if err := FromIR(node, &got); err != nil {
		t.Fatal(err)
	}
	w := 1.5
	want := testServer{
		Name: "api",
		Addr: testAddr{
			Host: "10.0.0.1",
			Port: 8080,
			IP:   net.ParseIP("10.0.0.1"),
		},
		Aliases: []string{"a", "b"},
		Labels:  map[string]string{"tier": "backend"},
		Weight:  &w,
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(testServer{})); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestFromIRUnknownKeysSkipped(t *testing.T) {
	node := ir.Object(
		"name", ir.FromString("api"),
		"futureField", ir.Object("x", ir.FromInt(1)),
	)
	var got testServer
	if err := FromIR(node, &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "api" {
		t.Errorf("got name %q", got.Name)
	}
}

func TestFromIRNullSetsZero(t *testing.T) {
	w := 2.0
	got := testServer{Name: "api", Weight: &w, Aliases: []string{"x"}}
	node := ir.Object(
		"weight", ir.Null(),
		"aliases", ir.Null(),
	)
	if err := FromIR(node, &got); err != nil {
		t.Fatal(err)
	}
	if got.Weight != nil {
		t.Error("weight should be reset")
	}
	if got.Aliases != nil {
		t.Error("aliases should be reset")
	}
	if got.Name != "api" {
		t.Error("untouched fields stay")
	}
}

func TestFromIRTypeMismatch(t *testing.T) {
	for _, tc := range []struct {
		name string
		node *ir.Node
	}{
		{"string for int", ir.Object("addr", ir.Object("port", ir.FromString("eighty")))},
		{"array for string", ir.Object("name", ir.FromSlice(nil))},
		{"scalar for struct", ir.Object("addr", ir.FromInt(1))},
		{"fractional for int", ir.Object("addr", ir.Object("port", ir.FromFloat(1.5)))},
	} {
		var v testServer
		err := FromIR(tc.node, &v)
		var ue *UnmarshalError
		if !errors.As(err, &ue) {
			t.Errorf("%s: got %v, want UnmarshalError", tc.name, err)
		}
	}
}

func TestFromIRBadDestination(t *testing.T) {
	node := ir.Object("name", ir.FromString("x"))
	if err := FromIR(node, nil); err == nil {
		t.Error("nil destination should fail")
	}
	var v testServer
	if err := FromIR(node, v); err == nil {
		t.Error("non-pointer destination should fail")
	}
}

func TestFromIRAnyTarget(t *testing.T) {
	type holder struct {
		Data any `kform:"name=data"`
	}
	node := ir.Object("data", ir.Object(
		"n", ir.FromInt(3),
		"tags", ir.FromSlice([]*ir.Node{ir.FromString("x")}),
	))
	var h holder
	if err := FromIR(node, &h); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"n": int64(3), "tags": []any{"x"}}
	if diff := cmp.Diff(want, h.Data); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	w := 0.5
	orig := testServer{
		Name:    "api",
		Addr:    testAddr{Host: "h", Port: 1, IP: net.ParseIP("127.0.0.1")},
		Aliases: []string{"x"},
		Labels:  map[string]string{"k": "v"},
		Weight:  &w,
		Debug:   true,
	}
	node, err := ToIR(orig)
	if err != nil {
		t.Fatal(err)
	}
	var back testServer
	if err := FromIR(node, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(orig, back, cmp.AllowUnexported(testServer{})); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
