package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToAny(t *testing.T) {
	node := Object(
		"name", FromString("pod1"),
		"replicas", FromInt(3),
		"ratio", FromFloat(0.5),
		"active", FromBool(true),
		"items", FromSlice([]*Node{FromString("a"), Null()}),
	)
	got := ToAny(node)
	want := map[string]any{
		"name":     "pod1",
		"replicas": int64(3),
		"ratio":    0.5,
		"active":   true,
		"items":    []any{"a", nil},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToAny mismatch (-want +got):\n%s", diff)
	}
}

func TestFromAnyRoundTrip(t *testing.T) {
	in := map[string]any{
		"a": int64(1),
		"b": []any{"x", true, nil},
		"c": map[string]any{"d": 2.5},
	}
	node, err := FromAny(in)
	if err != nil {
		t.Fatal(err)
	}
	out := ToAny(node)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-in +out):\n%s", diff)
	}
}

func TestFromAnyUnsupported(t *testing.T) {
	if _, err := FromAny(struct{}{}); err == nil {
		t.Error("expected error for unsupported type")
	}
}
