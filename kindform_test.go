package kindform

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kindform/go-kindform/encode"
	"github.com/kindform/go-kindform/ir"
	"github.com/kindform/go-kindform/models"
	"github.com/kindform/go-kindform/registry"
)

const cmDoc = `apiVersion: v1
kind: ConfigMap
metadata:
  name: app-config
data:
  mode: fast
`

func TestMarshal(t *testing.T) {
	cm := &models.ConfigMap{
		TypeMeta: models.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		Metadata: models.ObjectMeta{Name: "app-config"},
		Data:     map[string]string{"mode": "fast"},
	}
	out, err := Marshal(cm)
	if err != nil {
		t.Fatal(err)
	}
	want := "---\n" + cmDoc
	if string(out) != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestMarshalJSON(t *testing.T) {
	cm := &models.ConfigMap{
		TypeMeta: models.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		Data:     map[string]string{"mode": "fast"},
	}
	out, err := Marshal(cm, encode.EncodeJSON(), encode.EncodeWire(true))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"apiVersion":"v1","kind":"ConfigMap","data":{"mode":"fast"}}` + "\n"
	if string(out) != want {
		t.Errorf("got %s", out)
	}
}

func TestUnmarshal(t *testing.T) {
	obj, err := Unmarshal([]byte(cmDoc), nil)
	if err != nil {
		t.Fatal(err)
	}
	cm, ok := obj.(*models.ConfigMap)
	if !ok {
		t.Fatalf("got %T", obj)
	}
	if cm.Metadata.Name != "app-config" || cm.Data["mode"] != "fast" {
		t.Errorf("got %+v", cm)
	}
}

func TestUnmarshalAll(t *testing.T) {
	docs := cmDoc + "---\napiVersion: v1\nkind: Namespace\nmetadata:\n  name: prod\n"
	objs, err := UnmarshalAll([]byte(docs), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(objs) != 2 {
		t.Fatalf("got %d objects", len(objs))
	}
	if _, ok := objs[0].(*models.ConfigMap); !ok {
		t.Errorf("first: %T", objs[0])
	}
	ns, ok := objs[1].(*models.Namespace)
	if !ok {
		t.Fatalf("second: %T", objs[1])
	}
	if ns.Metadata.Name != "prod" {
		t.Errorf("got %+v", ns)
	}
}

func TestUnmarshalUnknownKind(t *testing.T) {
	_, err := Unmarshal([]byte("apiVersion: v1\nkind: Mystery\n"), nil)
	if !errors.Is(err, registry.ErrNotRegistered) {
		t.Fatalf("got %v, want ErrNotRegistered", err)
	}
}

func TestUnmarshalInto(t *testing.T) {
	var cm models.ConfigMap
	if err := UnmarshalInto([]byte(cmDoc), &cm); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"mode": "fast"}
	if diff := cmp.Diff(want, cm.Data); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	nodes, err := Load(FromString(cmDoc))
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 {
		t.Fatalf("got %d documents", len(nodes))
	}
	if ir.GetString(nodes[0], "kind") != "ConfigMap" {
		t.Error("wrong document")
	}
}

func TestLoadReader(t *testing.T) {
	nodes, err := Load(FromReader(strings.NewReader(cmDoc)))
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 {
		t.Fatalf("got %d documents", len(nodes))
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cm.yaml")
	if err := os.WriteFile(path, []byte(cmDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	nodes, err := Load(FromFile(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 {
		t.Fatalf("got %d documents", len(nodes))
	}
}

func TestLoadNoSource(t *testing.T) {
	if _, err := Load(); !errors.Is(err, ErrNoSource) {
		t.Fatal("expected ErrNoSource")
	}
}

func TestLoadTwoSources(t *testing.T) {
	if _, err := Load(FromString("a: 1"), FromString("b: 2")); err == nil {
		t.Fatal("expected error for two sources")
	}
}

func TestMergePatch(t *testing.T) {
	doc, err := Load(FromString("a: 1\nb:\n  c: 2\n  d: 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	patch, err := Load(FromString("b:\n  c: 9\n  d: null\ne: new\n"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := MergePatch(doc[0], patch[0])
	if err != nil {
		t.Fatal(err)
	}
	want, err := Load(FromString("a: 1\nb:\n  c: 9\ne: new\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(got, want[0]) {
		t.Errorf("got:\n%s", encode.MustString(got))
	}
}

func TestCreateMergePatchRoundTrip(t *testing.T) {
	docs, err := Load(FromString("a: 1\nb:\n  c: 2\n---\na: 1\nb:\n  c: 9\ne: new\n"))
	if err != nil {
		t.Fatal(err)
	}
	orig, mod := docs[0], docs[1]
	patch, err := CreateMergePatch(orig, mod)
	if err != nil {
		t.Fatal(err)
	}
	back, err := MergePatch(orig, patch)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(back, mod) {
		t.Errorf("got:\n%s\nwant:\n%s", encode.MustString(back), encode.MustString(mod))
	}
}
