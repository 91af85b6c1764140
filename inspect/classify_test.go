package inspect

import (
	"errors"
	"net"
	"reflect"
	"testing"
)

type inner struct {
	X int `kform:"name=x"`
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want Class
	}{
		{name: "string", typ: reflect.TypeOf(""), want: Class{Kind: PrimitiveKind, Prim: "string"}},
		{name: "bool", typ: reflect.TypeOf(true), want: Class{Kind: PrimitiveKind, Prim: "boolean"}},
		{name: "int32", typ: reflect.TypeOf(int32(0)), want: Class{Kind: PrimitiveKind, Prim: "integer"}},
		{name: "uint", typ: reflect.TypeOf(uint(0)), want: Class{Kind: PrimitiveKind, Prim: "integer"}},
		{name: "float64", typ: reflect.TypeOf(float64(0)), want: Class{Kind: PrimitiveKind, Prim: "number"}},
		{name: "struct", typ: reflect.TypeOf(inner{}), want: Class{Kind: ObjectKind}},
		{
			name: "optional scalar",
			typ:  reflect.TypeOf((*int32)(nil)),
			want: Class{Kind: PrimitiveKind, Prim: "integer"},
		},
		{
			name: "optional struct",
			typ:  reflect.TypeOf((*inner)(nil)),
			want: Class{Kind: ObjectKind},
		},
		{
			name: "slice",
			typ:  reflect.TypeOf([]inner{}),
			want: Class{Kind: ArrayKind, Elem: reflect.TypeOf(inner{})},
		},
		{
			name: "string map",
			typ:  reflect.TypeOf(map[string]string{}),
			want: Class{Kind: MapKind, Elem: reflect.TypeOf("")},
		},
		{
			name: "open object",
			typ:  reflect.TypeOf((*any)(nil)).Elem(),
			want: Class{Kind: MapKind},
		},
		{
			// text marshalers serialize as strings regardless of shape
			name: "text marshaler",
			typ:  reflect.TypeOf(net.IP{}),
			want: Class{Kind: PrimitiveKind, Prim: "string"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.typ)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Classify(%s) = %+v, want %+v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestClassifyRejects(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
	}{
		{name: "double pointer", typ: reflect.TypeOf((**int)(nil))},
		{name: "chan", typ: reflect.TypeOf(make(chan int))},
		{name: "func", typ: reflect.TypeOf(func() {})},
		{name: "int-keyed map", typ: reflect.TypeOf(map[int]string{})},
		{name: "non-empty interface", typ: reflect.TypeOf((*error)(nil)).Elem()},
		{name: "complex", typ: reflect.TypeOf(complex(1, 2))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Classify(tt.typ); !errors.Is(err, ErrBadType) {
				t.Errorf("Classify(%s): expected ErrBadType, got %v", tt.typ, err)
			}
		})
	}
}
