package models

import "github.com/kindform/go-kindform/registry"

func init() {
	for _, m := range []struct {
		proto registry.Object
		opts  []registry.RegisterOption
	}{
		{&ConfigMap{TypeMeta: TypeMeta{APIVersion: "v1", Kind: "ConfigMap"}},
			[]registry.RegisterOption{registry.Namespaced(true)}},
		{&Namespace{TypeMeta: TypeMeta{APIVersion: "v1", Kind: "Namespace"}}, nil},
		{&Pod{TypeMeta: TypeMeta{APIVersion: "v1", Kind: "Pod"}},
			[]registry.RegisterOption{registry.Namespaced(true)}},
		{&Status{TypeMeta: TypeMeta{APIVersion: StatusAPIVersion, Kind: StatusKind}},
			[]registry.RegisterOption{registry.WithPlural("statuses")}},
		{&DeleteOptions{TypeMeta: TypeMeta{APIVersion: "v1", Kind: "DeleteOptions"}},
			[]registry.RegisterOption{registry.WithPlural("deleteoptions")}},
	} {
		if err := registry.Default.Register(m.proto, m.opts...); err != nil {
			panic(err)
		}
	}
}
