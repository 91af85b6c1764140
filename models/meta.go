// Package models provides the built-in document types and registers them
// with the default registry at load time.
//
// Every type embeds TypeMeta for its identity tags and most carry an
// ObjectMeta. The field layout mirrors the serialized document: field
// names come from kform tags and declaration order is the document order.
package models

import "time"

// TypeMeta carries a document's identity tags. Embed it first in every
// document type; the tags are optional on input because callers regularly
// unmarshal into a concrete type they already know.
type TypeMeta struct {
	APIVersion string `kform:"name=apiVersion,optional"`
	Kind       string `kform:"name=kind,optional"`
}

func (t TypeMeta) GetAPIVersion() string { return t.APIVersion }
func (t TypeMeta) GetKind() string       { return t.Kind }

func (t *TypeMeta) SetGroupVersionKind(apiVersion, kind string) {
	t.APIVersion = apiVersion
	t.Kind = kind
}

// ObjectMeta is the common metadata block.
type ObjectMeta struct {
	Name              string            `kform:"name=name,optional"`
	Namespace         string            `kform:"name=namespace,optional"`
	Labels            map[string]string `kform:"name=labels,optional"`
	Annotations       map[string]string `kform:"name=annotations,optional"`
	UID               string            `kform:"name=uid,optional"`
	ResourceVersion   string            `kform:"name=resourceVersion,optional"`
	CreationTimestamp *time.Time        `kform:"name=creationTimestamp"`
}

func (m ObjectMeta) GetName() string      { return m.Name }
func (m ObjectMeta) GetNamespace() string { return m.Namespace }
