// Package inspect derives field descriptors and type classifications from
// struct types via reflection.
//
// It is the foundation both schema synthesis and document marshalling stand
// on: Fields lists a struct's fields in declaration order together with the
// metadata attached through the kform struct tag, and Classify decides how a
// single declared field type maps onto document shapes.
//
// The kform tag is a comma-separated list of flags and key=value pairs:
//
//	type Container struct {
//		Name  string `kform:"name=name,desc='container name'"`
//		Image string `kform:"name=image"`
//		Port  int32  `kform:"name=port,optional,min=1"`
//		Pull  string `kform:"name=imagePullPolicy,optional,enum=Always|Never|IfNotPresent"`
//	}
//
// Recognized keys are name, desc, enum, min and default; recognized flags
// are required, optional and omit. Unknown keys are ignored, not errors, so
// tags may carry annotations for other tools. Values containing commas or
// spaces can be single- or double-quoted.
//
// Inspection results are cached per type for the life of the process; types
// are immutable after definition so the cache is never invalidated.
package inspect
