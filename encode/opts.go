package encode

import "github.com/kindform/go-kindform/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

func EncodeYAML() EncodeOption {
	return EncodeFormat(format.YAMLFormat)
}

func EncodeJSON() EncodeOption {
	return EncodeFormat(format.JSONFormat)
}

// EncodeWire produces compact single-line JSON output. It has no effect on
// YAML output.
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

// EncodeDocStart emits the leading "---" document marker (YAML only).
func EncodeDocStart(v bool) EncodeOption {
	return func(es *EncState) { es.docStart = v }
}

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}
