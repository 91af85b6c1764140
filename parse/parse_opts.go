package parse

import (
	"github.com/kindform/go-kindform/format"
)

type parseOpts struct {
	format format.Format
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}

// ParseJSON declares the input to be JSON. JSON input may hold only a single
// document; multi-document streams are a YAML-only construct.
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}

func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}
