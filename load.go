package kindform

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kindform/go-kindform/format"
	"github.com/kindform/go-kindform/ir"
	"github.com/kindform/go-kindform/parse"
)

// ErrNoSource reports a Load call with no document source.
var ErrNoSource = errors.New("no document source given")

type loadConfig struct {
	sources []func() ([]byte, string, error)
	opts    []parse.ParseOption
}

type LoadOption func(*loadConfig)

// FromFile reads documents from a file; a .json suffix selects JSON
// parsing.
func FromFile(path string) LoadOption {
	return func(c *loadConfig) {
		c.sources = append(c.sources, func() ([]byte, string, error) {
			d, err := os.ReadFile(path)
			return d, path, err
		})
		if strings.HasSuffix(path, format.JSONFormat.Suffix()) {
			c.opts = append(c.opts, parse.ParseJSON())
		}
	}
}

// FromReader reads documents from r.
func FromReader(r io.Reader) LoadOption {
	return func(c *loadConfig) {
		c.sources = append(c.sources, func() ([]byte, string, error) {
			d, err := io.ReadAll(r)
			return d, "<reader>", err
		})
	}
}

// FromString reads documents from a string.
func FromString(s string) LoadOption {
	return func(c *loadConfig) {
		c.sources = append(c.sources, func() ([]byte, string, error) {
			return []byte(s), "<string>", nil
		})
	}
}

// LoadFormat forces the input format instead of the default, YAML.
func LoadFormat(f format.Format) LoadOption {
	return func(c *loadConfig) {
		c.opts = append(c.opts, parse.ParseFormat(f))
	}
}

// Load reads and parses documents from exactly one source. No source is
// ErrNoSource; more than one is an error as well.
func Load(opts ...LoadOption) ([]*ir.Node, error) {
	var c loadConfig
	for _, opt := range opts {
		opt(&c)
	}
	switch len(c.sources) {
	case 0:
		return nil, ErrNoSource
	case 1:
	default:
		return nil, fmt.Errorf("%d document sources given, want one", len(c.sources))
	}
	d, name, err := c.sources[0]()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	nodes, err := parse.ParseAll(d, c.opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return nodes, nil
}
