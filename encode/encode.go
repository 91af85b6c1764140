// Package encode renders kindform IR as YAML or JSON text.
//
// Field order is preserved exactly as it appears in the node tree; nothing
// is ever sorted on output.
package encode

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/kindform/go-kindform/format"
	"github.com/kindform/go-kindform/ir"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	indent   int
	format   format.Format
	wire     bool
	docStart bool

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w. The zero configuration is block-style YAML with
// two-space indentation; see the options for JSON, compact output and the
// leading document marker.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if es.format.IsJSON() {
		if es.docStart {
			return fmt.Errorf("%w: json has no document marker", ErrEncoding)
		}
		if err := es.jsonNode(w, node, 0); err != nil {
			return err
		}
		return writeString(w, "\n")
	}
	if es.docStart {
		if err := writeString(w, "---\n"); err != nil {
			return err
		}
	}
	return es.yamlNode(w, node, 0, "")
}

// MustString renders a node to a string, panicking on error. Errors can only
// arise from non-finite numbers in JSON, so this is safe for YAML use in
// tests and diagnostics.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	var sb strings.Builder
	if err := Encode(node, &sb, opts...); err != nil {
		panic(err)
	}
	return sb.String()
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

// line writes one indented line of YAML output.
func (es *EncState) line(w io.Writer, depth int, text string) error {
	ind := strings.Repeat(strings.Repeat(" ", es.indent), depth)
	return writeString(w, ind+text+"\n")
}

// yamlNode renders node at the given depth. prefix is what introduces the
// value on its first line: "" at the root, "key: " under an object field, or
// "- " under an array element. Composite prefixes compose ("- key: ").
func (es *EncState) yamlNode(w io.Writer, y *ir.Node, depth int, prefix string) error {
	if y == nil {
		y = ir.Null()
	}
	switch y.Type {
	case ir.NullType, ir.BoolType, ir.NumberType, ir.StringType:
		s, err := es.yamlScalar(y)
		if err != nil {
			return err
		}
		return es.line(w, depth, prefix+s)
	case ir.ArrayType:
		if len(y.Values) == 0 {
			return es.line(w, depth, prefix+es.color(y.Type, ValueColor, "[]"))
		}
		if prefix != "" {
			if err := es.line(w, depth, strings.TrimRight(prefix, " ")); err != nil {
				return err
			}
			depth++
		}
		for _, v := range y.Values {
			if err := es.yamlNode(w, v, depth, "- "); err != nil {
				return err
			}
		}
		return nil
	case ir.ObjectType:
		if len(y.Fields) == 0 {
			return es.line(w, depth, prefix+es.color(y.Type, ValueColor, "{}"))
		}
		dash := prefix == "- "
		fieldDepth := depth
		if prefix != "" && !dash {
			if err := es.line(w, depth, strings.TrimRight(prefix, " ")); err != nil {
				return err
			}
			fieldDepth = depth + 1
		}
		for i, f := range y.Fields {
			kp := es.color(ir.ObjectType, FieldColor, es.yamlKey(f.String)) + ": "
			d := fieldDepth
			if dash {
				if i == 0 {
					kp = "- " + kp
				} else {
					d = depth + 1
				}
			}
			if err := es.yamlNode(w, y.Values[i], d, kp); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: cannot encode node of type %s", ErrEncoding, y.Type)
	}
}

func (es *EncState) yamlScalar(y *ir.Node) (string, error) {
	switch y.Type {
	case ir.NullType:
		return es.color(y.Type, ValueColor, "null"), nil
	case ir.BoolType:
		return es.color(y.Type, ValueColor, strconv.FormatBool(y.Bool)), nil
	case ir.NumberType:
		return es.color(y.Type, ValueColor, yamlNumber(y)), nil
	case ir.StringType:
		s := y.String
		if needsQuote(s) {
			s = strconv.Quote(s)
		}
		return es.color(y.Type, ValueColor, s), nil
	}
	return "", fmt.Errorf("%w: not a scalar: %s", ErrEncoding, y.Type)
}

func yamlNumber(y *ir.Node) string {
	if y.Int64 != nil {
		return strconv.FormatInt(*y.Int64, 10)
	}
	if y.Float64 == nil {
		return "0"
	}
	f := *y.Float64
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		// keep the float-ness visible so the value reparses as a float
		s += ".0"
	}
	return s
}

// yamlKey quotes object keys that would not reparse as the same plain string.
func (es *EncState) yamlKey(k string) string {
	if needsQuote(k) {
		return strconv.Quote(k)
	}
	return k
}

// needsQuote reports whether a string must be quoted in YAML output to stay
// a string. The rule is conservative: anything outside a plain safe shape is
// quoted.
func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	switch strings.ToLower(s) {
	case "null", "~", "true", "false", "yes", "no", "on", "off":
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	if s[0] == ' ' || s[len(s)-1] == ' ' {
		return true
	}
	switch s[0] {
	case '*', '&', '%', '@', ':', '#', ',', '{', '}', '[', ']', '(', ')',
		'-', '?', '!', '|', '>', '\'', '"', '`':
		return true
	}
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t':
			return true
		case r == ':' || r == '#':
			return true
		case r < 0x20:
			return true
		}
	}
	return false
}

// jsonNode renders node as JSON. The default layout is indented; the wire
// option produces a single-line dump.
func (es *EncState) jsonNode(w io.Writer, y *ir.Node, depth int) error {
	if y == nil {
		y = ir.Null()
	}
	switch y.Type {
	case ir.NullType:
		return writeString(w, es.color(y.Type, ValueColor, "null"))
	case ir.BoolType:
		return writeString(w, es.color(y.Type, ValueColor, strconv.FormatBool(y.Bool)))
	case ir.NumberType:
		s, err := jsonNumber(y)
		if err != nil {
			return err
		}
		return writeString(w, es.color(y.Type, ValueColor, s))
	case ir.StringType:
		return writeString(w, es.color(y.Type, ValueColor, strconv.Quote(y.String)))
	case ir.ArrayType:
		if len(y.Values) == 0 {
			return writeString(w, "[]")
		}
		if err := writeString(w, "["); err != nil {
			return err
		}
		for i, v := range y.Values {
			if i != 0 {
				if err := writeString(w, ","); err != nil {
					return err
				}
			}
			if err := es.jsonNL(w, depth+1); err != nil {
				return err
			}
			if err := es.jsonNode(w, v, depth+1); err != nil {
				return err
			}
		}
		if err := es.jsonNL(w, depth); err != nil {
			return err
		}
		return writeString(w, "]")
	case ir.ObjectType:
		if len(y.Fields) == 0 {
			return writeString(w, "{}")
		}
		if err := writeString(w, "{"); err != nil {
			return err
		}
		for i := range y.Fields {
			if i != 0 {
				if err := writeString(w, ","); err != nil {
					return err
				}
			}
			if err := es.jsonNL(w, depth+1); err != nil {
				return err
			}
			key := es.color(ir.ObjectType, FieldColor, strconv.Quote(y.Fields[i].String))
			sep := ": "
			if es.wire {
				sep = ":"
			}
			if err := writeString(w, key+sep); err != nil {
				return err
			}
			if err := es.jsonNode(w, y.Values[i], depth+1); err != nil {
				return err
			}
		}
		if err := es.jsonNL(w, depth); err != nil {
			return err
		}
		return writeString(w, "}")
	default:
		return fmt.Errorf("%w: cannot encode node of type %s", ErrEncoding, y.Type)
	}
}

func (es *EncState) jsonNL(w io.Writer, depth int) error {
	if es.wire {
		return nil
	}
	ind := strings.Repeat(strings.Repeat(" ", es.indent), depth)
	return writeString(w, "\n"+ind)
}

func jsonNumber(y *ir.Node) (string, error) {
	if y.Int64 != nil {
		return strconv.FormatInt(*y.Int64, 10), nil
	}
	if y.Float64 == nil {
		return "0", nil
	}
	f := *y.Float64
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("%w: %v is not representable in json", ErrEncoding, f)
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}

func (es *EncState) color(t ir.Type, attr ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, attr, s)
}
