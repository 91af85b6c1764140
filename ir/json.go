package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// MarshalJSON encodes the node as document JSON (not as the Node struct):
// objects become JSON objects with fields in order, arrays become JSON
// arrays, scalars and null map directly.
func (y *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, y); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, y *Node) error {
	if y == nil {
		buf.WriteString("null")
		return nil
	}
	switch y.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(y.Bool))
	case NumberType:
		if y.Int64 != nil {
			buf.WriteString(strconv.FormatInt(*y.Int64, 10))
			return nil
		}
		if y.Float64 == nil {
			buf.WriteString("0")
			return nil
		}
		d, err := json.Marshal(*y.Float64)
		if err != nil {
			return err
		}
		buf.Write(d)
	case StringType:
		d, err := json.Marshal(y.String)
		if err != nil {
			return err
		}
		buf.Write(d)
	case ArrayType:
		buf.WriteByte('[')
		for i, v := range y.Values {
			if i != 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i := range y.Fields {
			if i != 0 {
				buf.WriteByte(',')
			}
			d, err := json.Marshal(y.Fields[i].String)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if err := writeJSON(buf, y.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode node of type %s", y.Type)
	}
	return nil
}
