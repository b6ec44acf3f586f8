package codec

import (
	"fmt"

	"github.com/Neumenon/sigil/wire"
)

// The binary forms flatten a document into a shape generic CBOR and
// msgpack encoders serialize without reordering: an array becomes a list
// tagged "a", an object a list tagged "o" with keys and values
// interleaved in field order, and scalars pass through. A back-reference
// envelope is only resolvable when its definition precedes it in
// document order, so field order must survive these forms exactly; a
// sorted map representation would move a definition behind its
// back-reference whenever the defining key sorts later.

const (
	packArrayTag  = "a"
	packObjectTag = "o"
)

func packNode(n wire.Node) any {
	switch v := n.(type) {
	case *wire.Object:
		out := make([]any, 0, 1+2*len(v.Fields))
		out = append(out, packObjectTag)
		for _, f := range v.Fields {
			out = append(out, f.Key, packNode(f.Value))
		}
		return out
	case []wire.Node:
		out := make([]any, 0, 1+len(v))
		out = append(out, packArrayTag)
		for _, elem := range v {
			out = append(out, packNode(elem))
		}
		return out
	default:
		return v
	}
}

func unpackNode(v any) (wire.Node, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case bool, string, float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int8:
		return float64(val), nil
	case int16:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case uint:
		return float64(val), nil
	case uint8:
		return float64(val), nil
	case uint16:
		return float64(val), nil
	case uint32:
		return float64(val), nil
	case uint64:
		return float64(val), nil
	case []any:
		return unpackList(val)
	default:
		return nil, fmt.Errorf("codec: unsupported value %T in binary document", v)
	}
}

func unpackList(val []any) (wire.Node, error) {
	if len(val) == 0 {
		return nil, fmt.Errorf("codec: untagged empty list in binary document")
	}
	tag, ok := val[0].(string)
	if !ok {
		return nil, fmt.Errorf("codec: list tag is %T, want string", val[0])
	}
	items := val[1:]

	switch tag {
	case packArrayTag:
		elems := make([]wire.Node, 0, len(items))
		for i, item := range items {
			n, err := unpackNode(item)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			elems = append(elems, n)
		}
		return elems, nil
	case packObjectTag:
		if len(items)%2 != 0 {
			return nil, fmt.Errorf("codec: object list has unpaired entries")
		}
		obj := &wire.Object{Fields: make([]wire.Field, 0, len(items)/2)}
		for i := 0; i < len(items); i += 2 {
			key, ok := items[i].(string)
			if !ok {
				return nil, fmt.Errorf("codec: object key is %T, want string", items[i])
			}
			n, err := unpackNode(items[i+1])
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", key, err)
			}
			obj.Fields = append(obj.Fields, wire.Field{Key: key, Value: n})
		}
		return obj, nil
	}
	return nil, fmt.Errorf("codec: unknown list tag %q", tag)
}
