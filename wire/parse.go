package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"
)

// maxParseDepth bounds parser recursion independently of the decoder's own
// depth guard, so a hostile deeply-nested text fails with an error instead
// of exhausting the stack.
const maxParseDepth = 4096

// Parse reads strict JSON text into a document tree, preserving object
// field order.
func Parse(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	n, err := parseNode(dec, 0)
	if err != nil {
		return nil, err
	}
	// Anything after the first value is garbage.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("wire: trailing data after document")
	}
	return n, nil
}

// ParseLenient reads JSON that may carry comments and trailing commas,
// as found in hand-edited fixtures, by rewriting it to strict JSON first.
func ParseLenient(data []byte) (Node, error) {
	return Parse(jsonc.ToJSON(data))
}

func parseNode(dec *json.Decoder, depth int) (Node, error) {
	if depth > maxParseDepth {
		return nil, fmt.Errorf("wire: document nested deeper than %d", maxParseDepth)
	}
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("wire: empty document")
		}
		return nil, fmt.Errorf("wire: %w", err)
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec, depth)
		case '[':
			return parseArray(dec, depth)
		}
		return nil, fmt.Errorf("wire: unexpected %q", t.String())
	case string:
		return t, nil
	case float64:
		return t, nil
	case bool:
		return t, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("wire: unexpected token %v", tok)
}

func parseObject(dec *json.Decoder, depth int) (*Object, error) {
	obj := &Object{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("wire: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("wire: object key is %T, want string", tok)
		}
		val, err := parseNode(dec, depth+1)
		if err != nil {
			return nil, err
		}
		obj.Fields = append(obj.Fields, Field{Key: key, Value: val})
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("wire: %w", err)
	}
	return obj, nil
}

func parseArray(dec *json.Decoder, depth int) ([]Node, error) {
	elems := []Node{}
	for dec.More() {
		val, err := parseNode(dec, depth+1)
		if err != nil {
			return nil, err
		}
		elems = append(elems, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("wire: %w", err)
	}
	return elems, nil
}
