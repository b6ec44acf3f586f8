package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// EmitOptions configures the JSON emitter.
type EmitOptions struct {
	// Pretty adds newlines and indentation.
	Pretty bool

	// Indent string for pretty mode (default: "  ")
	Indent string
}

// DefaultEmitOptions returns compact single-line output.
func DefaultEmitOptions() EmitOptions {
	return EmitOptions{}
}

// PrettyEmitOptions returns indented multi-line output.
func PrettyEmitOptions() EmitOptions {
	return EmitOptions{Pretty: true, Indent: "  "}
}

// Emit serializes a document to compact JSON text.
func Emit(n Node) ([]byte, error) {
	return EmitWithOptions(n, DefaultEmitOptions())
}

// EmitWithOptions serializes a document with custom formatting.
func EmitWithOptions(n Node, opts EmitOptions) ([]byte, error) {
	if opts.Pretty && opts.Indent == "" {
		opts.Indent = "  "
	}
	e := &emitter{opts: opts}
	if err := e.emit(n, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

type emitter struct {
	buf  bytes.Buffer
	opts EmitOptions
}

func (e *emitter) emit(n Node, depth int) error {
	switch v := n.(type) {
	case nil:
		e.buf.WriteString("null")
	case bool:
		if v {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
	case string:
		return e.emitString(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("wire: %v is not representable in JSON", v)
		}
		e.buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case []Node:
		return e.emitArray(v, depth)
	case *Object:
		return e.emitObject(v, depth)
	default:
		return fmt.Errorf("wire: invalid document node %T", n)
	}
	return nil
}

func (e *emitter) emitString(s string) error {
	// encoding/json handles escaping; a plain string never fails.
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	e.buf.Write(b)
	return nil
}

func (e *emitter) emitArray(elems []Node, depth int) error {
	if len(elems) == 0 {
		e.buf.WriteString("[]")
		return nil
	}
	e.buf.WriteByte('[')
	for i, elem := range elems {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		if err := e.emit(elem, depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte(']')
	return nil
}

func (e *emitter) emitObject(o *Object, depth int) error {
	if o == nil || len(o.Fields) == 0 {
		e.buf.WriteString("{}")
		return nil
	}
	e.buf.WriteByte('{')
	for i, f := range o.Fields {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		if err := e.emitString(f.Key); err != nil {
			return err
		}
		e.buf.WriteByte(':')
		if e.opts.Pretty {
			e.buf.WriteByte(' ')
		}
		if err := e.emit(f.Value, depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte('}')
	return nil
}

func (e *emitter) newline(depth int) {
	if !e.opts.Pretty {
		return
	}
	e.buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.buf.WriteString(e.opts.Indent)
	}
}
