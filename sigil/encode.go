package sigil

import (
	"math"
	"time"

	"github.com/Neumenon/sigil/wire"
)

// DefaultMaxDepth bounds recursion in both directions. Cycles are bounded
// by reference tracking and never hit it; only pathologically deep
// non-cyclic graphs do.
const DefaultMaxDepth = 1024

// Options configures encoding and decoding.
type Options struct {
	// Syntax names the reserved envelope keys. Zero value means
	// wire.DefaultSyntax(). Must be identical on both ends.
	Syntax wire.Syntax

	// Pretty emits indented multi-line JSON.
	Pretty bool

	// Indent string for pretty mode (default: "  ")
	Indent string

	// MaxDepth overrides DefaultMaxDepth when positive.
	MaxDepth int

	// Lenient lets Decode accept text carrying comments and trailing
	// commas, as found in hand-edited documents.
	Lenient bool
}

// DefaultOptions returns compact output under the standard syntax.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) normalized() Options {
	if o.Syntax.TagKey == "" || o.Syntax.RefKey == "" {
		o.Syntax = wire.DefaultSyntax()
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.Pretty && o.Indent == "" {
		o.Indent = "  "
	}
	return o
}

// Encode serializes a value graph to JSON text under default options.
func Encode(v *Value) ([]byte, error) {
	return EncodeWithOptions(v, DefaultOptions())
}

// EncodeWithOptions serializes a value graph to JSON text.
func EncodeWithOptions(v *Value, opts Options) ([]byte, error) {
	opts = opts.normalized()
	doc, err := EncodeDocumentWithOptions(v, opts)
	if err != nil {
		return nil, err
	}
	return wire.EmitWithOptions(doc, wire.EmitOptions{Pretty: opts.Pretty, Indent: opts.Indent})
}

// EncodeDocument converts a value graph into an in-memory wire document
// under default options.
func EncodeDocument(v *Value) (wire.Node, error) {
	return EncodeDocumentWithOptions(v, DefaultOptions())
}

// EncodeDocumentWithOptions converts a value graph into a wire document.
// The input graph is never mutated. Each distinct object identity is fully
// encoded exactly once; every later visit, cyclic or merely repeated,
// emits a back-reference envelope instead.
func EncodeDocumentWithOptions(v *Value, opts Options) (wire.Node, error) {
	opts = opts.normalized()
	e := &encoder{syntax: opts.Syntax, maxDepth: opts.MaxDepth, refs: newEncodeRefs()}
	return e.encode(v, 0)
}

type encoder struct {
	syntax   wire.Syntax
	maxDepth int
	refs     *encodeRefs
}

func (e *encoder) encode(v *Value, depth int) (wire.Node, error) {
	if depth > e.maxDepth {
		return nil, &DepthExceededError{Limit: e.maxDepth}
	}
	if v == nil {
		v = Null()
	}

	// Re-encounters short-circuit before kind dispatch. Scalars are never
	// assigned ids, so they always miss.
	if id, ok := e.refs.lookup(v); ok {
		return e.refEnvelope(id), nil
	}

	switch v.kind {
	case KindString:
		return v.strVal, nil
	case KindNumber:
		return v.numVal, nil
	case KindBool:
		return v.boolVal, nil
	case KindUndefined, KindNull, KindNaN:
		return e.marker(v.kind), nil
	case KindInfinity:
		sign := 1.0
		if math.IsInf(v.numVal, -1) {
			sign = -1
		}
		return e.envelope(v.kind, "", sign), nil
	case KindSymbol:
		// No reference id: symbol identity is not preserved.
		return e.envelope(KindSymbol, "", v.strVal), nil
	}

	if !v.kind.Identity() {
		return nil, &UnsupportedValueError{Category: v.kind.String()}
	}

	id := e.refs.assign(v)
	payload, err := e.payload(v, depth)
	if err != nil {
		return nil, err
	}
	return e.envelope(v.kind, id, payload), nil
}

func (e *encoder) payload(v *Value, depth int) (wire.Node, error) {
	switch v.kind {
	case KindBigInt:
		return v.bigVal.String(), nil
	case KindDate:
		return v.timeVal.UTC().Format(time.RFC3339Nano), nil
	case KindRegexp:
		return "/" + v.reSource + "/" + v.reFlags, nil
	case KindStringBoxed:
		return v.strVal, nil
	case KindBoolBoxed:
		return v.boolVal, nil
	case KindNumberBoxed:
		if math.IsNaN(v.numVal) || math.IsInf(v.numVal, 0) {
			return nil, &UnsupportedValueError{Category: "non-finite boxed number"}
		}
		return v.numVal, nil
	case KindArray:
		return e.encodeElems(v.elems, depth)
	case KindObject:
		obj := &wire.Object{Fields: make([]wire.Field, 0, len(v.fields))}
		for _, f := range v.fields {
			child, err := e.encode(f.Value, depth+1)
			if err != nil {
				return nil, err
			}
			obj.Fields = append(obj.Fields, wire.Field{Key: f.Key, Value: child})
		}
		return obj, nil
	case KindSet:
		// Elements travel as a wire-only array envelope.
		return e.arrayEnvelope(v.elems, depth)
	case KindMap:
		pairs := make([]wire.Node, 0, len(v.pairs))
		for _, p := range v.pairs {
			pair, err := e.arrayEnvelope([]*Value{p.Key, p.Value}, depth)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, pair)
		}
		return e.envelope(KindArray, e.refs.fresh(), pairs), nil
	}

	if v.kind.TypedArray() {
		return bufferElems(v), nil
	}
	return nil, &UnsupportedValueError{Category: v.kind.String()}
}

func (e *encoder) encodeElems(elems []*Value, depth int) ([]wire.Node, error) {
	out := make([]wire.Node, 0, len(elems))
	for _, elem := range elems {
		child, err := e.encode(elem, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

// arrayEnvelope encodes elems as a full array envelope with a fresh id.
// Used for set and map payloads, which exist only on the wire and can
// never be referenced again.
func (e *encoder) arrayEnvelope(elems []*Value, depth int) (wire.Node, error) {
	out, err := e.encodeElems(elems, depth+1)
	if err != nil {
		return nil, err
	}
	return e.envelope(KindArray, e.refs.fresh(), out), nil
}

func bufferElems(v *Value) []wire.Node {
	var out []wire.Node
	switch buf := v.buf.(type) {
	case []byte:
		out = make([]wire.Node, len(buf))
		for i, n := range buf {
			out[i] = float64(n)
		}
	case []uint16:
		out = make([]wire.Node, len(buf))
		for i, n := range buf {
			out[i] = float64(n)
		}
	case []uint32:
		out = make([]wire.Node, len(buf))
		for i, n := range buf {
			out[i] = float64(n)
		}
	case []int8:
		out = make([]wire.Node, len(buf))
		for i, n := range buf {
			out[i] = float64(n)
		}
	case []int16:
		out = make([]wire.Node, len(buf))
		for i, n := range buf {
			out[i] = float64(n)
		}
	case []int32:
		out = make([]wire.Node, len(buf))
		for i, n := range buf {
			out[i] = float64(n)
		}
	case []float32:
		out = make([]wire.Node, len(buf))
		for i, n := range buf {
			out[i] = float64(n)
		}
	case []float64:
		out = make([]wire.Node, len(buf))
		for i, n := range buf {
			out[i] = n
		}
	default:
		out = []wire.Node{}
	}
	return out
}

// marker builds a valueless envelope: {"$sigil": "<kind>"}.
func (e *encoder) marker(k Kind) *wire.Object {
	return wire.NewObject(wire.Field{Key: e.syntax.TagKey, Value: k.String()})
}

// refEnvelope builds a back-reference: {"$sigil": "ref", "$ref": id}.
func (e *encoder) refEnvelope(id string) *wire.Object {
	return wire.NewObject(
		wire.Field{Key: e.syntax.TagKey, Value: KindRef.String()},
		wire.Field{Key: e.syntax.RefKey, Value: id},
	)
}

// envelope builds a full envelope; ref is omitted when empty (symbols and
// the signed infinity marker carry a payload but no identity).
func (e *encoder) envelope(k Kind, ref string, payload wire.Node) *wire.Object {
	fields := make([]wire.Field, 0, 3)
	fields = append(fields, wire.Field{Key: e.syntax.TagKey, Value: k.String()})
	if ref != "" {
		fields = append(fields, wire.Field{Key: e.syntax.RefKey, Value: ref})
	}
	fields = append(fields, wire.Field{Key: "value", Value: payload})
	return wire.NewObject(fields...)
}
