package sigil

import (
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/Neumenon/sigil/wire"
)

// Decode reconstructs a value graph from JSON text under default options.
func Decode(data []byte) (*Value, error) {
	return DecodeWithOptions(data, DefaultOptions())
}

// DecodeWithOptions reconstructs a value graph from JSON text.
func DecodeWithOptions(data []byte, opts Options) (*Value, error) {
	opts = opts.normalized()
	parse := wire.Parse
	if opts.Lenient {
		parse = wire.ParseLenient
	}
	doc, err := parse(data)
	if err != nil {
		return nil, &MalformedDocumentError{Reason: err.Error()}
	}
	return DecodeDocumentWithOptions(doc, opts)
}

// DecodeDocument reconstructs a value graph from an in-memory wire
// document under default options.
func DecodeDocument(doc wire.Node) (*Value, error) {
	return DecodeDocumentWithOptions(doc, DefaultOptions())
}

// DecodeDocumentWithOptions reconstructs a value graph from a wire
// document. Every object-identity envelope is registered in the reference
// table before its children are decoded, which is what lets a child
// back-reference resolve to a still-incomplete ancestor and is the only
// mechanism by which cycles are rebuilt without unbounded recursion.
func DecodeDocumentWithOptions(doc wire.Node, opts Options) (*Value, error) {
	opts = opts.normalized()
	d := &decoder{syntax: opts.Syntax, maxDepth: opts.MaxDepth, refs: newDecodeRefs()}
	return d.decode(doc, 0)
}

type decoder struct {
	syntax   wire.Syntax
	maxDepth int
	refs     *decodeRefs
}

func (d *decoder) decode(n wire.Node, depth int) (*Value, error) {
	if depth > d.maxDepth {
		return nil, &DepthExceededError{Limit: d.maxDepth}
	}
	switch t := n.(type) {
	case string:
		return Str(t), nil
	case float64:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case *wire.Object:
		return d.decodeEnvelope(t, depth)
	case []wire.Node:
		return nil, malformed("bare array outside an envelope")
	case nil:
		return nil, malformed("bare null is not a valid document node")
	}
	return nil, malformed("unexpected document node %T", n)
}

func (d *decoder) decodeEnvelope(o *wire.Object, depth int) (*Value, error) {
	tagNode, ok := o.Get(d.syntax.TagKey)
	if !ok {
		return nil, malformed("object without %q type tag", d.syntax.TagKey)
	}
	tag, ok := tagNode.(string)
	if !ok {
		return nil, malformed("type tag is %T, want string", tagNode)
	}
	kind, ok := kindByName[tag]
	if !ok {
		return nil, malformed("unrecognized kind %q", tag)
	}

	var refID string
	if refNode, ok := o.Get(d.syntax.RefKey); ok {
		if refID, ok = refNode.(string); !ok {
			return nil, malformed("reference id is %T, want string", refNode)
		}
	}
	payload, hasPayload := o.Get("value")

	switch kind {
	case KindRef:
		// Table lookup only; a ref never triggers decoding work.
		if refID == "" {
			return nil, malformed("ref envelope without reference id")
		}
		return d.refs.resolve(refID)
	case KindUndefined:
		return Undefined(), nil
	case KindNull:
		return Null(), nil
	case KindNaN:
		return NaN(), nil
	case KindInfinity:
		sign, ok := payload.(float64)
		if !ok || (sign != 1 && sign != -1) {
			return nil, malformed("infinity payload must be 1 or -1")
		}
		return Infinity(int(sign)), nil
	case KindSymbol:
		desc, ok := payload.(string)
		if !ok {
			return nil, malformed("symbol payload is %T, want string", payload)
		}
		return Symbol(desc), nil
	case KindBool, KindNumber, KindString:
		return nil, malformed("kind %q is never enveloped", tag)
	}

	// Everything below has object identity and must carry an id.
	if refID == "" {
		return nil, malformed("%s envelope without reference id", kind)
	}
	if !hasPayload {
		return nil, malformed("%s envelope without payload", kind)
	}

	switch kind {
	case KindBigInt:
		s, ok := payload.(string)
		if !ok {
			return nil, malformed("bigint payload is %T, want string", payload)
		}
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, malformed("bigint payload %q is not a decimal integer", s)
		}
		return d.registered(refID, BigInt(n))
	case KindDate:
		s, ok := payload.(string)
		if !ok {
			return nil, malformed("date payload is %T, want string", payload)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, malformed("date payload %q: %v", s, err)
		}
		return d.registered(refID, Date(t))
	case KindRegexp:
		s, ok := payload.(string)
		if !ok {
			return nil, malformed("regexp payload is %T, want string", payload)
		}
		if len(s) < 2 || s[0] != '/' {
			return nil, malformed("regexp payload %q is not /source/flags", s)
		}
		i := strings.LastIndexByte(s, '/')
		if i == 0 {
			return nil, malformed("regexp payload %q is not /source/flags", s)
		}
		return d.registered(refID, Regexp(s[1:i], s[i+1:]))
	case KindStringBoxed:
		s, ok := payload.(string)
		if !ok {
			return nil, malformed("string-boxed payload is %T, want string", payload)
		}
		return d.registered(refID, BoxedStr(s))
	case KindNumberBoxed:
		f, ok := payload.(float64)
		if !ok {
			return nil, malformed("number-boxed payload is %T, want number", payload)
		}
		return d.registered(refID, BoxedNumber(f))
	case KindBoolBoxed:
		b, ok := payload.(bool)
		if !ok {
			return nil, malformed("boolean-boxed payload is %T, want boolean", payload)
		}
		return d.registered(refID, BoxedBool(b))
	case KindArray:
		elems, ok := payload.([]wire.Node)
		if !ok {
			return nil, malformed("array payload is %T, want array", payload)
		}
		shell := Array()
		if err := d.refs.register(refID, shell); err != nil {
			return nil, err
		}
		for _, elem := range elems {
			child, err := d.decode(elem, depth+1)
			if err != nil {
				return nil, err
			}
			shell.Append(child)
		}
		return shell, nil
	case KindObject:
		obj, ok := payload.(*wire.Object)
		if !ok {
			return nil, malformed("object payload is %T, want object", payload)
		}
		shell := Object()
		if err := d.refs.register(refID, shell); err != nil {
			return nil, err
		}
		for _, f := range obj.Fields {
			child, err := d.decode(f.Value, depth+1)
			if err != nil {
				return nil, err
			}
			shell.Set(f.Key, child)
		}
		return shell, nil
	case KindSet:
		shell := SetOf()
		if err := d.refs.register(refID, shell); err != nil {
			return nil, err
		}
		elems, err := d.payloadArray(payload, depth)
		if err != nil {
			return nil, err
		}
		for _, elem := range elems {
			shell.Add(elem)
		}
		return shell, nil
	case KindMap:
		shell := MapOf()
		if err := d.refs.register(refID, shell); err != nil {
			return nil, err
		}
		pairs, err := d.payloadArray(payload, depth)
		if err != nil {
			return nil, err
		}
		for _, pair := range pairs {
			kv, err := pair.AsArray()
			if err != nil || len(kv) != 2 {
				return nil, malformed("map entry is not a [key, value] pair")
			}
			shell.MapSet(kv[0], kv[1])
		}
		return shell, nil
	}

	if kind.TypedArray() {
		elems, ok := payload.([]wire.Node)
		if !ok {
			return nil, malformed("%s payload is %T, want array", kind, payload)
		}
		v, err := decodeBuffer(kind, elems)
		if err != nil {
			return nil, err
		}
		return d.registered(refID, v)
	}
	return nil, malformed("unrecognized kind %q", tag)
}

// registered binds a freshly built leaf to its reference id. Leaves have
// no children, so registering after construction is equivalent to the
// container shells' register-before-recurse ordering.
func (d *decoder) registered(refID string, v *Value) (*Value, error) {
	if err := d.refs.register(refID, v); err != nil {
		return nil, err
	}
	return v, nil
}

// payloadArray decodes a set or map payload, which must be an array
// envelope (or a ref to one).
func (d *decoder) payloadArray(payload wire.Node, depth int) ([]*Value, error) {
	inner, err := d.decode(payload, depth+1)
	if err != nil {
		return nil, err
	}
	elems, err := inner.AsArray()
	if err != nil {
		return nil, malformed("collection payload decoded to %s, want array", inner.Kind())
	}
	return elems, nil
}

func decodeBuffer(kind Kind, elems []wire.Node) (*Value, error) {
	nums := make([]float64, len(elems))
	for i, elem := range elems {
		f, ok := elem.(float64)
		if !ok {
			return nil, malformed("%s element %d is %T, want number", kind, i, elem)
		}
		nums[i] = f
	}

	integral := func(min, max float64) ([]float64, error) {
		for i, f := range nums {
			if f != math.Trunc(f) || f < min || f > max {
				return nil, malformed("%s element %d (%v) out of range", kind, i, f)
			}
		}
		return nums, nil
	}

	switch kind {
	case KindUint8Array, KindUint8ClampedArray:
		checked, err := integral(0, math.MaxUint8)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(checked))
		for i, f := range checked {
			out[i] = byte(f)
		}
		if kind == KindUint8ClampedArray {
			return Uint8ClampedArray(out), nil
		}
		return Uint8Array(out), nil
	case KindUint16Array:
		checked, err := integral(0, math.MaxUint16)
		if err != nil {
			return nil, err
		}
		out := make([]uint16, len(checked))
		for i, f := range checked {
			out[i] = uint16(f)
		}
		return Uint16Array(out), nil
	case KindUint32Array:
		checked, err := integral(0, math.MaxUint32)
		if err != nil {
			return nil, err
		}
		out := make([]uint32, len(checked))
		for i, f := range checked {
			out[i] = uint32(f)
		}
		return Uint32Array(out), nil
	case KindInt8Array:
		checked, err := integral(math.MinInt8, math.MaxInt8)
		if err != nil {
			return nil, err
		}
		out := make([]int8, len(checked))
		for i, f := range checked {
			out[i] = int8(f)
		}
		return Int8Array(out), nil
	case KindInt16Array:
		checked, err := integral(math.MinInt16, math.MaxInt16)
		if err != nil {
			return nil, err
		}
		out := make([]int16, len(checked))
		for i, f := range checked {
			out[i] = int16(f)
		}
		return Int16Array(out), nil
	case KindInt32Array:
		checked, err := integral(math.MinInt32, math.MaxInt32)
		if err != nil {
			return nil, err
		}
		out := make([]int32, len(checked))
		for i, f := range checked {
			out[i] = int32(f)
		}
		return Int32Array(out), nil
	case KindFloat32Array:
		out := make([]float32, len(nums))
		for i, f := range nums {
			out[i] = float32(f)
		}
		return Float32Array(out), nil
	case KindFloat64Array:
		out := make([]float64, len(nums))
		copy(out, nums)
		return Float64Array(out), nil
	}
	return nil, malformed("not a typed buffer kind: %s", kind)
}
