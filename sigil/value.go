package sigil

import (
	"fmt"
	"math"
	"math/big"
	"time"
)

// Value is one node of a value graph. Nodes are shared by pointer: two
// fields holding the same *Value are the same object, and that identity is
// what the codec preserves across a round-trip. Containers may reference
// themselves directly or transitively.
type Value struct {
	kind Kind

	// Scalar payloads (only one valid based on kind)
	boolVal bool
	numVal  float64 // number; NaN for nan; ±Inf for infinity
	strVal  string  // string, symbol description
	bigVal  *big.Int
	timeVal time.Time

	// Regular expression payload
	reSource string
	reFlags  string

	// Container payloads
	elems  []*Value // array, set
	fields []Field  // object
	pairs  []Pair   // map

	// Typed buffer payload: one of []byte, []uint16, []uint32, []int8,
	// []int16, []int32, []float32, []float64 depending on kind.
	buf any
}

// Field is a key/value entry of an object. Field order is significant and
// survives a round-trip.
type Field struct {
	Key   string
	Value *Value
}

// Pair is a key/value entry of a map. Keys may be values of any kind.
type Pair struct {
	Key   *Value
	Value *Value
}

// ============================================================
// Constructors
// ============================================================

// Undefined creates the absence marker.
func Undefined() *Value {
	return &Value{kind: KindUndefined}
}

// Null creates a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// NaN creates a not-a-number value.
func NaN() *Value {
	return &Value{kind: KindNaN, numVal: math.NaN()}
}

// Infinity creates a positive infinity for sign >= 0, negative otherwise.
func Infinity(sign int) *Value {
	return &Value{kind: KindInfinity, numVal: math.Inf(sign)}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Number creates a numeric value. Non-finite inputs are routed to the nan
// and infinity kinds so that KindNumber always means a finite number.
func Number(v float64) *Value {
	switch {
	case math.IsNaN(v):
		return NaN()
	case math.IsInf(v, 1):
		return Infinity(1)
	case math.IsInf(v, -1):
		return Infinity(-1)
	}
	return &Value{kind: KindNumber, numVal: v}
}

// Str creates a string value.
func Str(v string) *Value {
	return &Value{kind: KindString, strVal: v}
}

// BigInt creates an arbitrary-precision integer value. A nil input is
// treated as zero.
func BigInt(v *big.Int) *Value {
	if v == nil {
		v = new(big.Int)
	}
	return &Value{kind: KindBigInt, bigVal: v}
}

// Symbol creates a symbolic token with a descriptive label. Symbols are
// not reference-tracked: decoding re-creates a fresh token from the label
// alone, so symbol identity is deliberately not preserved across a
// round-trip (unlike every other object-identity kind).
func Symbol(description string) *Value {
	return &Value{kind: KindSymbol, strVal: description}
}

// Date creates a date value at the given instant.
func Date(t time.Time) *Value {
	return &Value{kind: KindDate, timeVal: t}
}

// Regexp creates a regular expression value from its source and flags.
func Regexp(source, flags string) *Value {
	return &Value{kind: KindRegexp, reSource: source, reFlags: flags}
}

// BoxedStr creates a boxed string: a string that is also an independently
// referenceable object, distinct from its unboxed form.
func BoxedStr(v string) *Value {
	return &Value{kind: KindStringBoxed, strVal: v}
}

// BoxedNumber creates a boxed number.
func BoxedNumber(v float64) *Value {
	return &Value{kind: KindNumberBoxed, numVal: v}
}

// BoxedBool creates a boxed boolean.
func BoxedBool(v bool) *Value {
	return &Value{kind: KindBoolBoxed, boolVal: v}
}

// Array creates an ordered sequence.
func Array(elems ...*Value) *Value {
	return &Value{kind: KindArray, elems: elems}
}

// Object creates a plain keyed record from fields, in order.
func Object(fields ...Field) *Value {
	return &Value{kind: KindObject, fields: fields}
}

// SetOf creates a set, deduplicating the given elements.
func SetOf(elems ...*Value) *Value {
	s := &Value{kind: KindSet}
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

// MapOf creates a map from key/value pairs, keeping the last value for a
// repeated key.
func MapOf(pairs ...Pair) *Value {
	m := &Value{kind: KindMap}
	for _, p := range pairs {
		m.MapSet(p.Key, p.Value)
	}
	return m
}

// Uint8Array creates an unsigned 8-bit buffer.
func Uint8Array(v []byte) *Value {
	return &Value{kind: KindUint8Array, buf: v}
}

// Uint8ClampedArray creates a clamped unsigned 8-bit buffer.
func Uint8ClampedArray(v []byte) *Value {
	return &Value{kind: KindUint8ClampedArray, buf: v}
}

// Uint16Array creates an unsigned 16-bit buffer.
func Uint16Array(v []uint16) *Value {
	return &Value{kind: KindUint16Array, buf: v}
}

// Uint32Array creates an unsigned 32-bit buffer.
func Uint32Array(v []uint32) *Value {
	return &Value{kind: KindUint32Array, buf: v}
}

// Int8Array creates a signed 8-bit buffer.
func Int8Array(v []int8) *Value {
	return &Value{kind: KindInt8Array, buf: v}
}

// Int16Array creates a signed 16-bit buffer.
func Int16Array(v []int16) *Value {
	return &Value{kind: KindInt16Array, buf: v}
}

// Int32Array creates a signed 32-bit buffer.
func Int32Array(v []int32) *Value {
	return &Value{kind: KindInt32Array, buf: v}
}

// Float32Array creates a 32-bit float buffer.
func Float32Array(v []float32) *Value {
	return &Value{kind: KindFloat32Array, buf: v}
}

// Float64Array creates a 64-bit float buffer.
func Float64Array(v []float64) *Value {
	return &Value{kind: KindFloat64Array, buf: v}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value's kind. A nil value reads as null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull returns true for null (or nil) values.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// IsUndefined returns true for the absence marker.
func (v *Value) IsUndefined() bool {
	return v != nil && v.kind == KindUndefined
}

// AsBool returns the boolean payload.
func (v *Value) AsBool() (bool, error) {
	if v.Kind() != KindBool {
		return false, fmt.Errorf("sigil: expected boolean, got %s", v.Kind())
	}
	return v.boolVal, nil
}

// AsNumber returns the numeric payload of a number, nan or infinity value.
func (v *Value) AsNumber() (float64, error) {
	switch v.Kind() {
	case KindNumber, KindNaN, KindInfinity:
		return v.numVal, nil
	}
	return 0, fmt.Errorf("sigil: expected number, got %s", v.Kind())
}

// AsStr returns the string payload.
func (v *Value) AsStr() (string, error) {
	if v.Kind() != KindString {
		return "", fmt.Errorf("sigil: expected string, got %s", v.Kind())
	}
	return v.strVal, nil
}

// AsBigInt returns the arbitrary-precision integer payload.
func (v *Value) AsBigInt() (*big.Int, error) {
	if v.Kind() != KindBigInt {
		return nil, fmt.Errorf("sigil: expected bigint, got %s", v.Kind())
	}
	return v.bigVal, nil
}

// AsSymbol returns a symbol's descriptive label.
func (v *Value) AsSymbol() (string, error) {
	if v.Kind() != KindSymbol {
		return "", fmt.Errorf("sigil: expected symbol, got %s", v.Kind())
	}
	return v.strVal, nil
}

// AsTime returns the date payload.
func (v *Value) AsTime() (time.Time, error) {
	if v.Kind() != KindDate {
		return time.Time{}, fmt.Errorf("sigil: expected date, got %s", v.Kind())
	}
	return v.timeVal, nil
}

// AsRegexp returns a regular expression's source and flags.
func (v *Value) AsRegexp() (source, flags string, err error) {
	if v.Kind() != KindRegexp {
		return "", "", fmt.Errorf("sigil: expected regexp, got %s", v.Kind())
	}
	return v.reSource, v.reFlags, nil
}

// AsBoxedBool returns the payload of a boxed boolean.
func (v *Value) AsBoxedBool() (bool, error) {
	if v.Kind() != KindBoolBoxed {
		return false, fmt.Errorf("sigil: expected boolean-boxed, got %s", v.Kind())
	}
	return v.boolVal, nil
}

// AsBoxedNumber returns the payload of a boxed number.
func (v *Value) AsBoxedNumber() (float64, error) {
	if v.Kind() != KindNumberBoxed {
		return 0, fmt.Errorf("sigil: expected number-boxed, got %s", v.Kind())
	}
	return v.numVal, nil
}

// AsBoxedStr returns the payload of a boxed string.
func (v *Value) AsBoxedStr() (string, error) {
	if v.Kind() != KindStringBoxed {
		return "", fmt.Errorf("sigil: expected string-boxed, got %s", v.Kind())
	}
	return v.strVal, nil
}

// AsArray returns the elements of an array.
func (v *Value) AsArray() ([]*Value, error) {
	if v.Kind() != KindArray {
		return nil, fmt.Errorf("sigil: expected array, got %s", v.Kind())
	}
	return v.elems, nil
}

// AsSet returns the elements of a set, in insertion order.
func (v *Value) AsSet() ([]*Value, error) {
	if v.Kind() != KindSet {
		return nil, fmt.Errorf("sigil: expected set, got %s", v.Kind())
	}
	return v.elems, nil
}

// AsObject returns an object's fields, in order.
func (v *Value) AsObject() ([]Field, error) {
	if v.Kind() != KindObject {
		return nil, fmt.Errorf("sigil: expected object, got %s", v.Kind())
	}
	return v.fields, nil
}

// AsMap returns a map's entries, in insertion order.
func (v *Value) AsMap() ([]Pair, error) {
	if v.Kind() != KindMap {
		return nil, fmt.Errorf("sigil: expected map, got %s", v.Kind())
	}
	return v.pairs, nil
}

// AsBytes returns the payload of an 8-bit unsigned buffer (plain or
// clamped).
func (v *Value) AsBytes() ([]byte, error) {
	switch v.Kind() {
	case KindUint8Array, KindUint8ClampedArray:
		return v.buf.([]byte), nil
	}
	return nil, fmt.Errorf("sigil: expected uint8 buffer, got %s", v.Kind())
}

// AsBuffer returns the typed slice behind any numeric buffer kind: one of
// []byte, []uint16, []uint32, []int8, []int16, []int32, []float32 or
// []float64.
func (v *Value) AsBuffer() (any, error) {
	if !v.Kind().TypedArray() {
		return nil, fmt.Errorf("sigil: expected typed buffer, got %s", v.Kind())
	}
	return v.buf, nil
}

// Len returns the element count of a container or buffer.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindArray, KindSet:
		return len(v.elems)
	case KindObject:
		return len(v.fields)
	case KindMap:
		return len(v.pairs)
	case KindUint8Array, KindUint8ClampedArray:
		return len(v.buf.([]byte))
	case KindUint16Array:
		return len(v.buf.([]uint16))
	case KindUint32Array:
		return len(v.buf.([]uint32))
	case KindInt8Array:
		return len(v.buf.([]int8))
	case KindInt16Array:
		return len(v.buf.([]int16))
	case KindInt32Array:
		return len(v.buf.([]int32))
	case KindFloat32Array:
		return len(v.buf.([]float32))
	case KindFloat64Array:
		return len(v.buf.([]float64))
	}
	return 0
}

// Get returns an object field by key, or nil if absent.
func (v *Value) Get(key string) *Value {
	if v == nil || v.kind != KindObject {
		return nil
	}
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// Index returns the i-th element of an array.
func (v *Value) Index(i int) (*Value, error) {
	if v.Kind() != KindArray {
		return nil, fmt.Errorf("sigil: not an array")
	}
	if i < 0 || i >= len(v.elems) {
		return nil, fmt.Errorf("sigil: index %d out of bounds (len=%d)", i, len(v.elems))
	}
	return v.elems[i], nil
}

// MapGet returns the map value for a key equivalent to k, or nil.
func (v *Value) MapGet(k *Value) *Value {
	if v == nil || v.kind != KindMap {
		return nil
	}
	for _, p := range v.pairs {
		if sameValue(p.Key, k) {
			return p.Value
		}
	}
	return nil
}

// ============================================================
// Mutators
// ============================================================
//
// Containers follow a two-phase construction contract: a container is
// valid and referenceable while still empty, and is populated afterwards.
// The decoder depends on this to rebuild cycles.

// Append adds an element to an array.
func (v *Value) Append(elem *Value) {
	if v.kind != KindArray {
		panic("sigil: cannot append to " + v.kind.String())
	}
	v.elems = append(v.elems, elem)
}

// Set sets an object field, appending it if absent.
func (v *Value) Set(key string, val *Value) {
	if v.kind != KindObject {
		panic("sigil: cannot set field on " + v.kind.String())
	}
	for i := range v.fields {
		if v.fields[i].Key == key {
			v.fields[i].Value = val
			return
		}
	}
	v.fields = append(v.fields, Field{Key: key, Value: val})
}

// Add inserts an element into a set. Elements equivalent to one already
// present (same identity, or equal scalar value) are ignored.
func (v *Value) Add(elem *Value) {
	if v.kind != KindSet {
		panic("sigil: cannot add to " + v.kind.String())
	}
	for _, e := range v.elems {
		if sameValue(e, elem) {
			return
		}
	}
	v.elems = append(v.elems, elem)
}

// MapSet associates a key with a value, replacing the value of an
// equivalent existing key.
func (v *Value) MapSet(key, val *Value) {
	if v.kind != KindMap {
		panic("sigil: cannot associate on " + v.kind.String())
	}
	for i := range v.pairs {
		if sameValue(v.pairs[i].Key, key) {
			v.pairs[i].Value = val
			return
		}
	}
	v.pairs = append(v.pairs, Pair{Key: key, Value: val})
}

// F creates a Field for use in Object construction.
func F(key string, value *Value) Field {
	return Field{Key: key, Value: value}
}

// P creates a Pair for use in MapOf construction.
func P(key, value *Value) Pair {
	return Pair{Key: key, Value: value}
}

// sameValue is the equivalence used for set membership and map keys:
// pointer identity for object-identity values, payload equality for
// scalars and markers (NaN equals NaN; bigints compare by value, matching
// host map-key semantics).
func sameValue(a, b *Value) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindUndefined, KindNull, KindNaN:
		return true
	case KindBool:
		return a.boolVal == b.boolVal
	case KindNumber, KindInfinity:
		return a.numVal == b.numVal
	case KindString:
		return a.strVal == b.strVal
	case KindBigInt:
		return a.bigVal.Cmp(b.bigVal) == 0
	}
	return false
}
