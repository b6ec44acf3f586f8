package sigil

// Kind is the semantic category of a value. The classifier places every
// supported runtime value into exactly one Kind; the encoder and decoder
// dispatch exhaustively over the same enumeration, so adding a kind is a
// single-point change.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindNaN
	KindInfinity
	KindBool
	KindNumber
	KindString
	KindBigInt
	KindSymbol
	KindDate
	KindRegexp
	KindStringBoxed
	KindNumberBoxed
	KindBoolBoxed
	KindArray
	KindObject
	KindSet
	KindMap
	KindUint8Array
	KindUint8ClampedArray
	KindUint16Array
	KindUint32Array
	KindInt8Array
	KindInt16Array
	KindInt32Array
	KindFloat32Array
	KindFloat64Array

	// KindRef is the wire-only back-reference marker. It never appears on
	// a Value; the decoder resolves it to an already-registered object.
	KindRef
)

// kindNames are the wire tag names, indexed by Kind.
var kindNames = [...]string{
	KindUndefined:         "undefined",
	KindNull:              "null",
	KindNaN:               "nan",
	KindInfinity:          "infinity",
	KindBool:              "boolean",
	KindNumber:            "number",
	KindString:            "string",
	KindBigInt:            "bigint",
	KindSymbol:            "symbol",
	KindDate:              "date",
	KindRegexp:            "regexp",
	KindStringBoxed:       "string-boxed",
	KindNumberBoxed:       "number-boxed",
	KindBoolBoxed:         "boolean-boxed",
	KindArray:             "array",
	KindObject:            "object",
	KindSet:               "set",
	KindMap:               "map",
	KindUint8Array:        "uint8array",
	KindUint8ClampedArray: "uint8clampedarray",
	KindUint16Array:       "uint16array",
	KindUint32Array:       "uint32array",
	KindInt8Array:         "int8array",
	KindInt16Array:        "int16array",
	KindInt32Array:        "int32array",
	KindFloat32Array:      "float32array",
	KindFloat64Array:      "float64array",
	KindRef:               "ref",
}

// kindByName maps wire tag names back to Kinds for decoding.
var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = Kind(k)
	}
	return m
}()

// String returns the wire tag name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Identity reports whether values of this kind have object identity:
// they carry a reference id on the wire and participate in sharing and
// cycles. JSON-primitive scalars and the valueless markers are copied by
// value; symbols deliberately decode to fresh tokens.
func (k Kind) Identity() bool {
	switch k {
	case KindBigInt, KindDate, KindRegexp,
		KindStringBoxed, KindNumberBoxed, KindBoolBoxed,
		KindArray, KindObject, KindSet, KindMap:
		return true
	}
	return k.TypedArray()
}

// TypedArray reports whether this is one of the nine fixed-width numeric
// buffer kinds.
func (k Kind) TypedArray() bool {
	return k >= KindUint8Array && k <= KindFloat64Array
}
