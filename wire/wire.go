// Package wire defines the JSON-compatible document tree produced by the
// sigil encoder, together with its text serialization.
//
// A document is a tree of Nodes:
//
//	string, float64, bool    bare JSON scalars
//	*Object                  JSON object, field order preserved
//	[]Node                   JSON array
//
// Envelopes (tagged objects carrying a kind, an optional reference id and
// a kind-specific payload) are ordinary *Object nodes; their reserved key
// names are configured by a Syntax and interpreted by the sigil package.
// The document itself is an immutable value once produced and is safe to
// store, share or transmit.
package wire

// Node is one node of a wire document. Valid nodes are string, float64,
// bool, *Object and []Node. A nil Node corresponds to a JSON null, which
// the sigil encoder never emits.
type Node = any

// Field is a single key/value pair of an Object.
type Field struct {
	Key   string
	Value Node
}

// Object is a JSON object with preserved field order. Plain Go maps would
// randomize key order on every traversal; the codec guarantees that object
// keys survive a round-trip in their original order.
type Object struct {
	Fields []Field
}

// NewObject creates an object from key/value pairs.
func NewObject(fields ...Field) *Object {
	return &Object{Fields: fields}
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (Node, bool) {
	for _, f := range o.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Set replaces the value for key, appending the field if absent.
func (o *Object) Set(key string, v Node) {
	for i := range o.Fields {
		if o.Fields[i].Key == key {
			o.Fields[i].Value = v
			return
		}
	}
	o.Fields = append(o.Fields, Field{Key: key, Value: v})
}

// Len returns the number of fields.
func (o *Object) Len() int {
	return len(o.Fields)
}

// Syntax names the reserved envelope keys. It is configurable but must be
// constant per deployment: a document emitted under one syntax is not
// readable under another.
type Syntax struct {
	// TagKey is the envelope field holding the kind name.
	TagKey string

	// RefKey is the envelope field holding the reference id.
	RefKey string
}

// DefaultSyntax returns the standard envelope keys.
func DefaultSyntax() Syntax {
	return Syntax{TagKey: "$sigil", RefKey: "$ref"}
}
