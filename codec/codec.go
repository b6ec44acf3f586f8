// Package codec provides interchangeable serializations of sigil wire
// documents: canonical JSON text, deterministic CBOR, and msgpack, plus a
// compressed container framing any of them for storage or transport.
package codec

import (
	"github.com/Neumenon/sigil/wire"
)

// Codec serializes wire documents. Implementations must be deterministic:
// the same document always produces the same bytes.
type Codec interface {
	// Name identifies the codec inside container headers.
	Name() string

	Marshal(doc wire.Node) ([]byte, error)
	Unmarshal(data []byte) (wire.Node, error)
}

// ByName returns the codec registered under name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "cbor":
		return CBOR{}, true
	case "msgpack":
		return Msgpack{}, true
	}
	return nil, false
}

// JSON is the canonical text form of a document.
type JSON struct {
	// Pretty emits indented multi-line output.
	Pretty bool
}

func (JSON) Name() string { return "json" }

func (c JSON) Marshal(doc wire.Node) ([]byte, error) {
	opts := wire.DefaultEmitOptions()
	if c.Pretty {
		opts = wire.PrettyEmitOptions()
	}
	return wire.EmitWithOptions(doc, opts)
}

func (JSON) Unmarshal(data []byte) (wire.Node, error) {
	return wire.Parse(data)
}
