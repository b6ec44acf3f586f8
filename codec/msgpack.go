package codec

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/Neumenon/sigil/wire"
)

// Msgpack is a compact binary form of a document. Documents travel as
// tagged lists (see pack.go), so the encoding is deterministic and object
// field order survives this form.
type Msgpack struct{}

func (Msgpack) Name() string { return "msgpack" }

func (Msgpack) Marshal(doc wire.Node) ([]byte, error) {
	return msgpack.Marshal(packNode(doc))
}

func (Msgpack) Unmarshal(data []byte) (wire.Node, error) {
	var v any
	if err := msgpack.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return unpackNode(v)
}
