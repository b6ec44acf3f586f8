package codec

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/Neumenon/sigil/wire"
)

// encMode is the CBOR encoder configured with Core Deterministic Encoding
// (RFC 8949 §4.2): smallest integer and float encoding, no
// indefinite-length items. Documents travel as tagged lists (see pack.go),
// so there are no maps for the deterministic mode to reorder and object
// field order survives this form.
var encMode cbor.EncMode

// decMode is the CBOR decoder configured to accept standard CBOR.
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// CBOR is the deterministic binary form of a document.
type CBOR struct{}

func (CBOR) Name() string { return "cbor" }

func (CBOR) Marshal(doc wire.Node) ([]byte, error) {
	return encMode.Marshal(packNode(doc))
}

func (CBOR) Unmarshal(data []byte) (wire.Node, error) {
	var v any
	if err := decMode.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return unpackNode(v)
}
