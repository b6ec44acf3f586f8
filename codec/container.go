package codec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/Neumenon/sigil/wire"
)

// Container framing:
//
//	"SGC1" | name length (1 byte) | codec name | zstd-compressed payload
//
// The header names the codec so Open can pick the right one without
// out-of-band knowledge.

const containerMagic = "SGC1"

// Seal serializes a document with the given codec and wraps it in a
// compressed container.
func Seal(c Codec, doc wire.Node) ([]byte, error) {
	payload, err := c.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("codec: seal: %w", err)
	}
	name := c.Name()
	if len(name) == 0 || len(name) > 255 {
		return nil, fmt.Errorf("codec: invalid codec name %q", name)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("codec: seal: %w", err)
	}
	defer enc.Close()

	out := make([]byte, 0, len(containerMagic)+1+len(name)+len(payload)/2)
	out = append(out, containerMagic...)
	out = append(out, byte(len(name)))
	out = append(out, name...)
	return enc.EncodeAll(payload, out), nil
}

// Open unwraps a container, picking the codec named in its header, and
// returns the document inside.
func Open(data []byte) (wire.Node, error) {
	if len(data) < len(containerMagic)+1 || string(data[:len(containerMagic)]) != containerMagic {
		return nil, fmt.Errorf("codec: not a sigil container")
	}
	rest := data[len(containerMagic):]
	nameLen := int(rest[0])
	rest = rest[1:]
	if len(rest) < nameLen {
		return nil, fmt.Errorf("codec: truncated container header")
	}
	name := string(rest[:nameLen])
	rest = rest[nameLen:]

	c, ok := ByName(name)
	if !ok {
		return nil, fmt.Errorf("codec: unknown codec %q in container", name)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("codec: open: %w", err)
	}
	defer dec.Close()

	payload, err := dec.DecodeAll(rest, nil)
	if err != nil {
		return nil, fmt.Errorf("codec: open: %w", err)
	}
	return c.Unmarshal(payload)
}
