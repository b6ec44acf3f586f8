package codec_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neumenon/sigil/codec"
	"github.com/Neumenon/sigil/sigil"
	"github.com/Neumenon/sigil/wire"
)

// fixture builds a graph exercising sharing, cycles and the exotic kinds,
// then encodes it to a wire document. The shared object is defined under
// "pair" and back-referenced under the earlier-sorting "alias", so any
// codec that reorders fields would move the reference ahead of its
// definition.
func fixture(t *testing.T) (*sigil.Value, wire.Node) {
	t.Helper()
	shared := sigil.Object(sigil.F("n", sigil.Number(1)))
	root := sigil.Object(
		sigil.F("pair", sigil.Array(shared, shared)),
		sigil.F("alias", shared),
		sigil.F("bytes", sigil.Uint8Array([]byte{1, 2, 3})),
		sigil.F("items", sigil.SetOf(sigil.Str("a"), sigil.Str("b"))),
		sigil.F("none", sigil.Undefined()),
	)
	root.Set("self", root)

	doc, err := sigil.EncodeDocument(root)
	require.NoError(t, err)
	return root, doc
}

func TestCodecs_RoundTrip(t *testing.T) {
	codecs := []codec.Codec{codec.JSON{}, codec.JSON{Pretty: true}, codec.CBOR{}, codec.Msgpack{}}

	for _, c := range codecs {
		t.Run(c.Name(), func(t *testing.T) {
			original, doc := fixture(t)

			data, err := c.Marshal(doc)
			require.NoError(t, err)

			back, err := c.Unmarshal(data)
			require.NoError(t, err)

			decoded, err := sigil.DecodeDocument(back)
			require.NoError(t, err)

			require.True(t, sigil.Equal(original, decoded),
				"decoded graph differs:\n%s", spew.Sdump(decoded))
			assert.Same(t, decoded.Get("self"), decoded, "cycle lost")
			pair, err := decoded.Get("pair").AsArray()
			require.NoError(t, err)
			assert.Same(t, pair[0], pair[1], "sharing lost")
			assert.Same(t, pair[0], decoded.Get("alias"), "cross-field sharing lost")

			fields, err := decoded.AsObject()
			require.NoError(t, err)
			var keys []string
			for _, f := range fields {
				keys = append(keys, f.Key)
			}
			assert.Equal(t, []string{"pair", "alias", "bytes", "items", "none", "self"}, keys,
				"field order lost")
		})
	}
}

func TestCodecs_DefinitionUnderLateSortingKey(t *testing.T) {
	// The shared object's defining envelope sits under "z", its
	// back-reference under "a". Sorting the fields would put the ref
	// first and make the document undecodable, so every codec must keep
	// document order.
	for _, c := range []codec.Codec{codec.JSON{}, codec.CBOR{}, codec.Msgpack{}} {
		t.Run(c.Name(), func(t *testing.T) {
			shared := sigil.Object(sigil.F("n", sigil.Number(1)))
			root := sigil.Object(sigil.F("z", shared), sigil.F("a", shared))
			doc, err := sigil.EncodeDocument(root)
			require.NoError(t, err)

			data, err := c.Marshal(doc)
			require.NoError(t, err)
			back, err := c.Unmarshal(data)
			require.NoError(t, err)

			decoded, err := sigil.DecodeDocument(back)
			require.NoError(t, err)
			assert.Same(t, decoded.Get("z"), decoded.Get("a"), "sharing lost")

			fields, err := decoded.AsObject()
			require.NoError(t, err)
			require.Len(t, fields, 2)
			assert.Equal(t, "z", fields[0].Key)
			assert.Equal(t, "a", fields[1].Key)
		})
	}
}

func TestBinaryCodecs_RejectForeignShapes(t *testing.T) {
	// Raw CBOR and msgpack texts of {"a": 1}: plain maps are not the
	// tagged-list document shape these codecs produce.
	_, err := codec.CBOR{}.Unmarshal([]byte{0xa1, 0x61, 0x61, 0x01})
	assert.Error(t, err)

	_, err = codec.Msgpack{}.Unmarshal([]byte{0x81, 0xa1, 0x61, 0x01})
	assert.Error(t, err)
}

func TestCodecs_Deterministic(t *testing.T) {
	for _, c := range []codec.Codec{codec.JSON{}, codec.CBOR{}, codec.Msgpack{}} {
		t.Run(c.Name(), func(t *testing.T) {
			_, doc := fixture(t)
			a, err := c.Marshal(doc)
			require.NoError(t, err)
			b, err := c.Marshal(doc)
			require.NoError(t, err)
			assert.Equal(t, a, b)
		})
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "cbor", "msgpack"} {
		c, ok := codec.ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}
	_, ok := codec.ByName("protobuf")
	assert.False(t, ok)
}

func TestContainer_RoundTrip(t *testing.T) {
	for _, c := range []codec.Codec{codec.JSON{}, codec.CBOR{}, codec.Msgpack{}} {
		t.Run(c.Name(), func(t *testing.T) {
			original, doc := fixture(t)

			sealed, err := codec.Seal(c, doc)
			require.NoError(t, err)

			back, err := codec.Open(sealed)
			require.NoError(t, err)

			decoded, err := sigil.DecodeDocument(back)
			require.NoError(t, err)
			assert.True(t, sigil.Equal(original, decoded))
		})
	}
}

func TestContainer_Errors(t *testing.T) {
	_, err := codec.Open([]byte("not a container"))
	assert.Error(t, err)

	_, err = codec.Open([]byte("SGC1"))
	assert.Error(t, err)

	// A header naming an unknown codec is rejected before decompression.
	bad := append([]byte("SGC1"), 3)
	bad = append(bad, "xml"...)
	_, err = codec.Open(bad)
	assert.ErrorContains(t, err, "unknown codec")
}

func TestContainer_TextIsPlainDocument(t *testing.T) {
	// The sealed payload is the codec's own serialization: opening with
	// JSON inside must yield a document Decode accepts end to end.
	v := sigil.MapOf(sigil.P(sigil.Number(1), sigil.Str("one")))
	doc, err := sigil.EncodeDocument(v)
	require.NoError(t, err)

	sealed, err := codec.Seal(codec.JSON{}, doc)
	require.NoError(t, err)
	back, err := codec.Open(sealed)
	require.NoError(t, err)

	decoded, err := sigil.DecodeDocument(back)
	require.NoError(t, err)
	require.Equal(t, sigil.KindMap, decoded.Kind())
	got := decoded.MapGet(sigil.Number(1))
	require.NotNil(t, got)
	s, err := got.AsStr()
	require.NoError(t, err)
	assert.Equal(t, "one", s)
}
