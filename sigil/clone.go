package sigil

// Clone deep-copies a value graph by round-tripping it through an
// in-memory wire document. Shared references and cycles are preserved in
// the copy; symbols come back as fresh tokens with the same label, per the
// codec's symbol semantics.
func Clone(v *Value) (*Value, error) {
	doc, err := EncodeDocument(v)
	if err != nil {
		return nil, err
	}
	return DecodeDocument(doc)
}
