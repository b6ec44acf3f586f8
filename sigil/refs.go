package sigil

import "strconv"

// encodeRefs maps object identity to reference ids during one encode call.
// Ids are assigned on first visit, in visit order, and never reused; the
// table is discarded when the call returns. Lookup is by pointer identity,
// never by structural equality.
type encodeRefs struct {
	next int
	ids  map[*Value]string
}

func newEncodeRefs() *encodeRefs {
	return &encodeRefs{ids: make(map[*Value]string)}
}

// lookup returns the id assigned to v, if any.
func (r *encodeRefs) lookup(v *Value) (string, bool) {
	id, ok := r.ids[v]
	return id, ok
}

// assign gives v a fresh id. Callers must call lookup first; assigning the
// same identity twice would fork it on the wire.
func (r *encodeRefs) assign(v *Value) string {
	id := r.fresh()
	r.ids[v] = id
	return id
}

// fresh returns a new id without binding it to an identity. Set and map
// payloads are wrapped in array envelopes that exist only on the wire;
// they get an id here but can never be revisited.
func (r *encodeRefs) fresh() string {
	r.next++
	return strconv.Itoa(r.next)
}

// decodeRefs maps reference ids to reconstructed objects during one decode
// call. Containers are registered the moment their shell exists, before
// their children are decoded, so a back-reference to an ancestor resolves
// to that ancestor's still-incomplete shell.
type decodeRefs struct {
	objs map[string]*Value
}

func newDecodeRefs() *decodeRefs {
	return &decodeRefs{objs: make(map[string]*Value)}
}

func (r *decodeRefs) register(id string, v *Value) error {
	if _, ok := r.objs[id]; ok {
		return malformed("duplicate reference id %q", id)
	}
	r.objs[id] = v
	return nil
}

func (r *decodeRefs) resolve(id string) (*Value, error) {
	v, ok := r.objs[id]
	if !ok {
		return nil, &RefResolutionError{RefID: id}
	}
	return v, nil
}
