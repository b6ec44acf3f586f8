package sigil

// Equal reports deep structural equality of two value graphs. It is
// cycle-safe: a pair of nodes already under comparison is assumed equal,
// so self-referential graphs compare in finite time. Symbols compare by
// label, NaN compares equal to NaN, and shared references need not be
// shared identically on both sides; only the reachable structure counts.
func Equal(a, b *Value) bool {
	return equalValue(a, b, make(map[valuePair]bool))
}

type valuePair struct {
	a, b *Value
}

func equalValue(a, b *Value, visiting map[valuePair]bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindUndefined, KindNull, KindNaN:
		return true
	case KindBool, KindBoolBoxed:
		return a.boolVal == b.boolVal
	case KindNumber, KindInfinity, KindNumberBoxed:
		return a.numVal == b.numVal
	case KindString, KindStringBoxed, KindSymbol:
		return a.strVal == b.strVal
	case KindBigInt:
		return a.bigVal.Cmp(b.bigVal) == 0
	case KindDate:
		return a.timeVal.Equal(b.timeVal)
	case KindRegexp:
		return a.reSource == b.reSource && a.reFlags == b.reFlags
	}

	pair := valuePair{a, b}
	if visiting[pair] {
		return true
	}
	visiting[pair] = true

	switch a.kind {
	case KindArray, KindSet:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if !equalValue(a.elems[i], b.elems[i], visiting) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for i := range a.fields {
			if a.fields[i].Key != b.fields[i].Key {
				return false
			}
			if !equalValue(a.fields[i].Value, b.fields[i].Value, visiting) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.pairs) != len(b.pairs) {
			return false
		}
		for i := range a.pairs {
			if !equalValue(a.pairs[i].Key, b.pairs[i].Key, visiting) {
				return false
			}
			if !equalValue(a.pairs[i].Value, b.pairs[i].Value, visiting) {
				return false
			}
		}
		return true
	}

	if a.kind.TypedArray() {
		return equalBuffer(a, b)
	}
	return false
}

func equalBuffer(a, b *Value) bool {
	switch ab := a.buf.(type) {
	case []byte:
		bb := b.buf.([]byte)
		if len(ab) != len(bb) {
			return false
		}
		for i := range ab {
			if ab[i] != bb[i] {
				return false
			}
		}
	case []uint16:
		bb := b.buf.([]uint16)
		if len(ab) != len(bb) {
			return false
		}
		for i := range ab {
			if ab[i] != bb[i] {
				return false
			}
		}
	case []uint32:
		bb := b.buf.([]uint32)
		if len(ab) != len(bb) {
			return false
		}
		for i := range ab {
			if ab[i] != bb[i] {
				return false
			}
		}
	case []int8:
		bb := b.buf.([]int8)
		if len(ab) != len(bb) {
			return false
		}
		for i := range ab {
			if ab[i] != bb[i] {
				return false
			}
		}
	case []int16:
		bb := b.buf.([]int16)
		if len(ab) != len(bb) {
			return false
		}
		for i := range ab {
			if ab[i] != bb[i] {
				return false
			}
		}
	case []int32:
		bb := b.buf.([]int32)
		if len(ab) != len(bb) {
			return false
		}
		for i := range ab {
			if ab[i] != bb[i] {
				return false
			}
		}
	case []float32:
		bb := b.buf.([]float32)
		if len(ab) != len(bb) {
			return false
		}
		for i := range ab {
			if ab[i] != bb[i] {
				return false
			}
		}
	case []float64:
		bb := b.buf.([]float64)
		if len(ab) != len(bb) {
			return false
		}
		for i := range ab {
			if ab[i] != bb[i] {
				return false
			}
		}
	}
	return true
}
