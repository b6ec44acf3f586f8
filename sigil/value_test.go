package sigil

import (
	"math"
	"math/big"
	"testing"
	"time"
)

func fixedInstant() time.Time {
	return time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
}

func nanFloat() float64 {
	return math.NaN()
}

// ============================================================
// Value Model Tests
// ============================================================

func TestNumber_RoutesNonFinite(t *testing.T) {
	if Number(math.NaN()).Kind() != KindNaN {
		t.Error("NaN did not route to the nan kind")
	}
	if Number(math.Inf(1)).Kind() != KindInfinity {
		t.Error("+Inf did not route to the infinity kind")
	}
	if Number(math.Inf(-1)).Kind() != KindInfinity {
		t.Error("-Inf did not route to the infinity kind")
	}
	if Number(0).Kind() != KindNumber {
		t.Error("finite number misrouted")
	}
}

func TestAccessors_KindMismatch(t *testing.T) {
	v := Str("x")
	if _, err := v.AsBool(); err == nil {
		t.Error("AsBool on a string returned no error")
	}
	if _, err := v.AsArray(); err == nil {
		t.Error("AsArray on a string returned no error")
	}
	if _, _, err := v.AsRegexp(); err == nil {
		t.Error("AsRegexp on a string returned no error")
	}
}

func TestNilValue_ReadsAsNull(t *testing.T) {
	var v *Value
	if v.Kind() != KindNull {
		t.Errorf("nil kind = %s, want null", v.Kind())
	}
	if !v.IsNull() {
		t.Error("nil value is not null")
	}
	data, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode of nil failed: %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !out.IsNull() {
		t.Error("nil did not round-trip as null")
	}
}

func TestSet_Deduplication(t *testing.T) {
	s := SetOf(Str("x"), Str("x"), Number(1), Number(1), NaN(), NaN())
	if s.Len() != 3 {
		t.Errorf("set length = %d, want 3", s.Len())
	}

	// Distinct object identities with equal contents are distinct members.
	a := Object(F("n", Number(1)))
	b := Object(F("n", Number(1)))
	s2 := SetOf(a, b, a)
	if s2.Len() != 2 {
		t.Errorf("set length = %d, want 2", s2.Len())
	}
}

func TestMap_KeyEquivalence(t *testing.T) {
	m := MapOf(
		P(NaN(), Str("first")),
		P(NaN(), Str("second")),
	)
	pairs, _ := m.AsMap()
	if len(pairs) != 1 {
		t.Fatalf("map has %d pairs, want 1", len(pairs))
	}
	if got := m.MapGet(NaN()); got == nil || got.strVal != "second" {
		t.Error("repeated NaN key did not replace the value")
	}

	// BigInts compare by value for key purposes.
	m2 := MapOf(
		P(BigInt(big.NewInt(5)), Str("a")),
		P(BigInt(big.NewInt(5)), Str("b")),
	)
	if m2.Len() != 1 {
		t.Errorf("map has %d pairs, want 1", m2.Len())
	}
}

func TestMutators_PanicOnWrongKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Append on a string did not panic")
		}
	}()
	Str("x").Append(Number(1))
}

func TestObject_SetReplaces(t *testing.T) {
	o := Object(F("a", Number(1)))
	o.Set("a", Number(2))
	o.Set("b", Number(3))
	if o.Len() != 2 {
		t.Fatalf("object has %d fields, want 2", o.Len())
	}
	if f, _ := o.Get("a").AsNumber(); f != 2 {
		t.Errorf("a = %v, want 2", f)
	}
}

func TestEqual_Basics(t *testing.T) {
	tests := []struct {
		name string
		a, b *Value
		want bool
	}{
		{"same scalar", Str("x"), Str("x"), true},
		{"different scalar", Str("x"), Str("y"), false},
		{"kind mismatch", Str("1"), Number(1), false},
		{"boxed vs plain", BoxedStr("x"), Str("x"), false},
		{"nan equals nan", NaN(), NaN(), true},
		{"infinity signs", Infinity(1), Infinity(-1), false},
		{"dates by instant", Date(fixedInstant()), Date(fixedInstant().In(time.FixedZone("X", 3600))), true},
		{"symbols by label", Symbol("s"), Symbol("s"), true},
		{"bigints by value", BigInt(big.NewInt(7)), BigInt(big.NewInt(7)), true},
		{"regexps", Regexp("a", "g"), Regexp("a", "i"), false},
		{"buffers", Uint8Array([]byte{1, 2}), Uint8Array([]byte{1, 2}), true},
		{"buffer lengths", Uint8Array([]byte{1}), Uint8Array([]byte{1, 2}), false},
		{"buffer kinds", Uint8Array([]byte{1}), Uint8ClampedArray([]byte{1}), false},
		{"nil vs null", nil, Null(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKind_Predicates(t *testing.T) {
	identity := []Kind{
		KindBigInt, KindDate, KindRegexp, KindStringBoxed, KindNumberBoxed,
		KindBoolBoxed, KindArray, KindObject, KindSet, KindMap,
		KindUint8Array, KindUint8ClampedArray, KindUint16Array, KindUint32Array,
		KindInt8Array, KindInt16Array, KindInt32Array, KindFloat32Array, KindFloat64Array,
	}
	for _, k := range identity {
		if !k.Identity() {
			t.Errorf("%s should have object identity", k)
		}
	}
	valueOnly := []Kind{
		KindUndefined, KindNull, KindNaN, KindInfinity,
		KindBool, KindNumber, KindString, KindSymbol, KindRef,
	}
	for _, k := range valueOnly {
		if k.Identity() {
			t.Errorf("%s should not have object identity", k)
		}
	}
}

func TestKind_Names(t *testing.T) {
	for k, name := range kindNames {
		if kindByName[name] != Kind(k) {
			t.Errorf("name %q does not map back to kind %d", name, k)
		}
	}
	if Kind(200).String() != "unknown" {
		t.Error("out-of-range kind did not stringify as unknown")
	}
}
