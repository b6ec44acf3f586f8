package wire

import (
	"bytes"
	"math"
	"testing"
)

// ============================================================
// Emit / Parse Tests
// ============================================================

func TestEmit_Scalars(t *testing.T) {
	tests := []struct {
		name string
		in   Node
		want string
	}{
		{"string", "x", `"x"`},
		{"escaped string", "a\"b\n", `"a\"b\n"`},
		{"number", float64(5), `5`},
		{"fraction", 2.5, `2.5`},
		{"bool", true, `true`},
		{"null", nil, `null`},
		{"empty array", []Node{}, `[]`},
		{"empty object", &Object{}, `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Emit(tt.in)
			if err != nil {
				t.Fatalf("Emit failed: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Emit = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEmit_RejectsNonFinite(t *testing.T) {
	if _, err := Emit([]Node{math.Inf(1)}); err == nil {
		t.Error("Emit accepted a non-finite number")
	}
	if _, err := Emit([]Node{math.NaN()}); err == nil {
		t.Error("Emit accepted NaN")
	}
}

func TestEmit_ObjectOrderPreserved(t *testing.T) {
	obj := NewObject(
		Field{Key: "zz", Value: float64(1)},
		Field{Key: "aa", Value: float64(2)},
	)
	got, err := Emit(obj)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	want := `{"zz":1,"aa":2}`
	if string(got) != want {
		t.Errorf("Emit = %s, want %s", got, want)
	}
}

func TestEmitParse_RoundTrip(t *testing.T) {
	doc := NewObject(
		Field{Key: "b", Value: []Node{float64(1), "two", true, nil}},
		Field{Key: "a", Value: NewObject(Field{Key: "nested", Value: "v"})},
	)
	for _, opts := range []EmitOptions{DefaultEmitOptions(), PrettyEmitOptions()} {
		text, err := EmitWithOptions(doc, opts)
		if err != nil {
			t.Fatalf("Emit failed: %v", err)
		}
		back, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse failed: %v\ntext: %s", err, text)
		}
		obj, ok := back.(*Object)
		if !ok {
			t.Fatalf("parsed %T, want *Object", back)
		}
		if obj.Fields[0].Key != "b" || obj.Fields[1].Key != "a" {
			t.Errorf("field order lost: %q, %q", obj.Fields[0].Key, obj.Fields[1].Key)
		}
		// Emitting the parsed tree reproduces the compact text.
		again, err := Emit(back)
		if err != nil {
			t.Fatalf("re-Emit failed: %v", err)
		}
		compact, _ := Emit(doc)
		if !bytes.Equal(again, compact) {
			t.Errorf("parse/emit not stable:\n%s\n%s", compact, again)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ``},
		{"garbage", `{]`},
		{"trailing", `1 2`},
		{"unterminated", `{"a":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.text)); err == nil {
				t.Error("Parse accepted invalid input")
			}
		})
	}
}

func TestParse_DepthBound(t *testing.T) {
	text := bytes.Repeat([]byte("["), maxParseDepth+10)
	if _, err := Parse(text); err == nil {
		t.Error("Parse accepted unbounded nesting")
	}
}

func TestParseLenient(t *testing.T) {
	text := []byte(`{
		// a comment
		"a": 1, /* block */
		"b": [1, 2,],
	}`)
	if _, err := Parse(text); err == nil {
		t.Fatal("strict Parse accepted jsonc input")
	}
	n, err := ParseLenient(text)
	if err != nil {
		t.Fatalf("ParseLenient failed: %v", err)
	}
	obj := n.(*Object)
	if obj.Len() != 2 {
		t.Errorf("parsed %d fields, want 2", obj.Len())
	}
}

func TestObject_GetSet(t *testing.T) {
	o := NewObject(Field{Key: "a", Value: "1"})
	if v, ok := o.Get("a"); !ok || v != "1" {
		t.Error("Get failed")
	}
	if _, ok := o.Get("missing"); ok {
		t.Error("Get found a missing key")
	}
	o.Set("a", "2")
	o.Set("b", "3")
	if o.Len() != 2 {
		t.Errorf("Len = %d, want 2", o.Len())
	}
	if v, _ := o.Get("a"); v != "2" {
		t.Error("Set did not replace")
	}
}
