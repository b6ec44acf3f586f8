package sigil

import (
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"time"
)

// FromNative converts a native Go value into the value model, classifying
// it by runtime category. The supported surface is:
//
//	nil                              null
//	bool, string                     scalars
//	integer and float types          number (NaN/±Inf route to their kinds)
//	*string, *float64, *bool        boxed scalars
//	*big.Int                         bigint
//	time.Time, *time.Time            date
//	[]byte and the numeric slices    typed buffers
//	[]any                            array
//	map[string]any                   object (keys sorted: Go map order is
//	                                 random and the model is ordered)
//	*Value                           passed through unchanged
//
// Callables are rejected with UnsupportedValue("function"); any other type
// is rejected under its Go type name. Values outside this surface (sets,
// maps with non-string keys, symbols, regular expressions, the absence
// marker) are built directly with the model constructors, which is also
// the only way to express sharing and cycles.
func FromNative(v any) (*Value, error) {
	return fromNative(v, 0)
}

// KindOf classifies a native Go value by its top-level category alone.
// Container children are not visited, so a slice or map holding an
// unsupported value still classifies as array or object; only FromNative
// reports such children.
func KindOf(v any) (Kind, error) {
	switch val := v.(type) {
	case *Value:
		return val.Kind(), nil
	case []any:
		return KindArray, nil
	case map[string]any:
		return KindObject, nil
	}
	n, err := fromNative(v, 0)
	if err != nil {
		return 0, err
	}
	return n.Kind(), nil
}

func fromNative(v any, depth int) (*Value, error) {
	if depth > DefaultMaxDepth {
		return nil, &DepthExceededError{Limit: DefaultMaxDepth}
	}

	switch val := v.(type) {
	case nil:
		return Null(), nil
	case *Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return Str(val), nil
	case float64:
		return Number(val), nil
	case float32:
		return Number(float64(val)), nil
	case int:
		return Number(float64(val)), nil
	case int8:
		return Number(float64(val)), nil
	case int16:
		return Number(float64(val)), nil
	case int32:
		return Number(float64(val)), nil
	case int64:
		return Number(float64(val)), nil
	case uint:
		return Number(float64(val)), nil
	case uint8:
		return Number(float64(val)), nil
	case uint16:
		return Number(float64(val)), nil
	case uint32:
		return Number(float64(val)), nil
	case uint64:
		return Number(float64(val)), nil
	case *big.Int:
		return BigInt(val), nil
	case time.Time:
		return Date(val), nil
	case *time.Time:
		return Date(*val), nil
	case *string:
		return BoxedStr(*val), nil
	case *float64:
		return BoxedNumber(*val), nil
	case *bool:
		return BoxedBool(*val), nil
	case []byte:
		return Uint8Array(val), nil
	case []uint16:
		return Uint16Array(val), nil
	case []uint32:
		return Uint32Array(val), nil
	case []int8:
		return Int8Array(val), nil
	case []int16:
		return Int16Array(val), nil
	case []int32:
		return Int32Array(val), nil
	case []float32:
		return Float32Array(val), nil
	case []float64:
		return Float64Array(val), nil
	case []any:
		arr := Array()
		for i, elem := range val {
			child, err := fromNative(elem, depth+1)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr.Append(child)
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := Object()
		for _, k := range keys {
			child, err := fromNative(val[k], depth+1)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj.Set(k, child)
		}
		return obj, nil
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Func:
		return nil, &UnsupportedValueError{Category: "function"}
	case reflect.Chan:
		return nil, &UnsupportedValueError{Category: "channel"}
	}
	return nil, &UnsupportedValueError{Category: fmt.Sprintf("%T", v)}
}
