package field

import (
	"fmt"
	"reflect"
)

// FromValues builds a Field from a numeric Go value: a *Field, a slice or
// array of any integer or floating-point type, or nested slices/arrays of
// those. Samples are converted to float32.
//
// Non-numeric input fails with ErrInputType; ragged nesting or an empty axis
// fails with ErrInputShape.
func FromValues(values any) (*Field, error) {
	if f, ok := values.(*Field); ok {
		if f == nil {
			return nil, fmt.Errorf("%w: nil field", ErrInputType)
		}
		return f, nil
	}

	v := reflect.ValueOf(values)
	if !v.IsValid() {
		return nil, fmt.Errorf("%w: nil input", ErrInputType)
	}

	elem, depth := leafType(v.Type())
	if depth == 0 {
		return nil, fmt.Errorf("%w: %T is not an array", ErrInputType, values)
	}
	if !isNumeric(elem.Kind()) {
		return nil, fmt.Errorf("%w: element type %s is not numeric", ErrInputType, elem)
	}

	shape := make([]int, 0, depth)
	for cur := v; len(shape) < depth; {
		shape = append(shape, cur.Len())
		if cur.Len() == 0 {
			break
		}
		cur = cur.Index(0)
	}
	if len(shape) < depth {
		return nil, fmt.Errorf("%w: empty axis in %T", ErrInputShape, values)
	}

	total := 1
	for _, n := range shape {
		total *= n
	}

	data := make([]float32, 0, total)
	if err := flatten(v, shape, 0, &data); err != nil {
		return nil, err
	}

	return New(data, shape...)
}

// Vector coerces a rank-1 numeric value (levels, colours) to []float32.
// Unlike FromValues an empty sequence is valid.
func Vector(values any) ([]float32, error) {
	switch vs := values.(type) {
	case []float32:
		return append([]float32(nil), vs...), nil
	case *Field:
		if vs == nil {
			return nil, fmt.Errorf("%w: nil field", ErrInputType)
		}
		if err := vs.RequireRank(1); err != nil {
			return nil, err
		}
		return append([]float32(nil), vs.data...), nil
	}

	v := reflect.ValueOf(values)
	if !v.IsValid() {
		return nil, fmt.Errorf("%w: nil input", ErrInputType)
	}

	elem, depth := leafType(v.Type())
	if depth == 0 {
		return nil, fmt.Errorf("%w: %T is not an array", ErrInputType, values)
	}
	if !isNumeric(elem.Kind()) {
		return nil, fmt.Errorf("%w: element type %s is not numeric", ErrInputType, elem)
	}
	if depth != 1 {
		return nil, fmt.Errorf("%w: need ndim 1, got %d", ErrInputShape, depth)
	}

	out := make([]float32, v.Len())
	for i := range out {
		out[i] = float32(numericValue(v.Index(i)))
	}
	return out, nil
}

func leafType(t reflect.Type) (reflect.Type, int) {
	depth := 0
	for t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		t = t.Elem()
		depth++
	}
	return t, depth
}

func flatten(v reflect.Value, shape []int, depth int, dst *[]float32) error {
	if v.Len() != shape[depth] {
		return fmt.Errorf("%w: ragged axis %d (%d vs %d)", ErrInputShape, depth, v.Len(), shape[depth])
	}

	if depth == len(shape)-1 {
		for i := range v.Len() {
			*dst = append(*dst, float32(numericValue(v.Index(i))))
		}
		return nil
	}

	for i := range v.Len() {
		if err := flatten(v.Index(i), shape, depth+1, dst); err != nil {
			return err
		}
	}
	return nil
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func numericValue(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	default:
		return float64(v.Uint())
	}
}
