package field

import (
	"errors"
	"testing"
)

func TestFromValuesNested(t *testing.T) {
	f, err := FromValues([][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}
	if f.Rank() != 2 || f.Dim(0) != 2 || f.Dim(1) != 3 {
		t.Fatalf("shape = %v, want [2 3]", f.Shape())
	}
	if f.At(1, 0) != 4 {
		t.Fatalf("At(1,0) = %v, want 4", f.At(1, 0))
	}
}

func TestFromValuesKinds(t *testing.T) {
	inputs := []any{
		[]float32{1, 2},
		[]float64{1, 2},
		[]int{1, 2},
		[]int32{1, 2},
		[]uint8{1, 2},
		[2]int64{1, 2},
	}

	for _, in := range inputs {
		f, err := FromValues(in)
		if err != nil {
			t.Fatalf("FromValues(%T): %v", in, err)
		}
		if f.Len() != 2 || f.At(1) != 2 {
			t.Fatalf("FromValues(%T) = %v", in, f.Data())
		}
	}
}

func TestFromValuesPassesFieldThrough(t *testing.T) {
	f, err := Zeros(3)
	if err != nil {
		t.Fatal(err)
	}
	got, err := FromValues(f)
	if err != nil || got != f {
		t.Fatalf("FromValues(*Field) = %p, %v", got, err)
	}
}

func TestFromValuesErrors(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want error
	}{
		{name: "nil", in: nil, want: ErrInputType},
		{name: "scalar", in: 3.0, want: ErrInputType},
		{name: "strings", in: []string{"a"}, want: ErrInputType},
		{name: "bools", in: [][]bool{{true}}, want: ErrInputType},
		{name: "nil field", in: (*Field)(nil), want: ErrInputType},
		{name: "ragged", in: [][]float32{{1, 2}, {3}}, want: ErrInputShape},
		{name: "empty outer", in: [][]float32{}, want: ErrInputShape},
		{name: "empty", in: []float32{}, want: ErrInputShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromValues(tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestVector(t *testing.T) {
	got, err := Vector([]float64{0.1, 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1] != float32(0.5) {
		t.Fatalf("Vector = %v", got)
	}

	empty, err := Vector([]float32{})
	if err != nil || len(empty) != 0 {
		t.Fatalf("Vector(empty) = %v, %v", empty, err)
	}

	src := []float32{1, 2}
	cp, err := Vector(src)
	if err != nil {
		t.Fatal(err)
	}
	cp[0] = 9
	if src[0] != 1 {
		t.Fatal("Vector must copy its input")
	}
}

func TestVectorErrors(t *testing.T) {
	if _, err := Vector([][]float32{{1}}); !errors.Is(err, ErrInputShape) {
		t.Fatalf("rank-2 levels: err = %v, want ErrInputShape", err)
	}
	if _, err := Vector("0.5"); !errors.Is(err, ErrInputType) {
		t.Fatalf("string levels: err = %v, want ErrInputType", err)
	}
	if _, err := Vector(nil); !errors.Is(err, ErrInputType) {
		t.Fatalf("nil levels: err = %v, want ErrInputType", err)
	}
	f, err := Zeros(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Vector(f); !errors.Is(err, ErrInputShape) {
		t.Fatalf("rank-2 field: err = %v, want ErrInputShape", err)
	}
}
