package contour

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-nmr/field"
)

var (
	red  = Colour{1, 0, 0, 1}
	blue = Colour{0, 0, 1, 0.5}
)

func TestGLListPacksPositiveThenNegative(t *testing.T) {
	fields := []*field.Field{bump(t, 1), bump(t, -1)}

	buf, err := GLList(fields, []float32{0.5}, []float32{-0.5}, red, blue, false)
	if err != nil {
		t.Fatalf("GLList: %v", err)
	}

	if buf.NumVertices != 8 || buf.NumIndices != 12 {
		t.Fatalf("counts = %d vertices, %d indices; want 8, 12", buf.NumVertices, buf.NumIndices)
	}
	checkBufferInvariants(t, buf)

	want := []uint32{0, 1, 1, 2, 2, 3, 4, 5, 5, 6, 6, 7}
	for i, idx := range want {
		if buf.Indices[i] != idx {
			t.Fatalf("Indices = %v, want %v", buf.Indices, want)
		}
	}
	for v := range buf.NumVertices {
		got := Colour(buf.Colours[4*v : 4*v+4])
		wantColour := red
		if v >= 4 {
			wantColour = blue
		}
		if got != wantColour {
			t.Fatalf("vertex %d colour = %v, want %v", v, got, wantColour)
		}
	}
}

func TestGLListFlattenHasNoEffect(t *testing.T) {
	fields := []*field.Field{bump(t, 2)}
	a, err := GLList(fields, []float32{0.5, 1}, nil, red, blue, false)
	if err != nil {
		t.Fatal(err)
	}
	b, err := GLList(fields, []float32{0.5, 1}, nil, red, blue, true)
	if err != nil {
		t.Fatal(err)
	}
	if a.NumVertices != b.NumVertices || a.NumIndices != b.NumIndices {
		t.Fatalf("flatten changed output: %+v vs %+v", a, b)
	}
	checkBufferInvariants(t, a)
}

func TestGLListEmpty(t *testing.T) {
	buf, err := GLList([]*field.Field{bump(t, 1)}, nil, nil, red, blue, false)
	if err != nil {
		t.Fatalf("GLList: %v", err)
	}
	if buf.NumIndices != 0 || buf.NumVertices != 0 || len(buf.Vertices) != 0 {
		t.Fatalf("buffer = %+v, want empty", buf)
	}

	buf, err = GLList(nil, []float32{1}, nil, red, blue, false)
	if err != nil || buf.NumVertices != 0 {
		t.Fatalf("no fields: %+v, %v", buf, err)
	}
}

func TestGLListValidatesBeforeTracing(t *testing.T) {
	line, err := field.New([]float32{0, 1, 0}, 3)
	if err != nil {
		t.Fatal(err)
	}

	buf, err := GLList([]*field.Field{bump(t, 1), line}, []float32{0.5}, nil, red, blue, false)
	if !errors.Is(err, field.ErrInputShape) {
		t.Fatalf("err = %v, want ErrInputShape", err)
	}
	if buf.NumVertices != 0 || buf.Indices != nil {
		t.Fatalf("buffer = %+v, want empty on error", buf)
	}

	_, err = GLList([]*field.Field{bump(t, 1)}, []float32{0.5}, []float32{-0.1, -0.5, -0.2}, red, blue, false)
	if !errors.Is(err, ErrMonotonicity) {
		t.Fatalf("err = %v, want ErrMonotonicity", err)
	}
}

func checkBufferInvariants(t *testing.T, buf GLBuffer) {
	t.Helper()
	if len(buf.Indices) != buf.NumIndices || buf.NumIndices%2 != 0 {
		t.Fatalf("NumIndices = %d, len = %d", buf.NumIndices, len(buf.Indices))
	}
	if len(buf.Vertices) != 2*buf.NumVertices {
		t.Fatalf("len(Vertices) = %d, want %d", len(buf.Vertices), 2*buf.NumVertices)
	}
	if len(buf.Colours) != 4*buf.NumVertices {
		t.Fatalf("len(Colours) = %d, want %d", len(buf.Colours), 4*buf.NumVertices)
	}
	for i, idx := range buf.Indices {
		if int(idx) >= buf.NumVertices {
			t.Fatalf("index %d = %d out of range", i, idx)
		}
	}
}
