package kernel_test

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-nmr/kernel"
)

func ExampleKernel_ContourerGLList() {
	k := kernel.New()
	data := [][]float32{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	}

	buf, err := k.ContourerGLList([]any{data}, []float32{0.5}, []float32{},
		[]float32{1, 0, 0, 1}, []float32{0, 0, 1, 1}, 0)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(buf.NumVertices, buf.NumIndices, buf.Indices)
	// Output:
	// 4 6 [0 1 1 2 2 3]
}

func ExampleWithoutFitBackend() {
	k := kernel.New(kernel.WithoutFitBackend())
	_, err := k.FitPeaks([][]float32{{0, 1, 0}, {1, 2, 1}, {0, 1, 0}}, [][]int32{{0, 0}, {2, 2}}, [][]float32{{1, 1}}, 0)
	fmt.Println(errors.Is(err, kernel.ErrNotImplemented))
	// Output:
	// true
}
