package contour_test

import (
	"fmt"

	"github.com/cwbudde/algo-nmr/contour"
	"github.com/cwbudde/algo-nmr/field"
)

func ExampleCalculateContours() {
	data, _ := field.FromValues([][]float32{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	})

	result, err := contour.CalculateContours(data, []float32{0.5, 2})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(len(result[0]), result[0][0].NumPoints())
	fmt.Println(result.NumVertices())
	// Output:
	// 1 4
	// [4 0]
}

func ExampleCheckLevels() {
	fmt.Println(contour.CheckLevels([]float32{1, 2, 4}))
	fmt.Println(contour.CheckLevels([]float32{4, 2, 3}))
	// Output:
	// <nil>
	// contour: levels not monotonic: levels initially decreasing but later increase
}
