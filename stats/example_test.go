package stats_test

import (
	"fmt"

	"github.com/cwbudde/algo-nmr/field"
	"github.com/cwbudde/algo-nmr/stats"
)

func ExampleCalculate() {
	f, _ := field.New([]float32{1, -1, 1, -1}, 2, 2)
	s := stats.Calculate(f)
	fmt.Printf("rms=%.1f max=%.0f at %v\n", s.RMS, s.Max, s.MaxPos)

	// Output:
	// rms=1.0 max=1 at [0 0]
}
