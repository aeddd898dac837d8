package testutil

import (
	"math"
	"testing"
)

func TestRelErr(t *testing.T) {
	if got := RelErr(105, 100); math.Abs(got-0.05) > 1e-12 {
		t.Fatalf("RelErr(105, 100) = %v, want 0.05", got)
	}
	if got := RelErr(-0.25, 0); got != 0.25 {
		t.Fatalf("RelErr(-0.25, 0) = %v, want 0.25", got)
	}
}
