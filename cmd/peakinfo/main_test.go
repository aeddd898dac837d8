package main

import (
	"testing"

	"github.com/cwbudde/algo-nmr/field"
	"github.com/cwbudde/algo-nmr/peak"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want peak.Method
	}{
		{"gaussian", peak.MethodGaussian},
		{" Lorentzian ", peak.MethodLorentzian},
		{"1", peak.MethodLorentzian},
	}
	for _, tt := range tests {
		got, err := parseMethod(tt.in)
		if err != nil || peak.Method(got) != tt.want {
			t.Fatalf("parseMethod(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := parseMethod("voigt"); err == nil {
		t.Fatal("expected error")
	}
}

func TestFitRegionClips(t *testing.T) {
	data, err := field.Zeros(10, 20)
	if err != nil {
		t.Fatal(err)
	}
	got := fitRegion(data, []int{2, 18}, 4)
	want := [][]int32{{0, 14}, {6, 19}}
	for r := range want {
		for d := range want[r] {
			if got[r][d] != want[r][d] {
				t.Fatalf("fitRegion = %v, want %v", got, want)
			}
		}
	}
}

func TestPair(t *testing.T) {
	if got := pair([]float64{1, 2.5}); got != "(1.000, 2.500)" {
		t.Fatalf("pair = %q", got)
	}
}

func TestPickThreshold(t *testing.T) {
	tests := []struct {
		explicit, sigmas, noise, absMax float64
		want                            float64
	}{
		{explicit: 3, sigmas: 10, noise: 0.1, absMax: 40, want: 3},
		{explicit: 0, sigmas: 10, noise: 0.25, absMax: 40, want: 2.5},
		{explicit: 0, sigmas: 10, noise: 0, absMax: 40, want: 2},
	}
	for _, tt := range tests {
		if got := pickThreshold(tt.explicit, tt.sigmas, tt.noise, tt.absMax); got != tt.want {
			t.Fatalf("pickThreshold(%v, %v, %v, %v) = %v, want %v",
				tt.explicit, tt.sigmas, tt.noise, tt.absMax, got, tt.want)
		}
	}
}
