package stats

import (
	"math"
	"testing"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Mean != 0.0 || s.Std != 0.0 || s.Max != 0.0 {
		t.Fatalf("expected zero summary for empty input, got %+v", s)
	}
}

func TestSummarize(t *testing.T) {
	cases := []struct {
		name string
		data []int
		mean float64
		std  float64
		max  float64
	}{
		{"one to five", []int{1, 2, 3, 4, 5}, 3.0, math.Sqrt(2.0), 5.0},
		{"single value", []int{7}, 7.0, 0.0, 7.0},
		{"constant", []int{4, 4, 4, 4}, 4.0, 0.0, 4.0},
		{"negatives", []int{-2, 2}, 0.0, 2.0, 2.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Summarize(tc.data)
			if !almostEqual(s.Mean, tc.mean) {
				t.Errorf("mean = %v, want %v", s.Mean, tc.mean)
			}
			if !almostEqual(s.Std, tc.std) {
				t.Errorf("std = %v, want %v", s.Std, tc.std)
			}
			if s.Max != tc.max {
				t.Errorf("max = %v, want %v", s.Max, tc.max)
			}
		})
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
