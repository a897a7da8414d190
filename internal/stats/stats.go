// Package stats computes summary statistics over integer samples.
package stats

import "math"

type Summary struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Max  float64 `json:"max"`
}

// Summarize returns mean, population standard deviation and maximum of
// the samples. An empty slice yields a zero Summary.
func Summarize(data []int) Summary {
	if len(data) == 0 {
		return Summary{}
	}

	total := 0
	for _, v := range data {
		total += v
	}
	mean := float64(total) / float64(len(data))

	varianceSum := 0.0
	for _, v := range data {
		d := float64(v) - mean
		varianceSum += d * d
	}
	std := math.Sqrt(varianceSum / float64(len(data)))

	max := data[0]
	for _, v := range data {
		if v > max {
			max = v
		}
	}

	return Summary{Mean: mean, Std: std, Max: float64(max)}
}
