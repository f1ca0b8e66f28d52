//
// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package stattestutils provides basic statistics over repeated noisy
// estimates.
//
// This package is not optimized for performance or speed and is only intended
// to be used in tests.
package stattestutils

import "math"

// Draw runs f n times and collects its results. It stops at the first error.
func Draw(n int, f func(i int) (float64, error)) ([]float64, error) {
	out := make([]float64, 0, n)
	for i := range n {
		x, err := f(i)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

// SampleMean returns the average of values, or 0 for an empty slice.
func SampleMean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / math.Max(1, float64(len(values)))
}

// SampleVariance returns the mean squared distance of values to their mean.
func SampleVariance(values []float64) float64 {
	mean := SampleMean(values)
	var sumOfSquares float64
	for _, v := range values {
		sumOfSquares += (v - mean) * (v - mean)
	}
	return sumOfSquares / math.Max(1, float64(len(values)))
}

// MeanAbsoluteError returns the average of |v - truth| over values.
func MeanAbsoluteError(values []float64, truth float64) float64 {
	var sum float64
	for _, v := range values {
		sum += math.Abs(v - truth)
	}
	return sum / math.Max(1, float64(len(values)))
}
