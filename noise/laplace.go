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

package noise

import (
	"math"

	"github.com/google/differential-privacy/graphldp/rand"
)

// granularityParam determines the resolution of the numerical noise relative
// to the sensitivity and epsilon. Larger values give finer noise but increase
// the chance of overflows in the geometric sampler. The probability of an
// overflow is below 2⁻¹⁰⁰⁰ as long as it is at most 2⁴⁰ and epsilon is at
// least 2⁻⁵⁰.
//
// This parameter should be a power of 2.
var granularityParam = math.Exp2(40)

type laplace struct{}

// Laplace returns a Noise instance that adds zero-mean Laplace noise with
// scale sensitivity/ε to its input.
//
// Samples are drawn with a geometric sampling mechanism on a grid of
// power-of-two granularity, which is robust against privacy leaks due to
// artifacts of floating point arithmetic. The grid is far finer than the
// noise scale, so the output behaves as a continuous real number.
func Laplace() Noise {
	return laplace{}
}

// AddNoise adds Laplace noise to x. A zero sensitivity returns x unchanged.
func (laplace) AddNoise(r *rand.Stream, x, sensitivity, epsilon float64) (float64, error) {
	if err := checkArgs(sensitivity, epsilon); err != nil {
		return 0, err
	}
	if sensitivity == 0 {
		return x, nil
	}
	return addLaplace(r, x, epsilon, sensitivity), nil
}

func (laplace) String() string {
	return "Laplace Noise"
}

// addLaplace adds Laplace noise scaled to the given epsilon and sensitivity
// to x.
func addLaplace(r *rand.Stream, x, epsilon, sensitivity float64) float64 {
	granularity := ceilPowerOfTwo((sensitivity / epsilon) / granularityParam)
	sample := twoSidedGeometric(r, granularity*epsilon/(sensitivity+granularity))
	return roundToMultipleOfPowerOfTwo(x, granularity) + float64(sample)*granularity
}

// geometric draws a sample drawn from a geometric distribution with parameter
//
//	p = 1 - e^-λ.
//
// More precisely, it returns the number of Bernoulli trials until the first
// success where the success probability is p = 1 - e^-λ. The returned sample
// is truncated to the max int64 value.
func geometric(r *rand.Stream, lambda float64) int64 {
	if r.Uniform() > -1.0*math.Expm1(-1.0*lambda*math.MaxInt64) {
		return math.MaxInt64
	}

	// Binary search for the sample in (left, right]. Each iteration keeps
	// the half that contains the sample with the matching probability.
	var left int64 = 0
	var right int64 = math.MaxInt64

	for left+1 < right {
		// Split the probability mass of the interval approximately evenly.
		mid := left - int64(math.Floor((math.Log(0.5)+math.Log1p(math.Exp(lambda*float64(left-right))))/lambda))
		if mid <= left {
			mid = left + 1
		} else if mid >= right {
			mid = right - 1
		}

		// q = Pr[X ≤ mid | left < X ≤ right], approximately one half.
		q := math.Expm1(lambda*float64(left-mid)) / math.Expm1(lambda*float64(left-right))
		if r.Uniform() <= q {
			right = mid
		} else {
			left = mid
		}
	}
	return right
}

// twoSidedGeometric draws a sample from a geometric distribution that is
// mirrored at 0.
func twoSidedGeometric(r *rand.Stream, lambda float64) int64 {
	var sample int64 = 0
	var sign int64 = -1
	// Keep a sample of 0 only if the sign is positive. Otherwise, the
	// probability of 0 would be twice as high as it should be.
	for sample == 0 && sign == -1 {
		sample = geometric(r, lambda) - 1
		sign = int64(r.Sign())
	}
	return sample * sign
}

// ceilPowerOfTwo returns the smallest power of 2 larger or equal to x. The
// value of x must be a finite positive number not greater than 2^1023.
func ceilPowerOfTwo(x float64) float64 {
	if x <= 0.0 || math.IsInf(x, 0) || math.IsNaN(x) {
		return math.NaN()
	}
	// IEEE 754 layout: 1 sign bit, 11 exponent bits, 52 mantissa bits.
	const exponentMask uint64 = 0x7ff0000000000000
	const mantissaMask uint64 = 0x000fffffffffffff

	b := math.Float64bits(x)
	if b&mantissaMask == 0 {
		return x
	}
	exponentBits := b & exponentMask
	if exponentBits >= math.Float64bits(math.MaxFloat64)&exponentMask {
		return math.NaN()
	}
	return math.Float64frombits(exponentBits + 0x0010000000000000)
}

// roundToMultipleOfPowerOfTwo returns the multiple of granularity closest
// to x. granularity must be an exact power of 2.
func roundToMultipleOfPowerOfTwo(x, granularity float64) float64 {
	return math.Round(x/granularity) * granularity
}
