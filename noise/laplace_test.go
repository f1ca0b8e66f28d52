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
	"sort"
	"testing"

	"github.com/google/differential-privacy/graphldp/rand"
	"github.com/google/differential-privacy/graphldp/stattestutils"
	"github.com/grd/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestLaplaceStatistics(t *testing.T) {
	const numberOfSamples = 125000
	for _, tc := range []struct {
		sensitivity, epsilon, mean, variance float64
	}{
		{
			sensitivity: 1.0,
			epsilon:     1.0,
			mean:        0.0,
			variance:    2.0,
		},
		{
			sensitivity: 1.0,
			epsilon:     ln3,
			mean:        0.0,
			variance:    2.0 / (ln3 * ln3),
		},
		{
			sensitivity: 1.0,
			epsilon:     ln3,
			mean:        45941223.02107,
			variance:    2.0 / (ln3 * ln3),
		},
		{
			sensitivity: 2.0,
			epsilon:     2.0 * ln3,
			mean:        0.0,
			variance:    2.0 / (ln3 * ln3),
		},
		{
			sensitivity: 49.0,
			epsilon:     2.0,
			mean:        5.0,
			variance:    2.0 * 24.5 * 24.5,
		},
	} {
		r := rand.NewStream(uint64(tc.sensitivity*1000), uint64(tc.epsilon*1000))
		noisedSamples := make(stat.Float64Slice, numberOfSamples)
		for i := 0; i < numberOfSamples; i++ {
			v, err := lap.AddNoise(r, tc.mean, tc.sensitivity, tc.epsilon)
			if err != nil {
				t.Fatalf("AddNoise: %v", err)
			}
			noisedSamples[i] = v
		}
		sampleMean, sampleVariance := stat.Mean(noisedSamples), stat.Variance(noisedSamples)
		// The sample mean is approximately Gaussian with standard deviation
		// sqrt(variance / numberOfSamples). The tolerance is its 99.9995%
		// quantile, so the test falsely rejects with a probability of 10⁻⁵.
		meanErrorTolerance := 4.41717 * math.Sqrt(tc.variance/float64(numberOfSamples))
		// The sample variance of Laplace samples is approximately Gaussian with
		// standard deviation sqrt(5) * variance / sqrt(numberOfSamples).
		varianceErrorTolerance := 4.41717 * math.Sqrt(5.0) * tc.variance / math.Sqrt(float64(numberOfSamples))

		if !nearEqual(sampleMean, tc.mean, meanErrorTolerance) {
			t.Errorf("got mean = %f, want %f (parameters %+v)", sampleMean, tc.mean, tc)
		}
		if !nearEqual(sampleVariance, tc.variance, varianceErrorTolerance) {
			t.Errorf("got variance = %f, want %f (parameters %+v)", sampleVariance, tc.variance, tc)
		}
	}
}

// TestLaplaceMatchesReferenceCDF compares the empirical distribution of the
// noise against gonum's Laplace distribution at a few quantiles.
func TestLaplaceMatchesReferenceCDF(t *testing.T) {
	const numberOfSamples = 50000
	const sensitivity, epsilon = 3.0, 0.5
	ref := distuv.Laplace{Mu: 0, Scale: Scale(sensitivity, epsilon)}
	r := rand.NewStream(17, 17)
	samples := make([]float64, numberOfSamples)
	for i := range samples {
		v, err := lap.AddNoise(r, 0, sensitivity, epsilon)
		if err != nil {
			t.Fatalf("AddNoise: %v", err)
		}
		samples[i] = v
	}
	sort.Float64s(samples)
	for _, p := range []float64{0.01, 0.1, 0.25, 0.5, 0.75, 0.9, 0.99} {
		x := ref.Quantile(p)
		empirical := float64(sort.SearchFloat64s(samples, x)) / numberOfSamples
		// The empirical CDF has standard deviation at most 0.5/sqrt(n) ≈ 0.0022.
		if !nearEqual(empirical, p, 0.012) {
			t.Errorf("empirical CDF at the %.2f quantile (%f) = %f, want %f", p, x, empirical, p)
		}
	}
}

func TestMeanAbsoluteErrorDecreasesWithEpsilon(t *testing.T) {
	const numberOfSamples = 40000
	const sensitivity = 5.0
	prev := math.Inf(1)
	for _, epsilon := range []float64{0.25, 0.5, 1, 2, 4} {
		r := rand.NewStream(23, uint64(epsilon*100))
		samples, err := stattestutils.Draw(numberOfSamples, func(int) (float64, error) {
			return lap.AddNoise(r, 100, sensitivity, epsilon)
		})
		if err != nil {
			t.Fatalf("AddNoise: %v", err)
		}
		mae := stattestutils.MeanAbsoluteError(samples, 100)
		// E|Laplace(b)| = b.
		if want := Scale(sensitivity, epsilon); !nearEqual(mae, want, 0.05*want) {
			t.Errorf("epsilon=%f: mean absolute error = %f, want %f", epsilon, mae, want)
		}
		if mae >= prev {
			t.Errorf("epsilon=%f: mean absolute error %f did not decrease from %f", epsilon, mae, prev)
		}
		prev = mae
	}
}

func TestLargeEpsilonIsNearlyExact(t *testing.T) {
	r := rand.NewStream(5, 5)
	for i := 0; i < 1000; i++ {
		v, err := lap.AddNoise(r, 7, 50, 1e12)
		if err != nil {
			t.Fatalf("AddNoise: %v", err)
		}
		if !nearEqual(v, 7, 1e-6) {
			t.Fatalf("AddNoise(7) with epsilon=1e12 = %f, want ≈ 7", v)
		}
	}
}
