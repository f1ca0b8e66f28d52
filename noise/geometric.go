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

type geometricNoise struct{}

// Geometric returns a Noise instance for integer-valued releases: it draws
// the same Laplace sample as Laplace() and rounds the noisy value to the
// nearest integer.
func Geometric() Noise {
	return geometricNoise{}
}

// AddNoise adds Laplace noise to x and rounds the result.
func (geometricNoise) AddNoise(r *rand.Stream, x, sensitivity, epsilon float64) (float64, error) {
	noisy, err := laplace{}.AddNoise(r, x, sensitivity, epsilon)
	if err != nil {
		return 0, err
	}
	return math.Round(noisy), nil
}

func (geometricNoise) String() string {
	return "Geometric Noise"
}
