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

package ldpagg

import (
	"github.com/google/differential-privacy/graphldp/visibility"
	"gonum.org/v1/gonum/stat/combin"
)

// maxExactBinomial is the largest binomial coefficient computed in integer
// arithmetic. Larger ones do not fit a float64 mantissa anyway.
const maxExactBinomial = 1 << 53

// binomial returns C(n, k), or 0 when k < 0 or k > n.
func binomial(n, k int) float64 {
	if n < 0 || k < 0 || k > n {
		return 0
	}
	if approx := combin.GeneralizedBinomial(float64(n), float64(k)); approx >= maxExactBinomial {
		return approx
	}
	return float64(combin.Binomial(n, k))
}

// degree is the observer's degree within its view.
func degree(view *visibility.LocalView, _ bool) float64 {
	return float64(view.Degree(view.Observer()))
}

// clampedDegree returns a Statistic releasing the observer's degree capped
// at maxDegree. Histogram buckets need the cap on every node, public or not.
func clampedDegree(maxDegree int) Statistic {
	return func(view *visibility.LocalView, _ bool) float64 {
		return float64(min(view.Degree(view.Observer()), maxDegree))
	}
}

// kStars returns a Statistic counting the k-stars centred at the observer.
// Private degrees are clipped to maxDegree first when clipping is enabled.
func kStars(k, maxDegree int, mode Mode) Statistic {
	return func(view *visibility.LocalView, clip bool) float64 {
		d := view.Degree(view.Observer())
		if clip && mode == Clipped {
			d = min(d, maxDegree)
		}
		return binomial(d, k)
	}
}

// kStarSmoothSensitivity is C(d, k-1), the number of k-stars a single new
// edge adds at a centre of degree d, floored at 1.
func kStarSmoothSensitivity(k int) Sensitivity {
	return func(view *visibility.LocalView) float64 {
		return max(1, binomial(view.Degree(view.Observer()), k-1))
	}
}

// triangles returns a Statistic counting the pairs of the observer's
// neighbours that are adjacent in its view. When clipping, a private
// observer keeps only its first maxDegree neighbours in ascending ID order.
func triangles(maxDegree int, mode Mode) Statistic {
	return func(view *visibility.LocalView, clip bool) float64 {
		nbrs := view.Neighbors(view.Observer())
		if clip && mode == Clipped && len(nbrs) > maxDegree {
			nbrs = nbrs[:maxDegree]
		}
		var n int
		for i, u := range nbrs {
			for _, v := range nbrs[i+1:] {
				if view.HasEdge(u, v) {
					n++
				}
			}
		}
		return float64(n)
	}
}

// triangleSmoothSensitivity is the largest number of the observer's
// neighbours that any one neighbour is adjacent to in the view, floored at 1.
func triangleSmoothSensitivity(view *visibility.LocalView) float64 {
	nbrs := view.Neighbors(view.Observer())
	var most int
	for _, v := range nbrs {
		var common int
		for _, w := range nbrs {
			if view.HasEdge(v, w) {
				common++
			}
		}
		most = max(most, common)
	}
	return max(1, float64(most))
}
