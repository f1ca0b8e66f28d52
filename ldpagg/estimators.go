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
	"fmt"
	"math"

	log "github.com/golang/glog"
	"github.com/google/differential-privacy/graphldp/checks"
	"github.com/google/differential-privacy/graphldp/graph"
	"github.com/google/differential-privacy/graphldp/visibility"
)

// Aggregate correction constants: how many nodes report each occurrence.
const (
	edgeMultiplicity     = 2
	triangleMultiplicity = 3
)

// checkInputs validates the arguments shared by every estimator.
func checkInputs(g *graph.Graph, p visibility.Policy, spec *PrivacySpec) (*resolved, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil graph", checks.ErrInvalidParameter)
	}
	if err := visibility.Check(p); err != nil {
		return nil, err
	}
	return spec.resolve()
}

// EdgeCount estimates the number of edges of g. Each node releases its
// degree in its view with sensitivity 1, and the sum is halved.
func EdgeCount(g *graph.Graph, p visibility.Policy, spec *PrivacySpec) (Estimate, error) {
	rs, err := checkInputs(g, p, spec)
	if err != nil {
		return Estimate{}, err
	}
	if g.NumNodes() == 0 {
		return Estimate{}, nil
	}
	agg, err := aggregate(g, p, rs, degree, globalSensitivity(EdgeCountSensitivity()))
	if err != nil {
		return Estimate{}, err
	}
	est := Estimate{Value: agg.sum() / edgeMultiplicity, Sensitivity: EdgeCountSensitivity()}
	logSummary("EdgeCount", g, p, rs, "clipped", est.Sensitivity)
	return est, nil
}

// DegreeHistogram estimates the degree distribution of g. Each node releases
// its view degree clamped to MaxDegree with sensitivity 1, and the released
// values are binned into MaxDegree+1 unit buckets after noising. Released
// values outside [0, MaxDegree+1] fall in no bucket.
func DegreeHistogram(g *graph.Graph, p visibility.Policy, spec *PrivacySpec, opt *HistogramOptions) (Histogram, error) {
	if opt == nil {
		opt = &HistogramOptions{}
	}
	maxDegree, err := maxDegreeOrDefault(opt.MaxDegree)
	if err != nil {
		return Histogram{}, err
	}
	rs, err := checkInputs(g, p, spec)
	if err != nil {
		return Histogram{}, err
	}
	h := Histogram{Buckets: make([]int64, maxDegree+1)}
	if g.NumNodes() == 0 {
		return h, nil
	}
	agg, err := aggregate(g, p, rs, clampedDegree(maxDegree), globalSensitivity(HistogramSensitivity()))
	if err != nil {
		return Histogram{}, err
	}
	var dropped int
	for _, c := range agg.contributions {
		if i, ok := bucket(c.value, maxDegree); ok {
			h.Buckets[i]++
		} else {
			dropped++
		}
	}
	if dropped > 0 {
		log.V(1).Infof("DegreeHistogram: %d released degrees fell outside [0, %d]", dropped, maxDegree+1)
	}
	h.Sensitivity = HistogramSensitivity()
	logSummary("DegreeHistogram", g, p, rs, "clipped", h.Sensitivity)
	return h, nil
}

// bucket returns the index of the unit bucket holding x among the buckets
// [0, 1), ..., [maxDegree, maxDegree+1].
func bucket(x float64, maxDegree int) (int, bool) {
	top := float64(maxDegree + 1)
	if math.IsNaN(x) || x < 0 || x > top {
		return 0, false
	}
	if x == top {
		return maxDegree, true
	}
	return int(math.Floor(x)), true
}

// KStarCount estimates the number of k-stars of g. Each node releases the
// number of k-stars centred at it, so the sum needs no correction.
func KStarCount(g *graph.Graph, p visibility.Policy, spec *PrivacySpec, opt *KStarOptions) (Estimate, error) {
	if opt == nil {
		opt = &KStarOptions{}
	}
	if err := checks.CheckK(opt.K); err != nil {
		return Estimate{}, err
	}
	if err := opt.Mode.check(); err != nil {
		return Estimate{}, err
	}
	maxDegree, err := maxDegreeOrDefault(opt.MaxDegree)
	if err != nil {
		return Estimate{}, err
	}
	if opt.Mode == Clipped {
		if err := checks.CheckClippingBound(maxDegree, opt.K); err != nil {
			return Estimate{}, err
		}
	}
	rs, err := checkInputs(g, p, spec)
	if err != nil {
		return Estimate{}, err
	}
	if g.NumNodes() == 0 {
		return Estimate{}, nil
	}
	sens := kStarSmoothSensitivity(opt.K)
	if opt.Mode == Clipped {
		sens = globalSensitivity(kStarGlobalSensitivity(opt.K, maxDegree))
	}
	agg, err := aggregate(g, p, rs, kStars(opt.K, maxDegree, opt.Mode), sens)
	if err != nil {
		return Estimate{}, err
	}
	est := Estimate{Value: agg.sum(), Sensitivity: agg.averageSensitivity()}
	logSummary(fmt.Sprintf("KStarCount(k=%d)", opt.K), g, p, rs, opt.Mode.String(), est.Sensitivity)
	return est, nil
}

// TriangleCount estimates the number of triangles of g. Each node releases
// the number of adjacent pairs among its neighbours in its view, and the sum
// is divided by 3.
func TriangleCount(g *graph.Graph, p visibility.Policy, spec *PrivacySpec, opt *TriangleOptions) (Estimate, error) {
	if opt == nil {
		opt = &TriangleOptions{}
	}
	if err := opt.Mode.check(); err != nil {
		return Estimate{}, err
	}
	maxDegree, err := maxDegreeOrDefault(opt.MaxDegree)
	if err != nil {
		return Estimate{}, err
	}
	rs, err := checkInputs(g, p, spec)
	if err != nil {
		return Estimate{}, err
	}
	if g.NumNodes() == 0 {
		return Estimate{}, nil
	}
	sens := Sensitivity(triangleSmoothSensitivity)
	if opt.Mode == Clipped {
		sens = globalSensitivity(float64(maxDegree))
	}
	agg, err := aggregate(g, p, rs, triangles(maxDegree, opt.Mode), sens)
	if err != nil {
		return Estimate{}, err
	}
	est := Estimate{Value: agg.sum() / triangleMultiplicity, Sensitivity: agg.averageSensitivity()}
	logSummary("TriangleCount", g, p, rs, opt.Mode.String(), est.Sensitivity)
	return est, nil
}

// EdgeCountSensitivity returns the global sensitivity of a node's released
// degree.
func EdgeCountSensitivity() float64 { return 1 }

// HistogramSensitivity returns the global sensitivity of a node's released
// clamped degree.
func HistogramSensitivity() float64 { return 1 }

// KStarSensitivity returns the global sensitivity C(maxDegree-1, k-1) of a
// private node's k-star count once its degree is clipped to maxDegree. A
// maxDegree of 0 selects DefaultMaxDegree.
func KStarSensitivity(k, maxDegree int) (float64, error) {
	if err := checks.CheckK(k); err != nil {
		return 0, err
	}
	maxDegree, err := maxDegreeOrDefault(maxDegree)
	if err != nil {
		return 0, err
	}
	return kStarGlobalSensitivity(k, maxDegree), nil
}

func kStarGlobalSensitivity(k, maxDegree int) float64 {
	return binomial(maxDegree-1, k-1)
}

// TriangleSensitivity returns the global sensitivity of a private node's
// triangle count once it keeps at most maxDegree neighbours. A maxDegree of
// 0 selects DefaultMaxDegree.
func TriangleSensitivity(maxDegree int) (float64, error) {
	maxDegree, err := maxDegreeOrDefault(maxDegree)
	if err != nil {
		return 0, err
	}
	return float64(maxDegree), nil
}
