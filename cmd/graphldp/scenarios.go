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

package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	log "github.com/golang/glog"
	"github.com/google/differential-privacy/graphldp/graph"
	"github.com/google/differential-privacy/graphldp/ldpagg"
	"github.com/google/differential-privacy/graphldp/noise"
	"github.com/google/differential-privacy/graphldp/rand"
	"github.com/google/differential-privacy/graphldp/visibility"
)

const (
	edgeCountScenarioID       = "EdgeCount"
	degreeHistogramScenarioID = "DegreeHistogram"
	triangleClippedScenarioID = "TriangleCount_Clipped"
	triangleSmoothScenarioID  = "TriangleCount_Smooth"
	kStarClippedScenarioID    = "KStarCount_Clipped"
	kStarSmoothScenarioID     = "KStarCount_Smooth"
)

// runSeedStream identifies the stream deriving one seed per estimate from
// the configured seed.
const runSeedStream = 1

func scenarioIDs() []string {
	return []string{
		edgeCountScenarioID,
		degreeHistogramScenarioID,
		triangleClippedScenarioID,
		triangleSmoothScenarioID,
		kStarClippedScenarioID,
		kStarSmoothScenarioID,
	}
}

// Scenario is one statistic estimated by the tool. Both methods return one
// value per output row, in the same order.
type Scenario interface {
	metrics() []string
	getNonPrivateResults(g *graph.Graph) ([]float64, error)
	getPrivateResults(g *graph.Graph, p visibility.Policy, spec *ldpagg.PrivacySpec) (values []float64, sensitivity float64, err error)
}

// newScenario returns the scenario with the given ID.
func newScenario(id string, k, maxDegree int) (Scenario, error) {
	switch id {
	case edgeCountScenarioID:
		return edgeCountScenario{}, nil
	case degreeHistogramScenarioID:
		return degreeHistogramScenario{maxDegree: maxDegree}, nil
	case triangleClippedScenarioID:
		return triangleScenario{maxDegree: maxDegree, mode: ldpagg.Clipped}, nil
	case triangleSmoothScenarioID:
		return triangleScenario{maxDegree: maxDegree, mode: ldpagg.Smooth}, nil
	case kStarClippedScenarioID:
		return kStarScenario{k: k, maxDegree: maxDegree, mode: ldpagg.Clipped}, nil
	case kStarSmoothScenarioID:
		return kStarScenario{k: k, maxDegree: maxDegree, mode: ldpagg.Smooth}, nil
	}
	return nil, fmt.Errorf("there is no scenario with id = %q", id)
}

type edgeCountScenario struct{}

func (edgeCountScenario) metrics() []string { return []string{"EdgeCount"} }

func (edgeCountScenario) getNonPrivateResults(g *graph.Graph) ([]float64, error) {
	return []float64{float64(ldpagg.ExactEdgeCount(g))}, nil
}

func (edgeCountScenario) getPrivateResults(g *graph.Graph, p visibility.Policy, spec *ldpagg.PrivacySpec) ([]float64, float64, error) {
	est, err := ldpagg.EdgeCount(g, p, spec)
	return []float64{est.Value}, est.Sensitivity, err
}

type degreeHistogramScenario struct {
	maxDegree int
}

func (sc degreeHistogramScenario) bound() int {
	if sc.maxDegree == 0 {
		return ldpagg.DefaultMaxDegree
	}
	return sc.maxDegree
}

func (sc degreeHistogramScenario) metrics() []string {
	out := make([]string, sc.bound()+1)
	for i := range out {
		out[i] = fmt.Sprintf("DegreeHistogram[%d]", i)
	}
	return out
}

func (sc degreeHistogramScenario) getNonPrivateResults(g *graph.Graph) ([]float64, error) {
	h, err := ldpagg.ExactDegreeHistogram(g, sc.maxDegree)
	return toFloats(h), err
}

func (sc degreeHistogramScenario) getPrivateResults(g *graph.Graph, p visibility.Policy, spec *ldpagg.PrivacySpec) ([]float64, float64, error) {
	h, err := ldpagg.DegreeHistogram(g, p, spec, &ldpagg.HistogramOptions{MaxDegree: sc.maxDegree})
	return toFloats(h.Buckets), h.Sensitivity, err
}

type triangleScenario struct {
	maxDegree int
	mode      ldpagg.Mode
}

func (sc triangleScenario) metrics() []string {
	return []string{"TriangleCount_" + modeSuffix(sc.mode)}
}

func (triangleScenario) getNonPrivateResults(g *graph.Graph) ([]float64, error) {
	n, err := ldpagg.ExactTriangleCount(g)
	return []float64{float64(n)}, err
}

func (sc triangleScenario) getPrivateResults(g *graph.Graph, p visibility.Policy, spec *ldpagg.PrivacySpec) ([]float64, float64, error) {
	est, err := ldpagg.TriangleCount(g, p, spec, &ldpagg.TriangleOptions{MaxDegree: sc.maxDegree, Mode: sc.mode})
	return []float64{est.Value}, est.Sensitivity, err
}

type kStarScenario struct {
	k, maxDegree int
	mode         ldpagg.Mode
}

func (sc kStarScenario) metrics() []string {
	return []string{fmt.Sprintf("%d-StarCount_%s", sc.k, modeSuffix(sc.mode))}
}

func (sc kStarScenario) getNonPrivateResults(g *graph.Graph) ([]float64, error) {
	n, err := ldpagg.ExactKStarCount(g, sc.k)
	return []float64{n}, err
}

func (sc kStarScenario) getPrivateResults(g *graph.Graph, p visibility.Policy, spec *ldpagg.PrivacySpec) ([]float64, float64, error) {
	est, err := ldpagg.KStarCount(g, p, spec, &ldpagg.KStarOptions{K: sc.k, MaxDegree: sc.maxDegree, Mode: sc.mode})
	return []float64{est.Value}, est.Sensitivity, err
}

func modeSuffix(m ldpagg.Mode) string {
	s := m.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// relativeError returns |estimate - truth| / truth, or 0 when truth is 0.
func relativeError(estimate, truth float64) float64 {
	if truth == 0 {
		return 0
	}
	return math.Abs(estimate-truth) / math.Abs(truth)
}

func toFloats(xs []int64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}

// result is one row of the output.
type result struct {
	Graph       string
	Epsilon     float64
	Metric      string
	TrueValue   float64
	Estimate    float64
	RelError    float64
	Sensitivity float64
}

// loadGraph reads the input edge list and, if asked to, samples it.
func loadGraph(cfg *runConfig) (*graph.Graph, error) {
	edges, err := graph.LoadEdgeList(cfg.InputFile)
	if err != nil {
		return nil, err
	}
	strategy, err := graph.ParsePublicStrategy(cfg.PublicStrategy)
	if err != nil {
		return nil, err
	}
	g, err := graph.Build(edges, &graph.Options{
		PublicFraction: cfg.PublicFraction,
		PublicStrategy: strategy,
		Seed:           cfg.Seed,
	})
	if err != nil {
		return nil, err
	}
	log.Infof("Loaded %q: %d nodes, %d edges, %d public", cfg.InputFile, g.NumNodes(), g.NumEdges(), len(g.PublicNodes()))
	if cfg.SampleSize == 0 {
		return g, nil
	}
	if g, err = graph.SampleBFS(g, cfg.SampleSize, cfg.Seed); err != nil {
		return nil, err
	}
	log.Infof("Sampled %d nodes, %d edges, %d public", g.NumNodes(), g.NumEdges(), len(g.PublicNodes()))
	return g, nil
}

// runScenarios estimates every configured scenario at every ε and returns
// the private results next to the true values.
func runScenarios(cfg *runConfig, testMode ldpagg.TestMode) ([]result, error) {
	g, err := loadGraph(cfg)
	if err != nil {
		return nil, err
	}
	policy, err := visibility.Parse(cfg.Policy)
	if err != nil {
		return nil, err
	}
	kind, err := noise.ParseKind(cfg.Noise)
	if err != nil {
		return nil, err
	}
	var seeds *rand.Stream
	if cfg.Seed != 0 {
		seeds = rand.NewStream(cfg.Seed, runSeedStream)
	}
	name := strings.TrimSuffix(filepath.Base(cfg.InputFile), filepath.Ext(cfg.InputFile))

	var results []result
	for _, id := range cfg.Scenarios {
		sc, err := newScenario(id, cfg.K, cfg.MaxDegree)
		if err != nil {
			return nil, err
		}
		truth, err := sc.getNonPrivateResults(g)
		if err != nil {
			return nil, fmt.Errorf("couldn't compute the true value of %s: %w", id, err)
		}
		for _, eps := range cfg.Epsilons {
			spec := &ldpagg.PrivacySpec{
				Epsilon:  eps,
				Noise:    noise.ToNoise(kind),
				Workers:  cfg.Workers,
				TestMode: testMode,
			}
			// Distinct runs must not share noise.
			if seeds != nil {
				spec.Seed = seeds.Uint64() | 1
			}
			estimates, sensitivity, err := sc.getPrivateResults(g, policy, spec)
			if err != nil {
				return nil, fmt.Errorf("couldn't estimate %s with ε = %g: %w", id, eps, err)
			}
			for i, metric := range sc.metrics() {
				results = append(results, result{
					Graph:       name,
					Epsilon:     eps,
					Metric:      metric,
					TrueValue:   truth[i],
					Estimate:    estimates[i],
					RelError:    relativeError(estimates[i], truth[i]),
					Sensitivity: sensitivity,
				})
			}
			log.V(1).Infof("%s with ε = %g done", id, eps)
		}
	}
	return results, nil
}
