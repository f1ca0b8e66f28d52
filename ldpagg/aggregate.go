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
	"context"

	log "github.com/golang/glog"
	"github.com/google/differential-privacy/graphldp/graph"
	"github.com/google/differential-privacy/graphldp/rand"
	"github.com/google/differential-privacy/graphldp/visibility"
	"golang.org/x/sync/errgroup"
)

// Statistic computes an observer's true local value from its view. clip is
// false for public nodes, which are never clipped.
type Statistic func(view *visibility.LocalView, clip bool) float64

// Sensitivity returns the sensitivity used to noise an observer's local
// value.
type Sensitivity func(view *visibility.LocalView) float64

// globalSensitivity returns a Sensitivity that ignores the view.
func globalSensitivity(s float64) Sensitivity {
	return func(*visibility.LocalView) float64 { return s }
}

// contribution is what a single node releases.
type contribution struct {
	value       float64 // noisy for private nodes, exact for public ones
	sensitivity float64
}

// aggregation is the outcome of the map step over every node of a graph.
type aggregation struct {
	contributions []contribution
}

// sum returns the sum of the released values.
func (a *aggregation) sum() float64 {
	var s float64
	for _, c := range a.contributions {
		s += c.value
	}
	return s
}

// averageSensitivity returns the mean sensitivity over all nodes, or 0 if
// there are none.
func (a *aggregation) averageSensitivity() float64 {
	if len(a.contributions) == 0 {
		return 0
	}
	var s float64
	for _, c := range a.contributions {
		s += c.sensitivity
	}
	return s / float64(len(a.contributions))
}

// aggregate runs the map step of an estimator: every node of g, isolated
// nodes included, computes and releases its contribution. Nodes are split
// into contiguous blocks, one per worker, and each node draws its noise from
// its own stream, so the released values do not depend on the number of
// workers. Contributions are stored by node index and reduced sequentially
// by the caller.
func aggregate(g *graph.Graph, p visibility.Policy, spec *resolved, stat Statistic, sens Sensitivity) (*aggregation, error) {
	nodes := g.Nodes()
	out := make([]contribution, len(nodes))
	workers := min(spec.workers, len(nodes))

	eg, ctx := errgroup.WithContext(context.Background())
	for w := range workers {
		lo, hi := w*len(nodes)/workers, (w+1)*len(nodes)/workers
		eg.Go(func() error {
			for i := lo; i < hi; i++ {
				if ctx.Err() != nil {
					return nil
				}
				c, err := contribute(g, p, spec, stat, sens, nodes[i])
				if err != nil {
					return err
				}
				out[i] = c
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &aggregation{contributions: out}, nil
}

// contribute computes the value node releases.
func contribute(g *graph.Graph, p visibility.Policy, spec *resolved, stat Statistic, sens Sensitivity, node int64) (contribution, error) {
	view, err := p.Extract(g, node)
	if err != nil {
		return contribution{}, err
	}
	private := !g.IsPublic(node)
	clip := private && spec.testMode != TestModeWithoutClipping
	c := contribution{
		value:       stat(view, clip),
		sensitivity: sens(view),
	}
	if !private || spec.testMode.isEnabled() {
		return c, nil
	}
	c.value, err = spec.noise.AddNoise(rand.ForNode(spec.seed, node), c.value, c.sensitivity, spec.epsilon)
	return c, err
}

// logSummary logs a one-line description of a finished estimate.
func logSummary(name string, g *graph.Graph, p visibility.Policy, spec *resolved, mode string, sensitivity float64) {
	if log.V(1) {
		log.Infof("%s: %d nodes (%d public), policy %v, mode %s, ε=%g, %d workers, sensitivity %g",
			name, g.NumNodes(), len(g.PublicNodes()), p, mode, spec.epsilon, spec.workers, sensitivity)
	}
}
