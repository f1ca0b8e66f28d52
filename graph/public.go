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

package graph

import (
	"math"
	"sort"
	"strings"

	log "github.com/golang/glog"
	"github.com/google/differential-privacy/graphldp/checks"
	"github.com/google/differential-privacy/graphldp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// PublicStrategy is an enum type. Its values are the supported ways of
// choosing the public nodes of a graph.
type PublicStrategy int

// Public node selection strategies.
const (
	// Random samples public nodes uniformly without replacement.
	Random PublicStrategy = iota
	// DegreeTopK makes the highest-degree nodes public. Ties are broken by
	// ascending node identifier.
	DegreeTopK
	// DegreeProportional samples public nodes without replacement with
	// probability proportional to their degree.
	DegreeProportional
)

func (s PublicStrategy) String() string {
	switch s {
	case Random:
		return "random"
	case DegreeTopK:
		return "degree_top_k"
	case DegreeProportional:
		return "degree_proportional"
	}
	return "unrecognised"
}

func (s PublicStrategy) check() error {
	switch s {
	case Random, DegreeTopK, DegreeProportional:
		return nil
	}
	return checks.Unrecognised("PublicStrategy", int(s))
}

// ParsePublicStrategy converts a strategy name into a PublicStrategy.
func ParsePublicStrategy(s string) (PublicStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random":
		return Random, nil
	case "degree_top_k", "topk", "top_k":
		return DegreeTopK, nil
	case "degree_proportional", "degree_probabilistic", "proportional":
		return DegreeProportional, nil
	}
	return 0, checks.Unrecognised("PublicStrategy", s)
}

// publicSelectionStream identifies the random stream used for public node
// selection. Per-node noise streams use the node identifiers.
const publicSelectionStream = math.MaxUint64

// selectPublic chooses ⌊fraction × |nodes|⌋ public nodes of g.
func selectPublic(g *Graph, fraction float64, strategy PublicStrategy, seed uint64) (map[int64]bool, error) {
	n := g.NumNodes()
	numPublic := int(float64(n) * fraction)
	public := make(map[int64]bool, numPublic)
	if numPublic == 0 {
		if fraction > 0 {
			log.Warningf("PublicFraction %f of %d nodes rounds down to 0 public nodes", fraction, n)
		}
		return public, nil
	}
	if seed == 0 {
		seed = rand.SecureSeed()
	}
	src := rand.NewStream(seed, publicSelectionStream)

	switch strategy {
	case Random:
		idxs := make([]int, numPublic)
		sampleuv.WithoutReplacement(idxs, n, src)
		for _, i := range idxs {
			public[g.nodes[i]] = true
		}
	case DegreeTopK:
		byDegree := append([]int64(nil), g.nodes...)
		sort.SliceStable(byDegree, func(i, j int) bool {
			return g.degree(byDegree[i]) > g.degree(byDegree[j])
		})
		for _, id := range byDegree[:numPublic] {
			public[id] = true
		}
	case DegreeProportional:
		weights := make([]float64, n)
		for i, id := range g.nodes {
			weights[i] = float64(g.degree(id))
		}
		w := sampleuv.NewWeighted(weights, src)
		for len(public) < numPublic {
			i, ok := w.Take()
			if !ok {
				break
			}
			public[g.nodes[i]] = true
		}
		// Only zero-degree nodes are left: fill the remainder uniformly.
		if missing := numPublic - len(public); missing > 0 {
			var rest []int64
			for _, id := range g.nodes {
				if !public[id] {
					rest = append(rest, id)
				}
			}
			idxs := make([]int, missing)
			sampleuv.WithoutReplacement(idxs, len(rest), src)
			for _, i := range idxs {
				public[rest[i]] = true
			}
		}
	default:
		return nil, checks.Unrecognised("PublicStrategy", int(strategy))
	}
	return public, nil
}

func (g *Graph) degree(id int64) int {
	return g.g.From(id).Len()
}
