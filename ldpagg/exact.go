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
	"github.com/google/differential-privacy/graphldp/checks"
	"github.com/google/differential-privacy/graphldp/graph"
)

// The Exact functions compute the true statistics of the full graph. They
// release raw data and provide no privacy; they are meant for measuring the
// error of the estimators.

// ExactEdgeCount returns the number of edges of g.
func ExactEdgeCount(g *graph.Graph) int {
	return g.NumEdges()
}

// ExactDegreeHistogram returns the number of nodes of each degree, with
// degrees above maxDegree counted in the last bucket. A maxDegree of 0
// selects DefaultMaxDegree.
func ExactDegreeHistogram(g *graph.Graph, maxDegree int) ([]int64, error) {
	maxDegree, err := maxDegreeOrDefault(maxDegree)
	if err != nil {
		return nil, err
	}
	h := make([]int64, maxDegree+1)
	for _, id := range g.Nodes() {
		d, err := g.Degree(id)
		if err != nil {
			return nil, err
		}
		h[min(d, maxDegree)]++
	}
	return h, nil
}

// ExactKStarCount returns the number of k-stars of g, the sum of C(d, k)
// over all node degrees d.
func ExactKStarCount(g *graph.Graph, k int) (float64, error) {
	if err := checks.CheckK(k); err != nil {
		return 0, err
	}
	var total float64
	for _, id := range g.Nodes() {
		d, err := g.Degree(id)
		if err != nil {
			return 0, err
		}
		total += binomial(d, k)
	}
	return total, nil
}

// ExactTriangleCount returns the number of triangles of g. Each triangle
// u < v < w is found once, from its lowest edge (u, v).
func ExactTriangleCount(g *graph.Graph) (int, error) {
	var n int
	for _, e := range g.Edges() {
		nbrs, err := g.Neighbors(e.V)
		if err != nil {
			return 0, err
		}
		for _, w := range nbrs {
			if w > e.V && g.HasEdge(e.U, w) {
				n++
			}
		}
	}
	return n, nil
}
