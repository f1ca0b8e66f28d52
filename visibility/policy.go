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

// Package visibility defines what part of a graph a node may observe when it
// computes its own contribution, and materializes that part as a LocalView.
//
// Three policies exist and the set is closed:
//
//   - Global: the whole graph. This is the no-privacy baseline.
//   - OneHop: a depth-2 edge expansion rooted at the observer. The visible
//     edges are those between the observer and its neighbours, and those
//     between each neighbour and the neighbour's own neighbours. Nodes at
//     distance 2 are visible, but edges between two of them are not.
//   - TwoHop: the subgraph induced by every node at shortest-path distance
//     at most 2 from the observer. Unlike OneHop it also contains the edges
//     among distance-2 nodes.
//
// The observer's own degree and its closed neighbour pairs are identical
// under OneHop and TwoHop; the policies differ only in edges farther out.
package visibility

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/differential-privacy/graphldp/graph"
)

// ErrUnknownPolicy is returned for a policy that is not one of OneHop,
// TwoHop or Global.
var ErrUnknownPolicy = errors.New("unknown visibility policy")

// Policy decides which nodes and edges an observer may see.
type Policy interface {
	// Extract returns the LocalView of observer in g. It fails with
	// graph.ErrNodeNotFound if observer is not a node of g.
	Extract(g *graph.Graph, observer int64) (*LocalView, error)
	String() string

	// sealed keeps the set of policies closed.
	sealed()
}

type oneHop struct{}
type twoHop struct{}
type global struct{}

// OneHop returns the policy exposing the observer's edges and its
// neighbours' edges.
func OneHop() Policy { return oneHop{} }

// TwoHop returns the policy exposing the subgraph induced by the ball of
// radius 2 around the observer.
func TwoHop() Policy { return twoHop{} }

// Global returns the policy exposing the whole graph.
func Global() Policy { return global{} }

func (oneHop) sealed() {}
func (twoHop) sealed() {}
func (global) sealed() {}

func (oneHop) String() string { return "1-hop" }
func (twoHop) String() string { return "2-hop" }
func (global) String() string { return "global" }

// Parse converts a policy name into a Policy.
func Parse(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1-hop", "1hop", "one-hop", "one_hop", "onehop":
		return OneHop(), nil
	case "2-hop", "2hop", "two-hop", "two_hop", "twohop":
		return TwoHop(), nil
	case "global":
		return Global(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Check returns ErrUnknownPolicy if p is nil.
func Check(p Policy) error {
	if p == nil {
		return fmt.Errorf("%w: nil policy", ErrUnknownPolicy)
	}
	return nil
}

// Extract returns the LocalView of observer under p, failing with
// ErrUnknownPolicy if p is nil.
func Extract(p Policy, g *graph.Graph, observer int64) (*LocalView, error) {
	if err := Check(p); err != nil {
		return nil, err
	}
	return p.Extract(g, observer)
}

// Visible reports whether the edge (u, v) is visible to observer under p.
// It is answered from the same LocalView the estimators use, so the single
// edge test and the extractor can never disagree.
func Visible(p Policy, g *graph.Graph, observer, u, v int64) (bool, error) {
	view, err := Extract(p, g, observer)
	if err != nil {
		return false, err
	}
	return view.HasEdge(u, v), nil
}

func (oneHop) Extract(g *graph.Graph, observer int64) (*LocalView, error) {
	nbrs, err := g.Neighbors(observer)
	if err != nil {
		return nil, err
	}
	view, sub := newView(observer)
	for _, n := range nbrs {
		view.addEdge(sub, observer, n)
		second, err := g.Neighbors(n)
		if err != nil {
			return nil, err
		}
		for _, nn := range second {
			view.addEdge(sub, n, nn)
		}
	}
	return view, nil
}

func (twoHop) Extract(g *graph.Graph, observer int64) (*LocalView, error) {
	ball, err := Ball(g, observer, 2)
	if err != nil {
		return nil, err
	}
	view, sub := newView(observer)
	for u := range ball {
		nbrs, err := g.Neighbors(u)
		if err != nil {
			return nil, err
		}
		for _, v := range nbrs {
			if u < v && ball[v] {
				view.addEdge(sub, u, v)
			}
		}
	}
	return view, nil
}

func (global) Extract(g *graph.Graph, observer int64) (*LocalView, error) {
	if !g.HasNode(observer) {
		return nil, fmt.Errorf("%w: %d", graph.ErrNodeNotFound, observer)
	}
	return &LocalView{observer: observer, g: g.Undirected(), numEdges: g.NumEdges()}, nil
}

// Ball returns every node at shortest-path distance at most radius from
// center, found by expanding breadth-first frontiers.
func Ball(g *graph.Graph, center int64, radius int) (map[int64]bool, error) {
	if !g.HasNode(center) {
		return nil, fmt.Errorf("%w: %d", graph.ErrNodeNotFound, center)
	}
	seen := map[int64]bool{center: true}
	frontier := []int64{center}
	for d := 0; d < radius && len(frontier) > 0; d++ {
		var next []int64
		for _, u := range frontier {
			nbrs, err := g.Neighbors(u)
			if err != nil {
				return nil, err
			}
			for _, v := range nbrs {
				if !seen[v] {
					seen[v] = true
					next = append(next, v)
				}
			}
		}
		frontier = next
	}
	return seen, nil
}
