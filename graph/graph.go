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

// Package graph holds the social graph that the local differentially private
// estimators run on, together with its partition into public and private
// nodes.
//
// A Graph is undirected and simple, identifies nodes by int64, and is
// immutable once built: every accessor is safe for concurrent use.
package graph

import (
	"errors"
	"fmt"
	"sort"

	log "github.com/golang/glog"
	"github.com/google/differential-privacy/graphldp/checks"
	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// ErrNodeNotFound is returned when a node is queried that is not part of the
// graph.
var ErrNodeNotFound = errors.New("node not found")

// Edge is an undirected edge between U and V.
type Edge struct {
	U, V int64
}

// Options contains the options necessary to build a Graph.
type Options struct {
	// Nodes are added to the graph even if no edge is incident to them.
	Nodes []int64
	// PublicFraction is the fraction of nodes, in [0, 1], whose local values
	// are released without noise. Defaults to 0.
	PublicFraction float64
	// PublicStrategy selects which nodes are public. Defaults to Random.
	PublicStrategy PublicStrategy
	// Seed drives the random public strategies. If 0, a secure random seed
	// is used.
	Seed uint64
}

// Graph is an immutable undirected simple graph with a public/private node
// partition.
type Graph struct {
	g        *simple.UndirectedGraph
	nodes    []int64 // sorted ascending
	numEdges int

	public         map[int64]bool
	publicFraction float64
	publicStrategy PublicStrategy
}

// Build returns the graph made of edges (and opt.Nodes) and selects its
// public nodes. Self-loops are dropped and repeated pairs are collapsed.
func Build(edges []Edge, opt *Options) (*Graph, error) {
	if opt == nil {
		opt = &Options{}
	}
	if err := checks.CheckPublicFraction(opt.PublicFraction); err != nil {
		return nil, err
	}
	if err := opt.PublicStrategy.check(); err != nil {
		return nil, err
	}

	g := simple.NewUndirectedGraph()
	for _, id := range opt.Nodes {
		addNode(g, id)
	}
	selfLoops := 0
	for _, e := range edges {
		addNode(g, e.U)
		addNode(g, e.V)
		if e.U == e.V {
			selfLoops++
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(e.U), T: simple.Node(e.V)})
	}
	if selfLoops > 0 {
		log.Warningf("Build: dropped %d self-loops", selfLoops)
	}

	gr := &Graph{
		g:              g,
		nodes:          sortedIDs(g.Nodes()),
		numEdges:       countEdges(g),
		publicFraction: opt.PublicFraction,
		publicStrategy: opt.PublicStrategy,
	}
	public, err := selectPublic(gr, opt.PublicFraction, opt.PublicStrategy, opt.Seed)
	if err != nil {
		return nil, err
	}
	gr.public = public
	return gr, nil
}

func addNode(g *simple.UndirectedGraph, id int64) {
	if g.Node(id) == nil {
		g.AddNode(simple.Node(id))
	}
}

func countEdges(g *simple.UndirectedGraph) int {
	n := 0
	for it := g.Edges(); it.Next(); {
		n++
	}
	return n
}

func sortedIDs(it gonum.Nodes) []int64 {
	ids := make([]int64, 0, max(it.Len(), 0))
	for it.Next() {
		ids = append(ids, it.Node().ID())
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the number of undirected edges.
func (g *Graph) NumEdges() int {
	return g.numEdges
}

// Nodes returns the node identifiers in ascending order. The caller must not
// modify the returned slice.
func (g *Graph) Nodes() []int64 {
	return g.nodes
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id int64) bool {
	return g.g.Node(id) != nil
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v int64) bool {
	return g.g.HasEdgeBetween(u, v)
}

// Neighbors returns the neighbours of id in ascending order.
func (g *Graph) Neighbors(id int64) ([]int64, error) {
	if !g.HasNode(id) {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	return sortedIDs(g.g.From(id)), nil
}

// Degree returns the number of neighbours of id.
func (g *Graph) Degree(id int64) (int, error) {
	if !g.HasNode(id) {
		return 0, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	return g.g.From(id).Len(), nil
}

// Edges returns every edge once, with U < V, ordered by (U, V).
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.numEdges)
	for _, u := range g.nodes {
		for _, v := range sortedIDs(g.g.From(u)) {
			if u < v {
				edges = append(edges, Edge{U: u, V: v})
			}
		}
	}
	return edges
}

// Undirected returns a read-only gonum view of the graph.
func (g *Graph) Undirected() gonum.Undirected {
	return g.g
}

// IsPublic reports whether id is a public node.
func (g *Graph) IsPublic(id int64) bool {
	return g.public[id]
}

// PublicNodes returns the public nodes in ascending order.
func (g *Graph) PublicNodes() []int64 {
	ids := make([]int64, 0, len(g.public))
	for id := range g.public {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// PublicFraction returns the fraction the public set was selected with.
func (g *Graph) PublicFraction() float64 {
	return g.publicFraction
}

// PublicStrategy returns the strategy the public set was selected with.
func (g *Graph) PublicStrategy() PublicStrategy {
	return g.publicStrategy
}

// Induced returns the subgraph induced by nodes, with a public set selected
// afresh according to opt. opt.Nodes is ignored. Nodes absent from g are
// reported as ErrNodeNotFound.
func (g *Graph) Induced(nodes []int64, opt *Options) (*Graph, error) {
	keep := make(map[int64]bool, len(nodes))
	for _, id := range nodes {
		if !g.HasNode(id) {
			return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
		}
		keep[id] = true
	}
	var edges []Edge
	for _, e := range g.Edges() {
		if keep[e.U] && keep[e.V] {
			edges = append(edges, e)
		}
	}
	sub := Options{}
	if opt != nil {
		sub = *opt
	}
	sub.Nodes = nodes
	return Build(edges, &sub)
}
