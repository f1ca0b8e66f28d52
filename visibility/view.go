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

package visibility

import (
	"sort"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// LocalView is the part of the graph one observer is permitted to use. It
// always contains the observer, even when the observer is isolated.
//
// A LocalView is read-only. Views of the Global policy share the immutable
// graph store; all other views own a freshly built subgraph.
type LocalView struct {
	observer int64
	g        gonum.Undirected
	numEdges int
}

// newView starts a view owning an empty subgraph that holds only the
// observer.
func newView(observer int64) (*LocalView, *simple.UndirectedGraph) {
	sub := simple.NewUndirectedGraph()
	sub.AddNode(simple.Node(observer))
	return &LocalView{observer: observer, g: sub}, sub
}

// addEdge adds the undirected edge (a, b) to sub if it is not there yet.
func (v *LocalView) addEdge(sub *simple.UndirectedGraph, a, b int64) {
	if a == b || sub.HasEdgeBetween(a, b) {
		return
	}
	sub.SetEdge(simple.Edge{F: simple.Node(a), T: simple.Node(b)})
	v.numEdges++
}

// Observer returns the node the view belongs to.
func (v *LocalView) Observer() int64 {
	return v.observer
}

// NumEdges returns the number of edges in the view.
func (v *LocalView) NumEdges() int {
	return v.numEdges
}

// HasNode reports whether id is visible.
func (v *LocalView) HasNode(id int64) bool {
	return v.g.Node(id) != nil
}

// HasEdge reports whether the edge (a, b) is visible.
func (v *LocalView) HasEdge(a, b int64) bool {
	return v.g.HasEdgeBetween(a, b)
}

// Nodes returns the visible nodes in ascending order.
func (v *LocalView) Nodes() []int64 {
	return ids(v.g.Nodes())
}

// Neighbors returns the visible neighbours of id in ascending order. It
// returns nil if id is not visible.
func (v *LocalView) Neighbors(id int64) []int64 {
	return ids(v.g.From(id))
}

// Degree returns the number of visible neighbours of id.
func (v *LocalView) Degree(id int64) int {
	n := 0
	for it := v.g.From(id); it.Next(); {
		n++
	}
	return n
}

func ids(it gonum.Nodes) []int64 {
	var out []int64
	for it.Next() {
		out = append(out, it.Node().ID())
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
