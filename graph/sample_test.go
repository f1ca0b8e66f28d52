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
	"errors"
	"testing"

	"github.com/google/differential-privacy/graphldp/checks"
	"github.com/google/go-cmp/cmp"
)

// path returns the path 0 - 1 - ... - n-1.
func path(n int64) []Edge {
	var edges []Edge
	for i := int64(1); i < n; i++ {
		edges = append(edges, Edge{i - 1, i})
	}
	return edges
}

func TestSampleBFS(t *testing.T) {
	g := mustBuild(t, path(50), &Options{PublicFraction: 0.2, PublicStrategy: DegreeTopK})
	for _, size := range []int{1, 5, 20, 50} {
		sub, err := SampleBFS(g, size, 99)
		if err != nil {
			t.Fatalf("SampleBFS(%d): %v", size, err)
		}
		if got := sub.NumNodes(); got != size {
			t.Errorf("SampleBFS(%d) kept %d nodes", size, got)
		}
		// A BFS sample of a path is a contiguous sub-path.
		if got, want := sub.NumEdges(), size-1; got != want {
			t.Errorf("SampleBFS(%d) has %d edges, want %d", size, got, want)
		}
		if got, want := len(sub.PublicNodes()), int(float64(size)*0.2); got != want {
			t.Errorf("SampleBFS(%d) has %d public nodes, want %d", size, got, want)
		}
		if sub.PublicStrategy() != DegreeTopK || sub.PublicFraction() != 0.2 {
			t.Errorf("SampleBFS(%d) did not carry over the public selection parameters", size)
		}
	}
}

func TestSampleBFSStopsAtComponent(t *testing.T) {
	// Two disjoint triangles: a sample never leaves its start component.
	g := mustBuild(t, []Edge{{1, 2}, {2, 3}, {3, 1}, {4, 5}, {5, 6}, {6, 4}}, nil)
	sub, err := SampleBFS(g, 6, 5)
	if err != nil {
		t.Fatalf("SampleBFS: %v", err)
	}
	if got := sub.NumNodes(); got != 3 {
		t.Errorf("SampleBFS kept %d nodes, want 3", got)
	}
}

func TestSampleBFSIsReproducible(t *testing.T) {
	g := mustBuild(t, star(40), nil)
	a, err := SampleBFS(g, 10, 8)
	if err != nil {
		t.Fatalf("SampleBFS: %v", err)
	}
	b, err := SampleBFS(g, 10, 8)
	if err != nil {
		t.Fatalf("SampleBFS: %v", err)
	}
	if diff := cmp.Diff(a.Nodes(), b.Nodes()); diff != "" {
		t.Errorf("same seed sampled different nodes (-a +b):\n%s", diff)
	}
}

func TestSampleBFSInvalidSize(t *testing.T) {
	g := mustBuild(t, path(3), nil)
	if _, err := SampleBFS(g, 0, 1); !errors.Is(err, checks.ErrInvalidParameter) {
		t.Errorf("SampleBFS(0): got err %v, want ErrInvalidParameter", err)
	}
}
