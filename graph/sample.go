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
	"github.com/google/differential-privacy/graphldp/checks"
	"github.com/google/differential-privacy/graphldp/rand"
)

// samplingStream identifies the random stream used by SampleBFS.
const samplingStream = publicSelectionStream - 1

// SampleBFS returns a connected sample of about size nodes: starting from a
// random node it expands a breadth-first frontier, visiting each node's
// neighbours in random order, until size nodes are kept or the start node's
// component is exhausted. The result is the induced subgraph; its public set
// is selected with the fraction and strategy of g.
func SampleBFS(g *Graph, size int, seed uint64) (*Graph, error) {
	if err := checks.CheckSampleSize(size); err != nil {
		return nil, err
	}
	if g.NumNodes() == 0 {
		return g, nil
	}
	if seed == 0 {
		seed = rand.SecureSeed()
	}
	src := rand.NewStream(seed, samplingStream)

	start := g.nodes[src.I63n(int64(g.NumNodes()))]
	kept := map[int64]bool{start: true}
	order := []int64{start}
	queue := []int64{start}
	for len(kept) < size && len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		nbrs, err := g.Neighbors(current)
		if err != nil {
			return nil, err
		}
		src.Shuffle(len(nbrs), func(i, j int) { nbrs[i], nbrs[j] = nbrs[j], nbrs[i] })
		for _, n := range nbrs {
			if kept[n] {
				continue
			}
			kept[n] = true
			order = append(order, n)
			queue = append(queue, n)
			if len(kept) >= size {
				break
			}
		}
	}
	return g.Induced(order, &Options{
		PublicFraction: g.publicFraction,
		PublicStrategy: g.publicStrategy,
		Seed:           seed,
	})
}
