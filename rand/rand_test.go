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

package rand

import (
	"math"
	mathrand "math/rand/v2"
	"testing"
)

var _ mathrand.Source = (*Stream)(nil)

func TestStreamIsReproducible(t *testing.T) {
	a, b := ForNode(42, 7), ForNode(42, 7)
	for i := 0; i < 100; i++ {
		if x, y := a.Uint64(), b.Uint64(); x != y {
			t.Fatalf("draw %d: streams with the same seed and node differ: %d != %d", i, x, y)
		}
	}
}

func TestStreamsAreDistinct(t *testing.T) {
	for _, tc := range []struct {
		desc string
		a, b *Stream
	}{
		{"adjacent nodes", ForNode(42, 1), ForNode(42, 2)},
		{"adjacent seeds", ForNode(1, 5), ForNode(2, 5)},
		{"negative node", ForNode(42, -1), ForNode(42, 1)},
	} {
		same := 0
		for i := 0; i < 64; i++ {
			if tc.a.Uint64() == tc.b.Uint64() {
				same++
			}
		}
		if same > 0 {
			t.Errorf("%s: %d of 64 draws collided, want 0", tc.desc, same)
		}
	}
}

func TestUniformRange(t *testing.T) {
	s := NewStream(3, 0)
	const n = 100000
	sum := 0.0
	for i := 0; i < n; i++ {
		u := s.Uniform()
		if u <= 0 || u > 1 {
			t.Fatalf("Uniform() = %f, want a value in (0, 1]", u)
		}
		sum += u
	}
	// The mean of n uniform samples has standard deviation sqrt(1/12n).
	if mean := sum / n; math.Abs(mean-0.5) > 5*math.Sqrt(1.0/(12*n)) {
		t.Errorf("mean of Uniform() = %f, want approximately 0.5", mean)
	}
}

func TestSignIsBalanced(t *testing.T) {
	s := NewStream(5, 9)
	const n = 100000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += s.Sign()
	}
	if math.Abs(sum/n) > 5/math.Sqrt(n) {
		t.Errorf("mean of Sign() = %f, want approximately 0", sum/n)
	}
}

func TestI63n(t *testing.T) {
	s := NewStream(11, 11)
	counts := make([]int, 4)
	for i := 0; i < 40000; i++ {
		v := s.I63n(4)
		if v < 0 || v >= 4 {
			t.Fatalf("I63n(4) = %d, want a value in [0, 4)", v)
		}
		counts[v]++
	}
	for v, c := range counts {
		if c < 9000 || c > 11000 {
			t.Errorf("I63n(4) returned %d %d times out of 40000, want about 10000", v, c)
		}
	}
}

func TestShufflePermutes(t *testing.T) {
	s := NewStream(1, 1)
	xs := []int{0, 1, 2, 3, 4, 5, 6, 7}
	s.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
	seen := make(map[int]bool)
	for _, x := range xs {
		seen[x] = true
	}
	if len(seen) != 8 {
		t.Errorf("Shuffle lost elements: got %v", xs)
	}
}
