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

// Package rand provides independent random streams for the local
// differential privacy estimators.
//
// Every node of a graph draws its noise from its own Stream, derived from a
// run seed and the node identifier. Streams never share state, so the
// per-node computations can run concurrently without correlating or
// repeating noise across nodes, and a fixed run seed reproduces a run.
package rand

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math"
	"math/bits"
	mathrand "math/rand/v2"

	log "github.com/golang/glog"
)

// SecureSeed returns a seed read from the operating system's
// cryptographically secure random source.
func SecureSeed() uint64 {
	var r [8]uint8
	if _, err := cryptorand.Read(r[:]); err != nil {
		log.Fatalf("out of randomness, should never happen: %v", err)
	}
	return binary.LittleEndian.Uint64(r[:])
}

// Stream is a deterministic source of randomness for a single consumer.
// It implements math/rand/v2.Source, so it can drive gonum samplers.
//
// Not thread-safe.
type Stream struct {
	src    *mathrand.PCG
	bitBuf uint8
	bitPos int8
}

// NewStream returns the stream identified by id under seed. Distinct ids
// yield independent streams.
func NewStream(seed, id uint64) *Stream {
	return &Stream{
		src:    mathrand.NewPCG(splitmix64(seed), splitmix64(seed^splitmix64(id))),
		bitPos: math.MaxInt8,
	}
}

// ForNode returns the stream used by node under seed.
func ForNode(seed uint64, node int64) *Stream {
	return NewStream(seed, uint64(node))
}

// splitmix64 scrambles x so that nearby seeds and ids map to unrelated
// generator states.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// Uint64 returns a uniformly random uint64.
func (s *Stream) Uint64() uint64 {
	return s.src.Uint64()
}

// U8 returns a uniformly random uint8.
func (s *Stream) U8() uint8 {
	return uint8(s.src.Uint64() >> 56)
}

// Sign returns +1.0 or -1.0 with equal probabilities.
func (s *Stream) Sign() float64 {
	if s.Boolean() {
		return 1.0
	}
	return -1.0
}

// Boolean returns true or false with equal probability.
func (s *Stream) Boolean() bool {
	if s.bitPos > 7 { // Out of random bits.
		s.bitBuf = s.U8()
		s.bitPos = 0
	}
	res := s.bitBuf&(1<<s.bitPos) > 0
	s.bitPos++
	return res
}

// I63n returns an integer from the set {0,...,n-1} uniformly at random.
// The value of n must be positive.
func (s *Stream) I63n(n int64) int64 {
	largestMultipleOfN := (math.MaxInt64 / n) * n
	for {
		// Draw random 64 bit sequence and set sign bit to 0.
		positiveRandomInteger := int64(s.Uint64()) & 0x7fffffffffffffff
		if positiveRandomInteger < largestMultipleOfN {
			return positiveRandomInteger % n
		}
	}
}

// Uniform returns a float64 from the interval (0,1] such that each float
// in the interval is returned with positive probability and the resulting
// distribution simulates a continuous uniform distribution on (0, 1].
func (s *Stream) Uniform() float64 {
	i := s.Uint64() % (1 << 53)
	r := (1 + float64(i)/(1<<53)) / math.Pow(2, s.Geometric())
	// We want to avoid returning 0, since we're taking the log of the output.
	if r == 0 {
		return 1
	}
	return r
}

// Geometric returns a float64 that counts the number of Bernoulli trials until
// the first success for a success probability of 0.5.
func (s *Stream) Geometric() float64 {
	// 1 plus the number of leading zeros from an infinite stream of random bits
	// follows the desired geometric distribution.
	b := 1
	var r uint8
	for r == 0 {
		r = s.U8()
		b += bits.LeadingZeros8(r)
	}
	return float64(b)
}

// Shuffle pseudo-randomizes the order of n elements using swap.
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := int(s.I63n(int64(i + 1)))
		swap(i, j)
	}
}
