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

// Package ldpagg estimates graph statistics under local differential
// privacy.
//
// Every estimator follows the same pattern. Each node extracts its LocalView
// under a visibility policy, computes its own local value from that view,
// and, if it is private, perturbs the value with noise calibrated to its
// sensitivity before releasing it. The released values are then summed and
// the statistic's correction constant is applied: edges are counted at both
// endpoints and triangles at all three vertices.
//
// Public nodes release their true, unclipped local value and consume no
// privacy budget.
//
// Two sensitivity modes exist for k-star and triangle counting. Clipped
// bounds each private node's degree by MaxDegree and uses the resulting
// global sensitivity. Smooth uses the instance-specific sensitivity of each
// node's actual view; its estimates report the average sensitivity over all
// nodes as a diagnostic.
package ldpagg

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/google/differential-privacy/graphldp/checks"
	"github.com/google/differential-privacy/graphldp/noise"
	"github.com/google/differential-privacy/graphldp/rand"
)

// DefaultMaxDegree is the degree bound D_max used when none is given.
const DefaultMaxDegree = 50

// TestMode is an enum representing the test modes available to the
// estimators. Test modes must never be used on real data.
type TestMode int

const (
	// TestModeDisabled indicates that test mode is disabled. Default.
	TestModeDisabled TestMode = iota
	// TestModeWithoutNoise is the test mode where no noise is added, but
	// private degrees are still clipped.
	TestModeWithoutNoise
	// TestModeWithoutClipping is the test mode where no noise is added and no
	// degree clipping is done.
	TestModeWithoutClipping
)

func (tm TestMode) isEnabled() bool {
	return tm != TestModeDisabled
}

func (tm TestMode) check() error {
	switch tm {
	case TestModeDisabled, TestModeWithoutNoise, TestModeWithoutClipping:
		return nil
	}
	return checks.Unrecognised("TestMode", int(tm))
}

// PrivacySpec contains the parameters shared by every estimator.
type PrivacySpec struct {
	Epsilon float64     // Privacy parameter ε spent by each private node. Required.
	Noise   noise.Noise // Mechanism used to perturb private values. Defaults to Laplace noise.
	// Seed from which every node's random stream is derived. Runs with the
	// same non-zero seed release identical values. Defaults to a seed read
	// from a cryptographically secure source.
	Seed    uint64
	Workers int // Number of goroutines computing local values. Defaults to GOMAXPROCS.
	// TestMode disables noise for tests. Defaults to TestModeDisabled.
	TestMode TestMode
}

// resolved is a PrivacySpec with its defaults filled in.
type resolved struct {
	epsilon  float64
	noise    noise.Noise
	seed     uint64
	workers  int
	testMode TestMode
}

func (spec *PrivacySpec) resolve() (*resolved, error) {
	if spec == nil {
		spec = &PrivacySpec{}
	}
	if err := checks.CheckEpsilonVeryStrict(spec.Epsilon); err != nil {
		return nil, err
	}
	if err := spec.TestMode.check(); err != nil {
		return nil, err
	}
	n := spec.Noise
	if n == nil {
		n = noise.Laplace()
	}
	workers := spec.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if err := checks.CheckWorkers(workers); err != nil {
		return nil, err
	}
	seed := spec.Seed
	if seed == 0 {
		seed = rand.SecureSeed()
	}
	return &resolved{
		epsilon:  spec.Epsilon,
		noise:    n,
		seed:     seed,
		workers:  workers,
		testMode: spec.TestMode,
	}, nil
}

// Mode selects how the sensitivity of a private node is calibrated.
type Mode int

const (
	// Clipped clips private degrees to MaxDegree and uses the global
	// sensitivity that clipping guarantees. Default.
	Clipped Mode = iota
	// Smooth uses each node's instance-specific sensitivity, computed from
	// its actual view, without clipping.
	Smooth
)

func (m Mode) String() string {
	switch m {
	case Clipped:
		return "clipped"
	case Smooth:
		return "smooth"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) check() error {
	if m != Clipped && m != Smooth {
		return checks.Unrecognised("Mode", int(m))
	}
	return nil
}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clipped", "global":
		return Clipped, nil
	case "smooth", "instance", "instance_specific", "instance-specific":
		return Smooth, nil
	}
	return 0, checks.Unrecognised("Mode", s)
}

// Estimate is the result of a scalar estimator.
type Estimate struct {
	Value float64
	// Sensitivity is the global sensitivity for Clipped estimates and the
	// average per-node sensitivity for Smooth ones. It is 0 for an empty
	// graph.
	Sensitivity float64
}

// Histogram is the result of the degree histogram estimator.
type Histogram struct {
	// Buckets[i] counts the nodes whose released degree lies in [i, i+1).
	// The last bucket is closed on both sides.
	Buckets     []int64
	Sensitivity float64
}

// KStarOptions contains the options of KStarCount.
type KStarOptions struct {
	K         int  // Number of leaves in a star. Required, must be at least 1.
	MaxDegree int  // Degree bound D_max applied to private nodes in Clipped mode. Defaults to DefaultMaxDegree.
	Mode      Mode // Sensitivity mode. Defaults to Clipped.
}

// TriangleOptions contains the options of TriangleCount.
type TriangleOptions struct {
	MaxDegree int  // Number of neighbours a private node keeps in Clipped mode. Defaults to DefaultMaxDegree.
	Mode      Mode // Sensitivity mode. Defaults to Clipped.
}

// HistogramOptions contains the options of DegreeHistogram.
type HistogramOptions struct {
	MaxDegree int // Largest bucket; larger degrees are clamped to it. Defaults to DefaultMaxDegree.
}

func maxDegreeOrDefault(d int) (int, error) {
	if d == 0 {
		return DefaultMaxDegree, nil
	}
	if err := checks.CheckMaxDegree(d); err != nil {
		return 0, err
	}
	return d, nil
}
