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

// Package noise contains mechanisms that perturb a single node's local
// contribution before it is aggregated.
package noise

import (
	"strings"

	log "github.com/golang/glog"
	"github.com/google/differential-privacy/graphldp/checks"
	"github.com/google/differential-privacy/graphldp/rand"
)

// Kind is an enum type. Its values are the supported noise mechanisms.
type Kind int

// Noise mechanisms used to achieve local differential privacy.
const (
	LaplaceNoise Kind = iota
	GeometricNoise
	Unrecognised
)

func (k Kind) String() string {
	switch k {
	case LaplaceNoise:
		return "laplace"
	case GeometricNoise:
		return "geometric"
	}
	return "unrecognised"
}

// ParseKind converts a mechanism name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "laplace":
		return LaplaceNoise, nil
	case "geometric", "discrete":
		return GeometricNoise, nil
	}
	return Unrecognised, checks.Unrecognised("Noise", s)
}

// ToNoise converts a Kind into a Noise instance.
func ToNoise(k Kind) Noise {
	switch k {
	case LaplaceNoise:
		return Laplace()
	case GeometricNoise:
		return Geometric()
	case Unrecognised:
		log.Warningf("ToNoise: Unrecognised noise specified, returning nil")
	default:
		log.Warningf("ToNoise: unknown kind (%v) specified, returning nil", k)
	}
	return nil
}

// ToKind converts a Noise instance into a Kind.
func ToKind(n Noise) Kind {
	switch n {
	case Laplace():
		return LaplaceNoise
	case Geometric():
		return GeometricNoise
	case nil:
		log.Warningf("ToKind: nil noise specified, returning Unrecognised")
	default:
		log.Warningf("ToKind: unknown Noise (%v) specified, returning Unrecognised", n)
	}
	return Unrecognised
}

// Noise is an interface for primitives that add noise to a node's local
// value so that the released value is ε-differentially private with respect
// to the node's neighbourhood.
type Noise interface {
	// AddNoise adds noise to x calibrated to sensitivity and epsilon. All
	// randomness is drawn from r, which must not be shared with another
	// goroutine.
	AddNoise(r *rand.Stream, x, sensitivity, epsilon float64) (float64, error)
}

// Scale returns the scale sensitivity/ε of the Laplace distribution used
// by the mechanisms in this package.
func Scale(sensitivity, epsilon float64) float64 {
	return sensitivity / epsilon
}

func checkArgs(sensitivity, epsilon float64) error {
	if err := checks.CheckSensitivity(sensitivity); err != nil {
		return err
	}
	return checks.CheckEpsilonVeryStrict(epsilon)
}
