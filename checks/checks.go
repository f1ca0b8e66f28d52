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

// Package checks contains parameter checks for the local differentially
// private graph estimators.
//
// Every error returned by this package wraps ErrInvalidParameter, so callers
// can distinguish bad input from other failures with errors.Is.
package checks

import (
	"errors"
	"fmt"
	"math"

	log "github.com/golang/glog"
)

// ErrInvalidParameter is wrapped by every error returned from this package.
var ErrInvalidParameter = errors.New("invalid parameter")

const (
	epsilonName     = "Epsilon"
	fractionName    = "PublicFraction"
	maxDegreeName   = "MaxDegree"
	sensitivityName = "Sensitivity"
)

func verifyName(defaultName string, nameSlice []string) (string, error) {
	var name string
	switch len(nameSlice) {
	case 0:
		name = defaultName
	case 1:
		name = nameSlice[0]
	default:
		return "", fmt.Errorf("This should never happen. There should be 0 or 1 'name' parameter, got %d", len(nameSlice))
	}
	return name, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

// CheckEpsilonVeryStrict returns an error if ε is +∞ or less than 2⁻⁵⁰.
//
// This is the bound required by the secure Laplace sampler, so estimators
// validate with it before any per-node work starts.
func CheckEpsilonVeryStrict(epsilon float64, name ...string) error {
	epsName, err := verifyName(epsilonName, name)
	if err != nil {
		return err
	}
	if epsilon < math.Exp2(-50.0) || math.IsInf(epsilon, 0) || math.IsNaN(epsilon) {
		return invalid("%s is %f, must be at least 2^-50 and finite", epsName, epsilon)
	}
	return nil
}

// CheckEpsilonStrict returns an error if ε is nonpositive or +∞.
func CheckEpsilonStrict(epsilon float64, name ...string) error {
	epsName, err := verifyName(epsilonName, name)
	if err != nil {
		return err
	}
	if epsilon <= 0 || math.IsInf(epsilon, 0) || math.IsNaN(epsilon) {
		return invalid("%s is %f, must be strictly positive and finite", epsName, epsilon)
	}
	return nil
}

// CheckSensitivity returns an error if a per-contribution sensitivity is
// negative, NaN or infinite. A zero sensitivity is legal and means the
// contribution cannot change, so no noise is needed.
func CheckSensitivity(sensitivity float64, name ...string) error {
	sensName, err := verifyName(sensitivityName, name)
	if err != nil {
		return err
	}
	if sensitivity < 0 || math.IsInf(sensitivity, 0) || math.IsNaN(sensitivity) {
		return invalid("%s is %f, must be nonnegative and finite", sensName, sensitivity)
	}
	return nil
}

// CheckPublicFraction returns an error if the fraction of public nodes is
// outside [0, 1].
func CheckPublicFraction(fraction float64, name ...string) error {
	fracName, err := verifyName(fractionName, name)
	if err != nil {
		return err
	}
	if math.IsNaN(fraction) || fraction < 0 || fraction > 1 {
		return invalid("%s is %f, must be within [0, 1]", fracName, fraction)
	}
	return nil
}

// CheckK returns an error if the star size k is less than 1.
func CheckK(k int) error {
	if k < 1 {
		return invalid("K is %d, must be at least 1", k)
	}
	return nil
}

// CheckMaxDegree returns an error if a degree bound is negative.
func CheckMaxDegree(maxDegree int, name ...string) error {
	degName, err := verifyName(maxDegreeName, name)
	if err != nil {
		return err
	}
	if maxDegree < 0 {
		return invalid("%s is %d, must be nonnegative", degName, maxDegree)
	}
	return nil
}

// CheckClippingBound returns an error if maxDegree is negative and logs a
// warning when it is smaller than k, since every clipped private
// contribution is then zero.
func CheckClippingBound(maxDegree, k int) error {
	if err := CheckMaxDegree(maxDegree); err != nil {
		return err
	}
	if maxDegree < k {
		log.Warningf("MaxDegree (%d) is smaller than K (%d): all clipped private contributions will be 0", maxDegree, k)
	}
	return nil
}

// CheckWorkers returns an error if the number of workers is nonpositive.
func CheckWorkers(workers int) error {
	if workers <= 0 {
		return invalid("Workers is %d, must be strictly positive", workers)
	}
	return nil
}

// CheckSampleSize returns an error if size is nonpositive.
func CheckSampleSize(size int) error {
	if size <= 0 {
		return invalid("Sample size is %d, must be strictly positive", size)
	}
	return nil
}

// Unrecognised returns an ErrInvalidParameter error for an enumerated value
// that is not one of the supported options.
func Unrecognised(kind string, value any) error {
	return invalid("%s %v is not recognised", kind, value)
}
