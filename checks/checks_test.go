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

package checks

import (
	"errors"
	"math"
	"testing"
)

func TestCheckEpsilonVeryStrict(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		epsilon float64
		wantErr bool
	}{
		{"epsilon < 2⁻⁵⁰",
			math.Exp2(-51.0),
			true},
		{"epsilon == 2⁻⁵⁰",
			math.Exp2(-50.0),
			false},
		{"negative epsilon",
			-2,
			true},
		{"zero epsilon",
			0,
			true},
		{"epsilon is NaN",
			math.NaN(),
			true},
		{"epsilon is positive infinity",
			math.Inf(1),
			true},
		{"positive epsilon",
			50,
			false},
	} {
		if err := CheckEpsilonVeryStrict(tc.epsilon); (err != nil) != tc.wantErr {
			t.Errorf("CheckEpsilonVeryStrict: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestCheckEpsilonStrict(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		epsilon float64
		wantErr bool
	}{
		{"negative epsilon",
			-2,
			true},
		{"zero epsilon",
			0,
			true},
		{"epsilon is NaN",
			math.NaN(),
			true},
		{"epsilon is negative infinity",
			math.Inf(-1),
			true},
		{"epsilon is positive infinity",
			math.Inf(1),
			true},
		{"tiny positive epsilon",
			math.Exp2(-60.0),
			false},
		{"positive epsilon",
			50,
			false},
	} {
		if err := CheckEpsilonStrict(tc.epsilon); (err != nil) != tc.wantErr {
			t.Errorf("CheckEpsilonStrict: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestCheckSensitivity(t *testing.T) {
	for _, tc := range []struct {
		desc        string
		sensitivity float64
		wantErr     bool
	}{
		{"negative sensitivity", -1, true},
		{"zero sensitivity", 0, false},
		{"positive sensitivity", 49, false},
		{"sensitivity is NaN", math.NaN(), true},
		{"sensitivity is infinity", math.Inf(1), true},
	} {
		if err := CheckSensitivity(tc.sensitivity); (err != nil) != tc.wantErr {
			t.Errorf("CheckSensitivity: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestCheckPublicFraction(t *testing.T) {
	for _, tc := range []struct {
		desc     string
		fraction float64
		wantErr  bool
	}{
		{"negative fraction", -0.1, true},
		{"zero fraction", 0, false},
		{"half", 0.5, false},
		{"one", 1, false},
		{"above one", 1.01, true},
		{"NaN", math.NaN(), true},
	} {
		if err := CheckPublicFraction(tc.fraction); (err != nil) != tc.wantErr {
			t.Errorf("CheckPublicFraction: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestCheckIntegerParameters(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		check   func() error
		wantErr bool
	}{
		{"k == 0", func() error { return CheckK(0) }, true},
		{"k == 1", func() error { return CheckK(1) }, false},
		{"negative max degree", func() error { return CheckMaxDegree(-1) }, true},
		{"zero max degree", func() error { return CheckMaxDegree(0) }, false},
		{"clipping bound below k", func() error { return CheckClippingBound(1, 3) }, false},
		{"negative clipping bound", func() error { return CheckClippingBound(-5, 3) }, true},
		{"zero workers", func() error { return CheckWorkers(0) }, true},
		{"one worker", func() error { return CheckWorkers(1) }, false},
		{"zero sample size", func() error { return CheckSampleSize(0) }, true},
		{"positive sample size", func() error { return CheckSampleSize(10) }, false},
	} {
		if err := tc.check(); (err != nil) != tc.wantErr {
			t.Errorf("%s: got err %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestErrorsWrapInvalidParameter(t *testing.T) {
	for _, err := range []error{
		CheckEpsilonStrict(0),
		CheckPublicFraction(2),
		CheckK(-1),
		CheckMaxDegree(-1),
		CheckWorkers(-3),
		Unrecognised("Mode", 7),
	} {
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("errors.Is(%v, ErrInvalidParameter) = false, want true", err)
		}
	}
}

func TestCustomName(t *testing.T) {
	err := CheckEpsilonStrict(-1, "EpsilonForTriangles")
	if err == nil {
		t.Fatal("CheckEpsilonStrict(-1): got nil error")
	}
	if got, want := err.Error(), "invalid parameter: EpsilonForTriangles is -1.000000, must be strictly positive and finite"; got != want {
		t.Errorf("CheckEpsilonStrict(-1) error = %q, want %q", got, want)
	}
	if err := CheckEpsilonStrict(1, "a", "b"); err == nil {
		t.Error("CheckEpsilonStrict with two names: got nil error")
	}
}
