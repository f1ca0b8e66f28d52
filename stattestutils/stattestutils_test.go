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

package stattestutils

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSampleMeanAndVariance(t *testing.T) {
	for _, tc := range []struct {
		input        []float64
		wantMean     float64
		wantVariance float64
	}{
		{[]float64{}, 0, 0},
		{[]float64{100.123}, 100.123, 0},
		{[]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 5, 10},
	} {
		if got := SampleMean(tc.input); math.Abs(got-tc.wantMean) > 1e-10 {
			t.Errorf("SampleMean(%v) = %f, want %f", tc.input, got, tc.wantMean)
		}
		if got := SampleVariance(tc.input); math.Abs(got-tc.wantVariance) > 1e-10 {
			t.Errorf("SampleVariance(%v) = %f, want %f", tc.input, got, tc.wantVariance)
		}
	}
}

func TestMeanAbsoluteError(t *testing.T) {
	for _, tc := range []struct {
		input []float64
		truth float64
		want  float64
	}{
		{nil, 3, 0},
		{[]float64{1, 5}, 3, 2},
		{[]float64{3, 3, 6}, 3, 1},
	} {
		if got := MeanAbsoluteError(tc.input, tc.truth); math.Abs(got-tc.want) > 1e-10 {
			t.Errorf("MeanAbsoluteError(%v, %f) = %f, want %f", tc.input, tc.truth, got, tc.want)
		}
	}
}

func TestDraw(t *testing.T) {
	got, err := Draw(4, func(i int) (float64, error) { return float64(i * i), nil })
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if diff := cmp.Diff([]float64{0, 1, 4, 9}, got); diff != "" {
		t.Errorf("Draw mismatch (-want +got):\n%s", diff)
	}
	boom := errors.New("boom")
	calls := 0
	if _, err := Draw(4, func(int) (float64, error) { calls++; return 0, boom }); !errors.Is(err, boom) || calls != 1 {
		t.Errorf("Draw with failing f: got err %v after %d calls, want boom after 1", err, calls)
	}
}
