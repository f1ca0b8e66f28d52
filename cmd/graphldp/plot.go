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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/golang/glog"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// minPlottedError replaces a zero relative error on the log scale.
const minPlottedError = 1e-6

// charts lists the error charts drawn by drawPlots. Each chart holds every
// metric whose name contains its key.
var charts = []struct {
	file, title, key string
}{
	{"triangle_error.png", "Triangle Count Error: Clipped vs Smooth Sensitivity", "TriangleCount"},
	{"kstar_error.png", "k-Star Count Error: Clipped vs Smooth Sensitivity", "StarCount"},
	{"edge_error.png", "Edge Count Error", "EdgeCount"},
}

// drawPlots draws the relative error of each scalar metric against ε, on a
// log scale, into dir. Charts without any matching metric are skipped.
func drawPlots(results []result, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("couldn't create the plot directory = %q, err = %v", dir, err)
	}
	for _, c := range charts {
		var metrics []string
		byMetric := make(map[string]plotter.XYs)
		for _, r := range results {
			if !strings.Contains(r.Metric, c.key) {
				continue
			}
			if _, ok := byMetric[r.Metric]; !ok {
				metrics = append(metrics, r.Metric)
			}
			byMetric[r.Metric] = append(byMetric[r.Metric], plotter.XY{X: r.Epsilon, Y: max(r.RelError, minPlottedError)})
		}
		if len(metrics) == 0 {
			continue
		}

		p := plot.New()
		p.Title.Text = c.title
		p.X.Label.Text = "Epsilon"
		p.Y.Label.Text = "Relative Error"
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{}
		p.Legend.Top = true

		var lines []interface{}
		for _, m := range metrics {
			xys := byMetric[m]
			sort.Slice(xys, func(i, j int) bool { return xys[i].X < xys[j].X })
			lines = append(lines, m, xys)
		}
		if err := plotutil.AddLinePoints(p, lines...); err != nil {
			return fmt.Errorf("could not create lines for %s: %v", c.file, err)
		}
		out := filepath.Join(dir, c.file)
		if err := p.Save(10*vg.Inch, 6*vg.Inch, out); err != nil {
			return fmt.Errorf("could not save plot %q: %v", out, err)
		}
		log.Infof("Saved %s", out)
	}
	return nil
}
