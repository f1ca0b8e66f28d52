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

// This is a command line utility which estimates statistics of a graph under
// local differential privacy and compares them with the true values.
// Usage example:
//
//	go run ./cmd/graphldp --input_file=facebook_combined.txt --sample_size=1000 --policy=2-hop --epsilons=0.1,1,5 --output_file=results.csv --plot_dir=plots
//
// or, with the run described in a YAML file:
//
//	go run ./cmd/graphldp --config=run.yaml --seed=7
//
// Each output row holds the graph name, ε, the metric, its true value, the
// private estimate, their relative error and the sensitivity reported by the
// estimator.
package main

import (
	"flag"

	log "github.com/golang/glog"
	"github.com/google/differential-privacy/graphldp/ldpagg"
)

func main() {
	registerFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := configFromFlags(flag.CommandLine)
	if err != nil {
		log.Exitf("Couldn't configure the run, err = %v", err)
	}
	log.Infof("The tool was run with: input_file = %q, scenarios = %v, policy = %s, epsilons = %v, public_fraction = %g, public_strategy = %s",
		cfg.InputFile, cfg.Scenarios, cfg.Policy, cfg.Epsilons, cfg.PublicFraction, cfg.PublicStrategy)

	results, err := runScenarios(cfg, ldpagg.TestModeDisabled)
	if err != nil {
		log.Exitf("Couldn't run the scenarios, err = %v", err)
	}
	if err := writeResultsToCSV(results, cfg.OutputFile); err != nil {
		log.Exitf("Couldn't write the results, err = %v", err)
	}
	if cfg.PlotDir != "" {
		if err := drawPlots(results, cfg.PlotDir); err != nil {
			log.Exitf("Couldn't draw the plots, err = %v", err)
		}
	}

	log.Infof("Successfully finished, %d results written", len(results))
}
