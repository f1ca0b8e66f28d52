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
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/differential-privacy/graphldp/graph"
	"github.com/google/differential-privacy/graphldp/ldpagg"
	"github.com/google/differential-privacy/graphldp/noise"
	"github.com/google/differential-privacy/graphldp/visibility"
	"gopkg.in/yaml.v3"
)

// runConfig describes one run of the tool. It is read from an optional
// YAML file, and flags set on the command line override the file.
type runConfig struct {
	InputFile      string    `yaml:"input_file" validate:"required"`
	OutputFile     string    `yaml:"output_file"`
	PlotDir        string    `yaml:"plot_dir"`
	Scenarios      []string  `yaml:"scenarios" validate:"required,min=1,dive,scenario"`
	Policy         string    `yaml:"policy" validate:"required,policy"`
	Epsilons       []float64 `yaml:"epsilons" validate:"required,min=1,dive,gt=0"`
	PublicFraction float64   `yaml:"public_fraction" validate:"gte=0,lte=1"`
	PublicStrategy string    `yaml:"public_strategy" validate:"public_strategy"`
	MaxDegree      int       `yaml:"max_degree" validate:"gte=0"`
	K              int       `yaml:"k" validate:"gte=1"`
	Noise          string    `yaml:"noise" validate:"noise"`
	SampleSize     int       `yaml:"sample_size" validate:"gte=0"`
	Seed           uint64    `yaml:"seed"`
	Workers        int       `yaml:"workers" validate:"gte=0"`
}

// defaultConfig runs every scenario under the 2-hop policy on a graph whose
// top 20% nodes by degree are public.
func defaultConfig() *runConfig {
	return &runConfig{
		Scenarios:      scenarioIDs(),
		Policy:         "2-hop",
		Epsilons:       []float64{0.1, 0.5, 1, 2, 5},
		PublicFraction: 0.2,
		PublicStrategy: "degree_top_k",
		MaxDegree:      ldpagg.DefaultMaxDegree,
		K:              2,
		Noise:          "laplace",
	}
}

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	_ = configValidate.RegisterValidation("scenario", func(fl validator.FieldLevel) bool {
		_, err := newScenario(fl.Field().String(), 2, 0)
		return err == nil
	})
	_ = configValidate.RegisterValidation("policy", func(fl validator.FieldLevel) bool {
		_, err := visibility.Parse(fl.Field().String())
		return err == nil
	})
	_ = configValidate.RegisterValidation("public_strategy", func(fl validator.FieldLevel) bool {
		_, err := graph.ParsePublicStrategy(fl.Field().String())
		return err == nil
	})
	_ = configValidate.RegisterValidation("noise", func(fl validator.FieldLevel) bool {
		_, err := noise.ParseKind(fl.Field().String())
		return err == nil
	})
}

// Validate checks every field of c.
func (c *runConfig) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid run configuration: %w", err)
	}
	return nil
}

// loadConfig reads a YAML run file over the defaults.
func loadConfig(path string) (*runConfig, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read the config file = %q, err = %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("couldn't parse the config file = %q, err = %w", path, err)
	}
	return cfg, nil
}

// registerFlags defines the tool's flags on fs.
func registerFlags(fs *flag.FlagSet) {
	fs.String("config", "", "Optional YAML run file. Flags set explicitly override its values.")
	fs.String("input_file", "", "Edge list: one whitespace-separated pair of integer node IDs per line.")
	fs.String("output_file", "", "Output csv file name. Defaults to standard output.")
	fs.String("plot_dir", "", "If set, error-versus-ε charts are saved as png files in this directory.")
	fs.String("scenarios", "", "Comma-separated scenario IDs: "+strings.Join(scenarioIDs(), ", ")+". Defaults to all.")
	fs.String("policy", "", "Visibility policy: 1-hop, 2-hop or global. Defaults to 2-hop.")
	fs.String("epsilons", "", "Comma-separated privacy parameters ε. Defaults to 0.1,0.5,1,2,5.")
	fs.String("public_fraction", "", "Fraction of public nodes in [0, 1]. Defaults to 0.2.")
	fs.String("public_strategy", "", "Public node selection: random, degree_top_k or degree_proportional. Defaults to degree_top_k.")
	fs.String("max_degree", "", "Degree bound D_max. Defaults to 50.")
	fs.String("k", "", "Star size for the k-star scenarios. Defaults to 2.")
	fs.String("noise", "", "Noise mechanism: laplace or geometric. Defaults to laplace.")
	fs.String("sample_size", "", "If positive, run on a BFS sample of this many nodes.")
	fs.String("seed", "", "Seed for reproducible runs. Defaults to a secure random seed.")
	fs.String("workers", "", "Goroutines per estimate. Defaults to GOMAXPROCS.")
}

// configFromFlags builds the run configuration from the defaults, then the
// file named by -config, then every flag set explicitly on fs.
func configFromFlags(fs *flag.FlagSet) (*runConfig, error) {
	cfg := defaultConfig()
	if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
		var err error
		if cfg, err = loadConfig(f.Value.String()); err != nil {
			return nil, err
		}
	}
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err == nil {
			err = cfg.set(f.Name, f.Value.String())
		}
	})
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// set assigns the flag named name.
func (c *runConfig) set(name, value string) error {
	var err error
	switch name {
	case "config":
	case "input_file":
		c.InputFile = value
	case "output_file":
		c.OutputFile = value
	case "plot_dir":
		c.PlotDir = value
	case "scenarios":
		c.Scenarios = splitList(value)
	case "policy":
		c.Policy = value
	case "epsilons":
		c.Epsilons = nil
		for _, s := range splitList(value) {
			var eps float64
			if eps, err = strconv.ParseFloat(s, 64); err != nil {
				break
			}
			c.Epsilons = append(c.Epsilons, eps)
		}
	case "public_fraction":
		c.PublicFraction, err = strconv.ParseFloat(value, 64)
	case "public_strategy":
		c.PublicStrategy = value
	case "max_degree":
		c.MaxDegree, err = strconv.Atoi(value)
	case "k":
		c.K, err = strconv.Atoi(value)
	case "noise":
		c.Noise = value
	case "sample_size":
		c.SampleSize, err = strconv.Atoi(value)
	case "seed":
		c.Seed, err = strconv.ParseUint(value, 10, 64)
	case "workers":
		c.Workers, err = strconv.Atoi(value)
	}
	if err != nil {
		return fmt.Errorf("couldn't parse -%s = %q, err = %w", name, value, err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
