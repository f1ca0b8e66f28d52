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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

var csvHeader = []string{"graph", "epsilon", "metric", "true_val", "est_val", "rel_error", "sensitivity"}

// writeResults writes results as csv to w.
func writeResults(results []result, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		err := writer.Write([]string{
			r.Graph,
			toString(r.Epsilon),
			r.Metric,
			toString(r.TrueValue),
			toString(r.Estimate),
			toString(r.RelError),
			toString(r.Sensitivity),
		})
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// writeResultsToCSV writes results to outputFile, or to standard output if
// outputFile is empty.
func writeResultsToCSV(results []result, outputFile string) error {
	if outputFile == "" {
		return writeResults(results, os.Stdout)
	}
	csvFile, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("couldn't open the csv file = %q, err = %v", outputFile, err)
	}
	if err := writeResults(results, csvFile); err != nil {
		return fmt.Errorf(
			"couldn't write to the csv file = %q, err = %v",
			outputFile, combineErrors(err, csvFile.Close()))
	}
	if err := csvFile.Close(); err != nil {
		return fmt.Errorf("couldn't close the csv file = %q, err = %v", outputFile, err)
	}
	return nil
}

func toString(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func combineErrors(errors ...error) string {
	var nonNilErrors []error
	for _, err := range errors {
		if err != nil {
			nonNilErrors = append(nonNilErrors, err)
		}
	}
	return fmt.Sprintf("%+v", nonNilErrors)
}
