// pantera: utilities for genome annotation files and tandem repeat scanning.
// Copyright (c) 2026 The pantera authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License along with this program. If not, see
// <https://github.com/pantera-bio/pantera/blob/master/LICENSE.txt>.

package cmd

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pantera-bio/pantera/gff"
)

// FixCoordinatesHelp is the help string for this command.
const FixCoordinatesHelp = "\nfix-coordinates parameters:\n" +
	"pantera fix-coordinates gff-file gff-output-file\n" +
	commonHelp

// FixCoordinates implements the pantera fix-coordinates command.
func FixCoordinates() error {
	var common commonFlags

	var flags flag.FlagSet
	common.define(&flags)

	parseFlags(&flags, 4, FixCoordinatesHelp)

	input := getFilename(os.Args[2], FixCoordinatesHelp)
	output := getFilename(os.Args[3], FixCoordinatesHelp)

	if err := setLogOutput(common.logPath); err != nil {
		return err
	}

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}
	if !checkCreate("", output) || !checkDistinct(input, output) {
		sanityChecksFailed = true
	}
	if !common.check() {
		sanityChecksFailed = true
	}

	exitWithHelp(sanityChecksFailed, FixCoordinatesHelp)

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " fix-coordinates ", input, " ", output)
	common.appendTo(&command)

	// executing command

	log.Println("Executing command:\n", command.String())

	return timedRun(common, "Fixing coordinate order.", func() error {
		fixed, malformed, err := gff.FixCoordinatesOrder(input, output)
		if err != nil {
			return err
		}
		printSummary("Fixed lines: %v\n", fixed)
		if malformed > 0 {
			printWarning("Malformed lines removed: %v\n", malformed)
		} else {
			printSummary("Malformed lines removed: %v\n", malformed)
		}
		return nil
	})
}

// FixFeatureTypeHelp is the help string for this command.
const FixFeatureTypeHelp = "\nfix-feature-type parameters:\n" +
	"pantera fix-feature-type gff-file gff-output-file\n" +
	"[--feature-type type]\n" +
	"[--report file]\n" +
	commonHelp

// FixFeatureType implements the pantera fix-feature-type command.
func FixFeatureType() error {
	var (
		common              commonFlags
		featureType, report string
	)

	var flags flag.FlagSet
	flags.StringVar(&featureType, "feature-type", "gene", "feature type to insert into lines that lack one")
	flags.StringVar(&report, "report", "", "write the numbers of the repaired lines to the specified file")
	common.define(&flags)

	parseFlags(&flags, 4, FixFeatureTypeHelp)

	input := getFilename(os.Args[2], FixFeatureTypeHelp)
	output := getFilename(os.Args[3], FixFeatureTypeHelp)

	if err := setLogOutput(common.logPath); err != nil {
		return err
	}

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}
	if !checkCreate("", output) || !checkDistinct(input, output) {
		sanityChecksFailed = true
	}
	if featureType == "" || strings.ContainsAny(featureType, "\t\n") {
		log.Printf("Error: Invalid feature type %q for command line parameter --feature-type.\n", featureType)
		sanityChecksFailed = true
	}
	if report != "" && !checkCreate("--report", report) {
		sanityChecksFailed = true
	}
	if !common.check() {
		sanityChecksFailed = true
	}

	exitWithHelp(sanityChecksFailed, FixFeatureTypeHelp)

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " fix-feature-type ", input, " ", output)
	fmt.Fprint(&command, " --feature-type ", featureType)
	if report != "" {
		fmt.Fprint(&command, " --report ", report)
	}
	common.appendTo(&command)

	// executing command

	log.Println("Executing command:\n", command.String())

	return timedRun(common, "Fixing absent feature types.", func() error {
		repaired, err := gff.FixAbsentFeatureType(input, output, featureType)
		if err != nil {
			return err
		}
		printSummary("Repaired lines: %v\n", repaired.Count())
		if report == "" {
			return nil
		}
		var lines bytes.Buffer
		for i, ok := repaired.NextSet(0); ok; i, ok = repaired.NextSet(i + 1) {
			fmt.Fprintln(&lines, i)
		}
		return os.WriteFile(report, lines.Bytes(), 0666)
	})
}
