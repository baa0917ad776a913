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

	"github.com/pantera-bio/pantera/trf"
)

// TRFMergeHelp is the help string for this command.
const TRFMergeHelp = "\ntrf-merge parameters:\n" +
	"pantera trf-merge /path/to/converted/ output-prefix\n" +
	commonHelp

// TRFMerge implements the pantera trf-merge command.
func TRFMerge() error {
	var common commonFlags

	var flags flag.FlagSet
	common.define(&flags)

	parseFlags(&flags, 4, TRFMergeHelp)

	input := getFilename(os.Args[2], TRFMergeHelp)
	outputPrefix := getFilename(os.Args[3], TRFMergeHelp)

	if err := setLogOutput(common.logPath); err != nil {
		return err
	}

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	} else if info, err := os.Stat(input); err == nil && !info.IsDir() {
		log.Printf("Error: %v is not a directory.\n", input)
		sanityChecksFailed = true
	}
	for _, suffix := range trf.Suffixes() {
		if !checkCreate("", outputPrefix+suffix) {
			sanityChecksFailed = true
		}
	}
	if !common.check() {
		sanityChecksFailed = true
	}

	exitWithHelp(sanityChecksFailed, TRFMergeHelp)

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " trf-merge ", input, " ", outputPrefix)
	common.appendTo(&command)

	// executing command

	log.Println("Executing command:\n", command.String())

	return timedRun(common, "Merging converted TRF reports.", func() error {
		merged, err := trf.MergeDirectory(input, outputPrefix)
		if err != nil {
			return err
		}
		for _, filename := range merged {
			printSummary("Wrote %v\n", filename)
		}
		return nil
	})
}
