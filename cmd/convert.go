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

	"github.com/pantera-bio/pantera/trf"
)

// TRFConvertHelp is the help string for this command.
const TRFConvertHelp = "\ntrf-convert parameters:\n" +
	"pantera trf-convert dat-file output-prefix\n" +
	commonHelp

// TRFConvert implements the pantera trf-convert command.
func TRFConvert() error {
	var common commonFlags

	var flags flag.FlagSet
	common.define(&flags)

	parseFlags(&flags, 4, TRFConvertHelp)

	input := getFilename(os.Args[2], TRFConvertHelp)
	outputPrefix := getFilename(os.Args[3], TRFConvertHelp)

	if err := setLogOutput(common.logPath); err != nil {
		return err
	}

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
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

	exitWithHelp(sanityChecksFailed, TRFConvertHelp)

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " trf-convert ", input, " ", outputPrefix)
	common.appendTo(&command)

	// executing command

	log.Println("Executing command:\n", command.String())

	return timedRun(common, "Converting TRF report.", func() error {
		repeats, err := trf.Convert(input, outputPrefix)
		if err != nil {
			return err
		}
		printSummary("Converted %v repeats into %v{%v}.\n", repeats, outputPrefix, strings.Join(trf.Suffixes(), ","))
		return nil
	})
}
