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
	"github.com/pantera-bio/pantera/utils"
)

// ExtractAnnotationsHelp is the help string for this command.
const ExtractAnnotationsHelp = "\nextract-annotations parameters:\n" +
	"pantera extract-annotations gff-file gff-output-file\n" +
	"--ids file\n" +
	"[--types type1,type2,...]\n" +
	commonHelp

func splitList(list string) (result []string) {
	for _, s := range strings.Split(list, ",") {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}
	return result
}

// ExtractAnnotations implements the pantera extract-annotations command.
func ExtractAnnotations() error {
	var (
		common     commonFlags
		ids, types string
	)

	var flags flag.FlagSet
	flags.StringVar(&ids, "ids", "", "file with the identifiers of the features to extract")
	flags.StringVar(&types, "types", "gene", "comma-separated list of feature types to extract")
	common.define(&flags)

	parseFlags(&flags, 4, ExtractAnnotationsHelp)

	input := getFilename(os.Args[2], ExtractAnnotationsHelp)
	output := getFilename(os.Args[3], ExtractAnnotationsHelp)

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
	if !checkExist("--ids", ids) {
		sanityChecksFailed = true
	}
	featureTypes := splitList(types)
	if len(featureTypes) == 0 {
		log.Println("Error: No feature types given for command line parameter --types.")
		sanityChecksFailed = true
	}
	if !common.check() {
		sanityChecksFailed = true
	}

	exitWithHelp(sanityChecksFailed, ExtractAnnotationsHelp)

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " extract-annotations ", input, " ", output)
	fmt.Fprint(&command, " --ids ", ids)
	fmt.Fprint(&command, " --types ", strings.Join(featureTypes, ","))
	common.appendTo(&command)

	// executing command

	log.Println("Executing command:\n", command.String())

	return timedRun(common, "Extracting annotations.", func() error {
		idSet, err := utils.ReadIDSet(ids)
		if err != nil {
			return err
		}
		selected, err := gff.ExtractAnnotations(input, output, idSet, featureTypes)
		if err != nil {
			return err
		}
		printSummary("Extracted %v of %v requested features.\n", selected, len(idSet))
		return nil
	})
}

// ExtractTranscriptsHelp is the help string for this command.
const ExtractTranscriptsHelp = "\nextract-transcripts parameters:\n" +
	"pantera extract-transcripts gff-file gff-output-file\n" +
	"--ids file\n" +
	commonHelp

// ExtractTranscripts implements the pantera extract-transcripts command.
func ExtractTranscripts() error {
	var (
		common commonFlags
		ids    string
	)

	var flags flag.FlagSet
	flags.StringVar(&ids, "ids", "", "file with the identifiers of the transcripts to extract")
	common.define(&flags)

	parseFlags(&flags, 4, ExtractTranscriptsHelp)

	input := getFilename(os.Args[2], ExtractTranscriptsHelp)
	output := getFilename(os.Args[3], ExtractTranscriptsHelp)

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
	if !checkExist("--ids", ids) {
		sanityChecksFailed = true
	}
	if !common.check() {
		sanityChecksFailed = true
	}

	exitWithHelp(sanityChecksFailed, ExtractTranscriptsHelp)

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " extract-transcripts ", input, " ", output)
	fmt.Fprint(&command, " --ids ", ids)
	common.appendTo(&command)

	// executing command

	log.Println("Executing command:\n", command.String())

	return timedRun(common, "Extracting transcripts.", func() error {
		idSet, err := utils.ReadIDSet(ids)
		if err != nil {
			return err
		}
		selected, err := gff.ExtractTranscripts(input, output, idSet)
		if err != nil {
			return err
		}
		printSummary("Extracted %v top-level features for %v requested transcripts.\n", selected, len(idSet))
		return nil
	})
}
