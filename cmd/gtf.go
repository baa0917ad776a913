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

	"github.com/pantera-bio/pantera/gff"
)

// TranscriptToProteinHelp is the help string for this command.
const TranscriptToProteinHelp = "\ntranscript-to-protein parameters:\n" +
	"pantera transcript-to-protein gtf-file tab-output-file\n" +
	"[--comment-prefix prefix]\n" +
	commonHelp

// TranscriptToProtein implements the pantera transcript-to-protein command.
func TranscriptToProtein() error {
	var (
		common        commonFlags
		commentPrefix string
	)

	var flags flag.FlagSet
	flags.StringVar(&commentPrefix, "comment-prefix", "#", "prefix of comment lines in the GTF file")
	common.define(&flags)

	parseFlags(&flags, 4, TranscriptToProteinHelp)

	input := getFilename(os.Args[2], TranscriptToProteinHelp)
	output := getFilename(os.Args[3], TranscriptToProteinHelp)

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

	exitWithHelp(sanityChecksFailed, TranscriptToProteinHelp)

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " transcript-to-protein ", input, " ", output)
	fmt.Fprintf(&command, " --comment-prefix %q", commentPrefix)
	common.appendTo(&command)

	// executing command

	log.Println("Executing command:\n", command.String())

	return timedRun(common, "Extracting transcript to protein mapping.", func() error {
		transcripts, err := gff.TranscriptToProtein(input, output, commentPrefix)
		if err != nil {
			return err
		}
		printSummary("Transcripts with proteins: %v\n", transcripts)
		return nil
	})
}
