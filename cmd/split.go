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
	"path/filepath"
	"strings"

	"github.com/pantera-bio/pantera/fasta"
)

// SplitFastaHelp is the help string for this command.
const SplitFastaHelp = "\nsplit-fasta parameters:\n" +
	"pantera split-fasta fasta-file /path/to/output/\n" +
	"[--max-length n]\n" +
	"[--output-prefix name]\n" +
	commonHelp

func fastaBaseName(input string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, ".gz")
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SplitFasta implements the pantera split-fasta command.
func SplitFasta() error {
	var (
		common       commonFlags
		outputPrefix string
		maxLength    int
	)

	var flags flag.FlagSet
	flags.IntVar(&maxLength, "max-length", 100000, "maximum cumulative sequence length per output file")
	flags.StringVar(&outputPrefix, "output-prefix", "", "prefix for the output files")
	common.define(&flags)

	parseFlags(&flags, 4, SplitFastaHelp)

	input := getFilename(os.Args[2], SplitFastaHelp)
	output := getFilename(os.Args[3], SplitFastaHelp)

	if outputPrefix == "" {
		outputPrefix = fastaBaseName(input)
	}

	if err := setLogOutput(common.logPath); err != nil {
		return err
	}

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}
	if info, err := os.Stat(output); err == nil && !info.IsDir() {
		log.Printf("Given output path is not a path: %v.\n", output)
		sanityChecksFailed = true
	}
	if maxLength <= 0 {
		log.Println("Error: Invalid max-length: ", maxLength)
		sanityChecksFailed = true
	}
	if strings.ContainsRune(outputPrefix, filepath.Separator) {
		log.Printf("Error: Invalid output prefix %v.\n", outputPrefix)
		sanityChecksFailed = true
	}
	if !common.check() {
		sanityChecksFailed = true
	}

	exitWithHelp(sanityChecksFailed, SplitFastaHelp)

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " split-fasta ", input, " ", output)
	fmt.Fprint(&command, " --max-length ", maxLength)
	fmt.Fprint(&command, " --output-prefix ", outputPrefix)
	common.appendTo(&command)

	// executing command

	log.Println("Executing command:\n", command.String())

	return timedRun(common, "Splitting FASTA file.", func() error {
		chunks, err := fasta.SplitByLength(input, output, outputPrefix, maxLength)
		if err != nil {
			return err
		}
		var sequences, length int
		for _, chunk := range chunks {
			sequences += chunk.Sequences
			length += chunk.Length
		}
		printSummary("Wrote %v sequences of cumulative length %v to %v files.\n", sequences, length, len(chunks))
		return nil
	})
}
