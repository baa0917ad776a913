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

// pantera is a collection of utilities for genome annotation files,
// and a parallel driver for Tandem Repeats Finder.
//
// Please see https://github.com/pantera-bio/pantera for a
// documentation of the tool.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pantera-bio/pantera/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: extract-annotations, extract-transcripts, fix-coordinates, fix-feature-type, rename-regions, add-alias, transcript-to-protein, split-fasta, trf, trf-convert, trf-merge")
	fmt.Fprint(os.Stderr, cmd.ExtractAnnotationsHelp)
	fmt.Fprint(os.Stderr, cmd.ExtractTranscriptsHelp)
	fmt.Fprint(os.Stderr, cmd.FixCoordinatesHelp)
	fmt.Fprint(os.Stderr, cmd.FixFeatureTypeHelp)
	fmt.Fprint(os.Stderr, cmd.RenameRegionsHelp)
	fmt.Fprint(os.Stderr, cmd.AddAliasHelp)
	fmt.Fprint(os.Stderr, cmd.TranscriptToProteinHelp)
	fmt.Fprint(os.Stderr, cmd.SplitFastaHelp)
	fmt.Fprint(os.Stderr, cmd.TRFHelp)
	fmt.Fprint(os.Stderr, cmd.TRFConvertHelp)
	fmt.Fprint(os.Stderr, cmd.TRFMergeHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage, "\n")
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "extract-annotations":
		err = cmd.ExtractAnnotations()
	case "extract-transcripts":
		err = cmd.ExtractTranscripts()
	case "fix-coordinates":
		err = cmd.FixCoordinates()
	case "fix-feature-type":
		err = cmd.FixFeatureType()
	case "rename-regions":
		err = cmd.RenameRegions()
	case "add-alias":
		err = cmd.AddAlias()
	case "transcript-to-protein":
		err = cmd.TranscriptToProtein()
	case "split-fasta":
		err = cmd.SplitFasta()
	case "trf":
		err = cmd.TRF()
	case "trf-convert":
		err = cmd.TRFConvert()
	case "trf-merge":
		err = cmd.TRFMerge()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		log.Printf("Unknown command %v.\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal("Error: ", err)
	}
}
