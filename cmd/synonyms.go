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

const synonymsHelp = "--synonyms file\n" +
	"[--key-column n]\n" +
	"[--value-column n]\n" +
	"[--values-separator sep] (default \",\" for add-alias)\n" +
	"[--comment-prefix prefix]\n"

// RenameRegionsHelp is the help string for this command.
const RenameRegionsHelp = "\nrename-regions parameters:\n" +
	"pantera rename-regions gff-file gff-output-file\n" +
	synonymsHelp +
	commonHelp

// AddAliasHelp is the help string for this command.
const AddAliasHelp = "\nadd-alias parameters:\n" +
	"pantera add-alias gff-file gff-output-file\n" +
	synonymsHelp +
	"[--feature-types type1,type2,...]\n" +
	"[--name-fields key1,key2,...]\n" +
	"[--alias-field key]\n" +
	commonHelp

type synonymFlags struct {
	synonyms string
	format   utils.SynDictFormat
}

// aliasSynDictFormat splits comma-separated synonym lists, so that
// every synonym becomes a separate alias value.
var aliasSynDictFormat = func() utils.SynDictFormat {
	format := utils.DefaultSynDictFormat
	format.ValuesSeparator = ","
	return format
}()

func (s *synonymFlags) define(flags *flag.FlagSet, format utils.SynDictFormat) {
	s.format = format
	flags.StringVar(&s.synonyms, "synonyms", "", "tab-separated file with identifiers and their synonyms")
	flags.IntVar(&s.format.KeyColumn, "key-column", s.format.KeyColumn, "0-based column of the identifiers in the synonym file")
	flags.IntVar(&s.format.ValueColumn, "value-column", s.format.ValueColumn, "0-based column of the synonyms in the synonym file")
	flags.StringVar(&s.format.ValuesSeparator, "values-separator", s.format.ValuesSeparator, "separator between several synonyms in one column")
	flags.StringVar(&s.format.CommentPrefix, "comment-prefix", s.format.CommentPrefix, "prefix of comment lines in the synonym file")
}

func (s *synonymFlags) check() bool {
	success := checkExist("--synonyms", s.synonyms)
	if s.format.KeyColumn < 0 || s.format.ValueColumn < 0 || s.format.KeyColumn == s.format.ValueColumn {
		log.Printf("Error: Invalid key and value columns %v and %v.\n", s.format.KeyColumn, s.format.ValueColumn)
		success = false
	}
	return success
}

func (s *synonymFlags) appendTo(command *bytes.Buffer) {
	fmt.Fprint(command, " --synonyms ", s.synonyms)
	fmt.Fprint(command, " --key-column ", s.format.KeyColumn)
	fmt.Fprint(command, " --value-column ", s.format.ValueColumn)
	if s.format.ValuesSeparator != "" {
		fmt.Fprintf(command, " --values-separator %q", s.format.ValuesSeparator)
	}
	fmt.Fprintf(command, " --comment-prefix %q", s.format.CommentPrefix)
}

func (s *synonymFlags) read() (*utils.SynDict, error) {
	dict, err := utils.ReadSynDict(s.synonyms, s.format)
	if err != nil {
		return nil, err
	}
	log.Printf("Read %v identifiers with synonyms from %v.\n", dict.Len(), s.synonyms)
	return dict, nil
}

// RenameRegions implements the pantera rename-regions command.
func RenameRegions() error {
	var (
		common   commonFlags
		synonyms synonymFlags
	)

	var flags flag.FlagSet
	synonyms.define(&flags, utils.DefaultSynDictFormat)
	common.define(&flags)

	parseFlags(&flags, 4, RenameRegionsHelp)

	input := getFilename(os.Args[2], RenameRegionsHelp)
	output := getFilename(os.Args[3], RenameRegionsHelp)

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
	if !synonyms.check() {
		sanityChecksFailed = true
	}
	if !common.check() {
		sanityChecksFailed = true
	}

	exitWithHelp(sanityChecksFailed, RenameRegionsHelp)

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " rename-regions ", input, " ", output)
	synonyms.appendTo(&command)
	common.appendTo(&command)

	// executing command

	log.Println("Executing command:\n", command.String())

	return timedRun(common, "Renaming sequence regions.", func() error {
		dict, err := synonyms.read()
		if err != nil {
			return err
		}
		renamed, err := gff.RenameRegions(input, output, dict)
		if err != nil {
			return err
		}
		printSummary("Renamed lines: %v\n", renamed)
		return nil
	})
}

// AddAlias implements the pantera add-alias command.
func AddAlias() error {
	var (
		common                               commonFlags
		synonyms                             synonymFlags
		featureTypes, nameFields, aliasField string
	)

	var flags flag.FlagSet
	synonyms.define(&flags, aliasSynDictFormat)
	flags.StringVar(&featureTypes, "feature-types", "", "comma-separated list of feature types that receive aliases (default all)")
	flags.StringVar(&nameFields, "name-fields", gff.IDAttribute, "comma-separated list of attributes with the identifiers to look up")
	flags.StringVar(&aliasField, "alias-field", gff.AliasAttribute, "attribute that receives the synonyms")
	common.define(&flags)

	parseFlags(&flags, 4, AddAliasHelp)

	input := getFilename(os.Args[2], AddAliasHelp)
	output := getFilename(os.Args[3], AddAliasHelp)

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
	if !synonyms.check() {
		sanityChecksFailed = true
	}
	options := gff.AliasOptions{
		FeatureTypes: splitList(featureTypes),
		NameFields:   splitList(nameFields),
		AliasField:   strings.TrimSpace(aliasField),
	}
	if len(options.NameFields) == 0 {
		log.Println("Error: No attributes given for command line parameter --name-fields.")
		sanityChecksFailed = true
	}
	if options.AliasField == "" || strings.ContainsAny(options.AliasField, "=;,\t") {
		log.Printf("Error: Invalid attribute %q for command line parameter --alias-field.\n", aliasField)
		sanityChecksFailed = true
	}
	if !common.check() {
		sanityChecksFailed = true
	}

	exitWithHelp(sanityChecksFailed, AddAliasHelp)

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " add-alias ", input, " ", output)
	synonyms.appendTo(&command)
	if len(options.FeatureTypes) > 0 {
		fmt.Fprint(&command, " --feature-types ", strings.Join(options.FeatureTypes, ","))
	}
	fmt.Fprint(&command, " --name-fields ", strings.Join(options.NameFields, ","))
	fmt.Fprint(&command, " --alias-field ", options.AliasField)
	common.appendTo(&command)

	// executing command

	log.Println("Executing command:\n", command.String())

	return timedRun(common, "Adding aliases.", func() error {
		dict, err := synonyms.read()
		if err != nil {
			return err
		}
		report, err := gff.AddAlias(input, output, dict, options)
		if err != nil {
			return err
		}
		printSummary("Lines: %v\n", report.Lines)
		printSummary("Aliases written: %v\n", report.Count(gff.Rewritten))
		for _, warning := range []struct {
			status gff.LineStatus
			msg    string
		}{
			{gff.MissingIdentifier, "Lines without identifier: %v\n"},
			{gff.AmbiguousSynonyms, "Lines with ambiguous synonyms: %v\n"},
			{gff.ShortLine, "Lines with too few columns: %v\n"},
		} {
			if n := report.Count(warning.status); n > 0 {
				printWarning(warning.msg, n)
			}
		}
		return nil
	})
}
