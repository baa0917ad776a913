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

package gff

import (
	"log"
	"strings"

	"github.com/pantera-bio/pantera/utils"
)

/*
RegionRenamer returns a LineRewriter that replaces the sequence region
column of feature lines with its first synonym in dict. Lines with a
region name that is not in dict, and comment lines, are kept as they
are.
*/
func RegionRenamer(dict *utils.SynDict) LineRewriter {
	return func(line string) (string, LineStatus) {
		if line == "" || line[0] == '#' {
			return line, 0
		}
		name := line
		rest := ""
		if i := strings.IndexByte(line, '\t'); i >= 0 {
			name, rest = line[:i], line[i:]
		}
		if synonym, found := dict.First(name); found {
			return synonym + rest, Rewritten
		}
		return line, 0
	}
}

// RenameRegions rewrites input into output with RegionRenamer, and
// returns the number of renamed lines.
func RenameRegions(input, output string, dict *utils.SynDict) (renamed int, err error) {
	report, err := RewriteFile(input, output, RegionRenamer(dict))
	if err != nil {
		return 0, err
	}
	return report.Count(Rewritten), nil
}

// AliasOptions configure AliasInjector.
type AliasOptions struct {
	// FeatureTypes restricts alias injection to these feature types.
	// All feature types are considered if it is empty.
	FeatureTypes []string
	// NameFields are the attribute keys whose values are looked up in
	// the synonym dictionary. Defaults to ID.
	NameFields []string
	// AliasField is the attribute key that receives the synonyms.
	// Defaults to Alias.
	AliasField string
}

// appendUnique appends the values that are not yet in list.
func appendUnique(list []string, values ...string) []string {
valueLoop:
	for _, value := range values {
		for _, v := range list {
			if v == value {
				continue valueLoop
			}
		}
		list = append(list, value)
	}
	return list
}

/*
AliasInjector returns a LineRewriter that adds synonyms of feature
identifiers to an alias attribute.

The identifiers of a feature line are the comma-separated values of
the attributes named in options.NameFields. Their synonyms in dict,
split on ',' like attribute values, are merged into the first attribute named options.AliasField if the line
has one, keeping the existing values first. Otherwise, a new alias
attribute is appended, but only if at least one synonym was found.

Lines without identifiers are flagged with MissingIdentifier, lines
where more than one identifier has synonyms with AmbiguousSynonyms, and
lines with fewer than nine columns with ShortLine. Flagged lines are
still written.
*/
func AliasInjector(dict *utils.SynDict, options AliasOptions) LineRewriter {
	var featureTypes map[utils.Symbol]bool
	if len(options.FeatureTypes) > 0 {
		featureTypes = make(map[utils.Symbol]bool)
		for _, symbol := range utils.InternAll(options.FeatureTypes) {
			featureTypes[symbol] = true
		}
	}
	nameFields := options.NameFields
	if len(nameFields) == 0 {
		nameFields = []string{IDAttribute}
	}
	aliasField := options.AliasField
	if aliasField == "" {
		aliasField = AliasAttribute
	}
	return func(line string) (string, LineStatus) {
		if isPassThrough(line) {
			return line, 0
		}
		fields := strings.Split(strings.TrimSpace(line), "\t")
		if len(fields) < nofColumns {
			return line, ShortLine
		}
		if featureTypes != nil && !featureTypes[utils.Intern(fields[TypeColumn])] {
			return line, 0
		}
		attrs := ParseAttributes(fields[AttributesColumn])
		var names []string
		for _, field := range nameFields {
			names = append(names, attrs.Values(field)...)
		}
		var status LineStatus
		if len(names) == 0 {
			status |= MissingIdentifier
		}
		var synonyms []string
		groups := 0
		for _, name := range names {
			if values, found := dict.Lookup(name); found {
				for _, value := range values {
					synonyms = appendUnique(synonyms, SplitValues(value)...)
				}
				groups++
			}
		}
		if groups > 1 {
			status |= AmbiguousSynonyms
		}
		if i := attrs.Index(aliasField); i >= 0 {
			existing := SplitValues(attrs[i].Value)
			merged := appendUnique(existing, synonyms...)
			if len(merged) == len(existing) {
				return line, status
			}
			attrs[i].Value = strings.Join(merged, ",")
		} else if len(synonyms) > 0 {
			attrs = append(attrs, Attribute{Key: aliasField, Value: strings.Join(synonyms, ",")})
		} else {
			return line, status
		}
		fields[AttributesColumn] = attrs.String()
		return strings.Join(fields, "\t"), status | Rewritten
	}
}

// AddAlias rewrites input into output with AliasInjector. Warnings are
// logged for lines flagged with MissingIdentifier, AmbiguousSynonyms
// or ShortLine.
func AddAlias(input, output string, dict *utils.SynDict, options AliasOptions) (*RewriteReport, error) {
	report, err := RewriteFile(input, output, AliasInjector(dict, options))
	if err != nil {
		return nil, err
	}
	report.EachLine(MissingIdentifier, func(lineNumber int) {
		log.Printf("Warning: No identifier was found on line %v of %v.\n", lineNumber, input)
	})
	report.EachLine(AmbiguousSynonyms, func(lineNumber int) {
		log.Printf("Warning: The identifiers on line %v of %v have more than one synonym group.\n", lineNumber, input)
	})
	report.EachLine(ShortLine, func(lineNumber int) {
		log.Printf("Warning: Line %v of %v has fewer than %v columns and was not changed.\n", lineNumber, input, nofColumns)
	})
	return report, nil
}
