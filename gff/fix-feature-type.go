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
	"strings"

	"github.com/bits-and-blooms/bitset"
)

/*
FeatureTypeInserter returns a LineRewriter for feature lines that lack
their feature type column. Such lines are recognized by start and end
columns that do not parse as integers, because all columns after the
source column are shifted to the left by one. The given featureType is
inserted as the third column. Other lines are kept as they are.
*/
func FeatureTypeInserter(featureType string) LineRewriter {
	return func(line string) (string, LineStatus) {
		if isPassThrough(line) {
			return line, 0
		}
		fields := strings.Split(line, "\t")
		if _, _, ok := parseCoordinates(fields); ok {
			return line, 0
		}
		at := TypeColumn
		if at > len(fields) {
			at = len(fields)
		}
		fields = append(fields[:at], append([]string{featureType}, fields[at:]...)...)
		return strings.Join(fields, "\t"), Rewritten
	}
}

// FixAbsentFeatureType rewrites input into output with
// FeatureTypeInserter, and returns the 1-based numbers of the repaired
// lines.
func FixAbsentFeatureType(input, output, featureType string) (*bitset.BitSet, error) {
	report, err := RewriteFile(input, output, FeatureTypeInserter(featureType))
	if err != nil {
		return nil, err
	}
	return report.LineNumbers(Rewritten), nil
}
