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
	"strconv"
	"strings"
)

func parseCoordinates(fields []string) (start, end int, ok bool) {
	if len(fields) <= EndColumn {
		return 0, 0, false
	}
	start, err := strconv.Atoi(strings.TrimSpace(fields[StartColumn]))
	if err != nil {
		return 0, 0, false
	}
	end, err = strconv.Atoi(strings.TrimSpace(fields[EndColumn]))
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

/*
CoordinateOrderFixer swaps the start and end columns of feature lines
where start > end. Lines whose start or end column is missing or not an
integer are dropped. Comment and blank lines are kept as they are.
*/
func CoordinateOrderFixer(line string) (string, LineStatus) {
	if isPassThrough(line) {
		return line, 0
	}
	fields := strings.Split(line, "\t")
	start, end, ok := parseCoordinates(fields)
	if !ok {
		return line, Dropped
	}
	if start <= end {
		return line, 0
	}
	fields[StartColumn], fields[EndColumn] = fields[EndColumn], fields[StartColumn]
	return strings.Join(fields, "\t"), Rewritten
}

// FixCoordinatesOrder rewrites input into output with
// CoordinateOrderFixer, and returns the number of fixed and of dropped
// malformed lines.
func FixCoordinatesOrder(input, output string) (fixed, malformed int, err error) {
	report, err := RewriteFile(input, output, CoordinateOrderFixer)
	if err != nil {
		return 0, 0, err
	}
	return report.Count(Rewritten), report.Count(Dropped), nil
}
