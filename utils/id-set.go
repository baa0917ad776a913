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

package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// An IDSet is a set of feature identifiers.
type IDSet map[string]struct{}

// NewIDSet returns an IDSet containing the given identifiers.
func NewIDSet(ids ...string) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Contains tells whether id is in the set.
func (set IDSet) Contains(id string) bool {
	_, found := set[id]
	return found
}

// ParseIDSet reads one identifier per line; only the first
// tab-separated column is used. Empty lines and lines starting with
// '#' are skipped.
func ParseIDSet(r io.Reader) (IDSet, error) {
	set := make(IDSet)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if i := strings.IndexByte(line, '\t'); i >= 0 {
			line = line[:i]
		}
		set[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return set, nil
}

// ReadIDSet reads an IDSet from the named file.
func ReadIDSet(filename string) (set IDSet, err error) {
	f, err := Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := f.Close(); err == nil {
			err = nerr
		}
	}()
	if set, err = ParseIDSet(f); err != nil {
		return nil, fmt.Errorf("%v, while reading identifiers from %v", err, filename)
	}
	return set, nil
}
