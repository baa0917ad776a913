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
	"log"
	"strings"
)

// A SynDict maps identifiers onto one or more synonyms. Keys are
// remembered in the order in which they were first added.
type SynDict struct {
	keys   []string
	values map[string][]string
}

// SynDictFormat describes the layout of a synonym file.
type SynDictFormat struct {
	// KeyColumn and ValueColumn are 0-based column indices.
	KeyColumn, ValueColumn int
	// Separator separates columns.
	Separator string
	// ValuesSeparator, if not empty, splits the value column into
	// several synonyms.
	ValuesSeparator string
	// Lines starting with CommentPrefix are ignored, unless it is empty.
	CommentPrefix string
}

// DefaultSynDictFormat is a two-column, tab-separated file with '#'
// comments and unsplit values.
var DefaultSynDictFormat = SynDictFormat{
	KeyColumn:     0,
	ValueColumn:   1,
	Separator:     "\t",
	CommentPrefix: "#",
}

// NewSynDict allocates an empty SynDict.
func NewSynDict() *SynDict {
	return &SynDict{values: make(map[string][]string)}
}

// Add appends the given values to the synonyms of key. Values that are
// already present for key are not added again.
func (dict *SynDict) Add(key string, values ...string) {
	old, found := dict.values[key]
	if !found {
		dict.keys = append(dict.keys, key)
	}
valueLoop:
	for _, value := range values {
		for _, v := range old {
			if v == value {
				continue valueLoop
			}
		}
		old = append(old, value)
	}
	dict.values[key] = old
}

// Lookup returns the synonyms of key.
func (dict *SynDict) Lookup(key string) (values []string, found bool) {
	values, found = dict.values[key]
	return
}

// First returns the first synonym of key.
func (dict *SynDict) First(key string) (string, bool) {
	if values := dict.values[key]; len(values) > 0 {
		return values[0], true
	}
	return "", false
}

// Len returns the number of keys.
func (dict *SynDict) Len() int {
	return len(dict.keys)
}

// Keys returns the keys in insertion order.
func (dict *SynDict) Keys() []string {
	return dict.keys
}

// ParseSynDict reads a synonym dictionary in the given format.
func ParseSynDict(r io.Reader, format SynDictFormat) (*SynDict, error) {
	if format.Separator == "" {
		format.Separator = "\t"
	}
	needed := format.KeyColumn
	if format.ValueColumn > needed {
		needed = format.ValueColumn
	}
	dict := NewSynDict()
	scanner := bufio.NewScanner(r)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || (format.CommentPrefix != "" && strings.HasPrefix(line, format.CommentPrefix)) {
			continue
		}
		columns := strings.Split(line, format.Separator)
		if len(columns) <= needed {
			log.Printf("Warning: Skipping synonym line %v with %v column(s).\n", lineNumber, len(columns))
			continue
		}
		value := strings.TrimSpace(columns[format.ValueColumn])
		if format.ValuesSeparator == "" {
			dict.Add(columns[format.KeyColumn], value)
			continue
		}
		var values []string
		for _, v := range strings.Split(value, format.ValuesSeparator) {
			if v != "" {
				values = append(values, v)
			}
		}
		dict.Add(columns[format.KeyColumn], values...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return dict, nil
}

// ReadSynDict reads a synonym dictionary from the named file.
func ReadSynDict(filename string, format SynDictFormat) (dict *SynDict, err error) {
	f, err := Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := f.Close(); err == nil {
			err = nerr
		}
	}()
	if dict, err = ParseSynDict(f, format); err != nil {
		return nil, fmt.Errorf("%v, while reading synonyms from %v", err, filename)
	}
	return dict, nil
}

// Write writes one "key<TAB>value1,value2,..." line per key, in
// insertion order.
func (dict *SynDict) Write(w io.Writer) error {
	out := bufio.NewWriter(w)
	for _, key := range dict.keys {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", key, strings.Join(dict.values[key], ",")); err != nil {
			return err
		}
	}
	return out.Flush()
}
