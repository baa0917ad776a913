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

package trf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pantera-bio/pantera/utils"
)

const (
	sequencePrefix   = "Sequence:"
	parametersPrefix = "Parameters:"

	nofRepeatFields        = 15
	nofFlankedRepeatFields = 17

	maxLineSize = 256 * 1024 * 1024
)

func parseRepeat(fields []string) (*Repeat, error) {
	var ints [11]int
	var floats [2]float64
	intFields := [...]int{0, 1, 2, 4, 5, 6, 7, 8, 9, 10, 11}
	for i, field := range intFields {
		n, err := strconv.Atoi(fields[field])
		if err != nil {
			return nil, err
		}
		ints[i] = n
	}
	for i, field := range [...]int{3, 12} {
		x, err := strconv.ParseFloat(fields[field], 64)
		if err != nil {
			return nil, err
		}
		floats[i] = x
	}
	r := &Repeat{
		Start:          ints[0],
		End:            ints[1],
		Period:         ints[2],
		CopyNumber:     floats[0],
		ConsensusSize:  ints[3],
		PercentMatches: ints[4],
		PercentIndels:  ints[5],
		Score:          ints[6],
		A:              ints[7],
		C:              ints[8],
		G:              ints[9],
		T:              ints[10],
		Entropy:        floats[1],
		Consensus:      fields[13],
		Sequence:       fields[14],
	}
	if len(fields) == nofFlankedRepeatFields {
		r.LeftFlank, r.RightFlank = fields[15], fields[16]
	}
	return r, nil
}

/*
ParseDat parses a TRF data file, as written with the -d option.

Header lines before the first "Sequence:" line are ignored. Every
"Sequence:" line starts a new Sequence, with the first word as its ID
and the rest of the line as its description. Repeat lines have fifteen
space-separated columns, or seventeen when TRF was asked for flanking
sequences.
*/
func ParseDat(r io.Reader) (*Collection, error) {
	c := new(Collection)
	var current *Sequence
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineSize)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case strings.HasPrefix(line, sequencePrefix):
			header := strings.TrimSpace(line[len(sequencePrefix):])
			current = &Sequence{ID: header}
			if i := strings.IndexAny(header, " \t"); i >= 0 {
				current.ID, current.Description = header[:i], strings.TrimSpace(header[i+1:])
			}
			c.Sequences = append(c.Sequences, current)
		case strings.HasPrefix(line, parametersPrefix):
			c.Parameters = strings.TrimSpace(line[len(parametersPrefix):])
		case current == nil:
		default:
			fields := strings.Fields(line)
			if len(fields) != nofRepeatFields && len(fields) != nofFlankedRepeatFields {
				return nil, fmt.Errorf("unexpected number of columns %v in line %v", len(fields), lineNumber)
			}
			repeat, err := parseRepeat(fields)
			if err != nil {
				return nil, fmt.Errorf("%v, in line %v", err, lineNumber)
			}
			current.Repeats = append(current.Repeats, repeat)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseDatFile parses the named TRF data file.
func ParseDatFile(filename string) (c *Collection, err error) {
	f, err := utils.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := f.Close(); err == nil {
			err = nerr
		}
	}()
	if c, err = ParseDat(f); err != nil {
		return nil, fmt.Errorf("%v, while parsing %v", err, filename)
	}
	return c, nil
}
