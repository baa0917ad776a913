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
	"fmt"
	"io"
	"strings"

	"github.com/exascience/pargo/pipeline"

	"github.com/pantera-bio/pantera/internal"
	"github.com/pantera-bio/pantera/utils"
)

type transcriptProtein struct {
	transcript, protein string
}

func unquote(s string) string {
	return strings.Trim(s, "\"")
}

// transcriptProteinPair extracts the transcript_id and protein_id
// entries of the last column of a GTF line.
func transcriptProteinPair(line string) (pair transcriptProtein, ok bool) {
	column := line
	if i := strings.LastIndexByte(line, '\t'); i >= 0 {
		column = line[i+1:]
	}
	for _, entry := range strings.Split(column, ";") {
		keyValue := strings.Fields(entry)
		if len(keyValue) != 2 {
			continue
		}
		switch keyValue[0] {
		case "transcript_id":
			pair.transcript = unquote(keyValue[1])
		case "protein_id":
			pair.protein = unquote(keyValue[1])
		}
	}
	return pair, pair.transcript != "" && pair.protein != ""
}

/*
ParseTranscriptToProtein maps transcript identifiers of a GTF file onto
the protein identifiers that occur on the same lines. Lines without
both a transcript_id and a protein_id, and lines starting with
commentPrefix, are skipped.
*/
func ParseTranscriptToProtein(r io.Reader, commentPrefix string) (*utils.SynDict, error) {
	dict := utils.NewSynDict()
	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(r))
	p.Add(
		pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
			var pairs []transcriptProtein
			for _, line := range data.([]string) {
				if line == "" || (commentPrefix != "" && strings.HasPrefix(line, commentPrefix)) {
					continue
				}
				if pair, ok := transcriptProteinPair(strings.TrimSpace(line)); ok {
					pairs = append(pairs, pair)
				}
			}
			return pairs
		})),
		pipeline.StrictOrd(pipeline.Receive(func(_ int, data interface{}) interface{} {
			for _, pair := range data.([]transcriptProtein) {
				dict.Add(pair.transcript, pair.protein)
			}
			return nil
		})),
	)
	p.Run()
	if err := p.Err(); err != nil {
		return nil, err
	}
	return dict, nil
}

// TranscriptToProtein writes the transcript to protein mapping of the
// input GTF file as "transcript<TAB>protein1,protein2" lines, and
// returns the number of transcripts.
func TranscriptToProtein(input, output, commentPrefix string) (transcripts int, err error) {
	in, err := utils.Open(input)
	if err != nil {
		return 0, err
	}
	defer func() {
		if nerr := in.Close(); err == nil {
			err = nerr
		}
	}()
	dict, err := ParseTranscriptToProtein(in, commentPrefix)
	if err != nil {
		return 0, fmt.Errorf("%v, while parsing %v", err, input)
	}
	out, err := internal.FileCreate(output)
	if err != nil {
		return 0, err
	}
	defer func() {
		if nerr := out.Close(); err == nil {
			err = nerr
		}
	}()
	if err = dict.Write(out); err != nil {
		return 0, fmt.Errorf("%v, while writing %v", err, output)
	}
	return dict.Len(), nil
}
