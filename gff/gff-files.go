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
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/exascience/pargo/pipeline"

	"github.com/pantera-bio/pantera/internal"
	"github.com/pantera-bio/pantera/utils"
)

// VersionDirective is the first line of every GFF3 file written by
// this package.
const VersionDirective = "##gff-version 3"

const fastaDirective = "##FASTA"

func isPassThrough(line string) bool {
	return line == "" || line[0] == '#' || strings.TrimSpace(line) == ""
}

type parsedLine struct {
	record    *Record
	malformed bool
	fasta     bool
}

// Parse reads a GFF3 feature table and assembles it into an
// Annotation. Comment and directive lines are skipped, as is anything
// after a ##FASTA directive. Malformed lines are skipped with a
// warning.
func Parse(r io.Reader) (*Annotation, error) {
	var records []*Record
	var lineNumber, malformed int
	fastaSeen := false
	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(r))
	p.Add(
		pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
			lines := data.([]string)
			parsed := make([]parsedLine, len(lines))
			for i, line := range lines {
				switch {
				case strings.HasPrefix(line, fastaDirective):
					parsed[i].fasta = true
				case isPassThrough(line):
				default:
					if rec, err := ParseRecord(line); err != nil {
						parsed[i].malformed = true
					} else {
						parsed[i].record = rec
					}
				}
			}
			return parsed
		})),
		pipeline.StrictOrd(pipeline.Receive(func(_ int, data interface{}) interface{} {
			for _, line := range data.([]parsedLine) {
				lineNumber++
				if fastaSeen {
					continue
				}
				switch {
				case line.fasta:
					fastaSeen = true
				case line.malformed:
					malformed++
					log.Printf("Warning: Skipping malformed feature line %v.\n", lineNumber)
				case line.record != nil:
					records = append(records, line.record)
				}
			}
			return nil
		})),
	)
	p.Run()
	if err := p.Err(); err != nil {
		return nil, err
	}
	if malformed > 0 {
		log.Printf("Warning: %v malformed feature line(s) skipped.\n", malformed)
	}
	return Build(records), nil
}

// ParseFile reads and assembles the named GFF3 file.
func ParseFile(filename string) (ann *Annotation, err error) {
	f, err := utils.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := f.Close(); err == nil {
			err = nerr
		}
	}()
	if ann, err = Parse(f); err != nil {
		return nil, fmt.Errorf("%v, while parsing %v", err, filename)
	}
	return ann, nil
}

// Write writes the annotation in GFF3 format, features depth-first.
func (ann *Annotation) Write(w io.Writer) (err error) {
	out := bufio.NewWriter(w)
	if _, err = out.WriteString(VersionDirective + "\n"); err != nil {
		return err
	}
	buf := internal.ReserveByteBuffer()
	defer func() { internal.ReleaseByteBuffer(buf) }()
	ann.Walk(func(feature *Feature) {
		if err != nil {
			return
		}
		buf = append(feature.AppendTo(buf[:0]), '\n')
		_, err = out.Write(buf)
	})
	if err != nil {
		return err
	}
	return out.Flush()
}

// WriteFile writes the annotation to the named file.
func (ann *Annotation) WriteFile(filename string) (err error) {
	f, err := internal.FileCreate(filename)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := f.Close(); err == nil {
			err = nerr
		}
	}()
	if err = ann.Write(f); err != nil {
		return fmt.Errorf("%v, while writing %v", err, filename)
	}
	return nil
}

// LineStatus describes what a LineRewriter did with a line. The
// individual flags can be combined.
type LineStatus uint

const (
	// Rewritten lines differ from their input.
	Rewritten LineStatus = 1 << iota
	// Dropped lines are not written to the output.
	Dropped
	// MissingIdentifier lines have no identifier attribute.
	MissingIdentifier
	// AmbiguousSynonyms lines have more than one identifier with synonyms.
	AmbiguousSynonyms
	// ShortLine lines have fewer columns than a feature line.
	ShortLine

	nofLineStatus = iota
)

// A LineRewriter returns the replacement for a single line of a
// feature table, together with its status. LineRewriters are called
// concurrently and must not modify shared state.
type LineRewriter func(line string) (string, LineStatus)

// A RewriteReport records the 1-based numbers of the lines for each
// LineStatus flag.
type RewriteReport struct {
	Lines       int
	lineNumbers [nofLineStatus]*bitset.BitSet
}

func newRewriteReport() *RewriteReport {
	report := new(RewriteReport)
	for i := range report.lineNumbers {
		report.lineNumbers[i] = bitset.New(0)
	}
	return report
}

func (report *RewriteReport) record(lineNumber int, status LineStatus) {
	for i := 0; status != 0; i, status = i+1, status>>1 {
		if status&1 != 0 {
			report.lineNumbers[i].Set(uint(lineNumber))
		}
	}
}

func statusIndex(status LineStatus) int {
	for i := 0; i < nofLineStatus; i++ {
		if status == 1<<uint(i) {
			return i
		}
	}
	panic(fmt.Sprintf("invalid line status %v", uint(status)))
}

// LineNumbers returns the set of line numbers flagged with the given
// single status flag.
func (report *RewriteReport) LineNumbers(status LineStatus) *bitset.BitSet {
	return report.lineNumbers[statusIndex(status)]
}

// Count returns the number of lines flagged with the given single
// status flag.
func (report *RewriteReport) Count(status LineStatus) int {
	return int(report.LineNumbers(status).Count())
}

// EachLine calls f with every line number flagged with status, in
// increasing order.
func (report *RewriteReport) EachLine(status LineStatus, f func(lineNumber int)) {
	set := report.LineNumbers(status)
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		f(int(i))
	}
}

type rewrittenLine struct {
	line   string
	status LineStatus
}

// RewriteLines applies rewrite to every line of r and writes the
// results to w, in input order. Lines are processed in parallel
// batches.
func RewriteLines(r io.Reader, w io.Writer, rewrite LineRewriter) (*RewriteReport, error) {
	report := newRewriteReport()
	out := bufio.NewWriter(w)
	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(r))
	p.Add(
		pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
			lines := data.([]string)
			results := make([]rewrittenLine, len(lines))
			for i, line := range lines {
				results[i].line, results[i].status = rewrite(line)
			}
			return results
		})),
		pipeline.StrictOrd(pipeline.Receive(func(_ int, data interface{}) interface{} {
			buf := internal.ReserveByteBuffer()
			for _, result := range data.([]rewrittenLine) {
				report.Lines++
				report.record(report.Lines, result.status)
				if result.status&Dropped == 0 {
					buf = append(buf, result.line...)
					buf = append(buf, '\n')
				}
			}
			if _, err := out.Write(buf); err != nil {
				p.SetErr(err)
			}
			internal.ReleaseByteBuffer(buf)
			return nil
		})),
	)
	p.Run()
	if err := p.Err(); err != nil {
		return nil, err
	}
	return report, out.Flush()
}

// RewriteFile applies rewrite to every line of the input file and
// writes the output file.
func RewriteFile(input, output string, rewrite LineRewriter) (report *RewriteReport, err error) {
	if err = checkDistinct(input, output); err != nil {
		return nil, err
	}
	in, err := utils.Open(input)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := in.Close(); err == nil {
			err = nerr
		}
	}()
	out, err := internal.FileCreate(output)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := out.Close(); err == nil {
			err = nerr
		}
	}()
	if report, err = RewriteLines(in, out, rewrite); err != nil {
		return nil, fmt.Errorf("%v, while rewriting %v into %v", err, input, output)
	}
	return report, nil
}

// checkDistinct rejects rewriting a file onto itself.
func checkDistinct(input, output string) error {
	in, err := os.Stat(input)
	if err != nil {
		return err
	}
	if out, err := os.Stat(output); err == nil && os.SameFile(in, out) {
		return fmt.Errorf("input file %v and output file %v are the same", input, output)
	}
	return nil
}
