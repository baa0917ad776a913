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
	"path/filepath"
	"strconv"
	"strings"

	"github.com/biogo/biogo/feat"
	biogff "github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"
	"github.com/exascience/pargo/parallel"

	"github.com/pantera-bio/pantera/gff"
	"github.com/pantera-bio/pantera/internal"
	"github.com/pantera-bio/pantera/utils"
)

// Source is the source column of the GFF files written by this
// package.
const Source = "TRF"

var tandemRepeat = utils.Intern("tandem_repeat")

func formatCopyNumber(x float64) string {
	return strconv.FormatFloat(x, 'f', 1, 64)
}

func formatEntropy(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

// columns returns the columns of a repeat in data file order.
func (r *Repeat) columns() []string {
	columns := []string{
		strconv.Itoa(r.Start),
		strconv.Itoa(r.End),
		strconv.Itoa(r.Period),
		formatCopyNumber(r.CopyNumber),
		strconv.Itoa(r.ConsensusSize),
		strconv.Itoa(r.PercentMatches),
		strconv.Itoa(r.PercentIndels),
		strconv.Itoa(r.Score),
		strconv.Itoa(r.A),
		strconv.Itoa(r.C),
		strconv.Itoa(r.G),
		strconv.Itoa(r.T),
		formatEntropy(r.Entropy),
		r.Consensus,
		r.Sequence,
	}
	if r.LeftFlank != "" || r.RightFlank != "" {
		columns = append(columns, r.LeftFlank, r.RightFlank)
	}
	return columns
}

// WriteReport writes the collection in the layout of a TRF data file,
// without the program banner.
func (c *Collection) WriteReport(w io.Writer) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "# Parameters: %s\n", c.Parameters)
	for _, s := range c.Sequences {
		if s.Description != "" {
			fmt.Fprintf(out, "Sequence: %s %s\n", s.ID, s.Description)
		} else {
			fmt.Fprintf(out, "Sequence: %s\n", s.ID)
		}
		for _, r := range s.Repeats {
			out.WriteString(strings.Join(r.columns(), " "))
			out.WriteByte('\n')
		}
	}
	return out.Flush()
}

// RepeatID returns the identifier of the i-th repeat of a sequence in
// the GFF output, counting from 0.
func RepeatID(seqID string, i int) string {
	return seqID + "_TRF" + strconv.Itoa(i+1)
}

// WriteGFF writes one GFF3 tandem_repeat feature per repeat, with all
// repeat statistics as attributes.
func (c *Collection) WriteGFF(w io.Writer) error {
	out := bufio.NewWriter(w)
	out.WriteString(gff.VersionDirective + "\n")
	var buf []byte
	for _, s := range c.Sequences {
		for i, r := range s.Repeats {
			record := gff.Record{
				Seqid:  s.ID,
				Source: Source,
				Type:   tandemRepeat,
				Start:  r.Start,
				End:    r.End,
				Score:  strconv.Itoa(r.Score),
				Strand: "+",
				Phase:  ".",
				Attributes: gff.Attributes{
					{Key: gff.IDAttribute, Value: RepeatID(s.ID, i)},
					{Key: "Period", Value: strconv.Itoa(r.Period)},
					{Key: "CopyNumber", Value: formatCopyNumber(r.CopyNumber)},
					{Key: "ConsensusSize", Value: strconv.Itoa(r.ConsensusSize)},
					{Key: "PercentMatches", Value: strconv.Itoa(r.PercentMatches)},
					{Key: "PercentIndels", Value: strconv.Itoa(r.PercentIndels)},
					{Key: "Composition", Value: fmt.Sprintf("A:%d,C:%d,G:%d,T:%d", r.A, r.C, r.G, r.T)},
					{Key: "Entropy", Value: formatEntropy(r.Entropy)},
					{Key: "Pattern", Value: r.Consensus},
				},
			}
			buf = append(record.AppendTo(buf[:0]), '\n')
			out.Write(buf)
		}
	}
	return out.Flush()
}

// WriteSimpleGFF writes one GFF2 feature per repeat, with only the
// period and the consensus pattern as attributes.
func (c *Collection) WriteSimpleGFF(w io.Writer) error {
	out := bufio.NewWriter(w)
	gw := biogff.NewWriter(out, 60, true)
	for _, s := range c.Sequences {
		for i, r := range s.Repeats {
			score := float64(r.Score)
			f := &biogff.Feature{
				SeqName:    s.ID,
				Source:     Source,
				Feature:    *tandemRepeat,
				FeatStart:  feat.OneToZero(r.Start),
				FeatEnd:    r.End,
				FeatScore:  &score,
				FeatStrand: seq.Plus,
				FeatFrame:  biogff.NoFrame,
				FeatAttributes: biogff.Attributes{
					{Tag: "ID", Value: RepeatID(s.ID, i)},
					{Tag: "Period", Value: strconv.Itoa(r.Period)},
					{Tag: "Pattern", Value: r.Consensus},
				},
			}
			if _, err := gw.Write(f); err != nil {
				return err
			}
		}
	}
	return out.Flush()
}

var (
	shortTableHeader = []string{"#SeqID", "Start", "End", "Period", "CopyNumber", "Pattern"}
	wideTableHeader  = []string{
		"#SeqID", "Start", "End", "Period", "CopyNumber", "ConsensusSize",
		"PercentMatches", "PercentIndels", "Score", "A", "C", "G", "T",
		"Entropy", "Pattern", "Sequence", "LeftFlank", "RightFlank",
	}
)

// WriteShortTable writes one tab-separated line per repeat with its
// position, period, copy number and consensus pattern.
func (c *Collection) WriteShortTable(w io.Writer) error {
	out := bufio.NewWriter(w)
	out.WriteString(strings.Join(shortTableHeader, "\t") + "\n")
	for _, s := range c.Sequences {
		for _, r := range s.Repeats {
			fmt.Fprintf(out, "%s\t%d\t%d\t%d\t%s\t%s\n", s.ID, r.Start, r.End, r.Period, formatCopyNumber(r.CopyNumber), r.Consensus)
		}
	}
	return out.Flush()
}

// WriteWideTable writes one tab-separated line per repeat with all
// columns of the data file. Missing flanks are written as ".".
func (c *Collection) WriteWideTable(w io.Writer) error {
	out := bufio.NewWriter(w)
	out.WriteString(strings.Join(wideTableHeader, "\t") + "\n")
	for _, s := range c.Sequences {
		for _, r := range s.Repeats {
			columns := append([]string{s.ID}, r.columns()...)
			if len(columns) < len(wideTableHeader) {
				columns = append(columns, ".", ".")
			}
			out.WriteString(strings.Join(columns, "\t"))
			out.WriteByte('\n')
		}
	}
	return out.Flush()
}

type artifact struct {
	suffix string
	write  func(*Collection, io.Writer) error
}

var artifacts = [...]artifact{
	{".rep", (*Collection).WriteReport},
	{".gff", (*Collection).WriteGFF},
	{".simple.gff", (*Collection).WriteSimpleGFF},
	{".short.tab", (*Collection).WriteShortTable},
	{".wide.tab", (*Collection).WriteWideTable},
}

// Suffixes returns the file name suffixes of the files written by
// Convert, in a fixed order.
func Suffixes() []string {
	suffixes := make([]string, len(artifacts))
	for i, a := range artifacts {
		suffixes[i] = a.suffix
	}
	return suffixes
}

func writeArtifact(c *Collection, a artifact, filename string) (err error) {
	f, err := internal.FileCreate(filename)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := f.Close(); err == nil {
			err = nerr
		}
	}()
	if err = a.write(c, f); err != nil {
		return fmt.Errorf("%v, while writing %v", err, filename)
	}
	return nil
}

// Convert parses a TRF data file and writes one file per suffix in
// Suffixes, named outputPrefix followed by the suffix. It returns the
// number of repeats in the report.
func Convert(report, outputPrefix string) (repeats int, err error) {
	c, err := ParseDatFile(report)
	if err != nil {
		return 0, err
	}
	for _, a := range artifacts {
		if err = writeArtifact(c, a, outputPrefix+a.suffix); err != nil {
			return 0, err
		}
	}
	return c.Repeats(), nil
}

// appendFile copies the named file to out. Leading lines starting with
// '#' are skipped if skipHeader is set.
func appendFile(out io.Writer, filename string, skipHeader bool) (err error) {
	f, err := utils.Open(filename)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := f.Close(); err == nil {
			err = nerr
		}
	}()
	in := bufio.NewReader(f)
	for skipHeader {
		b, err := in.Peek(1)
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if b[0] != '#' {
			break
		}
		if _, err = in.ReadString('\n'); err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
	}
	_, err = io.Copy(out, in)
	return err
}

func mergeArtifact(prefixes []string, suffix, filename string) (err error) {
	f, err := internal.FileCreate(filename)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := f.Close(); err == nil {
			err = nerr
		}
	}()
	out := bufio.NewWriter(f)
	for i, prefix := range prefixes {
		if err = appendFile(out, prefix+suffix, i > 0); err != nil {
			return fmt.Errorf("%v, while merging %v into %v", err, prefix+suffix, filename)
		}
	}
	return out.Flush()
}

/*
MergeOutputs concatenates the files written by Convert for each of the
given prefixes, in the given order, into one file per suffix named
outputPrefix followed by the suffix. Header lines are only kept from
the first file. It returns the names of the merged files.
*/
func MergeOutputs(prefixes []string, outputPrefix string) ([]string, error) {
	merged := make([]string, len(artifacts))
	errs := make([]error, len(artifacts))
	parallel.Range(0, len(artifacts), len(artifacts), func(low, high int) {
		for i := low; i < high; i++ {
			merged[i] = outputPrefix + artifacts[i].suffix
			errs[i] = mergeArtifact(prefixes, artifacts[i].suffix, merged[i])
		}
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// ConvertedPrefixes returns the prefixes of the converted reports in
// dir, sorted by name. A prefix is recognized by its .rep file.
func ConvertedPrefixes(dir string) (prefixes []string, err error) {
	names, err := internal.Directory(dir)
	if err != nil {
		return nil, err
	}
	suffix := artifacts[0].suffix
	for _, name := range names {
		if strings.HasSuffix(name, suffix) {
			prefixes = append(prefixes, filepath.Join(dir, strings.TrimSuffix(name, suffix)))
		}
	}
	return prefixes, nil
}

// MergeDirectory merges all converted reports in dir with MergeOutputs.
func MergeDirectory(dir, outputPrefix string) ([]string, error) {
	prefixes, err := ConvertedPrefixes(dir)
	if err != nil {
		return nil, err
	}
	if len(prefixes) == 0 {
		return nil, fmt.Errorf("no converted reports found in %v", dir)
	}
	return MergeOutputs(prefixes, outputPrefix)
}
