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
	"fmt"
	"path/filepath"
	"strconv"
)

// Options are the scoring and reporting parameters of a TRF run.
type Options struct {
	MatchingWeight          int  `toml:"matching-weight" yaml:"matching-weight"`
	MismatchingPenalty      int  `toml:"mismatching-penalty" yaml:"mismatching-penalty"`
	IndelPenalty            int  `toml:"indel-penalty" yaml:"indel-penalty"`
	MatchProbability        int  `toml:"match-probability" yaml:"match-probability"`
	IndelProbability        int  `toml:"indel-probability" yaml:"indel-probability"`
	MinAlignmentScore       int  `toml:"min-alignment-score" yaml:"min-alignment-score"`
	MaxPeriod               int  `toml:"max-period" yaml:"max-period"`
	ReportFlankingSequences bool `toml:"report-flanking-sequences" yaml:"report-flanking-sequences"`
}

// DefaultOptions returns the parameters recommended by the TRF
// authors.
func DefaultOptions() Options {
	return Options{
		MatchingWeight:     2,
		MismatchingPenalty: 7,
		IndelPenalty:       7,
		MatchProbability:   80,
		IndelProbability:   10,
		MinAlignmentScore:  50,
		MaxPeriod:          500,
	}
}

// Validate checks the parameter ranges TRF accepts.
func (opts Options) Validate() error {
	switch {
	case opts.MatchingWeight <= 0:
		return fmt.Errorf("invalid matching weight %v", opts.MatchingWeight)
	case opts.MismatchingPenalty <= 0:
		return fmt.Errorf("invalid mismatching penalty %v", opts.MismatchingPenalty)
	case opts.IndelPenalty <= 0:
		return fmt.Errorf("invalid indel penalty %v", opts.IndelPenalty)
	case opts.MatchProbability < 0 || opts.MatchProbability > 100:
		return fmt.Errorf("invalid match probability %v", opts.MatchProbability)
	case opts.IndelProbability < 0 || opts.IndelProbability > 100:
		return fmt.Errorf("invalid indel probability %v", opts.IndelProbability)
	case opts.MinAlignmentScore < 0:
		return fmt.Errorf("invalid minimum alignment score %v", opts.MinAlignmentScore)
	case opts.MaxPeriod <= 0:
		return fmt.Errorf("invalid maximum period %v", opts.MaxPeriod)
	}
	return nil
}

func (opts Options) scores() []int {
	return []int{
		opts.MatchingWeight,
		opts.MismatchingPenalty,
		opts.IndelPenalty,
		opts.MatchProbability,
		opts.IndelProbability,
		opts.MinAlignmentScore,
		opts.MaxPeriod,
	}
}

/*
Args returns the command line arguments for running TRF on the given
FASTA file:

	file match mismatch delta PM PI minscore maxperiod [-f] -d -h

The data file is always requested and HTML output is always
suppressed.
*/
func (opts Options) Args(file string) []string {
	args := []string{file}
	for _, score := range opts.scores() {
		args = append(args, strconv.Itoa(score))
	}
	if opts.ReportFlankingSequences {
		args = append(args, "-f")
	}
	return append(args, "-d", "-h")
}

// ReportName returns the name TRF gives to the data file for the given
// FASTA file. TRF writes it to its working directory.
func (opts Options) ReportName(file string) string {
	buf := []byte(filepath.Base(file))
	for _, score := range opts.scores() {
		buf = append(buf, '.')
		buf = strconv.AppendInt(buf, int64(score), 10)
	}
	return string(append(buf, ".dat"...))
}
