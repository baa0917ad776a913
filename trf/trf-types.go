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

// A Repeat is one tandem repeat reported by TRF. Start and End are
// 1-based and inclusive.
type Repeat struct {
	Start, End     int
	Period         int
	CopyNumber     float64
	ConsensusSize  int
	PercentMatches int
	PercentIndels  int
	Score          int
	A, C, G, T     int
	Entropy        float64
	Consensus      string
	Sequence       string
	LeftFlank      string
	RightFlank     string
}

// Length returns the number of bases covered by the repeat.
func (r *Repeat) Length() int {
	return r.End - r.Start + 1
}

// A Sequence groups the repeats of one input sequence, in report order.
type Sequence struct {
	ID          string
	Description string
	Repeats     []*Repeat
}

// A Collection is the content of a TRF data file.
type Collection struct {
	// Parameters is the parameter line of the report, without the
	// "Parameters:" prefix.
	Parameters string
	Sequences  []*Sequence
}

// Repeats returns the total number of repeats in the collection.
func (c *Collection) Repeats() (n int) {
	for _, s := range c.Sequences {
		n += len(s.Repeats)
	}
	return n
}

// HasFlanks reports whether any repeat in the collection has flanking
// sequences.
func (c *Collection) HasFlanks() bool {
	for _, s := range c.Sequences {
		for _, r := range s.Repeats {
			if r.LeftFlank != "" || r.RightFlank != "" {
				return true
			}
		}
	}
	return false
}
