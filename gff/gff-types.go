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
	"strconv"
	"strings"

	"github.com/pantera-bio/pantera/utils"
)

// Column indices of a feature line.
const (
	SeqidColumn = iota
	SourceColumn
	TypeColumn
	StartColumn
	EndColumn
	ScoreColumn
	StrandColumn
	PhaseColumn
	AttributesColumn

	nofColumns
)

// Feature types with special meaning for transcript extraction.
var (
	Gene       = utils.Intern("gene")
	MRNA       = utils.Intern("mRNA")
	Transcript = utils.Intern("transcript")
)

// Standard attribute keys.
const (
	IDAttribute     = "ID"
	ParentAttribute = "Parent"
	AliasAttribute  = "Alias"
)

// An Attribute is one key=value entry of the attribute column. Entries
// without '=' are kept verbatim in Key, with NoValue set.
type Attribute struct {
	Key, Value string
	NoValue    bool
}

// Attributes is the ordered list of entries of the attribute column.
// Keys need not be unique.
type Attributes []Attribute

// ParseAttributes splits an attribute column into its entries.
func ParseAttributes(s string) (attrs Attributes) {
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" || entry == "." {
			continue
		}
		if i := strings.IndexByte(entry, '='); i >= 0 {
			attrs = append(attrs, Attribute{Key: entry[:i], Value: entry[i+1:]})
		} else {
			attrs = append(attrs, Attribute{Key: entry, NoValue: true})
		}
	}
	return attrs
}

// Index returns the index of the first entry with the given key, or -1.
func (attrs Attributes) Index(key string) int {
	for i, attr := range attrs {
		if attr.Key == key && !attr.NoValue {
			return i
		}
	}
	return -1
}

// Get returns the value of the first entry with the given key.
func (attrs Attributes) Get(key string) (string, bool) {
	if i := attrs.Index(key); i >= 0 {
		return attrs[i].Value, true
	}
	return "", false
}

// Values returns the comma-separated values of all entries with the
// given key.
func (attrs Attributes) Values(key string) (values []string) {
	for _, attr := range attrs {
		if attr.Key == key && !attr.NoValue {
			values = append(values, SplitValues(attr.Value)...)
		}
	}
	return values
}

// SplitValues splits a multi-valued attribute value on ','.
func SplitValues(value string) (values []string) {
	for _, v := range strings.Split(value, ",") {
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

// AppendTo appends the textual representation of attrs to buf.
func (attrs Attributes) AppendTo(buf []byte) []byte {
	if len(attrs) == 0 {
		return append(buf, '.')
	}
	for i, attr := range attrs {
		if i > 0 {
			buf = append(buf, ';')
		}
		buf = append(buf, attr.Key...)
		if !attr.NoValue {
			buf = append(buf, '=')
			buf = append(buf, attr.Value...)
		}
	}
	return buf
}

func (attrs Attributes) String() string {
	return string(attrs.AppendTo(nil))
}

// A Record is one line of a GFF3 feature table.
type Record struct {
	Seqid      string
	Source     string
	Type       utils.Symbol
	Start, End int
	Score      string
	Strand     string
	Phase      string
	Attributes Attributes
}

// ParseRecord parses a feature line. Lines with fewer than nine
// columns, or with start or end columns that are not integers, are
// rejected.
func ParseRecord(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < nofColumns {
		return nil, fmt.Errorf("expected %v columns, found %v", nofColumns, len(fields))
	}
	start, err := strconv.Atoi(strings.TrimSpace(fields[StartColumn]))
	if err != nil {
		return nil, fmt.Errorf("invalid start column: %v", err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(fields[EndColumn]))
	if err != nil {
		return nil, fmt.Errorf("invalid end column: %v", err)
	}
	return &Record{
		Seqid:      fields[SeqidColumn],
		Source:     fields[SourceColumn],
		Type:       utils.Intern(fields[TypeColumn]),
		Start:      start,
		End:        end,
		Score:      fields[ScoreColumn],
		Strand:     fields[StrandColumn],
		Phase:      fields[PhaseColumn],
		Attributes: ParseAttributes(strings.TrimRight(fields[AttributesColumn], "\r")),
	}, nil
}

// ID returns the value of the ID attribute, or "".
func (rec *Record) ID() string {
	id, _ := rec.Attributes.Get(IDAttribute)
	return id
}

// Parents returns the values of the Parent attribute.
func (rec *Record) Parents() []string {
	return rec.Attributes.Values(ParentAttribute)
}

func appendColumn(buf []byte, s string) []byte {
	if s == "" {
		return append(buf, '.', '\t')
	}
	buf = append(buf, s...)
	return append(buf, '\t')
}

// AppendTo appends the feature line for rec to buf, without a
// trailing newline.
func (rec *Record) AppendTo(buf []byte) []byte {
	buf = appendColumn(buf, rec.Seqid)
	buf = appendColumn(buf, rec.Source)
	buf = appendColumn(buf, *rec.Type)
	buf = strconv.AppendInt(buf, int64(rec.Start), 10)
	buf = append(buf, '\t')
	buf = strconv.AppendInt(buf, int64(rec.End), 10)
	buf = append(buf, '\t')
	buf = appendColumn(buf, rec.Score)
	buf = appendColumn(buf, rec.Strand)
	buf = appendColumn(buf, rec.Phase)
	return rec.Attributes.AppendTo(buf)
}

func (rec *Record) String() string {
	return string(rec.AppendTo(nil))
}

// A Feature is a Record together with the features that name it as
// their parent.
type Feature struct {
	*Record
	Children []*Feature
}

// A Region groups the top-level features of one sequence region, in
// file order.
type Region struct {
	Name     string
	Features []*Feature
}

// An Annotation is a feature table assembled into feature trees,
// grouped by sequence region in order of first appearance.
type Annotation struct {
	Regions []*Region
}

// Build links records into feature trees. A record becomes the child
// of every record whose ID appears in its Parent attribute; records
// without a resolvable parent are top-level features of their
// sequence region. When several records share an ID, children are
// attached to the first of them.
func Build(records []*Record) *Annotation {
	features := make([]*Feature, len(records))
	byID := make(map[string]*Feature)
	for i, rec := range records {
		feature := &Feature{Record: rec}
		features[i] = feature
		if id := rec.ID(); id != "" {
			if _, found := byID[id]; !found {
				byID[id] = feature
			}
		}
	}
	ann := new(Annotation)
	regions := make(map[string]*Region)
	for _, feature := range features {
		attached := false
		for _, parentID := range feature.Parents() {
			if parent, found := byID[parentID]; found && parent != feature {
				parent.Children = append(parent.Children, feature)
				attached = true
			}
		}
		if attached {
			continue
		}
		region, found := regions[feature.Seqid]
		if !found {
			region = &Region{Name: feature.Seqid}
			regions[feature.Seqid] = region
			ann.Regions = append(ann.Regions, region)
		}
		region.Features = append(region.Features, feature)
	}
	return ann
}

// Select returns a new Annotation with the top-level features for
// which selectFeature returns a non-nil feature, which may be a
// rebuilt copy. Regions without selected features are dropped. The
// receiver is not modified.
func (ann *Annotation) Select(selectFeature func(*Feature) *Feature) *Annotation {
	result := new(Annotation)
	for _, region := range ann.Regions {
		var selected []*Feature
		for _, feature := range region.Features {
			if f := selectFeature(feature); f != nil {
				selected = append(selected, f)
			}
		}
		if len(selected) > 0 {
			result.Regions = append(result.Regions, &Region{Name: region.Name, Features: selected})
		}
	}
	return result
}

// Walk calls f for every feature of the annotation, parents before
// children. Features with several parents are visited once.
func (ann *Annotation) Walk(f func(*Feature)) {
	visited := make(map[*Feature]bool)
	var walk func(*Feature)
	walk = func(feature *Feature) {
		if visited[feature] {
			return
		}
		visited[feature] = true
		f(feature)
		for _, child := range feature.Children {
			walk(child)
		}
	}
	for _, region := range ann.Regions {
		for _, feature := range region.Features {
			walk(feature)
		}
	}
}
