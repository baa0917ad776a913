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
	"github.com/pantera-bio/pantera/utils"
)

/*
AnnotationSelector returns a selection function for Annotation.Select
that keeps top-level features with an ID in ids and a type in
featureTypes, together with all their descendants.
*/
func AnnotationSelector(ids utils.IDSet, featureTypes []string) func(*Feature) *Feature {
	types := make(map[utils.Symbol]bool)
	for _, symbol := range utils.InternAll(featureTypes) {
		types[symbol] = true
	}
	return func(feature *Feature) *Feature {
		if types[feature.Type] && ids.Contains(feature.ID()) {
			return &Feature{Record: feature.Record, Children: feature.Children}
		}
		return nil
	}
}

func isTranscript(feature *Feature) bool {
	return feature.Type == MRNA || feature.Type == Transcript
}

/*
TranscriptSelector returns a selection function for Annotation.Select
that keeps top-level mRNA and transcript features with an ID in ids.
Top-level genes are kept if at least one of their mRNA or transcript
children has an ID in ids; the copy of such a gene only has those
children.
*/
func TranscriptSelector(ids utils.IDSet) func(*Feature) *Feature {
	return func(feature *Feature) *Feature {
		switch {
		case isTranscript(feature):
			if ids.Contains(feature.ID()) {
				return &Feature{Record: feature.Record, Children: feature.Children}
			}
		case feature.Type == Gene:
			var children []*Feature
			for _, child := range feature.Children {
				if isTranscript(child) && ids.Contains(child.ID()) {
					children = append(children, child)
				}
			}
			if len(children) > 0 {
				return &Feature{Record: feature.Record, Children: children}
			}
		}
		return nil
	}
}

func extract(input, output string, selectFeature func(*Feature) *Feature) (selected int, err error) {
	if err = checkDistinct(input, output); err != nil {
		return 0, err
	}
	ann, err := ParseFile(input)
	if err != nil {
		return 0, err
	}
	result := ann.Select(selectFeature)
	for _, region := range result.Regions {
		selected += len(region.Features)
	}
	return selected, result.WriteFile(output)
}

// ExtractAnnotations writes the features of input selected by
// AnnotationSelector to output, and returns the number of selected
// top-level features.
func ExtractAnnotations(input, output string, ids utils.IDSet, featureTypes []string) (int, error) {
	return extract(input, output, AnnotationSelector(ids, featureTypes))
}

// ExtractTranscripts writes the features of input selected by
// TranscriptSelector to output, and returns the number of selected
// top-level features.
func ExtractTranscripts(input, output string, ids utils.IDSet) (int, error) {
	return extract(input, output, TranscriptSelector(ids))
}
