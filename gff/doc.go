// Package gff is a library for reading, filtering and rewriting
// GFF3/GTF feature tables.
//
// Only the tab-separated columns and the semicolon-separated
// attribute column are interpreted; the package does not validate the
// full GFF3 grammar.
//
// There are two styles of operations. Line rewriters, such as the ones
// returned by CoordinateOrderFixer or RegionRenamer, see one line at a
// time and are executed by RewriteLines, which runs them as a pargo
// pipeline that preserves the order of the input lines. Tree filters,
// such as ExtractAnnotations and ExtractTranscripts, first assemble
// the records into a feature tree linked by Parent attributes, and
// then build a new tree that only contains the selected features.
package gff
