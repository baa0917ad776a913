// Package trf runs Tandem Repeats Finder on FASTA files, in parallel
// over chunks of large inputs, and converts its data file reports
// into tabular and GFF files.
package trf
