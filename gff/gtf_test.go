package gff

import (
	"strings"
	"testing"
)

const gtfInput = `#!genome-build test
chr1	src	CDS	1	10	.	+	0	gene_id "g1"; transcript_id "t1"; protein_id "p1";
chr1	src	CDS	20	30	.	+	0	gene_id "g1"; transcript_id "t1"; protein_id "p2";
chr1	src	CDS	40	50	.	+	0	gene_id "g1"; transcript_id "t1"; protein_id "p1";
chr1	src	exon	1	10	.	+	.	gene_id "g1"; transcript_id "t1";
chr1	src	CDS	1	10	.	+	0	gene_id "g2"; transcript_id "t2"; protein_id "p3";
`

func TestParseTranscriptToProtein(t *testing.T) {
	dict, err := ParseTranscriptToProtein(strings.NewReader(gtfInput), "#")
	if err != nil {
		t.Fatal(err)
	}
	if dict.Len() != 2 {
		t.Fatalf("found %v transcripts", dict.Len())
	}
	if proteins, _ := dict.Lookup("t1"); len(proteins) != 2 || proteins[0] != "p1" || proteins[1] != "p2" {
		t.Errorf("t1 maps to %v", proteins)
	}
}

func TestTranscriptToProtein(t *testing.T) {
	input := writeTestFile(t, "in.gtf", gtfInput)
	output := outputFile(t, "out.tab")
	transcripts, err := TranscriptToProtein(input, output, "#")
	if err != nil {
		t.Fatal(err)
	}
	if transcripts != 2 {
		t.Errorf("wrote %v transcripts", transcripts)
	}
	if got := readTestFile(t, output); got != "t1\tp1,p2\nt2\tp3\n" {
		t.Errorf("unexpected output %q", got)
	}
}
