package trf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testDat = `Tandem Repeats Finder Program written by:

Gary Benson
Program in Bioinformatics
Boston University
Version 4.09


Sequence: chr1 first chromosome



Parameters: 2 7 7 80 10 50 500


11 40 3 10.0 3 100 0 60 33 33 0 33 1.58 ACG ACGACGACGACGACGACGACGACGACGACG
100 129 2 15.0 2 96 0 56 50 0 0 50 1.00 AT ATATATATATATATATATATATATATATAT
Sequence: chr2



Parameters: 2 7 7 80 10 50 500


5 20 4 4.0 4 100 0 32 25 25 25 25 2.00 ACGT ACGTACGTACGTACGT CCCC GGGG
`

func TestParseDat(t *testing.T) {
	c, err := ParseDat(strings.NewReader(testDat))
	if err != nil {
		t.Fatal(err)
	}
	if c.Parameters != "2 7 7 80 10 50 500" {
		t.Errorf("parameters %q", c.Parameters)
	}
	if len(c.Sequences) != 2 || c.Repeats() != 3 {
		t.Fatalf("parsed %v sequences with %v repeats", len(c.Sequences), c.Repeats())
	}
	chr1 := c.Sequences[0]
	if chr1.ID != "chr1" || chr1.Description != "first chromosome" {
		t.Errorf("unexpected sequence header %q %q", chr1.ID, chr1.Description)
	}
	r := chr1.Repeats[0]
	expected := Repeat{
		Start: 11, End: 40, Period: 3, CopyNumber: 10, ConsensusSize: 3,
		PercentMatches: 100, PercentIndels: 0, Score: 60,
		A: 33, C: 33, G: 0, T: 33, Entropy: 1.58,
		Consensus: "ACG", Sequence: "ACGACGACGACGACGACGACGACGACGACG",
	}
	if *r != expected {
		t.Errorf("parsed %+v", *r)
	}
	if r.Length() != 30 {
		t.Errorf("length %v", r.Length())
	}
	if flanked := c.Sequences[1].Repeats[0]; flanked.LeftFlank != "CCCC" || flanked.RightFlank != "GGGG" {
		t.Errorf("flanks %q %q", flanked.LeftFlank, flanked.RightFlank)
	}
	if !c.HasFlanks() {
		t.Error("HasFlanks is false")
	}
}

func TestParseDatMalformed(t *testing.T) {
	for _, input := range []string{
		"Sequence: s\n1 2 3\n",
		"Sequence: s\n1 x 3 1.0 3 100 0 60 33 33 0 33 1.58 ACG ACG\n",
	} {
		if _, err := ParseDat(strings.NewReader(input)); err == nil {
			t.Errorf("no error for %q", input)
		}
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	dat := filepath.Join(dir, "in.dat")
	if err := os.WriteFile(dat, []byte(testDat), 0600); err != nil {
		t.Fatal(err)
	}
	prefix := filepath.Join(dir, "out", "converted")
	repeats, err := Convert(dat, prefix)
	if err != nil {
		t.Fatal(err)
	}
	if repeats != 3 {
		t.Errorf("converted %v repeats", repeats)
	}
	for _, suffix := range Suffixes() {
		if _, err := os.Stat(prefix + suffix); err != nil {
			t.Error(err)
		}
	}
	short, err := os.ReadFile(prefix + ".short.tab")
	if err != nil {
		t.Fatal(err)
	}
	expected := "#SeqID\tStart\tEnd\tPeriod\tCopyNumber\tPattern\n" +
		"chr1\t11\t40\t3\t10.0\tACG\n" +
		"chr1\t100\t129\t2\t15.0\tAT\n" +
		"chr2\t5\t20\t4\t4.0\tACGT\n"
	if string(short) != expected {
		t.Errorf("unexpected short table %q", short)
	}
	gff3, err := os.ReadFile(prefix + ".gff")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(gff3), "\n"), "\n")
	if len(lines) != 4 || lines[0] != "##gff-version 3" {
		t.Fatalf("unexpected GFF %q", gff3)
	}
	if !strings.HasPrefix(lines[1], "chr1\tTRF\ttandem_repeat\t11\t40\t60\t+\t.\tID=chr1_TRF1;Period=3;CopyNumber=10.0;") {
		t.Errorf("unexpected GFF line %q", lines[1])
	}
	wide, err := os.ReadFile(prefix + ".wide.tab")
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range strings.Split(strings.TrimSuffix(string(wide), "\n"), "\n") {
		if n := len(strings.Split(line, "\t")); n != len(wideTableHeader) {
			t.Errorf("wide table line %q has %v columns", line, n)
		}
	}
	rep, err := os.ReadFile(prefix + ".rep")
	if err != nil {
		t.Fatal(err)
	}
	c, err := ParseDat(strings.NewReader(string(rep)))
	if err != nil {
		t.Fatal(err)
	}
	if c.Repeats() != 3 || *c.Sequences[0].Repeats[1] != *mustParse(t).Sequences[0].Repeats[1] {
		t.Error("report does not round trip")
	}
}

func mustParse(t *testing.T) *Collection {
	t.Helper()
	c, err := ParseDat(strings.NewReader(testDat))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestMergeOutputs(t *testing.T) {
	dir := t.TempDir()
	dat := filepath.Join(dir, "in.dat")
	if err := os.WriteFile(dat, []byte(testDat), 0600); err != nil {
		t.Fatal(err)
	}
	converted := filepath.Join(dir, "converted")
	for _, name := range []string{"b", "a"} {
		if _, err := Convert(dat, filepath.Join(converted, name)); err != nil {
			t.Fatal(err)
		}
	}
	merged, err := MergeDirectory(converted, filepath.Join(dir, "merged"))
	if err != nil {
		t.Fatal(err)
	}
	if len(merged) != len(Suffixes()) {
		t.Fatalf("merged %v", merged)
	}
	short, err := os.ReadFile(filepath.Join(dir, "merged.short.tab"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(short), "\n"); n != 7 {
		t.Errorf("merged short table has %v lines", n)
	}
	if n := strings.Count(string(short), "#SeqID"); n != 1 {
		t.Errorf("merged short table has %v headers", n)
	}
	gff3, err := os.ReadFile(filepath.Join(dir, "merged.gff"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(gff3), "##gff-version"); n != 1 {
		t.Errorf("merged GFF has %v version directives", n)
	}
	if n := strings.Count(string(gff3), "\ttandem_repeat\t"); n != 6 {
		t.Errorf("merged GFF has %v features", n)
	}
	if _, err = MergeDirectory(t.TempDir(), filepath.Join(dir, "none")); err == nil {
		t.Error("merging an empty directory succeeded")
	}
}
