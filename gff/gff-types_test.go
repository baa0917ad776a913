package gff

import (
	"strings"
	"testing"
)

func TestParseRecord(t *testing.T) {
	line := "chr1\tsrc\tmRNA\t10\t200\t.\t-\t.\tID=t1;Parent=g1,g2;Note"
	rec, err := ParseRecord(line)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Seqid != "chr1" || *rec.Type != "mRNA" || rec.Start != 10 || rec.End != 200 || rec.Strand != "-" {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.ID() != "t1" {
		t.Errorf("ID is %v", rec.ID())
	}
	if parents := rec.Parents(); len(parents) != 2 || parents[0] != "g1" || parents[1] != "g2" {
		t.Errorf("Parents are %v", parents)
	}
	if rec.String() != line {
		t.Errorf("record printed as %q", rec.String())
	}
	for _, bad := range []string{
		"chr1\tsrc\tgene\t10\t200",
		"chr1\tsrc\tgene\tx\t200\t.\t+\t.\tID=g1",
		"chr1\tsrc\tgene\t10\ty\t.\t+\t.\tID=g1",
	} {
		if _, err := ParseRecord(bad); err == nil {
			t.Errorf("no error for %q", bad)
		}
	}
}

func TestParseAttributes(t *testing.T) {
	attrs := ParseAttributes("ID=g1; Alias=a,b;;Note;.")
	if len(attrs) != 3 {
		t.Fatalf("parsed %v", attrs)
	}
	if values := attrs.Values("Alias"); len(values) != 2 || values[0] != "a" || values[1] != "b" {
		t.Errorf("Alias values are %v", values)
	}
	if _, found := attrs.Get("Note"); found {
		t.Error("Note has no value")
	}
	if s := attrs.String(); s != "ID=g1;Alias=a,b;Note" {
		t.Errorf("attributes printed as %q", s)
	}
	if s := Attributes(nil).String(); s != "." {
		t.Errorf("empty attributes printed as %q", s)
	}
}

const treeInput = `##gff-version 3
chr1	s	gene	1	100	.	+	.	ID=g1
chr1	s	mRNA	1	100	.	+	.	ID=t1;Parent=g1
chr1	s	exon	1	50	.	+	.	ID=e1;Parent=t1
chr1	s	mRNA	1	100	.	+	.	ID=t2;Parent=g1
chr2	s	gene	1	10	.	-	.	ID=g2
chr2	s	mRNA	1	10	.	-	.	ID=t3;Parent=g2
chr1	s	gene	300	400	.	+	.	ID=g3
`

func TestBuild(t *testing.T) {
	ann, err := Parse(strings.NewReader(treeInput))
	if err != nil {
		t.Fatal(err)
	}
	if len(ann.Regions) != 2 || ann.Regions[0].Name != "chr1" || ann.Regions[1].Name != "chr2" {
		t.Fatalf("unexpected regions %v", ann.Regions)
	}
	chr1 := ann.Regions[0].Features
	if len(chr1) != 2 || chr1[0].ID() != "g1" || chr1[1].ID() != "g3" {
		t.Fatalf("unexpected chr1 features")
	}
	if len(chr1[0].Children) != 2 || len(chr1[0].Children[0].Children) != 1 {
		t.Error("g1 tree is incomplete")
	}
	var ids []string
	ann.Walk(func(feature *Feature) { ids = append(ids, feature.ID()) })
	if got := strings.Join(ids, ","); got != "g1,t1,e1,t2,g3,g2,t3" {
		t.Errorf("Walk visited %v", got)
	}
}

func TestBuildMultipleParents(t *testing.T) {
	input := "c\ts\tgene\t1\t9\t.\t+\t.\tID=a\n" +
		"c\ts\tgene\t1\t9\t.\t+\t.\tID=b\n" +
		"c\ts\texon\t1\t9\t.\t+\t.\tID=x;Parent=a,b\n"
	ann, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	if err = ann.Write(&sb); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(sb.String(), "ID=x"); n != 1 {
		t.Errorf("exon written %v times", n)
	}
}

func TestParseSkipsMalformedAndFasta(t *testing.T) {
	input := "chr1\ts\tgene\t1\t100\t.\t+\t.\tID=g1\n" +
		"chr1\ts\tgene\toops\n" +
		"##FASTA\n" +
		">chr1\n" +
		"ACGT\n"
	ann, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	ann.Walk(func(*Feature) { n++ })
	if n != 1 {
		t.Errorf("parsed %v features", n)
	}
}
