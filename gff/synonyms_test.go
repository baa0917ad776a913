package gff

import (
	"testing"

	"github.com/pantera-bio/pantera/utils"
)

func TestRenameRegions(t *testing.T) {
	dict := utils.NewSynDict()
	dict.Add("oldname", "newname")
	contents := "# oldname\n" +
		"oldname\ts\tgene\t1\t10\t.\t+\t.\tID=g1\n" +
		"other\ts\tgene\t1\t10\t.\t+\t.\tID=g2\n"
	input := writeTestFile(t, "in.gff", contents)
	output := outputFile(t, "out.gff")
	renamed, err := RenameRegions(input, output, dict)
	if err != nil {
		t.Fatal(err)
	}
	if renamed != 1 {
		t.Errorf("renamed %v lines", renamed)
	}
	expected := "# oldname\n" +
		"newname\ts\tgene\t1\t10\t.\t+\t.\tID=g1\n" +
		"other\ts\tgene\t1\t10\t.\t+\t.\tID=g2\n"
	if got := readTestFile(t, output); got != expected {
		t.Errorf("unexpected output %q", got)
	}
}

func TestRegionRenamer(t *testing.T) {
	dict := utils.NewSynDict()
	dict.Add("oldname", "newname", "other")
	rewrite := RegionRenamer(dict)
	for _, test := range []struct {
		line, expected string
		status         LineStatus
	}{
		{"oldname\tX\tgene\t1\t10\t.\t+\t.\t.", "newname\tX\tgene\t1\t10\t.\t+\t.\t.", Rewritten},
		{"oldname", "newname", Rewritten},
		{"unknown\tX\tgene\t1\t10\t.\t+\t.\t.", "unknown\tX\tgene\t1\t10\t.\t+\t.\t.", 0},
		{"", "", 0},
	} {
		line, status := rewrite(test.line)
		if line != test.expected || status != test.status {
			t.Errorf("renaming %q gave %q with status %v", test.line, line, status)
		}
	}
}

func aliasDict() *utils.SynDict {
	dict := utils.NewSynDict()
	dict.Add("g1", "A1", "A2")
	dict.Add("t1", "B1")
	return dict
}

func TestAliasInjectorSplitsSynonyms(t *testing.T) {
	dict := utils.NewSynDict()
	dict.Add("g1", "A,B", "C")
	rewrite := AliasInjector(dict, AliasOptions{})
	line, status := rewrite("c\ts\tgene\t1\t9\t.\t+\t.\tID=g1;Alias=A")
	if expected := "c\ts\tgene\t1\t9\t.\t+\t.\tID=g1;Alias=A,B,C"; line != expected || status != Rewritten {
		t.Errorf("got %q with status %v, expected %q", line, status, expected)
	}
	line, status = rewrite("c\ts\tgene\t1\t9\t.\t+\t.\tID=g1;Alias=C,B,A")
	if expected := "c\ts\tgene\t1\t9\t.\t+\t.\tID=g1;Alias=C,B,A"; line != expected || status != 0 {
		t.Errorf("got %q with status %v, expected %q", line, status, expected)
	}
}

func TestAliasInjector(t *testing.T) {
	rewrite := AliasInjector(aliasDict(), AliasOptions{})
	for _, test := range []struct {
		line, expected string
		status         LineStatus
	}{
		{"##gff-version 3", "##gff-version 3", 0},
		{"c\ts\tgene\t1\t9\t.\t+\t.\tID=g1", "c\ts\tgene\t1\t9\t.\t+\t.\tID=g1;Alias=A1,A2", Rewritten},
		{"c\ts\tmRNA\t1\t9\t.\t+\t.\tID=t1;Alias=B1", "c\ts\tmRNA\t1\t9\t.\t+\t.\tID=t1;Alias=B1", 0},
		{"c\ts\tmRNA\t1\t9\t.\t+\t.\tID=t1;Alias=X", "c\ts\tmRNA\t1\t9\t.\t+\t.\tID=t1;Alias=X,B1", Rewritten},
		{"c\ts\texon\t1\t9\t.\t+\t.\tParent=t1", "c\ts\texon\t1\t9\t.\t+\t.\tParent=t1", MissingIdentifier},
		{"c\ts\tgene\t1\t9\t.\t+\t.\tID=g1,t1", "c\ts\tgene\t1\t9\t.\t+\t.\tID=g1,t1;Alias=A1,A2,B1", Rewritten | AmbiguousSynonyms},
		{"c\ts\tgene\t1\t9", "c\ts\tgene\t1\t9", ShortLine},
		{"c\ts\tgene\t1\t9\t.\t+\t.\tID=zz", "c\ts\tgene\t1\t9\t.\t+\t.\tID=zz", 0},
	} {
		line, status := rewrite(test.line)
		if line != test.expected || status != test.status {
			t.Errorf("rewriting %q gave %q with status %v, expected %q with status %v", test.line, line, status, test.expected, test.status)
		}
	}
}

func TestAliasInjectorOptions(t *testing.T) {
	rewrite := AliasInjector(aliasDict(), AliasOptions{
		FeatureTypes: []string{"mRNA"},
		NameFields:   []string{"Name"},
		AliasField:   "Dbxref",
	})
	if line, status := rewrite("c\ts\tgene\t1\t9\t.\t+\t.\tName=g1"); status != 0 || line != "c\ts\tgene\t1\t9\t.\t+\t.\tName=g1" {
		t.Errorf("gene line was changed to %q", line)
	}
	line, status := rewrite("c\ts\tmRNA\t1\t9\t.\t+\t.\tID=x;Name=t1")
	if status != Rewritten || line != "c\ts\tmRNA\t1\t9\t.\t+\t.\tID=x;Name=t1;Dbxref=B1" {
		t.Errorf("mRNA line was changed to %q with status %v", line, status)
	}
}

func TestAddAlias(t *testing.T) {
	contents := "##gff-version 3\n" +
		"c\ts\tgene\t1\t9\t.\t+\t.\tID=g1\n" +
		"c\ts\texon\t1\t9\t.\t+\t.\tParent=g1\n" +
		"c\ts\tmRNA\t1\t9\t.\t+\t.\tID=t1;Parent=g1\n"
	input := writeTestFile(t, "in.gff", contents)
	first := outputFile(t, "first.gff")
	report, err := AddAlias(input, first, aliasDict(), AliasOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if report.Lines != 4 || report.Count(Rewritten) != 2 || report.Count(MissingIdentifier) != 1 {
		t.Errorf("unexpected report: %v lines, %v rewritten, %v missing",
			report.Lines, report.Count(Rewritten), report.Count(MissingIdentifier))
	}
	if !report.LineNumbers(MissingIdentifier).Test(3) {
		t.Error("line 3 not flagged")
	}
	second := outputFile(t, "second.gff")
	if _, err = AddAlias(input, second, aliasDict(), AliasOptions{}); err != nil {
		t.Fatal(err)
	}
	if readTestFile(t, first) != readTestFile(t, second) {
		t.Error("alias injection is not deterministic")
	}
	third := outputFile(t, "third.gff")
	report, err = AddAlias(first, third, aliasDict(), AliasOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if report.Count(Rewritten) != 0 || readTestFile(t, first) != readTestFile(t, third) {
		t.Error("alias injection is not idempotent")
	}
}
