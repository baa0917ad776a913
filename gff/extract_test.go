package gff

import (
	"strings"
	"testing"

	"github.com/pantera-bio/pantera/utils"
)

func TestExtractTranscripts(t *testing.T) {
	input := writeTestFile(t, "in.gff", treeInput)
	output := outputFile(t, "out.gff")
	selected, err := ExtractTranscripts(input, output, utils.NewIDSet("t1"))
	if err != nil {
		t.Fatal(err)
	}
	if selected != 1 {
		t.Errorf("selected %v features", selected)
	}
	expected := "##gff-version 3\n" +
		"chr1\ts\tgene\t1\t100\t.\t+\t.\tID=g1\n" +
		"chr1\ts\tmRNA\t1\t100\t.\t+\t.\tID=t1;Parent=g1\n" +
		"chr1\ts\texon\t1\t50\t.\t+\t.\tID=e1;Parent=t1\n"
	if got := readTestFile(t, output); got != expected {
		t.Errorf("unexpected output %q", got)
	}
}

func TestExtractAnnotations(t *testing.T) {
	input := writeTestFile(t, "in.gff", treeInput)
	output := outputFile(t, "out.gff")
	selected, err := ExtractAnnotations(input, output, utils.NewIDSet("g2", "g3", "t1"), []string{"gene"})
	if err != nil {
		t.Fatal(err)
	}
	if selected != 2 {
		t.Errorf("selected %v features", selected)
	}
	expected := "##gff-version 3\n" +
		"chr1\ts\tgene\t300\t400\t.\t+\t.\tID=g3\n" +
		"chr2\ts\tgene\t1\t10\t.\t-\t.\tID=g2\n" +
		"chr2\ts\tmRNA\t1\t10\t.\t-\t.\tID=t3;Parent=g2\n"
	if got := readTestFile(t, output); got != expected {
		t.Errorf("unexpected output %q", got)
	}
}

func TestSelectIsSubset(t *testing.T) {
	ann, err := Parse(strings.NewReader(treeInput))
	if err != nil {
		t.Fatal(err)
	}
	all := make(map[*Record]bool)
	ann.Walk(func(feature *Feature) { all[feature.Record] = true })
	result := ann.Select(TranscriptSelector(utils.NewIDSet("t2", "t3")))
	result.Walk(func(feature *Feature) {
		if !all[feature.Record] {
			t.Errorf("selected feature %v is not in the input", feature.ID())
		}
		for _, parentID := range feature.Parents() {
			found := false
			result.Walk(func(parent *Feature) {
				if parent.ID() == parentID {
					found = true
				}
			})
			if !found {
				t.Errorf("parent %v of %v is missing", parentID, feature.ID())
			}
		}
	})
	if len(ann.Regions[0].Features[0].Children) != 2 {
		t.Error("Select modified its receiver")
	}
	if len(result.Regions[0].Features[0].Children) != 1 {
		t.Error("gene kept transcripts that were not selected")
	}
}

func TestExtractNothing(t *testing.T) {
	input := writeTestFile(t, "in.gff", treeInput)
	output := outputFile(t, "out.gff")
	selected, err := ExtractTranscripts(input, output, utils.NewIDSet())
	if err != nil {
		t.Fatal(err)
	}
	if got := readTestFile(t, output); selected != 0 || got != VersionDirective+"\n" {
		t.Errorf("unexpected output %q", got)
	}
}
