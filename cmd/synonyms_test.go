package cmd

import (
	"strings"
	"testing"

	"github.com/pantera-bio/pantera/gff"
	"github.com/pantera-bio/pantera/utils"
)

func TestAliasSynDictFormat(t *testing.T) {
	dict, err := utils.ParseSynDict(strings.NewReader("g1\tA,B\n"), aliasSynDictFormat)
	if err != nil {
		t.Fatal(err)
	}
	if values, _ := dict.Lookup("g1"); len(values) != 2 || values[0] != "A" || values[1] != "B" {
		t.Errorf("unexpected synonyms %v", values)
	}
	rewrite := gff.AliasInjector(dict, gff.AliasOptions{})
	line, status := rewrite("c\ts\tgene\t1\t9\t.\t+\t.\tID=g1;Alias=A")
	if expected := "c\ts\tgene\t1\t9\t.\t+\t.\tID=g1;Alias=A,B"; line != expected {
		t.Errorf("got %q, expected %q", line, expected)
	}
	if status != gff.Rewritten {
		t.Errorf("unexpected status %v", status)
	}
	if utils.DefaultSynDictFormat.ValuesSeparator != "" {
		t.Error("default synonym format must not split values")
	}
}
