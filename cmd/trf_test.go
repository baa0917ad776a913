package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"trf.toml": `trf-path = "/opt/trf/trf409"
nr-of-threads = 3

[search]
max-length = 5000
keep-intermediates = true

[search.options]
max-period = 2000
report-flanking-sequences = true
`,
		"trf.yaml": `trf-path: /opt/trf/trf409
nr-of-threads: 3
search:
  max-length: 5000
  keep-intermediates: true
  options:
    max-period: 2000
    report-flanking-sequences: true
`,
	}
	for name, contents := range files {
		filename := filepath.Join(dir, name)
		if err := os.WriteFile(filename, []byte(contents), 0600); err != nil {
			t.Fatal(err)
		}
		config := defaultTRFConfig()
		if err := loadConfig(filename, &config); err != nil {
			t.Fatal(err)
		}
		if config.Path != "/opt/trf/trf409" || config.Threads != 3 {
			t.Errorf("%v: unexpected tool settings %v %v", name, config.Path, config.Threads)
		}
		opts := config.Search
		if opts.MaxLength != 5000 || !opts.KeepIntermediates || opts.MaxPeriod != 2000 || !opts.ReportFlankingSequences {
			t.Errorf("%v: unexpected search options %+v", name, opts)
		}
		if opts.MatchingWeight != 2 || opts.SplitDir != "split_fasta" {
			t.Errorf("%v: defaults were not kept: %+v", name, opts)
		}
	}
	unknown := filepath.Join(dir, "trf.ini")
	if err := os.WriteFile(unknown, nil, 0600); err != nil {
		t.Fatal(err)
	}
	config := defaultTRFConfig()
	if err := loadConfig(unknown, &config); err == nil {
		t.Error("unknown configuration format accepted")
	}
}

func TestSplitList(t *testing.T) {
	list := splitList(" gene, mRNA,,transcript ")
	if len(list) != 3 || list[0] != "gene" || list[1] != "mRNA" || list[2] != "transcript" {
		t.Errorf("splitList returned %v", list)
	}
	if list := splitList(""); len(list) != 0 {
		t.Errorf("splitList returned %v", list)
	}
}

func TestFastaBaseName(t *testing.T) {
	for input, expected := range map[string]string{
		"/data/genome.fasta":    "genome",
		"genome.fa.gz":          "genome",
		"/data/hg38.chr1.fasta": "hg38.chr1",
	} {
		if base := fastaBaseName(input); base != expected {
			t.Errorf("fastaBaseName(%v) is %v, expected %v", input, base, expected)
		}
	}
}
