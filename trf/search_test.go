package trf

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

// fakeTRF writes one repeat per sequence of its input, and fails
// without a data file for inputs with a sequence named "fail".
const fakeTRF = `#!/bin/sh
if grep -q '^>fail' "$1"; then
  echo "cannot process $1" >&2
  exit 1
fi
name=$(basename "$1").$2.$3.$4.$5.$6.$7.$8.dat
{
  echo "Tandem Repeats Finder Program"
  echo
  grep '^>' "$1" | while read -r header; do
    echo "Sequence: ${header#>}"
    echo
    echo "Parameters: $2 $3 $4 $5 $6 $7 $8"
    echo
    echo "1 10 2 5.0 2 100 0 20 50 0 50 0 1.00 AC ACACACACAC"
  done
} > "$name"
`

const searchInput = `>s1
ACACACACAC
>fail
ACACACACAC
>s2 second
ACACACACAC
`

func setupSearch(t *testing.T) (tool *Tool, input, dir string) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("no shell available")
	}
	dir = t.TempDir()
	tool = &Tool{Path: filepath.Join(dir, "trf"), Threads: 2}
	if err := os.WriteFile(tool.Path, []byte(fakeTRF), 0700); err != nil {
		t.Fatal(err)
	}
	input = filepath.Join(dir, "genome.fasta")
	if err := os.WriteFile(input, []byte(searchInput), 0600); err != nil {
		t.Fatal(err)
	}
	return tool, input, dir
}

func TestSearch(t *testing.T) {
	tool, input, dir := setupSearch(t)
	report, err := tool.Search(context.Background(), input, filepath.Join(dir, "out"), DefaultOptions())
	if !errors.Is(err, ErrNoReport) {
		t.Errorf("expected ErrNoReport, got %v", err)
	}
	if report != "" {
		t.Errorf("unexpected report %v", report)
	}
	if err != nil && !strings.Contains(err.Error(), "cannot process") {
		t.Errorf("error %v does not mention the tool output", err)
	}
}

func TestSearchMissingTool(t *testing.T) {
	_, input, dir := setupSearch(t)
	tool := &Tool{Path: filepath.Join(dir, "missing")}
	if _, err := tool.Search(context.Background(), input, dir, DefaultOptions()); err == nil || errors.Is(err, ErrNoReport) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestParallelSearch(t *testing.T) {
	tool, input, dir := setupSearch(t)
	opts := DefaultSearchOptions()
	opts.MaxLength = 10
	opts.ScratchDir = filepath.Join(dir, "scratch")
	var done int32
	opts.OnChunkDone = func(ChunkResult) { atomic.AddInt32(&done, 1) }
	outputPrefix := filepath.Join(dir, "result", "genome")
	report, err := tool.ParallelSearch(context.Background(), input, outputPrefix, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Chunks) != 3 || done != 3 {
		t.Fatalf("searched %v chunks, %v reported done", len(report.Chunks), done)
	}
	if report.Failed() != 1 || report.Repeats() != 2 {
		t.Errorf("%v chunks failed, %v repeats found", report.Failed(), report.Repeats())
	}
	if !errors.Is(report.Chunks[1].Err, ErrNoReport) {
		t.Errorf("unexpected error for the failing chunk: %v", report.Chunks[1].Err)
	}
	for i, result := range report.Chunks {
		if filepath.Base(result.Name) != "genome_0000"+string(rune('0'+i))+".fasta" {
			t.Errorf("unexpected chunk name %v", result.Name)
		}
	}
	if len(report.Merged) != len(Suffixes()) {
		t.Fatalf("merged %v", report.Merged)
	}
	short, err := os.ReadFile(outputPrefix + ".short.tab")
	if err != nil {
		t.Fatal(err)
	}
	expected := "#SeqID\tStart\tEnd\tPeriod\tCopyNumber\tPattern\n" +
		"s1\t1\t10\t2\t5.0\tAC\n" +
		"s2\t1\t10\t2\t5.0\tAC\n"
	if string(short) != expected {
		t.Errorf("unexpected merged short table %q", short)
	}
	for _, name := range []string{opts.SplitDir, opts.ResultDir, opts.ConvertedDir} {
		if _, err := os.Stat(filepath.Join(opts.ScratchDir, name)); !os.IsNotExist(err) {
			t.Errorf("scratch directory %v was not removed", name)
		}
	}
}

func TestParallelSearchKeepIntermediates(t *testing.T) {
	tool, input, dir := setupSearch(t)
	opts := DefaultSearchOptions()
	opts.KeepIntermediates = true
	outputPrefix := filepath.Join(dir, "genome")
	report, err := tool.ParallelSearch(context.Background(), input, outputPrefix, opts)
	if err == nil {
		t.Error("a search where all chunks failed succeeded")
	}
	if report == nil || len(report.Chunks) != 1 || report.Failed() != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	entries, err := filepath.Glob(filepath.Join(dir, "pantera-trf-*", opts.SplitDir, "*.fasta"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("kept chunks %v", entries)
	}
}

func TestParallelSearchCanceled(t *testing.T) {
	tool, input, dir := setupSearch(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := DefaultSearchOptions()
	opts.ScratchDir = filepath.Join(dir, "scratch")
	if _, err := tool.ParallelSearch(ctx, input, filepath.Join(dir, "genome"), opts); !errors.Is(err, context.Canceled) {
		t.Errorf("unexpected error %v", err)
	}
	if _, err := os.Stat(filepath.Join(opts.ScratchDir, opts.SplitDir)); !os.IsNotExist(err) {
		t.Error("scratch directories were not removed")
	}
}

func TestSearchOptionsValidate(t *testing.T) {
	if err := DefaultSearchOptions().Validate(); err != nil {
		t.Errorf("default options rejected: %v", err)
	}
	for _, name := range []string{"", ".", "a/..", "/tmp/split", "../split", "split_output"} {
		opts := DefaultSearchOptions()
		opts.SplitDir = name
		if err := opts.Validate(); err == nil {
			t.Errorf("split directory %q accepted", name)
		}
	}
	opts := DefaultSearchOptions()
	opts.SplitDir = "chunks/fasta"
	if err := opts.Validate(); err != nil {
		t.Errorf("nested split directory rejected: %v", err)
	}
}

func TestParallelSearchKeepsScratchRoot(t *testing.T) {
	tool, input, dir := setupSearch(t)
	opts := DefaultSearchOptions()
	opts.ScratchDir = filepath.Join(dir, "scratch")
	opts.SplitDir = ""
	if err := os.MkdirAll(opts.ScratchDir, 0700); err != nil {
		t.Fatal(err)
	}
	keep := filepath.Join(opts.ScratchDir, "keep.txt")
	if err := os.WriteFile(keep, []byte("keep\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := tool.ParallelSearch(context.Background(), input, filepath.Join(dir, "genome"), opts); err == nil {
		t.Error("empty split directory name accepted")
	}
	if _, err := os.Stat(keep); err != nil {
		t.Errorf("scratch root was touched: %v", err)
	}
}
