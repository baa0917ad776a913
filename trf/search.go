// pantera: utilities for genome annotation files and tandem repeat scanning.
// Copyright (c) 2026 The pantera authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License along with this program. If not, see
// <https://github.com/pantera-bio/pantera/blob/master/LICENSE.txt>.

package trf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/exascience/pargo/parallel"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pantera-bio/pantera/fasta"
	"github.com/pantera-bio/pantera/internal"
)

// ErrNoReport is returned when TRF finished without writing its data
// file. TRF's exit status does not reliably indicate failure.
var ErrNoReport = errors.New("TRF did not write a data file")

// A Tool runs a TRF executable.
type Tool struct {
	// Path of the executable. Defaults to "trf", looked up in PATH.
	Path string
	// Threads is the maximum number of concurrent TRF processes.
	// Defaults to GOMAXPROCS.
	Threads int
}

func (tool *Tool) path() string {
	if tool.Path == "" {
		return "trf"
	}
	return tool.Path
}

func (tool *Tool) threads() int {
	if tool.Threads <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return tool.Threads
}

/*
Search runs TRF on the given FASTA file with dir as its working
directory, and returns the path of the data file it wrote there.

The error wraps ErrNoReport if TRF did not write the data file,
whatever its exit status.
*/
func (tool *Tool) Search(ctx context.Context, input, dir string, opts Options) (report string, err error) {
	input, err = internal.FullPathname(input)
	if err != nil {
		return "", err
	}
	if err = os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	report = filepath.Join(dir, opts.ReportName(input))
	if err = os.Remove(report); err != nil && !os.IsNotExist(err) {
		return "", err
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, tool.path(), opts.Args(input)...)
	cmd.Dir = dir
	cmd.Stderr = &stderr
	runErr := cmd.Run()
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) || ctx.Err() != nil {
			return "", fmt.Errorf("%v, while running %v on %v", runErr, tool.path(), input)
		}
	}
	if _, err = os.Stat(report); err != nil {
		if !os.IsNotExist(err) {
			return "", err
		}
		msg := strings.TrimSpace(stderr.String())
		switch {
		case msg != "":
			return "", fmt.Errorf("%w for %v: %v", ErrNoReport, input, msg)
		case runErr != nil:
			return "", fmt.Errorf("%w for %v: %v", ErrNoReport, input, runErr)
		default:
			return "", fmt.Errorf("%w for %v", ErrNoReport, input)
		}
	}
	return report, nil
}

// SearchOptions configure ParallelSearch.
type SearchOptions struct {
	Options `toml:"options" yaml:"options"`

	// MaxLength bounds the cumulative sequence length of a chunk.
	MaxLength int `toml:"max-length" yaml:"max-length"`

	// ScratchDir contains the scratch directories below. Defaults to
	// a new directory next to the output prefix. The names of the
	// scratch directories must be distinct local paths below it.
	ScratchDir   string `toml:"scratch-dir" yaml:"scratch-dir"`
	SplitDir     string `toml:"split-dir" yaml:"split-dir"`
	ResultDir    string `toml:"result-dir" yaml:"result-dir"`
	ConvertedDir string `toml:"converted-dir" yaml:"converted-dir"`

	// KeepIntermediates keeps the scratch directories.
	KeepIntermediates bool `toml:"keep-intermediates" yaml:"keep-intermediates"`

	// OnChunkDone is called after each TRF run, possibly concurrently.
	OnChunkDone func(ChunkResult) `toml:"-" yaml:"-"`
}

// DefaultSearchOptions returns the default options for ParallelSearch.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Options:      DefaultOptions(),
		MaxLength:    100000,
		SplitDir:     "split_fasta",
		ResultDir:    "split_output",
		ConvertedDir: "converted_output",
	}
}

// A ChunkResult is the outcome of searching one chunk. Err is nil if
// the chunk was searched and converted successfully.
type ChunkResult struct {
	fasta.Chunk
	Report    string
	Converted string
	Repeats   int
	Err       error
}

// A SearchReport lists the results of ParallelSearch per chunk, in
// chunk order, and the merged output files.
type SearchReport struct {
	Chunks []ChunkResult
	Merged []string
}

// Failed returns the number of chunks that could not be searched or
// converted.
func (report *SearchReport) Failed() (n int) {
	for _, result := range report.Chunks {
		if result.Err != nil {
			n++
		}
	}
	return n
}

// Repeats returns the number of repeats found in all chunks.
func (report *SearchReport) Repeats() (n int) {
	for _, result := range report.Chunks {
		n += result.Repeats
	}
	return n
}

// Validate checks the TRF parameters and the scratch directory names.
func (opts SearchOptions) Validate() error {
	if err := opts.Options.Validate(); err != nil {
		return err
	}
	seen := make(map[string]string)
	for _, dir := range []struct{ flag, name string }{
		{"split-dir", opts.SplitDir},
		{"result-dir", opts.ResultDir},
		{"converted-dir", opts.ConvertedDir},
	} {
		clean := filepath.Clean(dir.name)
		if !filepath.IsLocal(dir.name) || clean == "." {
			return fmt.Errorf("invalid %v %q, expected a relative path below the scratch directory", dir.flag, dir.name)
		}
		if other, found := seen[clean]; found {
			return fmt.Errorf("%v and %v are both %q", other, dir.flag, dir.name)
		}
		seen[clean] = dir.flag
	}
	return nil
}

func chunkPrefix(input string) string {
	base := filepath.Base(input)
	for _, ext := range []string{".gz", ".fasta", ".fa", ".fna", ".fas"} {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

/*
ParallelSearch splits the input FASTA file into chunks of at most
opts.MaxLength cumulative sequence length, runs TRF on all chunks with
at most tool.Threads concurrent processes, converts each data file,
and merges the converted files into files named outputPrefix followed
by each of Suffixes.

A chunk that fails is reported in its ChunkResult and left out of the
merged files. The returned error is only non-nil when no result could
be produced at all. Scratch directories are removed at the end, also
on error, unless opts.KeepIntermediates is set.
*/
func (tool *Tool) ParallelSearch(ctx context.Context, input, outputPrefix string, opts SearchOptions) (report *SearchReport, err error) {
	if err = opts.Validate(); err != nil {
		return nil, err
	}
	root := opts.ScratchDir
	generatedRoot := root == ""
	if generatedRoot {
		root = filepath.Join(filepath.Dir(outputPrefix), "pantera-trf-"+uuid.NewString())
	}
	splitDir := filepath.Join(root, opts.SplitDir)
	resultDir := filepath.Join(root, opts.ResultDir)
	convertedDir := filepath.Join(root, opts.ConvertedDir)
	if !opts.KeepIntermediates {
		defer func() {
			scratch := []string{splitDir, resultDir, convertedDir}
			if generatedRoot {
				scratch = append(scratch, root)
			}
			if nerr := internal.RemoveAll(scratch...); nerr != nil {
				log.Printf("Warning: Could not remove scratch directories: %v.\n", nerr)
			}
		}()
	}

	chunks, err := fasta.SplitByLength(input, splitDir, chunkPrefix(input), opts.MaxLength)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no sequences found in %v", input)
	}
	if err = os.MkdirAll(convertedDir, 0700); err != nil {
		return nil, err
	}

	report = &SearchReport{Chunks: make([]ChunkResult, len(chunks))}
	var g errgroup.Group
	g.SetLimit(tool.threads())
	for i, chunk := range chunks {
		g.Go(func() error {
			result := ChunkResult{Chunk: chunk}
			result.Report, result.Err = tool.Search(ctx, chunk.Name, resultDir, opts.Options)
			report.Chunks[i] = result
			if opts.OnChunkDone != nil {
				opts.OnChunkDone(result)
			}
			return nil
		})
	}
	// goroutines never fail, chunk errors are in report.Chunks
	g.Wait()
	if err = ctx.Err(); err != nil {
		return report, err
	}

	parallel.Range(0, len(report.Chunks), 0, func(low, high int) {
		for i := low; i < high; i++ {
			result := &report.Chunks[i]
			if result.Err != nil {
				continue
			}
			result.Converted = filepath.Join(convertedDir, filepath.Base(result.Name))
			result.Repeats, result.Err = Convert(result.Report, result.Converted)
		}
	})

	var prefixes []string
	for _, result := range report.Chunks {
		if result.Err != nil {
			log.Printf("Warning: Chunk %v failed: %v.\n", result.Name, result.Err)
			continue
		}
		prefixes = append(prefixes, result.Converted)
	}
	if len(prefixes) == 0 {
		return report, fmt.Errorf("all %v chunks of %v failed", len(chunks), input)
	}
	if report.Merged, err = MergeOutputs(prefixes, outputPrefix); err != nil {
		return report, err
	}
	return report, nil
}
