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

package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/pantera-bio/pantera/fasta"
	"github.com/pantera-bio/pantera/trf"
)

// TRFHelp is the help string for this command.
const TRFHelp = "\ntrf parameters:\n" +
	"pantera trf fasta-file output-prefix\n" +
	"[--config file.toml | file.yaml]\n" +
	"[--trf-path path]\n" +
	"[--nr-of-threads n]\n" +
	"[--matching-weight n]\n" +
	"[--mismatching-penalty n]\n" +
	"[--indel-penalty n]\n" +
	"[--match-probability n]\n" +
	"[--indel-probability n]\n" +
	"[--min-alignment-score n]\n" +
	"[--max-period n]\n" +
	"[--report-flanking-sequences]\n" +
	"[--max-length n]\n" +
	"[--scratch-dir path]\n" +
	"[--split-dir name]\n" +
	"[--result-dir name]\n" +
	"[--converted-dir name]\n" +
	"[--keep-intermediates]\n" +
	"[--progress]\n" +
	commonHelp

// trfConfig is the layout of the configuration file of the trf
// command.
type trfConfig struct {
	Path    string            `toml:"trf-path" yaml:"trf-path"`
	Threads int               `toml:"nr-of-threads" yaml:"nr-of-threads"`
	Search  trf.SearchOptions `toml:"search" yaml:"search"`
}

func defaultTRFConfig() trfConfig {
	return trfConfig{
		Path:    "trf",
		Threads: defaultNrOfThreads(),
		Search:  trf.DefaultSearchOptions(),
	}
}

// loadConfig reads a TOML or YAML file, depending on its extension.
// Settings that are not in the file keep their value in config.
func loadConfig(filename string, config *trfConfig) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		err = toml.Unmarshal(data, config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		return fmt.Errorf("unknown configuration file format %v", filename)
	}
	if err != nil {
		return fmt.Errorf("%v, while reading configuration file %v", err, filename)
	}
	return nil
}

func (config *trfConfig) define(flags *flag.FlagSet) {
	opts := &config.Search
	flags.StringVar(&config.Path, "trf-path", config.Path, "path of the TRF executable")
	flags.IntVar(&config.Threads, "nr-of-threads", config.Threads, "maximum number of concurrent TRF processes")
	flags.IntVar(&opts.MatchingWeight, "matching-weight", opts.MatchingWeight, "matching weight")
	flags.IntVar(&opts.MismatchingPenalty, "mismatching-penalty", opts.MismatchingPenalty, "mismatching penalty")
	flags.IntVar(&opts.IndelPenalty, "indel-penalty", opts.IndelPenalty, "indel penalty")
	flags.IntVar(&opts.MatchProbability, "match-probability", opts.MatchProbability, "match probability")
	flags.IntVar(&opts.IndelProbability, "indel-probability", opts.IndelProbability, "indel probability")
	flags.IntVar(&opts.MinAlignmentScore, "min-alignment-score", opts.MinAlignmentScore, "minimum alignment score to report")
	flags.IntVar(&opts.MaxPeriod, "max-period", opts.MaxPeriod, "maximum period size to report")
	flags.BoolVar(&opts.ReportFlankingSequences, "report-flanking-sequences", opts.ReportFlankingSequences, "report flanking sequences")
	flags.IntVar(&opts.MaxLength, "max-length", opts.MaxLength, "maximum cumulative sequence length per chunk")
	flags.StringVar(&opts.ScratchDir, "scratch-dir", opts.ScratchDir, "directory for the scratch directories")
	flags.StringVar(&opts.SplitDir, "split-dir", opts.SplitDir, "scratch directory for the FASTA chunks")
	flags.StringVar(&opts.ResultDir, "result-dir", opts.ResultDir, "scratch directory for the TRF reports")
	flags.StringVar(&opts.ConvertedDir, "converted-dir", opts.ConvertedDir, "scratch directory for the converted reports")
	flags.BoolVar(&opts.KeepIntermediates, "keep-intermediates", opts.KeepIntermediates, "keep the scratch directories")
}

func (config *trfConfig) appendTo(command *bytes.Buffer) {
	opts := &config.Search
	fmt.Fprint(command, " --trf-path ", config.Path)
	fmt.Fprint(command, " --nr-of-threads ", config.Threads)
	fmt.Fprint(command, " --matching-weight ", opts.MatchingWeight)
	fmt.Fprint(command, " --mismatching-penalty ", opts.MismatchingPenalty)
	fmt.Fprint(command, " --indel-penalty ", opts.IndelPenalty)
	fmt.Fprint(command, " --match-probability ", opts.MatchProbability)
	fmt.Fprint(command, " --indel-probability ", opts.IndelProbability)
	fmt.Fprint(command, " --min-alignment-score ", opts.MinAlignmentScore)
	fmt.Fprint(command, " --max-period ", opts.MaxPeriod)
	if opts.ReportFlankingSequences {
		fmt.Fprint(command, " --report-flanking-sequences")
	}
	fmt.Fprint(command, " --max-length ", opts.MaxLength)
	if opts.ScratchDir != "" {
		fmt.Fprint(command, " --scratch-dir ", opts.ScratchDir)
	}
	fmt.Fprint(command, " --split-dir ", opts.SplitDir)
	fmt.Fprint(command, " --result-dir ", opts.ResultDir)
	fmt.Fprint(command, " --converted-dir ", opts.ConvertedDir)
	if opts.KeepIntermediates {
		fmt.Fprint(command, " --keep-intermediates")
	}
}

func newProgressBar(input string) (*mpb.Progress, *mpb.Bar, error) {
	_, length, err := fasta.Count(input)
	if err != nil {
		return nil, nil, err
	}
	pbs := mpb.New(mpb.WithWidth(40), mpb.WithOutput(terminal))
	bar := pbs.AddBar(int64(length),
		mpb.PrependDecorators(
			decor.Name("searched bases: ", decor.WC{W: len("searched bases: "), C: decor.DindentRight}),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WC{W: 5}),
			decor.OnComplete(decor.Name(""), ". done"),
		),
	)
	return pbs, bar, nil
}

// TRF implements the pantera trf command.
func TRF() error {
	var (
		common     commonFlags
		configFile string
		progress   bool
	)

	config := defaultTRFConfig()

	var flags flag.FlagSet
	flags.StringVar(&configFile, "config", "", "read settings from a TOML or YAML file")
	flags.BoolVar(&progress, "progress", false, "show a progress bar")
	config.define(&flags)
	common.define(&flags)

	parseFlags(&flags, 4, TRFHelp)

	input := getFilename(os.Args[2], TRFHelp)
	outputPrefix := getFilename(os.Args[3], TRFHelp)

	if err := setLogOutput(common.logPath); err != nil {
		return err
	}

	// sanity checks

	var sanityChecksFailed bool

	if configFile != "" {
		if !checkExist("--config", configFile) {
			sanityChecksFailed = true
		} else if err := loadConfig(configFile, &config); err != nil {
			log.Println("Error:", err)
			sanityChecksFailed = true
		} else {
			// command line flags take precedence over the configuration file
			_ = flags.Parse(os.Args[4:])
		}
	}
	if !checkExist("", input) {
		sanityChecksFailed = true
	}
	for _, suffix := range trf.Suffixes() {
		if !checkCreate("", outputPrefix+suffix) {
			sanityChecksFailed = true
		}
	}
	if !checkExecutable("--trf-path", config.Path) {
		sanityChecksFailed = true
	}
	if config.Threads <= 0 {
		log.Println("Error: Invalid nr-of-threads: ", config.Threads)
		sanityChecksFailed = true
	}
	if err := config.Search.Validate(); err != nil {
		log.Println("Error:", err)
		sanityChecksFailed = true
	}
	if config.Search.MaxLength <= 0 {
		log.Println("Error: Invalid max-length: ", config.Search.MaxLength)
		sanityChecksFailed = true
	}
	if !common.check() {
		sanityChecksFailed = true
	}

	exitWithHelp(sanityChecksFailed, TRFHelp)

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " trf ", input, " ", outputPrefix)
	config.appendTo(&command)
	if progress {
		fmt.Fprint(&command, " --progress")
	}
	common.appendTo(&command)

	// executing command

	log.Println("Executing command:\n", command.String())
	logHostResources()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tool := &trf.Tool{Path: config.Path, Threads: config.Threads}
	opts := config.Search

	return timedRun(common, "Searching tandem repeats.", func() error {
		var (
			pbs *mpb.Progress
			bar *mpb.Bar
		)
		if progress {
			var err error
			if pbs, bar, err = newProgressBar(input); err != nil {
				return err
			}
			opts.OnChunkDone = func(result trf.ChunkResult) {
				bar.IncrBy(result.Length)
			}
		}
		report, err := tool.ParallelSearch(ctx, input, outputPrefix, opts)
		if pbs != nil {
			if !bar.Completed() {
				bar.Abort(false)
			}
			pbs.Wait()
		}
		if report != nil {
			printSummary("Chunks: %v\n", len(report.Chunks))
			printSummary("Tandem repeats: %v\n", report.Repeats())
			for _, filename := range report.Merged {
				printSummary("Wrote %v\n", filename)
			}
		}
		if err != nil {
			return err
		}
		if failed := report.Failed(); failed > 0 {
			printWarning("Failed chunks: %v\n", failed)
			return fmt.Errorf("TRF failed on %v of %v chunks", failed, len(report.Chunks))
		}
		return nil
	})
}
