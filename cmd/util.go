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
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"
	"golang.org/x/sys/unix"

	"github.com/pantera-bio/pantera/internal"
	"github.com/pantera-bio/pantera/utils"
)

// ProgramMessage is the first line printed when the pantera binary is
// called.
var ProgramMessage string

func init() {
	ProgramMessage = fmt.Sprint(
		"\n", utils.ProgramName, " version ", utils.ProgramVersion,
		" compiled with ", runtime.Version(),
		" - see ", utils.ProgramURL, " for more information.\n",
	)
}

// HelpMessage is printed to show the --help flag
const HelpMessage = "Print command details:\n" +
	"[--help]\n"

const commonHelp = "[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

// commonFlags are accepted by all commands.
type commonFlags struct {
	logPath, profile string
	timed            bool
}

func (common *commonFlags) define(flags *flag.FlagSet) {
	flags.BoolVar(&common.timed, "timed", false, "measure the runtime")
	flags.StringVar(&common.profile, "profile", "", "write a runtime profile to the specified file")
	flags.StringVar(&common.logPath, "log-path", "", "write log files to the specified directory")
}

func (common *commonFlags) check() bool {
	return common.profile == "" || checkCreate("--profile", common.profile)
}

func (common *commonFlags) appendTo(command *bytes.Buffer) {
	if common.timed {
		fmt.Fprint(command, " --timed")
	}
	if common.profile != "" {
		fmt.Fprint(command, " --profile ", common.profile)
	}
	if common.logPath != "" {
		fmt.Fprint(command, " --log-path ", common.logPath)
	}
}

func getFilename(s, help string) string {
	switch s {
	case "-h", "--h", "-help", "--help":
		fmt.Fprint(os.Stderr, help)
		os.Exit(0)
	default:
		if strings.HasPrefix(s, "-") {
			log.Println("Filename(s) in command line missing.")
			fmt.Fprint(os.Stderr, help)
			os.Exit(1)
		}
	}
	return s
}

func parseFlags(flags *flag.FlagSet, requiredArgs int, help string) {
	if len(os.Args) < requiredArgs {
		if len(os.Args) > 2 {
			getFilename(os.Args[2], help)
		}
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, help)
		os.Exit(1)
	}
	flags.SetOutput(io.Discard)
	if err := flags.Parse(os.Args[requiredArgs:]); err != nil {
		x := 0
		if err != flag.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
			x = 1
		}
		fmt.Fprint(os.Stderr, help)
		os.Exit(x)
	}
	if flags.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "Cannot parse remaining parameters:", flags.Args())
		fmt.Fprint(os.Stderr, help)
		os.Exit(1)
	}
}

func logCheckFile(parameter, format string, v ...interface{}) {
	if parameter != "" {
		log.Printf(format+" for command line parameter %v.\n", append(v, parameter)...)
	} else {
		log.Printf(format+".\n", v...)
	}
}

func checkExist(parameter, filename string) bool {
	if len(filename) == 0 {
		logCheckFile(parameter, "Error: Missing filename")
		return false
	}
	if filename[0] == '-' {
		logCheckFile(parameter, "Error: Missing filename before %v", filename)
		return false
	}
	if _, err := os.Stat(filename); err == nil {
		return true
	} else if os.IsNotExist(err) {
		logCheckFile(parameter, "Error: File %v does not exist", filename)
		return false
	} else if os.IsPermission(err) {
		logCheckFile(parameter, "Error: No permission to read file %v", filename)
		return false
	} else {
		logCheckFile(parameter, "Error %v when trying to access file %v", err, filename)
		return false
	}
}

func checkCreate(parameter, filename string) bool {
	if len(filename) == 0 {
		logCheckFile(parameter, "Error: Missing filename")
		return false
	}
	if filename[0] == '-' {
		logCheckFile(parameter, "Error: Missing filename before %v", filename)
		return false
	}
	if _, err := os.Stat(filename); err == nil {
		// Assume that the file has been written by previous pantera runs, and can be overwritten.
		return true
	}
	err := os.MkdirAll(filepath.Dir(filename), 0700)
	if err == nil {
		err = os.WriteFile(filename, nil, 0666)
	}
	if err != nil {
		if os.IsPermission(err) {
			logCheckFile(parameter, "Error: No permission to create file %v", filename)
		} else {
			logCheckFile(parameter, "Error %v when trying to create file %v", err, filename)
		}
		return false
	}
	_ = os.Remove(filename)
	return true
}

func checkDistinct(input, output string) bool {
	fullInput, err1 := internal.FullPathname(input)
	fullOutput, err2 := internal.FullPathname(output)
	if err1 == nil && err2 == nil && filepath.Clean(fullInput) == filepath.Clean(fullOutput) {
		log.Printf("Error: Input file %v and output file %v are the same.\n", input, output)
		return false
	}
	return true
}

func checkExecutable(parameter, path string) bool {
	if !strings.ContainsRune(path, filepath.Separator) {
		found, err := exec.LookPath(path)
		if err != nil {
			logCheckFile(parameter, "Error: Executable %v not found in PATH", path)
			return false
		}
		path = found
	}
	if err := unix.Access(path, unix.X_OK); err != nil {
		logCheckFile(parameter, "Error: File %v is not executable (%v)", path, err)
		return false
	}
	return true
}

func defaultNrOfThreads() int {
	if cores := cpuid.CPU.PhysicalCores; cores > 0 {
		return cores
	}
	return runtime.NumCPU()
}

func logHostResources() {
	log.Printf("Host: %v physical cores, %v threads per core, %v GB memory.\n",
		cpuid.CPU.PhysicalCores, cpuid.CPU.ThreadsPerCore, memory.TotalMemory()>>30)
}

var (
	summaryColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
)

// printSummary logs a summary line, and prints it in color if the
// standard output is a terminal.
func printSummary(format string, v ...interface{}) {
	log.Printf(format, v...)
	summaryColor.Printf(format, v...)
}

func printWarning(format string, v ...interface{}) {
	log.Printf(format, v...)
	warningColor.Printf(format, v...)
}

// terminal is the standard error stream before it is redirected to
// the log file.
var terminal io.Writer = os.Stderr

func createLogFilename() string {
	t := time.Now()
	zone, _ := t.Zone()
	return fmt.Sprintf("logs/pantera/pantera-%d-%02d-%02d-%02d-%02d-%02d-%09d-%v.log", t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), zone)
}

func setLogOutput(path string) error {
	logPath := createLogFilename()
	var fullPath string
	if path == "" {
		fullPath = filepath.Join(os.Getenv("HOME"), logPath)
	} else {
		fullPath = filepath.Join(path, logPath)
	}
	f, err := internal.FileCreate(fullPath)
	if err != nil {
		return fmt.Errorf("%v, while creating log file", err)
	}
	fmt.Fprintln(f, ProgramMessage)

	orgStderr, err := unix.Dup(2)
	if err != nil {
		return err
	}
	ferr := os.NewFile(uintptr(orgStderr), "/dev/stderr")
	terminal = ferr
	if err := unix.Dup2(int(f.Fd()), 2); err != nil {
		return err
	}

	multi := io.MultiWriter(f, ferr)

	log.SetOutput(multi)
	log.Println("Created log file at", fullPath)
	log.Println("Command line:", os.Args)
	return nil
}

func timedRun(common commonFlags, msg string, f func() error) error {
	if common.profile != "" {
		file, err := internal.FileCreate(common.profile)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := pprof.StartCPUProfile(file); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}
	if common.timed {
		log.Println(msg)
		start := time.Now()
		defer func() {
			end := time.Now()
			log.Println("Elapsed time: ", end.Sub(start))
		}()
	}
	return f()
}

// exitWithHelp prints the help string and exits if the sanity checks
// failed.
func exitWithHelp(sanityChecksFailed bool, help string) {
	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, help)
		os.Exit(1)
	}
}
