// Copyright 2015 Google Inc. All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/bertschingert/puffin"
)

var (
	nThreadsFlag int
	statsFlag    bool
)

func init() {
	flag.IntVar(&nThreadsFlag, "j", 4, "Number of worker threads for the parallel walk. 1 selects the single-threaded walker.")
	flag.IntVar(&nThreadsFlag, "n-threads", 4, "Alias for -j.")
	flag.BoolVar(&statsFlag, "stats", false, "Print run diagnostics (files/dirs visited, absorbed errors) to stderr.")
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-j N] [-stats] [path program]\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	path, progSrc, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(1)
	}

	if err := run(path, progSrc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseArgs splits the CLI into a walk root and the program source,
// per spec.md §6: zero positional args means PATH="." and an empty
// program (the implied default routine prints each path); one
// positional arg is a usage error (it's ambiguous whether it names
// PATH or PROGRAM); two means PATH then PROGRAM.
func parseArgs(args []string) (path string, prog []byte, err error) {
	switch len(args) {
	case 0:
		return ".", nil, nil
	case 1:
		return "", nil, fmt.Errorf("a single positional argument is ambiguous: give PATH and PROGRAM, or neither")
	case 2:
		return args[0], []byte(args[1]), nil
	default:
		return "", nil, fmt.Errorf("too many arguments")
	}
}

func run(path string, progSrc []byte) error {
	parser := puffin.NewParser(progSrc)
	prog, err := parser.Parse()
	if err != nil {
		return err
	}
	if err := puffin.Analyze(prog); err != nil {
		return err
	}

	vars := puffin.NewVarStore(prog.NumScalars, prog.NumArrays)
	sink := puffin.NewSink(os.Stdout)
	interp := puffin.NewInterp(vars, sink)
	runner := puffin.NewRunner(prog, interp)
	stats := puffin.NewStats(statsFlag)

	if err := runner.RunBegin(); err != nil {
		if _, ok := err.(*puffin.AttributeInBeginOrEndError); !ok {
			return err
		}
		// spec.md §7 category 2: fatal to BEGIN, not to the invocation --
		// log it and still run the walk (and END).
		glog.Errorf("BEGIN: %v", err)
	}

	if nThreadsFlag <= 1 {
		err = puffin.WalkSingleThreaded(path, runner, stats)
	} else {
		err = puffin.WalkParallel(path, nThreadsFlag, runner, stats)
	}
	if err != nil {
		return err
	}

	if err := runner.RunEnd(); err != nil {
		if _, ok := err.(*puffin.AttributeInBeginOrEndError); !ok {
			return err
		}
		glog.Errorf("END: %v", err)
	}

	if err := sink.Flush(); err != nil {
		return err
	}
	stats.Report(os.Stderr)
	glog.Flush()
	return nil
}
