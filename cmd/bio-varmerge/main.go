// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

/*
bio-varmerge merges the FDSTOOLS and MUTECT2 calls of a sample into one
styled Excel workbook.
*/

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/varmerge/merge"
)

const (
	exitOK      = 0
	exitFailed  = 1
	exitUsage   = 2
	nPositional = 3
)

var (
	envOpts, envErr = merge.OptsFromEnv()

	palettePath = flag.String("palette", envOpts.PalettePath, "YAML file overriding cell colors, e.g. 'key_false_flag: F50003'")
	tsvPath     = flag.String("tsv", envOpts.TSVPath, "Also write the merged table to this TSV path; gzip-compressed if it ends in .gz")
	noStyle     = flag.Bool("no-style", envOpts.NoStyle, "Write the merged workbook without colors or column widths")
)

func bioVarmergeUsage() {
	fmt.Printf("Usage: %s [OPTIONS] caller1_path caller2_path output_path\n", os.Args[0])
	fmt.Printf("  caller1_path  FDSTOOLS TSV, with an FDSTOOLS column\n")
	fmt.Printf("  caller2_path  MUTECT2 TSV, with a MUTECT2 column\n")
	fmt.Printf("  output_path   merged .xlsx, overwritten if present\n")
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

// exitCode logs err for the operator and returns the process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	log.Error.Printf("%v", err)
	switch merge.KindOf(err) {
	case merge.InputRead, merge.MergeProcessing:
		log.Error.Printf("Merging failed. Please check your input files and formats.")
		return exitFailed
	case merge.Styling:
		log.Error.Printf("Styling failed. The Excel file was created, but formatting could not be applied.")
		return exitFailed
	default:
		return exitUsage
	}
}

func run(ctx context.Context, args []string, opts merge.Opts) int {
	if len(args) != nPositional {
		if len(args) < nPositional {
			log.Error.Printf("Missing positional arguments (caller1_path, caller2_path and output_path required); please check flag syntax: '%s'", strings.Join(args, " "))
		} else {
			log.Error.Printf("Too many positional arguments (only caller1_path, caller2_path and output_path expected); please check flag syntax: '%s'", strings.Join(args, " "))
		}
		return exitUsage
	}
	return exitCode(merge.Run(ctx, args[0], args[1], args[2], &opts))
}

func main() {
	flag.Usage = bioVarmergeUsage
	shutdown := grail.Init()

	code := exitUsage
	if envErr != nil {
		log.Error.Printf("environment: %v", envErr)
	} else {
		opts := envOpts
		opts.PalettePath = *palettePath
		opts.TSVPath = *tsvPath
		opts.NoStyle = *noStyle
		code = run(vcontext.Background(), flag.Args(), opts)
	}
	log.Debug.Printf("exiting with status %d", code)
	shutdown()
	os.Exit(code)
}
