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

package merge

import (
	"context"

	"github.com/grailbio/base/log"
	"github.com/grailbio/varmerge/encoding/xlsx"
	"github.com/grailbio/varmerge/table"
	"github.com/kelseyhightower/envconfig"
)

// Opts configures Run.
type Opts struct {
	// Commandline options.
	PalettePath string `envconfig:"PALETTE"`
	TSVPath     string `envconfig:"TSV"`
	NoStyle     bool   `envconfig:"NO_STYLE"`

	// Palette is used when PalettePath is empty.
	Palette xlsx.Palette `ignored:"true"`
}

// DefaultOpts are the options used when none are given.
var DefaultOpts = Opts{
	Palette: xlsx.DefaultPalette,
}

// EnvPrefix prefixes the environment variables read by OptsFromEnv, e.g.
// VARMERGE_PALETTE.
const EnvPrefix = "VARMERGE"

// OptsFromEnv returns DefaultOpts overridden by VARMERGE_* environment
// variables.
func OptsFromEnv() (Opts, error) {
	opts := DefaultOpts
	if err := envconfig.Process(EnvPrefix, &opts); err != nil {
		return Opts{}, err
	}
	return opts, nil
}

// StyleRules are the xlsx styling rules for merged FDSTOOLS/MUTECT2 tables.
var StyleRules = xlsx.Rules{
	FlagA: FlagAColumn,
	FlagB: FlagBColumn,
	CallerA: xlsx.Theme{
		Suffixes: []string{SuffixA, "_FDS"},
		Names:    []string{CallerAColumn, "interp_total", "marker", "marker_range", "num_markers", "variant_note"},
	},
	CallerB: xlsx.Theme{
		Suffixes: []string{SuffixB, "_MT2"},
		Names:    []string{CallerBColumn, "Filter", "Pos", "Ref", "Variant", "GT", "Type", "MBQ"},
	},
}

// Run merges the caller tables at pathA and pathB, writes the result to the
// workbook outPath, and styles it in place. All failures are *Error. After a
// Styling error the unstyled workbook is left at outPath.
func Run(ctx context.Context, pathA, pathB, outPath string, opts *Opts) error {
	palette := opts.Palette
	if opts.PalettePath != "" {
		var err error
		if palette, err = xlsx.LoadPalette(ctx, opts.PalettePath); err != nil {
			return err
		}
	}

	m, err := ReadAndMerge(ctx, pathA, pathB)
	if err != nil {
		return err
	}
	if err = Transform(m); err != nil {
		return &Error{Kind: MergeProcessing, Err: err}
	}
	log.Debug.Printf("merged table: %d rows, %d columns", m.NumRows(), m.NumCols())
	if err = xlsx.Write(ctx, outPath, m); err != nil {
		return &Error{Kind: MergeProcessing, Path: outPath, Err: err}
	}
	if opts.TSVPath != "" {
		if err = table.WriteTSVFile(ctx, opts.TSVPath, m); err != nil {
			return &Error{Kind: MergeProcessing, Path: opts.TSVPath, Err: err}
		}
		log.Printf("Merged TSV file saved to: %s", opts.TSVPath)
	}
	log.Printf("Merged Excel file saved to: %s", outPath)

	if opts.NoStyle {
		return nil
	}
	if err = xlsx.Style(ctx, outPath, StyleRules, palette); err != nil {
		return &Error{Kind: Styling, Path: outPath, Err: err}
	}
	log.Printf("Excel styling completed successfully.")
	return nil
}
