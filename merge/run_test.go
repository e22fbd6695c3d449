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
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/varmerge/encoding/xlsx"
	"github.com/grailbio/varmerge/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const (
	testFDSTOOLS = "FDSTOOLS\tvf_FDS\tID\tinterpolated_total_coverage\n" +
		"73G\t0.5\tx\t120\n" +
		"310.1c\t0.25\ty\t80\n"
	testMUTECT2 = "MUTECT2\tvf_MT2\tFilter\n" +
		"310.1c\t0.4567\tPASS\n" +
		"16519Y\t0.03\tPASS\n"
)

func writeFile(t *testing.T, dir, name, data string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(data), 0644))
	return path
}

func TestRun(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := context.Background()
	a := writeFile(t, tmpdir, "a.tsv", testFDSTOOLS)
	b := writeFile(t, tmpdir, "b.tsv", testMUTECT2)
	out := filepath.Join(tmpdir, "merged.xlsx")

	opts := DefaultOpts
	require.NoError(t, Run(ctx, a, b, out, &opts))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	got, err := f.GetRows(xlsx.SheetName)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"FMP", "FDSTOOLS", "vf_FDS", "MUTECT2", "vf_MT2", "called_by_FDSTOOLS", "called_by_MUTECT2", "interp_total", "Filter"}, got[0])
	assert.Equal(t, []string{"310.1c", "310.1c", "0.25", "310.1c", "45.67", "TRUE", "TRUE", "80", "PASS"}, got[2])
	assert.Equal(t, "16519Y", got[3][0])
	assert.Equal(t, "3", got[3][4])

	// Row 2 was not called by MUTECT2, so its key is marked.
	id, err := f.GetCellStyle(xlsx.SheetName, "A2")
	require.NoError(t, err)
	style, err := f.GetStyle(id)
	require.NoError(t, err)
	require.NotEmpty(t, style.Fill.Color)
	assert.Contains(t, style.Fill.Color[0], DefaultOpts.Palette.KeyFalseFlag)
}

func TestRunHeaderOnlyCaller(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	a := writeFile(t, tmpdir, "a.tsv", testFDSTOOLS)
	b := writeFile(t, tmpdir, "b.tsv", "MUTECT2\tvf_MT2\tFilter\n")
	out := filepath.Join(tmpdir, "merged.xlsx")

	opts := DefaultOpts
	require.NoError(t, Run(context.Background(), a, b, out, &opts))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	got, err := f.GetRows(xlsx.SheetName)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"FMP", "FDSTOOLS", "vf_FDS", "MUTECT2", "vf_MT2", "called_by_FDSTOOLS", "called_by_MUTECT2", "interp_total", "Filter"}, got[0])
	assert.Equal(t, "73G", got[1][0])
	assert.Equal(t, "TRUE", got[1][5])
	assert.Equal(t, "FALSE", got[1][6])
	assert.Equal(t, "310.1c", got[2][0])
}

func TestRunNoStyle(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	a := writeFile(t, tmpdir, "a.tsv", testFDSTOOLS)
	b := writeFile(t, tmpdir, "b.tsv", testMUTECT2)
	out := filepath.Join(tmpdir, "merged.xlsx")
	tsv := filepath.Join(tmpdir, "merged.tsv.gz")

	opts := DefaultOpts
	opts.NoStyle = true
	opts.TSVPath = tsv
	require.NoError(t, Run(context.Background(), a, b, out, &opts))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	id, err := f.GetCellStyle(xlsx.SheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	exported, err := ReadAndMerge(context.Background(), a, b)
	require.NoError(t, err)
	require.NoError(t, Transform(exported))
	back, err := table.ReadTSVFile(context.Background(), tsv)
	require.NoError(t, err)
	assert.Equal(t, exported.Names(), back.Names())
	assert.Equal(t, exported.NumRows(), back.NumRows())
}

func TestRunErrors(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()
	a := writeFile(t, tmpdir, "a.tsv", testFDSTOOLS)
	b := writeFile(t, tmpdir, "b.tsv", testMUTECT2)
	out := filepath.Join(tmpdir, "merged.xlsx")

	opts := DefaultOpts
	err := Run(ctx, a, filepath.Join(tmpdir, "missing.tsv"), out, &opts)
	assert.Equal(t, InputRead, KindOf(err))
	ragged := writeFile(t, tmpdir, "ragged.tsv", "MUTECT2\n310.1c\t0.4567\n")
	err = Run(ctx, a, ragged, out, &opts)
	assert.Equal(t, InputRead, KindOf(err))
	assert.Equal(t, 1, strings.Count(err.Error(), ragged), err.Error())
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))

	bad := writeFile(t, tmpdir, "bad.tsv", "MUTECT2\tvf_MT2\n310.1c\tPASS\n")
	err = Run(ctx, a, bad, out, &opts)
	assert.Equal(t, MergeProcessing, KindOf(err))

	// An unusable palette fails styling but keeps the unstyled workbook.
	opts.Palette.CallerA = "green"
	err = Run(ctx, a, b, out, &opts)
	assert.Equal(t, Styling, KindOf(err))
	_, statErr = os.Stat(out)
	assert.NoError(t, statErr)

	opts = DefaultOpts
	opts.PalettePath = writeFile(t, tmpdir, "palette.yaml", "nope: 000000\n")
	err = Run(ctx, a, b, out, &opts)
	assert.Error(t, err)
	assert.Equal(t, Other, KindOf(err))
}

func TestOptsFromEnv(t *testing.T) {
	for k, v := range map[string]string{
		"VARMERGE_TSV":      "/tmp/merged.tsv",
		"VARMERGE_NO_STYLE": "true",
	} {
		require.NoError(t, os.Setenv(k, v))
		defer os.Unsetenv(k)
	}
	opts, err := OptsFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/merged.tsv", opts.TSVPath)
	assert.True(t, opts.NoStyle)
	assert.Equal(t, "", opts.PalettePath)
	assert.Equal(t, xlsx.DefaultPalette, opts.Palette)

	require.NoError(t, os.Setenv("VARMERGE_NO_STYLE", "maybe"))
	_, err = OptsFromEnv()
	assert.Error(t, err)
}
