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

package table

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strs(vals ...string) []Value {
	out := make([]Value, len(vals))
	for i, v := range vals {
		if v == "<null>" {
			out[i] = Null()
		} else {
			out[i] = Str(v)
		}
	}
	return out
}

func newTestTable(t *testing.T) *Table {
	tbl := New()
	require.NoError(t, tbl.Add(&Column{Name: "a", Values: strs("1", "2", "3")}))
	require.NoError(t, tbl.Add(&Column{Name: "b", Values: strs("x", "<null>", "z")}))
	require.NoError(t, tbl.Add(&Column{Name: "c", Kind: Bool, Values: []Value{BoolValue(true), BoolValue(false), BoolValue(true)}}))
	return tbl
}

func TestAdd(t *testing.T) {
	tbl := newTestTable(t)
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, []string{"a", "b", "c"}, tbl.Names())
	assert.Error(t, tbl.Add(&Column{Name: "a", Values: strs("1", "2", "3")}))
	assert.Error(t, tbl.Add(&Column{Name: "d", Values: strs("1")}))
}

func TestSet(t *testing.T) {
	tbl := newTestTable(t)
	require.NoError(t, tbl.Set(&Column{Name: "b", Values: strs("p", "q", "r")}))
	assert.Equal(t, []string{"a", "b", "c"}, tbl.Names())
	b, ok := tbl.Col("b")
	require.True(t, ok)
	assert.Equal(t, strs("p", "q", "r"), b.Values)

	require.NoError(t, tbl.Set(&Column{Name: "d", Values: strs("p", "q", "r")}))
	assert.Equal(t, []string{"a", "b", "c", "d"}, tbl.Names())
}

func TestCloneIsolation(t *testing.T) {
	tbl := newTestTable(t)
	c := tbl.Clone()
	c.Drop("a")
	require.NoError(t, c.Add(&Column{Name: "z", Values: strs("1", "2", "3")}))
	assert.Equal(t, []string{"a", "b", "c"}, tbl.Names())
	assert.Equal(t, []string{"b", "c", "z"}, c.Names())
}

func TestDropRename(t *testing.T) {
	tbl := newTestTable(t)
	tbl.Drop("b", "missing")
	assert.Equal(t, []string{"a", "c"}, tbl.Names())

	require.NoError(t, tbl.Rename(map[string]string{"a": "alpha", "missing": "x"}))
	assert.Equal(t, []string{"alpha", "c"}, tbl.Names())
	assert.True(t, tbl.Has("alpha"))
	assert.False(t, tbl.Has("a"))

	assert.Error(t, tbl.Rename(map[string]string{"alpha": "c"}))
}

func TestSelectPermute(t *testing.T) {
	tbl := newTestTable(t)
	s, err := tbl.Select([]string{"c", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, s.Names())
	_, err = tbl.Select([]string{"nope"})
	assert.Error(t, err)

	p := tbl.Permute([]int{2, 0, 1})
	a, _ := p.Col("a")
	assert.Equal(t, strs("3", "1", "2"), a.Values)
	assert.Equal(t, []Value{Str("3"), Str("z"), BoolValue(true)}, p.Row(0))
	assert.Equal(t, []Value{Str("2"), Null(), BoolValue(false)}, p.Row(2))
}

func TestBoolValue(t *testing.T) {
	assert.True(t, BoolValue(true).IsTrue())
	assert.True(t, BoolValue(false).IsFalse())
	assert.False(t, Null().IsFalse())
	assert.False(t, Str("false").IsFalse())
}

func TestReadTSV(t *testing.T) {
	const in = "FDSTOOLS\tvf_FDS\tnote\n" +
		"73G\t0.5\tNA\n" +
		"263G\t\tok\n"
	tbl, err := ReadTSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"FDSTOOLS", "vf_FDS", "note"}, tbl.Names())
	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, []Value{Str("73G"), Str("0.5"), Null()}, tbl.Row(0))
	assert.Equal(t, []Value{Str("263G"), Null(), Str("ok")}, tbl.Row(1))
}

func TestReadTSVRaggedRows(t *testing.T) {
	_, err := ReadTSV(strings.NewReader("a\tb\n1\t2\t3\n"))
	assert.Error(t, err)

	tbl, err := ReadTSV(strings.NewReader("MUTECT2\tvf_MT2\tFilter\n1A\t0.1\t\t\n2C\n3T\t0.2\tPASS\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, []Value{Str("1A"), Str("0.1"), Null()}, tbl.Row(0))
	assert.Equal(t, []Value{Str("2C"), Null(), Null()}, tbl.Row(1))
	assert.Equal(t, []Value{Str("3T"), Str("0.2"), Str("PASS")}, tbl.Row(2))
}

func TestReadTSVHeaderOnly(t *testing.T) {
	tbl, err := ReadTSV(strings.NewReader("MUTECT2\tvf_MT2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"MUTECT2", "vf_MT2"}, tbl.Names())
	assert.Equal(t, 0, tbl.NumRows())
	c, ok := tbl.Col("vf_MT2")
	require.True(t, ok)
	assert.Equal(t, String, c.Kind)

	_, err = ReadTSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadTSVDuplicateNames(t *testing.T) {
	tbl, err := ReadTSV(strings.NewReader("MUTECT2\tx\tx\t\tx.2\tx\n1A\ta\tb\tc\td\te\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"MUTECT2", "x", "x.1", "Unnamed: 3", "x.2", "x.3"}, tbl.Names())
	assert.Equal(t, []Value{Str("1A"), Str("a"), Str("b"), Str("c"), Str("d"), Str("e")}, tbl.Row(0))
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, newTestTable(t)))
	assert.Equal(t, "a\tb\tc\n1\tx\tTrue\n2\t\tFalse\n3\tz\tTrue\n", buf.String())
}

func TestTSVFileGzip(t *testing.T) {
	ctx := context.Background()
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)

	path := filepath.Join(tmpdir, "merged.tsv.gz")
	require.NoError(t, WriteTSVFile(ctx, path, newTestTable(t)))
	got, err := ReadTSVFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got.Names())
	assert.Equal(t, []Value{Str("2"), Null(), Str("False")}, got.Row(1))
}
