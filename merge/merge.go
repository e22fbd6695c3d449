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
	"github.com/grailbio/varmerge/table"
	"github.com/grailbio/varmerge/util"
	"github.com/pkg/errors"
)

// Column names shared by the merger, the transforms and the styler.
const (
	KeyColumn     = "FMP"
	CallerAColumn = "FDSTOOLS"
	CallerBColumn = "MUTECT2"
	FlagAColumn   = "called_by_FDSTOOLS"
	FlagBColumn   = "called_by_MUTECT2"

	SuffixA = "_FDSTOOLS"
	SuffixB = "_MUTECT2"
)

// maxSuggestDistance bounds the edit distance of column name suggestions.
const maxSuggestDistance = 2

// ReadAndMerge reads both caller tables and merges them. A table that cannot
// be read yields an InputRead *Error; a merge failure a MergeProcessing one.
func ReadAndMerge(ctx context.Context, pathA, pathB string) (*table.Table, error) {
	a, err := table.ReadTSVFile(ctx, pathA)
	if err != nil {
		return nil, &Error{Kind: InputRead, Path: pathA, Err: err}
	}
	b, err := table.ReadTSVFile(ctx, pathB)
	if err != nil {
		return nil, &Error{Kind: InputRead, Path: pathB, Err: err}
	}
	log.Debug.Printf("read %d rows from %s, %d rows from %s", a.NumRows(), pathA, b.NumRows(), pathB)
	m, err := Merge(a, b)
	if err != nil {
		return nil, &Error{Kind: MergeProcessing, Err: err}
	}
	return m, nil
}

// Merge outer-joins caller A's table a with caller B's table b on the merge
// key, adds the provenance flags, and orders rows and columns. a and b are
// not modified.
func Merge(a, b *table.Table) (*table.Table, error) {
	a, err := withKey(a, CallerAColumn)
	if err != nil {
		return nil, err
	}
	b, err = withKey(b, CallerBColumn)
	if err != nil {
		return nil, err
	}
	m, err := outerJoin(a, b)
	if err != nil {
		return nil, err
	}
	if err = addFlag(m, CallerAColumn, FlagAColumn); err != nil {
		return nil, err
	}
	if err = addFlag(m, CallerBColumn, FlagBColumn); err != nil {
		return nil, err
	}
	m = sortRows(m)
	return orderColumns(m)
}

// withKey returns a copy of t with KeyColumn holding the values of idColumn.
func withKey(t *table.Table, idColumn string) (*table.Table, error) {
	id, ok := t.Col(idColumn)
	if !ok {
		return nil, errors.Errorf("column %q not found%s", idColumn, util.DidYouMean(idColumn, t.Names(), maxSuggestDistance))
	}
	k := t.Clone()
	if err := k.Set(&table.Column{Name: KeyColumn, Kind: id.Kind, Values: id.Values}); err != nil {
		return nil, err
	}
	return k, nil
}

// joinedRow pairs a left and a right row index; -1 stands for the null row.
type joinedRow struct{ l, r int }

// outerJoin computes the full outer join of left and right on KeyColumn. Left
// rows come first, in input order, each followed by its matches in right input
// order; unmatched right rows follow in input order.
func outerJoin(left, right *table.Table) (*table.Table, error) {
	lkey, _ := left.Col(KeyColumn)
	rkey, _ := right.Col(KeyColumn)

	byKey := map[table.Value][]int{}
	for i, v := range rkey.Values {
		byKey[v] = append(byKey[v], i)
	}
	matched := make([]bool, right.NumRows())
	var rows []joinedRow
	for i, v := range lkey.Values {
		rs := byKey[v]
		if len(rs) == 0 {
			rows = append(rows, joinedRow{i, -1})
			continue
		}
		for _, j := range rs {
			rows = append(rows, joinedRow{i, j})
			matched[j] = true
		}
	}
	for j, ok := range matched {
		if !ok {
			rows = append(rows, joinedRow{-1, j})
		}
	}

	collides := func(name string) bool {
		return name != KeyColumn && left.Has(name) && right.Has(name)
	}
	m := table.New()
	for i := 0; i < left.NumCols(); i++ {
		c := left.Column(i)
		name := c.Name
		if collides(name) {
			name += SuffixA
		}
		vals := make([]table.Value, len(rows))
		for k, row := range rows {
			switch {
			case row.l >= 0:
				vals[k] = c.Values[row.l]
			case c.Name == KeyColumn:
				vals[k] = rkey.Values[row.r]
			}
		}
		if err := m.Add(&table.Column{Name: name, Kind: c.Kind, Values: vals}); err != nil {
			return nil, errors.Wrap(err, "join")
		}
	}
	for i := 0; i < right.NumCols(); i++ {
		c := right.Column(i)
		if c.Name == KeyColumn {
			continue
		}
		name := c.Name
		if collides(name) {
			name += SuffixB
		}
		vals := make([]table.Value, len(rows))
		for k, row := range rows {
			if row.r >= 0 {
				vals[k] = c.Values[row.r]
			}
		}
		if err := m.Add(&table.Column{Name: name, Kind: c.Kind, Values: vals}); err != nil {
			return nil, errors.Wrap(err, "join")
		}
	}
	return m, nil
}

// addFlag appends the boolean column flag, true where idColumn is non-null.
func addFlag(t *table.Table, idColumn, flag string) error {
	id, ok := t.Col(idColumn)
	if !ok {
		return errors.Errorf("column %q not found after join", idColumn)
	}
	vals := make([]table.Value, len(id.Values))
	for i, v := range id.Values {
		vals[i] = table.BoolValue(v.Valid)
	}
	return t.Set(&table.Column{Name: flag, Kind: table.Bool, Values: vals})
}
