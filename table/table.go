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

/*Package table holds small column-oriented tables of caller output.

  Every cell is a Value: the text read from the input plus a validity bit, so
  that the nulls introduced by an outer join stay distinguishable from empty
  strings.  Tables are meant for a few thousand rows at most; every operation
  materializes its result.
*/
package table

import (
	"github.com/pkg/errors"
)

// Kind is the logical type of a column.
type Kind int

const (
	// String columns hold the text read from the input, unmodified.
	String Kind = iota
	// Bool columns hold "True" or "False".
	Bool
)

const (
	trueText  = "True"
	falseText = "False"
)

// Value is a single nullable cell.
type Value struct {
	S     string
	Valid bool
}

// Null returns the null value.
func Null() Value { return Value{} }

// Str returns a non-null text value.
func Str(s string) Value { return Value{S: s, Valid: true} }

// BoolValue returns a non-null boolean value.
func BoolValue(b bool) Value {
	if b {
		return Value{S: trueText, Valid: true}
	}
	return Value{S: falseText, Valid: true}
}

// IsTrue reports whether v is a non-null true boolean.
func (v Value) IsTrue() bool { return v.Valid && v.S == trueText }

// IsFalse reports whether v is a non-null false boolean.
func (v Value) IsFalse() bool { return v.Valid && v.S == falseText }

// Column is a named sequence of values.
type Column struct {
	Name   string
	Kind   Kind
	Values []Value
}

// Table is an ordered set of equal-length columns with unique names.
type Table struct {
	cols  []*Column
	index map[string]int
	nRows int
}

// New creates an empty table.
func New() *Table {
	return &Table{index: map[string]int{}}
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.nRows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Has reports whether the table has a column with the given name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Col returns the named column. The column must not be modified in place.
func (t *Table) Col(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// Column returns the i'th column.
func (t *Table) Column(i int) *Column { return t.cols[i] }

// Add appends a column. The first column fixes the row count of the table.
func (t *Table) Add(c *Column) error {
	if _, ok := t.index[c.Name]; ok {
		return errors.Errorf("duplicate column %q", c.Name)
	}
	if len(t.cols) == 0 {
		t.nRows = len(c.Values)
	} else if len(c.Values) != t.nRows {
		return errors.Errorf("column %q has %d rows, want %d", c.Name, len(c.Values), t.nRows)
	}
	t.index[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// Set replaces the named column, keeping its position, or appends it if the
// table has no such column.
func (t *Table) Set(c *Column) error {
	i, ok := t.index[c.Name]
	if !ok {
		return t.Add(c)
	}
	if len(c.Values) != t.nRows {
		return errors.Errorf("column %q has %d rows, want %d", c.Name, len(c.Values), t.nRows)
	}
	t.cols[i] = c
	return nil
}

// Clone returns a table sharing t's columns. Adding, replacing or dropping
// columns of the clone does not affect t.
func (t *Table) Clone() *Table {
	c := &Table{
		cols:  append([]*Column(nil), t.cols...),
		index: make(map[string]int, len(t.index)),
		nRows: t.nRows,
	}
	for k, v := range t.index {
		c.index[k] = v
	}
	return c
}

// Drop removes the named columns. Names the table doesn't have are ignored.
func (t *Table) Drop(names ...string) {
	drop := map[string]bool{}
	for _, n := range names {
		drop[n] = true
	}
	kept := t.cols[:0]
	for _, c := range t.cols {
		if !drop[c.Name] {
			kept = append(kept, c)
		}
	}
	t.cols = kept
	t.reindex()
}

// Rename renames columns per the old->new mapping. Names the table doesn't
// have are ignored. Renaming onto an existing column is an error.
func (t *Table) Rename(names map[string]string) error {
	for i, c := range t.cols {
		to, ok := names[c.Name]
		if !ok || to == c.Name {
			continue
		}
		if t.Has(to) {
			return errors.Errorf("rename %q: column %q already exists", c.Name, to)
		}
		renamed := *c
		renamed.Name = to
		t.cols[i] = &renamed
		t.reindex()
	}
	return nil
}

// Select returns a table holding exactly the named columns, in that order.
func (t *Table) Select(names []string) (*Table, error) {
	s := New()
	for _, n := range names {
		c, ok := t.Col(n)
		if !ok {
			return nil, errors.Errorf("select: no column %q", n)
		}
		if err := s.Add(c); err != nil {
			return nil, errors.Wrap(err, "select")
		}
	}
	if len(names) == 0 {
		s.nRows = t.nRows
	}
	return s, nil
}

// Permute returns a table whose i'th row is t's perm[i]'th row.
func (t *Table) Permute(perm []int) *Table {
	p := New()
	p.nRows = len(perm)
	for _, c := range t.cols {
		vals := make([]Value, len(perm))
		for i, j := range perm {
			vals[i] = c.Values[j]
		}
		p.index[c.Name] = len(p.cols)
		p.cols = append(p.cols, &Column{Name: c.Name, Kind: c.Kind, Values: vals})
	}
	return p
}

// Row returns the i'th row.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.cols))
	for j, c := range t.cols {
		row[j] = c.Values[i]
	}
	return row
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.cols))
	for i, c := range t.cols {
		t.index[c.Name] = i
	}
}
