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
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
	"github.com/pkg/errors"
)

// NATokens are the cell texts read as null. The list matches what the callers'
// downstream dataframe tooling treats as missing.
var NATokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a",
	"nan", "null",
}

// gota's marker for a missing string element.
const gotaNA = "NaN"

// ReadTSV reads a tab-separated table with a mandatory header row. All columns
// are read as text; cells matching NATokens become null. A header-only input
// yields a table with no rows. Rows shorter than the header are padded with
// nulls; trailing empty fields beyond the header are ignored. Repeated header
// names get ".1", ".2", ... suffixes.
func ReadTSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read tsv")
	}
	if len(records) == 0 {
		return nil, errors.New("read tsv: no header row")
	}
	header := uniqueNames(records[0])
	for i := 1; i < len(records); i++ {
		rec, err := fitRecord(records[i], len(header))
		if err != nil {
			return nil, errors.Wrapf(err, "read tsv: line %d", i+1)
		}
		records[i] = rec
	}
	records[0] = header
	if len(records) == 1 {
		t := New()
		for _, name := range header {
			if err := t.Add(&Column{Name: name, Kind: String}); err != nil {
				return nil, errors.Wrap(err, "read tsv")
			}
		}
		return t, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(NATokens))
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "read tsv")
	}
	t := New()
	for _, name := range df.Names() {
		s := df.Col(name)
		if s.Err != nil {
			return nil, errors.Wrapf(s.Err, "read tsv: column %q", name)
		}
		recs := s.Records()
		nan := s.IsNaN()
		vals := make([]Value, len(recs))
		for i, rec := range recs {
			if nan[i] || rec == gotaNA {
				vals[i] = Null()
				continue
			}
			vals[i] = Str(rec)
		}
		if err := t.Add(&Column{Name: name, Kind: String, Values: vals}); err != nil {
			return nil, errors.Wrap(err, "read tsv")
		}
	}
	return t, nil
}

// fitRecord pads rec with empty fields up to n, or drops empty fields past n.
func fitRecord(rec []string, n int) ([]string, error) {
	for len(rec) > n && rec[len(rec)-1] == "" {
		rec = rec[:len(rec)-1]
	}
	if len(rec) > n {
		return nil, errors.Errorf("expected %d fields, saw %d", n, len(rec))
	}
	for len(rec) < n {
		rec = append(rec, "")
	}
	return rec, nil
}

// uniqueNames renames repeated header names x to x.1, x.2, ... and empty names
// to "Unnamed: <index>".
func uniqueNames(header []string) []string {
	names := make([]string, len(header))
	seen := map[string]bool{}
	for _, h := range header {
		seen[h] = true
	}
	used := map[string]bool{}
	for i, h := range header {
		name := h
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		for n := 1; used[name]; n++ {
			if cand := fmt.Sprintf("%s.%d", h, n); !seen[cand] && !used[cand] {
				name = cand
			}
		}
		used[name] = true
		names[i] = name
	}
	return names
}

// ReadTSVFile reads a table from path. Compressed inputs are detected from the
// path suffix.
func ReadTSVFile(ctx context.Context, path string) (t *Table, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	var inr io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(inr, in.Name()); u != nil {
		inr = u
	}
	return ReadTSV(bufio.NewReaderSize(inr, 64<<10))
}
