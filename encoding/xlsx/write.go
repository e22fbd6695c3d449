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

package xlsx

import (
	"context"
	"math"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/varmerge/table"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the single sheet Write creates.
const SheetName = "Sheet1"

// Write writes t to a new workbook at path, replacing any existing file. The
// header is the first row. Null cells are left empty, Bool columns become
// boolean cells, and columns whose values all parse as numbers become numeric
// cells.
func Write(ctx context.Context, path string, t *table.Table) (err error) {
	f := excelize.NewFile()
	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = e
		}
	}()
	numeric := make([]bool, t.NumCols())
	for c := 0; c < t.NumCols(); c++ {
		numeric[c] = isNumeric(t.Column(c))
	}
	for c, name := range t.Names() {
		if err = f.SetCellStr(SheetName, cellName(c, 0), name); err != nil {
			return errors.E(err, "xlsx: write header", path)
		}
	}
	for r := 0; r < t.NumRows(); r++ {
		for c, v := range t.Row(r) {
			if !v.Valid {
				continue
			}
			axis := cellName(c, r+1)
			switch {
			case t.Column(c).Kind == table.Bool:
				err = f.SetCellBool(SheetName, axis, v.IsTrue())
			case numeric[c]:
				x, _ := strconv.ParseFloat(v.S, 64)
				err = f.SetCellFloat(SheetName, axis, x, -1, 64)
			default:
				err = f.SetCellStr(SheetName, axis, v.S)
			}
			if err != nil {
				return errors.E(err, "xlsx: write", path, axis)
			}
		}
	}
	return save(ctx, f, path)
}

// isNumeric reports whether every non-null value of a String column is a
// finite number.
func isNumeric(c *table.Column) bool {
	if c.Kind != table.String {
		return false
	}
	for _, v := range c.Values {
		if !v.Valid {
			continue
		}
		x, err := strconv.ParseFloat(v.S, 64)
		if err != nil || math.IsInf(x, 0) || math.IsNaN(x) {
			return false
		}
	}
	return true
}

// cellName returns the A1-style name of the cell at 0-based (col, row).
func cellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		panic(err)
	}
	return name
}

func open(ctx context.Context, path string) (f *excelize.File, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	if f, err = excelize.OpenReader(in.Reader(ctx)); err != nil {
		return nil, errors.E(err, "xlsx: open", path)
	}
	return f, nil
}

func save(ctx context.Context, f *excelize.File, path string) (err error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return errors.E(err, "xlsx: encode", path)
	}
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		if e := out.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	if _, err = out.Writer(ctx).Write(buf.Bytes()); err != nil {
		return errors.E(err, "xlsx: write", path)
	}
	return nil
}
