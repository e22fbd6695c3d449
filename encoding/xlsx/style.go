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
	"unicode/utf8"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/xuri/excelize/v2"
)

const (
	boolFalse = "FALSE"
	thinLine  = 1
)

// Style colors and sizes the active sheet of the workbook at path, in place.
// Every data cell gets a thin border and the fill chosen by rules and p; each
// column is sized to its longest value plus one. Styling an already styled
// workbook leaves it looking the same.
func Style(ctx context.Context, path string, rules Rules, p Palette) (err error) {
	if err = p.Validate(); err != nil {
		return err
	}
	f, err := open(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = e
		}
	}()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return errors.E(err, "xlsx: read", path, sheet)
	}
	nCols := 0
	for _, row := range rows {
		if len(row) > nCols {
			nCols = len(row)
		}
	}
	var header []string
	if len(rows) > 0 {
		header = make([]string, nCols)
		copy(header, rows[0])
	}
	roles := rules.Roles(header)
	styles := newStyleCache(f, p.Border)
	isFalse := make([]bool, nCols)
	for r := 1; r < len(rows); r++ {
		rowFlagFalse := false
		for c, role := range roles {
			isFalse[c] = false
			if role&(RoleFlagA|RoleFlagB) == 0 || cellText(rows[r], c) != boolFalse {
				continue
			}
			typ, err := f.GetCellType(sheet, cellName(c, r))
			if err != nil {
				return errors.E(err, "xlsx: read", path, cellName(c, r))
			}
			isFalse[c] = typ == excelize.CellTypeBool
			rowFlagFalse = rowFlagFalse || isFalse[c]
		}
		for c, role := range roles {
			id, err := styles.id(cellFill(&p, role, cellText(rows[r], c), isFalse[c], rowFlagFalse))
			if err != nil {
				return errors.E(err, "xlsx: style", path)
			}
			axis := cellName(c, r)
			if err := f.SetCellStyle(sheet, axis, axis, id); err != nil {
				return errors.E(err, "xlsx: style", path, axis)
			}
		}
	}
	for c, w := range columnWidths(rows, nCols) {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(w)); err != nil {
			return errors.E(err, "xlsx: width", path, col)
		}
	}
	log.Debug.Printf("styled %d rows x %d columns of %s", len(rows)-1, nCols, path)
	return save(ctx, f, path)
}

func cellText(row []string, c int) string {
	if c < len(row) {
		return row[c]
	}
	return ""
}

// columnWidths returns, per column, the length of its longest non-empty
// value, header included, plus one.
func columnWidths(rows [][]string, nCols int) []int {
	widths := make([]int, nCols)
	for _, row := range rows {
		for c, text := range row {
			if n := utf8.RuneCountInString(text); n > widths[c] {
				widths[c] = n
			}
		}
	}
	for c := range widths {
		widths[c]++
	}
	return widths
}

// styleCache shares one style per fill color.
type styleCache struct {
	f      *excelize.File
	border []excelize.Border
	ids    map[string]int
}

func newStyleCache(f *excelize.File, borderColor string) *styleCache {
	var border []excelize.Border
	for _, side := range []string{"left", "right", "top", "bottom"} {
		border = append(border, excelize.Border{Type: side, Color: borderColor, Style: thinLine})
	}
	return &styleCache{f: f, border: border, ids: map[string]int{}}
}

// id returns the style with the shared border and the given fill; "" means no
// fill.
func (s *styleCache) id(fill string) (int, error) {
	if id, ok := s.ids[fill]; ok {
		return id, nil
	}
	style := &excelize.Style{Border: s.border}
	if fill != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}}
	}
	id, err := s.f.NewStyle(style)
	if err != nil {
		return 0, err
	}
	s.ids[fill] = id
	return id, nil
}
