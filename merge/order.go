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
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/grailbio/varmerge/table"
)

// PriorityColumns follow KeyColumn in the merged table, when present.
var PriorityColumns = []string{
	CallerAColumn,
	"vf_FDS",
	"rd_FDS",
	CallerBColumn,
	"vf_MT2",
	"rd_MT2",
	"MBQ",
	FlagAColumn,
	FlagBColumn,
}

var positionRE = regexp.MustCompile(`\d+\.?\d*`)

// Position returns the first decimal number in a merge key, e.g. 16189.1 for
// "16189.1C", or +Inf if the key has none.
func Position(key string) float64 {
	m := positionRE.FindString(key)
	if m == "" {
		return math.Inf(1)
	}
	p, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.Inf(1)
	}
	return p
}

// sortRows returns t with rows stably sorted by the Position of their key,
// then by the key text. Null keys sort last.
func sortRows(t *table.Table) *table.Table {
	key, _ := t.Col(KeyColumn)
	pos := make([]float64, t.NumRows())
	perm := make([]int, t.NumRows())
	for i, v := range key.Values {
		perm[i] = i
		pos[i] = math.Inf(1)
		if v.Valid {
			pos[i] = Position(v.S)
		}
	}
	sort.SliceStable(perm, func(i, j int) bool {
		a, b := perm[i], perm[j]
		if pos[a] != pos[b] {
			return pos[a] < pos[b]
		}
		ka, kb := key.Values[a], key.Values[b]
		if ka.Valid != kb.Valid {
			return ka.Valid
		}
		return ka.S < kb.S
	})
	return t.Permute(perm)
}

// ColumnOrder returns KeyColumn, then the PriorityColumns in names, then the
// rest of names in their original order.
func ColumnOrder(names []string) []string {
	present := map[string]bool{}
	for _, n := range names {
		present[n] = true
	}
	order := []string{KeyColumn}
	placed := map[string]bool{KeyColumn: true}
	for _, n := range PriorityColumns {
		if present[n] && !placed[n] {
			order = append(order, n)
			placed[n] = true
		}
	}
	for _, n := range names {
		if !placed[n] {
			order = append(order, n)
			placed[n] = true
		}
	}
	return order
}

func orderColumns(t *table.Table) (*table.Table, error) {
	return t.Select(ColumnOrder(t.Names()))
}
