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
	"github.com/grailbio/varmerge/table"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	// DroppedColumns are removed from the merged table before it is written.
	DroppedColumns = []string{"ID", "is_noise_or_low_frq"}

	// RenamedColumns shortens FDSTOOLS's long column names.
	RenamedColumns = map[string]string{
		"interpolated_total_coverage":           "interp_total",
		"total_wo_noise_or_low_frq":             "total_clean",
		"variant_frequency_wo_noise_or_low_frq": "variant_frequency_clean",
	}

	// PercentColumn holds MUTECT2's allele fraction, reported as a percentage.
	PercentColumn = "vf_MT2"
)

var hundred = decimal.NewFromInt(100)

// Transform applies the report-level column edits to a merged table, in
// place: it drops DroppedColumns, renames RenamedColumns, and converts
// PercentColumn from a fraction to a percentage rounded to two decimals.
func Transform(t *table.Table) error {
	t.Drop(DroppedColumns...)
	if err := t.Rename(RenamedColumns); err != nil {
		return err
	}
	c, ok := t.Col(PercentColumn)
	if !ok {
		return nil
	}
	vals := make([]table.Value, len(c.Values))
	for i, v := range c.Values {
		if !v.Valid {
			continue
		}
		pct, err := Percent(v.S)
		if err != nil {
			return errors.Wrapf(err, "%s row %d", PercentColumn, i+1)
		}
		vals[i] = table.Str(pct)
	}
	return t.Set(&table.Column{Name: c.Name, Kind: c.Kind, Values: vals})
}

// Percent converts a fraction such as "0.4567" to a percentage rounded to two
// decimal places, "45.67".
func Percent(fraction string) (string, error) {
	d, err := decimal.NewFromString(fraction)
	if err != nil {
		return "", errors.Wrapf(err, "not a number: %q", fraction)
	}
	return d.Mul(hundred).Round(2).String(), nil
}
