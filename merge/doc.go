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

/*
Package merge reconciles the variant calls of two callers, FDSTOOLS (caller A)
and MUTECT2 (caller B), into one table.

Each caller's table gets a merge key column, FMP, copied from its own
identifier column (FDSTOOLS or MUTECT2). The two tables are then outer-joined
on FMP; column names present on both sides, other than FMP, are suffixed with
"_FDSTOOLS" or "_MUTECT2". Two boolean columns record which caller produced
each variant:

  called_by_FDSTOOLS  true iff the FDSTOOLS column is non-null
  called_by_MUTECT2   true iff the MUTECT2 column is non-null

Rows are sorted by the first decimal number found in FMP (rows without one go
last), and columns are ordered FMP, then the known columns of PriorityColumns
that are present, then everything else in join order.

Run drives the whole batch: merge, Transform, write the .xlsx with
encoding/xlsx, then style it in place.
*/
package merge
