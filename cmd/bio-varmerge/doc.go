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
Given the variant tables of FDSTOOLS and MUTECT2 for one sample, bio-varmerge
writes a single Excel workbook with one row per variant called by either tool,
colored for manual review.

Both inputs are TSVs with a header row; the FDSTOOLS table must have an
FDSTOOLS column and the MUTECT2 table a MUTECT2 column, holding the variant
names used to match calls between the two. Compressed inputs are detected by
file extension.

Sample usage:
bio-varmerge \
    -tsv merged.tsv \
    sample.fdstools.tsv \
    sample.mutect2.tsv \
    sample.merged.xlsx

Exit status is 0 on success, 1 if the merge or the styling failed, and 2 on
usage errors. When only styling fails, the unstyled workbook is kept.

Defaults for -palette, -tsv and -no-style may be set through VARMERGE_PALETTE,
VARMERGE_TSV and VARMERGE_NO_STYLE.
*/
package main
