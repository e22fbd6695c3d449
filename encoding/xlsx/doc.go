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

/*Package xlsx writes merged variant tables as single-sheet Excel workbooks and
  colors them for review.

  Write produces the plain workbook. Style then reopens it and, for every data
  cell, draws a thin border and picks a fill:

  1. Merge key (first) column: "LOW"; either provenance flag false; lowercase
     letters; a dash; an IUPAC ambiguity code; anything else.
  2. Provenance flag columns holding false get an intermediate fill.
  3. Columns recognized by a caller Theme get that caller's background.
  4. Provenance flag columns holding false get Palette.FlagFalse.

  Later steps override earlier ones. Column widths are set to the longest
  value plus one.
*/
package xlsx
