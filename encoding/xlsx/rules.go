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
	"regexp"
	"strings"
)

// Theme recognizes the columns reported by one caller.
type Theme struct {
	Suffixes []string
	Names    []string
}

func (th Theme) matches(name string) bool {
	for _, s := range th.Suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	for _, n := range th.Names {
		if name == n {
			return true
		}
	}
	return false
}

// Rules names the columns Style treats specially. The first column is always
// the merge key.
type Rules struct {
	// FlagA and FlagB are the boolean provenance flag columns of the two
	// callers.
	FlagA, FlagB string
	// CallerB takes precedence over CallerA when both match.
	CallerA, CallerB Theme
}

// Role is the set of styling roles of a column.
type Role uint8

const (
	RoleKey Role = 1 << iota
	RoleFlagA
	RoleFlagB
	RoleCallerA
	RoleCallerB
)

// Roles resolves the role of every column of header.
func (r *Rules) Roles(header []string) []Role {
	roles := make([]Role, len(header))
	for i, name := range header {
		var role Role
		if i == 0 {
			role |= RoleKey
		}
		if name == r.FlagA {
			role |= RoleFlagA
		}
		if name == r.FlagB {
			role |= RoleFlagB
		}
		if r.CallerB.matches(name) {
			role |= RoleCallerB
		} else if r.CallerA.matches(name) {
			role |= RoleCallerA
		}
		roles[i] = role
	}
	return roles
}

var lowercaseRE = regexp.MustCompile(`[a-z]`)

// iupacCodes are the two-base ambiguity codes flagged in merge keys.
const iupacCodes = "MRYWSK"

// keyFill picks the fill of a merge key cell. flagFalse is whether either
// provenance flag of the row is false.
func keyFill(p *Palette, key string, flagFalse bool) string {
	switch {
	case key == "LOW":
		return p.KeyLow
	case flagFalse:
		return p.KeyFalseFlag
	case lowercaseRE.MatchString(key):
		return p.KeyLowercase
	case strings.Contains(key, "-"):
		return p.KeyDash
	case strings.ContainsAny(key, iupacCodes):
		return p.KeyIUPAC
	default:
		return p.KeyDefault
	}
}

// cellFill returns the fill of a data cell, or "" for none. Later rules
// override earlier ones; isFalse is whether the cell holds boolean false and
// rowFlagFalse whether either provenance flag of its row does.
func cellFill(p *Palette, role Role, text string, isFalse, rowFlagFalse bool) string {
	var fill string
	if role&RoleKey != 0 {
		fill = keyFill(p, text, rowFlagFalse)
	}
	// Never final: the FlagFalse rule below replaces both.
	if role&RoleFlagA != 0 && isFalse {
		fill = p.ProvenanceA
	} else if role&RoleFlagB != 0 && isFalse {
		fill = p.ProvenanceB
	}
	if role&RoleCallerB != 0 {
		fill = p.CallerB
	} else if role&RoleCallerA != 0 {
		fill = p.CallerA
	}
	if (role&RoleFlagA != 0 && isFalse) || (role&RoleFlagB != 0 && isFalse) {
		fill = p.FlagFalse
	}
	return fill
}
