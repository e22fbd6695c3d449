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
	"errors"
	"fmt"
)

// Kind classifies pipeline failures.
type Kind int

const (
	// Other is an error raised outside of the pipeline stages.
	Other Kind = iota
	// InputRead means a caller table could not be parsed as delimited text.
	InputRead
	// MergeProcessing means key derivation, join, sort, reordering, the
	// post-merge transforms, or writing the merged output failed.
	MergeProcessing
	// Styling means the written spreadsheet could not be reopened, styled or
	// saved. The unstyled spreadsheet is left in place.
	Styling
)

func (k Kind) String() string {
	switch k {
	case InputRead:
		return "input read error"
	case MergeProcessing:
		return "merge processing error"
	case Styling:
		return "styling error"
	default:
		return "error"
	}
}

// Error is returned by the pipeline stages.
type Error struct {
	Kind Kind
	// Path is the file being processed, if any.
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain, or Other.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Other
}
