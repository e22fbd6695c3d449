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
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/klauspost/compress/gzip"
)

// WriteTSV writes t with a header row. Nulls are written as empty cells.
func WriteTSV(w io.Writer, t *Table) error {
	tw := tsv.NewWriter(w)
	for _, name := range t.Names() {
		tw.WriteString(name)
	}
	if err := tw.EndLine(); err != nil {
		return err
	}
	for i := 0; i < t.NumRows(); i++ {
		for _, v := range t.Row(i) {
			tw.WriteString(v.S)
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteTSVFile writes t to path, gzip-compressed if path ends in ".gz".
func WriteTSVFile(ctx context.Context, path string, t *Table) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		if e := out.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	if !strings.HasSuffix(path, ".gz") {
		return WriteTSV(out.Writer(ctx), t)
	}
	gz := gzip.NewWriter(out.Writer(ctx))
	if err = WriteTSV(gz, t); err != nil {
		return err
	}
	return gz.Close()
}
