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
	"io"
	"reflect"
	"regexp"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"gopkg.in/yaml.v3"
)

// Palette holds the RGB hex colors ("C6EFCE") used by Style.
type Palette struct {
	// Column backgrounds by caller.
	CallerA string `yaml:"caller_a"`
	CallerB string `yaml:"caller_b"`

	// Intermediate fills of false provenance flags. FlagFalse always replaces
	// them in the final sheet.
	ProvenanceA string `yaml:"provenance_a"`
	ProvenanceB string `yaml:"provenance_b"`
	FlagFalse   string `yaml:"flag_false"`

	// Merge key column fills.
	KeyLow       string `yaml:"key_low"`
	KeyFalseFlag string `yaml:"key_false_flag"`
	KeyLowercase string `yaml:"key_lowercase"`
	KeyDash      string `yaml:"key_dash"`
	KeyIUPAC     string `yaml:"key_iupac"`
	KeyDefault   string `yaml:"key_default"`

	// Border is the color of the thin border drawn around every data cell.
	Border string `yaml:"border"`
}

// DefaultPalette is the palette analysts are used to.
var DefaultPalette = Palette{
	CallerA:      "C6EFCE",
	CallerB:      "D9E1F2",
	ProvenanceA:  "C6EFCE",
	ProvenanceB:  "FFC7CE",
	FlagFalse:    "FFC7CE",
	KeyLow:       "FEFE01",
	KeyFalseFlag: "F50003",
	KeyLowercase: "3CB0F1",
	KeyDash:      "92D14F",
	KeyIUPAC:     "FAC000",
	KeyDefault:   "36B150",
	Border:       "FFFFFF",
}

var rgbRE = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// Validate checks that every color is six hex digits.
func (p Palette) Validate() error {
	v := reflect.ValueOf(p)
	for i := 0; i < v.NumField(); i++ {
		if c := v.Field(i).String(); !rgbRE.MatchString(c) {
			return errors.E(errors.Invalid, "palette:", v.Type().Field(i).Tag.Get("yaml"), "is not an RGB hex color:", c)
		}
	}
	return nil
}

// LoadPalette reads a YAML palette from path. Keys missing from the file keep
// their DefaultPalette color; unknown keys are an error.
func LoadPalette(ctx context.Context, path string) (p Palette, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return Palette{}, err
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	p = DefaultPalette
	dec := yaml.NewDecoder(in.Reader(ctx))
	dec.KnownFields(true)
	if err = dec.Decode(&p); err != nil && err != io.EOF {
		return Palette{}, errors.E(errors.Invalid, err, "palette", path)
	}
	if err = p.Validate(); err != nil {
		return Palette{}, errors.E(err, path)
	}
	return p, nil
}
