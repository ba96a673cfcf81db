/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package code

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Code is the canonical, validated classification of a failed request.
//
// The pipeline only ever produces the kinds declared in codes.go, but the type
// stays open so that callers can register their own kinds (for example in a
// mapper) without a change in this package.
//
// Empty codes ("") are not valid kinds.
type Code string

// MinLength and MaxLength bound the length of a canonical code.
const (
	MinLength = 3
	MaxLength = 32
)

// codeFmt must stay in sync with MinLength/MaxLength: 1 + {2,31} = 3..32.
const codeFmt = `^[a-z][a-z0-9_]{2,31}$`

var codeRe = regexp.MustCompile(codeFmt)

var (
	// ErrCodeInvalid is returned when a value cannot be parsed or validated
	// as a kind.
	ErrCodeInvalid = errors.New("apiflow: invalid code")
)

var (
	_ encoding.TextMarshaler   = (*Code)(nil)
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

// Empty is the zero-value code. It means "not classified yet".
var Empty Code = ""

// Parse normalizes and validates s.
func Parse(s string) (Code, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Code(s), nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize trims, lowercases and replaces '-' and ' ' with '_'.
// The result is not guaranteed to be valid.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// Validate checks whether c is a canonical code. Empty is invalid.
func Validate(c Code) error {
	return validate(string(c))
}

// Known reports whether c is one of the kinds the pipeline produces.
func Known(c Code) bool {
	for _, k := range All() {
		if k == c {
			return true
		}
	}
	return false
}

func (c Code) String() string {
	return string(c)
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func validate(s string) error {
	if !codeRe.MatchString(s) {
		return ErrCodeInvalid
	}
	return nil
}
