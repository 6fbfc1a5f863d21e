// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import "fmt"

// LineRef identifies the offending input line for diagnostics. Line numbers
// are 1-based and count every line of the file, blank lines included.
type LineRef struct {
	File string
	Line int
	Raw  string
}

func (r LineRef) String() string {
	return fmt.Sprintf("line %d [%s] in file %q", r.Line, r.Raw, r.File)
}

// MalformedLineError reports a line that does not split into exactly two
// space-separated tokens.
type MalformedLineError struct {
	LineRef
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("line must be specified as longitude<space>latitude: %s", e.LineRef)
}

// InvalidCharacterError reports a token containing a character outside the
// permitted numeric charset.
type InvalidCharacterError struct {
	LineRef
	Axis  string // "longitude" or "latitude"
	Token string
	Char  rune
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid character %q in %s %s: %s", e.Char, e.Axis, e.Token, e.LineRef)
}

// NumericParseError reports a token that passed the charset check but is not
// a valid decimal number.
type NumericParseError struct {
	LineRef
	Axis  string
	Token string
	Err   error
}

func (e *NumericParseError) Error() string {
	return fmt.Sprintf("%s %s is not a valid decimal number: %s", e.Axis, e.Token, e.LineRef)
}

func (e *NumericParseError) Unwrap() error { return e.Err }

// RangeError reports a longitude or latitude outside its valid domain.
type RangeError struct {
	LineRef
	Axis     string
	Token    string
	Min, Max float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %s is outside valid range of %v to %v: %s",
		e.Axis, e.Token, e.Min, e.Max, e.LineRef)
}

// InsufficientGeometryError reports a file with fewer than three data lines.
// A closed polygon needs at least three vertices.
type InsufficientGeometryError struct {
	File      string
	DataLines int
}

func (e *InsufficientGeometryError) Error() string {
	return fmt.Sprintf("file %q contains no polygon data: %d data lines, need at least %d",
		e.File, e.DataLines, minDataLines)
}

// DestinationExistsError reports a computed destination path that already
// exists while overwrite was not requested.
type DestinationExistsError struct {
	Source      string
	Destination string
}

func (e *DestinationExistsError) Error() string {
	return fmt.Sprintf("destination file %q already exists", e.Destination)
}
