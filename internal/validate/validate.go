// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks coordinate input files and the destination
// namespace before any conversion output is written. The pipeline runs these
// checks over the whole batch first, so a failing batch writes nothing.
package validate

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/gps2shp/pkg/types"
)

// validChars is the permitted charset for coordinate tokens.
const validChars = "0123456789.+-"

// minDataLines is the minimum polygon: a triangle.
const minDataLines = 3

const (
	minLng, maxLng = -180.0, 180.0
	minLat, maxLat = -90.0, 90.0
)

// shapefileExts are the four output extensions produced by the external
// converter, in the order they are checked.
var shapefileExts = []string{".dbf", ".prj", ".shp", ".shx"}

// Line parses one stripped, non-empty input line into a CoordinatePair.
// lineNum is the 1-based line number used in diagnostics.
func Line(file string, lineNum int, raw string) (types.CoordinatePair, error) {
	ref := LineRef{File: file, Line: lineNum, Raw: raw}

	tokens := strings.Split(raw, " ")
	if len(tokens) != 2 {
		return types.CoordinatePair{}, &MalformedLineError{LineRef: ref}
	}
	lngText, latText := tokens[0], tokens[1]

	lng, err := parseToken(ref, "longitude", lngText)
	if err != nil {
		return types.CoordinatePair{}, err
	}
	lat, err := parseToken(ref, "latitude", latText)
	if err != nil {
		return types.CoordinatePair{}, err
	}

	if lng < minLng || lng > maxLng {
		return types.CoordinatePair{}, &RangeError{
			LineRef: ref, Axis: "longitude", Token: lngText, Min: minLng, Max: maxLng,
		}
	}
	if lat < minLat || lat > maxLat {
		return types.CoordinatePair{}, &RangeError{
			LineRef: ref, Axis: "latitude", Token: latText, Min: minLat, Max: maxLat,
		}
	}

	return types.CoordinatePair{Lng: lng, Lat: lat, LngText: lngText, LatText: latText}, nil
}

// parseToken enforces the charset and parses the token as a decimal number.
func parseToken(ref LineRef, axis, token string) (float64, error) {
	for _, c := range token {
		if !strings.ContainsRune(validChars, c) {
			return 0, &InvalidCharacterError{LineRef: ref, Axis: axis, Token: token, Char: c}
		}
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, &NumericParseError{LineRef: ref, Axis: axis, Token: token, Err: err}
	}
	return v, nil
}

// File reads and validates one input file, returning its coordinate
// sequence. Blank lines are skipped for parsing but still counted so line
// numbers in diagnostics match the file. The first invalid line aborts
// processing of the file.
func File(path string) (types.SourceFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return types.SourceFile{}, fmt.Errorf("resolving %s: %w", path, err)
	}

	f, err := os.Open(abs)
	if err != nil {
		return types.SourceFile{}, fmt.Errorf("opening %s: %w", abs, err)
	}
	defer f.Close()

	src := types.SourceFile{Path: abs}
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		pair, err := Line(abs, lineNum, line)
		if err != nil {
			return types.SourceFile{}, err
		}
		src.Pairs = append(src.Pairs, pair)
	}
	if err := scanner.Err(); err != nil {
		return types.SourceFile{}, fmt.Errorf("reading %s: %w", abs, err)
	}

	if len(src.Pairs) < minDataLines {
		return types.SourceFile{}, &InsufficientGeometryError{File: abs, DataLines: len(src.Pairs)}
	}
	return src, nil
}

// DestinationSet returns the output paths implied by one source file and the
// enabled outputs. All outputs share the source base name with differing
// extensions.
func DestinationSet(sourcePath string, writeKML, writeShapefile bool) []string {
	stem := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath))
	var dests []string
	if writeKML {
		dests = append(dests, stem+".kml")
	}
	if writeShapefile {
		for _, ext := range shapefileExts {
			dests = append(dests, stem+ext)
		}
	}
	return dests
}

// Destinations fails on the first output path for sourcePath that already
// exists. Callers skip this check when overwrite is requested.
func Destinations(sourcePath string, writeKML, writeShapefile bool) error {
	for _, dest := range DestinationSet(sourcePath, writeKML, writeShapefile) {
		if _, err := os.Stat(dest); err == nil {
			return &DestinationExistsError{Source: sourcePath, Destination: dest}
		}
	}
	return nil
}
