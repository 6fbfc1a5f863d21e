// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantLng float64
		wantLat float64
		wantErr error // zero value of the expected error type, nil for success
	}{
		{
			name:    "simple pair",
			raw:     "10.5 20.5",
			wantLng: 10.5,
			wantLat: 20.5,
		},
		{
			name:    "signed tokens",
			raw:     "-122.4194 +37.7749",
			wantLng: -122.4194,
			wantLat: 37.7749,
		},
		{
			name:    "boundary values accepted",
			raw:     "180.0 -90.0",
			wantLng: 180.0,
			wantLat: -90.0,
		},
		{
			name:    "comma instead of space",
			raw:     "10.5,20.5",
			wantErr: &MalformedLineError{},
		},
		{
			name:    "three tokens",
			raw:     "10.5 20.5 30.5",
			wantErr: &MalformedLineError{},
		},
		{
			name:    "alphabetic longitude token",
			raw:     "abc 20.5",
			wantErr: &InvalidCharacterError{},
		},
		{
			name:    "alphabetic latitude token",
			raw:     "10.5 20x",
			wantErr: &InvalidCharacterError{},
		},
		{
			name:    "charset-valid but unparseable",
			raw:     "1.2.3 20.5",
			wantErr: &NumericParseError{},
		},
		{
			name:    "longitude out of range",
			raw:     "180.0000001 0.0",
			wantErr: &RangeError{},
		},
		{
			name:    "latitude out of range",
			raw:     "0.0 -90.5",
			wantErr: &RangeError{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := Line("/data/poly.txt", 7, tt.raw)
			if tt.wantErr != nil {
				require.Error(t, err)
				require.IsType(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLng, pair.Lng)
			assert.Equal(t, tt.wantLat, pair.Lat)
		})
	}
}

func TestLineErrorContext(t *testing.T) {
	_, err := Line("/data/poly.txt", 12, "abc 20.5")
	require.Error(t, err)

	var charErr *InvalidCharacterError
	require.ErrorAs(t, err, &charErr)
	assert.Equal(t, "/data/poly.txt", charErr.File)
	assert.Equal(t, 12, charErr.Line)
	assert.Equal(t, "abc 20.5", charErr.Raw)
	assert.Equal(t, "longitude", charErr.Axis)
	assert.Equal(t, "abc", charErr.Token)
	assert.Equal(t, 'a', charErr.Char)

	// The message must locate the problem without a verbose re-run.
	assert.Contains(t, err.Error(), "abc")
	assert.Contains(t, err.Error(), "line 12")
	assert.Contains(t, err.Error(), "/data/poly.txt")
}

func TestLineRangeErrorNamesValue(t *testing.T) {
	_, err := Line("/data/poly.txt", 3, "180.0000001 0.0")
	var rangeErr *RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "longitude", rangeErr.Axis)
	assert.Equal(t, "180.0000001", rangeErr.Token)
	assert.Contains(t, err.Error(), "180.0000001")
	assert.Contains(t, err.Error(), "-180 to 180")
}

func TestFile(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantPairs int
		wantErr   error
	}{
		{
			name:      "three data lines pass",
			content:   "0.0 0.0\n1.0 0.0\n1.0 1.0\n",
			wantPairs: 3,
		},
		{
			name:    "two data lines fail",
			content: "0.0 0.0\n1.0 0.0\n",
			wantErr: &InsufficientGeometryError{},
		},
		{
			name:      "blank lines skipped but counted",
			content:   "0.0 0.0\n\n1.0 0.0\n\n1.0 1.0\n",
			wantPairs: 3,
		},
		{
			name:    "first bad line aborts",
			content: "0.0 0.0\nbogus\n1.0 1.0\n",
			wantErr: &MalformedLineError{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "input.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			src, err := File(path)
			if tt.wantErr != nil {
				require.Error(t, err)
				require.IsType(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, src.Pairs, tt.wantPairs)
			assert.True(t, filepath.IsAbs(src.Path))
		})
	}
}

func TestFileLineNumbersCountBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	content := "0.0 0.0\n\n\n999.0 0.0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := File(path)
	var rangeErr *RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 4, rangeErr.Line)
	assert.Equal(t, "999.0 0.0", rangeErr.Raw)
}

func TestFilePreservesOrderAndTokens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.txt")
	content := "0.0 0.0\n1.0 0.0\n1.0 1.0\n0.0 1.0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	src, err := File(path)
	require.NoError(t, err)
	require.Len(t, src.Pairs, 4)
	assert.Equal(t, "0.0", src.Pairs[0].LngText)
	assert.Equal(t, "1.0", src.Pairs[1].LngText)
	assert.Equal(t, "1.0", src.Pairs[2].LatText)
	assert.Equal(t, "0.0", src.Pairs[3].LngText)
	assert.Equal(t, "1.0", src.Pairs[3].LatText)
}

func TestDestinationSet(t *testing.T) {
	tests := []struct {
		name           string
		writeKML       bool
		writeShapefile bool
		want           []string
	}{
		{
			name:     "kml only",
			writeKML: true,
			want:     []string{"/data/poly.kml"},
		},
		{
			name:           "shapefile only",
			writeShapefile: true,
			want:           []string{"/data/poly.dbf", "/data/poly.prj", "/data/poly.shp", "/data/poly.shx"},
		},
		{
			name:           "both outputs",
			writeKML:       true,
			writeShapefile: true,
			want: []string{
				"/data/poly.kml",
				"/data/poly.dbf", "/data/poly.prj", "/data/poly.shp", "/data/poly.shx",
			},
		},
		{
			name: "neither",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DestinationSet("/data/poly.txt", tt.writeKML, tt.writeShapefile)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDestinations(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "poly.txt")

	require.NoError(t, Destinations(source, true, true))

	existing := filepath.Join(dir, "poly.kml")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0o644))

	err := Destinations(source, true, true)
	var destErr *DestinationExistsError
	require.ErrorAs(t, err, &destErr)
	assert.Equal(t, existing, destErr.Destination)
	assert.Equal(t, source, destErr.Source)
}
