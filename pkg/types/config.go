// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// StyleConfig holds the KML styling constants applied to every generated
// polygon. The values affect visual presentation only; geometry is derived
// exclusively from the input coordinates. Colors are aabbggrr hex strings
// (alpha first), the KML convention.
type StyleConfig struct {
	// LineColor is the boundary line color (default "ff0000ff", opaque red).
	LineColor string `json:"line_color" yaml:"line_color"`

	// LineWidth is the boundary line width in pixels.
	LineWidth float64 `json:"line_width" yaml:"line_width"`

	// PolyColor is the polygon fill color.
	PolyColor string `json:"poly_color" yaml:"poly_color"`

	// PolyFill controls whether the polygon interior is filled.
	PolyFill bool `json:"poly_fill" yaml:"poly_fill"`

	// PolyOutline controls whether the polygon outline is drawn.
	PolyOutline bool `json:"poly_outline" yaml:"poly_outline"`
}

// DefaultStyle returns the built-in styling constants.
func DefaultStyle() StyleConfig {
	return StyleConfig{
		LineColor:   "ff0000ff",
		LineWidth:   1.5,
		PolyColor:   "7d0000ff",
		PolyFill:    true,
		PolyOutline: true,
	}
}

// ConvertConfig holds the settings for one conversion run.
type ConvertConfig struct {
	// Overwrite disables destination-collision checking.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`

	// WriteKML keeps the generated KML document as an output. When false a
	// temporary document is still generated to feed the external converter,
	// then deleted.
	WriteKML bool `json:"write_kml" yaml:"write_kml"`

	// WriteShapefile enables the external converter and its four output
	// files (shp, dbf, prj, shx).
	WriteShapefile bool `json:"write_shapefile" yaml:"write_shapefile"`

	// ExePath is an explicit path to the ogr2ogr binary. Empty means the
	// binary is resolved from PATH.
	ExePath string `json:"exe_path" yaml:"exe_path"`

	// ToolTimeout bounds a single external converter invocation. Zero means
	// no bound.
	ToolTimeout time.Duration `json:"tool_timeout" yaml:"tool_timeout"`

	// Style holds the KML styling constants.
	Style StyleConfig `json:"style" yaml:"style"`

	// HistoryDB is the path to the conversion ledger database. Empty
	// disables outcome recording.
	HistoryDB string `json:"history_db" yaml:"history_db"`
}
