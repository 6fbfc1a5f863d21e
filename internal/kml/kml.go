// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package kml builds the polygon boundary document from validated
// coordinates. The document is assembled as a typed tree and serialized with
// encoding/xml, so equivalent inputs always produce byte-identical output.
package kml

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/gps2shp/pkg/types"
)

const xmlns = "http://www.opengis.net/kml/2.2"

// coordIndent is the left margin for each coordinate line.
const coordIndent = "            "

// kmlRoot is the serialized document tree. One named folder containing one
// placemark whose geometry is a single closed linear ring, styled via a
// normal/highlight style pair keyed by a style map.
type kmlRoot struct {
	XMLName  xml.Name    `xml:"kml"`
	Xmlns    string      `xml:"xmlns,attr"`
	Document kmlDocument `xml:"Document"`
}

type kmlDocument struct {
	Name        string   `xml:"name"`
	Description string   `xml:"description"`
	Styles      []style  `xml:"Style"`
	StyleMap    styleMap `xml:"StyleMap"`
	Folder      folder   `xml:"Folder"`
}

type style struct {
	ID        string    `xml:"id,attr"`
	LineStyle lineStyle `xml:"LineStyle"`
	PolyStyle polyStyle `xml:"PolyStyle"`
}

type lineStyle struct {
	Color string `xml:"color"`
	Width string `xml:"width"`
}

type polyStyle struct {
	Color   string `xml:"color"`
	Fill    string `xml:"fill"`
	Outline string `xml:"outline"`
}

type styleMap struct {
	ID    string      `xml:"id,attr"`
	Pairs []stylePair `xml:"Pair"`
}

type stylePair struct {
	Key      string `xml:"key"`
	StyleURL string `xml:"styleUrl"`
}

type folder struct {
	Name      string    `xml:"name"`
	Placemark placemark `xml:"Placemark"`
}

type placemark struct {
	Name     string  `xml:"name"`
	StyleURL string  `xml:"styleUrl"`
	Polygon  polygon `xml:"Polygon"`
}

type polygon struct {
	OuterBoundary outerBoundary `xml:"outerBoundaryIs"`
}

type outerBoundary struct {
	Ring linearRing `xml:"LinearRing"`
}

type linearRing struct {
	Tessellate  string `xml:"tessellate"`
	Coordinates string `xml:"coordinates"`
}

// Document is an assembled polygon boundary document ready to serialize.
type Document struct {
	root kmlRoot
}

// Name returns the document name, derived from the source file's base name.
func (d Document) Name() string { return d.root.Document.Name }

// Build assembles the document tree for one validated source file. It is a
// pure function of the coordinate sequence and the styling constants.
func Build(src types.SourceFile, cfg types.StyleConfig) Document {
	name := src.BaseName()
	base := "poly-" + StyleID(cfg.LineColor) + "-1000-125"

	ls := lineStyle{Color: cfg.LineColor, Width: formatWidth(cfg.LineWidth)}
	ps := polyStyle{Color: cfg.PolyColor, Fill: flag(cfg.PolyFill), Outline: flag(cfg.PolyOutline)}

	root := kmlRoot{
		Xmlns: xmlns,
		Document: kmlDocument{
			Name: name,
			Styles: []style{
				{ID: base + "-normal", LineStyle: ls, PolyStyle: ps},
				{ID: base + "-highlight", LineStyle: ls, PolyStyle: ps},
			},
			StyleMap: styleMap{
				ID: base,
				Pairs: []stylePair{
					{Key: "normal", StyleURL: "#" + base + "-normal"},
					{Key: "highlight", StyleURL: "#" + base + "-highlight"},
				},
			},
			Folder: folder{
				Name: name,
				Placemark: placemark{
					Name:     name,
					StyleURL: "#" + base,
					Polygon: polygon{
						OuterBoundary: outerBoundary{
							Ring: linearRing{
								Tessellate:  "1",
								Coordinates: coordinateBlock(src.Pairs),
							},
						},
					},
				},
			},
		},
	}
	return Document{root: root}
}

// Marshal serializes the document as indented XML with the standard header.
func (d Document) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(d.root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing document %q: %w", d.Name(), err)
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}

// StyleID derives the style identifier from a line color: the first six hex
// characters, upper-cased.
func StyleID(lineColor string) string {
	id := lineColor
	if len(id) > 6 {
		id = id[:6]
	}
	return strings.ToUpper(id)
}

// coordinateBlock renders each pair as "lng,lat,0" on its own line, in input
// order, preserving the source token spelling. Order is semantically
// significant: it defines the boundary winding.
func coordinateBlock(pairs []types.CoordinatePair) string {
	var b strings.Builder
	b.WriteByte('\n')
	for _, p := range pairs {
		b.WriteString(coordIndent)
		b.WriteString(p.LngText)
		b.WriteByte(',')
		b.WriteString(p.LatText)
		b.WriteString(",0\n")
	}
	return b.String()
}

func formatWidth(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
