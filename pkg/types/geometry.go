// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model and configuration for the
// conversion pipeline.
package types

import (
	"path/filepath"
	"strings"
	"time"
)

// CoordinatePair is one longitude/latitude vertex parsed from an input file.
// The raw source tokens are kept alongside the parsed values so generated
// output reproduces the input spelling exactly ("0.0" stays "0.0", never "0").
type CoordinatePair struct {
	Lng float64
	Lat float64

	// LngText and LatText are the tokens as they appeared on the source line.
	LngText string
	LatText string
}

// SourceFile is one validated input file: its absolute path and the ordered
// coordinate sequence parsed from it. Order defines the polygon boundary
// winding and is never reordered.
type SourceFile struct {
	Path  string
	Pairs []CoordinatePair
}

// BaseName returns the file's base name without extension. It names the
// generated document, folder, and placemark.
func (s SourceFile) BaseName() string {
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ConversionStatus classifies the outcome of converting one source file.
type ConversionStatus string

const (
	ConversionDone   ConversionStatus = "done"
	ConversionFailed ConversionStatus = "failed"
)

// ConversionOutcome records the result of one file's conversion attempt.
// Created by the pipeline after the attempt; never mutated afterwards.
type ConversionOutcome struct {
	Source      string           `json:"source" yaml:"source"`
	Outputs     []string         `json:"outputs" yaml:"outputs"`
	Status      ConversionStatus `json:"status" yaml:"status"`
	Error       string           `json:"error,omitempty" yaml:"error,omitempty"`
	CompletedAt time.Time        `json:"completed_at" yaml:"completed_at"`
}
