// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences validation, document generation, and external
// conversion across a batch of input files. Every file in the batch is
// validated before any output is written, so a failed pre-flight leaves no
// partial result set. A failure during conversion aborts the remaining
// files; outputs already written for earlier files are kept.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/gps2shp/internal/kml"
	"github.com/pdiddy/gps2shp/internal/validate"
	"github.com/pdiddy/gps2shp/pkg/types"
)

// Converter produces a shapefile set from a serialized document file.
// *ogr.Tool implements it; tests substitute fakes.
type Converter interface {
	Convert(ctx context.Context, shpPath, kmlPath string) error
}

// Recorder persists per-file conversion outcomes.
type Recorder interface {
	Record(outcome types.ConversionOutcome) error
}

// BatchResult summarizes one completed run.
type BatchResult struct {
	Converted int
	Outputs   []string
}

// Pipeline converts a batch of coordinate files according to one
// ConvertConfig. It holds no per-file state between runs.
type Pipeline struct {
	cfg  types.ConvertConfig
	tool Converter
	rec  Recorder
	out  io.Writer
}

// New creates a pipeline. tool may be nil when shapefile output is disabled;
// rec may be nil to disable outcome recording.
func New(cfg types.ConvertConfig, tool Converter, rec Recorder, out io.Writer) *Pipeline {
	return &Pipeline{cfg: cfg, tool: tool, rec: rec, out: out}
}

// Run validates every input file and its destination set, then converts each
// file in order. The first failure aborts the remaining files.
func (p *Pipeline) Run(ctx context.Context, files []string) (BatchResult, error) {
	sources, err := p.preflight(files)
	if err != nil {
		return BatchResult{}, err
	}

	fmt.Fprintf(p.out, "\nConverting to %s\n", p.describeOutputs())

	var result BatchResult
	for _, src := range sources {
		outputs, err := p.convertOne(ctx, src)
		p.record(src, outputs, err)
		if err != nil {
			return result, err
		}
		result.Converted++
		result.Outputs = append(result.Outputs, outputs...)
	}
	return result, nil
}

// preflight validates the content and destination namespace of every file
// before any write. Either the whole batch passes or nothing proceeds.
func (p *Pipeline) preflight(files []string) ([]types.SourceFile, error) {
	fmt.Fprintln(p.out, "Checking input files")
	sources := make([]types.SourceFile, 0, len(files))
	for _, f := range files {
		src, err := validate.File(f)
		if err != nil {
			return nil, err
		}
		if !p.cfg.Overwrite {
			if err := validate.Destinations(src.Path, p.cfg.WriteKML, p.cfg.WriteShapefile); err != nil {
				return nil, err
			}
		}
		fmt.Fprintf(p.out, "\t%s\tOK\n", src.Path)
		sources = append(sources, src)
	}
	return sources, nil
}

// convertOne builds and writes the document for src, then runs the external
// converter when shapefile output is enabled. It returns the kept outputs.
func (p *Pipeline) convertOne(ctx context.Context, src types.SourceFile) ([]string, error) {
	doc := kml.Build(src, p.cfg.Style)
	data, err := doc.Marshal()
	if err != nil {
		return nil, err
	}

	stem := strings.TrimSuffix(src.Path, filepath.Ext(src.Path))

	kmlPath := stem + ".kml"
	if !p.cfg.WriteKML {
		// The converter still needs the document on disk; use a temp file
		// and remove it when done.
		f, err := os.CreateTemp("", "gps2shp-*.kml")
		if err != nil {
			return nil, fmt.Errorf("creating temporary document: %w", err)
		}
		kmlPath = f.Name()
		f.Close()
		defer os.Remove(kmlPath)
	}

	if err := os.WriteFile(kmlPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", kmlPath, err)
	}

	var outputs []string
	if p.cfg.WriteKML {
		outputs = append(outputs, kmlPath)
		fmt.Fprintf(p.out, "\t%s\t->\t%s\tOK\n", src.Path, kmlPath)
	}

	if p.cfg.WriteShapefile {
		shpPath := stem + ".shp"
		if err := p.tool.Convert(ctx, shpPath, kmlPath); err != nil {
			return outputs, err
		}
		outputs = append(outputs, validate.DestinationSet(src.Path, false, true)...)
		fmt.Fprintf(p.out, "\t%s\t->\t%s,dbf,prj,shx\tOK\n", src.Path, shpPath)
	}

	return outputs, nil
}

// record persists the outcome when a recorder is configured. Recording
// failures are reported but never abort the batch.
func (p *Pipeline) record(src types.SourceFile, outputs []string, convErr error) {
	if p.rec == nil {
		return
	}
	outcome := types.ConversionOutcome{
		Source:      src.Path,
		Outputs:     outputs,
		Status:      types.ConversionDone,
		CompletedAt: time.Now().UTC(),
	}
	if convErr != nil {
		outcome.Status = types.ConversionFailed
		outcome.Error = convErr.Error()
	}
	if err := p.rec.Record(outcome); err != nil {
		fmt.Fprintf(p.out, "warning: could not record outcome for %s: %v\n", src.Path, err)
	}
}

func (p *Pipeline) describeOutputs() string {
	switch {
	case p.cfg.WriteKML && p.cfg.WriteShapefile:
		return "KML files and ESRI Shapefiles"
	case p.cfg.WriteKML:
		return "KML files"
	default:
		return "ESRI Shapefiles"
	}
}
