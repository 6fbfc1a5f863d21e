// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/gps2shp/pkg/types"
)

// ExportYAML writes the full ledger to w as a YAML document, newest first.
func (s *Store) ExportYAML(w io.Writer) error {
	outcomes, err := s.List(0)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(outcomes)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes the full ledger to w as indented JSON, newest first.
func (s *Store) ExportJSON(w io.Writer) error {
	outcomes, err := s.List(0)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(outcomes)
}

// FormatTable writes outcomes as a human-readable table to w.
func FormatTable(outcomes []types.ConversionOutcome, w io.Writer) {
	if len(outcomes) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return
	}

	fmt.Fprintf(w, "%-20s  %-6s  %-40s  %s\n", "Completed", "Status", "Source", "Outputs")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, o := range outcomes {
		completed := ""
		if !o.CompletedAt.IsZero() {
			completed = o.CompletedAt.Format("2006-01-02 15:04:05")
		}
		source := o.Source
		if len(source) > 40 {
			source = "..." + source[len(source)-37:]
		}
		fmt.Fprintf(w, "%-20s  %-6s  %-40s  %d\n",
			completed, o.Status, source, len(o.Outputs))
		if o.Error != "" {
			fmt.Fprintf(w, "%22s%s\n", "", firstLine(o.Error))
		}
	}

	fmt.Fprintf(w, "\n%d conversions\n", len(outcomes))
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
