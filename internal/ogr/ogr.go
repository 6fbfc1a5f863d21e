// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ogr invokes the GDAL ogr2ogr converter and classifies its output
// into warnings and fatal errors. The tool itself is a black box: it accepts
// a KML document and produces the four-file ESRI Shapefile set.
package ogr

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

const (
	binName = "ogr2ogr"

	// versionPrefix identifies a GDAL-family tool in --version output.
	versionPrefix = "GDAL "

	// warningPrefix marks informational stderr lines that never fail a run.
	warningPrefix = "Warning "

	// formatShapefile is the ogr2ogr output driver name.
	formatShapefile = "ESRI Shapefile"
)

// runner abstracts process execution for testing.
type runner interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// osRunner is the production runner backed by os/exec. Both output streams
// are captured as complete buffers, not streamed.
type osRunner struct{}

func (osRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	err := cmd.Run()
	return out.String(), errBuf.String(), err
}

// Tool is a located and identity-checked ogr2ogr executable.
type Tool struct {
	exe     string
	timeout time.Duration
	run     runner
}

// Find locates the converter and verifies it responds to a version query as
// a GDAL tool. With an empty exePath the binary is resolved from PATH. The
// check runs once per batch, not per file.
func Find(exePath string, timeout time.Duration) (*Tool, error) {
	return find(exePath, timeout, osRunner{})
}

func find(exePath string, timeout time.Duration, run runner) (*Tool, error) {
	exe := exePath
	if exe == "" {
		resolved, err := run.LookPath(binName)
		if err != nil {
			return nil, &ToolNotFoundError{Path: binName, Err: err}
		}
		exe = resolved
	}

	stdout, stderr, err := run.Run(context.Background(), exe, "--version")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ToolInvalidError{Path: exe, Stdout: stdout, Stderr: stderr}
		}
		return nil, &ToolNotFoundError{Path: exe, Err: err}
	}
	if !strings.HasPrefix(stdout, versionPrefix) {
		return nil, &ToolInvalidError{Path: exe, Stdout: stdout, Stderr: stderr}
	}

	return &Tool{exe: exe, timeout: timeout, run: run}, nil
}

// Exe returns the resolved executable path.
func (t *Tool) Exe() string { return t.exe }

// Convert runs the tool to produce the shapefile set at shpPath from the
// document at kmlPath. Overwrite is always requested of the tool itself:
// destination safety is enforced by pre-flight validation, never here.
//
// Classification is output-based, not exit-status-based: any non-empty
// stdout, or any stderr line not prefixed "Warning ", fails the conversion.
func (t *Tool) Convert(ctx context.Context, shpPath, kmlPath string) error {
	args := []string{"-f", formatShapefile, "-overwrite", shpPath, kmlPath}
	fullArgs := append([]string{t.exe}, args...)

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	stdout, stderr, err := t.run.Run(ctx, t.exe, args...)

	if ctx.Err() != nil {
		return &ExternalToolError{
			Args: fullArgs, Stdout: stdout, Stderr: stderr,
			Reason: "converter did not complete: " + ctx.Err().Error(),
		}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return &ExternalToolError{
				Args: fullArgs, Stdout: stdout, Stderr: stderr, Reason: err.Error(),
			}
		}
		// A nonzero exit alone is not decisive; the tool reports real
		// failures on its output streams.
	}

	if len(stdout) > 0 || countErrorLines(stderr) > 0 {
		return &ExternalToolError{Args: fullArgs, Stdout: stdout, Stderr: stderr}
	}
	return nil
}

// countErrorLines counts stderr lines that are not informational warnings.
func countErrorLines(stderr string) int {
	trimmed := strings.TrimSpace(stderr)
	if trimmed == "" {
		return 0
	}
	n := 0
	for _, line := range strings.Split(trimmed, "\n") {
		if strings.HasPrefix(line, warningPrefix) {
			continue
		}
		n++
	}
	return n
}
