// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ogr

import (
	"fmt"
	"strings"
)

// ToolNotFoundError reports a converter binary that could not be located or
// spawned.
type ToolNotFoundError struct {
	Path string
	Err  error
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("converter %s not found or not runnable: %v", e.Path, e.Err)
}

func (e *ToolNotFoundError) Unwrap() error { return e.Err }

// ToolInvalidError reports an executable that ran but failed the identity
// check: its version output does not identify a GDAL-family tool.
type ToolInvalidError struct {
	Path   string
	Stdout string
	Stderr string
}

func (e *ToolInvalidError) Error() string {
	return fmt.Sprintf("executable %s does not appear to be valid\nstdout: %s\nstderr: %s",
		e.Path, e.Stdout, e.Stderr)
}

// ExternalToolError reports a converter invocation classified as failed. It
// carries the full argument list and both output streams: the tool is opaque,
// so this is the only diagnosable record of what happened.
type ExternalToolError struct {
	Args   []string
	Stdout string
	Stderr string

	// Reason is set when the failure came from the invocation itself
	// (timeout, spawn failure) rather than from output classification.
	Reason string
}

func (e *ExternalToolError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "conversion error")
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	fmt.Fprintf(&b, "\nargs:   %s", strings.Join(e.Args, " "))
	fmt.Fprintf(&b, "\nstdout: %s", e.Stdout)
	fmt.Fprintf(&b, "\nstderr: %s", e.Stderr)
	return b.String()
}
