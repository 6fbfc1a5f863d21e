// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/gps2shp/pkg/types"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "ledger", "gps2shp.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleOutcome(source string, status types.ConversionStatus) types.ConversionOutcome {
	o := types.ConversionOutcome{
		Source:      source,
		Outputs:     []string{source + ".kml"},
		Status:      status,
		CompletedAt: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
	}
	if status == types.ConversionFailed {
		o.Outputs = nil
		o.Error = "conversion error"
	}
	return o
}

func TestRecordAndList(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Record(sampleOutcome("/data/a", types.ConversionDone)))
	require.NoError(t, s.Record(sampleOutcome("/data/b", types.ConversionFailed)))

	outcomes, err := s.List(10)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	// Newest first.
	assert.Equal(t, "/data/b", outcomes[0].Source)
	assert.Equal(t, types.ConversionFailed, outcomes[0].Status)
	assert.Equal(t, "conversion error", outcomes[0].Error)
	assert.Empty(t, outcomes[0].Outputs)

	assert.Equal(t, "/data/a", outcomes[1].Source)
	assert.Equal(t, types.ConversionDone, outcomes[1].Status)
	assert.Equal(t, []string{"/data/a.kml"}, outcomes[1].Outputs)
	assert.Equal(t, 2026, outcomes[1].CompletedAt.Year())
}

func TestListLimit(t *testing.T) {
	s := openStore(t)
	for _, src := range []string{"/data/a", "/data/b", "/data/c"} {
		require.NoError(t, s.Record(sampleOutcome(src, types.ConversionDone)))
	}

	outcomes, err := s.List(2)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, "/data/c", outcomes[0].Source)

	all, err := s.List(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gps2shp.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Record(sampleOutcome("/data/a", types.ConversionDone)))
	require.NoError(t, s1.Close())

	// Reopening preserves recorded outcomes.
	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	outcomes, err := s2.List(0)
	require.NoError(t, err)
	assert.Len(t, outcomes, 1)
}

func TestExportYAML(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Record(sampleOutcome("/data/square.txt", types.ConversionDone)))

	var buf bytes.Buffer
	require.NoError(t, s.ExportYAML(&buf))

	out := buf.String()
	assert.Contains(t, out, "source: /data/square.txt")
	assert.Contains(t, out, "status: done")
	assert.Contains(t, out, "/data/square.txt.kml")
}

func TestExportJSON(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Record(sampleOutcome("/data/square.txt", types.ConversionDone)))

	var buf bytes.Buffer
	require.NoError(t, s.ExportJSON(&buf))

	var decoded []types.ConversionOutcome
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "/data/square.txt", decoded[0].Source)
	assert.Equal(t, types.ConversionDone, decoded[0].Status)
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	assert.Contains(t, buf.String(), "No conversions recorded.")

	buf.Reset()
	FormatTable([]types.ConversionOutcome{
		sampleOutcome("/data/a", types.ConversionDone),
		sampleOutcome("/data/b", types.ConversionFailed),
	}, &buf)

	out := buf.String()
	assert.Contains(t, out, "/data/a")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "conversion error")
	assert.Contains(t, out, "2 conversions")
}
