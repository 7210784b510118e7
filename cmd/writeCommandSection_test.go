package cmd

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriteCommandSection(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	err := writeCommandSection(&buf, capturedFetch{
		Target:  "192.168.1.1:22",
		Command: "show ip hotspot",
		At:      at,
		Elapsed: 1234 * time.Microsecond,
		Output:  []byte("host:\n"),
	})
	require.NoError(t, err)
	out := buf.String()
	require.Contains(t, out, "Fetched: 2024-05-01T12:00:00Z\n")
	require.Contains(t, out, "Target: 192.168.1.1:22\n")
	require.Contains(t, out, "Command: show ip hotspot\n")
	require.Contains(t, out, "Elapsed: 1ms\n")
	require.Contains(t, out, "Exit Code: 0")
	require.Contains(t, out, "Bytes: 6\n")
	require.NotContains(t, out, "Timeout:")
	require.NotContains(t, out, "Error:")
	require.Contains(t, out, "---8<---\nhost:\n---8<---")

	buf.Reset()
	err = writeCommandSection(&buf, capturedFetch{
		Command:  "x",
		At:       at,
		Timeout:  3 * time.Second,
		ExitCode: 2,
		Err:      errors.New("boom"),
		Output:   []byte("no-nl"),
	})
	require.NoError(t, err)
	out = buf.String()
	require.NotContains(t, out, "Target:")
	require.Contains(t, out, "Timeout: 3s")
	require.Contains(t, out, "Exit Code: 2")
	require.Contains(t, out, "Error: boom")
	require.Contains(t, out, "no-nl\n---8<---")
}

func TestWriteCommandSection_EmptyOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCommandSection(&buf, capturedFetch{Command: "x"}))
	require.Contains(t, buf.String(), "Bytes: 0\n---8<---\n\n---8<---\n")
}

func TestWriteCommandSection_WriteError(t *testing.T) {
	err := writeCommandSection(failingWriter{}, capturedFetch{Command: "x"})
	require.Error(t, err)
}
