package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
)

// capturedFetch is one report fetch as recorded in the raw capture.
type capturedFetch struct {
	Target   string
	Command  string
	At       time.Time
	Elapsed  time.Duration
	Timeout  time.Duration
	ExitCode int
	Err      error
	Output   []byte
}

const captureFence = "---8<---"

// writeCommandSection appends f to the raw capture. The output is framed by
// fence lines so a capture can be split back into individual reports.
func writeCommandSection(w io.Writer, f capturedFetch) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, strings.Repeat("-", 80))
	fmt.Fprintf(bw, "Fetched: %s\n", f.At.Format(time.RFC3339))
	if f.Target != "" {
		fmt.Fprintf(bw, "Target: %s\n", f.Target)
	}
	fmt.Fprintf(bw, "Command: %s\n", f.Command)
	if f.Timeout > 0 {
		fmt.Fprintf(bw, "Timeout: %s\n", f.Timeout)
	}
	fmt.Fprintf(bw, "Elapsed: %s\n", f.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(bw, "Exit Code: %d\n", f.ExitCode)
	if f.Err != nil {
		fmt.Fprintf(bw, "Error: %v\n", f.Err)
	}
	fmt.Fprintf(bw, "Bytes: %d\n", len(f.Output))
	fmt.Fprintln(bw, captureFence)
	bw.Write(f.Output)
	if !bytes.HasSuffix(f.Output, []byte("\n")) {
		bw.WriteByte('\n')
	}
	fmt.Fprintln(bw, captureFence)
	return bw.Flush()
}
