package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// writeHeader starts a raw capture file with the profile it was taken with.
func writeHeader(w io.Writer, p *profile) {
	bw := bufio.NewWriter(w)
	_, _ = fmt.Fprintf(bw, "Name: %s\n", p.Name)
	_, _ = fmt.Fprintf(bw, "Description: %s\n", p.Description)
	_, _ = fmt.Fprintf(bw, "Target: %s\n", p.target())
	_, _ = fmt.Fprintf(bw, "Started: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintln(bw, strings.Repeat("=", 80))
	_ = bw.Flush()
}
