package cmd

import (
	"fmt"
	"os"
	"path/filepath"
)

// openRawCapture appends every fetched report to --raw-out. It returns a
// no-op closer when the flag is unset.
func openRawCapture(src *sshReportSource, p *profile) (func() error, error) {
	if cfgRawOut == "" {
		return func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfgRawOut), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	f, err := os.OpenFile(cfgRawOut, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open raw capture: %w", err)
	}
	writeHeader(f, p)
	src.raw = f
	return f.Close, nil
}
