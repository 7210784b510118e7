package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/JustAGod1/wifi-dumper/report"
)

const (
	exitFailure = 1
	// exitMalformed tells a supervisor that the router answered but its output
	// no longer matches the expected layout; retrying will not help.
	exitMalformed = 3
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, report.ErrMalformed) {
			exitFunc(exitMalformed)
			return
		}
		exitFunc(exitFailure)
		return
	}
}
