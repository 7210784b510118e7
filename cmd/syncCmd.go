package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JustAGod1/wifi-dumper/sink"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the report once and replace the Redis set",
	RunE: func(cmd *cobra.Command, args []string) error {
		pl, cleanup, err := newPipeline(cmd, nil)
		if err != nil {
			return err
		}
		defer cleanup()

		ids, err := pl.syncOnce(cmd.Context())
		if err != nil {
			return err
		}
		if cfgDryRun {
			for _, id := range ids {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
			}
		}
		return nil
	},
}

// newPipeline wires the resolved profile to an SSH source and the configured
// sink. cleanup releases both and is safe to call once err is nil.
func newPipeline(cmd *cobra.Command, metrics *syncMetrics) (*pipeline, func(), error) {
	p, err := resolveProfile()
	if err != nil {
		return nil, nil, err
	}

	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}

	var snk sink.Sink
	if cfgDryRun {
		snk = &sink.Memory{}
	} else {
		s, closeSink, err := newSinkFunc(cmd.Context(), p)
		if err != nil {
			return nil, nil, err
		}
		snk = s
		closers = append(closers, closeSink)
	}

	src := newSSHReportSource(p)
	closers = append(closers, src.Close)
	closeRaw, err := openRawCapture(src, p)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	closers = append(closers, closeRaw)

	return &pipeline{
		profile:      p,
		source:       src,
		sink:         snk,
		metrics:      metrics,
		snapshotPath: cfgOutPath,
	}, cleanup, nil
}
