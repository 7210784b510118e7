package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/JustAGod1/wifi-dumper/report"
	"github.com/JustAGod1/wifi-dumper/sink"
)

// reportSource yields the raw text of one report.
type reportSource interface {
	FetchReport(ctx context.Context) (string, error)
}

// pipeline is one fetch, parse, extract and publish cycle.
type pipeline struct {
	profile      *profile
	source       reportSource
	sink         sink.Sink
	metrics      *syncMetrics
	snapshotPath string
}

// syncOnce runs the pipeline and returns the published identifiers, sorted.
// The sink is left untouched when any earlier stage fails.
func (pl *pipeline) syncOnce(ctx context.Context) ([]string, error) {
	pl.metrics.pollStarted()

	raw, err := pl.source.FetchReport(ctx)
	if err != nil {
		pl.metrics.failed(stageFetch)
		return nil, err
	}

	start := time.Now()
	tree, err := pl.profile.builder().Build(report.Tokenize(raw))
	if err != nil {
		pl.metrics.failed(stageParse)
		return nil, fmt.Errorf("parse report: %w", err)
	}
	active, err := report.ExtractActive(tree, pl.profile.query())
	if err != nil {
		pl.metrics.failed(stageExtract)
		return nil, fmt.Errorf("extract %s: %w", pl.profile.Extract.IDField, err)
	}
	pl.metrics.parsed(time.Since(start))

	ids := active.Sorted()
	if err := pl.sink.ReplaceSet(ctx, pl.profile.Sink.Key, ids); err != nil {
		pl.metrics.failed(stagePublish)
		return nil, err
	}
	now := time.Now()
	pl.metrics.succeeded(len(ids), now)
	logger.Info("published active hosts",
		zap.String("key", pl.profile.Sink.Key),
		zap.Int("hosts", tree.Len()),
		zap.Int("active", len(ids)))

	if pl.snapshotPath != "" {
		snap := newYAMLSnapshot(pl.profile, ids, now)
		if err := writeSnapshotFile(pl.snapshotPath, snap); err != nil {
			// the set is already published; the snapshot is a courtesy copy
			logger.Warn("failed to write snapshot", zap.String("path", pl.snapshotPath), zap.Error(err))
		}
	}
	return ids, nil
}

// isMalformed reports whether err means the router output changed shape.
func isMalformed(err error) bool {
	return errors.Is(err, report.ErrMalformed)
}

func writeSnapshotFile(path string, snap *yamlSnapshot) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeYAMLSnapshot(f, snap); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
