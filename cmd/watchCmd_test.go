package cmd

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatchLoop_PollsUntilCancelled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	var polls atomic.Int32
	err := watchLoop(ctx, time.Millisecond, func(context.Context) error {
		if polls.Add(1) == 3 {
			cancel()
		}
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, int32(3), polls.Load())
}

func TestWatchLoop_FailedPollDoesNotStopLoop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	var polls atomic.Int32
	err := watchLoop(ctx, time.Millisecond, func(context.Context) error {
		n := polls.Add(1)
		if n == 4 {
			cancel()
			return nil
		}
		return errors.New("router unreachable")
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, int32(4), polls.Load())
}

func TestWatchLoop_PollsImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	start := time.Now()
	_ = watchLoop(ctx, time.Hour, func(context.Context) error {
		cancel()
		return nil
	})
	require.Less(t, time.Since(start), time.Minute)
}

func TestWatch_RepublishesEveryInterval(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	resetConfig()
	dials := stubRouter(t, hotspotFixture(t))
	mem := stubSink(t)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	rootCmd.SetArgs([]string{"watch", "--interval", "20ms", "--strict-host-key=false"})
	require.NoError(t, rootCmd.ExecuteContext(ctx))

	require.GreaterOrEqual(t, mem.Calls(), 2)
	got, _ := mem.Members("mac_addresses")
	require.Equal(t, fixtureActive, got)
	// the connection is kept between polls
	require.Equal(t, 1, *dials)
}

func TestWatch_RejectsNonPositiveInterval(t *testing.T) {
	resetConfig()
	rootCmd.SetArgs([]string{"watch", "--interval", "0s"})
	require.ErrorContains(t, rootCmd.Execute(), "--interval must be positive")
}

func TestWatch_BadMetricsAddress(t *testing.T) {
	resetConfig()
	stubRouter(t, hotspotFixture(t))
	stubSink(t)
	rootCmd.SetArgs([]string{"watch", "--metrics-listen", "127.0.0.1:99999", "--strict-host-key=false"})
	require.Error(t, rootCmd.Execute())
}

func TestServeMetrics_ExposesPipelineMetrics(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	resetConfig()
	stubRouter(t, hotspotFixture(t))

	reg := prometheus.NewRegistry()
	m := newSyncMetrics(reg)
	pl := &pipeline{profile: defaultProfile(), source: newSSHReportSource(defaultProfile()), sink: stubSink(t), metrics: m}
	_, err := pl.syncOnce(context.Background())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveMetrics(ctx, ln, reg) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	require.Contains(t, string(body), "wifi_dumper_polls_total 1")
	require.Contains(t, string(body), "wifi_dumper_active_devices 2")
	require.Contains(t, string(body), `wifi_dumper_poll_failures_total{stage="parse"} 0`)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestSyncMetrics_CountsFailuresByStage(t *testing.T) {
	resetConfig()
	stubRouter(t, "             host:\n                   mac: x\n")
	reg := prometheus.NewRegistry()
	m := newSyncMetrics(reg)
	pl := &pipeline{profile: defaultProfile(), source: newSSHReportSource(defaultProfile()), sink: stubSink(t), metrics: m}

	_, err := pl.syncOnce(context.Background())
	require.Error(t, err)
	require.True(t, isMalformed(err))
	require.Equal(t, 1.0, testutil.ToFloat64(m.polls))
	require.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues(stageParse)))
	require.Equal(t, 0.0, testutil.ToFloat64(m.failures.WithLabelValues(stagePublish)))
	require.Equal(t, 0.0, testutil.ToFloat64(m.lastSuccess))
}

func TestSyncMetrics_NilIsNoop(t *testing.T) {
	var m *syncMetrics
	m.pollStarted()
	m.failed(stageFetch)
	m.parsed(time.Second)
	m.succeeded(3, time.Now())
}
