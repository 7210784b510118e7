package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
)

// errNonZeroExit means the router answered the report command with a failure.
var errNonZeroExit = errors.New("report command failed")

// sshReportSource fetches the report over one lazily dialled connection. A
// failed or timed out fetch drops the connection so the next call redials;
// a router that rebooted is picked up on the following poll.
type sshReportSource struct {
	opts       dialOptions
	entry      commandEntry
	timeout    time.Duration
	persistent bool
	raw        io.Writer

	mu        sync.Mutex
	connected bool
	client    *ssh.Client
	shell     *persistentShell
	dials     int
}

func newSSHReportSource(p *profile) *sshReportSource {
	return &sshReportSource{
		opts:       dialOptionsFor(p),
		entry:      p.Report,
		timeout:    p.Report.perCommandTimeout(cfgTimeout),
		persistent: cfgPersistentShell,
	}
}

// sessions returns the session factory for the current connection, dialling
// when there is none.
func (s *sshReportSource) sessions() (sessionClient, error) {
	if s.shell != nil {
		return persistentSessionClient{ps: s.shell}, nil
	}
	if !s.connected {
		logger.Debug("dialing router", zap.String("target", s.opts.Target), zap.String("user", s.opts.User))
		c, err := dialSSHFunc(s.opts)
		if err != nil {
			return nil, fmt.Errorf("ssh dial %s: %w", s.opts.Target, err)
		}
		s.client = c
		s.connected = true
		s.dials++
	}
	if s.persistent && s.client != nil {
		ps, err := newPersistentShell(s.client)
		if err != nil {
			return nil, fmt.Errorf("start shell: %w", err)
		}
		s.shell = ps
		return persistentSessionClient{ps: ps}, nil
	}
	return sshClientWrapper{c: s.client}, nil
}

// FetchReport runs the report command and returns its output.
func (s *sshReportSource) FetchReport(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, err := s.sessions()
	if err != nil {
		return "", err
	}
	line := s.entry.line()
	start := time.Now()
	out, code, runErr := runRemoteCommandFunc(sc, line, s.timeout)
	logger.Debug("report command finished",
		zap.String("command", line),
		zap.Int("exit_code", code),
		zap.Int("bytes", len(out)),
		zap.Duration("elapsed", time.Since(start)))

	if s.raw != nil {
		werr := writeCommandSection(s.raw, capturedFetch{
			Target:   s.opts.Target,
			Command:  line,
			At:       start,
			Elapsed:  time.Since(start),
			Timeout:  s.timeout,
			ExitCode: code,
			Err:      runErr,
			Output:   out,
		})
		if werr != nil {
			logger.Warn("failed to write raw capture", zap.Error(werr))
		}
	}

	if runErr != nil {
		s.reset()
		return "", fmt.Errorf("run %q: %w", line, runErr)
	}
	if code != 0 {
		return "", fmt.Errorf("%w: %q exited with %d: %s", errNonZeroExit, line, code, firstLine(out))
	}
	return string(out), nil
}

// reset drops the connection; the next fetch dials again.
func (s *sshReportSource) reset() {
	if s.shell != nil {
		_ = s.shell.Close()
		s.shell = nil
	}
	if s.client != nil {
		_ = s.client.Close()
	}
	s.client = nil
	s.connected = false
}

// Dials reports how many connections were opened.
func (s *sshReportSource) Dials() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dials
}

func (s *sshReportSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return nil
}

func firstLine(b []byte) string {
	for i, c := range b {
		if c == '\n' {
			return string(b[:i])
		}
	}
	return string(b)
}
