package cmd

import (
	"context"
	"errors"
	"io"
	"time"

	"golang.org/x/crypto/ssh"
)

// runRemoteCommand executes cmd on a new session and returns its output and
// exit code (-1 when unknown). A timeout <= 0 waits indefinitely; otherwise
// context.DeadlineExceeded is returned once it elapses and the session is
// abandoned.
func runRemoteCommand(client sessionClient, cmd string, timeout time.Duration) ([]byte, int, error) {
	type result struct {
		out      []byte
		exitCode int
		err      error
	}

	run := func() result {
		sess, err := client.NewSession()
		if err != nil {
			return result{nil, -1, err}
		}
		defer func() {
			// exec channels report EOF once the remote side closed them
			if err := sess.Close(); err != nil && !errors.Is(err, io.EOF) {
				logger.Debug("closing session failed")
			}
		}()
		b, err := sess.CombinedOutput(cmd)
		if err == nil {
			code := 0
			if ec, ok := sess.(exitCoder); ok {
				code = ec.LastExitCode()
			}
			return result{b, code, nil}
		}
		exit := -1
		var ee *ssh.ExitError
		if errors.As(err, &ee) {
			exit = ee.ExitStatus()
		}
		return result{b, exit, err}
	}

	if timeout <= 0 {
		r := run()
		return r.out, r.exitCode, r.err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	ch := make(chan result, 1)
	go func() { ch <- run() }()

	select {
	case r := <-ch:
		return r.out, r.exitCode, r.err
	case <-ctx.Done():
		return nil, -1, context.DeadlineExceeded
	}
}
