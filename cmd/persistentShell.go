package cmd

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/crypto/ssh"
)

// persistentShell keeps one PTY shell open on the router so that successive
// polls in watch mode reuse a single channel instead of opening a new exec
// channel every interval. Each command is followed by an echoed marker that
// carries its exit status.
type persistentShell struct {
	sess   *ssh.Session
	stdin  io.WriteCloser
	pw     *io.PipeWriter
	reader *bufio.Reader
	mu     sync.Mutex

	closeOnce sync.Once

	nonce string
	seq   int
}

func newPersistentShell(client *ssh.Client) (*persistentShell, error) {
	s, err := client.NewSession()
	if err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	s.Stdout = pw
	s.Stderr = pw

	stdin, err := s.StdinPipe()
	if err != nil {
		_ = pw.Close()
		_ = s.Close()
		return nil, err
	}
	fail := func(err error) (*persistentShell, error) {
		_ = stdin.Close()
		_ = pw.Close()
		_ = s.Close()
		return nil, err
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          0, // no command echo in the captured report
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}
	// Wide terminal so long hotspot lines are never wrapped.
	if err := s.RequestPty("xterm", 40, 250, modes); err != nil {
		return fail(err)
	}
	if err := s.Start("/bin/sh -s -"); err != nil {
		return fail(err)
	}

	return &persistentShell{
		sess:   s,
		stdin:  stdin,
		pw:     pw,
		reader: bufio.NewReader(pr),
		nonce:  makeNonce(),
	}, nil
}

// Close ends the remote shell. It does not wait for a running command, so a
// timed out runOne is released by its pipe closing. Safe to call more than once.
func (ps *persistentShell) Close() error {
	var err error
	ps.closeOnce.Do(func() {
		_, _ = io.WriteString(ps.stdin, "exit\n")
		_ = ps.stdin.Close()
		_ = ps.pw.Close()
		if cerr := ps.sess.Close(); cerr != nil && !errors.Is(cerr, io.EOF) {
			err = cerr
		}
	})
	return err
}

// runOne runs line in the shell and returns its combined output and exit code.
func (ps *persistentShell) runOne(line string) ([]byte, int, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	marker := fmt.Sprintf("__WIFI_DUMPER_END__%s__%d__", ps.nonce, ps.seq)
	ps.seq++

	if _, err := io.WriteString(ps.stdin, fmt.Sprintf("%s; echo %s $?\n", line, shellQuote(marker))); err != nil {
		return nil, -1, err
	}

	var out bytes.Buffer
	for {
		chunk, err := ps.reader.ReadString('\n')
		if idx := strings.Index(chunk, marker+" "); idx >= 0 {
			out.WriteString(chunk[:idx])
			code, perr := strconv.Atoi(strings.TrimSpace(chunk[idx+len(marker)+1:]))
			if perr != nil {
				code = -1
			}
			return out.Bytes(), code, nil
		}
		out.WriteString(chunk)
		if err != nil {
			// stream ended before the marker
			return out.Bytes(), -1, err
		}
	}
}

// makeNonce returns a random tag so markers never collide with report text.
func makeNonce() string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 12)
	for i := range b {
		b[i] = letters[rand.IntN(len(letters))]
	}
	return string(b)
}

// persistentSessionClient hands out virtual sessions on one shared shell.
type persistentSessionClient struct{ ps *persistentShell }

func (c persistentSessionClient) NewSession() (session, error) {
	return &persistentVirtualSession{ps: c.ps}, nil
}

// persistentVirtualSession maps CombinedOutput onto runOne and remembers the
// exit code, since a shell never yields an *ssh.ExitError.
type persistentVirtualSession struct {
	ps       *persistentShell
	lastExit int
}

func (s *persistentVirtualSession) CombinedOutput(cmd string) ([]byte, error) {
	out, code, err := s.ps.runOne(cmd)
	s.lastExit = code
	return out, err
}

// Close is a no-op; the shell belongs to the client.
func (s *persistentVirtualSession) Close() error { return nil }

func (s *persistentVirtualSession) LastExitCode() int { return s.lastExit }
