package cmd

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"github.com/JustAGod1/wifi-dumper/tools/sshserv"
)

// fakeShellWriter plays the remote shell: each command written to stdin is
// answered with payload and the marker carrying exit.
type fakeShellWriter struct {
	pw      *io.PipeWriter
	payload string
	exit    int
}

func (w *fakeShellWriter) Write(p []byte) (int, error) {
	cmd := string(p)
	// answer asynchronously; the reader starts only after Write returns
	go func() {
		i := strings.LastIndex(cmd, "echo ")
		j := strings.LastIndex(cmd, " $?")
		marker := strings.Trim(strings.TrimSpace(cmd[i+len("echo "):j]), "'")
		_, _ = io.WriteString(w.pw, w.payload+marker+" "+strconv.Itoa(w.exit)+"\n")
	}()
	return len(p), nil
}

func (w *fakeShellWriter) Close() error { return w.pw.Close() }

func newFakeShell(payload string, exit int) *persistentShell {
	pr, pw := io.Pipe()
	return &persistentShell{
		stdin:  &fakeShellWriter{pw: pw, payload: payload, exit: exit},
		pw:     pw,
		reader: bufio.NewReader(pr),
		nonce:  "abc",
	}
}

func TestPersistentShell_RunOne_SuccessExit0(t *testing.T) {
	ps := newFakeShell("             host:\n                  mac: 50:ff:20:00:00:01\n", 0)
	out, code, err := ps.runOne("show ip hotspot")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "             host:\n                  mac: 50:ff:20:00:00:01\n", string(out))
}

func TestPersistentShell_RunOne_LongOutputNonZero(t *testing.T) {
	long := strings.Repeat("A", 9000) + "\n"
	ps := newFakeShell(long, 2)
	out, code, err := ps.runOne("whoami")
	require.NoError(t, err)
	require.Equal(t, 2, code)
	require.Equal(t, long, string(out))
}

func TestPersistentShell_RunOne_MarkerAfterUnterminatedOutput(t *testing.T) {
	ps := newFakeShell("partial", 0)
	out, code, err := ps.runOne("printf partial")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "partial", string(out))
}

func TestPersistentShell_RunOne_StreamEndsEarly(t *testing.T) {
	pr, pw := io.Pipe()
	ps := &persistentShell{stdin: nopWriteCloser{}, pw: pw, reader: bufio.NewReader(pr), nonce: "n"}
	go func() {
		_, _ = io.WriteString(pw, "half a report\n")
		_ = pw.Close()
	}()
	out, code, err := ps.runOne("show ip hotspot")
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, -1, code)
	require.Equal(t, "half a report\n", string(out))
}

type nopWriteCloser struct{}

func (nopWriteCloser) Write(p []byte) (int, error) { return len(p), nil }
func (nopWriteCloser) Close() error                { return nil }

func TestPersistentSessionClient_VirtualSessionExitCode(t *testing.T) {
	client := persistentSessionClient{ps: newFakeShell("out\n", 7)}
	s, err := client.NewSession()
	require.NoError(t, err)
	b, err := s.CombinedOutput("cmd")
	require.NoError(t, err)
	require.Equal(t, "out\n", string(b))
	ec, ok := s.(exitCoder)
	require.True(t, ok)
	require.Equal(t, 7, ec.LastExitCode())
	require.NoError(t, s.Close())
}

func TestMakeNonce(t *testing.T) {
	n := makeNonce()
	require.Len(t, n, 12)
	for _, r := range n {
		require.True(t, ('a' <= r && r <= 'z') || ('0' <= r && r <= '9'), "invalid char %q", r)
	}
	require.NotEqual(t, n, makeNonce())
}

func TestNewPersistentShell_Integration(t *testing.T) {
	srv, err := sshserv.Start("127.0.0.1:0", sshserv.Static("show ip hotspot", hotspotFixture(t)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	client, err := ssh.Dial("tcp", srv.Addr(), &ssh.ClientConfig{
		User:            "admin",
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         3 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	ps, err := newPersistentShell(client)
	require.NoError(t, err)
	for range 2 {
		out, code, err := ps.runOne("show ip hotspot")
		require.NoError(t, err)
		require.Equal(t, 0, code)
		require.Equal(t, hotspotFixture(t), string(out))
	}
	_, code, err := ps.runOne("reboot")
	require.NoError(t, err)
	require.Equal(t, 127, code)
	require.NoError(t, ps.Close())
	// one shell served all three commands
	require.Equal(t, 1, srv.Execs())
}
